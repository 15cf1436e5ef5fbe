package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"imessage-agent/internal/biz/usecase"
)

// process generates and delivers the reply for one gated message. All
// failures here are terminal for this message: the ledger entry is already
// written and a failed send is never retried.
func (d *Daemon) process(t *task) {
	reply, err := d.replyUC.GenerateFor(d.ctx, t.msg)
	if err != nil {
		fmt.Printf("[Dispatch] Failed to prepare reply for %s: %v\n", t.msg.Handle, err)
		return
	}
	if reply == "" {
		// Upstream failure or empty generation; already logged
		return
	}

	delay := replyDelay(t.settings.ReplyDelayBounds())
	fmt.Printf("[Dispatch] Replying to %s in %v\n", t.msg.Handle, delay.Round(time.Millisecond))

	// A stop aborts the pacing delay: nothing has gone out yet and the
	// ledger entry keeps the message from being replayed. Once the send
	// starts it always completes.
	select {
	case <-time.After(delay):
	case <-d.ctx.Done():
		return
	}

	if err := d.senderRepo.Send(context.Background(), t.msg.Handle, reply); err != nil {
		fmt.Printf("[Dispatch] Send failed for %s: %v\n", t.msg.Handle, err)
		return
	}

	if err := d.turnRepo.Append(context.Background(), usecase.OutboundTurn(t.msg.Handle, reply)); err != nil {
		fmt.Printf("[Dispatch] Failed to log outbound turn for %s: %v\n", t.msg.Handle, err)
	}

	fmt.Printf("[Dispatch] Sent %d chars to %s\n", len(reply), t.msg.Handle)
}

// replyDelay draws a uniform duration in [min, max]
func replyDelay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)+1))
}
