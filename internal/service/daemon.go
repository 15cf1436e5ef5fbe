package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"imessage-agent/internal/biz/domain"
	"imessage-agent/internal/biz/repo"
	"imessage-agent/internal/biz/usecase"
)

// Daemon drives the message-intake and reply-dispatch pipeline: a fixed
// interval poll over the Messages store, dedup, gating, and per-handle
// reply workers.
type Daemon struct {
	chatStore    repo.ChatStoreRepo
	settingsRepo repo.SettingsRepo
	ledgerRepo   repo.LedgerRepo
	turnRepo     repo.TurnLogRepo
	senderRepo   repo.SenderRepo
	gateUC       *usecase.GateUsecase
	replyUC      *usecase.ReplyUsecase

	pollInterval time.Duration
	lookback     time.Duration

	workers   map[string]*handleQueue
	workersMu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// task is one gated message plus the settings snapshot of its tick
type task struct {
	msg      *domain.InboundMessage
	settings domain.Settings
}

// handleQueue holds one handle's pending work. The queue is unbounded so a
// slow conversation never blocks the poll loop or the other handles.
type handleQueue struct {
	mu      sync.Mutex
	pending []*task
	wake    chan struct{}
}

func (q *handleQueue) push(t *task) {
	q.mu.Lock()
	q.pending = append(q.pending, t)
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *handleQueue) pop() *task {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	t := q.pending[0]
	q.pending = q.pending[1:]
	return t
}

// NewDaemon creates a new poll daemon
func NewDaemon(
	chatStore repo.ChatStoreRepo,
	settingsRepo repo.SettingsRepo,
	ledgerRepo repo.LedgerRepo,
	turnRepo repo.TurnLogRepo,
	senderRepo repo.SenderRepo,
	gateUC *usecase.GateUsecase,
	replyUC *usecase.ReplyUsecase,
	pollInterval time.Duration,
	lookback time.Duration,
) *Daemon {
	return &Daemon{
		chatStore:    chatStore,
		settingsRepo: settingsRepo,
		ledgerRepo:   ledgerRepo,
		turnRepo:     turnRepo,
		senderRepo:   senderRepo,
		gateUC:       gateUC,
		replyUC:      replyUC,
		pollInterval: pollInterval,
		lookback:     lookback,
		workers:      make(map[string]*handleQueue),
	}
}

// Start starts the poll loop
func (d *Daemon) Start(ctx context.Context) {
	d.ctx, d.cancel = context.WithCancel(ctx)

	d.wg.Add(1)
	go d.pollLoop()

	fmt.Printf("[Daemon] Started with interval %v, lookback %v\n", d.pollInterval, d.lookback)
}

// Stop stops the daemon cooperatively: the poll loop exits, workers abandon
// the pacing delay and any queued-but-unstarted work, and a send already in
// progress completes. Ledger entries already written keep abandoned messages
// from being re-sent later.
func (d *Daemon) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
	d.wg.Wait()
	fmt.Println("[Daemon] Stopped")
}

// pollLoop is the fixed-interval tick loop
func (d *Daemon) pollLoop() {
	defer d.wg.Done()

	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			return
		case <-ticker.C:
			d.tick()
		}
	}
}

// tick runs one poll cycle. Settings are loaded once and passed by value so
// a concurrent change cannot race the messages of this tick. The cutoff is
// wall-clock based (fixed lookback), not last-message based; the ledger
// absorbs the re-scanned overlap.
func (d *Daemon) tick() {
	ctx := d.ctx

	settings, err := d.settingsRepo.Load(ctx)
	if err != nil {
		fmt.Printf("[Daemon] Failed to load settings: %v\n", err)
		return
	}

	cutoff := time.Now().Add(-d.lookback)
	messages, err := d.chatStore.FetchRecentInbound(ctx, cutoff)
	if err != nil {
		// Store-access errors are fatal for this tick only; the next tick
		// retries with an unchanged cutoff window.
		fmt.Printf("[Daemon] Failed to fetch messages: %v\n", err)
		return
	}
	if len(messages) == 0 {
		return
	}

	// The store orders by its own timestamp, but batch order is not
	// guaranteed monotonic; sort before processing.
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].IsBefore(messages[j].Timestamp)
	})

	for _, msg := range messages {
		fresh, err := d.ledgerRepo.MarkIfNew(ctx, msg.ID)
		if err != nil {
			// Leave the message eligible for the next tick
			fmt.Printf("[Daemon] Ledger write failed for %s: %v\n", msg.ID, err)
			continue
		}
		if !fresh {
			continue
		}

		should, err := d.gateUC.ShouldRespond(ctx, settings, msg.Handle)
		if err != nil {
			fmt.Printf("[Daemon] Gate check failed for %s: %v\n", msg.Handle, err)
			continue
		}
		if !should {
			continue
		}

		fmt.Printf("[Daemon] New message from %s (%s)\n", msg.Handle, msg.ID)
		d.enqueue(&task{msg: msg, settings: settings})
	}
}

// enqueue hands a message to its handle's worker, creating the worker on
// first use. One sequential queue per handle preserves per-conversation
// ordering while distinct handles proceed concurrently. push never blocks,
// so a backed-up handle cannot stall the tick.
func (d *Daemon) enqueue(t *task) {
	d.workersMu.Lock()
	q, ok := d.workers[t.msg.Handle]
	if !ok {
		q = &handleQueue{wake: make(chan struct{}, 1)}
		d.workers[t.msg.Handle] = q
		d.wg.Add(1)
		go d.workerLoop(q)
	}
	d.workersMu.Unlock()

	q.push(t)
}

// workerLoop serializes reply processing for one handle
func (d *Daemon) workerLoop(q *handleQueue) {
	defer d.wg.Done()

	for {
		select {
		case <-d.ctx.Done():
			return
		default:
		}
		if t := q.pop(); t != nil {
			d.process(t)
			continue
		}
		select {
		case <-d.ctx.Done():
			return
		case <-q.wake:
		}
	}
}
