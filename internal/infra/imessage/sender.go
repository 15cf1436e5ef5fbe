package imessage

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"imessage-agent/internal/biz/repo"
)

// Delivery still goes through Messages.app via AppleScript; there is no
// supported API for sending. The script takes the handle and body as argv.
const sendTimeout = 15 * time.Second

// sender implements the platform send interface via osascript
type sender struct {
	scriptPath string
}

// NewSender creates a new AppleScript-backed sender
func NewSender(scriptPath string) repo.SenderRepo {
	return &sender{scriptPath: scriptPath}
}

// Send delivers a message through Messages.app. The subprocess carries its
// own timeout; a failure is returned to the caller and never retried here.
func (s *sender) Send(ctx context.Context, handle, body string) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "osascript", s.scriptPath, handle, body)
	out, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(out))
		if detail != "" {
			return fmt.Errorf("osascript send: %w: %s", err, detail)
		}
		return fmt.Errorf("osascript send: %w", err)
	}
	return nil
}
