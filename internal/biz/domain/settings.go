package domain

import (
	"strconv"
	"time"
)

// Recognized settings keys
const (
	SettingAgentEnabled   = "agent_enabled"
	SettingWarmupComplete = "warmup_complete"
	SettingDelayMinMs     = "reply_delay_min_ms"
	SettingDelayMaxMs     = "reply_delay_max_ms"
)

// Default values used when a key is absent
const (
	DefaultDelayMin = 2000 * time.Millisecond
	DefaultDelayMax = 8000 * time.Millisecond
)

// Settings is a read-only snapshot of the settings table, loaded once per
// poll tick and passed by value so a concurrent settings change never races
// an in-flight tick.
type Settings map[string]string

// AgentEnabled reports whether auto-reply is globally enabled
func (s Settings) AgentEnabled() bool {
	return s[SettingAgentEnabled] == "1"
}

// WarmupComplete reports whether a persona has been synthesized
func (s Settings) WarmupComplete() bool {
	return s[SettingWarmupComplete] == "1"
}

// ReplyDelayBounds returns the configured min/max artificial reply delay.
// Absent or malformed values fall back to the defaults; an inverted range
// collapses to the min.
func (s Settings) ReplyDelayBounds() (time.Duration, time.Duration) {
	min := durationMs(s[SettingDelayMinMs], DefaultDelayMin)
	max := durationMs(s[SettingDelayMaxMs], DefaultDelayMax)
	if max < min {
		max = min
	}
	return min, max
}

func durationMs(val string, fallback time.Duration) time.Duration {
	if val == "" {
		return fallback
	}
	ms, err := strconv.Atoi(val)
	if err != nil || ms < 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
