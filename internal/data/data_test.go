package data

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"imessage-agent/internal/biz/domain"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()

	repos, err := NewRepositories(filepath.Join(t.TempDir(), "agent.db"), nil)
	if err != nil {
		t.Fatalf("open repositories: %v", err)
	}
	t.Cleanup(func() { repos.Close() })
	return repos
}

func TestSettingsDefaultsSeeded(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	settings, err := repos.Settings.Load(ctx)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}

	if settings.AgentEnabled() {
		t.Error("agent should be disabled by default")
	}
	if settings.WarmupComplete() {
		t.Error("warmup should be incomplete by default")
	}

	min, max := settings.ReplyDelayBounds()
	if min != 2*time.Second || max != 8*time.Second {
		t.Errorf("expected default delay bounds 2s/8s, got %v/%v", min, max)
	}
}

func TestSettingsSetAndReload(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	if err := repos.Settings.Set(ctx, domain.SettingAgentEnabled, "1"); err != nil {
		t.Fatalf("set: %v", err)
	}

	settings, err := repos.Settings.Load(ctx)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if !settings.AgentEnabled() {
		t.Error("expected agent enabled after set")
	}
}

func TestLedgerMarkIfNewIdempotent(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	fresh, err := repos.Ledger.MarkIfNew(ctx, "guid-1")
	if err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if !fresh {
		t.Error("first mark should report new")
	}

	// Any number of further marks must report already-seen
	for i := 0; i < 3; i++ {
		fresh, err = repos.Ledger.MarkIfNew(ctx, "guid-1")
		if err != nil {
			t.Fatalf("repeat mark: %v", err)
		}
		if fresh {
			t.Error("repeat mark should report already seen")
		}
	}

	fresh, err = repos.Ledger.MarkIfNew(ctx, "guid-2")
	if err != nil {
		t.Fatalf("second id: %v", err)
	}
	if !fresh {
		t.Error("a distinct id should report new")
	}
}

func TestTurnLogAppendAndRecent(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 4; i++ {
		turn := &domain.ConversationTurn{
			Handle:    "+15551234567",
			Direction: domain.DirectionInbound,
			Body:      string(rune('a' + i)),
			SentAt:    base.Add(time.Duration(i) * time.Minute),
		}
		if i%2 == 1 {
			turn.Direction = domain.DirectionOutbound
			turn.AutoGenerated = true
		}
		if err := repos.TurnLog.Append(ctx, turn); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	// Different handle must not leak into the history
	if err := repos.TurnLog.Append(ctx, &domain.ConversationTurn{
		Handle:    "other@example.com",
		Direction: domain.DirectionInbound,
		Body:      "z",
		SentAt:    base,
	}); err != nil {
		t.Fatalf("append other: %v", err)
	}

	turns, err := repos.TurnLog.RecentByHandle(ctx, "+15551234567", 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(turns) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(turns))
	}

	// Newest first
	if turns[0].Body != "d" || turns[1].Body != "c" || turns[2].Body != "b" {
		t.Errorf("unexpected order: %q %q %q", turns[0].Body, turns[1].Body, turns[2].Body)
	}
	if !turns[0].AutoGenerated || turns[0].Direction != domain.DirectionOutbound {
		t.Error("outbound auto-generated flags lost")
	}
}

func TestPersonaProfileRoundTrip(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	profile, err := repos.Persona.GetProfile(ctx)
	if err != nil {
		t.Fatalf("get empty profile: %v", err)
	}
	if profile != nil {
		t.Fatal("expected nil profile before synthesis")
	}

	want := &domain.PersonaProfile{
		Version:       "v-1",
		Summary:       "dry wit, short messages",
		Tone:          "dry, playful",
		Quirks:        []string{"ends messages with 'lol'"},
		SamplePhrases: []string{"no shot", "bet"},
		UpdatedAt:     time.Now(),
	}
	if err := repos.Persona.ReplaceProfile(ctx, want); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := repos.Persona.GetProfile(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got == nil {
		t.Fatal("expected profile after replace")
	}
	if got.Version != "v-1" || got.Summary != want.Summary || got.Tone != want.Tone {
		t.Errorf("profile fields mismatch: %+v", got)
	}
	if len(got.Quirks) != 1 || got.Quirks[0] != "ends messages with 'lol'" {
		t.Errorf("quirks mismatch: %v", got.Quirks)
	}
	if len(got.SamplePhrases) != 2 || got.SamplePhrases[1] != "bet" {
		t.Errorf("sample phrases mismatch: %v", got.SamplePhrases)
	}

	// Re-synthesis replaces wholesale, never merges
	second := &domain.PersonaProfile{
		Version: "v-2",
		Summary: "new summary",
		Tone:    "calm",
	}
	if err := repos.Persona.ReplaceProfile(ctx, second); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	got, err = repos.Persona.GetProfile(ctx)
	if err != nil {
		t.Fatalf("get replaced profile: %v", err)
	}
	if got.Version != "v-2" || len(got.Quirks) != 0 {
		t.Errorf("expected wholesale replacement, got %+v", got)
	}
}

func TestContactsUnknownHandle(t *testing.T) {
	repos := newTestRepos(t)

	contact, err := repos.Contacts.GetByHandle(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("get contact: %v", err)
	}
	if contact != nil {
		t.Errorf("expected nil for unknown handle, got %+v", contact)
	}
}

func TestContactsReadBack(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	// The dashboard owns contact writes; emulate its insert
	_, err := repos.db.Exec(`
		INSERT INTO contacts (phone_or_handle, display_name, auto_reply, mode)
		VALUES (?, ?, ?, ?)
	`, "+15551234567", "Alice", 1, "always")
	if err != nil {
		t.Fatalf("insert contact: %v", err)
	}

	contact, err := repos.Contacts.GetByHandle(ctx, "+15551234567")
	if err != nil {
		t.Fatalf("get contact: %v", err)
	}
	if contact == nil {
		t.Fatal("expected contact")
	}
	if !contact.AutoReply || contact.Mode != domain.ReplyModeAlways || contact.DisplayName != "Alice" {
		t.Errorf("contact fields mismatch: %+v", contact)
	}

	all, err := repos.Contacts.ListAll(ctx)
	if err != nil {
		t.Fatalf("list contacts: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 contact, got %d", len(all))
	}
}
