package components

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/interpretive-systems/triptych/internal/history"
	"github.com/interpretive-systems/triptych/internal/tui/ansi"
	"github.com/interpretive-systems/triptych/internal/tui/styles"
)

func testEntries() []history.Entry {
	return []history.Entry{
		{Kind: history.KindModified, Ref: history.ModifiedRef, Time: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		{Kind: history.KindStaged, Ref: history.StagedRef, Time: time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)},
		{Kind: history.KindReal, Ref: "bbb222", Short: "bbb222", Label: "fix parser", Time: time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC)},
		{Kind: history.KindReal, Ref: "aaa111", Short: "aaa111", Label: "initial", Time: time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)},
	}
}

func renderJoined(h *HistoryPane, marked int) string {
	return ansi.Strip(strings.Join(h.Render(marked, 10, 60, styles.DefaultStyles()), "\n"))
}

func TestHistoryPane_EmptyStates(t *testing.T) {
	h := NewHistoryPane()
	if got := renderJoined(h, -1); !strings.Contains(got, "(no history for this file)") {
		t.Fatalf("empty render = %q", got)
	}

	h.SetNoRepo(true)
	if got := renderJoined(h, -1); !strings.Contains(got, "(not under version control)") {
		t.Fatalf("no-repo render = %q", got)
	}

	h.SetNoRepo(false)
	h.SetLoading()
	if got := renderJoined(h, -1); !strings.Contains(got, "Loading history") {
		t.Fatalf("loading render = %q", got)
	}

	h.SetError(errors.New("log failed"))
	got := renderJoined(h, -1)
	if !strings.Contains(got, "history unavailable") || !strings.Contains(got, "log failed") {
		t.Fatalf("error render = %q", got)
	}
}

func TestHistoryPane_SetEntriesResetsCursor(t *testing.T) {
	h := NewHistoryPane()
	h.SetEntries(testEntries())
	h.MoveSelection(2)
	if got := h.Selected(); got != 2 {
		t.Fatalf("selected = %d, want 2", got)
	}

	h.SetEntries(testEntries()[:2])
	if got := h.Selected(); got != 0 {
		t.Fatalf("selected after replace = %d, want 0", got)
	}
	if got := h.Len(); got != 2 {
		t.Fatalf("len = %d, want 2", got)
	}
}

func TestHistoryPane_RenderRows(t *testing.T) {
	h := NewHistoryPane()
	h.SetEntries(testEntries())

	got := renderJoined(h, -1)
	if !strings.Contains(got, "MODS") || !strings.Contains(got, "working tree") {
		t.Fatalf("render = %q, want working tree row", got)
	}
	if !strings.Contains(got, "STAGED") || !strings.Contains(got, "index") {
		t.Fatalf("render = %q, want index row", got)
	}
	if !strings.Contains(got, "bbb222") || !strings.Contains(got, "fix parser") {
		t.Fatalf("render = %q, want commit row with subject", got)
	}
	if !strings.Contains(got, "2024-04-02 09:30") {
		t.Fatalf("render = %q, want commit date", got)
	}
}

func TestHistoryPane_RenderMark(t *testing.T) {
	h := NewHistoryPane()
	h.SetEntries(testEntries())

	lines := h.Render(2, 10, 60, styles.DefaultStyles())
	for i, line := range lines {
		plain := ansi.Strip(line)
		hasCheck := strings.Contains(plain, "✓")
		if i == 2 && !hasCheck {
			t.Fatalf("marked row %d = %q, want checkmark", i, plain)
		}
		if i != 2 && hasCheck {
			t.Fatalf("row %d = %q, stray checkmark", i, plain)
		}
	}

	if got := renderJoined(h, -1); strings.Contains(got, "✓") {
		t.Fatalf("render without mark = %q, stray checkmark", got)
	}
}

func TestHistoryPane_WindowFollowsSelection(t *testing.T) {
	entries := make([]history.Entry, 0, 30)
	for i := 0; i < 30; i++ {
		entries = append(entries, history.Entry{
			Kind:  history.KindReal,
			Ref:   strings.Repeat("a", 6),
			Short: strings.Repeat("a", 6),
			Label: "commit",
		})
	}
	h := NewHistoryPane()
	h.SetEntries(entries)

	h.MoveSelection(25)
	lines := h.Render(-1, 5, 60, styles.DefaultStyles())
	if len(lines) != 5 {
		t.Fatalf("rendered %d lines, want 5", len(lines))
	}
	var hasCursor bool
	for _, line := range lines {
		if strings.HasPrefix(ansi.Strip(line), ">") {
			hasCursor = true
		}
	}
	if !hasCursor {
		t.Fatal("cursor row scrolled out of the window")
	}
}
