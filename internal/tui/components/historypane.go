package components

import (
	"github.com/interpretive-systems/triptych/internal/history"
	"github.com/interpretive-systems/triptych/internal/tui/ansi"
	"github.com/interpretive-systems/triptych/internal/tui/styles"
)

// HistoryPane manages the History column: the entry list for the
// selected file plus cursor and scroll state. The entries themselves
// are owned by the history model; the pane only displays them.
type HistoryPane struct {
	entries  []history.Entry
	selected int
	offset   int
	loading  bool
	noRepo   bool
	err      error
}

// NewHistoryPane creates an empty pane.
func NewHistoryPane() *HistoryPane {
	return &HistoryPane{}
}

// SetEntries replaces the displayed entries and resets the cursor.
func (h *HistoryPane) SetEntries(entries []history.Entry) {
	h.entries = entries
	h.loading = false
	h.err = nil
	h.selected = 0
	h.offset = 0
}

// SetLoading puts the pane into the loading state.
func (h *HistoryPane) SetLoading() {
	h.loading = true
	h.err = nil
	h.entries = nil
	h.selected = 0
	h.offset = 0
}

// SetError records a failed history query for display.
func (h *HistoryPane) SetError(err error) {
	h.err = err
	h.loading = false
	h.entries = nil
}

// SetNoRepo marks the pane as browsing outside any repository.
func (h *HistoryPane) SetNoRepo(v bool) {
	h.noRepo = v
}

// Selected returns the highlighted entry index.
func (h *HistoryPane) Selected() int {
	return h.selected
}

// Len returns the number of displayed entries.
func (h *HistoryPane) Len() int {
	return len(h.entries)
}

// MoveSelection moves the highlight by delta, clamped to the list.
func (h *HistoryPane) MoveSelection(delta int) bool {
	if len(h.entries) == 0 {
		return false
	}
	newSel := h.selected + delta
	if newSel < 0 {
		newSel = 0
	}
	if newSel >= len(h.entries) {
		newSel = len(h.entries) - 1
	}
	changed := newSel != h.selected
	h.selected = newSel
	return changed
}

// GoToTop moves the highlight to the newest entry.
func (h *HistoryPane) GoToTop() bool {
	if len(h.entries) == 0 || h.selected == 0 {
		return false
	}
	h.selected = 0
	return true
}

// GoToBottom moves the highlight to the oldest entry.
func (h *HistoryPane) GoToBottom() bool {
	if len(h.entries) == 0 {
		return false
	}
	last := len(h.entries) - 1
	if h.selected == last {
		return false
	}
	h.selected = last
	return true
}

// PageUp moves the highlight up by one page.
func (h *HistoryPane) PageUp(visibleCount int) bool {
	if visibleCount < 2 {
		visibleCount = 2
	}
	return h.MoveSelection(-(visibleCount - 1))
}

// PageDown moves the highlight down by one page.
func (h *HistoryPane) PageDown(visibleCount int) bool {
	if visibleCount < 2 {
		visibleCount = 2
	}
	return h.MoveSelection(visibleCount - 1)
}

// EnsureVisible scrolls the window so the highlight stays on screen.
func (h *HistoryPane) EnsureVisible(visibleCount int) {
	if len(h.entries) == 0 || visibleCount <= 0 {
		return
	}
	if h.offset < 0 {
		h.offset = 0
	}
	maxStart := len(h.entries) - visibleCount
	if maxStart < 0 {
		maxStart = 0
	}
	if h.offset > maxStart {
		h.offset = maxStart
	}
	if h.selected < h.offset {
		h.offset = h.selected
	} else if h.selected >= h.offset+visibleCount {
		h.offset = h.selected - visibleCount + 1
		if h.offset < 0 {
			h.offset = 0
		}
	}
	if h.offset > maxStart {
		h.offset = maxStart
	}
}

// Render renders the visible window of entries. marked is the index of
// the checked comparison base, or a negative value for none.
func (h *HistoryPane) Render(marked, height, width int, st styles.Styles) []string {
	lines := make([]string, 0, height)

	if h.loading {
		return append(lines, st.Faint.Render("Loading history…"))
	}
	if h.err != nil {
		return append(lines, st.Error.Render("history unavailable"),
			st.Faint.Render(ansi.TruncateToWidth(h.err.Error(), width)))
	}
	if len(h.entries) == 0 {
		if h.noRepo {
			return append(lines, st.Faint.Render("(not under version control)"))
		}
		return append(lines, st.Faint.Render("(no history for this file)"))
	}

	h.EnsureVisible(height)

	end := h.offset + height
	if end > len(h.entries) {
		end = len(h.entries)
	}
	for i := h.offset; i < end; i++ {
		lines = append(lines, h.renderRow(i, marked, width, st))
	}
	return lines
}

func (h *HistoryPane) renderRow(i, marked, width int, st styles.Styles) string {
	e := h.entries[i]

	cursor := "  "
	if i == h.selected {
		cursor = st.Cursor.Render("> ")
	}

	check := "  "
	if i == marked {
		check = st.Checkmark.Render("✓") + " "
	}

	ref := ansi.PadExact(e.DisplayRef(), 8)
	var label string
	switch e.Kind {
	case history.KindModified:
		ref = st.Synthetic.Render(ref)
		label = st.Faint.Render("working tree")
	case history.KindStaged:
		ref = st.Synthetic.Render(ref)
		label = st.Faint.Render("index")
	default:
		ref = st.Faint.Render(ref)
		label = e.Label
	}

	line := cursor + check + ref + " " + label
	if !e.Time.IsZero() {
		line += "  " + st.Faint.Render(e.Time.Format("2006-01-02 15:04"))
	}
	return ansi.TruncateToWidth(line, width)
}
