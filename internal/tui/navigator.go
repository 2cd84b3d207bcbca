package tui

// NavState identifies which column holds focus and which columns are
// open. Focus is always exactly one column.
type NavState int

const (
	// StateFiles shows only the Files column.
	StateFiles NavState = iota
	// StateFilesWithHistory keeps focus on Files while the History
	// column stays open for the selected file.
	StateFilesWithHistory
	// StateHistoryFocused has focus in the History column.
	StateHistoryFocused
	// StateDiffFocused has focus in the Diff column.
	StateDiffFocused
)

func (s NavState) String() string {
	switch s {
	case StateFilesWithHistory:
		return "files+history"
	case StateHistoryFocused:
		return "history"
	case StateDiffFocused:
		return "diff"
	default:
		return "files"
	}
}

// Navigator owns the column focus state machine. Every transition is a
// named method with an explicit source-state guard; calls from any other
// state are no-ops, so arbitrary input sequences cannot reach an
// inconsistent state.
type Navigator struct {
	state      NavState
	fullscreen bool
}

// NewNavigator starts in the Files column.
func NewNavigator() *Navigator {
	return &Navigator{state: StateFiles}
}

// State returns the current focus state.
func (n *Navigator) State() NavState {
	return n.state
}

// EnterHistory moves focus from Files into the History column.
func (n *Navigator) EnterHistory() {
	if n.state == StateFiles || n.state == StateFilesWithHistory {
		n.state = StateHistoryFocused
	}
}

// LeaveHistory returns focus to Files, keeping the History column open
// and its entries and mark intact.
func (n *Navigator) LeaveHistory() {
	if n.state == StateHistoryFocused {
		n.state = StateFilesWithHistory
	}
}

// CloseHistory drops back to the plain Files column. Called when the
// file selection changes and the open history no longer applies.
func (n *Navigator) CloseHistory() {
	n.state = StateFiles
	n.fullscreen = false
}

// EnterDiff moves focus from History into the Diff column. Fullscreen
// starts off for every newly opened comparison.
func (n *Navigator) EnterDiff() {
	if n.state == StateHistoryFocused {
		n.state = StateDiffFocused
		n.fullscreen = false
	}
}

// LeaveDiff closes the Diff column and returns focus to History.
func (n *Navigator) LeaveDiff() {
	if n.state == StateDiffFocused {
		n.state = StateHistoryFocused
		n.fullscreen = false
	}
}

// ToggleFullscreen flips the diff fullscreen flag. Meaningful only
// while the Diff column is focused.
func (n *Navigator) ToggleFullscreen() {
	if n.state == StateDiffFocused {
		n.fullscreen = !n.fullscreen
	}
}

// Fullscreen reports whether the Diff column covers the whole frame.
func (n *Navigator) Fullscreen() bool {
	return n.state == StateDiffFocused && n.fullscreen
}

// HistoryVisible reports whether the History column is open.
func (n *Navigator) HistoryVisible() bool {
	return n.state != StateFiles
}

// DiffVisible reports whether the Diff column is open.
func (n *Navigator) DiffVisible() bool {
	return n.state == StateDiffFocused
}
