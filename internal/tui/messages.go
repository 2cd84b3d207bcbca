package tui

import (
	"github.com/interpretive-systems/triptych/internal/gitx"
	"github.com/interpretive-systems/triptych/internal/history"
	"github.com/interpretive-systems/triptych/internal/prefs"
)

// tickMsg triggers the periodic fallback refresh.
type tickMsg struct{}

// refreshMsg reports a debounced filesystem change from the watcher.
type refreshMsg struct{}

// dirMsg contains a loaded directory listing. dir tags the request so
// stale results for a directory the user already left are dropped.
type dirMsg struct {
	dir     string
	entries []gitx.DirEntry
	err     error
}

// historyMsg contains loaded history entries for one file. path tags
// the request against the current file selection.
type historyMsg struct {
	path    string
	entries []history.Entry
	err     error
}

// diffMsg contains rendered diff text. key and mode tag the request
// against the currently open comparison.
type diffMsg struct {
	key  string
	mode gitx.DiffMode
	text string
	err  error
}

// branchMsg contains the current branch name.
type branchMsg struct {
	name string
	err  error
}

// prefsMsg contains loaded per-repository preferences.
type prefsMsg struct {
	p prefs.Prefs
}

// yankMsg reports the outcome of a clipboard copy.
type yankMsg struct {
	err error
}
