// Package search implements incremental text search over the diff body.
package search

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/triptych/internal/tui/ansi"
)

// Engine holds the query, the content being searched, and the match
// cursor. Matching is case-insensitive and ignores ANSI styling.
type Engine struct {
	query   string
	matches []int
	index   int
	input   textinput.Model
	active  bool
	content []string
}

// New creates an inactive search engine.
func New() *Engine {
	ti := textinput.New()
	ti.Placeholder = "Search diff"
	ti.Prompt = "/ "
	ti.CharLimit = 0

	return &Engine{input: ti}
}

// Activate opens the search input.
func (e *Engine) Activate() {
	e.active = true
	e.input.Focus()
}

// Deactivate closes the search input. The query and matches are kept so
// n and N keep working after the input is dismissed.
func (e *Engine) Deactivate() {
	e.active = false
	e.input.Blur()
}

// Reset clears the query, the matches, and the input text. Used when
// the comparison the search was bound to goes away.
func (e *Engine) Reset() {
	e.active = false
	e.query = ""
	e.matches = nil
	e.index = 0
	e.content = nil
	e.input.SetValue("")
	e.input.Blur()
}

// IsActive reports whether the input is open and capturing keys.
func (e *Engine) IsActive() bool {
	return e.active
}

// HandleKey processes one key while the input is open. It always
// consumes the key; the caller checks IsActive afterwards to notice a
// dismissal.
func (e *Engine) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		e.Deactivate()
		return true, nil
	case "enter", "down":
		e.Next()
		return true, nil
	case "up":
		e.Previous()
		return true, nil
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	e.query = e.input.Value()
	e.recomputeMatches()

	return true, cmd
}

// SetContent replaces the lines being searched and recomputes matches
// against the current query.
func (e *Engine) SetContent(lines []string) {
	e.content = lines
	e.recomputeMatches()
}

// Query returns the current query text.
func (e *Engine) Query() string {
	return e.query
}

func (e *Engine) recomputeMatches() {
	if e.query == "" {
		e.matches = nil
		e.index = 0
		return
	}

	lowerQuery := strings.ToLower(e.query)
	matches := make([]int, 0, len(e.content))

	for i, line := range e.content {
		plain := strings.ToLower(ansi.Strip(line))
		if strings.Contains(plain, lowerQuery) {
			matches = append(matches, i)
		}
	}

	e.matches = matches
	if len(matches) > 0 && e.index >= len(matches) {
		e.index = 0
	}
}

// Next advances to the next match, wrapping around.
func (e *Engine) Next() {
	if len(e.matches) == 0 {
		return
	}
	e.index = (e.index + 1) % len(e.matches)
}

// Previous moves to the previous match, wrapping around.
func (e *Engine) Previous() {
	if len(e.matches) == 0 {
		return
	}
	e.index = (e.index - 1 + len(e.matches)) % len(e.matches)
}

// CurrentMatchLine returns the line index of the current match, or -1
// when there are no matches.
func (e *Engine) CurrentMatchLine() int {
	if len(e.matches) == 0 {
		return -1
	}
	return e.matches[e.index]
}

// HighlightedContent returns the content with match highlights applied.
func (e *Engine) HighlightedContent() []string {
	if e.query == "" || len(e.content) == 0 {
		return e.content
	}
	return highlightLines(e.content, e.query, e.matches, e.CurrentMatchLine())
}

// MatchCount returns the number of matching lines.
func (e *Engine) MatchCount() int {
	return len(e.matches)
}

// CurrentMatchIndex returns the 1-based index of the current match, 0
// when there are none.
func (e *Engine) CurrentMatchIndex() int {
	if len(e.matches) == 0 {
		return 0
	}
	return e.index + 1
}

// InputView renders the text input line.
func (e *Engine) InputView() string {
	return e.input.View()
}
