package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/triptych/internal/tui/ansi"
)

// RenderOverlay renders the search input and match status as overlay
// lines, nil while the input is closed.
func (e *Engine) RenderOverlay(width int, divider lipgloss.Style) []string {
	if !e.active || width <= 0 {
		return nil
	}

	lines := make([]string, 0, 3)
	lines = append(lines, divider.Render(strings.Repeat("─", width)))
	lines = append(lines, ansi.PadExact(e.InputView(), width))

	status := "Type to search (esc: close, enter: finish typing)"
	if e.query != "" {
		if len(e.matches) == 0 {
			status = "No matches (esc: close)"
		} else {
			status = fmt.Sprintf(
				"Match %d of %d  (enter/↓: next, ↑: prev, esc: close)",
				e.CurrentMatchIndex(),
				e.MatchCount(),
			)
		}
	}

	lines = append(lines, ansi.PadExact(lipgloss.NewStyle().Faint(true).Render(status), width))

	return lines
}
