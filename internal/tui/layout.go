package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/interpretive-systems/triptych/internal/tui/styles"
)

const minPaneWidth = 20

// Layout manages screen layout calculations for the three columns.
type Layout struct {
	width        int
	height       int
	filesWidth   int
	historyWidth int
}

// NewLayout creates a new layout manager.
func NewLayout() *Layout {
	return &Layout{}
}

// SetSize updates the layout dimensions.
func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
	if l.filesWidth == 0 {
		l.filesWidth = width / 4
		if l.filesWidth < 24 {
			l.filesWidth = 24
		}
	}
	if l.historyWidth == 0 {
		l.historyWidth = 40
	}
}

// Width returns the total width.
func (l *Layout) Width() int {
	return l.width
}

// Height returns the total height.
func (l *Layout) Height() int {
	return l.height
}

// FilesWidth returns the Files column width.
func (l *Layout) FilesWidth() int {
	if l.filesWidth < minPaneWidth {
		return minPaneWidth
	}
	return l.filesWidth
}

// HistoryWidth returns the History column width.
func (l *Layout) HistoryWidth() int {
	if l.historyWidth < minPaneWidth {
		return minPaneWidth
	}
	return l.historyWidth
}

// SetFilesWidth sets the Files column width.
func (l *Layout) SetFilesWidth(w int) {
	if w >= minPaneWidth {
		l.filesWidth = w
	}
}

// SetHistoryWidth sets the History column width.
func (l *Layout) SetHistoryWidth(w int) {
	if w >= minPaneWidth {
		l.historyWidth = w
	}
}

// AdjustFilesWidth adjusts the Files column width by delta.
func (l *Layout) AdjustFilesWidth(delta int) {
	l.filesWidth = l.clampColumn(l.filesWidth + delta)
}

// AdjustHistoryWidth adjusts the History column width by delta.
func (l *Layout) AdjustHistoryWidth(delta int) {
	l.historyWidth = l.clampColumn(l.historyWidth + delta)
}

func (l *Layout) clampColumn(w int) int {
	if w < minPaneWidth {
		return minPaneWidth
	}
	max := l.width - minPaneWidth - 1
	if max < minPaneWidth {
		max = minPaneWidth
	}
	if w > max {
		return max
	}
	return w
}

// ColumnWidths returns the widths of the visible columns for the given
// navigation state. Dividers take one extra cell between columns.
func (l *Layout) ColumnWidths(state NavState, fullscreen bool) []int {
	if l.width <= 0 {
		return []int{1}
	}
	if state == StateFiles || fullscreen {
		return []int{l.width}
	}

	filesW := l.FilesWidth()
	if filesW > l.width-minPaneWidth-1 {
		filesW = l.width - minPaneWidth - 1
		if filesW < 1 {
			filesW = 1
		}
	}

	if state != StateDiffFocused {
		rest := l.width - filesW - 1
		if rest < 1 {
			rest = 1
		}
		return []int{filesW, rest}
	}

	histW := l.HistoryWidth()
	if histW > l.width-filesW-minPaneWidth-2 {
		histW = l.width - filesW - minPaneWidth - 2
		if histW < 1 {
			histW = 1
		}
	}
	diffW := l.width - filesW - histW - 2
	if diffW < 1 {
		diffW = 1
	}
	return []int{filesW, histW, diffW}
}

// ContentHeight returns the height available for column content.
func (l *Layout) ContentHeight(overlayHeight int) int {
	// top bar + top rule + bottom rule + bottom bar + overlays
	h := l.height - 4 - overlayHeight
	if h < 1 {
		h = 1
	}
	return h
}

// RenderFrame renders the full frame: top bar, rules, columns separated
// by dividers, an optional overlay, and the bottom bar.
func (l *Layout) RenderFrame(topBar string, cols [][]string, widths []int, overlay []string, bottomBar string, st styles.Styles) string {
	var b strings.Builder

	b.WriteString(padToWidth(topBar, l.width))
	b.WriteByte('\n')
	b.WriteString(st.Divider.Render(strings.Repeat("─", l.width)))
	b.WriteByte('\n')

	contentHeight := l.ContentHeight(len(overlay))
	sep := st.Divider.Render("│")

	for i := 0; i < contentHeight; i++ {
		for c, col := range cols {
			if c > 0 {
				b.WriteString(sep)
			}
			var line string
			if i < len(col) {
				line = col[i]
			}
			b.WriteString(padToWidth(line, widths[c]))
		}
		b.WriteByte('\n')
	}

	for _, line := range overlay {
		b.WriteString(padToWidth(line, l.width))
		b.WriteByte('\n')
	}

	b.WriteString(st.Divider.Render(strings.Repeat("─", l.width)))
	b.WriteByte('\n')
	b.WriteString(bottomBar)

	return b.String()
}

func padToWidth(s string, w int) string {
	width := lipgloss.Width(s)
	if width == w {
		return s
	}
	if width < w {
		return s + strings.Repeat(" ", w-width)
	}
	return ansi.Truncate(s, w, "…")
}
