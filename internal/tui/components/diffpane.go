package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/triptych/internal/diffview"
	"github.com/interpretive-systems/triptych/internal/gitx"
	"github.com/interpretive-systems/triptych/internal/tui/ansi"
	"github.com/interpretive-systems/triptych/internal/tui/styles"
)

// DiffPane manages the Diff column: one open comparison at a time, its
// command mode, and the color, wrap, and scroll toggles. The raw diff
// text is retained unmodified so the colorless view and the clipboard
// get byte-identical output.
type DiffPane struct {
	header  string
	raw     string
	rows    []diffview.Row
	vp      viewport.Model
	mode    gitx.DiffMode
	color   bool
	wrap    bool
	xOffset int
	loading bool
	err     error
	width   int
	content []string
	st      styles.Styles
}

// NewDiffPane creates an empty pane.
func NewDiffPane(st styles.Styles) *DiffPane {
	return &DiffPane{st: st}
}

// Open resets the pane for a newly opened comparison. The command mode
// returns to the default; color and wrap start from the caller's
// persisted preferences.
func (d *DiffPane) Open(header string, color, wrap bool) {
	d.header = header
	d.raw = ""
	d.rows = nil
	d.mode = gitx.ModeDefault
	d.color = color
	d.wrap = wrap
	d.xOffset = 0
	d.loading = true
	d.err = nil
	d.vp.GotoTop()
	d.rebuild()
}

// Header returns the comparison header line.
func (d *DiffPane) Header() string {
	return d.header
}

// Raw returns the unstyled diff text as produced by the external tool.
func (d *DiffPane) Raw() string {
	return d.raw
}

// SetText installs freshly rendered diff text.
func (d *DiffPane) SetText(text string) {
	d.raw = text
	d.rows = diffview.BuildRows(text)
	d.loading = false
	d.err = nil
	d.vp.GotoTop()
	d.rebuild()
}

// SetError records a failed diff invocation. The header keeps rendering
// above the error body.
func (d *DiffPane) SetError(err error) {
	d.err = err
	d.raw = ""
	d.rows = nil
	d.loading = false
	d.rebuild()
}

// Mode returns the current command mode.
func (d *DiffPane) Mode() gitx.DiffMode {
	return d.mode
}

// CycleMode advances the command mode and puts the pane back into the
// loading state until the re-rendered text arrives.
func (d *DiffPane) CycleMode() gitx.DiffMode {
	d.mode = d.mode.Next()
	d.loading = true
	d.rebuild()
	return d.mode
}

// Color reports whether ANSI styling is applied.
func (d *DiffPane) Color() bool {
	return d.color
}

// ToggleColor flips styling without re-invoking the external diff.
func (d *DiffPane) ToggleColor() bool {
	d.color = !d.color
	d.rebuild()
	return d.color
}

// Wrap reports whether long lines wrap.
func (d *DiffPane) Wrap() bool {
	return d.wrap
}

// ToggleWrap flips line wrapping. Wrapping and horizontal scroll are
// mutually exclusive.
func (d *DiffPane) ToggleWrap() bool {
	d.wrap = !d.wrap
	if d.wrap {
		d.xOffset = 0
	}
	d.rebuild()
	return d.wrap
}

// SetSize updates the pane dimensions. One line is reserved for the
// header above the scrolling body.
func (d *DiffPane) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	bodyH := height - 1
	if bodyH < 1 {
		bodyH = 1
	}
	d.width = width
	d.vp.Width = width
	d.vp.Height = bodyH
	d.rebuild()
}

// ScrollLeft scrolls the body left by delta columns.
func (d *DiffPane) ScrollLeft(delta int) {
	if d.wrap {
		return
	}
	d.xOffset -= delta
	if d.xOffset < 0 {
		d.xOffset = 0
	}
	d.rebuild()
}

// ScrollRight scrolls the body right by delta columns.
func (d *DiffPane) ScrollRight(delta int) {
	if d.wrap {
		return
	}
	d.xOffset += delta
	d.rebuild()
}

// ScrollHome resets horizontal scroll.
func (d *DiffPane) ScrollHome() {
	if d.xOffset == 0 {
		return
	}
	d.xOffset = 0
	d.rebuild()
}

// XOffset returns the current horizontal offset.
func (d *DiffPane) XOffset() int {
	return d.xOffset
}

// Viewport returns the underlying viewport for scroll handling.
func (d *DiffPane) Viewport() *viewport.Model {
	return &d.vp
}

// JumpTo scrolls the body so the given content line is centered.
func (d *DiffPane) JumpTo(line int) {
	if line < 0 {
		return
	}
	y := line - d.vp.Height/2
	if y < 0 {
		y = 0
	}
	d.vp.SetYOffset(y)
}

// Content returns the plain rendered body lines, for searching. The
// slice is refreshed on every content or toggle change and is never
// affected by SetContent.
func (d *DiffPane) Content() []string {
	return d.content
}

// SetContent swaps the displayed body lines without touching the plain
// rendering, used for search highlights. The next rebuild replaces it.
func (d *DiffPane) SetContent(lines []string) {
	d.vp.SetContent(strings.Join(lines, "\n"))
}

// Lines renders the full column: header first, then the body viewport.
func (d *DiffPane) Lines() []string {
	header := ansi.TruncateToWidth(d.st.Title.Render(d.header), d.width)
	body := strings.Split(d.vp.View(), "\n")
	return append([]string{header}, body...)
}

// rebuild regenerates the body content from the current raw text and
// toggles.
func (d *DiffPane) rebuild() {
	switch {
	case d.loading:
		d.content = []string{d.st.Faint.Render("Loading diff…")}
	case d.err != nil:
		d.content = d.errorLines()
	case d.color:
		d.content = d.present(d.styledRows())
	default:
		d.content = d.present(strings.Split(d.raw, "\n"))
	}
	d.vp.SetContent(strings.Join(d.content, "\n"))
}

func (d *DiffPane) errorLines() []string {
	lines := []string{d.st.Error.Render("diff unavailable")}
	for _, l := range strings.Split(d.err.Error(), "\n") {
		lines = append(lines, d.st.Faint.Render(ansi.ClipToWidth(l, d.width)))
	}
	return lines
}

// present applies the wrap or horizontal-scroll transform for display.
func (d *DiffPane) present(lines []string) []string {
	if d.wrap && d.width > 0 {
		return ansi.WrapLines(lines, d.width)
	}
	if d.xOffset > 0 {
		out := make([]string, len(lines))
		for i, line := range lines {
			out[i] = ansi.SliceHorizontal(line, d.xOffset, d.width)
		}
		return out
	}
	return lines
}

const gutterBlank = "     "

func (d *DiffPane) styledRows() []string {
	lines := make([]string, 0, len(d.rows))
	for _, r := range d.rows {
		switch r.Kind {
		case diffview.RowMeta:
			lines = append(lines, gutterBlank+d.st.Meta.Render(r.Text))
		case diffview.RowHunk:
			lines = append(lines, gutterBlank+d.st.Hunk.Render(r.Text))
		case diffview.RowContext:
			lines = append(lines, d.gutter(r.NewLine)+" "+r.Text)
		case diffview.RowAdd:
			lines = append(lines, d.gutter(r.NewLine)+d.styledLine("+", r, d.st.Add, d.st.WordAdd))
		case diffview.RowDel:
			lines = append(lines, d.gutter(r.OldLine)+d.styledLine("-", r, d.st.Del, d.st.WordDel))
		}
	}
	return lines
}

func (d *DiffPane) gutter(n int) string {
	return d.st.Faint.Render(fmt.Sprintf("%4d ", n))
}

func (d *DiffPane) styledLine(sign string, r diffview.Row, line, word lipgloss.Style) string {
	if len(r.Segs) == 0 {
		return line.Render(sign + r.Text)
	}
	var b strings.Builder
	b.WriteString(line.Render(sign))
	for _, seg := range r.Segs {
		if seg.Changed {
			b.WriteString(word.Render(seg.Text))
		} else {
			b.WriteString(line.Render(seg.Text))
		}
	}
	return b.String()
}
