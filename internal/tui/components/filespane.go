package components

import (
	"path/filepath"

	"github.com/interpretive-systems/triptych/internal/gitx"
	"github.com/interpretive-systems/triptych/internal/tui/ansi"
	"github.com/interpretive-systems/triptych/internal/tui/styles"
)

// Row is a single entry in the Files column: the virtual ".." parent
// row or a directory listing entry.
type Row struct {
	Name   string
	IsDir  bool
	Parent bool
	Marker gitx.Marker
}

// FilesPane manages the Files column: one directory listing at a time
// plus cursor and scroll state.
type FilesPane struct {
	dir      string
	rows     []Row
	selected int
	offset   int
	noRepo   bool
	err      error
	loading  bool
}

// NewFilesPane creates an empty pane in the loading state.
func NewFilesPane() *FilesPane {
	return &FilesPane{loading: true}
}

// SetListing replaces the pane content with a freshly listed directory.
// The cursor resets to the first row. A ".." row is pinned on top
// except at the filesystem root.
func (f *FilesPane) SetListing(dir string, entries []gitx.DirEntry, err error) {
	f.dir = dir
	f.err = err
	f.loading = false
	f.selected = 0
	f.offset = 0

	f.rows = f.rows[:0]
	if filepath.Dir(dir) != dir {
		f.rows = append(f.rows, Row{Name: "..", IsDir: true, Parent: true})
	}
	for _, e := range entries {
		f.rows = append(f.rows, Row{Name: e.Name, IsDir: e.IsDir, Marker: e.Marker})
	}
}

// SetNoRepo marks the pane as browsing outside any repository.
func (f *FilesPane) SetNoRepo(v bool) {
	f.noRepo = v
}

// Dir returns the directory currently listed.
func (f *FilesPane) Dir() string {
	return f.dir
}

// SelectedRow returns the row under the cursor.
func (f *FilesPane) SelectedRow() (Row, bool) {
	if f.selected < 0 || f.selected >= len(f.rows) {
		return Row{}, false
	}
	return f.rows[f.selected], true
}

// SelectName moves the cursor to the row with the given name, if
// present. Used to re-select the directory just exited after ascending.
func (f *FilesPane) SelectName(name string) {
	for i, r := range f.rows {
		if r.Name == name {
			f.selected = i
			return
		}
	}
}

// MoveSelection moves the cursor by delta, clamped to the listing.
// Reports whether the selection changed.
func (f *FilesPane) MoveSelection(delta int) bool {
	if len(f.rows) == 0 {
		return false
	}
	newSel := f.selected + delta
	if newSel < 0 {
		newSel = 0
	}
	if newSel >= len(f.rows) {
		newSel = len(f.rows) - 1
	}
	changed := newSel != f.selected
	f.selected = newSel
	return changed
}

// GoToTop moves the cursor to the first row.
func (f *FilesPane) GoToTop() bool {
	if len(f.rows) == 0 || f.selected == 0 {
		return false
	}
	f.selected = 0
	return true
}

// GoToBottom moves the cursor to the last row.
func (f *FilesPane) GoToBottom() bool {
	if len(f.rows) == 0 {
		return false
	}
	last := len(f.rows) - 1
	if f.selected == last {
		return false
	}
	f.selected = last
	return true
}

// PageUp moves the cursor up by one page.
func (f *FilesPane) PageUp(visibleCount int) bool {
	if visibleCount < 2 {
		visibleCount = 2
	}
	return f.MoveSelection(-(visibleCount - 1))
}

// PageDown moves the cursor down by one page.
func (f *FilesPane) PageDown(visibleCount int) bool {
	if visibleCount < 2 {
		visibleCount = 2
	}
	return f.MoveSelection(visibleCount - 1)
}

// EnsureVisible scrolls the window so the cursor stays on screen.
func (f *FilesPane) EnsureVisible(visibleCount int) {
	if len(f.rows) == 0 || visibleCount <= 0 {
		return
	}
	if f.offset < 0 {
		f.offset = 0
	}
	maxStart := len(f.rows) - visibleCount
	if maxStart < 0 {
		maxStart = 0
	}
	if f.offset > maxStart {
		f.offset = maxStart
	}
	if f.selected < f.offset {
		f.offset = f.selected
	} else if f.selected >= f.offset+visibleCount {
		f.offset = f.selected - visibleCount + 1
		if f.offset < 0 {
			f.offset = 0
		}
	}
	if f.offset > maxStart {
		f.offset = maxStart
	}
}

// Render renders the visible window of rows.
func (f *FilesPane) Render(height, width int, st styles.Styles) []string {
	lines := make([]string, 0, height)

	if f.loading {
		return append(lines, st.Faint.Render("Loading…"))
	}
	if f.err != nil {
		return append(lines, st.Error.Render("cannot list directory"),
			st.Faint.Render(ansi.TruncateToWidth(f.err.Error(), width)))
	}
	if len(f.rows) == 0 {
		return append(lines, st.Faint.Render("(empty directory)"))
	}

	f.EnsureVisible(height)

	end := f.offset + height
	if end > len(f.rows) {
		end = len(f.rows)
	}
	for i := f.offset; i < end; i++ {
		lines = append(lines, f.renderRow(i, width, st))
	}
	return lines
}

func (f *FilesPane) renderRow(i, width int, st styles.Styles) string {
	r := f.rows[i]

	cursor := "  "
	if i == f.selected {
		cursor = st.Cursor.Render("> ")
	}

	marker := " "
	if !r.Parent && r.Marker != gitx.MarkerClean {
		marker = st.Marker(r.Marker).Render(r.Marker.Symbol())
	}

	name := r.Name
	if r.IsDir {
		name += "/"
	}
	name = ansi.TruncateToWidth(name, width-4)
	switch {
	case r.IsDir:
		name = st.Directory.Render(name)
	case f.noRepo:
		name = st.Marker(gitx.MarkerUntracked).Render(name)
	case r.Marker != gitx.MarkerClean:
		name = st.Marker(r.Marker).Render(name)
	}

	return cursor + marker + " " + name
}
