// Package tui implements the three-column terminal UI: Files, History,
// and Diff.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/triptych/internal/config"
	"github.com/interpretive-systems/triptych/internal/gitx"
	"github.com/interpretive-systems/triptych/internal/history"
	"github.com/interpretive-systems/triptych/internal/log"
	"github.com/interpretive-systems/triptych/internal/prefs"
	"github.com/interpretive-systems/triptych/internal/tui/components"
	"github.com/interpretive-systems/triptych/internal/watcher"
)

// Options configures a Run.
type Options struct {
	Cfg config.Config

	// StartDir is the directory the Files column opens in.
	StartDir string

	// StartFile, when set, names a file in StartDir whose history is
	// opened as soon as the first listing arrives.
	StartFile string
}

// Program is the top-level Bubble Tea model.
type Program struct {
	state  *State
	layout *Layout
}

// Run starts the full-screen UI and blocks until it exits.
func Run(opts Options) error {
	repo := gitx.Repo{
		Limit:  opts.Cfg.HistoryLimit,
		Follow: opts.Cfg.FollowRenames,
	}
	root, repoErr := gitx.RepoRoot(opts.StartDir)
	if repoErr != nil {
		log.Err("repo detect", repoErr)
	} else {
		repo.Root = root
	}

	st := NewState(opts.Cfg, repo, repoErr, opts.StartDir)
	if opts.StartFile != "" {
		st.StartFile = filepath.Base(opts.StartFile)
	}

	if w, err := watcher.New(opts.Cfg.Debounce()); err != nil {
		log.Err("watcher", err)
	} else {
		if repo.Root != "" {
			if gitDir, err := gitx.GitDir(repo.Root); err == nil {
				_ = w.Add(gitDir)
			}
		}
		w.SetDir(opts.StartDir)
		st.Watch = w
		defer w.Close()
	}

	p := tea.NewProgram(Program{state: st, layout: NewLayout()}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (p Program) Init() tea.Cmd {
	st := p.state
	cmds := []tea.Cmd{
		loadDir(st.Repo, st.StatusCache, st.Dir),
		tickOnce(),
	}
	if st.Repo.Root != "" {
		cmds = append(cmds, loadBranch(st.Repo.Root), loadPrefs(st.Repo.Root))
	}
	if st.Watch != nil {
		cmds = append(cmds, waitRefresh(st.Watch))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (p Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	st := p.state

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p.handleKey(msg)

	case tea.WindowSizeMsg:
		st.Width = msg.Width
		st.Height = msg.Height
		p.layout.SetSize(msg.Width, msg.Height)
		if st.Prefs.FilesSet {
			p.layout.SetFilesWidth(st.Prefs.FilesWidth)
		}
		if st.Prefs.HistorySet {
			p.layout.SetHistoryWidth(st.Prefs.HistoryWidth)
		}
		p.applySizes()
		return p, nil

	case dirMsg:
		return p.handleDir(msg)

	case historyMsg:
		return p.handleHistory(msg)

	case diffMsg:
		return p.handleDiff(msg)

	case branchMsg:
		if msg.err != nil {
			log.Err("branch", msg.err)
			return p, nil
		}
		st.Branch = msg.name
		st.Bar.SetBranch(msg.name)
		return p, nil

	case prefsMsg:
		st.Prefs = msg.p
		if msg.p.FilesSet {
			p.layout.SetFilesWidth(msg.p.FilesWidth)
		}
		if msg.p.HistorySet {
			p.layout.SetHistoryWidth(msg.p.HistoryWidth)
		}
		p.applySizes()
		return p, nil

	case tickMsg:
		cmds := []tea.Cmd{tickOnce()}
		if st.Watch == nil {
			// No watcher, fall back to polling the listing.
			st.StatusCache.Flush()
			cmds = append(cmds, loadDir(st.Repo, st.StatusCache, st.Dir))
		}
		return p, tea.Batch(cmds...)

	case refreshMsg:
		cmds := []tea.Cmd{p.refresh()}
		if st.Watch != nil {
			cmds = append(cmds, waitRefresh(st.Watch))
		}
		return p, tea.Batch(cmds...)

	case yankMsg:
		if msg.err != nil {
			log.Err("clipboard", msg.err)
			st.Bar.SetNotice("copy failed")
		} else {
			st.Bar.SetNotice("diff copied")
		}
		return p, nil
	}

	return p, nil
}

func (p Program) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := p.state

	// ctrl+c quits even while the search input is capturing keys.
	if msg.String() == "ctrl+c" {
		return p, tea.Quit
	}

	if st.Search.IsActive() {
		_, cmd := st.Search.HandleKey(msg)
		if st.Search.IsActive() {
			p.paintSearch()
		}
		p.applySizes()
		return p, cmd
	}

	if st.ShowHelp {
		if key.Matches(msg, st.Keys.Quit) {
			return p, tea.Quit
		}
		st.ShowHelp = false
		p.applySizes()
		return p, nil
	}

	switch {
	case key.Matches(msg, st.Keys.Quit):
		return p, tea.Quit
	case key.Matches(msg, st.Keys.Help):
		st.ShowHelp = true
		p.applySizes()
		return p, nil
	case key.Matches(msg, st.Keys.Refresh):
		return p, p.refresh()
	}

	switch st.Nav.State() {
	case StateFiles, StateFilesWithHistory:
		return p.handleFilesKey(msg)
	case StateHistoryFocused:
		return p.handleHistoryKey(msg)
	case StateDiffFocused:
		return p.handleDiffKey(msg)
	}
	return p, nil
}

func (p Program) handleFilesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := p.state
	k := st.Keys
	rows := p.visibleRows()

	moved := false
	switch {
	case key.Matches(msg, k.Up):
		moved = st.Files.MoveSelection(-1)
	case key.Matches(msg, k.Down):
		moved = st.Files.MoveSelection(1)
	case key.Matches(msg, k.Top):
		moved = st.Files.GoToTop()
	case key.Matches(msg, k.Bottom):
		moved = st.Files.GoToBottom()
	case key.Matches(msg, k.PageUp):
		moved = st.Files.PageUp(rows)
	case key.Matches(msg, k.PageDown):
		moved = st.Files.PageDown(rows)
	case key.Matches(msg, k.HalfUp):
		moved = st.Files.MoveSelection(-rows / 2)
	case key.Matches(msg, k.HalfDown):
		moved = st.Files.MoveSelection(rows / 2)
	case key.Matches(msg, k.Left):
		// Left ascends only from the parent row.
		if row, ok := st.Files.SelectedRow(); ok && row.Parent {
			return p, p.ascend()
		}
		return p, nil
	case key.Matches(msg, k.Right):
		return p, p.openSelected()
	case key.Matches(msg, k.Narrower):
		p.layout.AdjustFilesWidth(-2)
		p.applySizes()
		return p, p.saveFilesWidth()
	case key.Matches(msg, k.Wider):
		p.layout.AdjustFilesWidth(2)
		p.applySizes()
		return p, p.saveFilesWidth()
	}

	if moved {
		st.Files.EnsureVisible(rows)
		if st.SelectedPath != "" {
			p.fileSelectionChanged()
		}
	}
	return p, nil
}

func (p Program) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := p.state
	k := st.Keys
	rows := p.visibleRows()

	moved := false
	switch {
	case key.Matches(msg, k.Up):
		moved = st.History.MoveSelection(-1)
	case key.Matches(msg, k.Down):
		moved = st.History.MoveSelection(1)
	case key.Matches(msg, k.Top):
		moved = st.History.GoToTop()
	case key.Matches(msg, k.Bottom):
		moved = st.History.GoToBottom()
	case key.Matches(msg, k.PageUp):
		moved = st.History.PageUp(rows)
	case key.Matches(msg, k.PageDown):
		moved = st.History.PageDown(rows)
	case key.Matches(msg, k.HalfUp):
		moved = st.History.MoveSelection(-rows / 2)
	case key.Matches(msg, k.HalfDown):
		moved = st.History.MoveSelection(rows / 2)
	case key.Matches(msg, k.Left):
		st.Nav.LeaveHistory()
		p.applySizes()
		return p, nil
	case key.Matches(msg, k.Right):
		return p.openDiff()
	case key.Matches(msg, k.Mark):
		st.Hist.Mark(st.History.Selected())
		return p, nil
	case key.Matches(msg, k.Narrower):
		p.layout.AdjustHistoryWidth(-2)
		p.applySizes()
		return p, p.saveHistoryWidth()
	case key.Matches(msg, k.Wider):
		p.layout.AdjustHistoryWidth(2)
		p.applySizes()
		return p, p.saveHistoryWidth()
	}

	if moved {
		st.History.EnsureVisible(rows)
	}
	return p, nil
}

func (p Program) handleDiffKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := p.state
	k := st.Keys
	vp := st.Diff.Viewport()

	switch {
	case key.Matches(msg, k.Left):
		return p.closeDiff()
	case key.Matches(msg, k.Up):
		vp.ScrollUp(1)
	case key.Matches(msg, k.Down):
		vp.ScrollDown(1)
	case key.Matches(msg, k.HalfUp):
		vp.HalfPageUp()
	case key.Matches(msg, k.HalfDown):
		vp.HalfPageDown()
	case key.Matches(msg, k.PageUp):
		vp.PageUp()
	case key.Matches(msg, k.PageDown):
		vp.PageDown()
	case key.Matches(msg, k.Top):
		vp.GotoTop()
	case key.Matches(msg, k.Bottom):
		vp.GotoBottom()
	case key.Matches(msg, k.ScrollLeft):
		st.Diff.ScrollLeft(8)
	case key.Matches(msg, k.ScrollRight):
		st.Diff.ScrollRight(8)
	case key.Matches(msg, k.ScrollHome):
		st.Diff.ScrollHome()
	case key.Matches(msg, k.CycleMode):
		mode := st.Diff.CycleMode()
		st.Bar.SetDiffState(true, mode, st.Diff.Color(), st.Diff.Wrap())
		return p, loadDiff(st.Repo, st.DiffCache, st.SelectedPath, st.Pair, mode, st.Cfg.DiffContext)
	case key.Matches(msg, k.ToggleColor):
		on := st.Diff.ToggleColor()
		st.Prefs.Color, st.Prefs.ColorSet = on, true
		st.Bar.SetDiffState(true, st.Diff.Mode(), on, st.Diff.Wrap())
		p.syncSearch()
		return p, p.saveColor(on)
	case key.Matches(msg, k.Wrap):
		on := st.Diff.ToggleWrap()
		st.Prefs.Wrap, st.Prefs.WrapSet = on, true
		st.Bar.SetDiffState(true, st.Diff.Mode(), st.Diff.Color(), on)
		p.syncSearch()
		return p, p.saveWrap(on)
	case key.Matches(msg, k.Fullscreen):
		st.Nav.ToggleFullscreen()
		p.applySizes()
	case key.Matches(msg, k.Search):
		st.Search.Activate()
		st.Search.SetContent(st.Diff.Content())
		p.paintSearch()
		p.applySizes()
	case key.Matches(msg, k.NextMatch):
		st.Search.Next()
		p.paintSearch()
	case key.Matches(msg, k.PrevMatch):
		st.Search.Previous()
		p.paintSearch()
	case key.Matches(msg, k.Yank):
		return p, yankDiff(st.Diff.Raw())
	}
	return p, nil
}

// openSelected acts on the row under the Files cursor: directories are
// entered, files open their history.
func (p Program) openSelected() tea.Cmd {
	st := p.state
	row, ok := st.Files.SelectedRow()
	if !ok {
		return nil
	}
	if row.Parent {
		return p.ascend()
	}
	if row.IsDir {
		if st.SelectedPath != "" {
			p.fileSelectionChanged()
		}
		st.PendingDir = filepath.Join(st.Dir, row.Name)
		st.PendingSelect = ""
		return loadDir(st.Repo, st.StatusCache, st.PendingDir)
	}
	return p.openFile(row)
}

// openFile focuses the History column for the file under the cursor.
// Reopening the same file keeps the loaded entries and the mark.
func (p Program) openFile(row components.Row) tea.Cmd {
	st := p.state
	path := filepath.Join(st.Dir, row.Name)
	if st.Hist.Holds(path) {
		st.Nav.EnterHistory()
		p.applySizes()
		return nil
	}
	if st.SelectedPath != "" && st.SelectedPath != path {
		p.fileSelectionChanged()
	}
	st.SelectedPath = path
	st.Nav.EnterHistory()
	p.applySizes()
	if st.RepoErr != nil {
		st.History.SetEntries(nil)
		return nil
	}
	st.History.SetLoading()
	return loadHistory(st.Repo, path)
}

func (p Program) ascend() tea.Cmd {
	st := p.state
	parent := filepath.Dir(st.Dir)
	if parent == st.Dir {
		return nil
	}
	if st.SelectedPath != "" {
		p.fileSelectionChanged()
	}
	st.PendingDir = parent
	st.PendingSelect = filepath.Base(st.Dir)
	return loadDir(st.Repo, st.StatusCache, parent)
}

// openDiff resolves the comparison for the highlighted entry and opens
// the Diff column. An entry with nothing older to compare against is
// refused without a message.
func (p Program) openDiff() (tea.Model, tea.Cmd) {
	st := p.state
	pair, err := history.Resolve(st.Hist.Entries(), st.History.Selected(), st.Hist.Marked())
	if err != nil {
		return p, nil
	}
	st.Pair = pair
	st.HasPair = true
	st.Search.Reset()
	st.Bar.SetSearch("")
	st.Diff.Open(pair.Header(), p.colorDefault(), p.wrapDefault())
	st.Nav.EnterDiff()
	st.Bar.SetDiffState(true, st.Diff.Mode(), st.Diff.Color(), st.Diff.Wrap())
	p.applySizes()
	return p, loadDiff(st.Repo, st.DiffCache, st.SelectedPath, pair, st.Diff.Mode(), st.Cfg.DiffContext)
}

// closeDiff returns focus to the History column and discards the
// per-comparison view state.
func (p Program) closeDiff() (tea.Model, tea.Cmd) {
	st := p.state
	st.Nav.LeaveDiff()
	st.HasPair = false
	st.Search.Reset()
	st.Bar.SetSearch("")
	st.Bar.SetDiffState(false, st.Diff.Mode(), st.Diff.Color(), st.Diff.Wrap())
	p.applySizes()
	return p, nil
}

// fileSelectionChanged discards everything keyed to the previously
// selected file: history entries, the mark, the comparison, and cached
// diffs.
func (p Program) fileSelectionChanged() {
	st := p.state
	st.SelectedPath = ""
	st.RemarkRef = ""
	st.Hist.Clear()
	st.History.SetEntries(nil)
	st.HasPair = false
	st.DiffCache.Flush()
	st.Search.Reset()
	st.Bar.SetSearch("")
	st.Nav.CloseHistory()
	st.Bar.SetDiffState(false, st.Diff.Mode(), st.Diff.Color(), st.Diff.Wrap())
	p.applySizes()
}

func (p Program) handleDir(msg dirMsg) (tea.Model, tea.Cmd) {
	st := p.state
	if msg.dir != st.PendingDir {
		// Result for a navigation the user already abandoned.
		return p, nil
	}

	var keep string
	if msg.dir == st.Files.Dir() {
		if row, ok := st.Files.SelectedRow(); ok {
			keep = row.Name
		}
	}

	st.Dir = msg.dir
	st.Files.SetListing(msg.dir, msg.entries, msg.err)
	st.LastRefresh = time.Now()
	st.Bar.SetLastRefresh(st.LastRefresh)
	if st.Watch != nil {
		st.Watch.SetDir(msg.dir)
	}

	switch {
	case st.PendingSelect != "":
		st.Files.SelectName(st.PendingSelect)
		st.PendingSelect = ""
	case keep != "":
		st.Files.SelectName(keep)
	}

	// A background refresh can remove or replace the selected file.
	if st.SelectedPath != "" {
		row, ok := st.Files.SelectedRow()
		if !ok || row.IsDir || row.Parent || filepath.Join(st.Dir, row.Name) != st.SelectedPath {
			p.fileSelectionChanged()
		}
	}

	if st.StartFile != "" {
		name := st.StartFile
		st.StartFile = ""
		st.Files.SelectName(name)
		if row, ok := st.Files.SelectedRow(); ok && row.Name == name && !row.IsDir && !row.Parent {
			return p, p.openFile(row)
		}
	}

	return p, nil
}

func (p Program) handleHistory(msg historyMsg) (tea.Model, tea.Cmd) {
	st := p.state
	if msg.path != st.SelectedPath {
		return p, nil
	}
	if msg.err != nil {
		st.History.SetError(msg.err)
		return p, nil
	}
	st.Hist.Set(msg.path, msg.entries)
	st.History.SetEntries(msg.entries)
	if st.RemarkRef != "" {
		for i, e := range msg.entries {
			if e.Ref == st.RemarkRef {
				st.Hist.Mark(i)
				break
			}
		}
		st.RemarkRef = ""
	}
	return p, nil
}

func (p Program) handleDiff(msg diffMsg) (tea.Model, tea.Cmd) {
	st := p.state
	if !st.HasPair {
		return p, nil
	}
	if msg.key != diffKey(st.SelectedPath, st.Pair, st.Diff.Mode()) {
		return p, nil
	}
	if msg.err != nil {
		st.Diff.SetError(msg.err)
		return p, nil
	}
	st.Diff.SetText(msg.text)
	p.syncSearch()
	return p, nil
}

// refresh drops cached state and reloads everything visible.
func (p Program) refresh() tea.Cmd {
	st := p.state
	st.StatusCache.Flush()
	st.DiffCache.Flush()

	cmds := []tea.Cmd{loadDir(st.Repo, st.StatusCache, st.Dir)}
	if st.RepoErr == nil && st.SelectedPath != "" && st.Hist.Holds(st.SelectedPath) {
		if m := st.Hist.Marked(); m >= 0 && m < st.Hist.Len() {
			st.RemarkRef = st.Hist.Entries()[m].Ref
		}
		cmds = append(cmds, loadHistory(st.Repo, st.SelectedPath))
	}
	if st.HasPair && st.Nav.DiffVisible() {
		cmds = append(cmds, loadDiff(st.Repo, st.DiffCache, st.SelectedPath, st.Pair, st.Diff.Mode(), st.Cfg.DiffContext))
	}
	return tea.Batch(cmds...)
}

// paintSearch repaints the diff body with the current highlights and
// scrolls the current match into view.
func (p Program) paintSearch() {
	st := p.state
	if !st.Nav.DiffVisible() {
		return
	}
	st.Diff.SetContent(st.Search.HighlightedContent())
	if line := st.Search.CurrentMatchLine(); line >= 0 {
		st.Diff.JumpTo(line)
	}
	st.Bar.SetSearch(p.searchStatus())
}

// syncSearch rebinds the search to freshly rendered content and
// repaints the highlights without moving the viewport.
func (p Program) syncSearch() {
	st := p.state
	if st.Search.Query() == "" && !st.Search.IsActive() {
		return
	}
	st.Search.SetContent(st.Diff.Content())
	st.Diff.SetContent(st.Search.HighlightedContent())
	st.Bar.SetSearch(p.searchStatus())
}

func (p Program) searchStatus() string {
	st := p.state
	if st.Search.Query() == "" {
		return ""
	}
	if st.Search.MatchCount() == 0 {
		return "no matches"
	}
	return fmt.Sprintf("match %d/%d", st.Search.CurrentMatchIndex(), st.Search.MatchCount())
}

// colorDefault is the color state a newly opened comparison starts in.
// A persisted preference wins, otherwise color is on.
func (p Program) colorDefault() bool {
	if p.state.Prefs.ColorSet {
		return p.state.Prefs.Color
	}
	return true
}

func (p Program) wrapDefault() bool {
	if p.state.Prefs.WrapSet {
		return p.state.Prefs.Wrap
	}
	return false
}

func (p Program) saveFilesWidth() tea.Cmd {
	root := p.state.Repo.Root
	if root == "" {
		return nil
	}
	w := p.layout.FilesWidth()
	return savePref(func() error { return prefs.SaveFilesWidth(root, w) })
}

func (p Program) saveHistoryWidth() tea.Cmd {
	root := p.state.Repo.Root
	if root == "" {
		return nil
	}
	w := p.layout.HistoryWidth()
	return savePref(func() error { return prefs.SaveHistoryWidth(root, w) })
}

func (p Program) saveColor(v bool) tea.Cmd {
	root := p.state.Repo.Root
	if root == "" {
		return nil
	}
	return savePref(func() error { return prefs.SaveColor(root, v) })
}

func (p Program) saveWrap(v bool) tea.Cmd {
	root := p.state.Repo.Root
	if root == "" {
		return nil
	}
	return savePref(func() error { return prefs.SaveWrap(root, v) })
}

// applySizes recomputes pane dimensions after any layout, overlay, or
// navigation change.
func (p Program) applySizes() {
	st := p.state
	if st.Width == 0 {
		return
	}
	rows := p.visibleRows()
	st.Files.EnsureVisible(rows)
	st.History.EnsureVisible(rows)
	if st.Nav.DiffVisible() {
		widths := p.layout.ColumnWidths(st.Nav.State(), st.Nav.Fullscreen())
		st.Diff.SetSize(widths[len(widths)-1], rows)
		p.syncSearch()
	}
}

func (p Program) overlayLines() []string {
	st := p.state
	if st.ShowHelp {
		return p.helpLines()
	}
	return st.Search.RenderOverlay(st.Width, st.Styles.Divider)
}

func (p Program) visibleRows() int {
	return p.layout.ContentHeight(len(p.overlayLines()))
}

// View implements tea.Model.
func (p Program) View() string {
	st := p.state
	if st.Width == 0 {
		return "Loading..."
	}

	overlay := p.overlayLines()
	height := p.layout.ContentHeight(len(overlay))
	widths := p.layout.ColumnWidths(st.Nav.State(), st.Nav.Fullscreen())

	var cols [][]string
	if st.Nav.Fullscreen() {
		cols = [][]string{st.Diff.Lines()}
	} else {
		cols = append(cols, st.Files.Render(height, widths[0], st.Styles))
		if st.Nav.HistoryVisible() {
			cols = append(cols, st.History.Render(st.Hist.Marked(), height, widths[1], st.Styles))
		}
		if st.Nav.DiffVisible() {
			cols = append(cols, st.Diff.Lines())
		}
	}

	return p.layout.RenderFrame(p.topBar(), cols, widths, overlay, st.Bar.Render(st.Width), st.Styles)
}

func (p Program) topBar() string {
	st := p.state
	left := st.Styles.Title.Render("triptych") + "  " + st.Styles.Faint.Render(displayPath(st.Dir))
	if st.SelectedPath != "" {
		left += "  " + st.Styles.Faint.Render("· "+filepath.Base(st.SelectedPath))
	}
	return left
}

// helpLines renders the help overlay from the key map.
func (p Program) helpLines() []string {
	st := p.state
	lines := []string{
		st.Styles.Divider.Render(strings.Repeat("─", st.Width)),
		st.Styles.Title.Render("Keys"),
	}
	for _, group := range st.Keys.FullHelp() {
		parts := make([]string, 0, len(group))
		for _, b := range group {
			h := b.Help()
			parts = append(parts, h.Key+" "+h.Desc)
		}
		lines = append(lines, strings.Join(parts, "   "))
	}
	lines = append(lines, st.Styles.Faint.Render("press any key to close"))
	return lines
}

func displayPath(dir string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return dir
	}
	if dir == home {
		return "~"
	}
	if strings.HasPrefix(dir, home+string(filepath.Separator)) {
		return "~" + dir[len(home):]
	}
	return dir
}
