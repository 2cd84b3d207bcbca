package history

import "github.com/interpretive-systems/triptych/internal/gitx"

// Source produces the revision history and local change flags for one
// file. gitx.Repo satisfies it; tests substitute fakes.
type Source interface {
	History(path string) ([]gitx.Revision, error)
	Changes(path string) (gitx.LocalChanges, error)
}

// Build assembles the ordered entry list for one file: the working-copy
// row first when unstaged edits exist, then the index row when staged
// changes exist, then every real revision newest first.
func Build(revs []gitx.Revision, ch gitx.LocalChanges) []Entry {
	entries := make([]Entry, 0, len(revs)+2)
	if ch.HasModified {
		entries = append(entries, Entry{
			Kind:  KindModified,
			Ref:   ModifiedRef,
			Time:  ch.ModifiedAt,
			Label: modifiedLabel,
		})
	}
	if ch.HasStaged {
		entries = append(entries, Entry{
			Kind:  KindStaged,
			Ref:   StagedRef,
			Time:  ch.StagedAt,
			Label: stagedLabel,
		})
	}
	for _, r := range revs {
		entries = append(entries, Entry{
			Kind:  KindReal,
			Ref:   r.ID,
			Short: r.Short,
			Time:  r.Date,
			Label: r.Subject,
		})
	}
	return entries
}

// LoadEntries queries src for path and builds the entry list. It exists
// separately from Model.Load so asynchronous loaders can run the queries
// off the event loop and install the result later with Set.
func LoadEntries(src Source, path string) ([]Entry, error) {
	revs, err := src.History(path)
	if err != nil {
		return nil, err
	}
	ch, err := src.Changes(path)
	if err != nil {
		return nil, err
	}
	return Build(revs, ch), nil
}

// Model owns the entry list for the currently selected file and the
// single optional mark. It doubles as the per-file history cache: as
// long as the Files selection stays on the loaded path there is no
// reason to query the source again.
type Model struct {
	path    string
	entries []Entry
	marked  int
}

// New returns an empty model with no mark.
func New() *Model {
	return &Model{marked: -1}
}

// Load replaces the model's contents with the history of path. Contents
// are dropped first, so a failed load leaves the model empty instead of
// showing the previous file's rows.
func (m *Model) Load(src Source, path string) error {
	m.Clear()
	entries, err := LoadEntries(src, path)
	if err != nil {
		return err
	}
	m.Set(path, entries)
	return nil
}

// Set installs an already-built entry list for path and clears the mark.
func (m *Model) Set(path string, entries []Entry) {
	m.path = path
	m.entries = entries
	m.marked = -1
}

// Clear drops entries and mark. Called when the Files selection moves to
// a different file.
func (m *Model) Clear() {
	m.path = ""
	m.entries = nil
	m.marked = -1
}

// Mark checks the entry at i, replacing any previous mark. Marking the
// already-marked row leaves it marked; there is no unmark shortcut.
// Out-of-range indexes are ignored.
func (m *Model) Mark(i int) {
	if i < 0 || i >= len(m.entries) {
		return
	}
	m.marked = i
}

// Marked returns the checked index, or -1 when nothing is marked.
func (m *Model) Marked() int { return m.marked }

// Path returns the file whose history is loaded, or "".
func (m *Model) Path() string { return m.path }

// Entries returns the ordered list, newest first.
func (m *Model) Entries() []Entry { return m.entries }

// Len returns the number of entries.
func (m *Model) Len() int { return len(m.entries) }

// Holds reports whether the model already contains path's history.
func (m *Model) Holds(path string) bool {
	return path != "" && m.path == path
}
