// Package history owns the ordered entry list behind the History pane
// and the pure pairing algorithm that decides which two entries a diff
// compares. List index order is the comparison order: index 0 is the
// newest entry, higher indexes are older, and the two synthetic rows
// always sit above every real revision.
package history

import "time"

// Kind tags an entry as a real commit or one of the two synthetic rows.
type Kind int

const (
	KindReal Kind = iota
	KindStaged
	KindModified
)

// Sentinel references for the synthetic rows. Neither is a valid git
// revision, so they can never collide with a real id.
const (
	StagedRef   = "@staged"
	ModifiedRef = "@mods"
)

const (
	stagedLabel   = "STAGED"
	modifiedLabel = "MODS"
)

// Entry is one row of the History pane.
type Entry struct {
	Kind  Kind
	Ref   string
	Short string
	Time  time.Time
	Label string
}

// DisplayRef is the reference shown in the diff header: the literal
// synthetic label for synthetic rows, the short id for real ones.
func (e Entry) DisplayRef() string {
	switch e.Kind {
	case KindStaged:
		return stagedLabel
	case KindModified:
		return modifiedLabel
	}
	if e.Short != "" {
		return e.Short
	}
	return e.Ref
}
