package history

import (
	"errors"
	"fmt"

	"github.com/interpretive-systems/triptych/internal/gitx"
)

// Variant identifies which diff invocation shape a comparison maps to.
type Variant int

const (
	WorkingVsStaged Variant = iota
	StagedVsRevision
	WorkingVsRevision
	RevisionVsRevision
)

func (v Variant) String() string {
	switch v {
	case WorkingVsStaged:
		return "working-vs-staged"
	case StagedVsRevision:
		return "staged-vs-revision"
	case WorkingVsRevision:
		return "working-vs-revision"
	default:
		return "revision-vs-revision"
	}
}

// ErrNoComparableEntry means the highlighted entry has nothing older to
// diff against and no mark supplies an alternative. The Diff column must
// not open.
var ErrNoComparableEntry = errors.New("no older entry to compare against")

// Pair is a resolved comparison, always ordered older-then-newer.
type Pair struct {
	Older   Entry
	Newer   Entry
	Variant Variant
}

// Header renders the fixed diff header line, older ref on the left.
func (p Pair) Header() string {
	return fmt.Sprintf("Comparing: %s..%s", p.Older.DisplayRef(), p.Newer.DisplayRef())
}

// Key identifies the pair for caching. Synthetic sentinels keep pairs
// involving the index or working tree distinct from any revision pair.
func (p Pair) Key() string {
	return p.Older.Ref + ".." + p.Newer.Ref
}

// Options translates the pair into the git invocation it stands for.
func (p Pair) Options(mode gitx.DiffMode, context int) gitx.DiffOptions {
	opt := gitx.DiffOptions{Mode: mode, Context: context}
	switch p.Variant {
	case WorkingVsStaged:
		// Bare diff compares index to working tree.
	case StagedVsRevision:
		opt.Staged = true
		opt.OldRef = p.Older.Ref
	case WorkingVsRevision:
		opt.OldRef = p.Older.Ref
	case RevisionVsRevision:
		opt.OldRef = p.Older.Ref
		opt.NewRef = p.Newer.Ref
	}
	return opt
}

// Resolve picks the two entries a diff opened at highlighted compares.
// A valid mark on a different row is the other side; otherwise the next
// older row is. Pure: no I/O, no mutation, same output for same input.
func Resolve(entries []Entry, highlighted, marked int) (Pair, error) {
	if highlighted < 0 || highlighted >= len(entries) {
		return Pair{}, ErrNoComparableEntry
	}
	other := highlighted + 1
	if marked >= 0 && marked < len(entries) && marked != highlighted {
		other = marked
	}
	if other >= len(entries) {
		return Pair{}, ErrNoComparableEntry
	}
	newerIdx, olderIdx := highlighted, other
	if olderIdx < newerIdx {
		newerIdx, olderIdx = olderIdx, newerIdx
	}
	newer, older := entries[newerIdx], entries[olderIdx]
	return Pair{
		Older:   older,
		Newer:   newer,
		Variant: classify(newer.Kind, older.Kind),
	}, nil
}

// classify maps the pair's kinds to an invocation shape. The fixed list
// order makes some combinations unreachable: a synthetic row can never
// be the older side of a real one, and duplicates of a synthetic kind
// do not exist.
func classify(newer, older Kind) Variant {
	switch {
	case newer == KindModified && older == KindStaged:
		return WorkingVsStaged
	case newer == KindStaged:
		return StagedVsRevision
	case newer == KindModified:
		return WorkingVsRevision
	default:
		return RevisionVsRevision
	}
}
