package gitx

import "fmt"

// DiffMode selects the diff algorithm / whitespace handling. Modes rotate
// in declaration order and wrap back to the default.
type DiffMode int

const (
	ModeDefault DiffMode = iota
	ModeIgnoreSpace
	ModePatience
	modeCount
)

// Next returns the mode after m in the fixed rotation.
func (m DiffMode) Next() DiffMode {
	return (m + 1) % modeCount
}

func (m DiffMode) String() string {
	switch m {
	case ModeIgnoreSpace:
		return "ignore-space"
	case ModePatience:
		return "patience"
	default:
		return "default"
	}
}

// DiffOptions describes one diff invocation. The ref fields select the
// comparison shape: both empty compares the index to the working tree;
// OldRef alone compares that revision to the working tree, or to the
// index when Staged is set; both refs compare the two revisions in
// old-then-new order. Mode composes with any shape.
type DiffOptions struct {
	Staged  bool
	OldRef  string
	NewRef  string
	Mode    DiffMode
	Context int
}

// Diff returns the unified diff text for a single file under opt. Output
// is plain (no color) so the caller owns all styling.
func Diff(root, path string, opt DiffOptions) (string, error) {
	args := []string{"diff", "--no-color", "--text"}
	if opt.Context > 0 {
		args = append(args, fmt.Sprintf("-U%d", opt.Context))
	}
	switch opt.Mode {
	case ModeIgnoreSpace:
		args = append(args, "--ignore-all-space")
	case ModePatience:
		args = append(args, "--patience")
	}
	if opt.Staged {
		args = append(args, "--cached")
	}
	if opt.OldRef != "" {
		args = append(args, opt.OldRef)
	}
	if opt.NewRef != "" {
		args = append(args, opt.NewRef)
	}
	args = append(args, "--", path)
	return runGit(root, args...)
}
