// Package gitx shells out to git for repository discovery, per-file
// history, working/index status, and diff text. Every function takes the
// repository root and runs git with -C, so the process working directory
// never matters. Paths may be absolute or root-relative; git accepts both.
package gitx

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	// ErrGitNotFound means the git binary is not on PATH.
	ErrGitNotFound = errors.New("git binary not found")

	// ErrNotRepo means the path is not inside a git repository.
	ErrNotRepo = errors.New("not a git repository")

	// ErrNoHistory means the repository has no commits yet.
	ErrNoHistory = errors.New("repository has no commits")
)

// runGit executes git -C root with args and returns raw stdout. Diff text
// must round-trip byte for byte, so output is never trimmed here.
func runGit(root string, args ...string) (string, error) {
	full := append([]string{"-C", root}, args...)
	cmd := exec.Command("git", full...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", parseGitError(args, strings.TrimSpace(stderr.String()), err)
	}
	return stdout.String(), nil
}

// parseGitError converts git failures to sentinel errors where the stderr
// text identifies a known condition. The original error stays on the chain
// in the fallback cases so callers can still inspect exit codes.
func parseGitError(args []string, stderr string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return ErrGitNotFound
	}
	low := strings.ToLower(stderr)
	switch {
	case strings.Contains(low, "not a git repository"):
		return ErrNotRepo
	case strings.Contains(low, "does not have any commits yet"),
		strings.Contains(low, "bad default revision"):
		return ErrNoHistory
	}
	if stderr != "" {
		return fmt.Errorf("git %s: %s: %w", args[0], stderr, err)
	}
	return fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
}

// exitCode digs the process exit status out of a wrapped error, or -1.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// RepoRoot resolves the repository root containing dir. Returns ErrNotRepo
// when dir is not under version control and ErrGitNotFound when git is
// missing entirely.
func RepoRoot(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	out, err := runGit(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	root := strings.TrimSpace(out)
	if root == "" {
		return "", ErrNotRepo
	}
	return root, nil
}

// GitDir returns the absolute path of the repository's .git directory.
// Worktrees report a path outside the checkout, so the answer cannot be
// derived by joining root with ".git".
func GitDir(root string) (string, error) {
	out, err := runGit(root, "rev-parse", "--git-dir")
	if err != nil {
		return "", err
	}
	dir := strings.TrimSpace(out)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return dir, nil
}

// CurrentBranch returns the checked-out branch name, or a short commit id
// when HEAD is detached.
func CurrentBranch(root string) (string, error) {
	out, err := runGit(root, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	if name := strings.TrimSpace(out); name != "" {
		return name, nil
	}
	out, err = runGit(root, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Repo bundles a resolved repository root with the history query options
// in effect, giving the navigator a single value to issue queries through.
type Repo struct {
	Root   string
	Limit  int
	Follow bool
}

// History lists the commits touching path, newest first.
func (r Repo) History(path string) ([]Revision, error) {
	return FileHistory(r.Root, path, r.Limit, r.Follow)
}

// Changes reports the staged/unstaged state of path.
func (r Repo) Changes(path string) (LocalChanges, error) {
	return LocalChangesFor(r.Root, path)
}

// Diff returns the unified diff text for path under opt.
func (r Repo) Diff(path string, opt DiffOptions) (string, error) {
	return Diff(r.Root, path, opt)
}

// Status captures the current status index for the whole worktree.
func (r Repo) Status() (*StatusIndex, error) {
	return Status(r.Root)
}
