package gitx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Revision is one committed point in a file's history.
type Revision struct {
	ID      string
	Short   string
	Subject string
	Date    time.Time
}

// Tab-separated so the subject line, which may itself contain spaces,
// stays parseable with a bounded split.
const logFormat = "%H%x09%h%x09%cI%x09%s"

// FileHistory lists the commits touching path, newest first. With follow
// set, the listing continues across renames along the file's history.
// A tracked path with no commits and an empty repository both yield an
// empty slice rather than an error.
func FileHistory(root, path string, limit int, follow bool) ([]Revision, error) {
	args := []string{"log", "--format=" + logFormat}
	if follow {
		args = append(args, "--follow")
	}
	if limit > 0 {
		args = append(args, fmt.Sprintf("-n%d", limit))
	}
	args = append(args, "--", path)
	out, err := runGit(root, args...)
	if err != nil {
		if errors.Is(err, ErrNoHistory) {
			return nil, nil
		}
		return nil, err
	}
	var revs []Revision
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 4)
		if len(parts) != 4 {
			continue
		}
		date, _ := time.Parse(time.RFC3339, parts[2])
		revs = append(revs, Revision{
			ID:      parts[0],
			Short:   parts[1],
			Subject: parts[3],
			Date:    date,
		})
	}
	return revs, nil
}

// LocalChanges reports whether a file's index entry differs from HEAD and
// whether its working copy differs from the index, with display timestamps
// for each side. An untracked file reports false on both.
type LocalChanges struct {
	HasStaged   bool
	HasModified bool
	StagedAt    time.Time
	ModifiedAt  time.Time
}

// LocalChangesFor probes path with the exit code of git diff --quiet.
func LocalChangesFor(root, path string) (LocalChanges, error) {
	var ch LocalChanges
	staged, err := diffQuiet(root, path, true)
	if err != nil {
		return ch, err
	}
	modified, err := diffQuiet(root, path, false)
	if err != nil {
		return ch, err
	}
	ch.HasStaged = staged
	ch.HasModified = modified
	if staged {
		// Git does not record when an entry was staged; the index file's
		// mtime is the closest observable time.
		if gd, err := GitDir(root); err == nil {
			if st, err := os.Stat(filepath.Join(gd, "index")); err == nil {
				ch.StagedAt = st.ModTime()
			}
		}
	}
	if modified {
		p := path
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		if st, err := os.Stat(p); err == nil {
			ch.ModifiedAt = st.ModTime()
		}
	}
	return ch, nil
}

// diffQuiet runs git diff --quiet on a single path. Exit status 1 means
// the sides differ; in an empty repository --cached compares the index
// against the empty tree, so staged detection still works there.
func diffQuiet(root, path string, cached bool) (bool, error) {
	args := []string{"diff", "--quiet"}
	if cached {
		args = append(args, "--cached")
	}
	args = append(args, "--", path)
	_, err := runGit(root, args...)
	if err == nil {
		return false, nil
	}
	if exitCode(err) == 1 {
		return true, nil
	}
	return false, err
}
