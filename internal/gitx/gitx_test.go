package gitx

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestRepoRoot(t *testing.T) {
	dir := initRepo(t)
	sub := filepath.Join(dir, "pkg")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	root, err := RepoRoot(dir)
	if err != nil {
		t.Fatalf("RepoRoot error: %v", err)
	}
	fromSub, err := RepoRoot(sub)
	if err != nil {
		t.Fatalf("RepoRoot(subdir) error: %v", err)
	}
	if root != fromSub {
		t.Fatalf("root mismatch: %q vs %q", root, fromSub)
	}

	if _, err := RepoRoot(t.TempDir()); !errors.Is(err, ErrNotRepo) {
		t.Fatalf("expected ErrNotRepo, got %v", err)
	}
}

func TestGitDir(t *testing.T) {
	dir := initRepo(t)
	gd, err := GitDir(dir)
	if err != nil {
		t.Fatalf("GitDir error: %v", err)
	}
	if st, err := os.Stat(gd); err != nil || !st.IsDir() {
		t.Fatalf("git dir %q not a directory: %v", gd, err)
	}
}

func TestCurrentBranch(t *testing.T) {
	dir := initRepo(t)
	write(t, filepath.Join(dir, "f.txt"), "one\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "init")

	name, err := CurrentBranch(dir)
	if err != nil {
		t.Fatalf("CurrentBranch error: %v", err)
	}
	if name == "" {
		t.Fatal("empty branch name")
	}
}

func TestFileHistory(t *testing.T) {
	dir := initRepo(t)
	write(t, filepath.Join(dir, "f.txt"), "one\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "first subject")
	write(t, filepath.Join(dir, "f.txt"), "two\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "second subject")

	revs, err := FileHistory(dir, "f.txt", 0, true)
	if err != nil {
		t.Fatalf("FileHistory error: %v", err)
	}
	if len(revs) != 2 {
		t.Fatalf("expected 2 revisions, got %d", len(revs))
	}
	if revs[0].Subject != "second subject" || revs[1].Subject != "first subject" {
		t.Fatalf("expected newest first, got %q then %q", revs[0].Subject, revs[1].Subject)
	}
	for _, r := range revs {
		if len(r.ID) != 40 {
			t.Errorf("bad revision id %q", r.ID)
		}
		if r.Short == "" || !strings.HasPrefix(r.ID, r.Short) {
			t.Errorf("short %q does not prefix id %q", r.Short, r.ID)
		}
		if r.Date.IsZero() {
			t.Errorf("unparsed date for %q", r.Short)
		}
	}
	if revs[0].Date.Before(revs[1].Date) {
		t.Errorf("newest-first order violated: %v before %v", revs[0].Date, revs[1].Date)
	}

	limited, err := FileHistory(dir, "f.txt", 1, true)
	if err != nil {
		t.Fatalf("FileHistory(limit) error: %v", err)
	}
	if len(limited) != 1 || limited[0].Subject != "second subject" {
		t.Fatalf("limit ignored: %+v", limited)
	}
}

func TestFileHistory_FollowsRenames(t *testing.T) {
	dir := initRepo(t)
	write(t, filepath.Join(dir, "old.txt"), "content\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "add old")
	mustRun(t, dir, "git", "mv", "old.txt", "new.txt")
	mustRun(t, dir, "git", "commit", "-q", "-m", "rename")

	followed, err := FileHistory(dir, "new.txt", 0, true)
	if err != nil {
		t.Fatalf("FileHistory error: %v", err)
	}
	if len(followed) != 2 {
		t.Fatalf("expected history to cross the rename, got %d entries", len(followed))
	}

	plain, err := FileHistory(dir, "new.txt", 0, false)
	if err != nil {
		t.Fatalf("FileHistory(no follow) error: %v", err)
	}
	if len(plain) != 1 {
		t.Fatalf("expected 1 entry without follow, got %d", len(plain))
	}
}

func TestFileHistory_UntrackedAndEmptyRepo(t *testing.T) {
	dir := initRepo(t)

	// No commits at all: empty history, not an error.
	revs, err := FileHistory(dir, "f.txt", 0, true)
	if err != nil {
		t.Fatalf("FileHistory on empty repo: %v", err)
	}
	if len(revs) != 0 {
		t.Fatalf("expected empty history, got %d", len(revs))
	}

	write(t, filepath.Join(dir, "a.txt"), "a\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "init")
	write(t, filepath.Join(dir, "loose.txt"), "untracked\n")

	revs, err = FileHistory(dir, "loose.txt", 0, true)
	if err != nil {
		t.Fatalf("FileHistory on untracked file: %v", err)
	}
	if len(revs) != 0 {
		t.Fatalf("expected empty history for untracked file, got %d", len(revs))
	}
}

func TestLocalChangesFor(t *testing.T) {
	dir := initRepo(t)
	path := filepath.Join(dir, "f.txt")
	write(t, path, "one\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "init")

	ch, err := LocalChangesFor(dir, "f.txt")
	if err != nil {
		t.Fatalf("LocalChangesFor error: %v", err)
	}
	if ch.HasStaged || ch.HasModified {
		t.Fatalf("clean file reported changes: %+v", ch)
	}

	write(t, path, "one\ntwo\n")
	mustRun(t, dir, "git", "add", "f.txt")
	ch, err = LocalChangesFor(dir, "f.txt")
	if err != nil {
		t.Fatalf("LocalChangesFor error: %v", err)
	}
	if !ch.HasStaged || ch.HasModified {
		t.Fatalf("expected staged only, got %+v", ch)
	}
	if ch.StagedAt.IsZero() {
		t.Error("missing staged timestamp")
	}

	write(t, path, "one\ntwo\nthree\n")
	ch, err = LocalChangesFor(dir, "f.txt")
	if err != nil {
		t.Fatalf("LocalChangesFor error: %v", err)
	}
	if !ch.HasStaged || !ch.HasModified {
		t.Fatalf("expected staged and modified, got %+v", ch)
	}
	if ch.ModifiedAt.IsZero() {
		t.Error("missing modified timestamp")
	}
}

func TestLocalChangesFor_Untracked(t *testing.T) {
	dir := initRepo(t)
	write(t, filepath.Join(dir, "a.txt"), "a\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "init")
	write(t, filepath.Join(dir, "loose.txt"), "untracked\n")

	ch, err := LocalChangesFor(dir, "loose.txt")
	if err != nil {
		t.Fatalf("LocalChangesFor error: %v", err)
	}
	if ch.HasStaged || ch.HasModified {
		t.Fatalf("untracked file reported changes: %+v", ch)
	}
}

func TestDiff_Variants(t *testing.T) {
	dir := initRepo(t)
	path := filepath.Join(dir, "f.txt")
	write(t, path, "base\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "base")
	r0 := gitOutput(t, dir, "rev-parse", "HEAD")

	write(t, path, "staged\n")
	mustRun(t, dir, "git", "add", "f.txt")
	write(t, path, "working\n")

	// Index vs working tree.
	out, err := Diff(dir, "f.txt", DiffOptions{})
	if err != nil {
		t.Fatalf("Diff error: %v", err)
	}
	if !strings.Contains(out, "-staged") || !strings.Contains(out, "+working") {
		t.Fatalf("unexpected working-vs-staged diff:\n%s", out)
	}

	// Revision vs index.
	out, err = Diff(dir, "f.txt", DiffOptions{Staged: true, OldRef: r0})
	if err != nil {
		t.Fatalf("Diff error: %v", err)
	}
	if !strings.Contains(out, "-base") || !strings.Contains(out, "+staged") {
		t.Fatalf("unexpected staged-vs-revision diff:\n%s", out)
	}

	// Revision vs working tree.
	out, err = Diff(dir, "f.txt", DiffOptions{OldRef: r0})
	if err != nil {
		t.Fatalf("Diff error: %v", err)
	}
	if !strings.Contains(out, "-base") || !strings.Contains(out, "+working") {
		t.Fatalf("unexpected working-vs-revision diff:\n%s", out)
	}

	// Revision vs revision.
	mustRun(t, dir, "git", "add", "f.txt")
	mustRun(t, dir, "git", "commit", "-q", "-m", "second")
	r1 := gitOutput(t, dir, "rev-parse", "HEAD")
	out, err = Diff(dir, "f.txt", DiffOptions{OldRef: r0, NewRef: r1})
	if err != nil {
		t.Fatalf("Diff error: %v", err)
	}
	if !strings.Contains(out, "-base") || !strings.Contains(out, "+working") {
		t.Fatalf("unexpected revision-vs-revision diff:\n%s", out)
	}
}

func TestDiff_IgnoreSpace(t *testing.T) {
	dir := initRepo(t)
	path := filepath.Join(dir, "f.txt")
	write(t, path, "alpha beta\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "init")
	write(t, path, "alpha  \tbeta\n")

	out, err := Diff(dir, "f.txt", DiffOptions{})
	if err != nil {
		t.Fatalf("Diff error: %v", err)
	}
	if out == "" {
		t.Fatal("whitespace change produced no default diff")
	}

	out, err = Diff(dir, "f.txt", DiffOptions{Mode: ModeIgnoreSpace})
	if err != nil {
		t.Fatalf("Diff error: %v", err)
	}
	if out != "" {
		t.Fatalf("ignore-space still reported a diff:\n%s", out)
	}
}

func TestDiffMode_Rotation(t *testing.T) {
	m := ModeDefault
	seen := []DiffMode{m}
	for i := 0; i < 3; i++ {
		m = m.Next()
		seen = append(seen, m)
	}
	want := []DiffMode{ModeDefault, ModeIgnoreSpace, ModePatience, ModeDefault}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("rotation step %d = %v, want %v", i, seen[i], want[i])
		}
	}
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	mustRun(t, dir, "git", "init", "-q")
	mustRun(t, dir, "git", "config", "user.email", "test@example.com")
	mustRun(t, dir, "git", "config", "user.name", "Test User")
	mustRun(t, dir, "git", "config", "commit.gpgsign", "false")
	return dir
}

func mustRun(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("command %s %v failed: %v\n%s", name, args, err, out)
	}
}

func gitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("git %v failed: %v", args, err)
	}
	return strings.TrimSpace(string(out))
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
