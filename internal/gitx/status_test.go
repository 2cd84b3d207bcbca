package gitx

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStatus_MarkersAndDirAggregation(t *testing.T) {
	dir := initRepo(t)
	if err := os.MkdirAll(filepath.Join(dir, "pkg"), 0o755); err != nil {
		t.Fatal(err)
	}
	write(t, filepath.Join(dir, "clean.txt"), "clean\n")
	write(t, filepath.Join(dir, "pkg", "mod.txt"), "one\n")
	write(t, filepath.Join(dir, "gone.txt"), "doomed\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "init")

	write(t, filepath.Join(dir, "pkg", "mod.txt"), "changed\n")
	write(t, filepath.Join(dir, "staged.txt"), "staged\n")
	mustRun(t, dir, "git", "add", "staged.txt")
	if err := os.MkdirAll(filepath.Join(dir, "fresh", "deep"), 0o755); err != nil {
		t.Fatal(err)
	}
	write(t, filepath.Join(dir, "fresh", "deep", "loose.txt"), "untracked\n")
	if err := os.Remove(filepath.Join(dir, "gone.txt")); err != nil {
		t.Fatal(err)
	}

	ix, err := Status(dir)
	if err != nil {
		t.Fatalf("Status error: %v", err)
	}

	cases := map[string]Marker{
		"clean.txt":            MarkerClean,
		"pkg/mod.txt":          MarkerModified,
		"staged.txt":           MarkerStaged,
		"fresh/deep/loose.txt": MarkerUntracked,
		"gone.txt":             MarkerDeleted,
	}
	for path, want := range cases {
		if got := ix.File(path); got != want {
			t.Errorf("File(%q) = %v, want %v", path, got, want)
		}
	}

	if got := ix.Dir("pkg"); got != MarkerModified {
		t.Errorf("Dir(pkg) = %v, want modified", got)
	}
	if got := ix.Dir("fresh"); got != MarkerUntracked {
		t.Errorf("Dir(fresh) = %v, want untracked", got)
	}
	if got := ix.Dir("fresh/deep"); got != MarkerUntracked {
		t.Errorf("Dir(fresh/deep) = %v, want untracked", got)
	}
}

func TestParseStatus_RenameRecord(t *testing.T) {
	// A rename record carries the pre-rename path as its own NUL field.
	raw := "2 R. N... 100644 100644 100644 abc def R100 new.txt\x00old.txt\x00" +
		"? loose.txt\x00"
	ix := parseStatus(raw)

	if got := ix.File("new.txt"); got != MarkerStaged {
		t.Errorf("File(new.txt) = %v, want staged", got)
	}
	if got := ix.File("old.txt"); got != MarkerClean {
		t.Errorf("pre-rename path leaked into index: %v", got)
	}
	if got := ix.File("loose.txt"); got != MarkerUntracked {
		t.Errorf("record after rename mis-parsed: %v", got)
	}
}

func TestClassifyXY(t *testing.T) {
	cases := map[string]Marker{
		"M.": MarkerStaged,
		".M": MarkerModified,
		"MM": MarkerModified,
		"A.": MarkerStaged,
		"AM": MarkerModified,
		".D": MarkerDeleted,
		"D.": MarkerDeleted,
		"R.": MarkerStaged,
		"..": MarkerClean,
	}
	for xy, want := range cases {
		if got := classifyXY(xy); got != want {
			t.Errorf("classifyXY(%q) = %v, want %v", xy, got, want)
		}
	}
}

func TestStatusIndex_NilSafe(t *testing.T) {
	var ix *StatusIndex
	if ix.File("a.txt") != MarkerClean || ix.Dir("a") != MarkerClean || ix.Len() != 0 {
		t.Fatal("nil index must answer clean")
	}
}

func TestMarkerSeverityOrder(t *testing.T) {
	order := []Marker{
		MarkerClean, MarkerIgnored, MarkerUntracked,
		MarkerStaged, MarkerModified, MarkerDeleted, MarkerConflicted,
	}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Fatalf("severity order broken at %v >= %v", order[i-1], order[i])
		}
	}
}

func TestListDir(t *testing.T) {
	dir := t.TempDir()
	for _, d := range []string{".git", "zeta", "Alpha"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range []string{"beta.txt", "alpha.txt"} {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ents, err := ListDir("", dir, nil)
	if err != nil {
		t.Fatalf("ListDir error: %v", err)
	}
	var names []string
	for _, e := range ents {
		names = append(names, e.Name)
		if e.Marker != MarkerClean {
			t.Errorf("nil index produced marker %v for %s", e.Marker, e.Name)
		}
	}
	want := []string{"Alpha", "zeta", "alpha.txt", "beta.txt"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestListDir_AttachesMarkers(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "pkg"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "mod.txt"), []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "pkg", "inner.txt"), []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ix := parseStatus("1 .M N... 100644 100644 100644 abc def mod.txt\x00" +
		"? pkg/inner.txt\x00")
	ents, err := ListDir(root, root, ix)
	if err != nil {
		t.Fatalf("ListDir error: %v", err)
	}
	got := map[string]Marker{}
	for _, e := range ents {
		got[e.Name] = e.Marker
	}
	if got["mod.txt"] != MarkerModified {
		t.Errorf("mod.txt marker = %v", got["mod.txt"])
	}
	if got["pkg"] != MarkerUntracked {
		t.Errorf("pkg marker = %v", got["pkg"])
	}
}
