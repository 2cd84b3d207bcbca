package prefs

import (
	"os/exec"
	"testing"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cmd := exec.Command("git", "init", "-q")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init failed: %v\n%s", err, out)
	}
	return dir
}

func TestLoad_EmptyRepo(t *testing.T) {
	dir := initRepo(t)
	p := Load(dir)
	if p.FilesSet || p.HistorySet || p.ColorSet || p.WrapSet {
		t.Fatalf("fresh repo reported stored prefs: %+v", p)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := initRepo(t)

	if err := SaveFilesWidth(dir, 42); err != nil {
		t.Fatalf("SaveFilesWidth: %v", err)
	}
	if err := SaveHistoryWidth(dir, 36); err != nil {
		t.Fatalf("SaveHistoryWidth: %v", err)
	}
	if err := SaveColor(dir, true); err != nil {
		t.Fatalf("SaveColor: %v", err)
	}
	if err := SaveWrap(dir, false); err != nil {
		t.Fatalf("SaveWrap: %v", err)
	}

	p := Load(dir)
	if !p.FilesSet || p.FilesWidth != 42 {
		t.Errorf("files width: %+v", p)
	}
	if !p.HistorySet || p.HistoryWidth != 36 {
		t.Errorf("history width: %+v", p)
	}
	if !p.ColorSet || !p.Color {
		t.Errorf("color: %+v", p)
	}
	if !p.WrapSet || p.Wrap {
		t.Errorf("wrap: %+v", p)
	}
}

func TestSaveWidth_RejectsNonPositive(t *testing.T) {
	dir := initRepo(t)
	if err := SaveFilesWidth(dir, 0); err == nil {
		t.Fatal("expected error for zero width")
	}
	if err := SaveHistoryWidth(dir, -3); err == nil {
		t.Fatal("expected error for negative width")
	}
}
