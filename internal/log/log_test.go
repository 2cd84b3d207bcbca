package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		" warn ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        levelOff,
		"nope":    levelOff,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "triptych.log")
	if err := Init(path, LevelInfo); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer Close()

	Debug("hidden")
	Info("loaded", "path", "a/b.go", "entries", 3)
	Warn("slow", "ms", 120)

	Close()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	s := string(data)
	if strings.Contains(s, "hidden") {
		t.Errorf("debug line written at info level:\n%s", s)
	}
	if !strings.Contains(s, "loaded path=a/b.go entries=3") {
		t.Errorf("missing info line:\n%s", s)
	}
	if !strings.Contains(s, "WARN") {
		t.Errorf("missing warn line:\n%s", s)
	}
}

func TestDisabledByDefault(t *testing.T) {
	Close()
	if Enabled(LevelError) {
		t.Fatal("logging enabled without Init")
	}
	// Must not panic with no output configured.
	Info("dropped")
}
