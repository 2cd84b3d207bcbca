// Package prefs persists per-repository UI preferences in git local
// config, so layout choices follow the repository rather than the user's
// global settings.
package prefs

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Prefs represents persisted UI preferences. The *Set flags distinguish
// "configured" from "absent" so defaults apply only when nothing is
// stored.
type Prefs struct {
	FilesWidth   int
	FilesSet     bool
	HistoryWidth int
	HistorySet   bool
	Color        bool
	ColorSet     bool
	Wrap         bool
	WrapSet      bool
}

const (
	keyFilesWidth   = "triptych.filesWidth"
	keyHistoryWidth = "triptych.historyWidth"
	keyColor        = "triptych.color"
	keyWrap         = "triptych.wrap"
)

// Load reads preferences from git local config. Missing or unreadable
// keys simply stay unset.
func Load(repoRoot string) Prefs {
	var p Prefs
	if s, ok := get(repoRoot, keyFilesWidth); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			p.FilesSet = true
			p.FilesWidth = n
		}
	}
	if s, ok := get(repoRoot, keyHistoryWidth); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			p.HistorySet = true
			p.HistoryWidth = n
		}
	}
	if s, ok := get(repoRoot, keyColor); ok {
		p.ColorSet = true
		p.Color = parseBool(s)
	}
	if s, ok := get(repoRoot, keyWrap); ok {
		p.WrapSet = true
		p.Wrap = parseBool(s)
	}
	return p
}

// SaveFilesWidth persists the Files column width.
func SaveFilesWidth(repoRoot string, w int) error {
	if w <= 0 {
		return fmt.Errorf("invalid files width: %d", w)
	}
	return set(repoRoot, keyFilesWidth, strconv.Itoa(w))
}

// SaveHistoryWidth persists the History column width.
func SaveHistoryWidth(repoRoot string, w int) error {
	if w <= 0 {
		return fmt.Errorf("invalid history width: %d", w)
	}
	return set(repoRoot, keyHistoryWidth, strconv.Itoa(w))
}

// SaveColor persists the diff color default.
func SaveColor(repoRoot string, v bool) error {
	return set(repoRoot, keyColor, boolStr(v))
}

// SaveWrap persists the diff wrap default.
func SaveWrap(repoRoot string, v bool) error {
	return set(repoRoot, keyWrap, boolStr(v))
}

func get(repoRoot, key string) (string, bool) {
	cmd := exec.Command("git", "-C", repoRoot, "config", "--get", key)
	b, err := cmd.Output()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

func set(repoRoot, key, value string) error {
	cmd := exec.Command("git", "-C", repoRoot, "config", "--local", key, value)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git config %s: %w: %s", key, err, string(out))
	}
	return nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func boolStr(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
