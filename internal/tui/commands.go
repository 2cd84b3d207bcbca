package tui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/triptych/internal/cachemanager"
	"github.com/interpretive-systems/triptych/internal/gitx"
	"github.com/interpretive-systems/triptych/internal/history"
	"github.com/interpretive-systems/triptych/internal/log"
	"github.com/interpretive-systems/triptych/internal/prefs"
	"github.com/interpretive-systems/triptych/internal/watcher"
)

var _ history.Source = gitx.Repo{}

// loadDir lists dir. The status index is shared across listings through
// the cache so rapid navigation does not re-run git status per keypress.
func loadDir(repo gitx.Repo, statusCache *cachemanager.Cache[*gitx.StatusIndex], dir string) tea.Cmd {
	return func() tea.Msg {
		var ix *gitx.StatusIndex
		if repo.Root != "" {
			var err error
			ix, err = statusCache.GetOrLoad("status", repo.Status)
			if err != nil {
				log.Err("status", err)
				ix = nil
			}
		}
		entries, err := gitx.ListDir(repo.Root, dir, ix)
		return dirMsg{dir: dir, entries: entries, err: err}
	}
}

func loadHistory(src history.Source, path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := history.LoadEntries(src, path)
		return historyMsg{path: path, entries: entries, err: err}
	}
}

// loadDiff produces the diff text for pair under mode. Results are cached
// per (path, pair, mode) so toggling color or re-entering the same
// comparison never re-invokes git.
func loadDiff(repo gitx.Repo, cache *cachemanager.Cache[string], path string, pair history.Pair, mode gitx.DiffMode, context int) tea.Cmd {
	key := diffKey(path, pair, mode)
	return func() tea.Msg {
		text, err := cache.GetOrLoad(key, func() (string, error) {
			return repo.Diff(path, pair.Options(mode, context))
		})
		return diffMsg{key: key, mode: mode, text: text, err: err}
	}
}

func diffKey(path string, pair history.Pair, mode gitx.DiffMode) string {
	return path + "|" + pair.Key() + "|" + mode.String()
}

func loadBranch(root string) tea.Cmd {
	return func() tea.Msg {
		name, err := gitx.CurrentBranch(root)
		return branchMsg{name: name, err: err}
	}
}

func loadPrefs(root string) tea.Cmd {
	return func() tea.Msg {
		return prefsMsg{p: prefs.Load(root)}
	}
}

func tickOnce() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// waitRefresh blocks on the watcher's debounced event channel.
func waitRefresh(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.Events(); !ok {
			return nil
		}
		return refreshMsg{}
	}
}

func yankDiff(text string) tea.Cmd {
	return func() tea.Msg {
		return yankMsg{err: clipboard.WriteAll(text)}
	}
}

// savePref persists one preference in the background. Failures are
// logged, never surfaced.
func savePref(save func() error) tea.Cmd {
	return func() tea.Msg {
		if err := save(); err != nil {
			log.Err("save pref", err)
		}
		return nil
	}
}
