package tui

import (
	"time"

	"github.com/interpretive-systems/triptych/internal/cachemanager"
	"github.com/interpretive-systems/triptych/internal/config"
	"github.com/interpretive-systems/triptych/internal/gitx"
	"github.com/interpretive-systems/triptych/internal/history"
	"github.com/interpretive-systems/triptych/internal/prefs"
	"github.com/interpretive-systems/triptych/internal/tui/components"
	"github.com/interpretive-systems/triptych/internal/tui/search"
	"github.com/interpretive-systems/triptych/internal/tui/styles"
	"github.com/interpretive-systems/triptych/internal/watcher"
)

// State holds all application state shared across update and view.
type State struct {
	Cfg config.Config

	// Repository. RepoErr is set when the start directory is not inside
	// a repository or git is missing; the app still browses files.
	Repo    gitx.Repo
	RepoErr error
	Branch  string

	// Directory browsing. PendingDir tags the directory listing we are
	// waiting for so results for an abandoned navigation are dropped.
	Dir           string
	PendingDir    string
	PendingSelect string

	// StartFile is a file name to preselect and open once the first
	// listing of its directory arrives.
	StartFile string

	// SelectedPath is the absolute path of the file whose history is
	// loaded, empty while no history has been opened.
	SelectedPath string

	// RemarkRef re-applies the mark after a background history reload.
	RemarkRef string

	Files   *components.FilesPane
	History *components.HistoryPane
	Diff    *components.DiffPane
	Bar     *components.StatusBar
	Search  *search.Engine

	Nav    *Navigator
	Keys   KeyMap
	Styles styles.Styles

	Hist    *history.Model
	Pair    history.Pair
	HasPair bool

	DiffCache   *cachemanager.Cache[string]
	StatusCache *cachemanager.Cache[*gitx.StatusIndex]

	Watch *watcher.Watcher
	Prefs prefs.Prefs

	ShowHelp bool

	Width  int
	Height int

	LastRefresh time.Time
}

// NewState creates the initial application state rooted at startDir.
func NewState(cfg config.Config, repo gitx.Repo, repoErr error, startDir string) *State {
	st := styles.DefaultStyles()
	s := &State{
		Cfg:         cfg,
		Repo:        repo,
		RepoErr:     repoErr,
		Dir:         startDir,
		PendingDir:  startDir,
		Files:       components.NewFilesPane(),
		History:     components.NewHistoryPane(),
		Diff:        components.NewDiffPane(st),
		Bar:         components.NewStatusBar(),
		Search:      search.New(),
		Nav:         NewNavigator(),
		Keys:        DefaultKeyMap(),
		Styles:      st,
		Hist:        history.New(),
		DiffCache:   cachemanager.New[string](0, 0),
		StatusCache: cachemanager.New[*gitx.StatusIndex](3*time.Second, time.Minute),
	}
	if repoErr != nil {
		s.Files.SetNoRepo(true)
		s.History.SetNoRepo(true)
	}
	s.Bar.SetRepo(repo.Root)
	return s
}
