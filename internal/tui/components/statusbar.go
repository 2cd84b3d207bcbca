package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/interpretive-systems/triptych/internal/gitx"
)

// StatusBar manages the bottom status bar.
type StatusBar struct {
	branch      string
	repoRoot    string
	noRepo      bool
	mode        gitx.DiffMode
	diffOpen    bool
	color       bool
	wrap        bool
	search      string
	notice      string
	lastRefresh time.Time
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{color: true}
}

// SetRepo records the repository root, or marks the bar repo-less.
func (s *StatusBar) SetRepo(root string) {
	s.repoRoot = root
	s.noRepo = root == ""
}

// SetBranch updates the branch name.
func (s *StatusBar) SetBranch(name string) {
	s.branch = name
}

// SetDiffState updates the diff flags shown while a comparison is open.
func (s *StatusBar) SetDiffState(open bool, mode gitx.DiffMode, color, wrap bool) {
	s.diffOpen = open
	s.mode = mode
	s.color = color
	s.wrap = wrap
}

// SetSearch updates the match counter text, empty to hide it.
func (s *StatusBar) SetSearch(status string) {
	s.search = status
}

// SetNotice shows a transient message, empty to clear it.
func (s *StatusBar) SetNotice(msg string) {
	s.notice = msg
}

// SetLastRefresh updates the refresh timestamp.
func (s *StatusBar) SetLastRefresh(t time.Time) {
	s.lastRefresh = t
}

// Render renders the status bar.
func (s *StatusBar) Render(width int) string {
	var left []string
	switch {
	case s.noRepo:
		left = append(left, "(no repo)")
	case s.branch != "":
		left = append(left, s.branch)
	}
	if s.notice != "" {
		left = append(left, s.notice)
	} else {
		left = append(left, "?: help")
	}
	if s.search != "" {
		left = append(left, s.search)
	}
	leftStyled := lipgloss.NewStyle().Faint(true).Render(strings.Join(left, "  |  "))

	var right []string
	if s.diffOpen {
		flags := "mode:" + s.mode.String()
		if !s.color {
			flags += "  nocolor"
		}
		if s.wrap {
			flags += "  wrap"
		}
		right = append(right, flags)
	}
	if !s.lastRefresh.IsZero() {
		right = append(right, "refreshed: "+s.lastRefresh.Format("15:04:05"))
	}
	rightStyled := lipgloss.NewStyle().Faint(true).Render(strings.Join(right, "  |  "))

	// The right side always stays visible.
	rightW := lipgloss.Width(rightStyled)
	if rightW >= width {
		return ansi.Truncate(rightStyled, width, "…")
	}

	avail := width - rightW - 1
	if lipgloss.Width(leftStyled) > avail {
		leftStyled = ansi.Truncate(leftStyled, avail, "…")
	} else if lipgloss.Width(leftStyled) < avail {
		leftStyled = leftStyled + strings.Repeat(" ", avail-lipgloss.Width(leftStyled))
	}

	return leftStyled + " " + rightStyled
}
