// Package styles contains the Lip Gloss style definitions shared by the
// panes.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/triptych/internal/gitx"
)

// Semantic colors, adaptive to the terminal background.
var (
	titleColor   = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#E6EDF3"}
	faintColor   = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#7D8590"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}
	dividerColor = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#30363D"}

	addColor  = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	delColor  = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}
	metaColor = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#7D8590"}
	hunkColor = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"}

	addBgColor = lipgloss.AdaptiveColor{Light: "#ACEEBB", Dark: "#033A16"}
	delBgColor = lipgloss.AdaptiveColor{Light: "#FFCECB", Dark: "#67060C"}

	untrackedColor  = lipgloss.AdaptiveColor{Light: "#1B7C83", Dark: "#39C5CF"}
	stagedColor     = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	modifiedColor   = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"}
	deletedColor    = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}
	conflictedColor = lipgloss.AdaptiveColor{Light: "#8250DF", Dark: "#BC8CFF"}

	syntheticColor = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"}
	checkColor     = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
)

// Styles bundles every lipgloss style the panes render with.
type Styles struct {
	Title   lipgloss.Style
	Faint   lipgloss.Style
	Error   lipgloss.Style
	Cursor  lipgloss.Style
	Divider lipgloss.Style

	Directory lipgloss.Style

	Add     lipgloss.Style
	Del     lipgloss.Style
	Meta    lipgloss.Style
	Hunk    lipgloss.Style
	WordAdd lipgloss.Style
	WordDel lipgloss.Style

	Synthetic lipgloss.Style
	Checkmark lipgloss.Style

	markers map[gitx.Marker]lipgloss.Style
}

// DefaultStyles builds the style set for the active background.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(titleColor),
		Faint:   lipgloss.NewStyle().Foreground(faintColor),
		Error:   lipgloss.NewStyle().Foreground(errorColor),
		Cursor:  lipgloss.NewStyle().Bold(true),
		Divider: lipgloss.NewStyle().Foreground(dividerColor),

		Directory: lipgloss.NewStyle().Bold(true).Foreground(hunkColor),

		Add:     lipgloss.NewStyle().Foreground(addColor),
		Del:     lipgloss.NewStyle().Foreground(delColor),
		Meta:    lipgloss.NewStyle().Foreground(metaColor),
		Hunk:    lipgloss.NewStyle().Foreground(hunkColor),
		WordAdd: lipgloss.NewStyle().Foreground(addColor).Background(addBgColor),
		WordDel: lipgloss.NewStyle().Foreground(delColor).Background(delBgColor),

		Synthetic: lipgloss.NewStyle().Bold(true).Foreground(syntheticColor),
		Checkmark: lipgloss.NewStyle().Foreground(checkColor),

		markers: map[gitx.Marker]lipgloss.Style{
			gitx.MarkerIgnored:    lipgloss.NewStyle().Foreground(faintColor),
			gitx.MarkerUntracked:  lipgloss.NewStyle().Foreground(untrackedColor),
			gitx.MarkerStaged:     lipgloss.NewStyle().Foreground(stagedColor),
			gitx.MarkerModified:   lipgloss.NewStyle().Foreground(modifiedColor),
			gitx.MarkerDeleted:    lipgloss.NewStyle().Foreground(deletedColor),
			gitx.MarkerConflicted: lipgloss.NewStyle().Foreground(conflictedColor),
		},
	}
}

// Marker returns the style for a status marker. Clean entries render
// unstyled.
func (s Styles) Marker(m gitx.Marker) lipgloss.Style {
	if st, ok := s.markers[m]; ok {
		return st
	}
	return lipgloss.NewStyle()
}
