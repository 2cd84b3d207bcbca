package gitx

import "strings"

// Marker classifies a path's working-tree status for the Files pane.
// Declaration order is severity order; directory aggregation takes the
// maximum over contained entries.
type Marker int

const (
	MarkerClean Marker = iota
	MarkerIgnored
	MarkerUntracked
	MarkerStaged
	MarkerModified
	MarkerDeleted
	MarkerConflicted
)

func (m Marker) String() string {
	switch m {
	case MarkerIgnored:
		return "ignored"
	case MarkerUntracked:
		return "untracked"
	case MarkerStaged:
		return "staged"
	case MarkerModified:
		return "modified"
	case MarkerDeleted:
		return "deleted"
	case MarkerConflicted:
		return "conflicted"
	default:
		return "clean"
	}
}

// Symbol returns the one-character marker rendered beside a file name.
func (m Marker) Symbol() string {
	switch m {
	case MarkerIgnored:
		return "!"
	case MarkerUntracked:
		return "?"
	case MarkerStaged:
		return "S"
	case MarkerModified:
		return "M"
	case MarkerDeleted:
		return "D"
	case MarkerConflicted:
		return "U"
	default:
		return " "
	}
}

// StatusIndex maps root-relative slash-separated paths to markers, with
// aggregated markers for every ancestor directory of a changed file.
// A nil index answers MarkerClean for everything.
type StatusIndex struct {
	files map[string]Marker
	dirs  map[string]Marker
}

// File returns the marker recorded for a file path.
func (ix *StatusIndex) File(rel string) Marker {
	if ix == nil {
		return MarkerClean
	}
	return ix.files[rel]
}

// Dir returns the strongest marker among the directory's contents.
// Ignored entries never color their parent.
func (ix *StatusIndex) Dir(rel string) Marker {
	if ix == nil {
		return MarkerClean
	}
	return ix.dirs[rel]
}

// Len reports how many paths carry a non-clean marker.
func (ix *StatusIndex) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.files)
}

// Status captures the worktree status of the whole repository in one
// porcelain-v2 query. Untracked directories are expanded so aggregation
// sees every contained file.
func Status(root string) (*StatusIndex, error) {
	out, err := runGit(root, "status", "--porcelain=v2", "-z",
		"--untracked-files=all", "--ignored=matching")
	if err != nil {
		return nil, err
	}
	return parseStatus(out), nil
}

// parseStatus reads NUL-separated porcelain v2 records:
//
//	1 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <path>
//	2 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <X><score> <path> NUL <origPath>
//	u <XY> <sub> <m1> <m2> <m3> <mW> <h1> <h2> <h3> <path>
//	? <path>
//	! <path>
func parseStatus(out string) *StatusIndex {
	ix := &StatusIndex{
		files: make(map[string]Marker),
		dirs:  make(map[string]Marker),
	}
	parts := strings.Split(out, "\x00")
	for i := 0; i < len(parts); i++ {
		line := parts[i]
		if line == "" {
			continue
		}
		var marker Marker
		var path string
		switch {
		case strings.HasPrefix(line, "1 "):
			fields := strings.SplitN(line, " ", 9)
			if len(fields) < 9 {
				continue
			}
			marker, path = classifyXY(fields[1]), fields[8]
		case strings.HasPrefix(line, "2 "):
			fields := strings.SplitN(line, " ", 10)
			if len(fields) < 10 {
				continue
			}
			marker, path = classifyXY(fields[1]), fields[9]
			// The pre-rename path follows as its own NUL record.
			i++
		case strings.HasPrefix(line, "u "):
			fields := strings.SplitN(line, " ", 11)
			if len(fields) < 11 {
				continue
			}
			marker, path = MarkerConflicted, fields[10]
		case strings.HasPrefix(line, "? "):
			marker, path = MarkerUntracked, line[2:]
		case strings.HasPrefix(line, "! "):
			marker, path = MarkerIgnored, line[2:]
		default:
			continue
		}
		ix.files[path] = marker
		if marker <= MarkerIgnored {
			continue
		}
		for dir := parentOf(path); dir != ""; dir = parentOf(dir) {
			if marker > ix.dirs[dir] {
				ix.dirs[dir] = marker
			}
		}
	}
	return ix
}

// classifyXY folds the two-column porcelain state into one marker.
// A deletion on either side outranks plain modification; otherwise
// worktree changes outrank index-only changes.
func classifyXY(xy string) Marker {
	if len(xy) < 2 {
		return MarkerClean
	}
	x, y := xy[0], xy[1]
	switch {
	case x == 'D' || y == 'D':
		return MarkerDeleted
	case y != '.':
		return MarkerModified
	case x != '.':
		return MarkerStaged
	default:
		return MarkerClean
	}
}

func parentOf(p string) string {
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return ""
	}
	return p[:i]
}
