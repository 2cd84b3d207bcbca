package gitx

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirEntry is one row of a directory listing.
type DirEntry struct {
	Name   string
	IsDir  bool
	Marker Marker
}

// ListDir reads dir and attaches status markers from ix. Entries come
// back directories first, then case-insensitive by name, with .git
// hidden. Outside a repository ix is nil and every entry carries
// MarkerClean; presentation of that case is the caller's concern.
func ListDir(root, dir string, ix *StatusIndex) ([]DirEntry, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]DirEntry, 0, len(ents))
	for _, e := range ents {
		if e.Name() == ".git" {
			continue
		}
		de := DirEntry{Name: e.Name(), IsDir: e.IsDir()}
		if ix != nil && root != "" {
			if rel, err := filepath.Rel(root, filepath.Join(dir, e.Name())); err == nil {
				rel = filepath.ToSlash(rel)
				if de.IsDir {
					de.Marker = ix.Dir(rel)
				} else {
					de.Marker = ix.File(rel)
				}
			}
		}
		out = append(out, de)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDir != out[j].IsDir {
			return out[i].IsDir
		}
		li, lj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if li != lj {
			return li < lj
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
