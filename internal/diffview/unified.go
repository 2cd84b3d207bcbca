package diffview

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// RowKind represents the semantic type of a rendered diff row.
type RowKind int

const (
	RowContext RowKind = iota
	RowAdd
	RowDel
	RowHunk
	RowMeta
)

// Segment is a run of characters within a row, marked when it differs
// from the paired row on the other side of a change.
type Segment struct {
	Text    string
	Changed bool
}

// Row represents a single visual row of a unified diff. Text holds the
// line without its leading marker for content rows and the raw line for
// hunk and metadata rows. OldLine and NewLine are 1-based; zero means
// the line does not exist on that side.
type Row struct {
	Kind    RowKind
	Text    string
	OldLine int
	NewLine int
	Segs    []Segment
}

var hunkRE = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

// Lines longer than this skip intra-line matching; character diffs on
// huge lines cost more than the highlight is worth.
const maxInlineLen = 4096

// BuildRows parses a unified diff string into rows ready for styling.
// Within each hunk, runs of deletions are paired in order with the
// additions that follow them and both sides get character-level change
// segments.
func BuildRows(unified string) []Row {
	s := bufio.NewScanner(strings.NewReader(unified))
	s.Buffer(make([]byte, 0, 64*1024), 10*1024*1024) // allow large lines

	rows := make([]Row, 0, 256)
	pendingDel := make([]int, 0) // indices of deletion rows awaiting a pair

	inHunk := false
	oldN, newN := 0, 0

	for s.Scan() {
		line := s.Text()

		if m := hunkRE.FindStringSubmatch(line); m != nil {
			pendingDel = pendingDel[:0]
			oldN, _ = strconv.Atoi(m[1])
			newN, _ = strconv.Atoi(m[2])
			rows = append(rows, Row{Kind: RowHunk, Text: line})
			inHunk = true
			continue
		}
		if !inHunk {
			// Everything between hunks is header material: diff --git,
			// index, mode changes, rename lines, binary notices.
			if line != "" {
				rows = append(rows, Row{Kind: RowMeta, Text: line})
			}
			continue
		}

		if len(line) == 0 {
			// Blank line inside a hunk: tolerate as context.
			pendingDel = pendingDel[:0]
			rows = append(rows, Row{Kind: RowContext, OldLine: oldN, NewLine: newN})
			oldN++
			newN++
			continue
		}

		switch line[0] {
		case ' ':
			pendingDel = pendingDel[:0]
			rows = append(rows, Row{Kind: RowContext, Text: line[1:], OldLine: oldN, NewLine: newN})
			oldN++
			newN++
		case '-':
			rows = append(rows, Row{Kind: RowDel, Text: line[1:], OldLine: oldN})
			pendingDel = append(pendingDel, len(rows)-1)
			oldN++
		case '+':
			rows = append(rows, Row{Kind: RowAdd, Text: line[1:], NewLine: newN})
			newN++
			if len(pendingDel) > 0 {
				// Pair with the earliest unpaired deletion.
				di := pendingDel[0]
				pendingDel = pendingDel[1:]
				ai := len(rows) - 1
				rows[di].Segs, rows[ai].Segs = wordSegments(rows[di].Text, rows[ai].Text)
			}
		case '\\':
			// "\ No newline at end of file"
			pendingDel = pendingDel[:0]
			rows = append(rows, Row{Kind: RowMeta, Text: line})
		default:
			// Start of the next file's header.
			pendingDel = pendingDel[:0]
			rows = append(rows, Row{Kind: RowMeta, Text: line})
			inHunk = false
		}
	}
	return rows
}

// wordSegments computes character-level change segments for a paired
// deletion and addition. Both return values cover their full line.
func wordSegments(oldText, newText string) (del, add []Segment) {
	if len(oldText) > maxInlineLen || len(newText) > maxInlineLen {
		return nil, nil
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			del = append(del, Segment{Text: d.Text})
			add = append(add, Segment{Text: d.Text})
		case diffmatchpatch.DiffDelete:
			del = append(del, Segment{Text: d.Text, Changed: true})
		case diffmatchpatch.DiffInsert:
			add = append(add, Segment{Text: d.Text, Changed: true})
		}
	}
	return del, add
}
