package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/interpretive-systems/triptych/internal/tui/ansi"
)

const (
	// Matches show black on bright white, the current one black on
	// yellow. Raw sequences keep the reset cost predictable inside
	// lines that already carry diff coloring.
	matchStartSeq        = "\x1b[30;107m"
	currentMatchStartSeq = "\x1b[30;43m"
	matchEndSeq          = "\x1b[0m"
)

// highlightLines returns lines with every query occurrence on a
// matching line wrapped in highlight sequences.
func highlightLines(lines []string, query string, matches []int, currentLine int) []string {
	if len(lines) == 0 || query == "" {
		return lines
	}

	matchSet := make(map[int]struct{}, len(matches))
	for _, idx := range matches {
		if idx >= 0 && idx < len(lines) {
			matchSet[idx] = struct{}{}
		}
	}

	result := make([]string, len(lines))
	for i, line := range lines {
		if _, ok := matchSet[i]; !ok {
			result[i] = line
			continue
		}

		ranges := findQueryRanges(line, query)
		if len(ranges) == 0 {
			result[i] = line
			continue
		}

		result[i] = applyRangeHighlight(line, ranges, i == currentLine)
	}

	return result
}

// runeRange is a half-open range of rune positions in the plain text of
// a line, escape sequences excluded.
type runeRange struct {
	start int
	end   int
}

// findQueryRanges locates every case-insensitive occurrence of query in
// the visible text of line.
func findQueryRanges(line, query string) []runeRange {
	plain := ansi.Strip(line)
	if plain == "" || query == "" {
		return nil
	}

	lowerRunes := []rune(strings.ToLower(plain))
	queryRunes := []rune(strings.ToLower(query))

	if len(queryRunes) == 0 || len(queryRunes) > len(lowerRunes) {
		return nil
	}

	ranges := make([]runeRange, 0, 4)
	for i := 0; i <= len(lowerRunes)-len(queryRunes); i++ {
		match := true
		for j := 0; j < len(queryRunes); j++ {
			if lowerRunes[i+j] != queryRunes[j] {
				match = false
				break
			}
		}
		if match {
			ranges = append(ranges, runeRange{start: i, end: i + len(queryRunes)})
		}
	}

	if len(ranges) == 0 {
		return nil
	}

	return mergeRanges(ranges)
}

func mergeRanges(ranges []runeRange) []runeRange {
	if len(ranges) <= 1 {
		return ranges
	}

	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].start == ranges[j].start {
			return ranges[i].end < ranges[j].end
		}
		return ranges[i].start < ranges[j].start
	})

	merged := make([]runeRange, 0, len(ranges))
	cur := ranges[0]

	for _, r := range ranges[1:] {
		if r.start <= cur.end {
			if r.end > cur.end {
				cur.end = r.end
			}
			continue
		}
		merged = append(merged, cur)
		cur = r
	}
	merged = append(merged, cur)

	return merged
}

// applyRangeHighlight wraps the given rune ranges in highlight
// sequences while passing existing escape sequences through untouched.
// Rune positions count visible characters only.
func applyRangeHighlight(line string, ranges []runeRange, isCurrent bool) string {
	startSeq := matchStartSeq
	if isCurrent {
		startSeq = currentMatchStartSeq
	}

	var b strings.Builder
	matchIdx := 0
	inMatch := false
	runePos := 0

	for i := 0; i < len(line); {
		if line[i] == 0x1b {
			next := ansi.ConsumeEscape(line, i)
			b.WriteString(line[i:next])
			i = next
			continue
		}

		_, size := utf8.DecodeRuneInString(line[i:])

		if inMatch {
			for matchIdx < len(ranges) && runePos >= ranges[matchIdx].end {
				b.WriteString(matchEndSeq)
				inMatch = false
				matchIdx++
			}
		}

		for !inMatch && matchIdx < len(ranges) && runePos >= ranges[matchIdx].end {
			matchIdx++
		}

		if !inMatch && matchIdx < len(ranges) && runePos == ranges[matchIdx].start {
			b.WriteString(startSeq)
			inMatch = true
		}

		b.WriteString(line[i : i+size])
		runePos++
		i += size
	}

	if inMatch {
		b.WriteString(matchEndSeq)
	}

	return b.String()
}
