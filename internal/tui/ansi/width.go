package ansi

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// SliceHorizontal returns a substring starting at visual column start with
// at most width columns. Preserves ANSI escape sequences.
func SliceHorizontal(s string, start, width int) string {
	if start <= 0 {
		return xansi.Truncate(s, width, "")
	}
	head := xansi.Truncate(s, start+width, "")
	return xansi.TruncateLeft(head, start, "")
}

// ClipToWidth truncates string to at most w visual columns without ellipsis.
func ClipToWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return xansi.Truncate(s, w, "")
}

// PadExact pads string with spaces to exactly width w (ANSI-aware).
func PadExact(s string, w int) string {
	vw := VisualWidth(s)
	if vw >= w {
		return s
	}
	return s + strings.Repeat(" ", w-vw)
}

// TruncateToWidth truncates to width with ellipsis if needed.
func TruncateToWidth(s string, width int) string {
	return xansi.Truncate(s, width, "…")
}

// WrapLine wraps a single line to the given width, preserving ANSI codes.
func WrapLine(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	wrapped := xansi.Hardwrap(s, width, false)
	return strings.Split(wrapped, "\n")
}

// WrapLines wraps multiple lines.
func WrapLines(lines []string, width int) []string {
	result := make([]string, 0, len(lines)*2)
	for _, line := range lines {
		result = append(result, WrapLine(line, width)...)
	}
	return result
}
