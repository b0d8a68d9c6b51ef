// Package comment finds documentation comments in C-family source files
// and strips their markers.
package comment

import (
	"strings"
)

// Style is the marker a documentation comment was written with:
// "/**", "/*!", "///" or "//!".
type Style int

const (
	StyleJavaDoc Style = iota
	StyleQt
	StyleTripleSlash
	StyleBang
)

var styleNames = [...]string{"javadoc", "qt", "triple-slash", "bang"}

func (s Style) String() string { return styleNames[s] }

// Block is one documentation comment.
type Block struct {
	Text    string // markers stripped, one line per source line
	Line    int    // source line of the first line of Text
	EndLine int
	Style   Style
	// After marks comments documenting the preceding declaration
	// ("/**<", "///<").
	After bool
}

// Strip removes the comment markers from a single block comment or run
// of line comments and returns the text and the number of leading lines
// that were dropped because they held nothing but markers.
func Strip(raw string) (string, int) {
	raw = strings.TrimSpace(raw)
	var lines []string
	switch {
	case strings.HasPrefix(raw, "/*"):
		body := strings.TrimSuffix(raw[3:], "*/")
		body = strings.TrimPrefix(body, "<")
		for i, line := range strings.Split(body, "\n") {
			if i == 0 {
				line = strings.TrimLeft(line, " \t")
			} else {
				line = stripLinePrefix(line)
			}
			lines = append(lines, line)
		}
	default:
		for _, line := range strings.Split(raw, "\n") {
			line = strings.TrimLeft(line, " \t")
			if strings.HasPrefix(line, "///") || strings.HasPrefix(line, "//!") {
				line = line[3:]
			}
			line = strings.TrimPrefix(line, "<")
			lines = append(lines, strings.TrimPrefix(line, " "))
		}
	}
	return trimBlankLines(lines)
}

// stripLinePrefix removes leading whitespace and a single asterisk
// followed by an optional blank from a continuation line.
func stripLinePrefix(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "*") && !strings.HasPrefix(trimmed, "*/") {
		return strings.TrimPrefix(trimmed[1:], " ")
	}
	return line
}

func trimBlankLines(lines []string) (string, int) {
	skipped := 0
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
		skipped++
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.Join(lines, "\n"), skipped
}
