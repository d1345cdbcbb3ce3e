package document

import (
	"strings"
)

// Measurer reports the printed width of a string in millimetres.
type Measurer interface {
	StringWidth(s string, size float64, style FontStyle) float64
}

// Wrap breaks text into lines no wider than width using greedy word
// filling. Explicit newlines are kept, and a word wider than the line is
// split between characters.
func Wrap(m Measurer, text string, size float64, style FontStyle, width float64) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, w := range strings.Fields(para) {
			if line != "" {
				candidate := line + " " + w
				if m.StringWidth(candidate, size, style) <= width {
					line = candidate
					continue
				}
				lines = append(lines, line)
				line = ""
			}
			for w != "" && m.StringWidth(w, size, style) > width {
				var head string
				head, w = splitToWidth(m, w, size, style, width)
				lines = append(lines, head)
			}
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

// splitToWidth returns the longest prefix of w that fits, at least one rune.
func splitToWidth(m Measurer, w string, size float64, style FontStyle, width float64) (string, string) {
	r := []rune(w)
	n := 1
	for n < len(r) && m.StringWidth(string(r[:n+1]), size, style) <= width {
		n++
	}
	return string(r[:n]), string(r[n:])
}
