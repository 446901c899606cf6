package ui

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Face is the bitmap face every label is drawn with.
var Face font.Face = basicfont.Face7x13

// LineHeight is the baseline-to-baseline distance for Face.
const LineHeight = 16

// Wrap breaks s into lines no wider than width pixels in face. Words longer
// than a line are kept whole on their own line. Explicit newlines are
// honoured.
func Wrap(s string, face font.Face, width int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			next := line + " " + w
			if font.MeasureString(face, next).Ceil() > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line = next
		}
		lines = append(lines, line)
	}
	return lines
}

// TextWidth returns the advance of s in face, in pixels.
func TextWidth(s string, face font.Face) int {
	return font.MeasureString(face, s).Ceil()
}
