package output

import (
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// wrapText splits text into lines that fit the terminal after indent columns.
// Existing newlines are kept.
func wrapText(text string, indent int) []string {
	maxWidth := getTerminalWidth() - indent - 2
	if maxWidth <= 10 {
		maxWidth = 80
	}
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if utf8.RuneCountInString(raw) <= maxWidth {
			lines = append(lines, raw)
			continue
		}
		current := []rune{}
		for _, r := range raw {
			if len(current) == maxWidth {
				lines = append(lines, string(current))
				current = current[:0]
			}
			current = append(current, r)
		}
		if len(current) > 0 {
			lines = append(lines, string(current))
		}
	}
	return lines
}
