package lang

import (
	"strings"
	"unicode"
)

// Split slices s around each sep that is not nested in parentheses and
// trims the space around every part. An empty s yields no parts.
func Split(s string, sep rune) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var (
		parts []string
		depth int
		start int
	)

	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + len(string(r))
			}
		}
	}

	return append(parts, strings.TrimSpace(s[start:]))
}

// CutWord slices s around the first standalone occurrence of word outside
// parentheses. A standalone word is delimited by space or the ends of s.
func CutWord(s, word string) (before, after string, found bool) {
	depth := 0

	for i, r := range s {
		switch r {
		case '(':
			depth++

			continue
		case ')':
			depth--

			continue
		}

		if depth != 0 || !strings.HasPrefix(s[i:], word) {
			continue
		}

		end := i + len(word)
		if (i == 0 || isSpaceBefore(s, i)) && (end == len(s) || isSpaceAt(s, end)) {
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[end:]), true
		}
	}

	return strings.TrimSpace(s), "", false
}

func isSpaceBefore(s string, i int) bool {
	return unicode.IsSpace(rune(s[i-1]))
}

func isSpaceAt(s string, i int) bool {
	return unicode.IsSpace(rune(s[i]))
}
