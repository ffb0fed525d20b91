package repl

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/qedcfg/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "units", "fields", "unset", "clear", "quit"}

// isWordBoundary reports whether r delimits identifiers for completion.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '(', ')', ',', '=',
		'+', '-', '*', '/', '^':
		return true
	}

	return false
}

// wordBounds returns the word under the cursor and its byte boundaries
// within input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidates returns every name an expression may reference in s:
// constants, built-in units, functions and assigned fields.
func candidates(s *Session) []string {
	names := s.Table().Symbols()
	names = append(names, lang.DefaultFunctions().Names()...)
	names = append(names, s.Fields()...)

	slices.Sort(names)

	return slices.Compact(names)
}

// computeMatches ranks the candidates for the word at the cursor.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	word, start, end := wordBounds(m.input.Value(), m.input.Position())
	if word == "" {
		return nil, start, end
	}

	// Numeric literals never complete.
	if r, _ := utf8.DecodeRuneInString(word); (r >= '0' && r <= '9') || r == '.' {
		return nil, start, end
	}

	var names []string

	switch m.mode {
	case modeCtrl:
		// Only the command word completes to a command; arguments are names.
		if strings.TrimSpace(m.input.Value()[:start]) == "" {
			names = ctrlCommands
		} else {
			names = m.session.Fields()
		}

	default:
		names = candidates(m.session)
	}

	return fuzzy.Find(word, names), start, end
}

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit within width. The selected candidate is highlighted while tabbing.
func renderCandidateBar(matches fuzzy.Matches, suggIdx int, tabActive bool, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters
// highlighted. Functions get a "()" suffix for display only.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if _, ok := lang.DefaultFunctions()[match.Str]; ok {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}

// functionCall describes the innermost call enclosing the cursor.
type functionCall struct {
	name     string
	argIndex int
	inCall   bool
}

// detectFunctionCall finds the innermost open call before cursor and the
// index of the argument being typed.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(cursor, len(input))

	depth, args := 0, 0

	for i := cursor - 1; i >= 0; i-- {
		switch input[i] {
		case ')':
			depth++

		case ',':
			if depth == 0 {
				args++
			}

		case '(':
			if depth > 0 {
				depth--

				continue
			}

			name, _, _ := wordBounds(input, i)
			if name == "" {
				return functionCall{}
			}

			return functionCall{name: name, argIndex: args, inCall: true}
		}
	}

	return functionCall{}
}

// renderSignatureHint describes fn with the argument at index highlighted.
func renderSignatureHint(fn *lang.Function, index int) string {
	var params []string

	switch fn.Arity {
	case lang.Variadic:
		params = []string{"x..."}

	default:
		for i := range fn.Arity {
			params = append(params, "x"+strconv.Itoa(i+1))
		}
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(fn.Name))
	b.WriteString(hintStyle.Render("("))

	for i, p := range params {
		if i > 0 {
			b.WriteString(hintStyle.Render(", "))
		}

		if i == index || (fn.Arity == lang.Variadic && i == len(params)-1) {
			b.WriteString(currentParamStyle.Render(p))
		} else {
			b.WriteString(hintStyle.Render(p))
		}
	}

	b.WriteString(hintStyle.Render(")"))

	if fn.Doc != "" {
		b.WriteString(hintStyle.Render("  " + fn.Doc))
	}

	return b.String()
}
