package lang

import (
	"errors"
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the "did you mean" list.
const maxSuggestions = 3

// Suggest returns up to three candidates resembling name, best match first.
func Suggest(name string, candidates []string) []string {
	if name == "" {
		return nil
	}

	var out []string

	for _, m := range fuzzy.Find(name, candidates) {
		if m.Str == name {
			continue
		}

		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}

	return out
}

// suggestError returns an error with msg and, when any candidate resembles
// name, a "did you mean" hint.
func suggestError(msg, name string, candidates []string) error {
	if s := Suggest(name, candidates); len(s) > 0 {
		msg += " (did you mean " + strings.Join(s, ", ") + "?)"
	}

	return errors.New(msg)
}
