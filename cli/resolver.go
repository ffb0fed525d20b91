package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag defaults from
// a YAML mapping.
//
// Keys are flag names; hyphens and underscores are interchangeable:
//
//	log-level: debug
//	log_pretty: false
//	include:
//	  - ~/qed/common
//
// Command-line flags override config file values. A file that fails to
// parse, or is not a mapping, contributes nothing.
func resolve(r io.Reader) (kong.Resolver, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(src, &raw); err != nil {
		return config{}, nil //nolint:nilerr
	}

	cfg := make(config, len(raw))

	for key, value := range raw {
		cfg[strings.ReplaceAll(key, "_", "-")] = flagText(value)
	}

	return cfg, nil
}

// config implements [kong.Resolver] over flag names.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	return nil, nil
}

// flagText converts decoded YAML values to the forms kong parses: numbers
// become strings and sequences become lists of strings.
func flagText(v any) any {
	switch v := v.(type) {
	case uint64:
		return strconv.FormatUint(v, 10)

	case int64:
		return strconv.FormatInt(v, 10)

	case int:
		return strconv.Itoa(v)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		list := make([]any, len(v))
		for i, item := range v {
			if s, ok := flagText(item).(string); ok {
				list[i] = s
			} else {
				list[i] = yamlText(item)
			}
		}

		return list

	default:
		return v
	}
}

func yamlText(v any) string {
	out, err := yaml.Marshal(v)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(out))
}
