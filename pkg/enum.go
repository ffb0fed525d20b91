package pkg

import "strings"

// ParseEnum returns the member of all whose String form equals s, ignoring
// case and surrounding space.
func ParseEnum[T interface {
	~int
	String() string
}](s string, all []T) (T, bool) {
	s = strings.TrimSpace(s)

	for _, v := range all {
		if strings.EqualFold(v.String(), s) {
			return v, true
		}
	}

	var zero T

	return zero, false
}

// EnumNames returns the String form of each member of all.
func EnumNames[T interface{ String() string }](all []T) []string {
	names := make([]string, len(all))
	for i, v := range all {
		names[i] = v.String()
	}

	return names
}
