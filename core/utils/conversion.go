package utils

import (
	"strconv"
	"strings"
)

// Normalize lowercases and trims a value for case-insensitive comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseBool parses a loose boolean ("1", "true", "yes", "on" / "0", "false", "no", "off").
// ok is false when the value is absent or not recognised.
func ParseBool(val string) (value bool, ok bool) {
	switch Normalize(val) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// ParseInt parses a leading signed integer the way the game client prints it,
// ignoring trailing text ("12 lbs" -> 12). ok is false when no digits lead the value.
func ParseInt(val string) (int, bool) {
	s := strings.TrimSpace(val)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// SplitList splits a comma separated list, trimming entries and dropping empty ones.
func SplitList(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// UnionNormalized merges lists of tokens, normalising each entry and keeping first-seen order.
func UnionNormalized(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, v := range list {
			n := Normalize(v)
			if n == "" {
				continue
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}
