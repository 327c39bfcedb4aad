package reconcile

import (
	"fmt"
	"slices"
	"strings"
)

// Policy names how a field of an incoming observation is folded into a stored record.
type Policy string

const (
	// PolicyOverwrite replaces the stored value with the incoming one when the incoming value is present.
	PolicyOverwrite Policy = "overwrite"
	// PolicyRangeWiden keeps the latest reading and widens the observed min/max.
	PolicyRangeWiden Policy = "range_widen"
	// PolicyKeyedRangeWiden range-widens each entry of a keyed collection and keeps unmatched entries.
	PolicyKeyedRangeWiden Policy = "keyed_range_widen"
	// PolicySetUnion unions the stored and incoming sets.
	PolicySetUnion Policy = "set_union"
	// PolicyBoolOr keeps a flag set once either side has it.
	PolicyBoolOr Policy = "bool_or"
)

// Change describes one field that moved during a merge, e.g. "weight: 3 -> 5".
type Change struct {
	Field  string `json:"field"`
	Policy Policy `json:"policy"`
	From   string `json:"from"`
	To     string `json:"to"`
}

func (c Change) String() string {
	return fmt.Sprintf("%s: %s -> %s", c.Field, c.From, c.To)
}

// Rule binds one field to its merge policy. Merge mutates rec from obs and
// reports the resulting change, if any.
type Rule[R any, O any] struct {
	Field  string
	Policy Policy
	Merge  func(rec *R, obs *O) (Change, bool)
}

// Apply runs rules in order against rec and returns the changes they made.
func Apply[R any, O any](rec *R, obs *O, rules []Rule[R, O]) []Change {
	var changes []Change
	for _, rule := range rules {
		change, changed := rule.Merge(rec, obs)
		if !changed {
			continue
		}
		change.Field = rule.Field
		change.Policy = rule.Policy
		changes = append(changes, change)
	}
	return changes
}

// Overwrite builds a PolicyOverwrite rule for a comparable field.
// incoming reports the observed value and whether it is present.
func Overwrite[R any, O any, T comparable](field string, incoming func(*O) (T, bool), target func(*R) *T) Rule[R, O] {
	return OverwriteFunc(field, incoming, target, func(a, b T) bool { return a == b })
}

// OverwriteFunc is Overwrite with a caller supplied equality.
func OverwriteFunc[R any, O any, T any](field string, incoming func(*O) (T, bool), target func(*R) *T, equal func(a, b T) bool) Rule[R, O] {
	return Rule[R, O]{
		Field:  field,
		Policy: PolicyOverwrite,
		Merge: func(rec *R, obs *O) (Change, bool) {
			next, ok := incoming(obs)
			if !ok {
				return Change{}, false
			}
			cur := target(rec)
			if equal(*cur, next) {
				return Change{}, false
			}
			change := Change{From: Format(*cur), To: Format(next)}
			*cur = next
			return change, true
		},
	}
}

// Widen builds a PolicyRangeWiden rule over a Span exposed through get/set.
func Widen[R any, O any](field string, incoming func(*O) *int, get func(*R) Span, set func(*R, Span)) Rule[R, O] {
	return Rule[R, O]{
		Field:  field,
		Policy: PolicyRangeWiden,
		Merge: func(rec *R, obs *O) (Change, bool) {
			cur := get(rec)
			next := cur.Widen(incoming(obs))
			if cur.Equal(next) {
				return Change{}, false
			}
			set(rec, next)
			return Change{From: cur.String(), To: next.String()}, true
		},
	}
}

// Union builds a PolicySetUnion rule. normalize is applied to every element;
// empty results are dropped and the stored order is preserved.
func Union[R any, O any](field string, incoming func(*O) []string, target func(*R) *[]string, normalize func(string) string) Rule[R, O] {
	return Rule[R, O]{
		Field:  field,
		Policy: PolicySetUnion,
		Merge: func(rec *R, obs *O) (Change, bool) {
			cur := target(rec)
			next := UnionStrings(*cur, incoming(obs), normalize)
			if slices.Equal(*cur, next) {
				return Change{}, false
			}
			change := Change{From: Format(*cur), To: Format(next)}
			*cur = next
			return change, true
		},
	}
}

// Or builds a PolicyBoolOr rule.
func Or[R any, O any](field string, incoming func(*O) bool, target func(*R) *bool) Rule[R, O] {
	return Rule[R, O]{
		Field:  field,
		Policy: PolicyBoolOr,
		Merge: func(rec *R, obs *O) (Change, bool) {
			cur := target(rec)
			if *cur || !incoming(obs) {
				return Change{}, false
			}
			*cur = true
			return Change{From: "false", To: "true"}, true
		},
	}
}

// UnionStrings returns the normalised union of a and b, a's order first.
func UnionStrings(a, b []string, normalize func(string) string) []string {
	if normalize == nil {
		normalize = func(s string) string { return s }
	}
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			v = normalize(v)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// Format renders a field value for a Change.
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case *int:
		if t == nil {
			return "-"
		}
		return fmt.Sprintf("%d", *t)
	case string:
		if t == "" {
			return `""`
		}
		return t
	case []string:
		return "[" + strings.Join(t, ",") + "]"
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}
