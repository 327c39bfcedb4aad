package reconcile

import "fmt"

// Span is a numeric reading together with the widest range observed for it.
// A nil Value means the reading has never been seen.
type Span struct {
	Value *int
	Min   *int
	Max   *int
}

// Widen folds reading n into the span. A nil n leaves the span untouched.
// With no prior range the span is seeded with min = max = value = n; otherwise
// the bounds only grow and Value becomes the latest reading.
func (s Span) Widen(n *int) Span {
	if n == nil {
		return s
	}
	v := *n

	if s.Min == nil || s.Max == nil {
		return Span{Value: intPtr(v), Min: intPtr(v), Max: intPtr(v)}
	}

	lo, hi := *s.Min, *s.Max
	if v < lo {
		lo = v
	}
	if v > hi {
		hi = v
	}
	return Span{Value: intPtr(v), Min: intPtr(lo), Max: intPtr(hi)}
}

// Prime fills missing bounds from Value so that Min <= Value <= Max holds.
func (s Span) Prime() Span {
	if s.Value == nil {
		return s
	}
	v := *s.Value
	lo, hi := v, v
	if s.Min != nil && *s.Min < lo {
		lo = *s.Min
	}
	if s.Max != nil && *s.Max > hi {
		hi = *s.Max
	}
	return Span{Value: intPtr(v), Min: intPtr(lo), Max: intPtr(hi)}
}

// Contains reports whether n lies within the span's bounds.
func (s Span) Contains(n int) bool {
	return s.Min != nil && s.Max != nil && *s.Min <= n && n <= *s.Max
}

// Equal compares two spans by value.
func (s Span) Equal(o Span) bool {
	return intEqual(s.Value, o.Value) && intEqual(s.Min, o.Min) && intEqual(s.Max, o.Max)
}

func (s Span) String() string {
	if s.Value == nil {
		return "-"
	}
	if s.Min == nil || s.Max == nil || *s.Min == *s.Max {
		return fmt.Sprintf("%d", *s.Value)
	}
	return fmt.Sprintf("%d [%d..%d]", *s.Value, *s.Min, *s.Max)
}

func intPtr(v int) *int { return &v }

func intEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
