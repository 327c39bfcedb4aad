package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ip(v int) *int { return &v }

func TestSpan_Widen(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		in       *int
		expected Span
	}{
		{"nil reading leaves span", Span{Value: ip(3), Min: ip(3), Max: ip(3)}, nil, Span{Value: ip(3), Min: ip(3), Max: ip(3)}},
		{"empty span seeds", Span{}, ip(4), Span{Value: ip(4), Min: ip(4), Max: ip(4)}},
		{"value without range seeds from reading", Span{Value: ip(9)}, ip(4), Span{Value: ip(4), Min: ip(4), Max: ip(4)}},
		{"higher reading widens max", Span{Value: ip(3), Min: ip(3), Max: ip(3)}, ip(5), Span{Value: ip(5), Min: ip(3), Max: ip(5)}},
		{"lower reading widens min", Span{Value: ip(5), Min: ip(3), Max: ip(5)}, ip(1), Span{Value: ip(1), Min: ip(1), Max: ip(5)}},
		{"inner reading keeps bounds", Span{Value: ip(1), Min: ip(1), Max: ip(5)}, ip(2), Span{Value: ip(2), Min: ip(1), Max: ip(5)}},
		{"negative readings", Span{Value: ip(-1), Min: ip(-1), Max: ip(-1)}, ip(-3), Span{Value: ip(-3), Min: ip(-3), Max: ip(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.span.Widen(tt.in)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestSpan_WidenOrderIndependent(t *testing.T) {
	orders := [][]int{
		{3, 5, 1, 4},
		{1, 3, 4, 5},
		{5, 4, 3, 1},
		{4, 1, 5, 3},
	}

	for _, readings := range orders {
		var s Span
		for _, n := range readings {
			n := n
			s = s.Widen(&n)
		}
		assert.Equal(t, 1, *s.Min)
		assert.Equal(t, 5, *s.Max)
		assert.Equal(t, readings[len(readings)-1], *s.Value)
	}
}

func TestSpan_WidenIdempotent(t *testing.T) {
	s := Span{}.Widen(ip(3))
	again := s.Widen(ip(3))
	assert.True(t, s.Equal(again))
}

func TestSpan_Prime(t *testing.T) {
	assert.True(t, Span{}.Prime().Equal(Span{}))
	assert.True(t, Span{Value: ip(2)}.Prime().Equal(Span{Value: ip(2), Min: ip(2), Max: ip(2)}))
	assert.True(t, Span{Value: ip(2), Min: ip(1)}.Prime().Equal(Span{Value: ip(2), Min: ip(1), Max: ip(2)}))
}

func TestSpan_String(t *testing.T) {
	assert.Equal(t, "-", Span{}.String())
	assert.Equal(t, "3", Span{Value: ip(3), Min: ip(3), Max: ip(3)}.String())
	assert.Equal(t, "5 [3..5]", Span{Value: ip(5), Min: ip(3), Max: ip(5)}.String())
	assert.True(t, Span{Value: ip(5), Min: ip(3), Max: ip(5)}.Contains(4))
	assert.False(t, Span{Value: ip(5), Min: ip(3), Max: ip(5)}.Contains(6))
}
