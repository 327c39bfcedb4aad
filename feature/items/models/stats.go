package models

import "item-catalog/core/reconcile"

// Stats is an item's stat block. On catalog records the numeric fields also
// carry the observed min/max across every accepted submission.
type Stats struct {
	Weight    *int    `json:"weight,omitempty"`
	WeightMin *int    `json:"weightMin,omitempty"`
	WeightMax *int    `json:"weightMax,omitempty"`
	Damage    string  `json:"damage,omitempty"`
	AC        *int    `json:"ac,omitempty"`
	ACMin     *int    `json:"acMin,omitempty"`
	ACMax     *int    `json:"acMax,omitempty"`
	Condition string  `json:"condition,omitempty"`
	Affects   Affects `json:"affects"`
}

func (s Stats) WeightSpan() reconcile.Span {
	return reconcile.Span{Value: s.Weight, Min: s.WeightMin, Max: s.WeightMax}
}

func (s *Stats) SetWeightSpan(span reconcile.Span) {
	s.Weight, s.WeightMin, s.WeightMax = span.Value, span.Min, span.Max
}

func (s Stats) ACSpan() reconcile.Span {
	return reconcile.Span{Value: s.AC, Min: s.ACMin, Max: s.ACMax}
}

func (s *Stats) SetACSpan(span reconcile.Span) {
	s.AC, s.ACMin, s.ACMax = span.Value, span.Min, span.Max
}

// Primed returns a copy whose every numeric field has min/max seeded from its value.
func (s Stats) Primed() Stats {
	out := s.Clone()
	out.SetWeightSpan(s.WeightSpan().Prime())
	out.SetACSpan(s.ACSpan().Prime())
	out.Affects = s.Affects.Primed()
	return out
}

// Observed returns the current readings only, with every range stripped.
// Two stat blocks describing the same roll compare equal through it regardless
// of how much history either has accumulated.
func (s Stats) Observed() Stats {
	out := s.Clone()
	out.WeightMin, out.WeightMax = nil, nil
	out.ACMin, out.ACMax = nil, nil
	out.Affects = s.Affects.Observed()
	return out
}

// Reading is Observed with repeated affect keys folded the way a catalog record
// stores them, so a raw paste compares equal to the record it produced.
func (s Stats) Reading() Stats {
	out := s.Observed()
	out.Affects = s.Affects.Latest()
	return out
}

// Equal compares two stat blocks field by field.
func (s Stats) Equal(o Stats) bool {
	return s.WeightSpan().Equal(o.WeightSpan()) &&
		s.ACSpan().Equal(o.ACSpan()) &&
		s.Damage == o.Damage &&
		s.Condition == o.Condition &&
		s.Affects.Equal(o.Affects)
}

// Clone deep-copies the stat block.
func (s Stats) Clone() Stats {
	out := s
	out.Weight, out.WeightMin, out.WeightMax = cloneInt(s.Weight), cloneInt(s.WeightMin), cloneInt(s.WeightMax)
	out.AC, out.ACMin, out.ACMax = cloneInt(s.AC), cloneInt(s.ACMin), cloneInt(s.ACMax)
	if s.Affects != nil {
		out.Affects = append(Affects(nil), s.Affects...)
	}
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }
