package models

import (
	"encoding/json"
	"fmt"

	"item-catalog/core/reconcile"
	"item-catalog/core/utils"
)

// AffectKind tags the two cases of Affect.
type AffectKind string

const (
	// AffectStat is a named stat with a signed value ("Type: strength Value: 2").
	AffectStat AffectKind = "stat"
	// AffectSpell is a spell with an optional level ("Spell: sleep Level: 12").
	AffectSpell AffectKind = "spell"
)

// Affect is one entry of an item's affect list. It is either a StatAffect or a SpellAffect.
type Affect interface {
	// Kind returns the variant tag.
	Kind() AffectKind
	// Name returns the stat or spell name as observed.
	Name() string
	// Key identifies the affect for merging, e.g. "stat:strength".
	Key() string
	// Span returns the current reading with its observed range.
	Span() reconcile.Span
	// WithSpan returns a copy carrying span as its reading and range.
	WithSpan(span reconcile.Span) Affect

	isAffect()
}

// StatAffect modifies a named stat by Value.
type StatAffect struct {
	Stat  string
	Value int
	Min   *int
	Max   *int
}

// SpellAffect casts Spell at Level.
type SpellAffect struct {
	Spell string
	Level *int
	Min   *int
	Max   *int
}

func (StatAffect) isAffect()  {}
func (SpellAffect) isAffect() {}

func (a StatAffect) Kind() AffectKind  { return AffectStat }
func (a SpellAffect) Kind() AffectKind { return AffectSpell }

func (a StatAffect) Name() string  { return a.Stat }
func (a SpellAffect) Name() string { return a.Spell }

func (a StatAffect) Key() string  { return affectKey(AffectStat, a.Stat) }
func (a SpellAffect) Key() string { return affectKey(AffectSpell, a.Spell) }

func (a StatAffect) Span() reconcile.Span {
	v := a.Value
	return reconcile.Span{Value: &v, Min: a.Min, Max: a.Max}
}

func (a SpellAffect) Span() reconcile.Span {
	return reconcile.Span{Value: a.Level, Min: a.Min, Max: a.Max}
}

func (a StatAffect) WithSpan(span reconcile.Span) Affect {
	if span.Value != nil {
		a.Value = *span.Value
	}
	a.Min, a.Max = span.Min, span.Max
	return a
}

func (a SpellAffect) WithSpan(span reconcile.Span) Affect {
	a.Level, a.Min, a.Max = span.Value, span.Min, span.Max
	return a
}

func affectKey(kind AffectKind, name string) string {
	return string(kind) + ":" + utils.Normalize(name)
}

// Affects is an ordered affect list with a tagged JSON form.
type Affects []Affect

// Observed strips ranges so that only the current readings remain.
func (as Affects) Observed() Affects {
	if as == nil {
		return nil
	}
	out := make(Affects, len(as))
	for i, a := range as {
		s := a.Span()
		out[i] = a.WithSpan(reconcile.Span{Value: s.Value})
	}
	return out
}

// Latest collapses repeated keys into one entry in first-seen order, holding the
// last reading seen for the key. Ranges are dropped.
func (as Affects) Latest() Affects {
	if as == nil {
		return nil
	}
	out := make(Affects, 0, len(as))
	index := make(map[string]int, len(as))
	for _, a := range as {
		v := a.Span().Value
		if i, ok := index[a.Key()]; ok {
			if v == nil {
				v = out[i].Span().Value
			}
			out[i] = a.WithSpan(reconcile.Span{Value: v})
			continue
		}
		index[a.Key()] = len(out)
		out = append(out, a.WithSpan(reconcile.Span{Value: v}))
	}
	return out
}

// Primed seeds every affect's range from its current reading.
func (as Affects) Primed() Affects {
	if as == nil {
		return nil
	}
	out := make(Affects, len(as))
	for i, a := range as {
		out[i] = a.WithSpan(a.Span().Prime())
	}
	return out
}

// Equal compares two affect lists entry by entry, ranges included.
func (as Affects) Equal(other Affects) bool {
	if len(as) != len(other) {
		return false
	}
	for i := range as {
		if as[i].Key() != other[i].Key() || as[i].Name() != other[i].Name() {
			return false
		}
		if !as[i].Span().Equal(other[i].Span()) {
			return false
		}
	}
	return true
}

type affectWire struct {
	Type  AffectKind `json:"type"`
	Stat  string     `json:"stat,omitempty"`
	Value *int       `json:"value,omitempty"`
	Spell string     `json:"spell,omitempty"`
	Level *int       `json:"level,omitempty"`
	Min   *int       `json:"min,omitempty"`
	Max   *int       `json:"max,omitempty"`
}

func (as Affects) MarshalJSON() ([]byte, error) {
	wire := make([]affectWire, 0, len(as))
	for _, a := range as {
		switch v := a.(type) {
		case StatAffect:
			value := v.Value
			wire = append(wire, affectWire{Type: AffectStat, Stat: v.Stat, Value: &value, Min: v.Min, Max: v.Max})
		case SpellAffect:
			wire = append(wire, affectWire{Type: AffectSpell, Spell: v.Spell, Level: v.Level, Min: v.Min, Max: v.Max})
		default:
			return nil, fmt.Errorf("unknown affect %T", a)
		}
	}
	return json.Marshal(wire)
}

func (as *Affects) UnmarshalJSON(data []byte) error {
	var wire []affectWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire == nil {
		*as = nil
		return nil
	}

	out := make(Affects, 0, len(wire))
	for _, w := range wire {
		switch w.Type {
		case AffectSpell:
			out = append(out, SpellAffect{Spell: w.Spell, Level: w.Level, Min: w.Min, Max: w.Max})
		case AffectStat:
			a := StatAffect{Stat: w.Stat, Min: w.Min, Max: w.Max}
			if w.Value != nil {
				a.Value = *w.Value
			}
			out = append(out, a)
		default:
			return fmt.Errorf("unknown affect type %q", w.Type)
		}
	}
	*as = out
	return nil
}
