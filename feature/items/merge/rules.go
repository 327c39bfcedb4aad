package merge

import (
	"slices"
	"strings"

	"item-catalog/core/reconcile"
	"item-catalog/core/utils"
	"item-catalog/feature/items/models"
)

type rule = reconcile.Rule[models.Item, models.Observation]

// Rules is the field policy table applied by Merge, in order.
var Rules = []rule{
	reconcile.Overwrite("name",
		func(o *models.Observation) (string, bool) { return o.Name, present(o.Name) && !o.NameMissing },
		func(r *models.Item) *string { return &r.Name }),
	reconcile.Overwrite("keywords",
		func(o *models.Observation) (string, bool) { return o.Keywords, present(o.Keywords) },
		func(r *models.Item) *string { return &r.Keywords }),
	reconcile.Overwrite("type",
		func(o *models.Observation) (string, bool) { return o.Type, present(o.Type) },
		func(r *models.Item) *string { return &r.Type }),
	reconcile.Overwrite("ego",
		func(o *models.Observation) (string, bool) { return o.Ego, present(o.Ego) },
		func(r *models.Item) *string { return &r.Ego }),
	reconcile.OverwriteFunc("flags",
		func(o *models.Observation) ([]string, bool) { return o.Flags, o.Flags != nil },
		func(r *models.Item) *[]string { return &r.Flags },
		slices.Equal[[]string]),
	reconcile.Overwrite("condition",
		func(o *models.Observation) (string, bool) { return o.Stats.Condition, present(o.Stats.Condition) },
		func(r *models.Item) *string { return &r.Stats.Condition }),
	reconcile.Overwrite("damage",
		func(o *models.Observation) (string, bool) { return o.Stats.Damage, present(o.Stats.Damage) },
		func(r *models.Item) *string { return &r.Stats.Damage }),
	reconcile.OverwriteFunc("raw",
		func(o *models.Observation) ([]string, bool) { return o.Raw, len(o.Raw) > 0 },
		func(r *models.Item) *[]string { return &r.Raw },
		slices.Equal[[]string]),
	reconcile.Widen("weight",
		func(o *models.Observation) *int { return o.Stats.Weight },
		func(r *models.Item) reconcile.Span { return r.Stats.WeightSpan() },
		func(r *models.Item, s reconcile.Span) { r.Stats.SetWeightSpan(s) }),
	reconcile.Widen("ac",
		func(o *models.Observation) *int { return o.Stats.AC },
		func(r *models.Item) reconcile.Span { return r.Stats.ACSpan() },
		func(r *models.Item, s reconcile.Span) { r.Stats.SetACSpan(s) }),
	{
		Field:  "affects",
		Policy: reconcile.PolicyKeyedRangeWiden,
		Merge:  mergeAffects,
	},
	reconcile.Or("isArtifact",
		func(o *models.Observation) bool { return o.IsArtifact },
		func(r *models.Item) *bool { return &r.IsArtifact }),
	reconcile.Overwrite("submittedBy",
		func(o *models.Observation) (string, bool) { return o.SubmittedBy, present(o.SubmittedBy) },
		func(r *models.Item) *string { return &r.SubmittedBy }),
	reconcile.Overwrite("droppedBy",
		func(o *models.Observation) (string, bool) { return o.DroppedBy, present(o.DroppedBy) },
		func(r *models.Item) *string { return &r.DroppedBy }),
	reconcile.Union("worn",
		func(o *models.Observation) []string { return o.Worn },
		func(r *models.Item) *[]string { return &r.Worn },
		utils.Normalize),
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// mergeAffects widens affects keyed by kind and name. Keys only in the record are
// kept, keys only in the observation are added primed.
func mergeAffects(rec *models.Item, obs *models.Observation) (reconcile.Change, bool) {
	if len(obs.Stats.Affects) == 0 {
		return reconcile.Change{}, false
	}

	cur := rec.Stats.Affects
	next := foldAffects(cur, obs.Stats.Affects)
	if next.Equal(cur) {
		return reconcile.Change{}, false
	}

	rec.Stats.Affects = next
	return reconcile.Change{From: describeAffects(cur), To: describeAffects(next)}, true
}

func foldAffects(cur, incoming models.Affects) models.Affects {
	out := make(models.Affects, 0, len(cur)+len(incoming))
	index := make(map[string]int, len(cur)+len(incoming))

	for _, a := range cur {
		if i, ok := index[a.Key()]; ok {
			out[i] = a.WithSpan(out[i].Span().Widen(a.Span().Value))
			continue
		}
		index[a.Key()] = len(out)
		out = append(out, a)
	}

	for _, a := range incoming {
		if i, ok := index[a.Key()]; ok {
			out[i] = a.WithSpan(out[i].Span().Widen(a.Span().Value))
			continue
		}
		index[a.Key()] = len(out)
		out = append(out, a.WithSpan(a.Span().Prime()))
	}

	return out
}

func describeAffects(as models.Affects) string {
	parts := make([]string, 0, len(as))
	for _, a := range as {
		parts = append(parts, a.Key()+"="+a.Span().String())
	}
	return "[" + strings.Join(parts, ",") + "]"
}
