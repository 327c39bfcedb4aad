// Package reconcile folds new observations of an entity into its stored record
// through an explicit, ordered table of per-field merge policies.
//
// # Policies
//
//   - PolicyOverwrite: the incoming value replaces the stored one when present.
//   - PolicyRangeWiden: numeric readings keep the latest value plus the widest min/max seen.
//   - PolicyKeyedRangeWiden: range-widen applied per key of a collection; unmatched keys are kept.
//   - PolicySetUnion: sets only grow.
//   - PolicyBoolOr: once true, stays true.
//
// Each Rule binds one field to one Policy and reports a Change when the stored
// value moved, so a merge can be audited field by field.
//
// # Usage
//
//	rules := []reconcile.Rule[Record, Observation]{
//	    reconcile.Overwrite("name", incomingName, func(r *Record) *string { return &r.Name }),
//	    reconcile.Widen("weight", incomingWeight, weightSpan, setWeightSpan),
//	    reconcile.Or("is_artifact", incomingArtifact, func(r *Record) *bool { return &r.IsArtifact }),
//	}
//	changes := reconcile.Apply(&record, &obs, rules)
//
// Merging is monotonic for numeric fields: applying the same observation twice
// yields the same record as applying it once.
package reconcile
