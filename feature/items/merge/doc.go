// Package merge folds a new observation of an item into its catalog record.
//
// The policy for each field is listed in Rules:
//
//	name, keywords, type, ego, flags,
//	condition, damage, raw, submittedBy, droppedBy  overwrite with the incoming value when present
//	weight, ac                                      range-widen
//	affects                                         range-widen per stat:<name> / spell:<name> key
//	isArtifact                                      boolean OR
//	worn                                            set union
//
// Numeric history is cumulative: merging never narrows a range, and merging the same
// observation twice gives the same record as merging it once.
package merge
