package merge

import (
	"errors"
	"fmt"

	"item-catalog/core/reconcile"
	"item-catalog/feature/items/models"

	"github.com/google/uuid"
)

// ErrIdentityMismatch is returned when asked to merge an observation into a record of another item.
var ErrIdentityMismatch = errors.New("identity mismatch")

// NewRecord builds the catalog record for the first accepted observation of an item.
// Every numeric field is primed from the observation's readings so the record has
// the same shape as a merged one. Ranges carried by the observation are ignored.
func NewRecord(obs models.Observation) models.Item {
	stats := obs.Stats.Observed()
	stats.Affects = foldAffects(nil, stats.Affects)
	if stats.Affects == nil {
		stats.Affects = models.Affects{}
	}

	item := models.Item{
		ID:          uuid.NewString(),
		Name:        obs.Name,
		Keywords:    obs.Keywords,
		Type:        obs.Type,
		Flags:       append([]string{}, obs.Flags...),
		SubmittedBy: obs.SubmittedBy,
		DroppedBy:   obs.DroppedBy,
		Worn:        models.NormalizeSlots(obs.Worn),
		Stats:       stats.Primed(),
		Ego:         obs.Ego,
		IsArtifact:  obs.IsArtifact,
		Raw:         append([]string{}, obs.Raw...),
	}
	if item.Worn == nil {
		item.Worn = []string{}
	}
	item.SyncKeys()
	return item
}

// Merge folds obs into existing through Rules and returns the updated record
// together with the fields that changed. existing is not modified.
func Merge(existing models.Item, obs models.Observation) (models.Item, []reconcile.Change, error) {
	if existing.Identity() != obs.Identity() {
		return existing, nil, fmt.Errorf("%w: record %q, observation %q", ErrIdentityMismatch, existing.Identity(), obs.Identity())
	}

	next := existing
	next.Stats = existing.Stats.Clone()
	obs.Stats = obs.Stats.Observed()

	changes := reconcile.Apply(&next, &obs, Rules)
	next.SyncKeys()
	return next, changes, nil
}
