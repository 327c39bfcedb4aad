package identity

import (
	"item-catalog/core/utils"
	"item-catalog/feature/items/models"
)

// Outcome classifies an observation against the catalog.
type Outcome string

const (
	// OutcomeNew means no record shares the observation's identity.
	OutcomeNew Outcome = "new"
	// OutcomeRepeat means a record shares the identity and its current content is identical.
	OutcomeRepeat Outcome = "repeat"
	// OutcomeNeedsConfirmation means a record shares the identity but the content differs.
	OutcomeNeedsConfirmation Outcome = "needs_confirmation"
)

// Resolution is the classification of one observation.
type Resolution struct {
	Outcome Outcome            `json:"outcome"`
	Key     models.IdentityKey `json:"-"`
	// DuplicateOf is the id of the matching record for OutcomeNeedsConfirmation.
	DuplicateOf string `json:"duplicateOf,omitempty"`
	// Existing is the matching record, if any.
	Existing *models.Item `json:"-"`
}

// Resolve classifies obs against the record stored under the same identity.
// existing may be nil when no such record exists. A record with a different
// identity is treated as absent.
func Resolve(obs models.Observation, existing *models.Item) Resolution {
	key := obs.Identity()
	if existing == nil || existing.Identity() != key {
		return Resolution{Outcome: OutcomeNew, Key: key}
	}

	if Identical(*existing, obs) {
		return Resolution{Outcome: OutcomeRepeat, Key: key, Existing: existing}
	}
	return Resolution{Outcome: OutcomeNeedsConfirmation, Key: key, Existing: existing, DuplicateOf: existing.ID}
}

// ResolveAgainst classifies obs against a slice of the catalog.
func ResolveAgainst(obs models.Observation, catalog []models.Item) Resolution {
	key := obs.Identity()
	for i := range catalog {
		if catalog[i].Identity() == key {
			return Resolve(obs, &catalog[i])
		}
	}
	return Resolution{Outcome: OutcomeNew, Key: key}
}

// Identical reports whether obs carries the same content as the record's latest reading:
// flags in order, the folded stat block with ranges ignored, ego and the artifact flag.
func Identical(item models.Item, obs models.Observation) bool {
	return sameFlags(item.Flags, obs.Flags) &&
		item.Stats.Reading().Equal(obs.Stats.Reading()) &&
		item.NormalizedEgo() == utils.Normalize(obs.Ego) &&
		item.IsArtifact == obs.IsArtifact
}

func sameFlags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
