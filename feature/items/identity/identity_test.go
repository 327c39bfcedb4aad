package identity

import (
	"testing"

	"item-catalog/feature/items/models"

	"github.com/stretchr/testify/assert"
)

func dagger() models.Observation {
	return models.Observation{
		Name:     "a rusty dagger",
		Keywords: "dagger rusty",
		Type:     "weapon",
		Flags:    []string{"MAGIC"},
		Stats:    models.Stats{Weight: models.Int(3), Damage: "1D4"},
	}
}

func stored(obs models.Observation) models.Item {
	item := models.Item{
		ID:         "item-1",
		Name:       obs.Name,
		Keywords:   obs.Keywords,
		Type:       obs.Type,
		Flags:      obs.Flags,
		Stats:      obs.Stats.Primed(),
		Ego:        obs.Ego,
		IsArtifact: obs.IsArtifact,
		Revision:   1,
	}
	item.SyncKeys()
	return item
}

func TestResolve_New(t *testing.T) {
	res := Resolve(dagger(), nil)
	assert.Equal(t, OutcomeNew, res.Outcome)
	assert.Nil(t, res.Existing)
	assert.Equal(t, "a rusty dagger|dagger rusty|weapon", res.Key.String())
}

func TestResolve_Repeat(t *testing.T) {
	item := stored(dagger())

	obs := dagger()
	obs.Name = "  A Rusty Dagger "
	obs.Type = "WEAPON"

	res := Resolve(obs, &item)
	assert.Equal(t, OutcomeRepeat, res.Outcome)
	assert.Empty(t, res.DuplicateOf)
	assert.Same(t, &item, res.Existing)
}

func TestResolve_RepeatIgnoresRanges(t *testing.T) {
	item := stored(dagger())
	item.Stats.WeightMin = models.Int(1)
	item.Stats.WeightMax = models.Int(5)

	assert.Equal(t, OutcomeRepeat, Resolve(dagger(), &item).Outcome)
}

func TestResolve_RepeatWithRepeatedAffect(t *testing.T) {
	obs := dagger()
	obs.Stats.Affects = models.Affects{
		models.StatAffect{Stat: "hitroll", Value: 1},
		models.StatAffect{Stat: "hitroll", Value: 3},
	}

	// The record folds both lines into one affect holding the last reading.
	item := stored(dagger())
	item.Stats.Affects = models.Affects{
		models.StatAffect{Stat: "hitroll", Value: 3, Min: models.Int(1), Max: models.Int(3)},
	}

	assert.Equal(t, OutcomeRepeat, Resolve(obs, &item).Outcome)

	obs.Stats.Affects[1] = models.StatAffect{Stat: "hitroll", Value: 2}
	assert.Equal(t, OutcomeNeedsConfirmation, Resolve(obs, &item).Outcome)
}

func TestResolve_NeedsConfirmation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *models.Observation)
	}{
		{"flags differ", func(o *models.Observation) { o.Flags = []string{"MAGIC", "GLOW"} }},
		{"flag order differs", func(o *models.Observation) { o.Flags = []string{"GLOW", "MAGIC"} }},
		{"weight differs", func(o *models.Observation) { o.Stats.Weight = models.Int(5) }},
		{"damage differs", func(o *models.Observation) { o.Stats.Damage = "1D6" }},
		{"affect added", func(o *models.Observation) {
			o.Stats.Affects = models.Affects{models.StatAffect{Stat: "strength", Value: 1}}
		}},
		{"ego differs", func(o *models.Observation) { o.Ego = "a dark past" }},
		{"artifact differs", func(o *models.Observation) { o.IsArtifact = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := stored(dagger())
			obs := dagger()
			tt.mutate(&obs)

			res := Resolve(obs, &item)
			assert.Equal(t, OutcomeNeedsConfirmation, res.Outcome)
			assert.Equal(t, "item-1", res.DuplicateOf)
		})
	}
}

func TestResolve_EgoComparedNormalised(t *testing.T) {
	obs := dagger()
	obs.Ego = "A Dark Past"
	item := stored(obs)

	obs.Ego = " a dark past "
	assert.Equal(t, OutcomeRepeat, Resolve(obs, &item).Outcome)
}

func TestResolve_DifferentIdentityIsNew(t *testing.T) {
	item := stored(dagger())
	obs := dagger()
	obs.Keywords = "dagger"

	assert.Equal(t, OutcomeNew, Resolve(obs, &item).Outcome)
}

func TestResolveAgainst(t *testing.T) {
	other := dagger()
	other.Name = "a sharp dagger"
	catalog := []models.Item{stored(other), stored(dagger())}
	catalog[1].ID = "item-2"

	obs := dagger()
	obs.Flags = nil
	res := ResolveAgainst(obs, catalog)
	assert.Equal(t, OutcomeNeedsConfirmation, res.Outcome)
	assert.Equal(t, "item-2", res.DuplicateOf)

	obs.Type = "armor"
	assert.Equal(t, OutcomeNew, ResolveAgainst(obs, catalog).Outcome)
	assert.Equal(t, OutcomeNew, ResolveAgainst(obs, nil).Outcome)
}
