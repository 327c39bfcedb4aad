package parser

import (
	"testing"

	"item-catalog/feature/items/models"

	"github.com/stretchr/testify/assert"
)

func TestFilterEnchanted(t *testing.T) {
	tests := []struct {
		name     string
		in       models.Affects
		expected models.Affects
		stripped bool
	}{
		{
			name:     "armor and save_all pair is stripped",
			in:       models.Affects{models.StatAffect{Stat: "armor", Value: 2}, models.StatAffect{Stat: "save_all", Value: -2}},
			expected: models.Affects{},
			stripped: true,
		},
		{
			name:     "armor alone is kept",
			in:       models.Affects{models.StatAffect{Stat: "armor", Value: 2}},
			expected: models.Affects{models.StatAffect{Stat: "armor", Value: 2}},
		},
		{
			name:     "save_all alone is kept",
			in:       models.Affects{models.StatAffect{Stat: "save_all", Value: -1}},
			expected: models.Affects{models.StatAffect{Stat: "save_all", Value: -1}},
		},
		{
			name: "other affects survive",
			in: models.Affects{
				models.StatAffect{Stat: "Armor", Value: 3},
				models.StatAffect{Stat: "strength", Value: 1},
				models.StatAffect{Stat: "SAVE_ALL", Value: -3},
				models.SpellAffect{Spell: "armor", Level: models.Int(2)},
			},
			expected: models.Affects{
				models.StatAffect{Stat: "strength", Value: 1},
				models.SpellAffect{Spell: "armor", Level: models.Int(2)},
			},
			stripped: true,
		},
		{
			name:     "out of range armor does not trigger",
			in:       models.Affects{models.StatAffect{Stat: "armor", Value: 4}, models.StatAffect{Stat: "save_all", Value: -2}},
			expected: models.Affects{models.StatAffect{Stat: "armor", Value: 4}, models.StatAffect{Stat: "save_all", Value: -2}},
		},
		{
			name:     "out of range save_all does not trigger",
			in:       models.Affects{models.StatAffect{Stat: "armor", Value: 1}, models.StatAffect{Stat: "save_all", Value: -4}},
			expected: models.Affects{models.StatAffect{Stat: "armor", Value: 1}, models.StatAffect{Stat: "save_all", Value: -4}},
		},
		{
			name: "all matching entries go, out of range ones stay",
			in: models.Affects{
				models.StatAffect{Stat: "armor", Value: 1},
				models.StatAffect{Stat: "armor", Value: 3},
				models.StatAffect{Stat: "armor", Value: 5},
				models.StatAffect{Stat: "save_all", Value: -1},
			},
			expected: models.Affects{models.StatAffect{Stat: "armor", Value: 5}},
			stripped: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, stripped := FilterEnchanted(tt.in)
			assert.Equal(t, tt.stripped, stripped)
			assert.Equal(t, tt.expected, got)
		})
	}
}
