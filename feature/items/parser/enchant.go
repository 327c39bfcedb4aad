package parser

import (
	"strings"

	"item-catalog/feature/items/models"
)

// isArmorEnchant matches an armor stat of +1..+3.
func isArmorEnchant(a models.Affect) bool {
	stat, ok := a.(models.StatAffect)
	return ok && strings.Contains(strings.ToLower(stat.Stat), "armor") && stat.Value >= 1 && stat.Value <= 3
}

// isSaveAllEnchant matches a save_all stat of -1..-3.
func isSaveAllEnchant(a models.Affect) bool {
	stat, ok := a.(models.StatAffect)
	return ok && strings.ToLower(stat.Stat) == "save_all" && stat.Value >= -3 && stat.Value <= -1
}

// FilterEnchanted strips temporary enchantment affects. When the list holds both
// an armor +1..+3 and a save_all -1..-3 stat, every affect matching either
// pattern is removed and stripped is true. Otherwise the list is returned as is.
func FilterEnchanted(affects models.Affects) (out models.Affects, stripped bool) {
	var armor, saveAll bool
	for _, a := range affects {
		armor = armor || isArmorEnchant(a)
		saveAll = saveAll || isSaveAllEnchant(a)
	}
	if !armor || !saveAll {
		return affects, false
	}

	out = make(models.Affects, 0, len(affects))
	for _, a := range affects {
		if isArmorEnchant(a) || isSaveAllEnchant(a) {
			continue
		}
		out = append(out, a)
	}
	return out, true
}
