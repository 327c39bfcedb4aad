package models

import (
	"strings"

	"item-catalog/core/utils"
)

// Worn slots an item can be observed in.
const (
	SlotHead      = "head"
	SlotNeck1     = "neck1"
	SlotNeck2     = "neck2"
	SlotBody      = "body"
	SlotAboutLegs = "about-legs"
	SlotLegs      = "legs"
	SlotFeet      = "feet"
	SlotHands     = "hands"
	SlotWaist     = "waist"
	SlotFinger1   = "finger1"
	SlotFinger2   = "finger2"
	SlotWield     = "wield"
	SlotOffhand   = "offhand"
	SlotHeld      = "held"
	SlotTwoHanded = "two-handed"
	SlotBack      = "back"
	SlotLight     = "light"
)

// KnownSlots lists every slot in equipment order.
var KnownSlots = []string{
	SlotHead, SlotNeck1, SlotNeck2, SlotBody, SlotAboutLegs, SlotLegs, SlotFeet, SlotHands,
	SlotWaist, SlotFinger1, SlotFinger2, SlotWield, SlotOffhand, SlotHeld, SlotTwoHanded,
	SlotBack, SlotLight,
}

var knownSlots = func() map[string]struct{} {
	m := make(map[string]struct{}, len(KnownSlots))
	for _, s := range KnownSlots {
		m[s] = struct{}{}
	}
	return m
}()

// IsKnownSlot reports whether slot (already normalised) is a worn slot.
func IsKnownSlot(slot string) bool {
	_, ok := knownSlots[slot]
	return ok
}

// NormalizeSlots lowercases, trims and dedupes a slot list.
func NormalizeSlots(slots ...[]string) []string {
	return utils.UnionNormalized(slots...)
}

// slotHints maps a slot to the name fragments that suggest it. Checked in order.
var slotHints = []struct {
	slot  string
	words []string
}{
	{SlotHead, []string{"helm", "hood", "cap", "hat", "crown"}},
	{SlotNeck1, []string{"amulet", "torc", "necklace", "pendant", "gorget"}},
	{SlotBody, []string{"robe", "breastplate", "chest", "armor"}},
	{SlotAboutLegs, []string{"kilt", "skirt"}},
	{SlotLegs, []string{"greaves", "leggings", "pants"}},
	{SlotFeet, []string{"boots", "shoes", "slippers", "sabatons"}},
	{SlotHands, []string{"glove", "gauntlet", "mitt"}},
	{SlotWaist, []string{"belt", "sash", "cord"}},
	{SlotFinger1, []string{"ring", "band"}},
	{SlotWield, []string{"sword", "axe", "mace", "flail", "staff", "club", "dagger"}},
	{SlotOffhand, []string{"shield", "buckler"}},
	{SlotHeld, []string{"book", "tome", "orb"}},
	{SlotTwoHanded, []string{"greatsword", "polearm", "halberd", "maul"}},
	{SlotBack, []string{"quiver", "cloak", "cape"}},
	{SlotLight, []string{"light", "lantern"}},
}

// GuessSlot suggests where an item is worn. The first known slot in worn wins;
// otherwise name and keywords are matched against common equipment words.
func GuessSlot(name, keywords string, worn []string) (string, bool) {
	for _, w := range NormalizeSlots(worn) {
		if IsKnownSlot(w) {
			return w, true
		}
	}

	hay := strings.ToLower(name + " " + keywords)
	for _, h := range slotHints {
		for _, w := range h.words {
			if strings.Contains(hay, w) {
				return h.slot, true
			}
		}
	}
	return "", false
}
