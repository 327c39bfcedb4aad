package parser

import (
	"regexp"
	"strings"

	"item-catalog/core/utils"
	"item-catalog/feature/items/models"
)

var (
	objectLine     = regexp.MustCompile(`Object '([^']+)', Item type: (.+)`)
	descriptorLine = regexp.MustCompile(`^\.\.(.+)$`)

	descriptorSuffix = regexp.MustCompile(`(\.\.[^.]+)+$`)
	trailingParen    = regexp.MustCompile(`^(.*?)\s*\(([^)]+)\)\s*$`)

	statValue  = regexp.MustCompile(`(?i)Type:\s+(.+?)\s+Value:\s+(-?\d+)`)
	spellName  = regexp.MustCompile(`(?i)Spell:\s+(\S+)`)
	spellLevel = regexp.MustCompile(`(?i)Level:\s+(\d+)`)
	quoted     = regexp.MustCompile(`'([^']+)'`)
	egoPhrase  = regexp.MustCompile(`(?i)This item's ego is of\s+(.+)`)
)

// nobits is the flag list the game prints for an item without flags.
const nobits = "NOBITS"

// lineRule recognises one kind of attribute line and applies it to the observation being built.
type lineRule struct {
	name   string
	match  *regexp.Regexp
	handle func(obs *models.Observation, line string)
}

// attributeRules are tried in order; the first match wins.
var attributeRules = []lineRule{
	{
		name:  "weight",
		match: regexp.MustCompile(`^Weight:`),
		handle: func(obs *models.Observation, line string) {
			n, _ := utils.ParseInt(strings.TrimPrefix(line, "Weight:"))
			obs.Stats.Weight = models.Int(n)
		},
	},
	{
		name:  "flags",
		match: regexp.MustCompile(`^Item is:`),
		handle: func(obs *models.Observation, line string) {
			flags := strings.TrimSpace(strings.TrimPrefix(line, "Item is:"))
			if flags == nobits {
				obs.Flags = []string{}
				return
			}
			obs.Flags = utils.SplitList(flags)
			if obs.Flags == nil {
				obs.Flags = []string{}
			}
		},
	},
	{
		name:  "damage",
		match: regexp.MustCompile(`^Damage Dice is`),
		handle: func(obs *models.Observation, line string) {
			if m := quoted.FindStringSubmatch(line); m != nil {
				obs.Stats.Damage = m[1]
			}
		},
	},
	{
		name:  "ac",
		match: regexp.MustCompile(`^AC-apply is`),
		handle: func(obs *models.Observation, line string) {
			if n, ok := utils.ParseInt(strings.TrimPrefix(line, "AC-apply is")); ok {
				obs.Stats.AC = models.Int(n)
				return
			}
			obs.Stats.AC = nil
		},
	},
	{
		name:  "spell",
		match: regexp.MustCompile(`^Type:.*Spell:`),
		handle: func(obs *models.Observation, line string) {
			var spell models.SpellAffect
			if m := spellName.FindStringSubmatch(line); m != nil {
				spell.Spell = m[1]
			}
			if m := spellLevel.FindStringSubmatch(line); m != nil {
				if n, ok := utils.ParseInt(m[1]); ok {
					spell.Level = models.Int(n)
				}
			}
			obs.Stats.Affects = append(obs.Stats.Affects, spell)
		},
	},
	{
		name:  "stat",
		match: regexp.MustCompile(`^Type:`),
		handle: func(obs *models.Observation, line string) {
			m := statValue.FindStringSubmatch(line)
			if m == nil {
				return
			}
			n, _ := utils.ParseInt(m[2])
			obs.Stats.Affects = append(obs.Stats.Affects, models.StatAffect{Stat: strings.TrimSpace(m[1]), Value: n})
		},
	},
	{
		name:  "ego",
		match: regexp.MustCompile(`This item's ego`),
		handle: func(obs *models.Observation, line string) {
			if m := egoPhrase.FindStringSubmatch(line); m != nil {
				obs.Ego = strings.TrimSpace(m[1])
			}
		},
	},
}

// matchRule returns the first rule recognising line, or nil.
func matchRule(line string) *lineRule {
	for i := range attributeRules {
		if attributeRules[i].match.MatchString(line) {
			return &attributeRules[i]
		}
	}
	return nil
}

// cleanName strips trailing "..<phrase>" descriptors and splits off a trailing
// "(condition)". Only the last parenthetical is treated as the condition.
func cleanName(raw string) (name, condition string) {
	cleaned := strings.TrimSpace(descriptorSuffix.ReplaceAllString(raw, ""))
	m := trailingParen.FindStringSubmatch(cleaned)
	if m == nil {
		return cleaned, ""
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}
