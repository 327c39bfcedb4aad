package parser

import (
	"strings"

	"item-catalog/feature/items/models"

	"github.com/google/uuid"
)

// Parse reads an identify dump and returns one observation per "Object '...'" block,
// in the order the blocks appear. It never fails: unrecognised lines are kept as raw
// text and a block without a name line gets a placeholder name with NameMissing set.
func Parse(text string) []models.Observation {
	lines := splitLines(text)

	var out []models.Observation
	for i := 0; i < len(lines); i++ {
		m := objectLine.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}

		obs := newObservation(m[1], m[2])
		if i > 0 && isNameLine(lines[i-1]) {
			obs.Name, obs.Stats.Condition = cleanName(lines[i-1])
		} else {
			obs.Name, obs.NameMissing = models.UnknownName, true
		}

		j := i + 1
		for ; j < len(lines); j++ {
			line := lines[j]
			if objectLine.MatchString(line) {
				break
			}
			// The line right before the next block's Object line is that block's name.
			if j+1 < len(lines) && objectLine.MatchString(lines[j+1]) && isNameLine(line) {
				break
			}
			if rule := matchRule(line); rule != nil {
				rule.handle(&obs, line)
			}
			obs.Raw = append(obs.Raw, line)
		}
		i = j - 1

		obs.Stats.Affects, _ = FilterEnchanted(obs.Stats.Affects)
		out = append(out, obs)
	}

	return out
}

func newObservation(keywords, itemType string) models.Observation {
	return models.Observation{
		ID:       uuid.NewString(),
		Keywords: keywords,
		Type:     strings.ToLower(strings.TrimSpace(itemType)),
		Flags:    []string{},
		Stats: models.Stats{
			Weight:  models.Int(0),
			Affects: models.Affects{},
		},
		Raw: []string{},
	}
}

// isNameLine reports whether line can be an item name: anything that is neither
// an Object line nor a recognised attribute line.
func isNameLine(line string) bool {
	return !objectLine.MatchString(line) && matchRule(line) == nil
}

// splitLines trims every line and drops blank and "..descriptor" lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || descriptorLine.MatchString(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
