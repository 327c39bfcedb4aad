package items

import (
	"encoding/json"
	"strconv"
	"strings"

	"item-catalog/core/utils"
	"item-catalog/feature/items/ledger"
	"item-catalog/feature/items/models"

	"github.com/google/uuid"
)

// StringList accepts either a JSON list of strings or a comma separated string.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, v := range list {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		*l = out
		return nil
	}

	var csv *string
	if err := json.Unmarshal(data, &csv); err != nil {
		return err
	}
	if csv == nil {
		*l = nil
		return nil
	}
	*l = utils.SplitList(*csv)
	return nil
}

// ItemInput is one pre-parsed observation as sent by a client, typically the
// parser preview after a human reviewed it.
type ItemInput struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	NameMissing bool         `json:"nameMissing"`
	Keywords    string       `json:"keywords"`
	Type        string       `json:"type"`
	Flags       StringList   `json:"flags"`
	Stats       models.Stats `json:"stats"`
	Ego         string       `json:"ego"`
	IsArtifact  bool         `json:"isArtifact"`
	Raw         []string     `json:"raw"`
	SubmittedBy string       `json:"submittedBy"`
	// Owner is the legacy name of SubmittedBy.
	Owner     string     `json:"owner"`
	DroppedBy string     `json:"droppedBy"`
	Worn      StringList `json:"worn"`
}

// Observation normalises the input. Validation happens later, after overrides.
func (in ItemInput) Observation() models.Observation {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}

	// Ranges are derived by the catalog; a submission only contributes readings.
	stats := in.Stats.Observed()
	if stats.Weight == nil {
		stats.Weight = models.Int(0)
	}
	if stats.Affects == nil {
		stats.Affects = models.Affects{}
	}

	submittedBy := strings.TrimSpace(in.SubmittedBy)
	if submittedBy == "" {
		submittedBy = strings.TrimSpace(in.Owner)
	}

	flags := []string(in.Flags)
	if flags == nil {
		flags = []string{}
	}

	return models.Observation{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		NameMissing: in.NameMissing,
		Keywords:    strings.TrimSpace(in.Keywords),
		Type:        strings.TrimSpace(in.Type),
		Flags:       flags,
		Stats:       stats,
		Ego:         strings.TrimSpace(in.Ego),
		IsArtifact:  in.IsArtifact,
		Raw:         in.Raw,
		SubmittedBy: submittedBy,
		DroppedBy:   strings.TrimSpace(in.DroppedBy),
		Worn:        models.NormalizeSlots(in.Worn),
	}
}

// Override is a per-observation correction supplied with an ingest request.
type Override struct {
	Name      string     `json:"name,omitempty"`
	DroppedBy string     `json:"droppedBy,omitempty"`
	Worn      StringList `json:"worn,omitempty"`
}

// applyOverrides returns a copy of observations with overrides and the submitter
// applied. Overrides are keyed by observation id or by zero-based position.
func applyOverrides(observations []models.Observation, overrides map[string]Override, who ledger.Submitter) []models.Observation {
	out := make([]models.Observation, len(observations))
	for i, obs := range observations {
		ov, ok := overrides[obs.ID]
		if !ok {
			ov, ok = overrides[strconv.Itoa(i)]
		}
		if ok {
			if name := strings.TrimSpace(ov.Name); name != "" {
				obs.Name, obs.NameMissing = name, false
			}
			if dropped := strings.TrimSpace(ov.DroppedBy); dropped != "" {
				obs.DroppedBy = dropped
			}
			obs.Worn = models.NormalizeSlots(obs.Worn, ov.Worn)
		} else {
			obs.Worn = models.NormalizeSlots(obs.Worn)
		}

		if name := strings.TrimSpace(who.Name); name != "" {
			obs.SubmittedBy = name
		}
		out[i] = obs
	}
	return out
}
