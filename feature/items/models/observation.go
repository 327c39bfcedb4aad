package models

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownName is the placeholder given to blocks that had no name line.
const UnknownName = "Unknown Item"

// ErrInvalidObservation is returned by Validate for observations that cannot be accepted.
var ErrInvalidObservation = errors.New("invalid observation")

// Observation is one item block as read from a dump, before it touches the catalog.
type Observation struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	NameMissing bool     `json:"nameMissing,omitempty"`
	Keywords    string   `json:"keywords"`
	Type        string   `json:"type"`
	Flags       []string `json:"flags"`
	Stats       Stats    `json:"stats"`
	Ego         string   `json:"ego,omitempty"`
	IsArtifact  bool     `json:"isArtifact"`
	Raw         []string `json:"raw,omitempty"`
	SubmittedBy string   `json:"submittedBy,omitempty"`
	DroppedBy   string   `json:"droppedBy,omitempty"`
	Worn        []string `json:"worn,omitempty"`
}

// Identity returns the observation's normalised identity key.
func (o Observation) Identity() IdentityKey {
	return NewIdentityKey(o.Name, o.Keywords, o.Type)
}

// Validate checks that the observation carries a usable identity and known worn slots.
func (o Observation) Validate() error {
	if o.NameMissing {
		return fmt.Errorf("%w: item name is missing, provide a name", ErrInvalidObservation)
	}
	if strings.TrimSpace(o.Name) == "" || strings.TrimSpace(o.Type) == "" {
		return fmt.Errorf("%w: name and type are required", ErrInvalidObservation)
	}
	for _, slot := range NormalizeSlots(o.Worn) {
		if !IsKnownSlot(slot) {
			return fmt.Errorf("%w: unknown worn slot %q", ErrInvalidObservation, slot)
		}
	}
	return nil
}

// RawText joins the raw lines back into dump text.
func (o Observation) RawText() string {
	return strings.Join(o.Raw, "\n")
}
