package items

import (
	"item-catalog/core/reconcile"
	"item-catalog/feature/items/ledger"
	"item-catalog/feature/items/models"
)

// Outcome is what ingestion did with one observation.
type Outcome string

const (
	// OutcomeNew means the observation created a catalog record.
	OutcomeNew Outcome = "new"
	// OutcomeMerged means the observation was folded into an existing record.
	OutcomeMerged Outcome = "merged"
	// OutcomeRepeat means the observation matched a record's current content.
	OutcomeRepeat Outcome = "repeat"
	// OutcomeNeedsConfirmation means the observation differs from a record with
	// the same identity and the batch waits for an operator decision.
	OutcomeNeedsConfirmation Outcome = "needs_confirmation"
	// OutcomeRejected means the observation failed validation.
	OutcomeRejected Outcome = "rejected"
	// OutcomeCancelled means the observation was not written because the operator
	// cancelled or the request was aborted.
	OutcomeCancelled Outcome = "cancelled"
)

// Decision is an operator's answer to a held batch.
type Decision string

const (
	DecisionProceed Decision = "proceed"
	DecisionCancel  Decision = "cancel"
)

// IngestRequest is one ingestion call: either raw dump text or pre-parsed observations.
type IngestRequest struct {
	// Raw is dump text. It is parsed when Observations is empty, and archived.
	Raw string
	// Observations are pre-parsed observations, typically a reviewed preview.
	Observations []models.Observation
	// Overrides are keyed by observation id or zero-based position.
	Overrides map[string]Override
	Submitter ledger.Submitter
	// Confirmed lets observations that need confirmation be merged.
	Confirmed bool
	// DryRun classifies without writing.
	DryRun bool
}

// ConfirmRequest resolves a held batch.
type ConfirmRequest struct {
	IngestRequest
	Decision Decision
}

// Result is the outcome of one observation.
type Result struct {
	Index       int                `json:"index"`
	Outcome     Outcome            `json:"outcome"`
	Identity    string             `json:"identity"`
	ItemID      string             `json:"itemId,omitempty"`
	DuplicateOf string             `json:"duplicateOf,omitempty"`
	Reason      string             `json:"reason,omitempty"`
	Changes     []reconcile.Change `json:"changes,omitempty"`
	Observation models.Observation `json:"observation"`
	Item        *models.Item       `json:"item,omitempty"`
}

// Summary counts results per outcome.
type Summary struct {
	Total             int `json:"total"`
	New               int `json:"new"`
	Merged            int `json:"merged"`
	Repeat            int `json:"repeat"`
	NeedsConfirmation int `json:"needs_confirmation"`
	Rejected          int `json:"rejected"`
	Cancelled         int `json:"cancelled"`
}

// Report is the response to an ingestion call.
type Report struct {
	Results []Result `json:"results"`
	Summary Summary  `json:"summary"`
	// Held is set when nothing was written because the batch needs confirmation.
	Held   bool `json:"held"`
	DryRun bool `json:"dryRun"`
	// ArchiveKey is the object key of the archived raw dump, if any.
	ArchiveKey string `json:"archiveKey,omitempty"`
}

func (r *Report) summarize() {
	s := Summary{Total: len(r.Results)}
	for _, res := range r.Results {
		switch res.Outcome {
		case OutcomeNew:
			s.New++
		case OutcomeMerged:
			s.Merged++
		case OutcomeRepeat:
			s.Repeat++
		case OutcomeNeedsConfirmation:
			s.NeedsConfirmation++
		case OutcomeRejected:
			s.Rejected++
		case OutcomeCancelled:
			s.Cancelled++
		}
	}
	r.Summary = s
}

// accepted reports whether the outcome wrote to, or confirmed, the catalog.
func (o Outcome) accepted() bool {
	return o == OutcomeNew || o == OutcomeMerged || o == OutcomeRepeat
}

// accepted reports whether any observation of the report was accepted.
func (r *Report) accepted() bool {
	for _, res := range r.Results {
		if res.Outcome.accepted() {
			return true
		}
	}
	return false
}

// ReviewRequest sets the review metadata of a record.
type ReviewRequest struct {
	FlaggedForReview *bool   `json:"flaggedForReview"`
	DuplicateOf      *string `json:"duplicateOf"`
}
