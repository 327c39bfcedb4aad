package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"item-catalog/core/utils"
	"item-catalog/feature/items/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the part of the storage collaborator the ledger writes to and reads from.
type Store interface {
	AppendSubmission(ctx context.Context, sub *models.Submission) error
	ListSubmissionsForItems(ctx context.Context, ids []string) ([]models.Submission, error)
	SubmitterStats(ctx context.Context, name string) (*models.SubmitterStat, []string, error)
}

// Submitter identifies who sent an observation.
type Submitter struct {
	// Name is the display name the submitter chose.
	Name string `json:"name,omitempty"`
	// UserID is an opaque account id.
	UserID string `json:"userId,omitempty"`
	// Origin is the hashed origin marker, see HashOrigin.
	Origin string `json:"-"`
}

// Anonymous reports whether the submitter carries neither a name nor a user id.
func (s Submitter) Anonymous() bool {
	return strings.TrimSpace(s.Name) == "" && strings.TrimSpace(s.UserID) == ""
}

// Key is the normalised submitter name the running stats are kept under.
func (s Submitter) Key() string {
	return utils.Normalize(s.Name)
}

// Contributor is the read-back view of one submitter.
type Contributor struct {
	Name            string   `json:"name"`
	SubmissionCount int      `json:"submissionCount"`
	ItemIDs         []string `json:"itemIds"`
}

// Ledger records accepted observations against their submitters.
type Ledger struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// New creates a ledger on store.
func New(store Store, logger *zap.Logger) *Ledger {
	return &Ledger{store: store, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Record appends one submission event for an accepted observation of item.
// Observations without a submitter are not recorded and yield nil.
func (l *Ledger) Record(ctx context.Context, item models.Item, obs models.Observation, who Submitter) (*models.Submission, error) {
	if who.Anonymous() {
		return nil, nil
	}

	sub := &models.Submission{
		ID:            uuid.NewString(),
		ItemID:        item.ID,
		SubmitterName: strings.TrimSpace(who.Name),
		SubmitterKey:  who.Key(),
		UserID:        strings.TrimSpace(who.UserID),
		IPHash:        who.Origin,
		Raw:           obs.RawText(),
		CreatedAt:     l.now(),
	}
	if err := l.store.AppendSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to record submission for item %s: %w", item.ID, err)
	}

	l.logger.Debug("Recorded submission",
		zap.String("item_id", item.ID),
		zap.String("submitter", sub.SubmitterKey),
		zap.String("submission_id", sub.ID))
	return sub, nil
}

// Summaries returns, per item id, the distinct contributor names in order of first
// submission and the total number of submissions. Ids without submissions are present
// with zero counts.
func (l *Ledger) Summaries(ctx context.Context, ids []string) (map[string]models.Provenance, error) {
	out := make(map[string]models.Provenance, len(ids))
	for _, id := range ids {
		out[id] = models.Provenance{ItemID: id, Contributors: []string{}}
	}
	if len(ids) == 0 {
		return out, nil
	}

	subs, err := l.store.ListSubmissionsForItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load provenance: %w", err)
	}

	seen := make(map[string]map[string]struct{}, len(ids))
	for _, sub := range subs {
		p := out[sub.ItemID]
		p.ItemID = sub.ItemID
		p.SubmissionCount++

		if sub.SubmitterKey != "" {
			names, ok := seen[sub.ItemID]
			if !ok {
				names = make(map[string]struct{})
				seen[sub.ItemID] = names
			}
			if _, dup := names[sub.SubmitterKey]; !dup {
				names[sub.SubmitterKey] = struct{}{}
				p.Contributors = append(p.Contributors, sub.SubmitterName)
			}
		}
		out[sub.ItemID] = p
	}
	return out, nil
}

// Annotate fills the derived SubmissionCount and Contributors of items.
func (l *Ledger) Annotate(ctx context.Context, items []models.Item) error {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	summaries, err := l.Summaries(ctx, ids)
	if err != nil {
		return err
	}
	for i := range items {
		p := summaries[items[i].ID]
		items[i].SubmissionCount = p.SubmissionCount
		items[i].Contributors = p.Contributors
	}
	return nil
}

// Submitter returns the running stats of the submitter called name, or nil if it never submitted.
func (l *Ledger) Submitter(ctx context.Context, name string) (*Contributor, error) {
	key := utils.Normalize(name)
	if key == "" {
		return nil, nil
	}

	stat, ids, err := l.store.SubmitterStats(ctx, key)
	if err != nil {
		return nil, err
	}
	if stat == nil {
		return nil, nil
	}
	if ids == nil {
		ids = []string{}
	}
	return &Contributor{Name: stat.DisplayName, SubmissionCount: stat.SubmissionCount, ItemIDs: ids}, nil
}

// HashOrigin returns the hex sha256 of "ip|salt", or "" for an empty ip.
func HashOrigin(ip, salt string) string {
	if strings.TrimSpace(ip) == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(ip + "|" + salt))
	return hex.EncodeToString(sum[:])
}
