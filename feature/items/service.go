package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"item-catalog/core/cache"
	"item-catalog/core/reconcile"
	"item-catalog/feature/items/identity"
	"item-catalog/feature/items/ledger"
	"item-catalog/feature/items/merge"
	"item-catalog/feature/items/models"
	"item-catalog/feature/items/parser"
	"item-catalog/feature/items/store"

	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when a record or submitter does not exist.
	ErrNotFound = errors.New("not found")
	// ErrTransientConflict is returned when a write lost the race for the same item twice.
	// The whole request may be retried.
	ErrTransientConflict = errors.New("transient write conflict, retry the request")
	// ErrInvalidDecision is returned by Confirm for an unknown decision.
	ErrInvalidDecision = errors.New("decision must be proceed or cancel")
	// ErrInvalidReview is returned by Review for an unusable duplicate reference.
	ErrInvalidReview = errors.New("invalid review")
	// ErrEmptyRequest is returned when an ingest request carries neither text nor observations.
	ErrEmptyRequest = errors.New("raw dump or items are required")
)

// writeAttempts bounds the re-read and re-merge loop on write conflicts.
const writeAttempts = 2

// Catalog is the storage collaborator used by the service.
type Catalog interface {
	FindByIdentity(ctx context.Context, key models.IdentityKey) (*models.Item, error)
	FindByID(ctx context.Context, id string) (*models.Item, error)
	Upsert(ctx context.Context, item *models.Item) error
	List(ctx context.Context, filter store.ListFilter) ([]models.Item, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Service runs ingestion and the catalog read path.
type Service struct {
	catalog Catalog
	ledger  *ledger.Ledger
	archive *Archive
	lists   *cache.Store[[]models.Item]
	cfg     Config
	logger  *zap.Logger
}

// NewService creates a new items service. archive may be nil.
func NewService(catalog Catalog, l *ledger.Ledger, archive *Archive, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		catalog: catalog,
		ledger:  l,
		archive: archive,
		lists:   cache.New[[]models.Item](cfg.CacheTTL()),
		cfg:     cfg,
		logger:  logger,
	}
}

// Preview parses dump text without touching the catalog.
func (s *Service) Preview(text string) []models.Observation {
	return parser.Parse(text)
}

// HashOrigin hashes a client address with the configured salt.
func (s *Service) HashOrigin(ip string) string {
	return ledger.HashOrigin(ip, s.cfg.IPHashSalt)
}

// Ingest classifies every observation of the request in arrival order and, unless the
// batch is held or a dry run, writes the accepted ones one by one.
//
// A batch holding an observation that needs confirmation is not written at all unless
// req.Confirmed is set. Invalid observations are rejected without stopping the batch.
// Writes already committed stay committed when ctx is cancelled mid-batch.
func (s *Service) Ingest(ctx context.Context, req IngestRequest) (*Report, error) {
	report, err := s.classify(ctx, req)
	if err != nil {
		return nil, err
	}

	if report.Summary.NeedsConfirmation > 0 && !req.Confirmed {
		report.Held = true
		s.logger.Info("Ingest held for confirmation",
			zap.Int("observations", report.Summary.Total),
			zap.Int("needs_confirmation", report.Summary.NeedsConfirmation))
		return report, nil
	}

	if req.DryRun {
		report.DryRun = true
		return report, nil
	}

	err = s.apply(ctx, report, req.Submitter)
	report.summarize()

	if report.accepted() {
		s.lists.Clear()
		s.archiveDump(ctx, report, req)
	}

	s.logger.Info("Ingest finished",
		zap.Int("observations", report.Summary.Total),
		zap.Int("new", report.Summary.New),
		zap.Int("merged", report.Summary.Merged),
		zap.Int("repeat", report.Summary.Repeat),
		zap.Int("rejected", report.Summary.Rejected),
		zap.Int("cancelled", report.Summary.Cancelled))

	return report, err
}

// Confirm resolves a held batch. Proceed re-runs ingestion with the hold lifted;
// cancel returns the classification with every pending observation cancelled.
func (s *Service) Confirm(ctx context.Context, req ConfirmRequest) (*Report, error) {
	switch req.Decision {
	case DecisionProceed:
		in := req.IngestRequest
		in.Confirmed = true
		return s.Ingest(ctx, in)
	case DecisionCancel:
		report, err := s.classify(ctx, req.IngestRequest)
		if err != nil {
			return nil, err
		}
		for i := range report.Results {
			if report.Results[i].Outcome != OutcomeRejected {
				report.Results[i].Outcome = OutcomeCancelled
				report.Results[i].Reason = "cancelled by operator"
			}
		}
		report.summarize()
		return report, nil
	default:
		return nil, ErrInvalidDecision
	}
}

// classify parses the request and resolves every observation against the catalog.
// Earlier observations of the batch are folded into a pending view so that later
// ones resolve against them.
func (s *Service) classify(ctx context.Context, req IngestRequest) (*Report, error) {
	observations := req.Observations
	if len(observations) == 0 {
		if strings.TrimSpace(req.Raw) == "" {
			return nil, ErrEmptyRequest
		}
		observations = parser.Parse(req.Raw)
	}
	observations = applyOverrides(observations, req.Overrides, req.Submitter)

	report := &Report{Results: make([]Result, 0, len(observations))}
	pending := make(map[models.IdentityKey]models.Item)

	for i, obs := range observations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res := Result{Index: i, Observation: obs, Identity: obs.Identity().String()}
		if err := obs.Validate(); err != nil {
			res.Outcome = OutcomeRejected
			res.Reason = strings.TrimPrefix(err.Error(), models.ErrInvalidObservation.Error()+": ")
			report.Results = append(report.Results, res)
			continue
		}

		key := obs.Identity()
		existing, err := s.lookup(ctx, pending, key)
		if err != nil {
			return nil, err
		}

		resolution := identity.Resolve(obs, existing)
		switch resolution.Outcome {
		case identity.OutcomeNew:
			res.Outcome = OutcomeNew
			pending[key] = merge.NewRecord(obs)
		case identity.OutcomeRepeat:
			res.Outcome = OutcomeRepeat
			res.ItemID = storedID(existing)
		case identity.OutcomeNeedsConfirmation:
			res.Outcome = OutcomeNeedsConfirmation
			res.ItemID = storedID(existing)
			res.DuplicateOf = res.ItemID
			res.Reason = "an item with the same name, keywords and type has different stats"
			if res.ItemID == "" {
				res.Reason = "an earlier observation in this batch has the same name, keywords and type but different stats"
			}
			merged, changes, err := merge.Merge(*existing, obs)
			if err != nil {
				return nil, err
			}
			res.Changes = changes
			pending[key] = merged
		}
		report.Results = append(report.Results, res)
	}

	report.summarize()
	return report, nil
}

// storedID returns the id of a record read from the catalog, or "" for one that
// only exists in the pending view of the batch.
func storedID(item *models.Item) string {
	if item == nil || item.Revision == 0 {
		return ""
	}
	return item.ID
}

func (s *Service) lookup(ctx context.Context, pending map[models.IdentityKey]models.Item, key models.IdentityKey) (*models.Item, error) {
	if item, ok := pending[key]; ok {
		return &item, nil
	}
	item, err := s.catalog.FindByIdentity(ctx, key)
	if err != nil {
		return nil, err
	}
	if item != nil {
		pending[key] = *item
	}
	return item, nil
}

// apply writes the accepted results of a classified report in order.
func (s *Service) apply(ctx context.Context, report *Report, who ledger.Submitter) error {
	for i := range report.Results {
		res := &report.Results[i]
		if res.Outcome == OutcomeRejected {
			continue
		}

		if err := ctx.Err(); err != nil {
			cancelFrom(report, i, "request aborted")
			return err
		}

		item, outcome, changes, err := s.write(ctx, res.Observation)
		if err != nil {
			cancelFrom(report, i, "not written: "+err.Error())
			return err
		}

		res.Outcome = outcome
		res.ItemID = item.ID
		res.Changes = changes
		res.Reason = ""

		if _, err := s.ledger.Record(ctx, item, res.Observation, creditTo(who, res.Observation)); err != nil {
			res.Item = &item
			cancelFrom(report, i+1, "not written: "+err.Error())
			return err
		}
		res.Item = &item
	}
	return nil
}

// creditTo picks who an accepted observation is recorded under. A request without
// a submitter falls back to the name carried on the observation itself.
func creditTo(who ledger.Submitter, obs models.Observation) ledger.Submitter {
	if !who.Anonymous() {
		return who
	}
	name := strings.TrimSpace(obs.SubmittedBy)
	if name == "" {
		return who
	}
	return ledger.Submitter{Name: name, Origin: who.Origin}
}

// write folds obs into the freshly read record for its identity and stores it,
// re-reading once when another writer got there first.
func (s *Service) write(ctx context.Context, obs models.Observation) (models.Item, Outcome, []reconcile.Change, error) {
	key := obs.Identity()

	for attempt := 1; attempt <= writeAttempts; attempt++ {
		existing, err := s.catalog.FindByIdentity(ctx, key)
		if err != nil {
			return models.Item{}, "", nil, err
		}

		next := merge.NewRecord(obs)
		outcome := OutcomeNew
		var changes []reconcile.Change
		if existing != nil {
			next, changes, err = merge.Merge(*existing, obs)
			if err != nil {
				return models.Item{}, "", nil, err
			}
			if len(changes) == 0 {
				return *existing, OutcomeRepeat, nil, nil
			}
			outcome = OutcomeMerged
		}

		err = s.catalog.Upsert(ctx, &next)
		if errors.Is(err, store.ErrWriteConflict) {
			s.logger.Warn("Write conflict, re-reading",
				zap.String("identity", key.String()),
				zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return models.Item{}, "", nil, err
		}
		return next, outcome, changes, nil
	}

	return models.Item{}, "", nil, fmt.Errorf("%w: %s", ErrTransientConflict, key)
}

// cancelFrom marks every unwritten result from index on as cancelled.
func cancelFrom(report *Report, from int, reason string) {
	for i := from; i < len(report.Results); i++ {
		res := &report.Results[i]
		if res.Outcome == OutcomeRejected || res.Item != nil {
			continue
		}
		res.Outcome = OutcomeCancelled
		res.Reason = reason
	}
}

func (s *Service) archiveDump(ctx context.Context, report *Report, req IngestRequest) {
	if s.archive == nil || strings.TrimSpace(req.Raw) == "" {
		return
	}

	meta := map[string]string{"observations": fmt.Sprint(report.Summary.Total)}
	if name := strings.TrimSpace(req.Submitter.Name); name != "" {
		meta["submitter"] = name
	}

	key, err := s.archive.Store(ctx, req.Raw, meta)
	if err != nil {
		s.logger.Warn("Failed to archive dump", zap.Error(err))
		return
	}
	report.ArchiveKey = key
}

// Replay loads an archived dump for re-ingestion.
func (s *Service) Replay(ctx context.Context, key string) (string, error) {
	return s.archive.Load(ctx, key)
}

// Get returns one record with its provenance.
func (s *Service) Get(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.catalog.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}

	annotated := []models.Item{*item}
	if err := s.ledger.Annotate(ctx, annotated); err != nil {
		return nil, err
	}
	return &annotated[0], nil
}

// List returns records matching filter with their provenance. Results are cached
// until the next write; hit reports whether the cache served them.
func (s *Service) List(ctx context.Context, filter store.ListFilter) (items []models.Item, hit bool, err error) {
	if filter.Limit <= 0 {
		filter.Limit = s.cfg.ListLimit
	}

	return s.lists.GetOrLoad(ctx, listKey(filter), func(ctx context.Context) ([]models.Item, error) {
		items, err := s.catalog.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []models.Item{}
		}
		if err := s.ledger.Annotate(ctx, items); err != nil {
			return nil, err
		}
		return items, nil
	})
}

func listKey(f store.ListFilter) string {
	flagged := "-"
	if f.Flagged != nil {
		flagged = fmt.Sprint(*f.Flagged)
	}
	return strings.Join([]string{
		f.Query, f.Type, flagged, f.ID, f.UserID, fmt.Sprint(f.Limit), fmt.Sprint(f.Offset),
	}, "\x00")
}

// Review sets the review flag and duplicate reference of a record.
func (s *Service) Review(ctx context.Context, id string, req ReviewRequest) (*models.Item, error) {
	if req.DuplicateOf != nil {
		target := strings.TrimSpace(*req.DuplicateOf)
		if target == id {
			return nil, fmt.Errorf("%w: an item cannot duplicate itself", ErrInvalidReview)
		}
		if target != "" {
			dup, err := s.catalog.FindByID(ctx, target)
			if err != nil {
				return nil, err
			}
			if dup == nil {
				return nil, fmt.Errorf("%w: duplicate %s does not exist", ErrInvalidReview, target)
			}
		}
	}

	for attempt := 1; attempt <= writeAttempts; attempt++ {
		item, err := s.catalog.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, ErrNotFound
		}

		if req.FlaggedForReview != nil {
			item.FlaggedForReview = *req.FlaggedForReview
		}
		if req.DuplicateOf != nil {
			if target := strings.TrimSpace(*req.DuplicateOf); target != "" {
				item.DuplicateOf = &target
			} else {
				item.DuplicateOf = nil
			}
		}

		err = s.catalog.Upsert(ctx, item)
		if errors.Is(err, store.ErrWriteConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}

		s.lists.Clear()
		s.logger.Info("Item reviewed",
			zap.String("item_id", id),
			zap.Bool("flagged", item.FlaggedForReview))
		return item, nil
	}

	return nil, ErrTransientConflict
}

// Delete removes one record.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.catalog.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.lists.Clear()
	s.logger.Warn("Item deleted", zap.String("item_id", id))
	return nil
}

// Invalidate drops every cached list page.
func (s *Service) Invalidate() {
	n := s.lists.Len()
	s.lists.Clear()
	s.logger.Info("List cache invalidated", zap.Int("entries", n))
}

// DeleteAll removes every record.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.catalog.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.lists.Clear()
	s.logger.Warn("Catalog wiped", zap.Int64("deleted", n))
	return n, nil
}

// Contributor returns a submitter's running stats.
func (s *Service) Contributor(ctx context.Context, name string) (*ledger.Contributor, error) {
	c, err := s.ledger.Submitter(ctx, name)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}
