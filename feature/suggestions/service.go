package suggestions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"item-catalog/feature/items/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrInvalidSuggestion is returned for a suggestion without item id or note.
	ErrInvalidSuggestion = errors.New("itemId and note are required")
	// ErrItemNotFound is returned when the suggestion targets an unknown record.
	ErrItemNotFound = errors.New("item not found")
	// ErrNotFound is returned when a suggestion does not exist.
	ErrNotFound = errors.New("suggestion not found")
	// ErrInvalidStatus is returned for an unknown moderation status.
	ErrInvalidStatus = errors.New("status must be pending, approved or rejected")
)

// ItemLookup finds catalog records by id.
type ItemLookup interface {
	FindByID(ctx context.Context, id string) (*models.Item, error)
}

// Service stores and lists suggestions.
type Service struct {
	db     *gorm.DB
	items  ItemLookup
	logger *zap.Logger
	now    func() time.Time

	mu    sync.Mutex
	ready bool
}

// NewService creates a new suggestions service.
func NewService(db *gorm.DB, items ItemLookup, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		items:  items,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// EnsureReady migrates the suggestions table once per service.
func (s *Service) EnsureReady(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}
	if err := s.db.WithContext(ctx).AutoMigrate(&Suggestion{}); err != nil {
		return fmt.Errorf("failed to migrate suggestions: %w", err)
	}
	s.ready = true
	return nil
}

// Create stores a pending suggestion for an existing record.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Suggestion, error) {
	req.ItemID = strings.TrimSpace(req.ItemID)
	req.Note = strings.TrimSpace(req.Note)
	req.Reason = strings.TrimSpace(req.Reason)
	if req.ItemID == "" || req.Note == "" {
		return nil, ErrInvalidSuggestion
	}

	item, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	sug := &Suggestion{
		ID:      uuid.NewString(),
		ItemID:  item.ID,
		Note:    req.combinedNote(),
		Status:  StatusPending,
		Created: s.now(),
	}
	if proposer := strings.TrimSpace(req.Proposer); proposer != "" {
		sug.Proposer = &proposer
	}

	if err := s.db.WithContext(ctx).Create(sug).Error; err != nil {
		return nil, fmt.Errorf("failed to save suggestion: %w", err)
	}

	s.logger.Info("Suggestion received",
		zap.String("suggestion_id", sug.ID),
		zap.String("item_id", sug.ItemID))
	return sug, nil
}

// ListForItem returns the suggestions of one record, newest first.
// An empty itemID lists every pending suggestion.
func (s *Service) ListForItem(ctx context.Context, itemID string) ([]Suggestion, error) {
	q := s.db.WithContext(ctx).Model(&Suggestion{})
	if itemID = strings.TrimSpace(itemID); itemID != "" {
		q = q.Where("item_id = ?", itemID)
	} else {
		q = q.Where("status = ?", StatusPending)
	}

	out := []Suggestion{}
	if err := q.Order("created_at DESC").Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	return out, nil
}

// SetStatus moderates a suggestion.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (*Suggestion, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var sug Suggestion
	err := s.db.WithContext(ctx).First(&sug, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read suggestion %s: %w", id, err)
	}

	if err := s.db.WithContext(ctx).Model(&sug).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update suggestion %s: %w", id, err)
	}
	sug.Status = status

	s.logger.Info("Suggestion moderated",
		zap.String("suggestion_id", id),
		zap.String("status", string(status)))
	return &sug, nil
}
