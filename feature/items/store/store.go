package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"item-catalog/core/database"
	"item-catalog/feature/items/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrWriteConflict is returned by Upsert when another writer changed or created
// the record for the same identity first. Re-read and retry.
var ErrWriteConflict = errors.New("write conflict")

// updatableColumns are written by every in-place update.
var updatableColumns = []string{
	"name", "keywords", "type", "name_key", "keywords_key", "type_key",
	"flags", "submitted_by", "dropped_by", "worn", "stats", "ego", "is_artifact", "raw",
	"flagged_for_review", "duplicate_of", "revision", "updated_at",
}

// requiredColumns are verified by EnsureReady after migrating.
var requiredColumns = map[string][]string{
	"items":             {"id", "name_key", "keywords_key", "type_key", "stats", "revision"},
	"submissions":       {"id", "item_id", "submitter_key", "user_id", "ip_hash"},
	"submitter_stats":   {"name", "submission_count"},
	"contributor_items": {"submitter", "item_id"},
}

// ListFilter narrows List.
type ListFilter struct {
	// Query matches a substring of the name or keywords, case-insensitively.
	Query string
	Type  string
	// Flagged filters on the review flag when set.
	Flagged *bool
	ID      string
	// UserID keeps items that user submitted.
	UserID string
	Limit  int
	Offset int
}

// Store persists catalog records and the provenance ledger through gorm.
type Store struct {
	db *gorm.DB

	mu    sync.Mutex
	ready bool
}

// New creates a store on db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// EnsureReady migrates the catalog tables and verifies their columns.
// It does the work once per store; later calls return immediately.
func (s *Store) EnsureReady(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(&models.Item{}, &models.Submission{}, &models.SubmitterStat{}, &models.ContributorItem{}); err != nil {
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}

	for _, table := range []string{"items", "submissions", "submitter_stats", "contributor_items"} {
		missing, err := database.MissingColumns(db, table, requiredColumns[table])
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("table %s is missing columns: %v", table, missing)
		}
	}

	s.ready = true
	return nil
}

// FindByIdentity returns the record stored under key, or nil.
func (s *Store) FindByIdentity(ctx context.Context, key models.IdentityKey) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).
		Where("name_key = ? AND keywords_key = ? AND type_key = ?", key.Name, key.Keywords, key.Type).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find item %s: %w", key, err)
	}
	return &item, nil
}

// FindByID returns the record with id, or nil.
func (s *Store) FindByID(ctx context.Context, id string) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find item %s: %w", id, err)
	}
	return &item, nil
}

// Upsert writes item keyed by its identity. A record with Revision 0 is inserted;
// otherwise the stored row with the same identity and revision is updated in place,
// so the caller never needs the stored id. On success item.Revision is bumped.
// ErrWriteConflict means the identity was taken or the row moved on since it was read.
func (s *Store) Upsert(ctx context.Context, item *models.Item) error {
	item.SyncKeys()
	now := time.Now().UTC()

	if item.Revision == 0 {
		next := *item
		next.Revision = 1
		next.CreatedAt, next.UpdatedAt = now, now
		if err := s.db.WithContext(ctx).Create(&next).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrWriteConflict
			}
			return fmt.Errorf("failed to insert item %s: %w", item.Identity(), err)
		}
		*item = next
		return nil
	}

	next := *item
	next.Revision = item.Revision + 1
	next.UpdatedAt = now

	res := s.db.WithContext(ctx).Model(&models.Item{}).
		Where("name_key = ? AND keywords_key = ? AND type_key = ? AND revision = ?",
			item.NameKey, item.KeywordsKey, item.TypeKey, item.Revision).
		Select(updatableColumns).
		Updates(&next)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrWriteConflict
		}
		return fmt.Errorf("failed to update item %s: %w", item.Identity(), res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrWriteConflict
	}

	*item = next
	return nil
}

// List returns records matching filter, most recently updated first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]models.Item, error) {
	q := s.db.WithContext(ctx).Model(&models.Item{})

	if filter.ID != "" {
		q = q.Where("id = ?", filter.ID)
	}
	if filter.Query != "" {
		like := "%" + escapeLike(models.NewIdentityKey(filter.Query, "", "").Name) + "%"
		q = q.Where("(name_key LIKE ? ESCAPE '!' OR keywords_key LIKE ? ESCAPE '!')", like, like)
	}
	if filter.Type != "" {
		q = q.Where("type_key = ?", models.NewIdentityKey("", "", filter.Type).Type)
	}
	if filter.Flagged != nil {
		q = q.Where("flagged_for_review = ?", *filter.Flagged)
	}
	if filter.UserID != "" {
		sub := s.db.Model(&models.Submission{}).Select("item_id").Where("user_id = ?", filter.UserID)
		q = q.Where("id IN (?)", sub)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var items []models.Item
	if err := q.Order("updated_at DESC").Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// Delete removes one record. It reports whether a row was deleted.
// Submission events are kept.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Item{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete item %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteAll removes every record and returns how many were deleted.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Item{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete items: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// AppendSubmission stores sub and, for named submitters, bumps the submitter's
// count and links the submitter to the item, all in one transaction.
func (s *Store) AppendSubmission(ctx context.Context, sub *models.Submission) error {
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return fmt.Errorf("failed to append submission: %w", err)
		}
		if sub.SubmitterKey == "" {
			return nil
		}

		stat := models.SubmitterStat{
			Name:            sub.SubmitterKey,
			DisplayName:     sub.SubmitterName,
			SubmissionCount: 1,
			UpdatedAt:       sub.CreatedAt,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"submission_count": gorm.Expr("submission_count + 1"),
				"display_name":     sub.SubmitterName,
				"updated_at":       sub.CreatedAt,
			}),
		}).Create(&stat).Error
		if err != nil {
			return fmt.Errorf("failed to update submitter stats: %w", err)
		}

		link := models.ContributorItem{Submitter: sub.SubmitterKey, ItemID: sub.ItemID, CreatedAt: sub.CreatedAt}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			return fmt.Errorf("failed to link contributor: %w", err)
		}
		return nil
	})
}

// ListSubmissionsForItems returns every submission event for ids, oldest first.
func (s *Store) ListSubmissionsForItems(ctx context.Context, ids []string) ([]models.Submission, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var subs []models.Submission
	err := s.db.WithContext(ctx).
		Where("item_id IN ?", ids).
		Order("created_at").Order("id").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}

// SubmitterStats returns the running stats for a normalised submitter name and the
// ids of the items it contributed to. A submitter that never submitted yields nil.
func (s *Store) SubmitterStats(ctx context.Context, name string) (*models.SubmitterStat, []string, error) {
	var stat models.SubmitterStat
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load submitter %s: %w", name, err)
	}

	var ids []string
	err = s.db.WithContext(ctx).Model(&models.ContributorItem{}).
		Where("submitter = ?", name).
		Order("created_at").
		Pluck("item_id", &ids).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load items for submitter %s: %w", name, err)
	}
	return &stat, ids, nil
}

// Schema reports the columns of every catalog table.
func (s *Store) Schema(ctx context.Context) (map[string][]database.ColumnInfo, error) {
	out := make(map[string][]database.ColumnInfo, len(requiredColumns))
	for table := range requiredColumns {
		cols, err := database.GetTableColumns(s.db.WithContext(ctx), table)
		if err != nil {
			return nil, err
		}
		out[table] = cols
	}
	return out, nil
}

func escapeLike(s string) string {
	r := make([]rune, 0, len(s))
	for _, c := range s {
		if c == '%' || c == '_' || c == '!' {
			r = append(r, '!')
		}
		r = append(r, c)
	}
	return string(r)
}
