package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"item-catalog/core/database"
	"item-catalog/feature/items/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	s := New(db)
	require.NoError(t, s.EnsureReady(context.Background()))
	return s
}

func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return New(gormDB), mock
}

func newItem(id, name string) *models.Item {
	item := &models.Item{
		ID:       id,
		Name:     name,
		Keywords: "dagger rusty",
		Type:     "weapon",
		Flags:    []string{"MAGIC"},
		Worn:     []string{"wield"},
		Stats: models.Stats{
			Weight: models.Int(3), WeightMin: models.Int(3), WeightMax: models.Int(3),
			Affects: models.Affects{models.StatAffect{Stat: "strength", Value: 1, Min: models.Int(1), Max: models.Int(1)}},
		},
		Raw: []string{"Weight: 3"},
	}
	item.SyncKeys()
	return item
}

func TestStore_EnsureReadyIsIdempotent(t *testing.T) {
	s := setupStore(t)
	assert.NoError(t, s.EnsureReady(context.Background()))

	schema, err := s.Schema(context.Background())
	require.NoError(t, err)
	assert.Len(t, schema, 4)
	assert.NotEmpty(t, schema["items"])
}

func TestStore_UpsertInsertAndFind(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	item := newItem("item-1", "A Rusty Dagger")
	require.NoError(t, s.Upsert(ctx, item))
	assert.Equal(t, 1, item.Revision)
	assert.False(t, item.CreatedAt.IsZero())

	found, err := s.FindByIdentity(ctx, models.NewIdentityKey("a rusty dagger", "DAGGER RUSTY", "weapon"))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "item-1", found.ID)
	assert.Equal(t, "A Rusty Dagger", found.Name)
	assert.Equal(t, []string{"MAGIC"}, found.Flags)
	assert.True(t, item.Stats.Equal(found.Stats))

	byID, err := s.FindByID(ctx, "item-1")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, found.NameKey, byID.NameKey)

	missing, err := s.FindByID(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = s.FindByIdentity(ctx, models.NewIdentityKey("x", "y", "z"))
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_UpsertDuplicateIdentityConflicts(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, newItem("item-1", "a rusty dagger")))

	dup := newItem("item-2", "A RUSTY DAGGER ")
	err := s.Upsert(ctx, dup)
	assert.True(t, errors.Is(err, ErrWriteConflict))
	assert.Equal(t, 0, dup.Revision)
}

func TestStore_UpsertUpdatesByIdentity(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	item := newItem("item-1", "a rusty dagger")
	require.NoError(t, s.Upsert(ctx, item))

	stored, err := s.FindByIdentity(ctx, item.Identity())
	require.NoError(t, err)

	// Update without knowing the id.
	stored.ID = ""
	stored.Stats.Weight = models.Int(5)
	stored.Stats.WeightMax = models.Int(5)
	stored.Worn = []string{"wield", "held"}
	require.NoError(t, s.Upsert(ctx, stored))
	assert.Equal(t, 2, stored.Revision)

	reread, err := s.FindByID(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, 2, reread.Revision)
	assert.Equal(t, 5, *reread.Stats.WeightMax)
	assert.Equal(t, []string{"wield", "held"}, reread.Worn)
}

func TestStore_UpsertStaleRevisionConflicts(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, newItem("item-1", "a rusty dagger")))

	first, err := s.FindByID(ctx, "item-1")
	require.NoError(t, err)
	second, err := s.FindByID(ctx, "item-1")
	require.NoError(t, err)

	first.Stats.WeightMax = models.Int(5)
	require.NoError(t, s.Upsert(ctx, first))

	second.Stats.WeightMin = models.Int(1)
	err = s.Upsert(ctx, second)
	assert.True(t, errors.Is(err, ErrWriteConflict))
	assert.Equal(t, 1, second.Revision)

	reread, err := s.FindByID(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, 5, *reread.Stats.WeightMax, "first writer's widening survives")
	assert.Equal(t, 3, *reread.Stats.WeightMin)
}

func TestStore_List(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	dagger := newItem("item-1", "a rusty dagger")
	ring := newItem("item-2", "a 100% gold ring")
	ring.Keywords, ring.Type = "ring gold", "worn"
	ring.FlaggedForReview = true
	require.NoError(t, s.Upsert(ctx, dagger))
	require.NoError(t, s.Upsert(ctx, ring))
	require.NoError(t, s.AppendSubmission(ctx, &models.Submission{ID: "s1", ItemID: "item-2", UserID: "u1"}))

	all, err := s.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	flagged := true
	tests := []struct {
		name     string
		filter   ListFilter
		expected []string
	}{
		{"query name", ListFilter{Query: "RUSTY"}, []string{"item-1"}},
		{"query keywords", ListFilter{Query: "gold"}, []string{"item-2"}},
		{"query escapes wildcards", ListFilter{Query: "100%"}, []string{"item-2"}},
		{"type", ListFilter{Type: "Worn"}, []string{"item-2"}},
		{"flagged", ListFilter{Flagged: &flagged}, []string{"item-2"}},
		{"id", ListFilter{ID: "item-1"}, []string{"item-1"}},
		{"user", ListFilter{UserID: "u1"}, []string{"item-2"}},
		{"unknown user", ListFilter{UserID: "u2"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := s.List(ctx, tt.filter)
			require.NoError(t, err)
			var ids []string
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}

	page, err := s.List(ctx, ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestStore_Delete(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, newItem("item-1", "a rusty dagger")))
	require.NoError(t, s.Upsert(ctx, newItem("item-2", "a sharp dagger")))
	require.NoError(t, s.Upsert(ctx, newItem("item-3", "a dull dagger")))

	deleted, err := s.Delete(ctx, "item-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.Delete(ctx, "item-1")
	require.NoError(t, err)
	assert.False(t, deleted)

	n, err := s.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	items, err := s.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_AppendSubmission(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	subs := []*models.Submission{
		{ID: "s1", ItemID: "item-1", SubmitterName: "Alice", SubmitterKey: "alice", CreatedAt: at},
		{ID: "s2", ItemID: "item-1", SubmitterName: "alice ", SubmitterKey: "alice", CreatedAt: at.Add(time.Minute)},
		{ID: "s3", ItemID: "item-2", SubmitterName: "Alice", SubmitterKey: "alice", CreatedAt: at.Add(2 * time.Minute)},
		{ID: "s4", ItemID: "item-2", UserID: "u9", CreatedAt: at.Add(3 * time.Minute)},
	}
	for _, sub := range subs {
		require.NoError(t, s.AppendSubmission(ctx, sub))
	}

	stat, ids, err := s.SubmitterStats(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, stat)
	assert.Equal(t, 3, stat.SubmissionCount)
	assert.Equal(t, "Alice", stat.DisplayName)
	assert.Equal(t, []string{"item-1", "item-2"}, ids)

	events, err := s.ListSubmissionsForItems(ctx, []string{"item-2"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "s3", events[0].ID)
	assert.Equal(t, "u9", events[1].UserID)

	none, _, err := s.SubmitterStats(ctx, "bob")
	assert.NoError(t, err)
	assert.Nil(t, none)

	empty, err := s.ListSubmissionsForItems(ctx, nil)
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_UpsertMySQLConflict(t *testing.T) {
	s, mock := setupMockStore(t)

	item := newItem("item-1", "a rusty dagger")
	item.Revision = 4

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `items` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := s.Upsert(context.Background(), item)
	assert.True(t, errors.Is(err, ErrWriteConflict))
	assert.Equal(t, 4, item.Revision)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpsertMySQLUpdate(t *testing.T) {
	s, mock := setupMockStore(t)

	item := newItem("item-1", "a rusty dagger")
	item.Revision = 4

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `items` SET .* WHERE .*name_key = \\? AND keywords_key = \\? AND type_key = \\? AND revision = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.Upsert(context.Background(), item))
	assert.Equal(t, 5, item.Revision)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FindByIdentityMySQLError(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `items`").WillReturnError(errors.New("connection reset"))

	_, err := s.FindByIdentity(context.Background(), models.NewIdentityKey("a", "b", "c"))
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
