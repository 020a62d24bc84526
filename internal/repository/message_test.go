package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"warbler/internal/cache"
	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_CreateAssignsTimestamp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")

	before := time.Now().Add(-time.Second)
	msg := &models.Message{Text: "hello world", UserID: alice.ID}
	require.NoError(t, repo.Create(ctx, msg))

	assert.NotZero(t, msg.ID)
	assert.True(t, msg.CreatedAt.After(before))
}

func TestMessageRepository_GetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	_, err := repo.GetByID(context.Background(), 404, 0)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestMessageRepository_GetByIDLikedState(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	likes := NewLikeRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	msg := &models.Message{Text: "hello", UserID: alice.ID}
	require.NoError(t, repo.Create(ctx, msg))

	_, err := likes.Toggle(ctx, bob.ID, msg.ID)
	require.NoError(t, err)

	// Viewer bob sees the message as liked; an anonymous viewer does not.
	got, err := repo.GetByID(ctx, msg.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, got.Liked)
	assert.Equal(t, "alice", got.User.Username)

	got, err = repo.GetByID(ctx, msg.ID, 0)
	require.NoError(t, err)
	assert.False(t, got.Liked)
}

func TestMessageRepository_ListByOwnersOrderAndCap(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 60; i++ {
		require.NoError(t, db.Create(&models.Message{
			Text:      "from alice",
			UserID:    alice.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}).Error)
		require.NoError(t, db.Create(&models.Message{
			Text:      "from bob",
			UserID:    bob.ID,
			CreatedAt: base.Add(time.Duration(i)*time.Second + 500*time.Millisecond),
		}).Error)
	}
	// Carol's messages must never appear in a timeline of {alice, bob}.
	require.NoError(t, db.Create(&models.Message{Text: "from carol", UserID: carol.ID}).Error)

	timeline, err := repo.ListByOwners(ctx, []uint{alice.ID, bob.ID}, TimelineLimit, 0)
	require.NoError(t, err)
	require.Len(t, timeline, TimelineLimit)

	for i := 1; i < len(timeline); i++ {
		assert.False(t, timeline[i].CreatedAt.After(timeline[i-1].CreatedAt),
			"timeline must be ordered by timestamp descending")
	}
	for _, m := range timeline {
		assert.Contains(t, []uint{alice.ID, bob.ID}, m.UserID)
	}
}

func TestMessageRepository_ListByOwnersEmptySet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)

	timeline, err := repo.ListByOwners(context.Background(), nil, TimelineLimit, 0)
	require.NoError(t, err)
	assert.Empty(t, timeline)
}

func TestMessageRepository_DeleteRemovesLikes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	likes := NewLikeRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	msg := &models.Message{Text: "hello", UserID: alice.ID}
	require.NoError(t, repo.Create(ctx, msg))

	_, err := likes.Toggle(ctx, bob.ID, msg.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, msg.ID))

	_, err = repo.GetByID(ctx, msg.ID, 0)
	assert.Error(t, err)

	ids, err := likes.LikedMessageIDs(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMessageRepository_AnonymousReadsAreCached(t *testing.T) {
	db := setupTestDB(t)
	mr := setupTestCache(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	msg := &models.Message{Text: "original", UserID: alice.ID}
	require.NoError(t, repo.Create(ctx, msg))

	// First anonymous read populates the cache.
	got, err := repo.GetByID(ctx, msg.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Text)
	assert.True(t, mr.Exists(cache.MessageKey(msg.ID)))

	// A change behind the cache is not visible until invalidation.
	require.NoError(t, db.Model(&models.Message{}).Where("id = ?", msg.ID).
		Update("text", "rewritten").Error)

	got, err = repo.GetByID(ctx, msg.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Text)

	// Authenticated reads carry viewer state and always hit the database.
	got, err = repo.GetByID(ctx, msg.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "rewritten", got.Text)
}

func TestMessageRepository_DeleteInvalidatesCache(t *testing.T) {
	db := setupTestDB(t)
	mr := setupTestCache(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	msg := &models.Message{Text: "short lived", UserID: alice.ID}
	require.NoError(t, repo.Create(ctx, msg))

	_, err := repo.GetByID(ctx, msg.ID, 0)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.MessageKey(msg.ID)))

	require.NoError(t, repo.Delete(ctx, msg.ID))
	assert.False(t, mr.Exists(cache.MessageKey(msg.ID)))

	_, err = repo.GetByID(ctx, msg.ID, 0)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
