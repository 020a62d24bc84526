package repository

import (
	"context"
	"errors"

	"warbler/internal/cache"
	"warbler/internal/models"

	"gorm.io/gorm"
)

// TimelineLimit caps every message listing, including the home timeline.
const TimelineLimit = 100

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Message, error)
	ListByOwner(ctx context.Context, userID uint, limit int, currentUserID uint) ([]*models.Message, error)
	ListByOwners(ctx context.Context, userIDs []uint, limit int, currentUserID uint) ([]*models.Message, error)
	Delete(ctx context.Context, id uint) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// applyMessageDetails adds a subquery computing per-viewer liked state in a
// single query, scoped to the (viewer, message) pair.
func (r *messageRepository) applyMessageDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select(
			"messages.*, EXISTS(SELECT 1 FROM likes WHERE likes.message_id = messages.id AND likes.user_id = ?) as liked",
			currentUserID,
		)
	}
	return db.Select("messages.*, false as liked")
}

func (r *messageRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Message, error) {
	var message models.Message

	fetch := func() error {
		err := r.applyMessageDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			First(&message, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Message", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	// Only the anonymous snapshot is shareable; the liked flag is scoped
	// to the viewer, so authenticated reads always hit the database.
	if currentUserID == 0 {
		if err := cache.Aside(ctx, cache.MessageKey(id), &message, cache.MessageTTL, fetch); err != nil {
			return nil, err
		}
		return &message, nil
	}

	if err := fetch(); err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) ListByOwner(ctx context.Context, userID uint, limit int, currentUserID uint) ([]*models.Message, error) {
	return r.list(ctx, []uint{userID}, limit, currentUserID)
}

// ListByOwners is the timeline query: the union of messages from a set of
// owners, newest first, capped. An empty owner set yields an empty timeline.
func (r *messageRepository) ListByOwners(ctx context.Context, userIDs []uint, limit int, currentUserID uint) ([]*models.Message, error) {
	if len(userIDs) == 0 {
		return []*models.Message{}, nil
	}
	return r.list(ctx, userIDs, limit, currentUserID)
}

func (r *messageRepository) list(ctx context.Context, userIDs []uint, limit int, currentUserID uint) ([]*models.Message, error) {
	if limit <= 0 || limit > TimelineLimit {
		limit = TimelineLimit
	}

	var messages []*models.Message
	err := r.applyMessageDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("user_id IN ?", userIDs).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Likes referencing the message go with it.
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMessage(ctx, id)
	return nil
}
