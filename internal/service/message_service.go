package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/validation"
)

type MessageService struct {
	messageRepo repository.MessageRepository
	likeRepo    repository.LikeRepository
}

type CreateMessageInput struct {
	UserID uint
	Text   string
}

type DeleteMessageInput struct {
	UserID    uint
	MessageID uint
}

func NewMessageService(messageRepo repository.MessageRepository, likeRepo repository.LikeRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo, likeRepo: likeRepo}
}

func (s *MessageService) CreateMessage(ctx context.Context, in CreateMessageInput) (*models.Message, error) {
	if err := validation.ValidateMessageText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	message := &models.Message{
		Text:   in.Text,
		UserID: in.UserID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *MessageService) GetMessage(ctx context.Context, id uint, currentUserID uint) (*models.Message, error) {
	return s.messageRepo.GetByID(ctx, id, currentUserID)
}

// DeleteMessage removes a message after checking the requester owns it.
func (s *MessageService) DeleteMessage(ctx context.Context, in DeleteMessageInput) error {
	message, err := s.messageRepo.GetByID(ctx, in.MessageID, in.UserID)
	if err != nil {
		return err
	}

	if message.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own messages")
	}

	return s.messageRepo.Delete(ctx, in.MessageID)
}

// ToggleLike flips the like state for the caller on the given message and
// reports the resulting state. The message must exist.
func (s *MessageService) ToggleLike(ctx context.Context, userID, messageID uint) (bool, error) {
	if _, err := s.messageRepo.GetByID(ctx, messageID, userID); err != nil {
		return false, err
	}
	return s.likeRepo.Toggle(ctx, userID, messageID)
}

func (s *MessageService) ListUserMessages(ctx context.Context, userID uint, currentUserID uint) ([]*models.Message, error) {
	return s.messageRepo.ListByOwner(ctx, userID, repository.TimelineLimit, currentUserID)
}

func (s *MessageService) LikedMessages(ctx context.Context, userID uint) ([]*models.Message, error) {
	return s.likeRepo.LikedMessages(ctx, userID)
}
