package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
)

// TimelineService assembles the home timeline from the social graph.
type TimelineService struct {
	messageRepo repository.MessageRepository
	followRepo  repository.FollowRepository
	likeRepo    repository.LikeRepository
}

// Timeline is the payload for the home view: the followees' most recent
// messages plus the set of message IDs the viewer has liked.
type Timeline struct {
	Messages []*models.Message `json:"messages"`
	LikedIDs []uint            `json:"liked_message_ids"`
}

func NewTimelineService(
	messageRepo repository.MessageRepository,
	followRepo repository.FollowRepository,
	likeRepo repository.LikeRepository,
) *TimelineService {
	return &TimelineService{
		messageRepo: messageRepo,
		followRepo:  followRepo,
		likeRepo:    likeRepo,
	}
}

// HomeTimeline returns the 100 most recent messages posted by the users the
// viewer follows, newest first. The viewer's own messages are not included.
func (s *TimelineService) HomeTimeline(ctx context.Context, userID uint) (*Timeline, error) {
	followingIDs, err := s.followRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByOwners(ctx, followingIDs, repository.TimelineLimit, userID)
	if err != nil {
		return nil, err
	}

	messageIDs := make([]uint, 0, len(messages))
	for _, m := range messages {
		messageIDs = append(messageIDs, m.ID)
	}

	likedIDs, err := s.likeRepo.LikedMessageIDsIn(ctx, userID, messageIDs)
	if err != nil {
		return nil, err
	}
	if likedIDs == nil {
		likedIDs = []uint{}
	}

	return &Timeline{Messages: messages, LikedIDs: likedIDs}, nil
}
