package service

import (
	"context"

	"warbler/internal/models"
)

// Function-stub repositories: each method delegates to an overridable fn
// field, with nil fields behaving as empty-store no-ops.

type userRepoStub struct {
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	createFn        func(ctx context.Context, user *models.User) error
	updateFn        func(ctx context.Context, user *models.User) error
	searchFn        func(ctx context.Context, query string, limit, offset int) ([]models.User, error)
	deleteCascadeFn func(ctx context.Context, id uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return s.getByIDFn(ctx, id)
}

func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsernameFn == nil {
		return nil, nil
	}
	return s.getByUsernameFn(ctx, username)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmailFn == nil {
		return nil, nil
	}
	return s.getByEmailFn(ctx, email)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, user)
}

func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, user)
}

func (s *userRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	if s.searchFn == nil {
		return nil, nil
	}
	return s.searchFn(ctx, query, limit, offset)
}

func (s *userRepoStub) DeleteCascade(ctx context.Context, id uint) error {
	if s.deleteCascadeFn == nil {
		return nil
	}
	return s.deleteCascadeFn(ctx, id)
}

type messageRepoStub struct {
	createFn       func(ctx context.Context, message *models.Message) error
	getByIDFn      func(ctx context.Context, id uint, currentUserID uint) (*models.Message, error)
	listByOwnerFn  func(ctx context.Context, userID uint, limit int, currentUserID uint) ([]*models.Message, error)
	listByOwnersFn func(ctx context.Context, userIDs []uint, limit int, currentUserID uint) ([]*models.Message, error)
	deleteFn       func(ctx context.Context, id uint) error
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.Message) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, message)
}

func (s *messageRepoStub) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Message, error) {
	if s.getByIDFn == nil {
		return nil, models.NewNotFoundError("Message", id)
	}
	return s.getByIDFn(ctx, id, currentUserID)
}

func (s *messageRepoStub) ListByOwner(ctx context.Context, userID uint, limit int, currentUserID uint) ([]*models.Message, error) {
	if s.listByOwnerFn == nil {
		return nil, nil
	}
	return s.listByOwnerFn(ctx, userID, limit, currentUserID)
}

func (s *messageRepoStub) ListByOwners(ctx context.Context, userIDs []uint, limit int, currentUserID uint) ([]*models.Message, error) {
	if s.listByOwnersFn == nil {
		return nil, nil
	}
	return s.listByOwnersFn(ctx, userIDs, limit, currentUserID)
}

func (s *messageRepoStub) Delete(ctx context.Context, id uint) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

type likeRepoStub struct {
	toggleFn            func(ctx context.Context, userID, messageID uint) (bool, error)
	isLikedFn           func(ctx context.Context, userID, messageID uint) (bool, error)
	likedMessageIDsFn   func(ctx context.Context, userID uint) ([]uint, error)
	likedMessageIDsInFn func(ctx context.Context, userID uint, messageIDs []uint) ([]uint, error)
	likedMessagesFn     func(ctx context.Context, userID uint) ([]*models.Message, error)
}

func (s *likeRepoStub) Toggle(ctx context.Context, userID, messageID uint) (bool, error) {
	if s.toggleFn == nil {
		return false, nil
	}
	return s.toggleFn(ctx, userID, messageID)
}

func (s *likeRepoStub) IsLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	if s.isLikedFn == nil {
		return false, nil
	}
	return s.isLikedFn(ctx, userID, messageID)
}

func (s *likeRepoStub) LikedMessageIDs(ctx context.Context, userID uint) ([]uint, error) {
	if s.likedMessageIDsFn == nil {
		return nil, nil
	}
	return s.likedMessageIDsFn(ctx, userID)
}

func (s *likeRepoStub) LikedMessageIDsIn(ctx context.Context, userID uint, messageIDs []uint) ([]uint, error) {
	if s.likedMessageIDsInFn == nil {
		return nil, nil
	}
	return s.likedMessageIDsInFn(ctx, userID, messageIDs)
}

func (s *likeRepoStub) LikedMessages(ctx context.Context, userID uint) ([]*models.Message, error) {
	if s.likedMessagesFn == nil {
		return nil, nil
	}
	return s.likedMessagesFn(ctx, userID)
}

type followRepoStub struct {
	followFn         func(ctx context.Context, followerID, followeeID uint) error
	unfollowFn       func(ctx context.Context, followerID, followeeID uint) error
	isFollowingFn    func(ctx context.Context, followerID, followeeID uint) (bool, error)
	followingIDsFn   func(ctx context.Context, userID uint) ([]uint, error)
	followingFn      func(ctx context.Context, userID uint) ([]models.User, error)
	followersFn      func(ctx context.Context, userID uint) ([]models.User, error)
	countFollowingFn func(ctx context.Context, userID uint) (int64, error)
	countFollowersFn func(ctx context.Context, userID uint) (int64, error)
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, followeeID uint) error {
	if s.followFn == nil {
		return nil
	}
	return s.followFn(ctx, followerID, followeeID)
}

func (s *followRepoStub) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if s.unfollowFn == nil {
		return nil
	}
	return s.unfollowFn(ctx, followerID, followeeID)
}

func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	if s.isFollowingFn == nil {
		return false, nil
	}
	return s.isFollowingFn(ctx, followerID, followeeID)
}

func (s *followRepoStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	if s.followingIDsFn == nil {
		return nil, nil
	}
	return s.followingIDsFn(ctx, userID)
}

func (s *followRepoStub) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if s.followingFn == nil {
		return nil, nil
	}
	return s.followingFn(ctx, userID)
}

func (s *followRepoStub) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if s.followersFn == nil {
		return nil, nil
	}
	return s.followersFn(ctx, userID)
}

func (s *followRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	if s.countFollowingFn == nil {
		return 0, nil
	}
	return s.countFollowingFn(ctx, userID)
}

func (s *followRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	if s.countFollowersFn == nil {
		return 0, nil
	}
	return s.countFollowersFn(ctx, userID)
}
