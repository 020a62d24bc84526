package service

import (
	"context"
	"strings"

	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

type SignupInput struct {
	Username string
	Email    string
	Password string
	ImageURL string
}

type UpdateProfileInput struct {
	UserID          uint
	CurrentPassword string
	Username        string
	Email           string
	Bio             string
	Location        string
	ImageURL        string
	HeaderImageURL  string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Signup creates a user with a securely hashed password. A username or email
// collision surfaces as a DUPLICATE_IDENTITY error from the store; no partial
// record is persisted.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
		ImageURL: in.ImageURL,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the matching user when the password verifies against
// the stored hash, and (nil, nil) otherwise. Absence of a match is not an
// error: callers must treat it as invalid credentials. The identifier is a
// username, or an email when it contains "@".
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil && strings.Contains(identifier, "@") {
		user, err = s.userRepo.GetByEmail(ctx, identifier)
		if err != nil {
			return nil, err
		}
	}
	if user == nil {
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) SearchUsers(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.userRepo.Search(ctx, query, limit, offset)
}

// UpdateProfile re-verifies the current password against the user's original
// credentials before applying any new field.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.Authenticate(ctx, user.Username, in.CurrentPassword)
	if err != nil {
		return nil, err
	}
	if confirmed == nil {
		return nil, models.NewUnauthorizedError("Wrong password.")
	}

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		confirmed.Username = in.Username
	}
	if in.Email != "" {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		confirmed.Email = in.Email
	}
	if in.Bio != "" {
		confirmed.Bio = in.Bio
	}
	if in.Location != "" {
		confirmed.Location = in.Location
	}
	if in.ImageURL != "" {
		confirmed.ImageURL = in.ImageURL
	}
	if in.HeaderImageURL != "" {
		confirmed.HeaderImageURL = in.HeaderImageURL
	}

	if err := s.userRepo.Update(ctx, confirmed); err != nil {
		return nil, err
	}
	return confirmed, nil
}

// DeleteAccount removes the user and all owned records atomically. Session
// revocation happens at the handler layer once the cascade commits.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.userRepo.DeleteCascade(ctx, userID)
}
