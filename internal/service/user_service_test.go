package service

import (
	"context"
	"strings"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestUserService_Signup(t *testing.T) {
	t.Parallel()

	t.Run("hashes the password before storing", func(t *testing.T) {
		t.Parallel()
		var saved *models.User
		repo := &userRepoStub{
			createFn: func(_ context.Context, u *models.User) error {
				saved = u
				return nil
			},
		}
		svc := NewUserService(repo)
		user, err := svc.Signup(context.Background(), SignupInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "Password123",
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.NotEqual(t, "Password123", saved.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("Password123")))
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("rejects invalid input before touching the store", func(t *testing.T) {
		t.Parallel()
		repo := &userRepoStub{
			createFn: func(_ context.Context, _ *models.User) error {
				t.Fatal("Create should not be called for invalid input")
				return nil
			},
		}
		svc := NewUserService(repo)

		_, err := svc.Signup(context.Background(), SignupInput{
			Username: "a!", Email: "alice@example.com", Password: "Password123",
		})
		assertValidationError(t, err)

		_, err = svc.Signup(context.Background(), SignupInput{
			Username: "alice", Email: "not-an-email", Password: "Password123",
		})
		assertValidationError(t, err)

		_, err = svc.Signup(context.Background(), SignupInput{
			Username: "alice", Email: "alice@example.com", Password: "weak",
		})
		assertValidationError(t, err)
	})

	t.Run("duplicate identity propagates", func(t *testing.T) {
		t.Parallel()
		repo := &userRepoStub{
			createFn: func(_ context.Context, _ *models.User) error {
				return models.NewDuplicateError("Username or email already taken")
			},
		}
		svc := NewUserService(repo)
		_, err := svc.Signup(context.Background(), SignupInput{
			Username: "alice", Email: "alice@example.com", Password: "Password123",
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "DUPLICATE_IDENTITY", appErr.Code)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	t.Parallel()

	newRepo := func(t *testing.T) *userRepoStub {
		stored := &models.User{
			ID:       1,
			Username: "alice",
			Email:    "alice@example.com",
			Password: hashPassword(t, "Password123"),
		}
		return &userRepoStub{
			getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
				if username == "alice" {
					return stored, nil
				}
				return nil, nil
			},
			getByEmailFn: func(_ context.Context, email string) (*models.User, error) {
				if email == "alice@example.com" {
					return stored, nil
				}
				return nil, nil
			},
		}
	}

	t.Run("correct password matches", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newRepo(t))
		user, err := svc.Authenticate(context.Background(), "alice", "Password123")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, uint(1), user.ID)
	})

	// No prefix, substring or empty password may authenticate, and none of
	// these are errors: the caller just gets no match.
	t.Run("near-miss passwords do not match", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newRepo(t))
		for _, password := range []string{"Password12", "assword123", "", "password123"} {
			user, err := svc.Authenticate(context.Background(), "alice", password)
			require.NoError(t, err)
			assert.Nil(t, user, "password %q must not authenticate", password)
		}
	})

	t.Run("unknown username does not match", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newRepo(t))
		user, err := svc.Authenticate(context.Background(), "mallory", "Password123")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("email identifier matches", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newRepo(t))
		user, err := svc.Authenticate(context.Background(), "alice@example.com", "Password123")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("unknown email does not match", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newRepo(t))
		user, err := svc.Authenticate(context.Background(), "mallory@example.com", "Password123")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()

	newRepo := func(t *testing.T) *userRepoStub {
		stored := &models.User{
			ID:       1,
			Username: "alice",
			Email:    "alice@example.com",
			Password: hashPassword(t, "Password123"),
			Bio:      "original bio",
		}
		return &userRepoStub{
			getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
				if id == stored.ID {
					return stored, nil
				}
				return nil, models.NewNotFoundError("User", id)
			},
			getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
				if username == stored.Username {
					return stored, nil
				}
				return nil, nil
			},
		}
	}

	t.Run("wrong password rejects the edit", func(t *testing.T) {
		t.Parallel()
		repo := newRepo(t)
		repo.updateFn = func(_ context.Context, _ *models.User) error {
			t.Fatal("Update should not be called with a wrong password")
			return nil
		}
		svc := NewUserService(repo)
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:          1,
			CurrentPassword: "Wrong-Password9",
			Bio:             "new bio",
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})

	t.Run("correct password applies only provided fields", func(t *testing.T) {
		t.Parallel()
		repo := newRepo(t)
		var saved *models.User
		repo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewUserService(repo)
		user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:          1,
			CurrentPassword: "Password123",
			Location:        "Toronto",
		})
		require.NoError(t, err)
		assert.Equal(t, "Toronto", user.Location)
		assert.Equal(t, "original bio", user.Bio)
		require.NotNil(t, saved)
	})

	t.Run("new username is validated", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newRepo(t))
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:          1,
			CurrentPassword: "Password123",
			Username:        strings.Repeat("x", 31),
		})
		assertValidationError(t, err)
	})

	t.Run("missing user surfaces not found", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newRepo(t))
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:          42,
			CurrentPassword: "Password123",
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}
