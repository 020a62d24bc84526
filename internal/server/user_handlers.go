package server

import (
	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users. An optional q parameter narrows the list
// to usernames containing the query; without it all users are listed.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	pagination := parsePagination(c, 50)

	users, err := s.userService.SearchUsers(c.Context(), c.Query("q"), pagination.Limit, pagination.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}

// GetUserProfile handles GET /api/users/:id. The profile is public; like
// state on the profile's messages is included only when a viewer session
// resolves.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	viewerID, _ := middleware.CurrentUserID(c)
	messages, err := s.messageService.ListUserMessages(c.Context(), userID, viewerID)
	if err != nil {
		return respondError(c, err)
	}

	followingCount, err := s.followRepo.CountFollowing(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	followerCount, err := s.followRepo.CountFollowers(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	resp := fiber.Map{
		"user":            user,
		"messages":        messages,
		"following_count": followingCount,
		"follower_count":  followerCount,
	}
	if viewerID != 0 && viewerID != userID {
		following, err := s.followRepo.IsFollowing(c.Context(), viewerID, userID)
		if err != nil {
			return respondError(c, err)
		}
		resp["is_following"] = following
	}

	return c.JSON(resp)
}

// GetUserFollowing handles GET /api/users/:id/following
func (s *Server) GetUserFollowing(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.userService.GetUserByID(c.Context(), userID); err != nil {
		return respondError(c, err)
	}

	users, err := s.followRepo.Following(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}

// GetUserFollowers handles GET /api/users/:id/followers
func (s *Server) GetUserFollowers(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.userService.GetUserByID(c.Context(), userID); err != nil {
		return respondError(c, err)
	}

	users, err := s.followRepo.Followers(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}

// GetUserLikes handles GET /api/users/:id/likes
func (s *Server) GetUserLikes(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.userService.GetUserByID(c.Context(), userID); err != nil {
		return respondError(c, err)
	}

	messages, err := s.messageService.LikedMessages(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"messages": messages,
	})
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUserID(c)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"user": user,
	})
}

// UpdateMyProfile handles PUT /api/users/me. The caller must confirm their
// current password; a wrong password rejects the edit with 401.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUserID(c)

	var req struct {
		Password       string `json:"password"`
		Username       string `json:"username"`
		Email          string `json:"email"`
		Bio            string `json:"bio"`
		Location       string `json:"location"`
		ImageURL       string `json:"image_url"`
		HeaderImageURL string `json:"header_image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:          userID,
		CurrentPassword: req.Password,
		Username:        req.Username,
		Email:           req.Email,
		Bio:             req.Bio,
		Location:        req.Location,
		ImageURL:        req.ImageURL,
		HeaderImageURL:  req.HeaderImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"user": user,
	})
}

// DeleteMyAccount handles DELETE /api/users/me. The cascade removes the
// user's messages, likes and follow edges in one transaction; every session
// for the account is then revoked.
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUserID(c)

	if err := s.userService.DeleteAccount(c.Context(), userID); err != nil {
		return respondError(c, err)
	}

	if err := s.sessions.RevokeUser(c.Context(), userID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.clearSessionCookie(c)

	return c.JSON(fiber.Map{
		"message": "Account deleted.",
		"next":    "/api/auth/signup",
	})
}
