package server

import (
	"warbler/internal/middleware"
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow. Following an already
// followed user is a no-op; following yourself is rejected.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	followerID, _ := middleware.CurrentUserID(c)
	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if followeeID == followerID {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("You cannot follow yourself"))
	}

	if _, err := s.userService.GetUserByID(c.Context(), followeeID); err != nil {
		return respondError(c, err)
	}

	if err := s.followRepo.Follow(c.Context(), followerID, followeeID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"following": true,
	})
}

// UnfollowUser handles DELETE /api/users/:id/follow. Removing an absent edge
// is a no-op.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	followerID, _ := middleware.CurrentUserID(c)
	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.userService.GetUserByID(c.Context(), followeeID); err != nil {
		return respondError(c, err)
	}

	if err := s.followRepo.Unfollow(c.Context(), followerID, followeeID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"following": false,
	})
}
