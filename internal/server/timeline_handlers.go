package server

import (
	"warbler/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// HomeTimeline handles GET /api/. A logged-in caller gets the 100 most
// recent messages from the users they follow plus their liked-message-id
// set; an anonymous caller gets the empty landing payload.
func (s *Server) HomeTimeline(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(fiber.Map{
			"messages":          []any{},
			"liked_message_ids": []any{},
			"signup":            "/api/auth/signup",
		})
	}

	timeline, err := s.timelineService.HomeTimeline(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(timeline)
}
