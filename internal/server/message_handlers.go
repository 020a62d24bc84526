package server

import (
	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateMessage handles POST /api/messages
func (s *Server) CreateMessage(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUserID(c)

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messageService.CreateMessage(c.Context(), service.CreateMessageInput{
		UserID: userID,
		Text:   req.Text,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
	})
}

// GetMessage handles GET /api/messages/:id. The view is public; the liked
// flag reflects the viewer when a session resolves.
func (s *Server) GetMessage(c *fiber.Ctx) error {
	messageID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := middleware.CurrentUserID(c)
	message, err := s.messageService.GetMessage(c.Context(), messageID, viewerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": message,
	})
}

// DeleteMessage handles DELETE /api/messages/:id. Only the owner may delete
// a message; anyone else gets 403 regardless of being logged in.
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUserID(c)
	messageID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.messageService.DeleteMessage(c.Context(), service.DeleteMessageInput{
		UserID:    userID,
		MessageID: messageID,
	}); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Message deleted.",
	})
}

// ToggleLike handles POST /api/messages/:id/like. The like state for the
// caller on this message is flipped and the resulting state returned.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUserID(c)
	messageID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.messageService.ToggleLike(c.Context(), userID, messageID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"liked": liked,
	})
}
