package server

import (
	"feedflow/internal/models"
	"feedflow/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createConversationRequest struct {
	UserID uint `json:"user_id"`
}

// CreateConversation opens a conversation between the viewer and user_id.
// A second conversation for the same pair is rejected with a conflict.
func (s *Server) CreateConversation(c *fiber.Ctx) error {
	viewerID, err := s.requireViewer(c)
	if err != nil {
		return nil
	}

	var req createConversationRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	conv, err := s.chatService.OpenConversation(c.UserContext(), viewerID, req.UserID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conv)
}

// GetConversations lists the viewer's threads newest-activity first.
func (s *Server) GetConversations(c *fiber.Ctx) error {
	viewerID, err := s.requireViewer(c)
	if err != nil {
		return nil
	}

	convs, err := s.chatService.ListConversations(c.UserContext(), viewerID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"conversations": convs})
}

// GetConversation returns one thread; participants only.
func (s *Server) GetConversation(c *fiber.Ctx) error {
	viewerID, err := s.requireViewer(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	conv, err := s.chatService.GetConversation(c.UserContext(), id, viewerID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(conv)
}

// GetMessages lists a thread's messages oldest first; participants only.
func (s *Server) GetMessages(c *fiber.Ctx) error {
	viewerID, err := s.requireViewer(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	messages, err := s.chatService.ListMessages(c.UserContext(), id, viewerID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessage appends a message from the viewer to the thread.
func (s *Server) SendMessage(c *fiber.Ctx) error {
	viewerID, err := s.requireViewer(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.chatService.SendMessage(c.UserContext(), service.SendMessageInput{
		ConversationID: id,
		SenderID:       viewerID,
		Content:        req.Content,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// MarkMessageRead records the viewer's read receipt for one message.
func (s *Server) MarkMessageRead(c *fiber.Ctx) error {
	viewerID, err := s.requireViewer(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.chatService.MarkMessageRead(c.UserContext(), id, viewerID); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Read receipt recorded"})
}
