package server

import (
	"feedflow/internal/models"
	"feedflow/internal/service"

	"github.com/gofiber/fiber/v2"
)

// notificationQuery resolves the recipient and page window for inbox reads.
// The recipient defaults to the viewer but user_id can name any inbox; there
// is no authentication layer, scoping is the caller's concern.
func (s *Server) notificationQuery(c *fiber.Ctx) (service.ListNotificationsInput, error) {
	recipientID := uint(c.QueryInt("user_id", 0))
	if recipientID == 0 {
		recipientID = s.viewerID(c)
	}
	if recipientID == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id or viewer identification required"))
		return service.ListNotificationsInput{}, errResponseWritten
	}

	p, err := parsePagination(c)
	if err != nil {
		return service.ListNotificationsInput{}, err
	}
	return service.ListNotificationsInput{
		RecipientID: recipientID,
		Page:        p.Page,
		PageSize:    p.PageSize,
		UnreadOnly:  c.QueryBool("unread_only", false),
	}, nil
}

// GetNotifications lists a recipient's inbox newest first.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	in, err := s.notificationQuery(c)
	if err != nil {
		return nil
	}

	notifications, err := s.notificationService.ListNotifications(c.UserContext(), in)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}

// GetGroupedNotifications returns the inbox bucketed by notification kind.
func (s *Server) GetGroupedNotifications(c *fiber.Ctx) error {
	in, err := s.notificationQuery(c)
	if err != nil {
		return nil
	}

	groups, err := s.notificationService.GroupedNotifications(c.UserContext(), in)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(groups)
}

// GetUnreadCount returns the recipient's unread badge count.
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	in, err := s.notificationQuery(c)
	if err != nil {
		return nil
	}

	count, err := s.notificationService.UnreadCount(c.UserContext(), in.RecipientID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"unread_count": count})
}

// MarkNotificationRead marks one notification read.
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	return s.setNotificationRead(c, true)
}

// MarkNotificationUnread marks one notification unread; the transition is
// reversible.
func (s *Server) MarkNotificationUnread(c *fiber.Ctx) error {
	return s.setNotificationRead(c, false)
}

func (s *Server) setNotificationRead(c *fiber.Ctx, read bool) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	n, err := s.notificationService.SetRead(c.UserContext(), id, read)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(n)
}

// MarkAllNotificationsRead marks the recipient's whole inbox read.
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	in, err := s.notificationQuery(c)
	if err != nil {
		return nil
	}

	updated, err := s.notificationService.MarkAllRead(c.UserContext(), in.RecipientID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"updated": updated})
}

type notificationIDsRequest struct {
	IDs []uint `json:"ids"`
}

// MarkManyNotificationsRead marks the given notifications read.
func (s *Server) MarkManyNotificationsRead(c *fiber.Ctx) error {
	var req notificationIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.notificationService.MarkManyRead(c.UserContext(), req.IDs)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"updated": updated})
}

// DeleteNotifications removes the given notifications. Deletion is terminal.
func (s *Server) DeleteNotifications(c *fiber.Ctx) error {
	var req notificationIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	deleted, err := s.notificationService.DeleteMany(c.UserContext(), req.IDs)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
