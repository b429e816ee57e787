package server

import (
	"feedflow/internal/models"
	"feedflow/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers lists users with derived follower/following counts.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p, err := parsePagination(c)
	if err != nil {
		return nil
	}

	users, err := s.userService.ListUsers(c.UserContext(), p.PageSize, p.Offset())
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetUser returns one user's profile.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// Pointer fields distinguish "not sent" from "sent empty": omitted fields are
// left untouched while an explicit empty string clears the field.
type updateUserRequest struct {
	DisplayName    *string `json:"display_name"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
}

// UpdateUser edits a profile; users can only edit their own.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	viewerID, err := s.requireViewer(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if id != viewerID {
		return models.RespondError(c,
			models.NewInvalidOperationError("Cannot edit another user's profile"))
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:         id,
		DisplayName:    req.DisplayName,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}
