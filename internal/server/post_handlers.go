package server

import (
	"feedflow/internal/models"
	"feedflow/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Content   string   `json:"content"`
	MediaURLs []string `json:"media_urls"`
}

// CreatePost creates a post authored by the viewer.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	viewerID, err := s.requireViewer(c)
	if err != nil {
		return nil
	}

	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorID:  viewerID,
		Content:   req.Content,
		MediaURLs: req.MediaURLs,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost returns one post with viewer-relative like state.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id, s.viewerID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost removes a post; only the author may delete it.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	viewerID, err := s.requireViewer(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id, viewerID)
	if err != nil {
		return models.RespondError(c, err)
	}
	if post.AuthorID != viewerID {
		return models.RespondError(c,
			models.NewInvalidOperationError("Only the author can delete a post"))
	}

	if err := s.postService.DeletePost(c.UserContext(), id); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// ToggleLike flips the viewer's like on the post and returns the post with
// its refreshed counts.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	viewerID, err := s.requireViewer(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.ToggleLike(c.UserContext(), id, viewerID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(post)
}

// SharePost bumps the post's share counter.
func (s *Server) SharePost(c *fiber.Ctx) error {
	viewerID, err := s.requireViewer(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.RecordShare(c.UserContext(), id, viewerID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(post)
}
