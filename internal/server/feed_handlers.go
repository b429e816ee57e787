package server

import (
	"feedflow/internal/models"
	"feedflow/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed composes a feed page. The mode query parameter selects between the
// global, following, author and trending feeds; global is the default.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	p, err := parsePagination(c)
	if err != nil {
		return nil
	}

	posts, err := s.feedService.ListFeed(c.UserContext(), service.ListFeedInput{
		Mode:     c.Query("mode", service.FeedModeGlobal),
		ViewerID: s.viewerID(c),
		AuthorID: uint(c.QueryInt("author_id", 0)),
		Page:     p.Page,
		PageSize: p.PageSize,
		Limit:    c.QueryInt("limit", 0),
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts":     posts,
		"page":      p.Page,
		"page_size": p.PageSize,
	})
}
