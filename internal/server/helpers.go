package server

import (
	"errors"
	"strconv"

	"feedflow/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed page/page_size query parameters.
type Pagination struct {
	Page     int
	PageSize int
}

const (
	defaultPageSize   = 10
	maxPaginationSize = 100
)

// parsePagination extracts page and page_size query parameters. limit/offset
// style parameters are accepted as aliases for callers that prefer them; an
// offset that does not land on a page boundary is rejected rather than
// silently snapped to one, which would shift the window. On failure it writes
// a 400 JSON response and returns errResponseWritten.
func parsePagination(c *fiber.Ctx) (Pagination, error) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := c.QueryInt("page_size", 0)
	if pageSize == 0 {
		pageSize = c.QueryInt("limit", defaultPageSize)
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPaginationSize {
		pageSize = maxPaginationSize
	}

	if offset := c.QueryInt("offset", 0); offset > 0 && c.QueryInt("page", 0) == 0 {
		if offset%pageSize != 0 {
			_ = models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("offset must be a multiple of the page size"))
			return Pagination{}, errResponseWritten
		}
		page = offset/pageSize + 1
	}

	return Pagination{Page: page, PageSize: pageSize}, nil
}

// Offset converts the page window into a row offset.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// ViewerMiddleware resolves the acting user from the X-Viewer-ID header or
// the viewer_id query parameter and stores it in locals. There is no
// authentication layer; the caller states who is acting and the transport
// trusts it.
func (s *Server) ViewerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("X-Viewer-ID")
		if raw == "" {
			raw = c.Query("viewer_id")
		}
		if raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id > 0 {
				c.Locals("viewerID", uint(id))
			}
		}
		return c.Next()
	}
}

// viewerID returns the acting user's id, zero when anonymous.
func (s *Server) viewerID(c *fiber.Ctx) uint {
	if vid, ok := c.Locals("viewerID").(uint); ok {
		return vid
	}
	return 0
}

// requireViewer returns the acting user's id or writes a 401.
func (s *Server) requireViewer(c *fiber.Ctx) (uint, error) {
	vid := s.viewerID(c)
	if vid == 0 {
		_ = models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("X-Viewer-ID header or viewer_id parameter required"))
		return 0, errResponseWritten
	}
	return vid, nil
}
