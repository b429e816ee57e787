package server

import (
	"feedflow/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser adds the viewer -> :id follow edge. Re-following is a no-op.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	viewerID, err := s.requireViewer(c)
	if err != nil {
		return nil
	}
	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Follow(c.UserContext(), viewerID, followeeID); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"following": true})
}

// UnfollowUser removes the viewer -> :id follow edge if present.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	viewerID, err := s.requireViewer(c)
	if err != nil {
		return nil
	}
	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Unfollow(c.UserContext(), viewerID, followeeID); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"following": false})
}

// GetFollowers lists the users following :id.
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	followers, err := s.followService.Followers(c.UserContext(), userID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"followers": followers})
}

// GetFollowing lists the users :id follows.
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	following, err := s.followService.Following(c.UserContext(), userID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"following": following})
}
