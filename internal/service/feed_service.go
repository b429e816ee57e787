package service

import (
	"context"
	"sort"

	"feedflow/internal/cache"
	"feedflow/internal/models"
	"feedflow/internal/observability"
	"feedflow/internal/repository"

	"github.com/samber/lo"
)

// Feed modes accepted by ListFeed.
const (
	FeedModeGlobal    = "global"
	FeedModeFollowing = "following"
	FeedModeAuthor    = "author"
	FeedModeTrending  = "trending"
)

const (
	// followingFeedMinPosts is the blend threshold: below it the following
	// feed is supplemented with suggested posts so new users never see an
	// empty or near-empty feed.
	followingFeedMinPosts = 5
	// suggestedSupplementMax caps how many suggested posts are mixed in.
	suggestedSupplementMax = 8

	DefaultPageSize = 10
	MaxPageSize     = 100
)

// FeedService composes the ordered, paginated post sequences a viewer sees.
type FeedService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
}

// ListFeedInput selects a feed mode and its page window.
type ListFeedInput struct {
	Mode     string
	ViewerID uint
	AuthorID uint
	Page     int
	PageSize int
	// Limit applies to the trending mode only, which is not paginated.
	Limit int
}

// NewFeedService returns a new FeedService.
func NewFeedService(postRepo repository.PostRepository, followRepo repository.FollowRepository) *FeedService {
	return &FeedService{postRepo: postRepo, followRepo: followRepo}
}

// ListFeed dispatches on the feed mode.
func (s *FeedService) ListFeed(ctx context.Context, in ListFeedInput) ([]*models.Post, error) {
	page, pageSize := normalizePage(in.Page, in.PageSize)

	switch in.Mode {
	case FeedModeGlobal, "":
		return s.GlobalFeed(ctx, in.ViewerID, page, pageSize)
	case FeedModeFollowing:
		if in.ViewerID == 0 {
			return nil, models.NewValidationError("viewer_id is required for the following feed")
		}
		return s.FollowingFeed(ctx, in.ViewerID, page, pageSize)
	case FeedModeAuthor:
		if in.AuthorID == 0 {
			return nil, models.NewValidationError("author_id is required for the author feed")
		}
		return s.AuthorFeed(ctx, in.AuthorID, page, pageSize, in.ViewerID)
	case FeedModeTrending:
		limit := in.Limit
		if limit <= 0 {
			limit = 20
		}
		return s.Trending(ctx, limit, in.ViewerID)
	default:
		return nil, models.NewValidationError("Unknown feed mode: " + in.Mode)
	}
}

// GlobalFeed returns all posts newest first. Anonymous pages are served
// through the cache since they are identical for every caller.
func (s *FeedService) GlobalFeed(ctx context.Context, viewerID uint, page, pageSize int) ([]*models.Post, error) {
	observability.FeedRequests.WithLabelValues(FeedModeGlobal).Inc()
	offset := (page - 1) * pageSize

	if viewerID == 0 {
		var posts []*models.Post
		err := cache.Aside(ctx, cache.GlobalFeedKey(page, pageSize), &posts, cache.FeedTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.List(ctx, pageSize, offset, 0)
			return fetchErr
		})
		return posts, err
	}
	return s.postRepo.List(ctx, pageSize, offset, viewerID)
}

// FollowingFeed returns posts authored by the users the viewer follows.
// A viewer who follows no one gets the global feed, and a followed set that
// yields fewer than followingFeedMinPosts posts is supplemented with up to
// suggestedSupplementMax suggested posts; the union is sorted by timestamp
// before pagination. Documented policy: new users are never shown an empty
// feed.
func (s *FeedService) FollowingFeed(ctx context.Context, viewerID uint, page, pageSize int) ([]*models.Post, error) {
	observability.FeedRequests.WithLabelValues(FeedModeFollowing).Inc()

	followingIDs, err := s.followRepo.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(followingIDs) == 0 {
		return s.postRepo.List(ctx, pageSize, (page-1)*pageSize, viewerID)
	}

	total, err := s.postRepo.CountByAuthors(ctx, followingIDs)
	if err != nil {
		return nil, err
	}

	if total < followingFeedMinPosts {
		followed, err := s.postRepo.ListByAuthors(ctx, followingIDs, followingFeedMinPosts, 0, viewerID)
		if err != nil {
			return nil, err
		}
		excluded := append(lo.Uniq(followingIDs), viewerID)
		suggested, err := s.postRepo.ListExcludingAuthors(ctx, excluded, suggestedSupplementMax, viewerID)
		if err != nil {
			return nil, err
		}
		return paginateSlice(sortByRecency(append(followed, suggested...)), page, pageSize), nil
	}

	return s.postRepo.ListByAuthors(ctx, followingIDs, pageSize, (page-1)*pageSize, viewerID)
}

// AuthorFeed returns one author's posts newest first.
func (s *FeedService) AuthorFeed(ctx context.Context, authorID uint, page, pageSize int, viewerID uint) ([]*models.Post, error) {
	observability.FeedRequests.WithLabelValues(FeedModeAuthor).Inc()
	return s.postRepo.ListByAuthor(ctx, authorID, pageSize, (page-1)*pageSize, viewerID)
}

// Trending returns the top-limit posts by engagement score, ties broken by
// recency. Not paginated.
func (s *FeedService) Trending(ctx context.Context, limit int, viewerID uint) ([]*models.Post, error) {
	observability.FeedRequests.WithLabelValues(FeedModeTrending).Inc()

	if viewerID == 0 {
		var posts []*models.Post
		err := cache.Aside(ctx, cache.TrendingKey(limit), &posts, cache.TrendingTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.Trending(ctx, limit, 0)
			return fetchErr
		})
		return posts, err
	}
	return s.postRepo.Trending(ctx, limit, viewerID)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// sortByRecency orders posts newest first, ids breaking timestamp ties so
// pagination over the sorted slice is stable.
func sortByRecency(posts []*models.Post) []*models.Post {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}

func paginateSlice(posts []*models.Post, page, pageSize int) []*models.Post {
	start := (page - 1) * pageSize
	if start >= len(posts) {
		return nil
	}
	end := start + pageSize
	if end > len(posts) {
		end = len(posts)
	}
	return posts[start:end]
}
