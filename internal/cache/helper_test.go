package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	s := miniredis.RunT(t)
	InitRedis(s.Addr())
	t.Cleanup(func() {
		InitRedis("") // detach the global client from the stopped server
	})
	return s
}

type cachedUser struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestGetSetJSON_RoundTrip(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	in := cachedUser{ID: 7, Name: "alice"}
	require.NoError(t, SetJSON(ctx, UserKey(7), in, UserTTL))

	var out cachedUser
	found, err := GetJSON(ctx, UserKey(7), &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)

	found, err = GetJSON(ctx, UserKey(8), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_FetchesOnceThenServesFromCache(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			calls++
			*dest = cachedUser{ID: 1, Name: "bob"}
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, UserKey(1), &first, time.Minute, fetch(&first)))
	var second cachedUser
	require.NoError(t, Aside(ctx, UserKey(1), &second, time.Minute, fetch(&second)))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestAside_NilClientPassesThrough(t *testing.T) {
	InitRedis("")
	ctx := context.Background()

	calls := 0
	var out cachedUser
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(ctx, UserKey(1), &out, time.Minute, func() error {
			calls++
			out = cachedUser{ID: 1, Name: "carol"}
			return nil
		}))
	}
	assert.Equal(t, 2, calls, "without Redis every read goes to the fetch path")
}

func TestInvalidateFeeds_DropsOnlyFeedKeys(t *testing.T) {
	s := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, GlobalFeedKey(1, 10), []int{1}, FeedTTL))
	require.NoError(t, SetJSON(ctx, TrendingKey(20), []int{2}, TrendingTTL))
	require.NoError(t, SetJSON(ctx, UserKey(1), cachedUser{ID: 1}, UserTTL))

	InvalidateFeeds(ctx)

	assert.False(t, s.Exists(GlobalFeedKey(1, 10)))
	assert.False(t, s.Exists(TrendingKey(20)))
	assert.True(t, s.Exists(UserKey(1)))
}

func TestInvalidateUser(t *testing.T) {
	s := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(3), cachedUser{ID: 3}, UserTTL))
	InvalidateUser(ctx, 3)
	assert.False(t, s.Exists(UserKey(3)))
}
