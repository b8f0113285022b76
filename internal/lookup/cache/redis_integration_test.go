//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"deeplink/internal/lookup/cache"
	"deeplink/internal/lookup/models"
	"deeplink/pkg/platform/sentinel"
	"deeplink/pkg/testutil/containers"
)

func TestRedisCache(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	profile := &models.LookupResult{
		Query:        "9876543210",
		Found:        true,
		TotalRecords: 3,
		TotalPhones:  3,
		Phones:       []string{"9876543210", "8817342793", "7000419892"},
		Names:        []string{"ARUN KUMAR"},
		Addresses:    []string{"W/O Arun, Rewa, MP, 486340"},
	}

	t.Run("miss returns sentinel", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		c := cache.NewRedis(rc.Client, time.Minute)

		_, err := c.Get(ctx, "9876543210")
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		c := cache.NewRedis(rc.Client, time.Minute)

		require.NoError(t, c.Set(ctx, "9876543210", profile))

		got, err := c.Get(ctx, "9876543210")
		require.NoError(t, err)
		require.Equal(t, profile, got)
	})

	t.Run("entries expire after ttl", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		c := cache.NewRedis(rc.Client, 100*time.Millisecond)

		require.NoError(t, c.Set(ctx, "9876543210", profile))

		require.Eventually(t, func() bool {
			_, err := c.Get(ctx, "9876543210")
			return err != nil
		}, 2*time.Second, 50*time.Millisecond)
	})

	t.Run("corrupt entry behaves like a miss", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		c := cache.NewRedis(rc.Client, time.Minute)

		require.NoError(t, rc.Client.Set(ctx, "deeplink:profile:9876543210", "{not json", time.Minute).Err())

		_, err := c.Get(ctx, "9876543210")
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
