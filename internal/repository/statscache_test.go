package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk/internal/models"
)

func TestRedisStatsCache(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	cache := NewRedisStatsCache(client, time.Minute)
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		stats := &models.DashboardStats{
			TotalReservations:     3,
			PendingApprovals:      1,
			ConfirmedReservations: 1,
			TotalSpent:            decimal.RequireFromString("525.0"),
		}
		require.NoError(t, cache.SetStats(ctx, "dashboard_stats:user:u1", stats))

		got, err := cache.GetStats(ctx, "dashboard_stats:user:u1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 3, got.TotalReservations)
		assert.True(t, got.TotalSpent.Equal(decimal.RequireFromString("525.0")))
	})

	t.Run("MissIsNilNotError", func(t *testing.T) {
		got, err := cache.GetStats(ctx, "dashboard_stats:user:nobody")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ExpiresAfterTTL", func(t *testing.T) {
		stats := &models.DashboardStats{TotalReservations: 1, TotalSpent: decimal.Zero}
		require.NoError(t, cache.SetStats(ctx, "dashboard_stats:all", stats))

		s.FastForward(2 * time.Minute)

		got, err := cache.GetStats(ctx, "dashboard_stats:all")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("NilClient", func(t *testing.T) {
		nilCache := NewRedisStatsCache(nil, time.Minute)
		_, err := nilCache.GetStats(ctx, "any")
		assert.Error(t, err)
		assert.Error(t, nilCache.SetStats(ctx, "any", &models.DashboardStats{}))
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, Ping(ctx, client))
	})
}
