package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk/internal/models"
	"tripdesk/internal/repository"
)

type stubStatsCache struct {
	entries map[string]*models.DashboardStats
	hits    int
	writes  int
}

func newStubStatsCache() *stubStatsCache {
	return &stubStatsCache{entries: map[string]*models.DashboardStats{}}
}

func (c *stubStatsCache) GetStats(ctx context.Context, key string) (*models.DashboardStats, error) {
	stats, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	c.hits++
	return stats, nil
}

func (c *stubStatsCache) SetStats(ctx context.Context, key string, stats *models.DashboardStats) error {
	c.entries[key] = stats
	c.writes++
	return nil
}

func seedDashboardStore(t *testing.T) *repository.MemoryStore {
	t.Helper()
	store := repository.NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	insert := func(id, userID string, status models.ReservationStatus, grandTotal int64) {
		require.NoError(t, store.InsertReservation(ctx, &models.Reservation{
			ID: id, ServiceType: models.ServiceHotel, UserID: userID, CompanyID: "c1",
			HotelID: "h1", HotelName: "Grand Bosphorus", RoomTypeID: "rt1", RoomTypeName: "Standard",
			CheckInDate: models.NewDate(2025, time.July, 1), CheckOutDate: models.NewDate(2025, time.July, 2),
			Guests: 1, Nights: 1,
			PricePerNight: decimal.NewFromInt(grandTotal), TotalPrice: decimal.NewFromInt(grandTotal),
			ServiceFee: decimal.Zero, GrandTotal: decimal.NewFromInt(grandTotal),
			Status: status, CreatedAt: now, UpdatedAt: now,
		}))
	}

	insert("r1", "emp1", models.StatusConfirmed, 225)
	insert("r2", "emp1", models.StatusCompleted, 300)
	insert("r3", "emp1", models.StatusPending, 999)
	insert("r4", "emp2", models.StatusCancelled, 999)
	insert("r5", "emp2", models.StatusRejected, 999)
	return store
}

func TestDashboardService_Stats(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("AdminScope", func(t *testing.T) {
		svc := NewDashboardService(seedDashboardStore(t), nil, &logger)

		stats, err := svc.Stats(ctx, models.Identity{ID: "adm1", Role: models.RoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, 5, stats.TotalReservations)
		assert.Equal(t, 1, stats.PendingApprovals)
		assert.Equal(t, 1, stats.ConfirmedReservations)
		assert.Equal(t, 1, stats.CancelledReservations)
		assert.True(t, stats.TotalSpent.Equal(decimal.NewFromInt(525)), "spent %s", stats.TotalSpent)
	})

	t.Run("EmployeeScope", func(t *testing.T) {
		svc := NewDashboardService(seedDashboardStore(t), nil, &logger)

		stats, err := svc.Stats(ctx, models.Identity{ID: "emp1", Role: models.RoleEmployee, CompanyID: "c1"})
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalReservations)
		assert.True(t, stats.TotalSpent.Equal(decimal.NewFromInt(525)))
	})

	t.Run("SecondReadHitsCache", func(t *testing.T) {
		cache := newStubStatsCache()
		svc := NewDashboardService(seedDashboardStore(t), cache, &logger)
		actor := models.Identity{ID: "mgr1", Role: models.RoleManager, CompanyID: "c1"}

		first, err := svc.Stats(ctx, actor)
		require.NoError(t, err)
		second, err := svc.Stats(ctx, actor)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, cache.writes)
		assert.Equal(t, 1, cache.hits)
	})

	t.Run("ScopesUseDistinctKeys", func(t *testing.T) {
		assert.Equal(t, "dashboard_stats:user:u1", statsCacheKey(models.Identity{ID: "u1", Role: models.RoleEmployee, CompanyID: "c1"}))
		assert.Equal(t, "dashboard_stats:company:c1", statsCacheKey(models.Identity{ID: "m1", Role: models.RoleManager, CompanyID: "c1"}))
		assert.Equal(t, "dashboard_stats:all", statsCacheKey(models.Identity{ID: "a1", Role: models.RoleAdmin}))
	})
}
