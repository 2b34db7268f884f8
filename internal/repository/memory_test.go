package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk/internal/domain"
	"tripdesk/internal/models"
)

func TestMemoryStore_Users(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	user := &models.User{ID: "u1", Email: "ada@corp.example", FullName: "Ada", CompanyID: "c1", Role: models.RoleEmployee}
	require.NoError(t, store.InsertUser(ctx, user))

	got, err := store.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FullName)

	byEmail, err := store.GetUserByEmail(ctx, "ADA@corp.example")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)

	_, err = store.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, store.InsertUser(ctx, &models.User{ID: "u2", CompanyID: "c2"}))
	scoped, err := store.ListUsers(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "u1", scoped[0].ID)

	all, err := store.ListUsers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemoryStore_SearchHotels(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.InsertHotel(ctx, &models.Hotel{ID: "h1", City: "Istanbul", Stars: 5, IsActive: true}))
	require.NoError(t, store.InsertHotel(ctx, &models.Hotel{ID: "h2", City: "Istanbul", Stars: 3, IsActive: true}))
	require.NoError(t, store.InsertHotel(ctx, &models.Hotel{ID: "h3", City: "Ankara", Stars: 4, IsActive: true}))
	require.NoError(t, store.InsertHotel(ctx, &models.Hotel{ID: "h4", City: "Istanbul", Stars: 5, IsActive: false}))

	t.Run("ByCityCaseInsensitive", func(t *testing.T) {
		hotels, err := store.SearchHotels(ctx, models.HotelSearchQuery{City: "istan", OnlyActive: true})
		require.NoError(t, err)
		assert.Len(t, hotels, 2)
	})

	t.Run("ByStarRange", func(t *testing.T) {
		hotels, err := store.SearchHotels(ctx, models.HotelSearchQuery{MinStars: 4, MaxStars: 5, OnlyActive: true})
		require.NoError(t, err)
		assert.Len(t, hotels, 2)
	})

	t.Run("InactiveExcluded", func(t *testing.T) {
		hotels, err := store.SearchHotels(ctx, models.HotelSearchQuery{OnlyActive: true})
		require.NoError(t, err)
		assert.Len(t, hotels, 3)
	})

	count, err := store.CountHotels(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestMemoryStore_Reservations(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	mk := func(id, userID, companyID string, status models.ReservationStatus) *models.Reservation {
		return &models.Reservation{
			ID: id, UserID: userID, CompanyID: companyID, Status: status,
			GrandTotal: decimal.NewFromInt(100),
		}
	}
	require.NoError(t, store.InsertReservation(ctx, mk("r1", "u1", "c1", models.StatusPending)))
	require.NoError(t, store.InsertReservation(ctx, mk("r2", "u2", "c1", models.StatusConfirmed)))
	require.NoError(t, store.InsertReservation(ctx, mk("r3", "u1", "c2", models.StatusConfirmed)))

	t.Run("FilterByUser", func(t *testing.T) {
		got, err := store.ListReservations(ctx, models.ReservationFilter{UserID: "u1"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("FilterByCompanyAndStatus", func(t *testing.T) {
		got, err := store.ListReservations(ctx, models.ReservationFilter{CompanyID: "c1", Status: models.StatusConfirmed})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "r2", got[0].ID)
	})

	t.Run("UpdateExisting", func(t *testing.T) {
		r, err := store.GetReservation(ctx, "r1")
		require.NoError(t, err)
		r.Status = models.StatusCancelled
		require.NoError(t, store.UpdateReservation(ctx, r))

		got, err := store.GetReservation(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, got.Status)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		err := store.UpdateReservation(ctx, &models.Reservation{ID: "ghost"})
		assert.ErrorIs(t, err, domain.ErrReservationNotFound)
	})

	t.Run("ReturnedCopyDoesNotAliasStore", func(t *testing.T) {
		r, err := store.GetReservation(ctx, "r2")
		require.NoError(t, err)
		r.Status = models.StatusCompleted

		unchanged, err := store.GetReservation(ctx, "r2")
		require.NoError(t, err)
		assert.Equal(t, models.StatusConfirmed, unchanged.Status)
	})
}
