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

func TestHotelService_Search(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()
	store := repository.NewMemoryStore()
	svc := NewHotelService(store, &logger)
	now := time.Now().UTC()

	insert := func(id, city string, stars int, active bool, price int64) {
		require.NoError(t, store.InsertHotel(ctx, &models.Hotel{
			ID: id, Name: id, City: city, Stars: stars,
			RoomTypes: []models.RoomType{{ID: id + "-rt", Name: "Standard", Capacity: 2, PricePerNight: decimal.NewFromInt(price), AvailableRooms: 5}},
			IsActive:  active, CreatedAt: now,
		}))
	}
	insert("h1", "Istanbul", 5, true, 3500)
	insert("h2", "Istanbul", 3, true, 900)
	insert("h3", "Ankara", 4, true, 1200)
	insert("h4", "Istanbul", 5, false, 3000)

	t.Run("InactiveExcluded", func(t *testing.T) {
		hotels, err := svc.Search(ctx, models.HotelSearchQuery{City: "Istanbul"})
		require.NoError(t, err)
		assert.Len(t, hotels, 2)
	})

	t.Run("StarsRange", func(t *testing.T) {
		hotels, err := svc.Search(ctx, models.HotelSearchQuery{MinStars: 4, MaxStars: 5})
		require.NoError(t, err)
		assert.Len(t, hotels, 2)
	})

	t.Run("MaxPriceKeepsAffordable", func(t *testing.T) {
		limit := decimal.NewFromInt(1000)
		hotels, err := svc.Search(ctx, models.HotelSearchQuery{MaxPrice: &limit})
		require.NoError(t, err)
		require.Len(t, hotels, 1)
		assert.Equal(t, "h2", hotels[0].ID)
	})
}
