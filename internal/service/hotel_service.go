package service

import (
	"context"

	"github.com/rs/zerolog"

	"tripdesk/internal/domain"
	"tripdesk/internal/models"
)

// HotelService reads the hotel catalog. The catalog is external mock data
// in the current deployment; this service is deliberately thin.
type HotelService struct {
	store  domain.HotelStore
	logger *zerolog.Logger
}

func NewHotelService(store domain.HotelStore, logger *zerolog.Logger) *HotelService {
	return &HotelService{store: store, logger: logger}
}

func (s *HotelService) Get(ctx context.Context, id string) (*models.Hotel, error) {
	return s.store.GetHotel(ctx, id)
}

// Search filters the active catalog. The max-price criterion keeps hotels
// with at least one room at or under the limit.
func (s *HotelService) Search(ctx context.Context, query models.HotelSearchQuery) ([]*models.Hotel, error) {
	query.OnlyActive = true

	hotels, err := s.store.SearchHotels(ctx, query)
	if err != nil {
		return nil, err
	}

	if query.MaxPrice == nil {
		return hotels, nil
	}

	affordable := hotels[:0]
	for _, h := range hotels {
		for _, rt := range h.RoomTypes {
			if rt.PricePerNight.LessThanOrEqual(*query.MaxPrice) {
				affordable = append(affordable, h)
				break
			}
		}
	}
	return affordable, nil
}
