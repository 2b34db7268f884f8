package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type HotelAmenity struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

type RoomType struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Capacity       int             `json:"capacity"`
	PricePerNight  decimal.Decimal `json:"price_per_night"`
	AvailableRooms int             `json:"available_rooms"`
}

type Hotel struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	City               string          `json:"city"`
	District           string          `json:"district,omitempty"`
	Address            string          `json:"address"`
	Stars              int             `json:"stars"`
	Description        string          `json:"description,omitempty"`
	Amenities          []HotelAmenity  `json:"amenities"`
	RoomTypes          []RoomType      `json:"room_types"`
	Images             []string        `json:"images"`
	TripadvisorRating  decimal.Decimal `json:"tripadvisor_rating,omitempty"`
	Phone              string          `json:"phone,omitempty"`
	Email              string          `json:"email,omitempty"`
	CancellationPolicy string          `json:"cancellation_policy,omitempty"`
	IsActive           bool            `json:"is_active"`
	CreatedAt          time.Time       `json:"created_at"`
}

// RoomTypeByID finds a room type on the hotel's catalog entry.
func (h *Hotel) RoomTypeByID(id string) (RoomType, bool) {
	for _, rt := range h.RoomTypes {
		if rt.ID == id {
			return rt, true
		}
	}
	return RoomType{}, false
}

// HotelSearchQuery filters the hotel catalog.
type HotelSearchQuery struct {
	City        string
	CheckIn     Date
	CheckOut    Date
	Guests      int
	MinStars    int
	MaxStars    int
	MaxPrice    *decimal.Decimal
	OnlyActive  bool
}
