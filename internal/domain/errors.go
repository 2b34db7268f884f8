package domain

import "errors"

// Store sentinels. Wrapped with %w by implementations so callers can use
// errors.Is regardless of the backing store.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrHotelNotFound       = errors.New("hotel not found")
	ErrRoomTypeNotFound    = errors.New("room type not found")
	ErrReservationNotFound = errors.New("reservation not found")
)
