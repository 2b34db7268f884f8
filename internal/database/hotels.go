package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"tripdesk/internal/domain"
	"tripdesk/internal/models"
)

const hotelColumns = `id, name, city, district, address, stars, description, amenities, room_types, images, tripadvisor_rating, phone, email, cancellation_policy, is_active, created_at`

func (d *DB) GetHotel(ctx context.Context, id string) (*models.Hotel, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id = ?`, id)
	hotel, err := scanHotel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrHotelNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}
	return hotel, nil
}

func (d *DB) SearchHotels(ctx context.Context, query models.HotelSearchQuery) ([]*models.Hotel, error) {
	sqlQuery := `SELECT ` + hotelColumns + ` FROM hotels WHERE 1=1`
	args := []any{}

	if query.OnlyActive {
		sqlQuery += ` AND is_active = 1`
	}
	if query.City != "" {
		sqlQuery += ` AND city LIKE '%' || ? || '%' COLLATE NOCASE`
		args = append(args, query.City)
	}
	if query.MinStars > 0 {
		sqlQuery += ` AND stars >= ?`
		args = append(args, query.MinStars)
	}
	if query.MaxStars > 0 {
		sqlQuery += ` AND stars <= ?`
		args = append(args, query.MaxStars)
	}
	sqlQuery += ` ORDER BY stars DESC, name`

	rows, err := d.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search hotels: %w", err)
	}
	defer rows.Close()

	var hotels []*models.Hotel
	for rows.Next() {
		hotel, err := scanHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, hotel)
	}
	return hotels, rows.Err()
}

func (d *DB) InsertHotel(ctx context.Context, hotel *models.Hotel) error {
	amenities, err := json.Marshal(hotel.Amenities)
	if err != nil {
		return fmt.Errorf("failed to marshal amenities: %w", err)
	}
	roomTypes, err := json.Marshal(hotel.RoomTypes)
	if err != nil {
		return fmt.Errorf("failed to marshal room types: %w", err)
	}
	images, err := json.Marshal(hotel.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal images: %w", err)
	}

	_, err = d.db.ExecContext(ctx,
		`INSERT INTO hotels (`+hotelColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		hotel.ID, hotel.Name, hotel.City, hotel.District, hotel.Address, hotel.Stars,
		hotel.Description, amenities, roomTypes, images, hotel.TripadvisorRating.String(),
		hotel.Phone, hotel.Email, hotel.CancellationPolicy, hotel.IsActive, hotel.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert hotel: %w", err)
	}
	return nil
}

func (d *DB) CountHotels(ctx context.Context) (int, error) {
	var count int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hotels`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count hotels: %w", err)
	}
	return count, nil
}

func scanHotel(row rowScanner) (*models.Hotel, error) {
	var hotel models.Hotel
	var district, description, rating, phone, email, cancellation sql.NullString
	var amenities, roomTypes, images []byte

	err := row.Scan(&hotel.ID, &hotel.Name, &hotel.City, &district, &hotel.Address,
		&hotel.Stars, &description, &amenities, &roomTypes, &images, &rating,
		&phone, &email, &cancellation, &hotel.IsActive, &hotel.CreatedAt)
	if err != nil {
		return nil, err
	}

	hotel.District = district.String
	hotel.Description = description.String
	hotel.Phone = phone.String
	hotel.Email = email.String
	hotel.CancellationPolicy = cancellation.String

	if rating.Valid && rating.String != "" {
		parsed, err := decimal.NewFromString(rating.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse tripadvisor rating: %w", err)
		}
		hotel.TripadvisorRating = parsed
	}

	if err := json.Unmarshal(amenities, &hotel.Amenities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal amenities: %w", err)
	}
	if err := json.Unmarshal(roomTypes, &hotel.RoomTypes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room types: %w", err)
	}
	if err := json.Unmarshal(images, &hotel.Images); err != nil {
		return nil, fmt.Errorf("failed to unmarshal images: %w", err)
	}
	return &hotel, nil
}
