package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tripdesk/internal/domain"
	"tripdesk/internal/models"
)

const reservationColumns = `id, service_type, user_id, company_id, hotel_id, hotel_name,
    room_type_id, room_type_name, check_in_date, check_out_date, guests, special_requests,
    nights, price_per_night, total_price, service_fee, grand_total,
    status, requires_approval, approved_by, approved_at, rejection_reason,
    cancelled_at, cancellation_reason, created_at, updated_at`

func (d *DB) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
	reservation, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrReservationNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return reservation, nil
}

func (d *DB) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1`
	args := []any{}

	if filter.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, filter.UserID)
	}
	if filter.CompanyID != "" {
		query += ` AND company_id = ?`
		args = append(args, filter.CompanyID)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, reservation)
	}
	return reservations, rows.Err()
}

func (d *DB) InsertReservation(ctx context.Context, r *models.Reservation) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO reservations (`+reservationColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, string(r.ServiceType), r.UserID, r.CompanyID, r.HotelID, r.HotelName,
		r.RoomTypeID, r.RoomTypeName, r.CheckInDate.String(), r.CheckOutDate.String(),
		r.Guests, r.SpecialRequests,
		r.Nights, r.PricePerNight.String(), r.TotalPrice.String(), r.ServiceFee.String(), r.GrandTotal.String(),
		string(r.Status), r.RequiresApproval, r.ApprovedBy, nullableTime(r.ApprovedAt), r.RejectionReason,
		nullableTime(r.CancelledAt), r.CancellationReason, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

func (d *DB) UpdateReservation(ctx context.Context, r *models.Reservation) error {
	result, err := d.db.ExecContext(ctx,
		`UPDATE reservations SET status = ?, requires_approval = ?, approved_by = ?, approved_at = ?,
            rejection_reason = ?, cancelled_at = ?, cancellation_reason = ?, updated_at = ?
         WHERE id = ?`,
		string(r.Status), r.RequiresApproval, r.ApprovedBy, nullableTime(r.ApprovedAt),
		r.RejectionReason, nullableTime(r.CancelledAt), r.CancellationReason, r.UpdatedAt, r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrReservationNotFound, r.ID)
	}
	return nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func scanReservation(row rowScanner) (*models.Reservation, error) {
	var r models.Reservation
	var serviceType, status, checkIn, checkOut string
	var pricePerNight, totalPrice, serviceFee, grandTotal string
	var companyID, specialRequests, approvedBy, rejectionReason, cancellationReason sql.NullString
	var approvedAt, cancelledAt sql.NullTime

	err := row.Scan(&r.ID, &serviceType, &r.UserID, &companyID, &r.HotelID, &r.HotelName,
		&r.RoomTypeID, &r.RoomTypeName, &checkIn, &checkOut, &r.Guests, &specialRequests,
		&r.Nights, &pricePerNight, &totalPrice, &serviceFee, &grandTotal,
		&status, &r.RequiresApproval, &approvedBy, &approvedAt, &rejectionReason,
		&cancelledAt, &cancellationReason, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}

	r.ServiceType = models.ServiceType(serviceType)
	r.Status = models.ReservationStatus(status)
	r.CompanyID = companyID.String
	r.SpecialRequests = specialRequests.String
	r.ApprovedBy = approvedBy.String
	r.RejectionReason = rejectionReason.String
	r.CancellationReason = cancellationReason.String

	if approvedAt.Valid {
		t := approvedAt.Time
		r.ApprovedAt = &t
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		r.CancelledAt = &t
	}

	if r.CheckInDate, err = models.ParseDate(checkIn); err != nil {
		return nil, err
	}
	if r.CheckOutDate, err = models.ParseDate(checkOut); err != nil {
		return nil, err
	}

	if r.PricePerNight, err = decimal.NewFromString(pricePerNight); err != nil {
		return nil, fmt.Errorf("failed to parse price_per_night: %w", err)
	}
	if r.TotalPrice, err = decimal.NewFromString(totalPrice); err != nil {
		return nil, fmt.Errorf("failed to parse total_price: %w", err)
	}
	if r.ServiceFee, err = decimal.NewFromString(serviceFee); err != nil {
		return nil, fmt.Errorf("failed to parse service_fee: %w", err)
	}
	if r.GrandTotal, err = decimal.NewFromString(grandTotal); err != nil {
		return nil, fmt.Errorf("failed to parse grand_total: %w", err)
	}
	return &r, nil
}
