package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tripdesk/internal/domain"
	"tripdesk/internal/events"
	"tripdesk/internal/models"
	"tripdesk/internal/pricing"
)

// allowedTransitions is the closed lifecycle relation. "approved" is a
// transient event target: accepting it stamps approval metadata and lands
// the reservation on "confirmed".
var allowedTransitions = map[models.ReservationStatus]map[models.ReservationStatus]bool{
	models.StatusPending: {
		models.StatusApproved:  true,
		models.StatusRejected:  true,
		models.StatusCancelled: true,
	},
	models.StatusConfirmed: {
		models.StatusCancelled: true,
		models.StatusCompleted: true,
	},
}

func canTransition(from, to models.ReservationStatus) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// ReservationService owns the pricing pipeline and the status lifecycle.
// It is stateless between calls; all shared state lives in the store.
//
// Known gap carried over from the existing booking policy: creating a
// reservation never decrements the room type's available_rooms, so there
// is no overbooking protection. Concurrent updates to one reservation are
// last-write-wins.
type ReservationService struct {
	store    domain.Store
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewReservationService(store domain.Store, eventBus domain.EventPublisher, logger *zerolog.Logger) *ReservationService {
	return &ReservationService{store: store, eventBus: eventBus, logger: logger}
}

type CreateReservationInput struct {
	HotelID         string      `json:"hotel_id"`
	RoomTypeID      string      `json:"room_type_id"`
	CheckInDate     models.Date `json:"check_in_date"`
	CheckOutDate    models.Date `json:"check_out_date"`
	Guests          int         `json:"guests"`
	SpecialRequests string      `json:"special_requests"`
}

// Create prices a booking request, evaluates the company's approval
// policy and persists the reservation in one write.
func (s *ReservationService) Create(ctx context.Context, actor models.Identity, in CreateReservationInput) (*models.Reservation, error) {
	hotel, err := s.store.GetHotel(ctx, in.HotelID)
	if err != nil {
		return nil, err
	}

	room, ok := hotel.RoomTypeByID(in.RoomTypeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRoomTypeNotFound, in.RoomTypeID)
	}

	// A missing company record prices with zero fee and falls back to
	// mandatory approval.
	var company *models.Company
	if actor.CompanyID != "" {
		company, err = s.store.GetCompany(ctx, actor.CompanyID)
		if err != nil && !isNotFound(err) {
			return nil, err
		}
	}

	breakdown, err := pricing.PriceReservation(company, room, in.CheckInDate, in.CheckOutDate)
	if err != nil {
		return nil, err
	}

	requiresApproval := pricing.RequiresApproval(company)
	now := time.Now().UTC()

	reservation := &models.Reservation{
		ID:               uuid.NewString(),
		ServiceType:      models.ServiceHotel,
		UserID:           actor.ID,
		CompanyID:        actor.CompanyID,
		HotelID:          hotel.ID,
		HotelName:        hotel.Name,
		RoomTypeID:       room.ID,
		RoomTypeName:     room.Name,
		CheckInDate:      in.CheckInDate,
		CheckOutDate:     in.CheckOutDate,
		Guests:           in.Guests,
		SpecialRequests:  in.SpecialRequests,
		Nights:           breakdown.Nights,
		PricePerNight:    breakdown.PricePerNight,
		TotalPrice:       breakdown.TotalPrice,
		ServiceFee:       breakdown.ServiceFee,
		GrandTotal:       breakdown.GrandTotal,
		Status:           pricing.InitialStatus(requiresApproval),
		RequiresApproval: requiresApproval,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.store.InsertReservation(ctx, reservation); err != nil {
		return nil, err
	}

	s.publishEvent(events.EventReservationCreated, reservation, actor.ID)
	s.logger.Info().
		Str("reservation_id", reservation.ID).
		Str("user_id", actor.ID).
		Str("status", string(reservation.Status)).
		Str("grand_total", reservation.GrandTotal.String()).
		Msg("reservation created")

	return reservation, nil
}

type StatusUpdateInput struct {
	Status             models.ReservationStatus `json:"status"`
	RejectionReason    string                   `json:"rejection_reason"`
	CancellationReason string                   `json:"cancellation_reason"`
}

// UpdateStatus drives a reservation through one lifecycle transition and
// returns the enriched view read back after the write.
func (s *ReservationService) UpdateStatus(ctx context.Context, actor models.Identity, reservationID string, in StatusUpdateInput) (*models.ReservationView, error) {
	reservation, err := s.store.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	// Approve and reject are moderator-only; cancellation has no role
	// restriction, and completion is an external post-stay signal.
	if (in.Status == models.StatusApproved || in.Status == models.StatusRejected) && !actor.Role.CanModerate() {
		return nil, fmt.Errorf("%w: only managers and admins may %s reservations", ErrAccessDenied, in.Status)
	}

	if !canTransition(reservation.Status, in.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, reservation.Status, in.Status)
	}

	now := time.Now().UTC()
	eventType := ""

	switch in.Status {
	case models.StatusApproved:
		reservation.Status = models.StatusConfirmed
		reservation.ApprovedBy = actor.ID
		reservation.ApprovedAt = &now
		eventType = events.EventReservationApproved
	case models.StatusRejected:
		reservation.Status = models.StatusRejected
		reservation.RejectionReason = in.RejectionReason
		eventType = events.EventReservationRejected
	case models.StatusCancelled:
		reservation.Status = models.StatusCancelled
		reservation.CancelledAt = &now
		reservation.CancellationReason = in.CancellationReason
		eventType = events.EventReservationCancelled
	case models.StatusCompleted:
		reservation.Status = models.StatusCompleted
		eventType = events.EventReservationCompleted
	}

	reservation.UpdatedAt = now
	if err := s.store.UpdateReservation(ctx, reservation); err != nil {
		return nil, err
	}

	s.publishEvent(eventType, reservation, actor.ID)
	s.logger.Info().
		Str("reservation_id", reservation.ID).
		Str("actor_id", actor.ID).
		Str("status", string(reservation.Status)).
		Msg("reservation status updated")

	return s.enrich(ctx, reservation), nil
}

// Get returns one reservation. Employees may only read their own.
func (s *ReservationService) Get(ctx context.Context, actor models.Identity, reservationID string) (*models.ReservationView, error) {
	reservation, err := s.store.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleEmployee && reservation.UserID != actor.ID {
		return nil, fmt.Errorf("%w: reservation belongs to another user", ErrAccessDenied)
	}
	return s.enrich(ctx, reservation), nil
}

// List returns the reservations visible to the caller, optionally
// narrowed to one status.
func (s *ReservationService) List(ctx context.Context, actor models.Identity, status models.ReservationStatus) ([]*models.ReservationView, error) {
	reservations, err := s.store.ListReservations(ctx, models.ScopeFilter(actor, status))
	if err != nil {
		return nil, err
	}

	views := make([]*models.ReservationView, 0, len(reservations))
	users := map[string]*models.User{}
	companies := map[string]*models.Company{}

	for _, r := range reservations {
		view := &models.ReservationView{Reservation: *r}

		user, ok := users[r.UserID]
		if !ok {
			user, _ = s.store.GetUser(ctx, r.UserID)
			users[r.UserID] = user
		}
		if user != nil {
			view.UserName = user.FullName
			view.UserEmail = user.Email
		}

		if r.CompanyID != "" {
			company, ok := companies[r.CompanyID]
			if !ok {
				company, _ = s.store.GetCompany(ctx, r.CompanyID)
				companies[r.CompanyID] = company
			}
			if company != nil {
				view.CompanyName = company.Name
			}
		}

		views = append(views, view)
	}

	return views, nil
}

// enrich joins display fields. Lookup failures leave the fields empty
// rather than failing the read.
func (s *ReservationService) enrich(ctx context.Context, r *models.Reservation) *models.ReservationView {
	view := &models.ReservationView{Reservation: *r}

	if user, err := s.store.GetUser(ctx, r.UserID); err == nil {
		view.UserName = user.FullName
		view.UserEmail = user.Email
	}
	if r.CompanyID != "" {
		if company, err := s.store.GetCompany(ctx, r.CompanyID); err == nil {
			view.CompanyName = company.Name
		}
	}

	return view
}

func (s *ReservationService) publishEvent(eventType string, r *models.Reservation, actorID string) {
	if s.eventBus == nil || eventType == "" {
		return
	}

	payload := events.ReservationEventPayload{
		ReservationID: r.ID,
		UserID:        r.UserID,
		CompanyID:     r.CompanyID,
		HotelName:     r.HotelName,
		Status:        string(r.Status),
		GrandTotal:    r.GrandTotal.String(),
		ChangedBy:     actorID,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("reservation_id", r.ID).Msg("publish event error")
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrCompanyNotFound)
}
