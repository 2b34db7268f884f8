package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"tripdesk/internal/auth"
	"tripdesk/internal/domain"
	"tripdesk/internal/models"
	"tripdesk/internal/service"
)

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Corporate Reservation System API",
		"version": s.cfg.App.Version,
		"status":  "operational",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		if err := s.pinger.PingContext(r.Context()); err != nil {
			s.logger.Error().Err(err).Msg("health check failed")
			writeError(w, http.StatusServiceUnavailable, "Service unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "database": "connected"})
}

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	CompanyID  string `json:"company_id"`
	Department string `json:"department"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		writeError(w, http.StatusBadRequest, "email, password and full_name are required")
		return
	}

	var role models.Role
	if req.Role != "" {
		parsed, err := models.ParseRole(req.Role)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		role = parsed
	}

	passwordHash, err := auth.HashPassword(req.Password, s.cfg.Auth.BcryptCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("hash password")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := s.users.Register(r.Context(), service.RegisterInput{
		Email:      req.Email,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Role:       role,
		CompanyID:  req.CompanyID,
		Department: req.Department,
	}, passwordHash)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := s.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		writeServiceError(w, err)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !user.IsActive {
		writeError(w, http.StatusForbidden, "User account is disabled")
		return
	}

	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("issue token")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer", User: user})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	user, err := s.users.Get(r.Context(), identity.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	if !identity.Role.IsCompanyAdmin() {
		writeError(w, http.StatusForbidden, "Admin access required")
		return
	}

	var in service.CompanyInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	company, err := s.companies.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, company)
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.companies.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if companies == nil {
		companies = []*models.Company{}
	}
	writeJSON(w, http.StatusOK, companies)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := s.companies.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	if !identity.Role.IsCompanyAdmin() {
		writeError(w, http.StatusForbidden, "Admin access required")
		return
	}

	var in service.CompanyInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	company, err := s.companies.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, company)
}

type hotelSearchRequest struct {
	City         string           `json:"city"`
	CheckInDate  models.Date      `json:"check_in_date"`
	CheckOutDate models.Date      `json:"check_out_date"`
	Guests       int              `json:"guests"`
	MinStars     int              `json:"min_stars"`
	MaxStars     int              `json:"max_stars"`
	MaxPrice     *decimal.Decimal `json:"max_price"`
}

func (s *Server) handleSearchHotels(w http.ResponseWriter, r *http.Request) {
	var req hotelSearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	hotels, err := s.hotels.Search(r.Context(), models.HotelSearchQuery{
		City:     req.City,
		CheckIn:  req.CheckInDate,
		CheckOut: req.CheckOutDate,
		Guests:   req.Guests,
		MinStars: req.MinStars,
		MaxStars: req.MaxStars,
		MaxPrice: req.MaxPrice,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if hotels == nil {
		hotels = []*models.Hotel{}
	}
	writeJSON(w, http.StatusOK, hotels)
}

func (s *Server) handleGetHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := s.hotels.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (s *Server) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	var in service.CreateReservationInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	reservation, err := s.reservations.Create(r.Context(), identity, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

func (s *Server) handleListReservations(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	var status models.ReservationStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := models.ParseReservationStatus(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		status = parsed
	}

	views, err := s.reservations.List(r.Context(), identity, status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if views == nil {
		views = []*models.ReservationView{}
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetReservation(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	view, err := s.reservations.Get(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	var in service.StatusUpdateInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if _, err := models.ParseReservationStatus(string(in.Status)); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := s.reservations.UpdateStatus(r.Context(), identity, chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleExportReservations(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	if !identity.Role.CanModerate() {
		writeError(w, http.StatusForbidden, "Manager access required")
		return
	}

	if s.exporter == nil {
		writeError(w, http.StatusServiceUnavailable, "Export is not configured")
		return
	}

	from, to, err := exportDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	views, err := s.reservations.List(r.Context(), identity, "")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	views = filterByCheckIn(views, from, to)

	path, err := s.exporter.Save(views)
	if err != nil {
		s.logger.Error().Err(err).Msg("export reservations")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}

// exportDateRange reads the optional from/to query parameters. Either may
// be absent, leaving that side of the range open.
func exportDateRange(r *http.Request) (models.Date, models.Date, error) {
	var from, to models.Date
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			return from, to, err
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			return from, to, err
		}
		to = parsed
	}
	return from, to, nil
}

func filterByCheckIn(views []*models.ReservationView, from, to models.Date) []*models.ReservationView {
	if from.IsZero() && to.IsZero() {
		return views
	}
	out := make([]*models.ReservationView, 0, len(views))
	for _, v := range views {
		if !from.IsZero() && v.CheckInDate.Before(from.Time) {
			continue
		}
		if !to.IsZero() && v.CheckInDate.After(to.Time) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	stats, err := s.dashboard.Stats(r.Context(), identity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	users, err := s.users.List(r.Context(), identity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}
