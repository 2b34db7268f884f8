package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk/internal/auth"
	"tripdesk/internal/config"
	"tripdesk/internal/events"
	"tripdesk/internal/export"
	"tripdesk/internal/models"
	"tripdesk/internal/repository"
	"tripdesk/internal/service"
)

type testServer struct {
	handler http.Handler
	store   *repository.MemoryStore
	tokens  *auth.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		App:      config.AppConfig{Name: "tripdesk", Environment: "test", Version: "1.0.0"},
		Database: config.DatabaseConfig{Path: "unused"},
		Auth:     config.AuthConfig{JWTSecret: "test-secret", TokenTTLHrs: 1, BcryptCost: 4},
		HTTP:     config.HTTPConfig{Port: 0},
		Exports:  config.ExportConfig{Path: t.TempDir()},
	}

	logger := zerolog.Nop()
	store := repository.NewMemoryStore()
	bus := events.NewEventBus()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Hour)

	server := NewServer(Deps{
		Config:       cfg,
		Logger:       &logger,
		Users:        service.NewUserService(store, &logger),
		Companies:    service.NewCompanyService(store, &logger),
		Hotels:       service.NewHotelService(store, &logger),
		Reservations: service.NewReservationService(store, bus, &logger),
		Dashboard:    service.NewDashboardService(store, nil, &logger),
		Tokens:       tokens,
		Exporter:     export.NewExporter(cfg.Exports.Path, &logger),
	})

	ts := &testServer{handler: server.Routes(), store: store, tokens: tokens}
	ts.seedCatalog(t)
	return ts
}

func (ts *testServer) seedCatalog(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, ts.store.InsertCompany(ctx, &models.Company{
		ID: "c1", Name: "Acme Travel",
		ServiceFees: models.ServiceFeeTable{
			models.ServiceHotel: {Kind: models.FeeFixed, Value: decimal.NewFromInt(50), Currency: models.CurrencyTRY},
		},
		BookingRules: models.BookingRules{HotelMaxStars: 5, RequiresManagerApproval: true},
		IsActive:     true, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, ts.store.InsertHotel(ctx, &models.Hotel{
		ID: "h1", Name: "Grand Bosphorus", City: "Istanbul", Stars: 5,
		RoomTypes: []models.RoomType{
			{ID: "rt1", Name: "Standard", Capacity: 2, PricePerNight: decimal.NewFromInt(3500), AvailableRooms: 10},
		},
		IsActive: true, CreatedAt: now,
	}))
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out), "body: %s", rec.Body.String())
	return out
}

// registerAndLogin creates a user over the API and returns its token.
func (ts *testServer) registerAndLogin(t *testing.T, email, role, companyID string) string {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "s3cret", "full_name": "Test " + role,
		"role": role, "company_id": companyID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	token := decodeBody[map[string]any](t, rec)
	return token["access_token"].(string)
}

func bookingBody() map[string]any {
	return map[string]any{
		"hotel_id":       "h1",
		"room_type_id":   "rt1",
		"check_in_date":  "2025-07-01",
		"check_out_date": "2025-07-04",
		"guests":         2,
	}
}

func TestAPI_AuthFlow(t *testing.T) {
	ts := newTestServer(t)

	t.Run("RegisterLoginMe", func(t *testing.T) {
		token := ts.registerAndLogin(t, "ada@corp.example", "employee", "c1")

		rec := ts.do(t, http.MethodGet, "/api/auth/me", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		me := decodeBody[models.User](t, rec)
		assert.Equal(t, "ada@corp.example", me.Email)
		assert.Equal(t, models.RoleEmployee, me.Role)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"email": "ada@corp.example", "password": "x", "full_name": "Dup",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "ada@corp.example", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeBody[map[string]string](t, rec)
		assert.Equal(t, "Invalid email or password", body["detail"])
	})

	t.Run("UnknownRole", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"email": "x@corp.example", "password": "x", "full_name": "X", "role": "superuser",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MissingToken", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/auth/me", "not.a.token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAPI_ReservationLifecycle(t *testing.T) {
	ts := newTestServer(t)
	employee := ts.registerAndLogin(t, "emp@acme.example", "employee", "c1")
	manager := ts.registerAndLogin(t, "mgr@acme.example", "manager", "c1")

	rec := ts.do(t, http.MethodPost, "/api/reservations", employee, bookingBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[map[string]any](t, rec)
	reservationID := created["id"].(string)

	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, float64(3), created["nights"])
	assert.Equal(t, "10500", created["total_price"])
	assert.Equal(t, "50", created["service_fee"])
	assert.Equal(t, "10550", created["grand_total"])

	t.Run("EmployeeCannotApprove", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, "/api/reservations/"+reservationID, employee, map[string]string{"status": "approved"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("ManagerApproves", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, "/api/reservations/"+reservationID, manager, map[string]string{"status": "approved"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		view := decodeBody[map[string]any](t, rec)
		assert.Equal(t, "confirmed", view["status"])
		assert.NotEmpty(t, view["approved_by"])
	})

	t.Run("IllegalTransition", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, "/api/reservations/"+reservationID, manager, map[string]string{"status": "approved"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, "/api/reservations/"+reservationID, manager, map[string]string{"status": "archived"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownHotel", func(t *testing.T) {
		body := bookingBody()
		body["hotel_id"] = "ghost"
		rec := ts.do(t, http.MethodPost, "/api/reservations", employee, body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("InvalidDateRange", func(t *testing.T) {
		body := bookingBody()
		body["check_out_date"] = "2025-07-01"
		rec := ts.do(t, http.MethodPost, "/api/reservations", employee, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ListWithStatusFilter", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/reservations?status=confirmed", manager, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		views := decodeBody[[]map[string]any](t, rec)
		require.Len(t, views, 1)
		assert.Equal(t, reservationID, views[0]["id"])
	})

	t.Run("InvalidStatusFilter", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/reservations?status=bogus", manager, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ForeignReservationDenied", func(t *testing.T) {
		outsider := ts.registerAndLogin(t, "other@corp.example", "employee", "")
		rec := ts.do(t, http.MethodGet, "/api/reservations/"+reservationID, outsider, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Export", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/reservations/export", manager, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
		assert.NotZero(t, rec.Body.Len())
	})

	t.Run("ExportWithDateRange", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/reservations/export?from=2025-06-01&to=2025-07-31", manager, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotZero(t, rec.Body.Len())
	})

	t.Run("ExportBadDate", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/reservations/export?from=yesterday", manager, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ExportForbiddenForEmployee", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/reservations/export", employee, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestAPI_HotelsAndCompanies(t *testing.T) {
	ts := newTestServer(t)
	employee := ts.registerAndLogin(t, "emp@acme.example", "employee", "c1")
	admin := ts.registerAndLogin(t, "admin@acme.example", "admin", "")

	t.Run("SearchHotels", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/hotels/search", employee, map[string]any{
			"city": "istanbul", "check_in_date": "2025-07-01", "check_out_date": "2025-07-04", "guests": 2,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		hotels := decodeBody[[]map[string]any](t, rec)
		require.Len(t, hotels, 1)
		assert.Equal(t, "Grand Bosphorus", hotels[0]["name"])
	})

	t.Run("SearchNoMatch", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/hotels/search", employee, map[string]any{
			"city": "paris", "check_in_date": "2025-07-01", "check_out_date": "2025-07-04",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("GetHotel", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/hotels/h1", employee, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("GetHotelNotFound", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/hotels/ghost", employee, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeBody[map[string]string](t, rec)
		assert.Contains(t, body["detail"], "hotel not found")
	})

	t.Run("CreateCompanyRequiresAdmin", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/companies", employee, map[string]any{"name": "New Corp"})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = ts.do(t, http.MethodPost, "/api/companies", admin, map[string]any{"name": "New Corp"})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		company := decodeBody[map[string]any](t, rec)
		assert.NotEmpty(t, company["id"])
	})

	t.Run("UpdateCompanyPolicies", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, "/api/companies/c1", admin, map[string]any{
			"name": "Acme Travel",
			"service_fees": map[string]any{
				"hotel": map[string]any{"type": "percentage", "value": "7.5", "currency": "TRY"},
			},
			"booking_rules": map[string]any{"hotel_max_stars": 4, "requires_manager_approval": false},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})
}

func TestAPI_DashboardAndUsers(t *testing.T) {
	ts := newTestServer(t)
	employee := ts.registerAndLogin(t, "emp@acme.example", "employee", "c1")
	manager := ts.registerAndLogin(t, "mgr@acme.example", "manager", "c1")

	rec := ts.do(t, http.MethodPost, "/api/reservations", employee, bookingBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("Stats", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/dashboard/stats", manager, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		stats := decodeBody[map[string]any](t, rec)
		assert.Equal(t, float64(1), stats["total_reservations"])
		assert.Equal(t, float64(1), stats["pending_approvals"])
		assert.Equal(t, "0", stats["total_spent"])
	})

	t.Run("UsersForbiddenForEmployee", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/users", employee, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("UsersForManager", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/users", manager, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		users := decodeBody[[]map[string]any](t, rec)
		assert.Len(t, users, 2)
	})
}

func TestAPI_HealthAndRoot(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "healthy", body["status"])

	rec = ts.do(t, http.MethodGet, "/api/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_RateLimit(t *testing.T) {
	cfg := config.RateLimitConfig{RPS: 1, Burst: 2}
	limited := rateLimit(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := map[int]int{}
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		codes[rec.Code]++
	}

	assert.Equal(t, 2, codes[http.StatusOK], fmt.Sprintf("codes: %v", codes))
	assert.Equal(t, 3, codes[http.StatusTooManyRequests])
}
