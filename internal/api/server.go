package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"tripdesk/internal/auth"
	"tripdesk/internal/config"
	"tripdesk/internal/export"
	"tripdesk/internal/service"
)

// Pinger reports backing-store liveness for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps carries everything the HTTP layer needs. Nil Exporter disables
// the export endpoint; nil Pinger makes health checks trivially pass.
type Deps struct {
	Config       *config.Config
	Logger       *zerolog.Logger
	Users        *service.UserService
	Companies    *service.CompanyService
	Hotels       *service.HotelService
	Reservations *service.ReservationService
	Dashboard    *service.DashboardService
	Tokens       *auth.TokenManager
	Exporter     *export.Exporter
	Pinger       Pinger
}

// Server is the public HTTP API of the reservation workflow engine.
type Server struct {
	cfg          *config.Config
	logger       *zerolog.Logger
	users        *service.UserService
	companies    *service.CompanyService
	hotels       *service.HotelService
	reservations *service.ReservationService
	dashboard    *service.DashboardService
	tokens       *auth.TokenManager
	exporter     *export.Exporter
	pinger       Pinger
	server       *http.Server
}

func NewServer(deps Deps) *Server {
	s := &Server{
		cfg:          deps.Config,
		logger:       deps.Logger,
		users:        deps.Users,
		companies:    deps.Companies,
		hotels:       deps.Hotels,
		reservations: deps.Reservations,
		dashboard:    deps.Dashboard,
		tokens:       deps.Tokens,
		exporter:     deps.Exporter,
		pinger:       deps.Pinger,
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.HTTP.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: time.Duration(deps.Config.HTTP.ReadHeaderSecs) * time.Second,
		WriteTimeout:      time.Duration(deps.Config.HTTP.WriteSecs) * time.Second,
	}

	return s
}

// Routes builds the router. Exposed separately so tests can drive the
// handler stack without a listening socket.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger(s.logger))
	r.Use(rateLimit(s.cfg.HTTP.RateLimit))

	if s.cfg.Monitoring.PrometheusEnabled {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.handleRoot)
		r.Get("/health", s.handleHealth)

		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/auth/me", s.handleMe)

			r.Post("/companies", s.handleCreateCompany)
			r.Get("/companies", s.handleListCompanies)
			r.Get("/companies/{id}", s.handleGetCompany)
			r.Put("/companies/{id}", s.handleUpdateCompany)

			r.Post("/hotels/search", s.handleSearchHotels)
			r.Get("/hotels/{id}", s.handleGetHotel)

			r.Post("/reservations", s.handleCreateReservation)
			r.Get("/reservations", s.handleListReservations)
			r.Get("/reservations/export", s.handleExportReservations)
			r.Get("/reservations/{id}", s.handleGetReservation)
			r.Put("/reservations/{id}", s.handleUpdateReservationStatus)

			r.Get("/dashboard/stats", s.handleDashboardStats)
			r.Get("/users", s.handleListUsers)
		})
	})

	return r
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
