package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"tripdesk/internal/domain"
	"tripdesk/internal/models"
)

// DashboardService computes role-scoped reservation statistics. Results
// are cached per scope for a short TTL; the projection itself never
// mutates anything.
type DashboardService struct {
	store  domain.ReservationStore
	cache  domain.StatsCache
	logger *zerolog.Logger
}

func NewDashboardService(store domain.ReservationStore, cache domain.StatsCache, logger *zerolog.Logger) *DashboardService {
	return &DashboardService{store: store, cache: cache, logger: logger}
}

func (s *DashboardService) Stats(ctx context.Context, actor models.Identity) (*models.DashboardStats, error) {
	key := statsCacheKey(actor)

	if s.cache != nil {
		cached, err := s.cache.GetStats(ctx, key)
		if err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("stats cache read error")
		} else if cached != nil {
			return cached, nil
		}
	}

	reservations, err := s.store.ListReservations(ctx, models.ScopeFilter(actor, ""))
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(reservations)

	if s.cache != nil {
		if err := s.cache.SetStats(ctx, key, stats); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("stats cache write error")
		}
	}

	return stats, nil
}

// ComputeStats is a pure projection over a reservation set. Spend counts
// only confirmed and completed reservations.
func ComputeStats(reservations []*models.Reservation) *models.DashboardStats {
	stats := &models.DashboardStats{TotalSpent: decimal.Zero}

	for _, r := range reservations {
		stats.TotalReservations++

		switch r.Status {
		case models.StatusPending:
			stats.PendingApprovals++
		case models.StatusConfirmed:
			stats.ConfirmedReservations++
		case models.StatusCancelled:
			stats.CancelledReservations++
		}

		if r.Status == models.StatusConfirmed || r.Status == models.StatusCompleted {
			stats.TotalSpent = stats.TotalSpent.Add(r.GrandTotal)
		}
	}

	return stats
}

// statsCacheKey keys the cache by visibility scope, so two managers of
// one company share an entry.
func statsCacheKey(actor models.Identity) string {
	filter := models.ScopeFilter(actor, "")
	switch {
	case filter.UserID != "":
		return "dashboard_stats:user:" + filter.UserID
	case filter.CompanyID != "":
		return "dashboard_stats:company:" + filter.CompanyID
	default:
		return "dashboard_stats:all"
	}
}
