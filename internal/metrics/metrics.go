package metrics

import (
	"encoding/json"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"tripdesk/internal/events"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tripdesk",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status code.",
		},
		[]string{"endpoint", "status"},
	)

	reservationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tripdesk",
			Name:      "reservations_created_total",
			Help:      "Reservations created by initial status.",
		},
		[]string{"status"},
	)

	statusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tripdesk",
			Name:      "reservation_transitions_total",
			Help:      "Reservation lifecycle transitions by event type.",
		},
		[]string{"event"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, reservationsCreated, statusTransitions)
	})
}

// IncHTTP increments the request counter for an endpoint and status label.
func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

// ObserveBus subscribes the reservation counters to the event bus.
func ObserveBus(bus *events.EventBus) {
	bus.Subscribe(events.EventReservationCreated, func(event *events.Event) error {
		var payload events.ReservationEventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return err
		}
		reservationsCreated.WithLabelValues(payload.Status).Inc()
		return nil
	})

	for _, eventType := range []string{
		events.EventReservationApproved,
		events.EventReservationRejected,
		events.EventReservationCancelled,
		events.EventReservationCompleted,
	} {
		et := eventType
		bus.Subscribe(et, func(*events.Event) error {
			statusTransitions.WithLabelValues(et).Inc()
			return nil
		})
	}
}
