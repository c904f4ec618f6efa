package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// BookingAPI is everything the router needs from the booking core.
type BookingAPI interface {
	AvailabilityLister
	Reserver
	Confirmer
	Canceller
}

// NewRouter assembles the public HTTP surface.
func NewRouter(svc BookingAPI, logger *slog.Logger, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger(logger))
	r.Use(CORS(corsOrigins))

	r.Get("/health", HealthHandler)
	r.Get("/events/{eventID}/availability", HandleAvailability(svc))

	r.Group(func(r chi.Router) {
		r.Use(RequireIdentity)
		r.Post("/reservations", HandleReserve(svc))
		r.Post("/reservations/{code}/confirm", HandleConfirm(svc))
		r.Post("/reservations/{code}/cancel", HandleCancel(svc))
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	return r
}
