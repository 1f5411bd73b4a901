package wire

import (
	"net/http"

	"flight-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFlight(r chi.Router, flightHandler *adaptor.FlightHandler, limit func(http.Handler) http.Handler) {
	r.Route("/api/flight", func(r chi.Router) {
		r.Get("/", flightHandler.ListFlights)
		r.Post("/create", flightHandler.CreateFlight)

		// seat inventory writes
		r.With(limit).Post("/reserve-seat", flightHandler.ReserveSeats)
		r.With(limit).Post("/release-seat", flightHandler.ReleaseSeats)

		r.Get("/{id}", flightHandler.GetFlight)
		r.Get("/{id}/seats", flightHandler.GetSeatMap)
		r.Put("/{id}", flightHandler.UpdateFlight)
		r.Delete("/{id}", flightHandler.DeleteFlight)
	})
}
