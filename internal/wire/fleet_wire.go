package wire

import (
	"flight-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFleet(r chi.Router, fleetHandler *adaptor.FleetHandler) {
	r.Route("/api/airplane", func(r chi.Router) {
		r.Get("/", fleetHandler.ListAirplanes)
		r.Post("/", fleetHandler.CreateAirplane)
		r.Get("/{id}", fleetHandler.GetAirplane)
	})

	r.Route("/api/airport", func(r chi.Router) {
		r.Get("/", fleetHandler.ListAirports)
		r.Post("/", fleetHandler.CreateAirport)
		r.Get("/{id}", fleetHandler.GetAirport)
	})
}
