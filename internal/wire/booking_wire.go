package wire

import (
	"net/http"

	"flight-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, limit func(http.Handler) http.Handler) {
	r.Route("/api/booking", func(r chi.Router) {
		// POST /api/booking/create-booking - guest checkout, no account needed
		r.With(limit).Post("/create-booking", bookingHandler.CreateBooking)

		// GET /api/booking?email= - bookings of one contact, newest first
		r.Get("/", bookingHandler.GetBookingsByContact)

		r.Get("/{id}", bookingHandler.GetBookingByID)
		r.Patch("/{id}/status", bookingHandler.UpdateBookingStatus)
	})
}
