// Package event defines the messages put on the notifications queue.
package event

import (
	"time"

	"flight-booking/internal/data/entity"
)

type Type string

const (
	BookingCreated       Type = "BOOKING_CREATED"
	BookingStatusChanged Type = "BOOKING_STATUS_CHANGED"
)

type BookingEvent struct {
	Type      Type           `json:"type"`
	Booking   BookingPayload `json:"booking"`
	Contact   ContactPayload `json:"contact"`
	Timestamp time.Time      `json:"timestamp"`
}

type BookingPayload struct {
	ID          string            `json:"id"`
	Status      string            `json:"status"`
	Travelers   []TravelerPayload `json:"travelers"`
	Flight      *FlightPayload    `json:"flight"`
	BookingTime *time.Time        `json:"bookingTime,omitempty"`
	UpdateTime  *time.Time        `json:"updateTime,omitempty"`
}

type TravelerPayload struct {
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	SeatNumber *string `json:"seatNumber,omitempty"`
}

// FlightPayload is the flight snapshot taken when the event is built.
type FlightPayload struct {
	ID            string    `json:"id"`
	Origin        string    `json:"origin,omitempty"`
	Destination   string    `json:"destination,omitempty"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
}

type ContactPayload struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// NewBookingEvent builds the payload from a booking with its contact and
// travelers loaded. flight may be nil when the snapshot could not be read.
func NewBookingEvent(t Type, b *entity.Booking, flight *entity.FlightDetail, now time.Time) BookingEvent {
	ev := BookingEvent{
		Type: t,
		Booking: BookingPayload{
			ID:        b.ID.String(),
			Status:    string(b.Status),
			Travelers: make([]TravelerPayload, 0, len(b.Travelers)),
		},
		Timestamp: now.UTC(),
	}

	for _, tr := range b.Travelers {
		ev.Booking.Travelers = append(ev.Booking.Travelers, TravelerPayload{
			FirstName:  tr.FirstName,
			LastName:   tr.LastName,
			SeatNumber: tr.SeatNumber,
		})
	}

	if flight != nil {
		ev.Booking.Flight = &FlightPayload{
			ID:            flight.ID,
			Origin:        flight.Origin.Code,
			Destination:   flight.Destination.Code,
			DepartureTime: flight.DepartureTime,
			ArrivalTime:   flight.ArrivalTime,
		}
	}

	if b.Contact != nil {
		ev.Contact = ContactPayload{Email: b.Contact.Email, Phone: b.Contact.Phone}
	}

	switch t {
	case BookingCreated:
		created := b.CreatedAt
		ev.Booking.BookingTime = &created
	case BookingStatusChanged:
		updated := b.UpdatedAt
		ev.Booking.UpdateTime = &updated
	}

	return ev
}
