package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	Base
	FlightID  string        `db:"flight_id"`
	ContactID uuid.UUID     `db:"contact_id"`
	Status    BookingStatus `db:"status"`

	// loaded on read
	Contact   *Contact
	Travelers []*Traveler
	Payments  []*Payment
}
