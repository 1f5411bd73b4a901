package entity

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type Traveler struct {
	BaseSimple
	BookingID  uuid.UUID  `db:"booking_id"`
	Position   int        `db:"position"` // order within the booking request
	FirstName  string     `db:"first_name"`
	LastName   string     `db:"last_name"`
	DOB        time.Time  `db:"dob"`
	Gender     Gender     `db:"gender"`
	SeatNumber *string    `db:"seat_number"`
	SeatID     *uuid.UUID `db:"seat_id"`
}
