package usecase

import (
	"errors"
	"fmt"

	"flight-booking/internal/client"
	"flight-booking/internal/seatmap"
	"flight-booking/pkg/utils"
)

var (
	ErrAirplaneNotFound  = errors.New("airplane not found")
	ErrAirportNotFound   = errors.New("airport not found")
	ErrAirportExists     = errors.New("airport code already registered")
	ErrFlightNotFound    = errors.New("flight not found")
	ErrFlightHasBookings = errors.New("flight has bookings and cannot be deleted")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidSchedule   = errors.New("arrival time must be after departure time")
	ErrDuplicateSeat     = errors.New("seat requested more than once")

	ErrInvalidSeatCount = seatmap.ErrInvalidSeatCount
	ErrInvalidFormat    = seatmap.ErrInvalidFormat

	ErrSeatReservationUnreachable = client.ErrSeatReservationUnreachable
)

type SeatReservationRejectedError = client.SeatReservationRejectedError

// SeatUnavailableError reports the first seat whose conditional update
// affected no row. Nothing in the batch was changed.
type SeatUnavailableError struct {
	FlightID string
	Label    string
	Release  bool
}

func (e *SeatUnavailableError) Error() string {
	if e.Release {
		return fmt.Sprintf("seat %s is not booked on flight %s, the whole batch was rolled back", e.Label, e.FlightID)
	}
	return fmt.Sprintf("seat %s is not available on flight %s, the whole batch was rolled back", e.Label, e.FlightID)
}

// SeatNotReservedError is returned when a traveler names a seat that does
// not exist on the flight or is not marked booked.
type SeatNotReservedError struct {
	FlightID string
	Label    string
}

func (e *SeatNotReservedError) Error() string {
	return fmt.Sprintf("seat %s on flight %s is not reserved", e.Label, e.FlightID)
}

// ValidationError carries field level problems found after decoding.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}
