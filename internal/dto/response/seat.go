package response

import (
	"flight-booking/internal/data/entity"
	"flight-booking/internal/seatmap"
)

type SeatResponse struct {
	ID         string            `json:"id"`
	SeatNumber string            `json:"seatNumber"`
	Row        int               `json:"row"`
	Column     string            `json:"column"`
	Class      seatmap.SeatClass `json:"seatClass"`
	IsBooked   bool              `json:"isBooked"`
	Price      float64           `json:"price"`
}

type SeatMapResponse struct {
	FlightID         string           `json:"flightId"`
	BasePrice        float64          `json:"basePrice"`
	SeatAvailability SeatAvailability `json:"seatAvailability"`
	Seats            []SeatResponse   `json:"seats"`
}

// ReserveSeatsResponse is the reserve-seat / release-seat payload.
type ReserveSeatsResponse struct {
	Success       bool     `json:"success"`
	ReservedSeats []string `json:"reservedSeats,omitempty"`
	ReleasedSeats []string `json:"releasedSeats,omitempty"`
}

// SeatUnavailableData is the data member of a failed reservation.
type SeatUnavailableData struct {
	Available bool `json:"available"`
}

func SeatToResponse(s *entity.Seat, basePrice float64) SeatResponse {
	return SeatResponse{
		ID:         s.ID.String(),
		SeatNumber: s.Label(),
		Row:        s.Row,
		Column:     s.Column,
		Class:      s.Class,
		IsBooked:   s.IsBooked,
		Price:      seatmap.PriceFor(s.Class, basePrice),
	}
}
