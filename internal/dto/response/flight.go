package response

import (
	"time"

	"flight-booking/internal/data/entity"
)

type FlightResponse struct {
	ID            string    `json:"id"`
	AirplaneID    int64     `json:"airplaneId"`
	OriginID      int64     `json:"originId"`
	DestinationID int64     `json:"destinationId"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	TotalSeats    int       `json:"totalSeats"`
	BasePrice     float64   `json:"basePrice"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type SeatAvailability struct {
	AvailableSeats int `json:"availableSeats"`
	BookedSeats    int `json:"bookedSeats"`
}

type FlightDetailResponse struct {
	FlightResponse
	Airplane         AirplaneResponse  `json:"airplane"`
	Origin           AirportResponse   `json:"origin"`
	Destination      AirportResponse   `json:"destination"`
	SeatAvailability *SeatAvailability `json:"seatAvailability,omitempty"`
}

func FlightToResponse(f *entity.Flight) FlightResponse {
	return FlightResponse{
		ID:            f.ID,
		AirplaneID:    f.AirplaneID,
		OriginID:      f.OriginID,
		DestinationID: f.DestinationID,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		TotalSeats:    f.TotalSeats,
		BasePrice:     f.BasePrice,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func FlightDetailToResponse(d *entity.FlightDetail) FlightDetailResponse {
	return FlightDetailResponse{
		FlightResponse: FlightToResponse(&d.Flight),
		Airplane:       AirplaneToResponse(&d.Airplane),
		Origin:         AirportToResponse(&d.Origin),
		Destination:    AirportToResponse(&d.Destination),
	}
}
