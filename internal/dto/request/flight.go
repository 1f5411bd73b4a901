package request

type CreateFlightRequest struct {
	AirplaneID    int64   `json:"airplaneId" validate:"required,gt=0"`
	OriginID      int64   `json:"originId" validate:"required,gt=0"`
	DestinationID int64   `json:"destinationId" validate:"required,gt=0,nefield=OriginID"`
	DepartureTime string  `json:"departureTime" validate:"required,isodatetime"`
	ArrivalTime   string  `json:"arrivalTime" validate:"required,isodatetime"`
	BasePrice     float64 `json:"basePrice" validate:"required,gt=0"`
}

// UpdateFlightRequest is the administrative update; route and airplane are fixed.
type UpdateFlightRequest struct {
	DepartureTime *string  `json:"departureTime,omitempty" validate:"omitempty,isodatetime"`
	ArrivalTime   *string  `json:"arrivalTime,omitempty" validate:"omitempty,isodatetime"`
	BasePrice     *float64 `json:"basePrice,omitempty" validate:"omitempty,gt=0"`
}

// ReserveSeatsRequest is used by both reserve-seat and release-seat.
type ReserveSeatsRequest struct {
	FlightID    string   `json:"flightId" validate:"required"`
	SeatNumbers []string `json:"seatNumbers" validate:"required,min=1,dive,seatlabel"`
}
