package entity

import "time"

type Flight struct {
	ID            string    `db:"id"` // airline-style code, e.g. EZ00001
	AirplaneID    int64     `db:"airplane_id"`
	OriginID      int64     `db:"origin_id"`
	DestinationID int64     `db:"destination_id"`
	DepartureTime time.Time `db:"departure_time"`
	ArrivalTime   time.Time `db:"arrival_time"`
	TotalSeats    int       `db:"total_seats"`
	BasePrice     float64   `db:"base_price"`
	Timestamps
}

// FlightDetail is a flight joined with its route and airplane.
type FlightDetail struct {
	Flight
	Airplane    Airplane
	Origin      Airport
	Destination Airport
}
