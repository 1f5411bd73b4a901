package entity

import "flight-booking/internal/seatmap"

type Seat struct {
	Base
	FlightID string            `db:"flight_id"`
	Row      int               `db:"seat_row"`
	Column   string            `db:"seat_column"` // A..F
	Class    seatmap.SeatClass `db:"seat_class"`
	IsBooked bool              `db:"is_booked"`
}

func (s *Seat) Label() string {
	return seatmap.FormatLabel(s.Row, s.Column)
}
