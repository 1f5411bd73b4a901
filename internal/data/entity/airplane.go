package entity

type Airplane struct {
	ID         int64  `db:"id"`
	Model      string `db:"model"`
	TotalSeats int    `db:"total_seats"`
	Timestamps
}
