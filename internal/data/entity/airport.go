package entity

type Airport struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Code string `db:"code"` // IATA, e.g. CGK
	City string `db:"city"`
	Timestamps
}
