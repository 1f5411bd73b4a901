package entity

type Contact struct {
	Base
	Email string `db:"email"`
	Phone string `db:"phone"`
}
