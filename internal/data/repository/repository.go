package repository

import (
	"context"

	"flight-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	Airplane AirplaneRepository
	Airport  AirportRepository
	Flight   FlightRepository
	Seat     SeatRepository
	Contact  ContactRepository
	Booking  BookingRepository
	Traveler TravelerRepository
	Payment  PaymentRepository

	Tx Transactor
}

// Transactor runs fn with a Repository whose members all share one database
// transaction. The transaction commits when fn returns nil.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx *Repository) error) error
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepository(db, log)
	repo.Tx = &pgxTransactor{db: db, log: log}
	return repo
}

func newRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		Airplane: NewAirplaneRepository(q, log),
		Airport:  NewAirportRepository(q, log),
		Flight:   NewFlightRepository(q, log),
		Seat:     NewSeatRepository(q, log),
		Contact:  NewContactRepository(q, log),
		Booking:  NewBookingRepository(q, log),
		Traveler: NewTravelerRepository(q, log),
		Payment:  NewPaymentRepository(q, log),
	}
}

type pgxTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgxTransactor) WithinTx(ctx context.Context, fn func(tx *Repository) error) error {
	return database.WithTx(ctx, t.db, func(tx pgx.Tx) error {
		txRepo := newRepository(tx, t.log)
		txRepo.Tx = joinedTx{repo: txRepo}
		return fn(txRepo)
	})
}

// joinedTx reuses the surrounding transaction instead of nesting one.
type joinedTx struct {
	repo *Repository
}

func (j joinedTx) WithinTx(_ context.Context, fn func(tx *Repository) error) error {
	return fn(j.repo)
}
