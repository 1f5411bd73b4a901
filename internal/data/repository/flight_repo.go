package repository

import (
	"context"
	"errors"
	"fmt"

	"flight-booking/internal/data/entity"
	"flight-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FlightRepository interface {
	// Create inserts the flight and fills its generated code and timestamps.
	Create(ctx context.Context, flight *entity.Flight) error
	FindByID(ctx context.Context, id string) (*entity.Flight, error)
	FindDetailByID(ctx context.Context, id string) (*entity.FlightDetail, error)
	FindAll(ctx context.Context, offset, limit int) ([]*entity.FlightDetail, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, flight *entity.Flight) error
	Delete(ctx context.Context, id string) error
}

type flightRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewFlightRepository(db database.Querier, log *zap.Logger) FlightRepository {
	return &flightRepository{
		db:  db,
		log: log.With(zap.String("repository", "flight")),
	}
}

const flightDetailSelect = `
	SELECT f.id, f.airplane_id, f.origin_id, f.destination_id, f.departure_time, f.arrival_time,
	       f.total_seats, f.base_price, f.created_at, f.updated_at,
	       a.id, a.model, a.total_seats,
	       o.id, o.name, o.code, o.city,
	       d.id, d.name, d.code, d.city
	FROM flights f
	JOIN airplanes a ON a.id = f.airplane_id
	JOIN airports o ON o.id = f.origin_id
	JOIN airports d ON d.id = f.destination_id
`

func (r *flightRepository) Create(ctx context.Context, flight *entity.Flight) error {
	query := `
		INSERT INTO flights (airplane_id, origin_id, destination_id, departure_time, arrival_time, total_seats, base_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		flight.AirplaneID,
		flight.OriginID,
		flight.DestinationID,
		flight.DepartureTime,
		flight.ArrivalTime,
		flight.TotalSeats,
		flight.BasePrice,
	).Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create flight",
			zap.Error(err),
			zap.Int64("airplane_id", flight.AirplaneID),
		)
		return fmt.Errorf("failed to create flight: %w", err)
	}

	return nil
}

func (r *flightRepository) FindByID(ctx context.Context, id string) (*entity.Flight, error) {
	query := `
		SELECT id, airplane_id, origin_id, destination_id, departure_time, arrival_time,
		       total_seats, base_price, created_at, updated_at
		FROM flights
		WHERE id = $1
	`

	var f entity.Flight
	err := r.db.QueryRow(ctx, query, id).Scan(
		&f.ID,
		&f.AirplaneID,
		&f.OriginID,
		&f.DestinationID,
		&f.DepartureTime,
		&f.ArrivalTime,
		&f.TotalSeats,
		&f.BasePrice,
		&f.CreatedAt,
		&f.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find flight by ID", zap.Error(err), zap.String("flight_id", id))
		return nil, fmt.Errorf("failed to find flight: %w", err)
	}

	return &f, nil
}

func (r *flightRepository) FindDetailByID(ctx context.Context, id string) (*entity.FlightDetail, error) {
	row := r.db.QueryRow(ctx, flightDetailSelect+` WHERE f.id = $1`, id)

	detail, err := scanFlightDetail(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find flight detail", zap.Error(err), zap.String("flight_id", id))
		return nil, fmt.Errorf("failed to find flight: %w", err)
	}

	return detail, nil
}

func (r *flightRepository) FindAll(ctx context.Context, offset, limit int) ([]*entity.FlightDetail, error) {
	query := flightDetailSelect + ` ORDER BY f.departure_time, f.id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all flights",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("failed to find flights: %w", err)
	}
	defer rows.Close()

	var flights []*entity.FlightDetail
	for rows.Next() {
		detail, err := scanFlightDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan flight row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}
		flights = append(flights, detail)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return flights, nil
}

func (r *flightRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM flights`).Scan(&total); err != nil {
		r.log.Error("Failed to count flights", zap.Error(err))
		return 0, fmt.Errorf("failed to count flights: %w", err)
	}
	return total, nil
}

func (r *flightRepository) Update(ctx context.Context, flight *entity.Flight) error {
	query := `
		UPDATE flights
		SET departure_time = $2, arrival_time = $3, base_price = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		flight.ID,
		flight.DepartureTime,
		flight.ArrivalTime,
		flight.BasePrice,
	).Scan(&flight.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to update flight", zap.Error(err), zap.String("flight_id", flight.ID))
		return fmt.Errorf("failed to update flight: %w", err)
	}

	return nil
}

// Delete removes the flight row only. Its seats must be deleted first.
func (r *flightRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete flight", zap.Error(err), zap.String("flight_id", id))
		return fmt.Errorf("failed to delete flight: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Flight deleted", zap.String("flight_id", id))
	return nil
}

func scanFlightDetail(row pgx.Row) (*entity.FlightDetail, error) {
	var d entity.FlightDetail
	err := row.Scan(
		&d.ID,
		&d.AirplaneID,
		&d.OriginID,
		&d.DestinationID,
		&d.DepartureTime,
		&d.ArrivalTime,
		&d.TotalSeats,
		&d.BasePrice,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.Airplane.ID,
		&d.Airplane.Model,
		&d.Airplane.TotalSeats,
		&d.Origin.ID,
		&d.Origin.Name,
		&d.Origin.Code,
		&d.Origin.City,
		&d.Destination.ID,
		&d.Destination.Name,
		&d.Destination.Code,
		&d.Destination.City,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
