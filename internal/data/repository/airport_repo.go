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

type AirportRepository interface {
	Create(ctx context.Context, airport *entity.Airport) error
	FindByID(ctx context.Context, id int64) (*entity.Airport, error)
	FindAll(ctx context.Context) ([]*entity.Airport, error)
}

type airportRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewAirportRepository(db database.Querier, log *zap.Logger) AirportRepository {
	return &airportRepository{
		db:  db,
		log: log.With(zap.String("repository", "airport")),
	}
}

func (r *airportRepository) Create(ctx context.Context, airport *entity.Airport) error {
	query := `
		INSERT INTO airports (name, code, city)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, airport.Name, airport.Code, airport.City).
		Scan(&airport.ID, &airport.CreatedAt, &airport.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		r.log.Error("Failed to create airport",
			zap.Error(err),
			zap.String("code", airport.Code),
		)
		return fmt.Errorf("failed to create airport: %w", err)
	}

	return nil
}

func (r *airportRepository) FindByID(ctx context.Context, id int64) (*entity.Airport, error) {
	query := `
		SELECT id, name, code, city, created_at, updated_at
		FROM airports
		WHERE id = $1
	`

	var a entity.Airport
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.Code, &a.City, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find airport by ID", zap.Error(err), zap.Int64("airport_id", id))
		return nil, fmt.Errorf("failed to find airport: %w", err)
	}

	return &a, nil
}

func (r *airportRepository) FindAll(ctx context.Context) ([]*entity.Airport, error) {
	query := `SELECT id, name, code, city, created_at, updated_at FROM airports ORDER BY code`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find airports", zap.Error(err))
		return nil, fmt.Errorf("failed to find airports: %w", err)
	}
	defer rows.Close()

	var airports []*entity.Airport
	for rows.Next() {
		var a entity.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.Code, &a.City, &a.CreatedAt, &a.UpdatedAt); err != nil {
			r.log.Error("Failed to scan airport row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan airport: %w", err)
		}
		airports = append(airports, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return airports, nil
}
