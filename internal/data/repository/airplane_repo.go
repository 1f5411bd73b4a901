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

type AirplaneRepository interface {
	Create(ctx context.Context, airplane *entity.Airplane) error
	FindByID(ctx context.Context, id int64) (*entity.Airplane, error)
	FindAll(ctx context.Context) ([]*entity.Airplane, error)
}

type airplaneRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewAirplaneRepository(db database.Querier, log *zap.Logger) AirplaneRepository {
	return &airplaneRepository{
		db:  db,
		log: log.With(zap.String("repository", "airplane")),
	}
}

func (r *airplaneRepository) Create(ctx context.Context, airplane *entity.Airplane) error {
	query := `
		INSERT INTO airplanes (model, total_seats)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, airplane.Model, airplane.TotalSeats).
		Scan(&airplane.ID, &airplane.CreatedAt, &airplane.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create airplane",
			zap.Error(err),
			zap.String("model", airplane.Model),
		)
		return fmt.Errorf("failed to create airplane: %w", err)
	}

	return nil
}

func (r *airplaneRepository) FindByID(ctx context.Context, id int64) (*entity.Airplane, error) {
	query := `
		SELECT id, model, total_seats, created_at, updated_at
		FROM airplanes
		WHERE id = $1
	`

	var a entity.Airplane
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Model, &a.TotalSeats, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find airplane by ID", zap.Error(err), zap.Int64("airplane_id", id))
		return nil, fmt.Errorf("failed to find airplane: %w", err)
	}

	return &a, nil
}

func (r *airplaneRepository) FindAll(ctx context.Context) ([]*entity.Airplane, error) {
	query := `SELECT id, model, total_seats, created_at, updated_at FROM airplanes ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find airplanes", zap.Error(err))
		return nil, fmt.Errorf("failed to find airplanes: %w", err)
	}
	defer rows.Close()

	var airplanes []*entity.Airplane
	for rows.Next() {
		var a entity.Airplane
		if err := rows.Scan(&a.ID, &a.Model, &a.TotalSeats, &a.CreatedAt, &a.UpdatedAt); err != nil {
			r.log.Error("Failed to scan airplane row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan airplane: %w", err)
		}
		airplanes = append(airplanes, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return airplanes, nil
}
