package repository

import (
	"context"
	"fmt"
	"strings"

	"flight-booking/internal/data/entity"
	"flight-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TravelerRepository interface {
	// CreateBatch returns ErrDuplicate when a seat is already assigned.
	CreateBatch(ctx context.Context, travelers []*entity.Traveler) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Traveler, error)
}

type travelerRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTravelerRepository(db database.Querier, log *zap.Logger) TravelerRepository {
	return &travelerRepository{
		db:  db,
		log: log.With(zap.String("repository", "traveler")),
	}
}

func (r *travelerRepository) CreateBatch(ctx context.Context, travelers []*entity.Traveler) error {
	if len(travelers) == 0 {
		return nil
	}

	var query strings.Builder
	query.WriteString(`INSERT INTO travelers (id, booking_id, position, first_name, last_name, dob, gender, seat_number, seat_id, created_at) VALUES `)
	args := make([]interface{}, 0, len(travelers)*10)

	for i, t := range travelers {
		if i > 0 {
			query.WriteString(", ")
		}
		n := i * 10
		fmt.Fprintf(&query, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			n+1, n+2, n+3, n+4, n+5, n+6, n+7, n+8, n+9, n+10)

		args = append(args,
			t.ID,
			t.BookingID,
			t.Position,
			t.FirstName,
			t.LastName,
			t.DOB,
			t.Gender,
			t.SeatNumber,
			t.SeatID,
			t.CreatedAt,
		)
	}

	_, err := r.db.Exec(ctx, query.String(), args...)
	if err != nil {
		// travelers.seat_id is unique, a seat belongs to one traveler
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		r.log.Error("Failed to create travelers",
			zap.Error(err),
			zap.Int("count", len(travelers)),
		)
		return fmt.Errorf("failed to create travelers: %w", err)
	}

	return nil
}

func (r *travelerRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Traveler, error) {
	query := `
		SELECT id, booking_id, position, first_name, last_name, dob, gender, seat_number, seat_id, created_at
		FROM travelers
		WHERE booking_id = $1
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find travelers", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return nil, fmt.Errorf("failed to find travelers: %w", err)
	}
	defer rows.Close()

	var travelers []*entity.Traveler
	for rows.Next() {
		var t entity.Traveler
		err := rows.Scan(
			&t.ID,
			&t.BookingID,
			&t.Position,
			&t.FirstName,
			&t.LastName,
			&t.DOB,
			&t.Gender,
			&t.SeatNumber,
			&t.SeatID,
			&t.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan traveler row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan traveler: %w", err)
		}
		travelers = append(travelers, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return travelers, nil
}
