package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flight-booking/internal/data/entity"
	"flight-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// seats per INSERT statement, keeps the bind parameter count well below the protocol limit
const seatInsertChunk = 500

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	FindByFlightID(ctx context.Context, flightID string) ([]*entity.Seat, error)
	FindByPosition(ctx context.Context, flightID string, row int, column string) (*entity.Seat, error)
	CountBooked(ctx context.Context, flightID string) (int, error)
	DeleteByFlightID(ctx context.Context, flightID string) (int64, error)

	// Reserve marks the seat booked only if it is currently unbooked.
	// It reports false when the seat is already booked or does not exist.
	Reserve(ctx context.Context, flightID string, row int, column string) (bool, error)
	// Release is the reverse of Reserve: booked -> unbooked, false otherwise.
	// A seat assigned to a traveler is never released.
	Release(ctx context.Context, flightID string, row int, column string) (bool, error)
}

type seatRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewSeatRepository(db database.Querier, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	for start := 0; start < len(seats); start += seatInsertChunk {
		end := min(start+seatInsertChunk, len(seats))
		if err := r.insertChunk(ctx, seats[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *seatRepository) insertChunk(ctx context.Context, seats []*entity.Seat) error {
	var query strings.Builder
	query.WriteString(`INSERT INTO seats (id, flight_id, seat_row, seat_column, seat_class, is_booked, created_at, updated_at) VALUES `)
	args := make([]interface{}, 0, len(seats)*8)

	for i, seat := range seats {
		if i > 0 {
			query.WriteString(", ")
		}
		fmt.Fprintf(&query, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			i*8+1, i*8+2, i*8+3, i*8+4, i*8+5, i*8+6, i*8+7, i*8+8)

		args = append(args,
			seat.ID,
			seat.FlightID,
			seat.Row,
			seat.Column,
			seat.Class,
			seat.IsBooked,
			seat.CreatedAt,
			seat.UpdatedAt,
		)
	}

	_, err := r.db.Exec(ctx, query.String(), args...)
	if err != nil {
		r.log.Error("Failed to create batch seats",
			zap.Error(err),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("failed to create batch seats: %w", err)
	}

	return nil
}

func (r *seatRepository) FindByFlightID(ctx context.Context, flightID string) ([]*entity.Seat, error) {
	query := `
		SELECT id, flight_id, seat_row, seat_column, seat_class, is_booked, created_at, updated_at
		FROM seats
		WHERE flight_id = $1
		ORDER BY seat_row, seat_column
	`

	rows, err := r.db.Query(ctx, query, flightID)
	if err != nil {
		r.log.Error("Failed to find seats by flight ID",
			zap.Error(err),
			zap.String("flight_id", flightID),
		)
		return nil, fmt.Errorf("failed to find seats: %w", err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.FlightID,
			&seat.Row,
			&seat.Column,
			&seat.Class,
			&seat.IsBooked,
			&seat.CreatedAt,
			&seat.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan seat: %w", err)
		}
		seats = append(seats, &seat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return seats, nil
}

func (r *seatRepository) FindByPosition(ctx context.Context, flightID string, row int, column string) (*entity.Seat, error) {
	query := `
		SELECT id, flight_id, seat_row, seat_column, seat_class, is_booked, created_at, updated_at
		FROM seats
		WHERE flight_id = $1 AND seat_row = $2 AND seat_column = $3
	`

	var seat entity.Seat
	err := r.db.QueryRow(ctx, query, flightID, row, column).Scan(
		&seat.ID,
		&seat.FlightID,
		&seat.Row,
		&seat.Column,
		&seat.Class,
		&seat.IsBooked,
		&seat.CreatedAt,
		&seat.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat",
			zap.Error(err),
			zap.String("flight_id", flightID),
			zap.Int("row", row),
			zap.String("column", column),
		)
		return nil, fmt.Errorf("failed to find seat: %w", err)
	}

	return &seat, nil
}

func (r *seatRepository) CountBooked(ctx context.Context, flightID string) (int, error) {
	var booked int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM seats WHERE flight_id = $1 AND is_booked = true`, flightID).Scan(&booked)
	if err != nil {
		r.log.Error("Failed to count booked seats", zap.Error(err), zap.String("flight_id", flightID))
		return 0, fmt.Errorf("failed to count booked seats: %w", err)
	}
	return booked, nil
}

func (r *seatRepository) DeleteByFlightID(ctx context.Context, flightID string) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM seats WHERE flight_id = $1`, flightID)
	if err != nil {
		r.log.Error("Failed to delete seats", zap.Error(err), zap.String("flight_id", flightID))
		return 0, fmt.Errorf("failed to delete seats: %w", err)
	}
	return result.RowsAffected(), nil
}

const setBookedQuery = `
	UPDATE seats
	SET is_booked = $4, updated_at = NOW()
	WHERE flight_id = $1 AND seat_row = $2 AND seat_column = $3 AND is_booked = $5
`

func (r *seatRepository) Reserve(ctx context.Context, flightID string, row int, column string) (bool, error) {
	return r.setBooked(ctx, setBookedQuery, flightID, row, column, true)
}

func (r *seatRepository) Release(ctx context.Context, flightID string, row int, column string) (bool, error) {
	query := setBookedQuery + `	AND NOT EXISTS (SELECT 1 FROM travelers WHERE travelers.seat_id = seats.id)
`
	return r.setBooked(ctx, query, flightID, row, column, false)
}

// setBooked flips is_booked to booked with the current value as the guard,
// so the database does the check-and-set on the row.
func (r *seatRepository) setBooked(ctx context.Context, query, flightID string, row int, column string, booked bool) (bool, error) {
	result, err := r.db.Exec(ctx, query, flightID, row, column, booked, !booked)
	if err != nil {
		r.log.Error("Failed to update seat booking flag",
			zap.Error(err),
			zap.String("flight_id", flightID),
			zap.Int("row", row),
			zap.String("column", column),
			zap.Bool("is_booked", booked),
		)
		return false, fmt.Errorf("failed to update seat: %w", err)
	}

	return result.RowsAffected() == 1, nil
}
