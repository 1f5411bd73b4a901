package repository

import (
	"context"
	"errors"
	"fmt"

	"flight-booking/internal/data/entity"
	"flight-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	// FindByContactEmail lists the contact's bookings, newest first.
	FindByContactEmail(ctx context.Context, email string) ([]*entity.Booking, error)
	CountByFlightID(ctx context.Context, flightID string) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*entity.Booking, error)
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, flight_id, contact_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.FlightID,
		booking.ContactID,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("flight_id", booking.FlightID),
			zap.String("contact_id", booking.ContactID.String()),
		)
		return fmt.Errorf("create booking for flight %s: %w", booking.FlightID, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, flight_id, contact_id, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var b entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.FlightID,
		&b.ContactID,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &b, nil
}

func (r *bookingRepository) FindByContactEmail(ctx context.Context, email string) ([]*entity.Booking, error) {
	query := `
		SELECT b.id, b.flight_id, b.contact_id, b.status, b.created_at, b.updated_at
		FROM bookings b
		JOIN contacts c ON c.id = b.contact_id
		WHERE c.email = $1
		ORDER BY b.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to find bookings by contact", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var b entity.Booking
		if err := rows.Scan(&b.ID, &b.FlightID, &b.ContactID, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*entity.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, flight_id, contact_id, status, created_at, updated_at
	`

	var b entity.Booking
	err := r.db.QueryRow(ctx, query, id, status).Scan(
		&b.ID,
		&b.FlightID,
		&b.ContactID,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	return &b, nil
}

func (r *bookingRepository) CountByFlightID(ctx context.Context, flightID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE flight_id = $1`, flightID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err), zap.String("flight_id", flightID))
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}
