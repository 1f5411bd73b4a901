package usecase

import (
	"context"
	"fmt"

	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/response"
	"flight-booking/internal/seatmap"
	"flight-booking/pkg/cache"

	"go.uber.org/zap"
)

type SeatService interface {
	// ReserveSeats books every label or none of them.
	ReserveSeats(ctx context.Context, flightID string, seatNumbers []string) (*response.ReserveSeatsResponse, error)
	// ReleaseSeats returns booked seats to the inventory, all or nothing.
	// Seats already assigned to a traveler are reported unavailable.
	ReleaseSeats(ctx context.Context, flightID string, seatNumbers []string) (*response.ReserveSeatsResponse, error)
}

type seatService struct {
	repo  *repository.Repository
	cache cache.Cache
	log   *zap.Logger
}

func NewSeatService(repo *repository.Repository, c cache.Cache, log *zap.Logger) SeatService {
	return &seatService{
		repo:  repo,
		cache: c,
		log:   log.With(zap.String("service", "seat")),
	}
}

type seatPosition struct {
	label  string
	row    int
	column string
}

func (s *seatService) ReserveSeats(ctx context.Context, flightID string, seatNumbers []string) (*response.ReserveSeatsResponse, error) {
	positions, err := s.apply(ctx, flightID, seatNumbers, false)
	if err != nil {
		return nil, err
	}

	s.log.Info("Seats reserved", zap.String("flight_id", flightID), zap.Strings("seats", positions))
	return &response.ReserveSeatsResponse{Success: true, ReservedSeats: positions}, nil
}

func (s *seatService) ReleaseSeats(ctx context.Context, flightID string, seatNumbers []string) (*response.ReserveSeatsResponse, error) {
	positions, err := s.apply(ctx, flightID, seatNumbers, true)
	if err != nil {
		return nil, err
	}

	s.log.Info("Seats released", zap.String("flight_id", flightID), zap.Strings("seats", positions))
	return &response.ReserveSeatsResponse{Success: true, ReleasedSeats: positions}, nil
}

// apply validates the whole batch before touching the database, then runs
// one conditional update per seat inside a single transaction. The first
// update that matches no row rolls the batch back.
func (s *seatService) apply(ctx context.Context, flightID string, seatNumbers []string, release bool) ([]string, error) {
	positions, err := parseBatch(seatNumbers)
	if err != nil {
		return nil, err
	}

	flight, err := s.repo.Flight.FindByID(ctx, flightID)
	if err != nil {
		return nil, fmt.Errorf("get flight %s: %w", flightID, err)
	}
	if flight == nil {
		return nil, ErrFlightNotFound
	}

	// rows past the layout do not exist, answer without touching the table
	rows := flight.TotalSeats / len(seatmap.Columns)
	for _, p := range positions {
		if p.row > rows {
			return nil, &SeatUnavailableError{FlightID: flightID, Label: p.label, Release: release}
		}
	}

	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		for _, p := range positions {
			update := tx.Seat.Reserve
			if release {
				update = tx.Seat.Release
			}

			ok, err := update(ctx, flightID, p.row, p.column)
			if err != nil {
				return fmt.Errorf("update seat %s: %w", p.label, err)
			}
			if !ok {
				return &SeatUnavailableError{FlightID: flightID, Label: p.label, Release: release}
			}
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Seat batch rolled back",
			zap.Error(err),
			zap.String("flight_id", flightID),
			zap.Strings("seats", seatNumbers),
			zap.Bool("release", release),
		)
		return nil, err
	}

	if err := s.cache.Delete(ctx, cache.SeatMapKey(flightID)); err != nil {
		s.log.Warn("Failed to invalidate seat map", zap.Error(err), zap.String("flight_id", flightID))
	}

	labels := make([]string, 0, len(positions))
	for _, p := range positions {
		labels = append(labels, p.label)
	}
	return labels, nil
}

func parseBatch(seatNumbers []string) ([]seatPosition, error) {
	if len(seatNumbers) == 0 {
		return nil, &ValidationError{Fields: map[string]string{"seatNumbers": "At least one seat is required"}}
	}

	seen := make(map[string]struct{}, len(seatNumbers))
	positions := make([]seatPosition, 0, len(seatNumbers))

	for _, label := range seatNumbers {
		row, column, err := seatmap.ParseLabel(label)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, label)
		}

		canonical := seatmap.FormatLabel(row, column)
		if _, dup := seen[canonical]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSeat, canonical)
		}
		seen[canonical] = struct{}{}

		positions = append(positions, seatPosition{label: canonical, row: row, column: column})
	}
	return positions, nil
}
