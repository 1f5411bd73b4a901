package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/internal/seatmap"
	"flight-booking/pkg/cache"

	"go.uber.org/zap"
)

type FlightService interface {
	CreateFlight(ctx context.Context, req *request.CreateFlightRequest) (*response.FlightResponse, error)
	GetFlight(ctx context.Context, id string) (*response.FlightDetailResponse, error)
	ListFlights(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.FlightDetailResponse], error)
	UpdateFlight(ctx context.Context, id string, req *request.UpdateFlightRequest) (*response.FlightResponse, error)
	DeleteFlight(ctx context.Context, id string) error

	// GetSeatMap lists every seat of the flight with its class and price.
	GetSeatMap(ctx context.Context, id string) (*response.SeatMapResponse, error)
}

type flightService struct {
	repo  *repository.Repository
	cache cache.Cache
	log   *zap.Logger
}

func NewFlightService(repo *repository.Repository, c cache.Cache, log *zap.Logger) FlightService {
	return &flightService{
		repo:  repo,
		cache: c,
		log:   log.With(zap.String("service", "flight")),
	}
}

// CreateFlight stores the flight and its full seat layout in one transaction.
// The seat count is copied from the airplane.
func (s *flightService) CreateFlight(ctx context.Context, req *request.CreateFlightRequest) (*response.FlightResponse, error) {
	departure, arrival, err := parseSchedule(req.DepartureTime, req.ArrivalTime)
	if err != nil {
		return nil, err
	}

	flight := &entity.Flight{
		AirplaneID:    req.AirplaneID,
		OriginID:      req.OriginID,
		DestinationID: req.DestinationID,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		BasePrice:     req.BasePrice,
	}

	var seatCount int
	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		airplane, err := tx.Airplane.FindByID(ctx, req.AirplaneID)
		if err != nil {
			return fmt.Errorf("find airplane: %w", err)
		}
		if airplane == nil {
			return fmt.Errorf("%w: %d", ErrAirplaneNotFound, req.AirplaneID)
		}
		if airplane.TotalSeats <= 0 || airplane.TotalSeats%seatmap.SeatsPerRow != 0 {
			return fmt.Errorf("%w: airplane %d has %d seats", ErrInvalidSeatCount, airplane.ID, airplane.TotalSeats)
		}

		for _, airportID := range []int64{req.OriginID, req.DestinationID} {
			airport, err := tx.Airport.FindByID(ctx, airportID)
			if err != nil {
				return fmt.Errorf("find airport: %w", err)
			}
			if airport == nil {
				return fmt.Errorf("%w: %d", ErrAirportNotFound, airportID)
			}
		}

		flight.TotalSeats = airplane.TotalSeats
		if err := tx.Flight.Create(ctx, flight); err != nil {
			return err
		}

		layout, err := seatmap.GenerateSeats(airplane.TotalSeats, flight.ID)
		if err != nil {
			return err
		}

		seats := make([]*entity.Seat, 0, len(layout))
		for _, in := range layout {
			seats = append(seats, &entity.Seat{
				Base:     entity.NewBase(),
				FlightID: in.FlightID,
				Row:      in.Row,
				Column:   in.Column,
				Class:    in.Class,
				IsBooked: in.IsBooked,
			})
		}
		seatCount = len(seats)

		return tx.Seat.CreateBatch(ctx, seats)
	})
	if err != nil {
		s.log.Warn("Create flight failed", zap.Error(err), zap.Int64("airplane_id", req.AirplaneID))
		return nil, err
	}

	s.log.Info("Flight created",
		zap.String("flight_id", flight.ID),
		zap.Int64("airplane_id", flight.AirplaneID),
		zap.Int("seats", seatCount),
	)

	resp := response.FlightToResponse(flight)
	return &resp, nil
}

func (s *flightService) GetFlight(ctx context.Context, id string) (*response.FlightDetailResponse, error) {
	detail, err := s.repo.Flight.FindDetailByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get flight %s: %w", id, err)
	}
	if detail == nil {
		return nil, ErrFlightNotFound
	}

	booked, err := s.repo.Seat.CountBooked(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count booked seats: %w", err)
	}

	resp := response.FlightDetailToResponse(detail)
	resp.SeatAvailability = &response.SeatAvailability{
		AvailableSeats: detail.TotalSeats - booked,
		BookedSeats:    booked,
	}
	return &resp, nil
}

func (s *flightService) ListFlights(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.FlightDetailResponse], error) {
	flights, err := s.repo.Flight.FindAll(ctx, req.Offset(), req.Limit())
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}

	total, err := s.repo.Flight.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count flights: %w", err)
	}

	items := make([]response.FlightDetailResponse, 0, len(flights))
	for _, f := range flights {
		items = append(items, response.FlightDetailToResponse(f))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *flightService) UpdateFlight(ctx context.Context, id string, req *request.UpdateFlightRequest) (*response.FlightResponse, error) {
	flight, err := s.repo.Flight.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get flight %s: %w", id, err)
	}
	if flight == nil {
		return nil, ErrFlightNotFound
	}

	departure := flight.DepartureTime.Format(time.RFC3339)
	arrival := flight.ArrivalTime.Format(time.RFC3339)
	if req.DepartureTime != nil {
		departure = *req.DepartureTime
	}
	if req.ArrivalTime != nil {
		arrival = *req.ArrivalTime
	}

	flight.DepartureTime, flight.ArrivalTime, err = parseSchedule(departure, arrival)
	if err != nil {
		return nil, err
	}
	if req.BasePrice != nil {
		flight.BasePrice = *req.BasePrice
	}

	if err := s.repo.Flight.Update(ctx, flight); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}

	// prices on the seat map derive from the base price
	s.invalidateSeatMap(ctx, id)

	s.log.Info("Flight updated", zap.String("flight_id", id))

	resp := response.FlightToResponse(flight)
	return &resp, nil
}

// DeleteFlight removes the seats first, then the flight, in one transaction.
// Flights with bookings are kept.
func (s *flightService) DeleteFlight(ctx context.Context, id string) error {
	var removed int64
	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		flight, err := tx.Flight.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("find flight: %w", err)
		}
		if flight == nil {
			return ErrFlightNotFound
		}

		bookings, err := tx.Booking.CountByFlightID(ctx, id)
		if err != nil {
			return err
		}
		if bookings > 0 {
			return fmt.Errorf("%w: %d booking(s) on flight %s", ErrFlightHasBookings, bookings, id)
		}

		if removed, err = tx.Seat.DeleteByFlightID(ctx, id); err != nil {
			return err
		}

		if err := tx.Flight.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrFlightNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateSeatMap(ctx, id)
	s.log.Info("Flight deleted", zap.String("flight_id", id), zap.Int64("seats_removed", removed))
	return nil
}

func (s *flightService) GetSeatMap(ctx context.Context, id string) (*response.SeatMapResponse, error) {
	key := cache.SeatMapKey(id)

	var cached response.SeatMapResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	flight, err := s.repo.Flight.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get flight %s: %w", id, err)
	}
	if flight == nil {
		return nil, ErrFlightNotFound
	}

	seats, err := s.repo.Seat.FindByFlightID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}

	resp := &response.SeatMapResponse{
		FlightID:  flight.ID,
		BasePrice: flight.BasePrice,
		Seats:     make([]response.SeatResponse, 0, len(seats)),
	}
	for _, seat := range seats {
		if seat.IsBooked {
			resp.SeatAvailability.BookedSeats++
		} else {
			resp.SeatAvailability.AvailableSeats++
		}
		resp.Seats = append(resp.Seats, response.SeatToResponse(seat, flight.BasePrice))
	}

	if err := s.cache.Set(ctx, key, resp); err != nil {
		s.log.Warn("Failed to cache seat map", zap.Error(err), zap.String("flight_id", id))
	}

	return resp, nil
}

func (s *flightService) invalidateSeatMap(ctx context.Context, flightID string) {
	if err := s.cache.Delete(ctx, cache.SeatMapKey(flightID)); err != nil {
		s.log.Warn("Failed to invalidate seat map", zap.Error(err), zap.String("flight_id", flightID))
	}
}

func parseSchedule(departure, arrival string) (time.Time, time.Time, error) {
	dep, err := time.Parse(time.RFC3339, departure)
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Fields: map[string]string{"departureTime": "Must be an ISO-8601 datetime"}}
	}
	arr, err := time.Parse(time.RFC3339, arrival)
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Fields: map[string]string{"arrivalTime": "Must be an ISO-8601 datetime"}}
	}
	if !arr.After(dep) {
		return time.Time{}, time.Time{}, ErrInvalidSchedule
	}
	return dep.UTC(), arr.UTC(), nil
}
