package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/internal/seatmap"

	"go.uber.org/zap"
)

type FleetService interface {
	CreateAirplane(ctx context.Context, req *request.CreateAirplaneRequest) (*response.AirplaneResponse, error)
	GetAirplane(ctx context.Context, id int64) (*response.AirplaneResponse, error)
	ListAirplanes(ctx context.Context) ([]response.AirplaneResponse, error)

	CreateAirport(ctx context.Context, req *request.CreateAirportRequest) (*response.AirportResponse, error)
	GetAirport(ctx context.Context, id int64) (*response.AirportResponse, error)
	ListAirports(ctx context.Context) ([]response.AirportResponse, error)
}

type fleetService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFleetService(repo *repository.Repository, log *zap.Logger) FleetService {
	return &fleetService{
		repo: repo,
		log:  log.With(zap.String("service", "fleet")),
	}
}

func (s *fleetService) CreateAirplane(ctx context.Context, req *request.CreateAirplaneRequest) (*response.AirplaneResponse, error) {
	if req.TotalSeats <= 0 || req.TotalSeats%seatmap.SeatsPerRow != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeatCount, req.TotalSeats)
	}

	airplane := &entity.Airplane{
		Model:      strings.TrimSpace(req.Model),
		TotalSeats: req.TotalSeats,
	}
	if err := s.repo.Airplane.Create(ctx, airplane); err != nil {
		return nil, fmt.Errorf("create airplane: %w", err)
	}

	s.log.Info("Airplane created",
		zap.Int64("airplane_id", airplane.ID),
		zap.String("model", airplane.Model),
		zap.Int("total_seats", airplane.TotalSeats),
	)

	resp := response.AirplaneToResponse(airplane)
	return &resp, nil
}

func (s *fleetService) GetAirplane(ctx context.Context, id int64) (*response.AirplaneResponse, error) {
	airplane, err := s.repo.Airplane.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get airplane %d: %w", id, err)
	}
	if airplane == nil {
		return nil, ErrAirplaneNotFound
	}

	resp := response.AirplaneToResponse(airplane)
	return &resp, nil
}

func (s *fleetService) ListAirplanes(ctx context.Context) ([]response.AirplaneResponse, error) {
	airplanes, err := s.repo.Airplane.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list airplanes: %w", err)
	}

	items := make([]response.AirplaneResponse, 0, len(airplanes))
	for _, a := range airplanes {
		items = append(items, response.AirplaneToResponse(a))
	}
	return items, nil
}

func (s *fleetService) CreateAirport(ctx context.Context, req *request.CreateAirportRequest) (*response.AirportResponse, error) {
	airport := &entity.Airport{
		Name: strings.TrimSpace(req.Name),
		Code: strings.ToUpper(req.Code),
		City: strings.TrimSpace(req.City),
	}

	if err := s.repo.Airport.Create(ctx, airport); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrAirportExists, airport.Code)
		}
		return nil, fmt.Errorf("create airport: %w", err)
	}

	s.log.Info("Airport created", zap.Int64("airport_id", airport.ID), zap.String("code", airport.Code))

	resp := response.AirportToResponse(airport)
	return &resp, nil
}

func (s *fleetService) GetAirport(ctx context.Context, id int64) (*response.AirportResponse, error) {
	airport, err := s.repo.Airport.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get airport %d: %w", id, err)
	}
	if airport == nil {
		return nil, ErrAirportNotFound
	}

	resp := response.AirportToResponse(airport)
	return &resp, nil
}

func (s *fleetService) ListAirports(ctx context.Context) ([]response.AirportResponse, error) {
	airports, err := s.repo.Airport.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list airports: %w", err)
	}

	items := make([]response.AirportResponse, 0, len(airports))
	for _, a := range airports {
		items = append(items, response.AirportToResponse(a))
	}
	return items, nil
}
