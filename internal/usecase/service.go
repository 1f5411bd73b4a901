package usecase

import (
	"context"

	"flight-booking/internal/data/repository"
	"flight-booking/pkg/cache"
	"flight-booking/pkg/mailer"
	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

// SeatReservationClient is the booking side's view of the flight service.
type SeatReservationClient interface {
	ReserveSeats(ctx context.Context, flightID string, seatNumbers []string) error
	ReleaseSeats(ctx context.Context, flightID string, seatNumbers []string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, queue string, payload any) error
}

// Deps are the collaborators that live outside the database.
type Deps struct {
	Cache     cache.Cache
	Seats     SeatReservationClient
	Publisher EventPublisher
	Mailer    mailer.Mailer
}

type Service struct {
	Fleet        FleetService
	Flight       FlightService
	Seat         SeatService
	Booking      BookingService
	Notification NotificationService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger, deps Deps) *Service {
	if deps.Cache == nil {
		deps.Cache = cache.NewNoOpCache()
	}
	if deps.Mailer == nil {
		deps.Mailer = mailer.New(config.Email, log)
	}

	return &Service{
		Fleet:        NewFleetService(repo, log),
		Flight:       NewFlightService(repo, deps.Cache, log),
		Seat:         NewSeatService(repo, deps.Cache, log),
		Booking:      NewBookingService(repo, deps.Seats, deps.Publisher, config, log),
		Notification: NewNotificationService(deps.Mailer, log),
	}
}
