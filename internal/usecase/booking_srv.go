package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/event"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/internal/seatmap"
	"flight-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	publishTimeout    = 10 * time.Second
	compensateTimeout = 5 * time.Second
)

type BookingService interface {
	// CreateGuestBooking reserves the requested seats through the flight
	// service, then commits contact, booking, travelers and payment together.
	CreateGuestBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetBookingsByContact(ctx context.Context, email string) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo       *repository.Repository
	seats      SeatReservationClient
	publisher  EventPublisher
	queue      string
	compensate bool
	log        *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	seats SeatReservationClient,
	publisher EventPublisher,
	config *utils.Config,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:       repo,
		seats:      seats,
		publisher:  publisher,
		queue:      config.Broker.NotificationQueue,
		compensate: config.FlightService.Compensate,
		log:        log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateGuestBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	travelers, err := buildTravelers(req.Travelers)
	if err != nil {
		return nil, err
	}

	seatNumbers := make([]string, 0, len(travelers))
	for _, t := range travelers {
		if t.SeatNumber != nil {
			seatNumbers = append(seatNumbers, *t.SeatNumber)
		}
	}

	if len(seatNumbers) > 0 {
		if s.seats == nil {
			return nil, fmt.Errorf("%w: no flight service configured", ErrSeatReservationUnreachable)
		}
		if err := s.seats.ReserveSeats(ctx, req.FlightID, seatNumbers); err != nil {
			s.log.Warn("Seat reservation failed",
				zap.Error(err),
				zap.String("flight_id", req.FlightID),
				zap.Strings("seats", seatNumbers),
			)
			return nil, fmt.Errorf("reserve seats: %w", err)
		}
	}

	contact := &entity.Contact{
		Base:  entity.NewBase(),
		Email: strings.ToLower(strings.TrimSpace(req.Contact.Email)),
		Phone: strings.TrimSpace(req.Contact.Phone),
	}

	booking := &entity.Booking{
		Base:     entity.NewBase(),
		FlightID: req.FlightID,
		Status:   entity.BookingStatusPending,
	}

	payment := &entity.Payment{
		Base:   entity.NewBase(),
		Amount: 0,
		Status: entity.PaymentStatusPending,
		Method: entity.PaymentMethod(req.PaymentMethod),
	}

	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Contact.Upsert(ctx, contact); err != nil {
			return err
		}

		booking.ContactID = contact.ID
		if err := tx.Booking.Create(ctx, booking); err != nil {
			return err
		}

		for _, t := range travelers {
			t.BookingID = booking.ID
			if t.SeatNumber == nil {
				continue
			}

			row, column, _ := seatmap.ParseLabel(*t.SeatNumber)
			seat, err := tx.Seat.FindByPosition(ctx, req.FlightID, row, column)
			if err != nil {
				return fmt.Errorf("resolve seat %s: %w", *t.SeatNumber, err)
			}
			if seat == nil || !seat.IsBooked {
				return &SeatNotReservedError{FlightID: req.FlightID, Label: *t.SeatNumber}
			}
			seatID := seat.ID
			t.SeatID = &seatID
		}

		if err := tx.Traveler.CreateBatch(ctx, travelers); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				// the seat is booked but already belongs to another traveler
				return &SeatNotReservedError{FlightID: req.FlightID, Label: strings.Join(seatNumbers, ", ")}
			}
			return err
		}

		payment.BookingID = booking.ID
		return tx.Payment.Create(ctx, payment)
	})
	if err != nil {
		s.log.Error("Booking transaction failed",
			zap.Error(err),
			zap.String("flight_id", req.FlightID),
			zap.Strings("seats", seatNumbers),
		)
		if len(seatNumbers) > 0 {
			s.releaseReserved(ctx, req.FlightID, seatNumbers)
		}
		return nil, err
	}

	booking.Contact = contact
	booking.Travelers = travelers
	booking.Payments = []*entity.Payment{payment}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("flight_id", booking.FlightID),
		zap.Int("travelers", len(travelers)),
	)

	s.publishAsync(ctx, event.BookingCreated, booking)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	id, err := parseBookingID(bookingID)
	if err != nil {
		return nil, err
	}

	status := entity.BookingStatus(req.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	booking, err := s.repo.Booking.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if err := s.loadDetails(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("status", string(status)),
	)

	s.publishAsync(ctx, event.BookingStatusChanged, booking)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := parseBookingID(bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if err := s.loadDetails(ctx, booking); err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingsByContact(ctx context.Context, email string) ([]response.BookingResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, &ValidationError{Fields: map[string]string{"email": "This field is required"}}
	}

	bookings, err := s.repo.Booking.FindByContactEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list bookings for contact: %w", err)
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		if err := s.loadDetails(ctx, b); err != nil {
			return nil, err
		}
		items = append(items, response.BookingToResponse(b))
	}
	return items, nil
}

func (s *bookingService) loadDetails(ctx context.Context, booking *entity.Booking) error {
	contact, err := s.repo.Contact.FindByID(ctx, booking.ContactID)
	if err != nil {
		return fmt.Errorf("load contact: %w", err)
	}
	booking.Contact = contact

	if booking.Travelers, err = s.repo.Traveler.FindByBookingID(ctx, booking.ID); err != nil {
		return fmt.Errorf("load travelers: %w", err)
	}
	if booking.Payments, err = s.repo.Payment.FindByBookingID(ctx, booking.ID); err != nil {
		return fmt.Errorf("load payments: %w", err)
	}
	return nil
}

// releaseReserved undoes a successful reservation after the booking
// transaction failed. Only runs when compensation is enabled.
func (s *bookingService) releaseReserved(ctx context.Context, flightID string, seatNumbers []string) {
	if !s.compensate {
		s.log.Warn("Seats stay reserved without a booking",
			zap.String("flight_id", flightID),
			zap.Strings("seats", seatNumbers),
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensateTimeout)
	defer cancel()

	if err := s.seats.ReleaseSeats(ctx, flightID, seatNumbers); err != nil {
		s.log.Error("Compensating seat release failed",
			zap.Error(err),
			zap.String("flight_id", flightID),
			zap.Strings("seats", seatNumbers),
		)
		return
	}
	s.log.Info("Released seats after failed booking",
		zap.String("flight_id", flightID),
		zap.Strings("seats", seatNumbers),
	)
}

// publishAsync sends the event after the request has its answer. Failures
// are logged and never reach the caller.
func (s *bookingService) publishAsync(ctx context.Context, typ event.Type, booking *entity.Booking) {
	if s.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	go func() {
		defer cancel()

		flight, err := s.repo.Flight.FindDetailByID(ctx, booking.FlightID)
		if err != nil {
			s.log.Warn("Flight snapshot unavailable for event",
				zap.Error(err),
				zap.String("flight_id", booking.FlightID),
			)
		}

		ev := event.NewBookingEvent(typ, booking, flight, time.Now())
		if err := s.publisher.Publish(ctx, s.queue, ev); err != nil {
			s.log.Warn("Failed to publish booking event",
				zap.Error(err),
				zap.String("type", string(typ)),
				zap.String("booking_id", booking.ID.String()),
			)
			return
		}

		s.log.Debug("Booking event published",
			zap.String("type", string(typ)),
			zap.String("booking_id", booking.ID.String()),
		)
	}()
}

// buildTravelers validates dates and seat labels before any remote call.
func buildTravelers(reqs []request.TravelerRequest) ([]*entity.Traveler, error) {
	now := time.Now().UTC()
	seen := make(map[string]struct{}, len(reqs))
	travelers := make([]*entity.Traveler, 0, len(reqs))

	for i, tr := range reqs {
		dob, err := parseDate(tr.DOB)
		if err != nil {
			return nil, &ValidationError{Fields: map[string]string{
				fmt.Sprintf("travelers[%d].dob", i): "Must be an ISO-8601 date",
			}}
		}

		t := &entity.Traveler{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			Position:   i,
			FirstName:  strings.TrimSpace(tr.FirstName),
			LastName:   strings.TrimSpace(tr.LastName),
			DOB:        dob,
			Gender:     entity.Gender(tr.Gender),
		}

		if tr.SeatNumber != nil && *tr.SeatNumber != "" {
			row, column, err := seatmap.ParseLabel(*tr.SeatNumber)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, *tr.SeatNumber)
			}
			label := seatmap.FormatLabel(row, column)
			if _, dup := seen[label]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateSeat, label)
			}
			seen[label] = struct{}{}
			t.SeatNumber = &label
		}

		travelers = append(travelers, t)
	}
	return travelers, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func parseBookingID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, &ValidationError{Fields: map[string]string{"id": "Must be a valid UUID"}}
	}
	return id, nil
}
