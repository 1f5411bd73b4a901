package usecase

import (
	"context"
	"testing"

	"flight-booking/internal/dto/request"
	"flight-booking/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	store     *memStore
	cache     *memCache
	publisher *fakePublisher
	seats     *inProcessSeats
	svc       *Service
	config    *utils.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:     newMemStore(),
		cache:     newMemCache(),
		publisher: &fakePublisher{},
		config: &utils.Config{
			Broker: utils.BrokerConfig{NotificationQueue: "notifications"},
		},
	}

	repo := f.store.repository()
	f.seats = &inProcessSeats{svc: NewSeatService(repo, f.cache, zap.NewNop())}
	f.svc = NewService(repo, f.config, zap.NewNop(), Deps{
		Cache:     f.cache,
		Seats:     f.seats,
		Publisher: f.publisher,
		Mailer:    &fakeMailer{},
	})
	return f
}

// withBooking rebuilds the booking service, e.g. after changing config or
// the seat client.
func (f *fixture) withBooking(seats SeatReservationClient) BookingService {
	return NewBookingService(f.store.repository(), seats, f.publisher, f.config, zap.NewNop())
}

// createFlight registers an airplane with totalSeats and two airports, then
// creates a flight through the service.
func (f *fixture) createFlight(t *testing.T, totalSeats int) string {
	t.Helper()
	ctx := context.Background()

	plane, err := f.svc.Fleet.CreateAirplane(ctx, &request.CreateAirplaneRequest{Model: "Airbus A320", TotalSeats: totalSeats})
	require.NoError(t, err)

	origin, err := f.svc.Fleet.CreateAirport(ctx, &request.CreateAirportRequest{Name: "Soekarno-Hatta", Code: nextCode(), City: "Jakarta"})
	require.NoError(t, err)
	dest, err := f.svc.Fleet.CreateAirport(ctx, &request.CreateAirportRequest{Name: "Ngurah Rai", Code: nextCode(), City: "Denpasar"})
	require.NoError(t, err)

	flight, err := f.svc.Flight.CreateFlight(ctx, &request.CreateFlightRequest{
		AirplaneID:    plane.ID,
		OriginID:      origin.ID,
		DestinationID: dest.ID,
		DepartureTime: "2026-12-01T08:00:00Z",
		ArrivalTime:   "2026-12-01T10:00:00Z",
		BasePrice:     100,
	})
	require.NoError(t, err)
	return flight.ID
}

var codeSeq = 0

func nextCode() string {
	codeSeq++
	return string([]byte{'A' + byte(codeSeq/676%26), 'A' + byte(codeSeq/26%26), 'A' + byte(codeSeq%26)})
}

func seat(label string) *string {
	return &label
}

func bookingRequest(flightID string, seats ...*string) *request.CreateBookingRequest {
	req := &request.CreateBookingRequest{
		FlightID:      flightID,
		Contact:       request.ContactRequest{Email: "Guest@Example.com", Phone: "+6281234567890"},
		PaymentMethod: "CREDIT_CARD",
	}
	for i, s := range seats {
		req.Travelers = append(req.Travelers, request.TravelerRequest{
			FirstName:  "Traveler",
			LastName:   string(rune('A' + i)) + "son",
			DOB:        "1990-05-17",
			Gender:     "FEMALE",
			SeatNumber: s,
		})
	}
	return req
}
