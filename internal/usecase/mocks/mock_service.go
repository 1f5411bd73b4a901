package mocks

import (
	"context"

	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"

	"github.com/stretchr/testify/mock"
)

// MockFlightService is a mock implementation of usecase.FlightService
type MockFlightService struct {
	mock.Mock
}

func (m *MockFlightService) CreateFlight(ctx context.Context, req *request.CreateFlightRequest) (*response.FlightResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.FlightResponse), args.Error(1)
}

func (m *MockFlightService) GetFlight(ctx context.Context, id string) (*response.FlightDetailResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.FlightDetailResponse), args.Error(1)
}

func (m *MockFlightService) ListFlights(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.FlightDetailResponse], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.FlightDetailResponse]), args.Error(1)
}

func (m *MockFlightService) UpdateFlight(ctx context.Context, id string, req *request.UpdateFlightRequest) (*response.FlightResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.FlightResponse), args.Error(1)
}

func (m *MockFlightService) DeleteFlight(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightService) GetSeatMap(ctx context.Context, id string) (*response.SeatMapResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.SeatMapResponse), args.Error(1)
}

// MockSeatService is a mock implementation of usecase.SeatService
type MockSeatService struct {
	mock.Mock
}

func (m *MockSeatService) ReserveSeats(ctx context.Context, flightID string, seatNumbers []string) (*response.ReserveSeatsResponse, error) {
	args := m.Called(ctx, flightID, seatNumbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ReserveSeatsResponse), args.Error(1)
}

func (m *MockSeatService) ReleaseSeats(ctx context.Context, flightID string, seatNumbers []string) (*response.ReserveSeatsResponse, error) {
	args := m.Called(ctx, flightID, seatNumbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ReserveSeatsResponse), args.Error(1)
}

// MockBookingService is a mock implementation of usecase.BookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateGuestBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) UpdateBookingStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) GetBookingsByContact(ctx context.Context, email string) ([]response.BookingResponse, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response.BookingResponse), args.Error(1)
}
