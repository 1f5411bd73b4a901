package usecase

import (
	"context"
	"testing"

	"flight-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAirplane_SeatCountMustFillRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, seats := range []int{0, -6, 7, 185} {
		_, err := f.svc.Fleet.CreateAirplane(ctx, &request.CreateAirplaneRequest{Model: "Boeing 737", TotalSeats: seats})
		assert.ErrorIs(t, err, ErrInvalidSeatCount, "seats=%d", seats)
	}

	plane, err := f.svc.Fleet.CreateAirplane(ctx, &request.CreateAirplaneRequest{Model: " Boeing 737 ", TotalSeats: 186})
	require.NoError(t, err)
	assert.Equal(t, "Boeing 737", plane.Model)

	got, err := f.svc.Fleet.GetAirplane(ctx, plane.ID)
	require.NoError(t, err)
	assert.Equal(t, 186, got.TotalSeats)

	_, err = f.svc.Fleet.GetAirplane(ctx, 404)
	assert.ErrorIs(t, err, ErrAirplaneNotFound)

	list, err := f.svc.Fleet.ListAirplanes(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateAirport_DuplicateCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Fleet.CreateAirport(ctx, &request.CreateAirportRequest{Name: "Juanda", Code: "SUB", City: "Surabaya"})
	require.NoError(t, err)

	_, err = f.svc.Fleet.CreateAirport(ctx, &request.CreateAirportRequest{Name: "Juanda Intl", Code: "SUB", City: "Surabaya"})
	assert.ErrorIs(t, err, ErrAirportExists)

	_, err = f.svc.Fleet.GetAirport(ctx, 999)
	assert.ErrorIs(t, err, ErrAirportNotFound)

	list, err := f.svc.Fleet.ListAirports(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
