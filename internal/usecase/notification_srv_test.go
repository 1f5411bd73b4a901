package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"flight-booking/internal/dto/event"
	"flight-booking/pkg/broker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func notificationBody(t *testing.T, typ event.Type, email string) []byte {
	t.Helper()
	booked := time.Date(2026, 11, 2, 9, 30, 0, 0, time.UTC)
	ev := event.BookingEvent{
		Type: typ,
		Booking: event.BookingPayload{
			ID:     "b7f0c0de-0000-4000-8000-000000000001",
			Status: "CONFIRMED",
			Travelers: []event.TravelerPayload{
				{FirstName: "Ayu", LastName: "Lestari", SeatNumber: seat("12A")},
				{FirstName: "Budi", LastName: "Santoso"},
			},
			Flight: &event.FlightPayload{
				ID:            "EZ00001",
				Origin:        "CGK",
				Destination:   "DPS",
				DepartureTime: booked.Add(24 * time.Hour),
				ArrivalTime:   booked.Add(26 * time.Hour),
			},
			BookingTime: &booked,
			UpdateTime:  &booked,
		},
		Contact:   event.ContactPayload{Email: email, Phone: "+6281234567890"},
		Timestamp: booked,
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)
	return body
}

func TestHandleMessage_SendsEmail(t *testing.T) {
	tests := []struct {
		typ     event.Type
		subject string
		body    string
	}{
		{event.BookingCreated, "Booking confirmation b7f0c0de-0000-4000-8000-000000000001", "Thank you for your booking."},
		{event.BookingStatusChanged, "Booking b7f0c0de-0000-4000-8000-000000000001 confirmed", "is now CONFIRMED"},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			m := &fakeMailer{}
			svc := NewNotificationService(m, zap.NewNop())

			require.NoError(t, svc.HandleMessage(context.Background(), notificationBody(t, tt.typ, "ayu@example.com")))

			require.Len(t, m.sent, 1)
			assert.Equal(t, "ayu@example.com", m.sent[0].To)
			assert.Equal(t, tt.subject, m.sent[0].Subject)
			assert.Contains(t, m.sent[0].Body, tt.body)
			assert.Contains(t, m.sent[0].Body, "Flight EZ00001 CGK -> DPS")
			assert.Contains(t, m.sent[0].Body, "Ayu Lestari, seat 12A")
			assert.Contains(t, m.sent[0].Body, "Budi Santoso, seat unassigned")
		})
	}
}

func TestHandleMessage_DiscardsUnusablePayloads(t *testing.T) {
	svc := NewNotificationService(&fakeMailer{}, zap.NewNop())
	ctx := context.Background()

	assert.ErrorIs(t, svc.HandleMessage(ctx, []byte("{not json")), broker.ErrDiscard)
	assert.ErrorIs(t, svc.HandleMessage(ctx, notificationBody(t, event.BookingCreated, "")), broker.ErrDiscard)
	assert.ErrorIs(t, svc.HandleMessage(ctx, notificationBody(t, "BOOKING_DELETED", "a@b.com")), broker.ErrDiscard)
}

func TestHandleMessage_MailFailureIsRetried(t *testing.T) {
	m := &fakeMailer{err: errors.New("smtp: 421 try again later")}
	svc := NewNotificationService(m, zap.NewNop())

	err := svc.HandleMessage(context.Background(), notificationBody(t, event.BookingCreated, "ayu@example.com"))

	require.Error(t, err)
	assert.False(t, errors.Is(err, broker.ErrDiscard))
}
