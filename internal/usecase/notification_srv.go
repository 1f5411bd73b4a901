package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"flight-booking/internal/dto/event"
	"flight-booking/pkg/broker"
	"flight-booking/pkg/mailer"

	"go.uber.org/zap"
)

// NotificationService turns booking events into customer emails.
type NotificationService interface {
	HandleMessage(ctx context.Context, body []byte) error
}

type notificationService struct {
	mailer mailer.Mailer
	log    *zap.Logger
}

func NewNotificationService(m mailer.Mailer, log *zap.Logger) NotificationService {
	return &notificationService{
		mailer: m,
		log:    log.With(zap.String("service", "notification")),
	}
}

// HandleMessage matches broker.HandlerFunc. Payloads that can never be
// processed are discarded; mail failures are returned so the message is
// redelivered.
func (s *notificationService) HandleMessage(ctx context.Context, body []byte) error {
	var ev event.BookingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		s.log.Error("Malformed notification payload", zap.Error(err), zap.ByteString("body", body))
		return fmt.Errorf("%w: %v", broker.ErrDiscard, err)
	}

	if ev.Contact.Email == "" {
		s.log.Warn("Notification without contact email", zap.String("booking_id", ev.Booking.ID))
		return fmt.Errorf("%w: booking %s has no contact email", broker.ErrDiscard, ev.Booking.ID)
	}

	var msg mailer.Message
	switch ev.Type {
	case event.BookingCreated:
		msg = confirmationEmail(ev)
	case event.BookingStatusChanged:
		msg = statusEmail(ev)
	default:
		s.log.Warn("Unknown notification type", zap.String("type", string(ev.Type)))
		return fmt.Errorf("%w: unknown type %q", broker.ErrDiscard, ev.Type)
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Error("Failed to send notification email",
			zap.Error(err),
			zap.String("type", string(ev.Type)),
			zap.String("booking_id", ev.Booking.ID),
		)
		return err
	}

	s.log.Info("Notification sent",
		zap.String("type", string(ev.Type)),
		zap.String("booking_id", ev.Booking.ID),
		zap.String("to", ev.Contact.Email),
	)
	return nil
}

func confirmationEmail(ev event.BookingEvent) mailer.Message {
	var b strings.Builder
	b.WriteString("Thank you for your booking.\n\n")
	fmt.Fprintf(&b, "Booking reference: %s\n", ev.Booking.ID)
	fmt.Fprintf(&b, "Status: %s\n", ev.Booking.Status)
	if ev.Booking.BookingTime != nil {
		fmt.Fprintf(&b, "Booked at: %s\n", ev.Booking.BookingTime.UTC().Format(time.RFC1123))
	}
	writeFlight(&b, ev.Booking.Flight)
	writeTravelers(&b, ev.Booking.Travelers)

	return mailer.Message{
		To:      ev.Contact.Email,
		Subject: fmt.Sprintf("Booking confirmation %s", ev.Booking.ID),
		Body:    b.String(),
	}
}

func statusEmail(ev event.BookingEvent) mailer.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Your booking %s is now %s.\n", ev.Booking.ID, ev.Booking.Status)
	if ev.Booking.UpdateTime != nil {
		fmt.Fprintf(&b, "Updated at: %s\n", ev.Booking.UpdateTime.UTC().Format(time.RFC1123))
	}
	writeFlight(&b, ev.Booking.Flight)
	writeTravelers(&b, ev.Booking.Travelers)

	return mailer.Message{
		To:      ev.Contact.Email,
		Subject: fmt.Sprintf("Booking %s %s", ev.Booking.ID, strings.ToLower(ev.Booking.Status)),
		Body:    b.String(),
	}
}

func writeFlight(b *strings.Builder, f *event.FlightPayload) {
	if f == nil {
		return
	}
	fmt.Fprintf(b, "\nFlight %s", f.ID)
	if f.Origin != "" && f.Destination != "" {
		fmt.Fprintf(b, " %s -> %s", f.Origin, f.Destination)
	}
	fmt.Fprintf(b, "\nDeparture: %s\nArrival: %s\n",
		f.DepartureTime.UTC().Format(time.RFC1123),
		f.ArrivalTime.UTC().Format(time.RFC1123),
	)
}

func writeTravelers(b *strings.Builder, travelers []event.TravelerPayload) {
	if len(travelers) == 0 {
		return
	}
	b.WriteString("\nTravelers:\n")
	for _, t := range travelers {
		seat := "unassigned"
		if t.SeatNumber != nil {
			seat = *t.SeatNumber
		}
		fmt.Fprintf(b, "  %s %s, seat %s\n", t.FirstName, t.LastName, seat)
	}
}
