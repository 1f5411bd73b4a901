package response

import (
	"time"

	"flight-booking/internal/data/entity"
)

type ContactResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type TravelerResponse struct {
	ID         string        `json:"id"`
	FirstName  string        `json:"firstName"`
	LastName   string        `json:"lastName"`
	DOB        time.Time     `json:"dob"`
	Gender     entity.Gender `json:"gender"`
	SeatNumber *string       `json:"seatNumber,omitempty"`
	SeatID     *string       `json:"seatId,omitempty"`
}

type PaymentResponse struct {
	ID        string               `json:"id"`
	Amount    float64              `json:"amount"`
	Status    entity.PaymentStatus `json:"status"`
	Method    entity.PaymentMethod `json:"paymentMethod"`
	CreatedAt time.Time            `json:"createdAt"`
}

type BookingResponse struct {
	ID          string               `json:"id"`
	FlightID    string               `json:"flightId"`
	Status      entity.BookingStatus `json:"status"`
	Contact     *ContactResponse     `json:"contact,omitempty"`
	Travelers   []TravelerResponse   `json:"travelers"`
	Payments    []PaymentResponse    `json:"payments,omitempty"`
	BookingTime time.Time            `json:"bookingTime"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID.String(),
		FlightID:    b.FlightID,
		Status:      b.Status,
		Travelers:   make([]TravelerResponse, 0, len(b.Travelers)),
		BookingTime: b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	if b.Contact != nil {
		resp.Contact = &ContactResponse{
			ID:    b.Contact.ID.String(),
			Email: b.Contact.Email,
			Phone: b.Contact.Phone,
		}
	}

	for _, t := range b.Travelers {
		tr := TravelerResponse{
			ID:         t.ID.String(),
			FirstName:  t.FirstName,
			LastName:   t.LastName,
			DOB:        t.DOB,
			Gender:     t.Gender,
			SeatNumber: t.SeatNumber,
		}
		if t.SeatID != nil {
			id := t.SeatID.String()
			tr.SeatID = &id
		}
		resp.Travelers = append(resp.Travelers, tr)
	}

	for _, p := range b.Payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:        p.ID.String(),
			Amount:    p.Amount,
			Status:    p.Status,
			Method:    p.Method,
			CreatedAt: p.CreatedAt,
		})
	}

	return resp
}
