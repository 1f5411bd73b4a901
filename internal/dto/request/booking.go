package request

type ContactRequest struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,phone"`
}

type TravelerRequest struct {
	FirstName  string  `json:"firstName" validate:"required,min=2"`
	LastName   string  `json:"lastName" validate:"required,min=2"`
	DOB        string  `json:"dob" validate:"required,isodate"`
	Gender     string  `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	SeatNumber *string `json:"seatNumber,omitempty" validate:"omitempty,seatlabel"`
}

type CreateBookingRequest struct {
	FlightID      string            `json:"flightId" validate:"required,min=4"`
	Contact       ContactRequest    `json:"contact" validate:"required"`
	PaymentMethod string            `json:"paymentMethod" validate:"required,oneof=CREDIT_CARD DEBIT_CARD PAYPAL WALLET"`
	Travelers     []TravelerRequest `json:"travelers" validate:"required,min=1,max=6,dive"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED"`
}
