package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentMethodPaypal     PaymentMethod = "PAYPAL"
	PaymentMethodWallet     PaymentMethod = "WALLET"
)

type Payment struct {
	Base
	BookingID uuid.UUID     `db:"booking_id"`
	Amount    float64       `db:"amount"`
	Status    PaymentStatus `db:"status"`
	Method    PaymentMethod `db:"method"`
}
