package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type seatBatch struct {
	FlightID string   `json:"flightId" validate:"required"`
	Seats    []string `json:"seatNumbers" validate:"required,min=1,dive,seatlabel"`
}

type traveler struct {
	DOB   string `json:"dob" validate:"required,isodate"`
	Phone string `json:"phone" validate:"required,phone"`
}

func TestValidateStruct_SeatLabels(t *testing.T) {
	assert.Nil(t, ValidateStruct(seatBatch{FlightID: "EZ00001", Seats: []string{"1A", "30F", "120C"}}))

	errs := ValidateStruct(seatBatch{Seats: []string{"1A", "0B", "12G", "a1"}})
	assert.Equal(t, "This field is required", errs["flightId"])
	assert.NotContains(t, errs, "seatNumbers[0]")
	assert.Contains(t, errs, "seatNumbers[1]")
	assert.Contains(t, errs, "seatNumbers[2]")
	assert.Contains(t, errs, "seatNumbers[3]")
}

func TestValidateStruct_DatesAndPhones(t *testing.T) {
	assert.Nil(t, ValidateStruct(traveler{DOB: "1990-05-17", Phone: "+62 812 3456 7890"}))
	assert.Nil(t, ValidateStruct(traveler{DOB: "1990-05-17T00:00:00Z", Phone: "081234567890"}))

	errs := ValidateStruct(traveler{DOB: "17/05/1990", Phone: "call me"})
	assert.Equal(t, "Must be an ISO-8601 date", errs["dob"])
	assert.Contains(t, errs, "phone")
}

func TestFormatValidationErrors_Sorted(t *testing.T) {
	got := FormatValidationErrors(map[string]string{"b": "second", "a": "first"})
	assert.Equal(t, "a: first; b: second", got)
}
