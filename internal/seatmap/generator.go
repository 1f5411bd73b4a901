// Package seatmap builds the seat layout of a flight and encodes seat labels.
package seatmap

import (
	"errors"
	"fmt"
)

type SeatClass string

const (
	ClassFirst          SeatClass = "FIRST_CLASS"
	ClassBusiness       SeatClass = "BUSINESS"
	ClassPremiumEconomy SeatClass = "PREMIUM_ECONOMY"
	ClassEconomy        SeatClass = "ECONOMY"
)

const SeatsPerRow = 6

var ErrInvalidSeatCount = errors.New("total seats must be a positive multiple of 6")

// SeatInput is one generated seat, ready to be inserted.
type SeatInput struct {
	FlightID string
	Row      int
	Column   string
	Class    SeatClass
	IsBooked bool
}

func (s SeatInput) Label() string {
	return FormatLabel(s.Row, s.Column)
}

// Bands holds how many rows each class occupies, front of the cabin first.
type Bands struct {
	First          int
	Business       int
	PremiumEconomy int
	Economy        int
}

// RowBands splits totalRows into class bands: 10% first (min 1), 15% business
// (min 2), 15% premium economy (min 2), economy takes the rest.
// Small cabins can end up with no economy rows at all.
func RowBands(totalRows int) Bands {
	b := Bands{
		First:          max(1, totalRows*10/100),
		Business:       max(2, totalRows*15/100),
		PremiumEconomy: max(2, totalRows*15/100),
	}
	b.Economy = max(0, totalRows-b.First-b.Business-b.PremiumEconomy)
	return b
}

// ClassOf returns the class of a row under the given bands.
func (b Bands) ClassOf(row int) SeatClass {
	switch {
	case row <= b.First:
		return ClassFirst
	case row <= b.First+b.Business:
		return ClassBusiness
	case row <= b.First+b.Business+b.PremiumEconomy:
		return ClassPremiumEconomy
	default:
		return ClassEconomy
	}
}

// GenerateSeats returns exactly totalSeats seats for flightID, ordered by row
// then column. The result depends only on its arguments.
func GenerateSeats(totalSeats int, flightID string) ([]SeatInput, error) {
	if totalSeats <= 0 || totalSeats%SeatsPerRow != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSeatCount, totalSeats)
	}

	totalRows := totalSeats / SeatsPerRow
	bands := RowBands(totalRows)

	seats := make([]SeatInput, 0, totalSeats)
	for row := 1; row <= totalRows; row++ {
		class := bands.ClassOf(row)
		for _, column := range Columns {
			seats = append(seats, SeatInput{
				FlightID: flightID,
				Row:      row,
				Column:   column,
				Class:    class,
				IsBooked: false,
			})
		}
	}

	return seats, nil
}

var priceMultiplier = map[SeatClass]float64{
	ClassFirst:          3.0,
	ClassBusiness:       2.0,
	ClassPremiumEconomy: 1.4,
	ClassEconomy:        1.0,
}

// PriceFor is the fixed per-class seat price derived from the flight's base price.
func PriceFor(class SeatClass, basePrice float64) float64 {
	m, ok := priceMultiplier[class]
	if !ok {
		m = 1.0
	}
	return basePrice * m
}

func (c SeatClass) Valid() bool {
	_, ok := priceMultiplier[c]
	return ok
}
