package response

import (
	"time"

	"flight-booking/internal/data/entity"
)

type AirplaneResponse struct {
	ID         int64     `json:"id"`
	Model      string    `json:"model"`
	TotalSeats int       `json:"totalSeats"`
	CreatedAt  time.Time `json:"createdAt,omitzero"`
}

type AirportResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

func AirplaneToResponse(a *entity.Airplane) AirplaneResponse {
	return AirplaneResponse{
		ID:         a.ID,
		Model:      a.Model,
		TotalSeats: a.TotalSeats,
		CreatedAt:  a.CreatedAt,
	}
}

func AirportToResponse(a *entity.Airport) AirportResponse {
	return AirportResponse{
		ID:        a.ID,
		Name:      a.Name,
		Code:      a.Code,
		City:      a.City,
		CreatedAt: a.CreatedAt,
	}
}
