package request

type CreateAirplaneRequest struct {
	Model      string `json:"model" validate:"required,min=3,max=100"`
	TotalSeats int    `json:"totalSeats" validate:"required,gt=0"`
}

type CreateAirportRequest struct {
	Name string `json:"name" validate:"required,min=3,max=150"`
	Code string `json:"code" validate:"required,len=3,uppercase"`
	City string `json:"city" validate:"required,max=100"`
}
