package adaptor

import (
	"encoding/json"
	"net/http"

	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/internal/usecase"
	"flight-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FlightHandler struct {
	flights usecase.FlightService
	seats   usecase.SeatService
	debug   bool
	log     *zap.Logger
}

func NewFlightHandler(flights usecase.FlightService, seats usecase.SeatService, debug bool, log *zap.Logger) *FlightHandler {
	return &FlightHandler{
		flights: flights,
		seats:   seats,
		debug:   debug,
		log:     log.With(zap.String("handler", "flight")),
	}
}

// CreateFlight handles POST /api/flight/create
func (h *FlightHandler) CreateFlight(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFlightRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	flight, err := h.flights.CreateFlight(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, h.debug, err, "create flight", nil)
		return
	}

	utils.ResponseCreated(w, "Flight created", flight)
}

// ReserveSeats handles POST /api/flight/reserve-seat
func (h *FlightHandler) ReserveSeats(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeSeats(w, r)
	if !ok {
		return
	}

	result, err := h.seats.ReserveSeats(r.Context(), req.FlightID, req.SeatNumbers)
	if err != nil {
		writeServiceError(w, h.log, h.debug, err, "reserve seats", response.SeatUnavailableData{Available: false})
		return
	}

	utils.ResponseSuccess(w, "Seats reserved", result)
}

// ReleaseSeats handles POST /api/flight/release-seat
func (h *FlightHandler) ReleaseSeats(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeSeats(w, r)
	if !ok {
		return
	}

	result, err := h.seats.ReleaseSeats(r.Context(), req.FlightID, req.SeatNumbers)
	if err != nil {
		writeServiceError(w, h.log, h.debug, err, "release seats", response.SeatUnavailableData{Available: false})
		return
	}

	utils.ResponseSuccess(w, "Seats released", result)
}

// decodeSeats keeps the reserve-seat failure shape for malformed input too.
func (h *FlightHandler) decodeSeats(w http.ResponseWriter, r *http.Request) (*request.ReserveSeatsRequest, bool) {
	unavailable := response.SeatUnavailableData{Available: false}

	var req request.ReserveSeatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseJSON(w, http.StatusBadRequest, false, "Invalid request body", unavailable, utils.ErrorBody{Message: err.Error()})
		return nil, false
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		h.log.Warn("Seat request validation failed", zap.Any("errors", validationErrors))
		utils.ResponseJSON(w, http.StatusBadRequest, false, "Validation failed", unavailable, utils.ErrorBody{
			Message: utils.FormatValidationErrors(validationErrors),
			Details: validationErrors,
		})
		return nil, false
	}
	return &req, true
}

// ListFlights handles GET /api/flight
func (h *FlightHandler) ListFlights(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.NewPaginatedRequest(query.Get("page"), query.Get("perPage"))

	flights, err := h.flights.ListFlights(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, h.debug, err, "list flights", nil)
		return
	}

	utils.ResponseSuccess(w, "success", flights)
}

// GetFlight handles GET /api/flight/{id}
func (h *FlightHandler) GetFlight(w http.ResponseWriter, r *http.Request) {
	flight, err := h.flights.GetFlight(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, h.debug, err, "get flight", nil)
		return
	}

	utils.ResponseSuccess(w, "success", flight)
}

// GetSeatMap handles GET /api/flight/{id}/seats
func (h *FlightHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	seats, err := h.flights.GetSeatMap(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, h.debug, err, "get seat map", nil)
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// UpdateFlight handles PUT /api/flight/{id}
func (h *FlightHandler) UpdateFlight(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateFlightRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	flight, err := h.flights.UpdateFlight(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, h.debug, err, "update flight", nil)
		return
	}

	utils.ResponseSuccess(w, "Flight updated", flight)
}

// DeleteFlight handles DELETE /api/flight/{id}
func (h *FlightHandler) DeleteFlight(w http.ResponseWriter, r *http.Request) {
	if err := h.flights.DeleteFlight(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, h.debug, err, "delete flight", nil)
		return
	}

	utils.ResponseSuccess(w, "Flight deleted", nil)
}
