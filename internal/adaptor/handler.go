package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"flight-booking/internal/usecase"
	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Fleet   *FleetHandler
	Flight  *FlightHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	debug := config.App.Debug && !config.IsProduction()
	return &Handler{
		Fleet:   NewFleetHandler(service.Fleet, debug, log),
		Flight:  NewFlightHandler(service.Flight, service.Seat, debug, log),
		Booking: NewBookingHandler(service.Booking, debug, log),
	}
}

// decodeAndValidate reads a JSON body into dst and runs the struct rules.
// It writes the 400 response itself and reports false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", utils.ErrorBody{Message: err.Error()})
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

// writeServiceError maps service errors to a status code. data is sent as
// the data member of the failure response, for callers that need it.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, debug bool, err error, operation string, data any) {
	var (
		validationErr  *usecase.ValidationError
		unavailableErr *usecase.SeatUnavailableError
		notReservedErr *usecase.SeatNotReservedError
		rejectedErr    *usecase.SeatReservationRejectedError
	)

	code := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseJSON(w, http.StatusBadRequest, false, "Validation failed", data, validationErr.Fields)
		return

	case errors.Is(err, usecase.ErrInvalidFormat),
		errors.Is(err, usecase.ErrDuplicateSeat),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidSchedule),
		errors.Is(err, usecase.ErrInvalidSeatCount):
		code = http.StatusBadRequest

	case errors.Is(err, usecase.ErrFlightNotFound),
		errors.Is(err, usecase.ErrAirplaneNotFound),
		errors.Is(err, usecase.ErrAirportNotFound),
		errors.Is(err, usecase.ErrBookingNotFound):
		code = http.StatusNotFound

	case errors.As(err, &unavailableErr),
		errors.As(err, &notReservedErr),
		errors.Is(err, usecase.ErrAirportExists),
		errors.Is(err, usecase.ErrFlightHasBookings):
		code = http.StatusConflict

	case errors.Is(err, usecase.ErrSeatReservationUnreachable),
		errors.As(err, &rejectedErr):
		code = http.StatusBadGateway
	}

	if code == http.StatusInternalServerError {
		log.Error(operation+" failed", zap.Error(err), zap.String("operation", operation))
		var details any
		if debug {
			details = err.Error()
		}
		if data != nil {
			utils.ResponseJSON(w, code, false, "Internal server error", data, utils.ErrorBody{Message: "Internal server error", Details: details})
			return
		}
		utils.ResponseInternalError(w, "Internal server error", nil, details)
		return
	}

	log.Warn(operation+" failed", zap.Error(err), zap.Int("status", code))

	if data != nil {
		utils.ResponseJSON(w, code, false, err.Error(), data, utils.ErrorBody{Message: err.Error()})
		return
	}

	switch code {
	case http.StatusNotFound:
		utils.ResponseNotFound(w, err.Error())
	case http.StatusConflict:
		utils.ResponseConflict(w, err.Error())
	case http.StatusBadGateway:
		utils.ResponseBadGateway(w, "Seat reservation failed", err)
	default:
		utils.ResponseBadRequest(w, err.Error(), utils.ErrorBody{Message: err.Error()})
	}
}
