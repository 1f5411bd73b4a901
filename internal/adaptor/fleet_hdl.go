package adaptor

import (
	"net/http"

	"flight-booking/internal/dto/request"
	"flight-booking/internal/usecase"
	"flight-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FleetHandler struct {
	service usecase.FleetService
	debug   bool
	log     *zap.Logger
}

func NewFleetHandler(service usecase.FleetService, debug bool, log *zap.Logger) *FleetHandler {
	return &FleetHandler{
		service: service,
		debug:   debug,
		log:     log.With(zap.String("handler", "fleet")),
	}
}

// CreateAirplane handles POST /api/airplane
func (h *FleetHandler) CreateAirplane(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAirplaneRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	airplane, err := h.service.CreateAirplane(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, h.debug, err, "create airplane", nil)
		return
	}

	utils.ResponseCreated(w, "Airplane created", airplane)
}

// GetAirplane handles GET /api/airplane/{id}
func (h *FleetHandler) GetAirplane(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid airplane ID", nil)
		return
	}

	airplane, err := h.service.GetAirplane(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, h.debug, err, "get airplane", nil)
		return
	}

	utils.ResponseSuccess(w, "success", airplane)
}

// ListAirplanes handles GET /api/airplane
func (h *FleetHandler) ListAirplanes(w http.ResponseWriter, r *http.Request) {
	airplanes, err := h.service.ListAirplanes(r.Context())
	if err != nil {
		writeServiceError(w, h.log, h.debug, err, "list airplanes", nil)
		return
	}

	utils.ResponseSuccess(w, "success", airplanes)
}

// CreateAirport handles POST /api/airport
func (h *FleetHandler) CreateAirport(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAirportRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	airport, err := h.service.CreateAirport(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, h.debug, err, "create airport", nil)
		return
	}

	utils.ResponseCreated(w, "Airport created", airport)
}

// GetAirport handles GET /api/airport/{id}
func (h *FleetHandler) GetAirport(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid airport ID", nil)
		return
	}

	airport, err := h.service.GetAirport(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, h.debug, err, "get airport", nil)
		return
	}

	utils.ResponseSuccess(w, "success", airport)
}

// ListAirports handles GET /api/airport
func (h *FleetHandler) ListAirports(w http.ResponseWriter, r *http.Request) {
	airports, err := h.service.ListAirports(r.Context())
	if err != nil {
		writeServiceError(w, h.log, h.debug, err, "list airports", nil)
		return
	}

	utils.ResponseSuccess(w, "success", airports)
}
