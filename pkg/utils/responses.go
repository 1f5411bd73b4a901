package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Err     any    `json:"err,omitempty"`
}

// ErrorBody is the "err" member of a failed response.
type ErrorBody struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, success bool, message string, data, errBody any) {
	response := Response{
		Success: success,
		Message: message,
		Data:    data,
		Err:     errBody,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, true, message, data, nil)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, true, message, data, nil)
}

// ------------- Error responses -------------

// returns 400 Bad Request, errors is usually a field -> message map
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	ResponseJSON(w, http.StatusBadRequest, false, message, nil, errors)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusNotFound, false, message, nil, ErrorBody{Message: message})
}

// returns 409 Conflict
func ResponseConflict(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusConflict, false, message, nil, ErrorBody{Message: message})
}

// returns 429 Too Many Requests
func ResponseTooManyRequests(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusTooManyRequests, false, message, nil, ErrorBody{Message: message})
}

// returns 502 Bad Gateway
func ResponseBadGateway(w http.ResponseWriter, message string, cause error) {
	ResponseJSON(w, http.StatusBadGateway, false, message, nil, ErrorBody{Message: cause.Error()})
}

// returns 500 Internal Server Error. details is only filled outside production.
func ResponseInternalError(w http.ResponseWriter, message string, cause error, details any) {
	body := ErrorBody{Message: message}
	if cause != nil {
		body.Message = cause.Error()
	}
	body.Details = details
	ResponseJSON(w, http.StatusInternalServerError, false, message, nil, body)
}
