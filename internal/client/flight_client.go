// Package client calls the flight service's seat endpoints over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	reservePath = "/api/flight/reserve-seat"
	releasePath = "/api/flight/release-seat"

	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 1 << 20
)

// ErrSeatReservationUnreachable means the flight service could not be reached
// or did not answer in time.
var ErrSeatReservationUnreachable = errors.New("seat reservation service unreachable")

// SeatReservationRejectedError is returned when the flight service answered
// but did not confirm the operation.
type SeatReservationRejectedError struct {
	StatusCode int
	Message    string
}

func (e *SeatReservationRejectedError) Error() string {
	return fmt.Sprintf("seat reservation rejected: %s", e.Message)
}

type seatsRequest struct {
	FlightID    string   `json:"flightId"`
	SeatNumbers []string `json:"seatNumbers"`
}

// envelope mirrors utils.Response with the fields the client reads.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Success bool `json:"success"`
	} `json:"data"`
	Err *utils.ErrorBody `json:"err"`
}

type FlightClient struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewFlightClient(cfg utils.FlightServiceConfig, log *zap.Logger) *FlightClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &FlightClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With(zap.String("client", "flight")),
	}
}

// ReserveSeats asks the flight service to book every label or none of them.
func (c *FlightClient) ReserveSeats(ctx context.Context, flightID string, seatNumbers []string) error {
	return c.post(ctx, reservePath, flightID, seatNumbers)
}

// ReleaseSeats returns previously reserved labels to the inventory.
func (c *FlightClient) ReleaseSeats(ctx context.Context, flightID string, seatNumbers []string) error {
	return c.post(ctx, releasePath, flightID, seatNumbers)
}

func (c *FlightClient) post(ctx context.Context, path, flightID string, seatNumbers []string) error {
	payload, err := json.Marshal(seatsRequest{FlightID: flightID, SeatNumbers: seatNumbers})
	if err != nil {
		return fmt.Errorf("encode seat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build seat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("Flight service call failed",
			zap.Error(err),
			zap.String("path", path),
			zap.String("flight_id", flightID),
			zap.Duration("duration", time.Since(start)),
		)
		return fmt.Errorf("%w: %v", ErrSeatReservationUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrSeatReservationUnreachable, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.log.Warn("Flight service returned a non-JSON body",
			zap.Int("status", resp.StatusCode),
			zap.String("path", path),
		)
		return &SeatReservationRejectedError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected response (HTTP %d)", resp.StatusCode),
		}
	}

	if resp.StatusCode >= 300 || !env.Success || !env.Data.Success {
		msg := env.Message
		if env.Err != nil && env.Err.Message != "" {
			msg = env.Err.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		c.log.Warn("Flight service rejected seats",
			zap.Int("status", resp.StatusCode),
			zap.String("path", path),
			zap.String("flight_id", flightID),
			zap.Strings("seats", seatNumbers),
			zap.String("reason", msg),
		)
		return &SeatReservationRejectedError{StatusCode: resp.StatusCode, Message: msg}
	}

	c.log.Debug("Flight service accepted seats",
		zap.String("path", path),
		zap.String("flight_id", flightID),
		zap.Strings("seats", seatNumbers),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
