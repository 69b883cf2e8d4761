package services

import (
	"errors"
	"fmt"
	"net/http"
)

// Upstream service names used in errors and logs.
const (
	ServiceForecast = "forecast"
	ServiceAdvice   = "advice"
)

// User-facing messages when an upstream call fails without a usable reason.
const (
	ForecastFailedMessage = "Forecasting failed"
	AdviceFailedMessage   = "Failed to generate insights."
)

// UpstreamError is a failed call to the forecasting or advice service.
// Message is safe to show to the end user.
type UpstreamError struct {
	Service    string
	StatusCode int
	Message    string
	Retryable  bool
	Cause      error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s service: %s: %v", e.Service, e.Message, e.Cause)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s service returned %d: %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s service: %s", e.Service, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns whether this error is retryable.
func (e *UpstreamError) IsRetryable() bool {
	return e.Retryable
}

// retryableStatus reports gateway-style statuses worth another attempt.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// UserMessage extracts the message to show for an upstream failure.
func UserMessage(err error) string {
	var upErr *UpstreamError
	if errors.As(err, &upErr) && upErr.Message != "" {
		return upErr.Message
	}
	return ""
}
