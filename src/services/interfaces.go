package services

import (
	"context"
	"errors"
	"io"

	"github.com/username/fincast/backend/src/models"
)

// Define common service errors
var (
	ErrParsingFailed     = errors.New("csv parsing failed")
	ErrSessionNotFound   = errors.New("session not found")
	ErrNoValidRows       = errors.New("no valid rows")
	ErrNoForecast        = errors.New("no forecast available")
	ErrStaleRequest      = errors.New("request superseded by a newer one")
	ErrMalformedResponse = errors.New("malformed upstream response")
)

//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=services

// Forecaster calls the external forecasting service.
type Forecaster interface {
	Forecast(ctx context.Context, history []models.HistoryPoint, confidenceLevel float64) ([]models.ForecastPoint, error)
}

// Advisor calls the external narrative service.
type Advisor interface {
	Advise(ctx context.Context, payload models.AdvicePayload) (*models.Advice, error)
}

// UploadResult is returned when a session is created from an upload.
type UploadResult struct {
	SessionID   string                     `json:"sessionId"`
	ValidRows   []models.TransactionRecord `json:"validRows"`
	InvalidRows []models.InvalidRow        `json:"invalidRows"`
}

// ForecastView is the committed forecast of a session with its derived figures.
type ForecastView struct {
	Points          []models.ForecastPoint `json:"points"`
	ConfidenceLevel float64                `json:"confidenceLevel"`
	Summary         models.ForecastSummary `json:"summary"`
	Metrics         models.KeyMetrics      `json:"metrics"`
}

// DashboardService holds per-session state and runs the upload, forecast and advice flows.
type DashboardService interface {
	Upload(ctx context.Context, file io.Reader) (*UploadResult, error)
	CreateSession(ctx context.Context, records []models.RawRecord) (*UploadResult, error)
	Validate(records []models.RawRecord) models.ValidationResult

	Overview(sessionID string) (models.PortfolioOverview, error)
	Categories(sessionID string) ([]models.CategorySummary, error)

	RequestForecast(ctx context.Context, sessionID string, confidenceLevel *float64) (*ForecastView, error)
	Forecast(sessionID string) (*ForecastView, error)
	KeyMetrics(sessionID string) (models.KeyMetrics, error)

	AdvicePayload(sessionID string) (models.AdvicePayload, error)
	RequestAdvice(ctx context.Context, sessionID string) (*models.Advice, error)

	Report(sessionID string) (string, error)
	ForecastCSV(sessionID string) ([]byte, error)
}
