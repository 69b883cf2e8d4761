package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/username/fincast/backend/src/config"
	"github.com/username/fincast/backend/src/logger"
	"github.com/username/fincast/backend/src/models"
)

const maxUpstreamBodyBytes = 10 << 20

// forecastDateLayouts are the ds formats accepted from the forecasting service.
var forecastDateLayouts = []string{
	models.DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ForecastClient posts the validated history to {baseURL}/forecast.
type ForecastClient struct {
	endpoint   string
	format     string
	httpClient *http.Client
	retry      RetryConfig
}

// NewForecastClient creates a client for the forecasting service. format is
// config.ForecastFormatArray or config.ForecastFormatWrapped.
func NewForecastClient(baseURL, format string, timeout time.Duration, retry RetryConfig) *ForecastClient {
	return &ForecastClient{
		endpoint:   strings.TrimRight(baseURL, "/") + "/forecast",
		format:     format,
		httpClient: &http.Client{Timeout: timeout},
		retry:      retry,
	}
}

type wrappedForecastRequest struct {
	Data            []models.HistoryPoint `json:"data"`
	ConfidenceLevel float64               `json:"confidenceLevel"`
}

type forecastErrorBody struct {
	Detail any    `json:"detail"`
	Error  string `json:"error"`
}

type wirePoint struct {
	DS        *string  `json:"ds"`
	YHat      *float64 `json:"yhat"`
	Actual    *float64 `json:"actual"`
	YHatLower *float64 `json:"yhat_lower"`
	YHatUpper *float64 `json:"yhat_upper"`
}

// Forecast returns the service's points sorted by date. confidenceLevel is a percentage.
func (c *ForecastClient) Forecast(ctx context.Context, history []models.HistoryPoint, confidenceLevel float64) ([]models.ForecastPoint, error) {
	var body any = history
	if c.format == config.ForecastFormatWrapped {
		body = wrappedForecastRequest{Data: history, ConfidenceLevel: confidenceLevel / 100}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode forecast request: %w", err)
	}

	return WithRetry(ctx, c.retry, func(ctx context.Context) ([]models.ForecastPoint, error) {
		return c.forecastOnce(ctx, payload)
	})
}

func (c *ForecastClient) forecastOnce(ctx context.Context, payload []byte) ([]models.ForecastPoint, error) {
	log := logger.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{
			Service:   ServiceForecast,
			Message:   ForecastFailedMessage,
			Retryable: ctx.Err() == nil,
			Cause:     err,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBodyBytes))
	if err != nil {
		return nil, &UpstreamError{Service: ServiceForecast, Message: ForecastFailedMessage, Retryable: ctx.Err() == nil, Cause: err}
	}
	log.Debug("Forecast service responded", "status", resp.StatusCode, "duration", time.Since(start), "bytes", len(raw))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			Service:    ServiceForecast,
			StatusCode: resp.StatusCode,
			Message:    forecastErrorMessage(raw),
			Retryable:  retryableStatus(resp.StatusCode),
		}
	}

	points, err := decodeForecastPoints(raw)
	if err != nil {
		log.Warn("Forecast service returned a malformed body", "error", err)
		return nil, &UpstreamError{Service: ServiceForecast, StatusCode: resp.StatusCode, Message: ForecastFailedMessage, Cause: err}
	}
	return points, nil
}

// forecastErrorMessage surfaces the service's detail or error string verbatim.
func forecastErrorMessage(raw []byte) string {
	var body forecastErrorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ForecastFailedMessage
	}
	if detail, ok := body.Detail.(string); ok && strings.TrimSpace(detail) != "" {
		return detail
	}
	if strings.TrimSpace(body.Error) != "" {
		return body.Error
	}
	return ForecastFailedMessage
}

// decodeForecastPoints checks every point before anything is used.
func decodeForecastPoints(raw []byte) ([]models.ForecastPoint, error) {
	var wire []wirePoint
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of points: %v", ErrMalformedResponse, err)
	}

	points := make([]models.ForecastPoint, 0, len(wire))
	for i, w := range wire {
		if w.DS == nil {
			return nil, fmt.Errorf("%w: point %d has no ds", ErrMalformedResponse, i)
		}
		date, err := parseForecastDate(*w.DS)
		if err != nil {
			return nil, fmt.Errorf("%w: point %d: %v", ErrMalformedResponse, i, err)
		}
		if w.YHat == nil || !isFinite(*w.YHat) {
			return nil, fmt.Errorf("%w: point %d has no finite yhat", ErrMalformedResponse, i)
		}
		for name, v := range map[string]*float64{"actual": w.Actual, "yhat_lower": w.YHatLower, "yhat_upper": w.YHatUpper} {
			if v != nil && !isFinite(*v) {
				return nil, fmt.Errorf("%w: point %d has a non-finite %s", ErrMalformedResponse, i, name)
			}
		}
		points = append(points, models.ForecastPoint{
			Date:       date,
			Predicted:  *w.YHat,
			Actual:     w.Actual,
			LowerBound: w.YHatLower,
			UpperBound: w.YHatUpper,
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date.Time)
	})
	return points, nil
}

func parseForecastDate(s string) (models.CalendarDate, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range forecastDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return models.NewCalendarDate(t), nil
		}
	}
	return models.CalendarDate{}, fmt.Errorf("unrecognised ds %q", s)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
