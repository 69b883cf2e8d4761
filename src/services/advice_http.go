package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/username/fincast/backend/src/logger"
	"github.com/username/fincast/backend/src/models"
)

// HTTPAdvisor posts the payload to an advice service that answers with the narrative JSON.
type HTTPAdvisor struct {
	endpoint   string
	httpClient *http.Client
	retry      RetryConfig
}

func NewHTTPAdvisor(endpoint string, timeout time.Duration, retry RetryConfig) *HTTPAdvisor {
	return &HTTPAdvisor{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		retry:      retry,
	}
}

func (a *HTTPAdvisor) Advise(ctx context.Context, payload models.AdvicePayload) (*models.Advice, error) {
	if a.endpoint == "" {
		return nil, &UpstreamError{Service: ServiceAdvice, Message: AdviceFailedMessage, Cause: errors.New("ADVICE_API_URL is not configured")}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode advice payload: %w", err)
	}

	return WithRetry(ctx, a.retry, func(ctx context.Context) (*models.Advice, error) {
		return a.adviseOnce(ctx, body, payload)
	})
}

func (a *HTTPAdvisor) adviseOnce(ctx context.Context, body []byte, payload models.AdvicePayload) (*models.Advice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build advice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Service: ServiceAdvice, Message: AdviceFailedMessage, Retryable: ctx.Err() == nil, Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBodyBytes))
	if err != nil {
		return nil, &UpstreamError{Service: ServiceAdvice, Message: AdviceFailedMessage, Retryable: ctx.Err() == nil, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.FromContext(ctx).Warn("Advice service returned an error", "status", resp.StatusCode, "body", truncate(string(raw), 300))
		return nil, &UpstreamError{
			Service:    ServiceAdvice,
			StatusCode: resp.StatusCode,
			Message:    AdviceFailedMessage,
			Retryable:  retryableStatus(resp.StatusCode),
		}
	}

	advice, err := adviceFromResponse(raw, payload)
	if err != nil {
		return nil, &UpstreamError{Service: ServiceAdvice, StatusCode: resp.StatusCode, Message: AdviceFailedMessage, Cause: err}
	}
	return advice, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
