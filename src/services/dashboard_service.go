package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/username/fincast/backend/src/logger"
	"github.com/username/fincast/backend/src/models"
	"github.com/username/fincast/backend/src/processors"
	"github.com/username/fincast/backend/src/security/validation"
)

// Cache settings for the in-memory session store.
const (
	DefaultSessionTTL      = 2 * time.Hour
	SessionCleanupInterval = 10 * time.Minute
)

// RecordParser decodes an uploaded file into raw records.
type RecordParser interface {
	Parse(file io.Reader) ([]models.RawRecord, error)
}

// session is the in-memory state behind one upload. Rows never change after
// creation; the forecast and advice are replaced wholesale.
type session struct {
	mu sync.Mutex

	rows    []models.TransactionRecord
	invalid []models.InvalidRow

	forecast   []models.ForecastPoint
	confidence float64
	advice     *models.Advice

	forecastSeq    uint64
	forecastCancel context.CancelFunc
	adviceSeq      uint64
	adviceCancel   context.CancelFunc
}

type dashboardServiceImpl struct {
	parser     RecordParser
	validator  *validation.RowValidator
	forecaster Forecaster
	advisor    Advisor
	sessions   *cache.Cache

	portfolio  processors.PortfolioProcessor
	categories processors.CategoryProcessor
	metrics    processors.ForecastMetricsProcessor
	payloads   processors.AdvicePayloadBuilder
	reports    processors.ReportBuilder

	defaultConfidence float64
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(
	parser RecordParser,
	validator *validation.RowValidator,
	forecaster Forecaster,
	advisor Advisor,
	sessions *cache.Cache,
	defaultConfidence float64,
) DashboardService {
	portfolio := processors.NewPortfolioProcessor()
	categories := processors.NewCategoryProcessor()
	metrics := processors.NewForecastMetricsProcessor()
	return &dashboardServiceImpl{
		parser:            parser,
		validator:         validator,
		forecaster:        forecaster,
		advisor:           advisor,
		sessions:          sessions,
		portfolio:         portfolio,
		categories:        categories,
		metrics:           metrics,
		payloads:          processors.NewAdvicePayloadBuilder(portfolio, categories, metrics),
		reports:           processors.NewReportBuilder(),
		defaultConfidence: defaultConfidence,
	}
}

func (s *dashboardServiceImpl) Upload(ctx context.Context, file io.Reader) (*UploadResult, error) {
	records, err := s.parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	return s.CreateSession(ctx, records)
}

// CreateSession validates the records and stores the outcome under a new session ID.
func (s *dashboardServiceImpl) CreateSession(ctx context.Context, records []models.RawRecord) (*UploadResult, error) {
	result := s.validator.Validate(records)

	id := uuid.NewString()
	s.sessions.Set(id, &session{
		rows:       result.ValidRows,
		invalid:    result.InvalidRows,
		confidence: s.defaultConfidence,
	}, cache.DefaultExpiration)

	logger.FromContext(ctx).Info("Session created",
		"sessionID", id,
		"policy", s.validator.Policy(),
		"validRows", len(result.ValidRows),
		"invalidRows", len(result.InvalidRows))

	return &UploadResult{SessionID: id, ValidRows: result.ValidRows, InvalidRows: result.InvalidRows}, nil
}

func (s *dashboardServiceImpl) Validate(records []models.RawRecord) models.ValidationResult {
	return s.validator.Validate(records)
}

func (s *dashboardServiceImpl) getSession(id string) (*session, error) {
	if v, found := s.sessions.Get(id); found {
		if sess, ok := v.(*session); ok {
			return sess, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
}

func (s *dashboardServiceImpl) Overview(sessionID string) (models.PortfolioOverview, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return models.PortfolioOverview{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.portfolio.Overview(sess.rows), nil
}

func (s *dashboardServiceImpl) Categories(sessionID string) ([]models.CategorySummary, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.categories.Breakdown(sess.rows), nil
}

// RequestForecast calls the forecasting service for the session's rows. A newer
// request cancels this one and its result is discarded with ErrStaleRequest.
// On failure the previously committed forecast is kept.
func (s *dashboardServiceImpl) RequestForecast(ctx context.Context, sessionID string, confidenceLevel *float64) (*ForecastView, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	confidence := s.defaultConfidence
	if confidenceLevel != nil {
		confidence = *confidenceLevel
	}
	if confidence < 0 || confidence > 100 {
		return nil, fmt.Errorf("%w: confidence level must be between 0 and 100", validation.ErrValidationFailed)
	}

	sess.mu.Lock()
	if len(sess.rows) == 0 {
		sess.mu.Unlock()
		return nil, ErrNoValidRows
	}
	sess.forecastSeq++
	seq := sess.forecastSeq
	if sess.forecastCancel != nil {
		sess.forecastCancel()
	}
	callCtx, cancel := context.WithCancel(ctx)
	sess.forecastCancel = cancel
	history := historyFromRows(sess.rows)
	sess.mu.Unlock()
	defer cancel()

	log := logger.FromContext(ctx).With("sessionID", sessionID, "seq", seq)
	log.Info("Requesting forecast", "points", len(history), "confidence", confidence)

	points, err := s.forecaster.Forecast(callCtx, history, confidence)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if seq != sess.forecastSeq {
		log.Info("Discarding superseded forecast result")
		return nil, ErrStaleRequest
	}
	sess.forecastCancel = nil
	if err != nil {
		log.Warn("Forecast request failed, keeping previous forecast", "error", err)
		return nil, err
	}

	if points == nil {
		points = []models.ForecastPoint{}
	}
	sess.forecast = points
	sess.confidence = confidence
	// advice was derived from the previous forecast
	sess.advice = nil
	sess.adviceSeq++
	if sess.adviceCancel != nil {
		sess.adviceCancel()
		sess.adviceCancel = nil
	}
	s.sessions.Set(sessionID, sess, cache.DefaultExpiration)

	log.Info("Forecast committed", "points", len(points))
	return s.forecastView(sess), nil
}

func (s *dashboardServiceImpl) Forecast(sessionID string) (*ForecastView, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.forecast == nil {
		return nil, ErrNoForecast
	}
	return s.forecastView(sess), nil
}

// forecastView must be called with sess.mu held.
func (s *dashboardServiceImpl) forecastView(sess *session) *ForecastView {
	return &ForecastView{
		Points:          sess.forecast,
		ConfidenceLevel: sess.confidence,
		Summary:         s.metrics.Summary(sess.forecast),
		Metrics:         s.metrics.KeyMetrics(sess.forecast, sess.confidence),
	}
}

// KeyMetrics falls back to the neutral defaults before any forecast exists.
func (s *dashboardServiceImpl) KeyMetrics(sessionID string) (models.KeyMetrics, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return models.KeyMetrics{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.metrics.KeyMetrics(sess.forecast, sess.confidence), nil
}

func (s *dashboardServiceImpl) AdvicePayload(sessionID string) (models.AdvicePayload, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return models.AdvicePayload{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.forecast == nil {
		return models.AdvicePayload{}, ErrNoForecast
	}
	return s.payloads.Build(sess.rows, sess.forecast, sess.confidence), nil
}

// RequestAdvice sends a freshly built payload to the advice service. The result
// is dropped if another advice request or a new forecast arrived meanwhile.
func (s *dashboardServiceImpl) RequestAdvice(ctx context.Context, sessionID string) (*models.Advice, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.forecast == nil {
		sess.mu.Unlock()
		return nil, ErrNoForecast
	}
	sess.adviceSeq++
	seq := sess.adviceSeq
	if sess.adviceCancel != nil {
		sess.adviceCancel()
	}
	callCtx, cancel := context.WithCancel(ctx)
	sess.adviceCancel = cancel
	payload := s.payloads.Build(sess.rows, sess.forecast, sess.confidence)
	sess.mu.Unlock()
	defer cancel()

	log := logger.FromContext(ctx).With("sessionID", sessionID, "seq", seq)
	log.Info("Requesting advice", "categories", len(payload.Categories))

	advice, err := s.advisor.Advise(callCtx, payload)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if seq != sess.adviceSeq {
		log.Info("Discarding superseded advice result")
		return nil, ErrStaleRequest
	}
	sess.adviceCancel = nil
	if err != nil {
		log.Warn("Advice request failed", "error", err)
		var upErr *UpstreamError
		if !errors.As(err, &upErr) {
			err = &UpstreamError{Service: ServiceAdvice, Message: AdviceFailedMessage, Cause: err}
		}
		return nil, err
	}

	applyLocalCategories(advice, payload)
	sess.advice = advice
	s.sessions.Set(sessionID, sess, cache.DefaultExpiration)
	return advice, nil
}

func (s *dashboardServiceImpl) Report(sessionID string) (string, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return "", err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.reports.AdviceText(sess.advice), nil
}

func (s *dashboardServiceImpl) ForecastCSV(sessionID string) ([]byte, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.forecast == nil {
		return nil, ErrNoForecast
	}
	return s.reports.ForecastCSV(sess.forecast)
}

// historyFromRows orders the rows by date for the forecasting service.
func historyFromRows(rows []models.TransactionRecord) []models.HistoryPoint {
	sorted := make([]models.TransactionRecord, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date.Time)
	})

	history := make([]models.HistoryPoint, len(sorted))
	for i, r := range sorted {
		history[i] = models.HistoryPoint{Date: r.Date.String(), Amount: r.Amount}
	}
	return history
}
