package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"

	"github.com/username/fincast/backend/src/models"
	"github.com/username/fincast/backend/src/security/validation"
	"github.com/username/fincast/backend/src/services"
)

const testMaxUpload = 1 << 20

func newTestRouter(t *testing.T) (http.Handler, *services.MockDashboardService) {
	t.Helper()
	svc := services.NewMockDashboardService(gomock.NewController(t))
	r := chi.NewRouter()
	r.Use(ContextualLoggerMiddleware)
	RegisterRoutes(r, NewUploadHandler(svc, testMaxUpload), NewSessionHandler(svc), NewAdviceHandler(svc))
	return r, svc
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func multipartUpload(t *testing.T, contentType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="ledger.csv"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t)
	for _, path := range []string{"/", "/healthz"} {
		rec := do(h, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "running")
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	}
}

func TestUpload(t *testing.T) {
	h, svc := newTestRouter(t)
	csv := "date,amount\n2024-01-01,10\n"

	svc.EXPECT().Upload(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, file io.Reader) (*services.UploadResult, error) {
			b, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, csv, string(b))
			return &services.UploadResult{
				SessionID:   "s1",
				ValidRows:   []models.TransactionRecord{{Date: models.MustDate("2024-01-01"), Amount: 10}},
				InvalidRows: []models.InvalidRow{},
			}, nil
		})

	rec := do(h, multipartUpload(t, "text/csv", []byte(csv)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res services.UploadResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "s1", res.SessionID)
	assert.Len(t, res.ValidRows, 1)
}

func TestUpload_RejectsBeforeParsing(t *testing.T) {
	h, _ := newTestRouter(t)

	tests := []struct {
		name        string
		contentType string
		content     []byte
	}{
		{"declared pdf", "application/pdf", []byte("date,amount\n")},
		{"binary body", "text/csv", []byte("date,amount\n\x00\x01\x02")},
		{"empty file", "text/csv", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, multipartUpload(t, tt.contentType, tt.content))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("not multipart"))
	req.Header.Set("Content-Type", "text/plain")
	assert.Equal(t, http.StatusBadRequest, do(h, req).Code)
}

func TestUpload_ParseFailure(t *testing.T) {
	h, svc := newTestRouter(t)
	svc.EXPECT().Upload(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: missing required columns: amount", services.ErrParsingFailed))

	rec := do(h, multipartUpload(t, "text/csv", []byte("date,value\n2024-01-01,1\n")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "missing required columns")
}

func TestValidate(t *testing.T) {
	h, svc := newTestRouter(t)

	svc.EXPECT().Validate(gomock.Any()).
		DoAndReturn(func(records []models.RawRecord) models.ValidationResult {
			require.Len(t, records, 1)
			assert.Equal(t, json.Number("5.5"), records[0]["amount"])
			return models.ValidationResult{
				ValidRows:   []models.TransactionRecord{},
				InvalidRows: []models.InvalidRow{{Index: 0, Row: records[0], Errors: []string{validation.ReasonInvalidDate}}},
			}
		})

	req := httptest.NewRequest(http.MethodPost, "/api/validate", strings.NewReader(`[{"date":"01/02/2024","amount":5.5}]`))
	rec := do(h, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), validation.ReasonInvalidDate)

	req = httptest.NewRequest(http.MethodPost, "/api/validate", strings.NewReader(`{"date":"2024-01-01"}`))
	assert.Equal(t, http.StatusBadRequest, do(h, req).Code)
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"unknown session", fmt.Errorf("%w: abc", services.ErrSessionNotFound), http.StatusNotFound, "Session not found"},
		{"no forecast", services.ErrNoForecast, http.StatusConflict, "No forecast available, request one first"},
		{"stale", services.ErrStaleRequest, http.StatusConflict, "Request superseded by a newer one"},
		{"forecast upstream", &services.UpstreamError{Service: services.ServiceForecast, StatusCode: 400, Message: "Not enough data"}, http.StatusBadGateway, "Not enough data"},
		{"advice upstream", &services.UpstreamError{Service: services.ServiceAdvice}, http.StatusBadGateway, services.AdviceFailedMessage},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newTestRouter(t)
			svc.EXPECT().Forecast("abc").Return(nil, tt.err)

			rec := do(h, httptest.NewRequest(http.MethodGet, "/api/sessions/abc/forecast", nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, errorBody(t, rec))
		})
	}
}

func TestReadEndpoints(t *testing.T) {
	h, svc := newTestRouter(t)

	svc.EXPECT().Overview("s1").Return(models.PortfolioOverview{TotalValue: 12.5, GrowthRate: 50}, nil)
	svc.EXPECT().Categories("s1").Return(nil, nil)
	svc.EXPECT().KeyMetrics("s1").Return(models.KeyMetrics{ConfidenceLabel: "Moderate (80%)"}, nil)
	svc.EXPECT().AdvicePayload("s1").Return(models.AdvicePayload{TopCategory: "sales"}, nil)

	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/sessions/s1/overview", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalValue":12.5,"growthRate":50,"thisPeriodTotal":0,"lastPeriodTotal":0}`, rec.Body.String())

	rec = do(h, httptest.NewRequest(http.MethodGet, "/api/sessions/s1/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(h, httptest.NewRequest(http.MethodGet, "/api/sessions/s1/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"confidenceLabel":"Moderate (80%)"`)

	rec = do(h, httptest.NewRequest(http.MethodGet, "/api/sessions/s1/advice/payload", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"topCategory":"sales"`)
}

func TestRequestForecast(t *testing.T) {
	h, svc := newTestRouter(t)

	gomock.InOrder(
		svc.EXPECT().RequestForecast(gomock.Any(), "s1", gomock.Nil()).
			Return(&services.ForecastView{Points: []models.ForecastPoint{}, ConfidenceLevel: 80}, nil),
		svc.EXPECT().RequestForecast(gomock.Any(), "s1", gomock.Not(gomock.Nil())).
			DoAndReturn(func(_ any, _ string, confidence *float64) (*services.ForecastView, error) {
				assert.Equal(t, 95.0, *confidence)
				return &services.ForecastView{Points: []models.ForecastPoint{}, ConfidenceLevel: 95}, nil
			}),
	)

	rec := do(h, httptest.NewRequest(http.MethodPost, "/api/sessions/s1/forecast", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"confidenceLevel":80`)

	rec = do(h, httptest.NewRequest(http.MethodPost, "/api/sessions/s1/forecast", strings.NewReader(`{"confidenceLevel":95}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"confidenceLevel":95`)

	rec = do(h, httptest.NewRequest(http.MethodPost, "/api/sessions/s1/forecast", strings.NewReader(`{"confidenceLevel":"high"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestForecast_ValidationError(t *testing.T) {
	h, svc := newTestRouter(t)
	svc.EXPECT().RequestForecast(gomock.Any(), "s1", gomock.Any()).
		Return(nil, fmt.Errorf("%w: confidence level must be between 0 and 100", validation.ErrValidationFailed))

	rec := do(h, httptest.NewRequest(http.MethodPost, "/api/sessions/s1/forecast", strings.NewReader(`{"confidenceLevel":150}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "between 0 and 100")
}

func TestRequestAdvice(t *testing.T) {
	h, svc := newTestRouter(t)
	svc.EXPECT().RequestAdvice(gomock.Any(), "s1").
		Return(&models.Advice{PortfolioTip: "Diversify.", RiskAlert: "Low risk.", TopCategory: "sales"}, nil)

	rec := do(h, httptest.NewRequest(http.MethodPost, "/api/sessions/s1/advice", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"portfolioTip":"Diversify."`)
}

func TestReport_ETag(t *testing.T) {
	h, svc := newTestRouter(t)
	svc.EXPECT().Report("s1").Return("No insights yet.", nil).Times(2)

	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/sessions/s1/report", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "No insights yet.", rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/s1/report", nil)
	req.Header.Set("If-None-Match", `"stale", `+etag)
	rec = do(h, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestExportCSV(t *testing.T) {
	h, svc := newTestRouter(t)
	body := "date,forecast,actual,lower,upper\n2024-02-01,105,,,\n"
	svc.EXPECT().ForecastCSV("s1").Return([]byte(body), nil)

	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/sessions/s1/export.csv", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, body, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="forecast-s1.csv"`, rec.Header().Get("Content-Disposition"))
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0), 1)
	h := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.Equal(t, http.StatusNoContent, do(h, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(h, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestContextualLoggerMiddleware(t *testing.T) {
	var seen string
	h := ContextualLoggerMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetRequestIDFromContext(r.Context())
		require.True(t, ok)
		seen = id
	}))

	rec := do(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}
