package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/username/fincast/backend/src/logger"
	"github.com/username/fincast/backend/src/models"
	"github.com/username/fincast/backend/src/services"
	"github.com/username/fincast/backend/src/utils"
)

const maxForecastRequestBytes = 4 << 10

type SessionHandler struct {
	dashboardService services.DashboardService
}

func NewSessionHandler(service services.DashboardService) *SessionHandler {
	return &SessionHandler{dashboardService: service}
}

type forecastRequest struct {
	ConfidenceLevel *float64 `json:"confidenceLevel"`
}

func sessionID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

func (h *SessionHandler) HandleGetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboardService.Overview(sessionID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, overview, http.StatusOK)
}

func (h *SessionHandler) HandleGetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.dashboardService.Categories(sessionID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if categories == nil {
		categories = []models.CategorySummary{}
	}
	utils.SendJSON(w, categories, http.StatusOK)
}

// HandleRequestForecast accepts an optional {"confidenceLevel": n} body; an empty body uses the default.
func (h *SessionHandler) HandleRequestForecast(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	var req forecastRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxForecastRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.FromContext(r.Context()).Debug("Invalid forecast request body", "sessionID", id, "error", err)
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.dashboardService.RequestForecast(r.Context(), id, req.ConfidenceLevel)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, view, http.StatusOK)
}

func (h *SessionHandler) HandleGetForecast(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboardService.Forecast(sessionID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, view, http.StatusOK)
}

func (h *SessionHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.dashboardService.KeyMetrics(sessionID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, metrics, http.StatusOK)
}
