package handlers

import (
	"fmt"
	"net/http"

	"github.com/username/fincast/backend/src/logger"
	"github.com/username/fincast/backend/src/services"
	"github.com/username/fincast/backend/src/utils"
)

type AdviceHandler struct {
	dashboardService services.DashboardService
}

func NewAdviceHandler(service services.DashboardService) *AdviceHandler {
	return &AdviceHandler{dashboardService: service}
}

func (h *AdviceHandler) HandleRequestAdvice(w http.ResponseWriter, r *http.Request) {
	advice, err := h.dashboardService.RequestAdvice(r.Context(), sessionID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, advice, http.StatusOK)
}

func (h *AdviceHandler) HandleGetAdvicePayload(w http.ResponseWriter, r *http.Request) {
	payload, err := h.dashboardService.AdvicePayload(sessionID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, payload, http.StatusOK)
}

func (h *AdviceHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.dashboardService.Report(sessionID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeWithETag(w, r, []byte(report), "text/plain; charset=utf-8")
}

func (h *AdviceHandler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	body, err := h.dashboardService.ForecastCSV(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "forecast-"+id+".csv"))
	writeWithETag(w, r, body, "text/csv; charset=utf-8")
}

// writeWithETag answers 304 when If-None-Match carries the body's ETag.
func writeWithETag(w http.ResponseWriter, r *http.Request, body []byte, contentType string) {
	log := logger.FromContext(r.Context())
	w.Header().Set("Cache-Control", "no-cache, private")

	etag, err := utils.GenerateETag(body)
	if err != nil {
		log.Warn("Proceeding without ETag check due to ETag generation error", "error", err)
	} else {
		quotedETag := fmt.Sprintf("\"%s\"", etag)
		w.Header().Set("ETag", quotedETag)
		if utils.ETagMatches(r, quotedETag) {
			log.Debug("ETag match", "path", r.URL.Path, "etag", etag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error("Error writing response body", "error", err)
	}
}
