package handlers

import (
	"errors"
	"net/http"

	"github.com/username/fincast/backend/src/logger"
	"github.com/username/fincast/backend/src/security/validation"
	"github.com/username/fincast/backend/src/services"
	"github.com/username/fincast/backend/src/utils"
)

// writeServiceError maps a DashboardService error onto a status code and JSON body.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var upErr *services.UpstreamError
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		utils.SendJSONError(w, "Session not found", http.StatusNotFound)
	case errors.Is(err, services.ErrNoValidRows):
		utils.SendJSONError(w, "No valid rows to forecast", http.StatusConflict)
	case errors.Is(err, services.ErrNoForecast):
		utils.SendJSONError(w, "No forecast available, request one first", http.StatusConflict)
	case errors.Is(err, services.ErrStaleRequest):
		utils.SendJSONError(w, "Request superseded by a newer one", http.StatusConflict)
	case errors.Is(err, services.ErrParsingFailed), errors.Is(err, validation.ErrValidationFailed):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &upErr):
		log.Warn("Upstream call failed", "service", upErr.Service, "status", upErr.StatusCode, "error", err)
		msg := services.UserMessage(err)
		if msg == "" {
			msg = services.ForecastFailedMessage
			if upErr.Service == services.ServiceAdvice {
				msg = services.AdviceFailedMessage
			}
		}
		utils.SendJSONError(w, msg, http.StatusBadGateway)
	default:
		log.Error("Unhandled service error", "path", r.URL.Path, "error", err)
		utils.SendJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}
