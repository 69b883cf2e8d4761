package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/username/fincast/backend/src/utils"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, map[string]string{"message": "fincast backend is running"}, http.StatusOK)
}

// RegisterRoutes mounts the dashboard API on r.
func RegisterRoutes(r chi.Router, upload *UploadHandler, sessions *SessionHandler, advice *AdviceHandler) {
	r.Get("/", handleHealth)
	r.Get("/healthz", handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", upload.HandleUpload)
		r.Post("/validate", upload.HandleValidate)

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/overview", sessions.HandleGetOverview)
			r.Get("/categories", sessions.HandleGetCategories)
			r.Post("/forecast", sessions.HandleRequestForecast)
			r.Get("/forecast", sessions.HandleGetForecast)
			r.Get("/metrics", sessions.HandleGetMetrics)

			r.Post("/advice", advice.HandleRequestAdvice)
			r.Get("/advice/payload", advice.HandleGetAdvicePayload)
			r.Get("/report", advice.HandleGetReport)
			r.Get("/export.csv", advice.HandleExportCSV)
		})
	})
}
