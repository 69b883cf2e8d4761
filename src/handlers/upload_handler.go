package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/username/fincast/backend/src/logger"
	"github.com/username/fincast/backend/src/models"
	"github.com/username/fincast/backend/src/security/validation"
	"github.com/username/fincast/backend/src/services"
	"github.com/username/fincast/backend/src/utils"
)

// multipartOverhead is headroom for boundaries and form fields on top of the file limit.
const multipartOverhead = 1 << 20

type UploadHandler struct {
	dashboardService services.DashboardService
	maxUploadBytes   int64
}

func NewUploadHandler(service services.DashboardService, maxUploadBytes int64) *UploadHandler {
	return &UploadHandler{
		dashboardService: service,
		maxUploadBytes:   maxUploadBytes,
	}
}

func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	limitMB := h.maxUploadBytes / (1024 * 1024)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		log.Warn("Failed to parse multipart form or request too large", "error", err, "limit", h.maxUploadBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to process upload or file too large (max %d MB)", limitMB), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		log.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > h.maxUploadBytes {
		log.Warn("Uploaded file header reports size too large", "fileSize", fileHeader.Size, "limit", h.maxUploadBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large (max %d MB)", limitMB), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file)
	if err != nil {
		log.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Info("Processing upload", "filename", fileHeader.Filename, "size", fileHeader.Size, "detectedType", detectedContentType)

	result, err := h.dashboardService.Upload(r.Context(), file)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.SendJSON(w, result, http.StatusOK)
}

// HandleValidate runs the row validator over a JSON array of records without creating a session.
func (h *UploadHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	var records []models.RawRecord
	if err := decoder.Decode(&records); err != nil {
		logger.FromContext(r.Context()).Debug("Invalid validate request body", "error", err)
		utils.SendJSONError(w, "Request body must be a JSON array of records", http.StatusBadRequest)
		return
	}

	utils.SendJSON(w, h.dashboardService.Validate(records), http.StatusOK)
}
