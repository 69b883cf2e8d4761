package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/username/fincast/backend/src/logger"
)

// SendJSONError writes {"error": message} with the given status code.
func SendJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	logger.L.Warn("Sending JSON error to client", "message", message, "statusCode", statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// SendJSON writes v as a JSON body with the given status code.
func SendJSON(w http.ResponseWriter, v any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L.Error("Error encoding JSON response", "error", err)
	}
}

// GenerateETag hashes the JSON encoding of data (or raw bytes as-is).
func GenerateETag(data any) (string, error) {
	var payload []byte
	switch v := data.(type) {
	case []byte:
		payload = v
	case string:
		payload = []byte(v)
	default:
		b, err := json.Marshal(data)
		if err != nil {
			return "", fmt.Errorf("failed to marshal data for ETag: %w", err)
		}
		payload = b
	}
	hash := sha256.Sum256(payload)
	return hex.EncodeToString(hash[:16]), nil
}

// ETagMatches reports whether the If-None-Match header lists the quoted etag.
func ETagMatches(r *http.Request, quotedETag string) bool {
	clientETag := r.Header.Get("If-None-Match")
	if clientETag == "" {
		return false
	}
	for _, cETag := range strings.Split(clientETag, ",") {
		if strings.TrimSpace(cETag) == quotedETag {
			return true
		}
	}
	return false
}
