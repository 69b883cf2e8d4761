package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Category policy names accepted in CATEGORY_POLICY.
const (
	CategoryPolicyStrict     = "strict"
	CategoryPolicyPermissive = "permissive"
)

// Advice providers accepted in ADVICE_PROVIDER.
const (
	AdviceProviderGemini = "gemini"
	AdviceProviderHTTP   = "http"
)

// Forecast request body shapes accepted in FORECAST_REQUEST_FORMAT.
const (
	ForecastFormatArray   = "array"
	ForecastFormatWrapped = "wrapped"
)

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables.
type AppConfig struct {
	// Core settings
	Port     string
	LogLevel string

	// Upload and session settings
	MaxUploadSizeBytes int64
	SessionTTL         time.Duration

	// Validation settings
	CategoryPolicy  string
	KnownCategories []string

	// Forecasting service
	ForecastAPIURL        string
	ForecastRequestFormat string
	ForecastTimeout       time.Duration
	DefaultConfidence     float64

	// Advice service
	AdviceProvider string
	AdviceAPIURL   string
	AdviceTimeout  time.Duration
	GeminiAPIKey   string
	GeminiModel    string

	// Shared upstream retry policy
	UpstreamMaxRetries int

	// HTTP edge
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Cfg is a global instance of the AppConfig.
var Cfg *AppConfig

// LoadConfig loads configuration from environment variables or a .env file.
func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}

	if errEnv != nil {
		if os.IsNotExist(errEnv) {
			log.Println("Info: No .env file found in current or parent directory. Relying on OS environment variables.")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", errEnv)
		}
	} else {
		log.Println(".env file loaded successfully.")
	}

	Cfg = FromEnv()

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, ForecastAPI=%s, AdviceProvider=%s, CategoryPolicy=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.ForecastAPIURL, Cfg.AdviceProvider, Cfg.CategoryPolicy)
}

// FromEnv builds an AppConfig from the current process environment only.
func FromEnv() *AppConfig {
	maxUploadSizeBytesStr := getEnv("MAX_UPLOAD_SIZE_BYTES", "10485760") // 10MB default
	maxUploadSizeBytes, err := strconv.ParseInt(maxUploadSizeBytesStr, 10, 64)
	if err != nil || maxUploadSizeBytes <= 0 {
		log.Printf("WARNING: Invalid MAX_UPLOAD_SIZE_BYTES format '%s'. Using default 10MB.", maxUploadSizeBytesStr)
		maxUploadSizeBytes = 10 * 1024 * 1024
	}

	categoryPolicy := strings.ToLower(getEnv("CATEGORY_POLICY", CategoryPolicyPermissive))
	if categoryPolicy != CategoryPolicyStrict && categoryPolicy != CategoryPolicyPermissive {
		log.Printf("WARNING: Unknown CATEGORY_POLICY '%s', using %s", categoryPolicy, CategoryPolicyPermissive)
		categoryPolicy = CategoryPolicyPermissive
	}

	forecastFormat := strings.ToLower(getEnv("FORECAST_REQUEST_FORMAT", ForecastFormatArray))
	if forecastFormat != ForecastFormatArray && forecastFormat != ForecastFormatWrapped {
		log.Printf("WARNING: Unknown FORECAST_REQUEST_FORMAT '%s', using %s", forecastFormat, ForecastFormatArray)
		forecastFormat = ForecastFormatArray
	}

	geminiAPIKey := getEnv("GEMINI_API_KEY", "")
	defaultProvider := AdviceProviderHTTP
	if geminiAPIKey != "" {
		defaultProvider = AdviceProviderGemini
	}

	confidence := getEnvAsFloat("DEFAULT_CONFIDENCE_LEVEL", 80)
	if confidence < 0 || confidence > 100 {
		log.Printf("WARNING: DEFAULT_CONFIDENCE_LEVEL %.2f out of range, using 80", confidence)
		confidence = 80
	}

	return &AppConfig{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		MaxUploadSizeBytes: maxUploadSizeBytes,
		SessionTTL:         getEnvAsDuration("SESSION_TTL", 2*time.Hour),

		CategoryPolicy:  categoryPolicy,
		KnownCategories: getEnvAsList("KNOWN_CATEGORIES", []string{"sales", "rent", "salary", "tax", "misc"}),

		ForecastAPIURL:        strings.TrimRight(getEnv("FORECAST_API_URL", "http://localhost:8000"), "/"),
		ForecastRequestFormat: forecastFormat,
		ForecastTimeout:       getEnvAsDuration("FORECAST_TIMEOUT", 60*time.Second),
		DefaultConfidence:     confidence,

		AdviceProvider: strings.ToLower(getEnv("ADVICE_PROVIDER", defaultProvider)),
		AdviceAPIURL:   getEnv("ADVICE_API_URL", ""),
		AdviceTimeout:  getEnvAsDuration("ADVICE_TIMEOUT", 45*time.Second),
		GeminiAPIKey:   geminiAPIKey,
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		UpstreamMaxRetries: getEnvAsInt("UPSTREAM_MAX_RETRIES", 1),

		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 30),
	}
}

// getEnv retrieves an environment variable or returns a fallback value.
// An empty variable counts as unset.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer or returns a fallback.
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	log.Printf("Invalid float value for %s ('%s'), using default: %g", key, valueStr, fallback)
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

// getEnvAsList parses a comma-separated variable, dropping empty entries.
func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if strings.TrimSpace(valueStr) == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
