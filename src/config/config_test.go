package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "CATEGORY_POLICY", "GEMINI_API_KEY", "ADVICE_PROVIDER", "FORECAST_API_URL", "DEFAULT_CONFIDENCE_LEVEL", "KNOWN_CATEGORIES", "SESSION_TTL"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.ForecastAPIURL)
	assert.Equal(t, CategoryPolicyPermissive, cfg.CategoryPolicy)
	assert.Equal(t, AdviceProviderHTTP, cfg.AdviceProvider)
	assert.Equal(t, 80.0, cfg.DefaultConfidence)
	assert.Equal(t, []string{"sales", "rent", "salary", "tax", "misc"}, cfg.KnownCategories)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CATEGORY_POLICY", "STRICT")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("ADVICE_PROVIDER", "")
	t.Setenv("FORECAST_API_URL", "http://forecast:8000/")
	t.Setenv("FORECAST_REQUEST_FORMAT", "wrapped")
	t.Setenv("DEFAULT_CONFIDENCE_LEVEL", "95")
	t.Setenv("KNOWN_CATEGORIES", " food, ,travel ")
	t.Setenv("FORECAST_TIMEOUT", "5s")
	t.Setenv("UPSTREAM_MAX_RETRIES", "3")

	cfg := FromEnv()

	assert.Equal(t, CategoryPolicyStrict, cfg.CategoryPolicy)
	assert.Equal(t, AdviceProviderGemini, cfg.AdviceProvider)
	assert.Equal(t, "http://forecast:8000", cfg.ForecastAPIURL)
	assert.Equal(t, ForecastFormatWrapped, cfg.ForecastRequestFormat)
	assert.Equal(t, 95.0, cfg.DefaultConfidence)
	assert.Equal(t, []string{"food", "travel"}, cfg.KnownCategories)
	assert.Equal(t, 5*time.Second, cfg.ForecastTimeout)
	assert.Equal(t, 3, cfg.UpstreamMaxRetries)
}

func TestFromEnvFallsBackOnBadValues(t *testing.T) {
	t.Setenv("CATEGORY_POLICY", "lenient")
	t.Setenv("DEFAULT_CONFIDENCE_LEVEL", "140")
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("MAX_UPLOAD_SIZE_BYTES", "-1")
	t.Setenv("RATE_LIMIT_BURST", "many")

	cfg := FromEnv()

	assert.Equal(t, CategoryPolicyPermissive, cfg.CategoryPolicy)
	assert.Equal(t, 80.0, cfg.DefaultConfidence)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadSizeBytes)
	assert.Equal(t, 30, cfg.RateLimitBurst)
}
