package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	SendJSONError(rec, "boom", http.StatusBadGateway)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "boom", body["error"])
}

func TestGenerateETagIsStable(t *testing.T) {
	a, err := GenerateETag(map[string]int{"x": 1})
	require.NoError(t, err)
	b, err := GenerateETag(map[string]int{"x": 1})
	require.NoError(t, err)
	c, err := GenerateETag("other")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32)
}

func TestETagMatches(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, ETagMatches(r, `"abc"`))

	r.Header.Set("If-None-Match", `"zzz", "abc"`)
	assert.True(t, ETagMatches(r, `"abc"`))
	assert.False(t, ETagMatches(r, `"def"`))
}
