package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/username/fincast/backend/src/models"
)

func testPayload() models.AdvicePayload {
	return models.AdvicePayload{
		TotalValue:       12.5,
		GrowthRate:       20,
		HistoricalAvg:    100,
		ForecastAvg:      130,
		TrendPct:         30,
		PeakMonth:        "Mar 2024",
		PeakValue:        200,
		TroughMonth:      "Jan 2024",
		TroughValue:      50,
		ForecastAccuracy: 91.5,
		ConfidenceLevel:  80,
		RiskAssessment:   models.RiskLow,
		MarketTrend:      models.TrendBullish,
		Categories: []models.CategorySummary{
			{Name: "rent", Amount: 300, PercentChange: -10},
			{Name: "sales", Amount: 1000, PercentChange: 100},
		},
		TopCategory:       "sales",
		BottomCategory:    "rent",
		TopCategoriesList: []models.CategoryRank{{Name: "sales", PercentChange: 100}, {Name: "rent", PercentChange: -10}},
	}
}

const narrative = `{
	"portfolioTip": "Allocate 5-10% more to <b>sales</b>.",
	"riskAlert": "Bullish trend at 80% confidence.",
	"categoryTop": "Sales doubled.",
	"topCategory": "rent",
	"topCategoriesList": [{"name":"made-up","pctChange":999}],
	"scenarios": {"best": "", "base": "", "worst": ""},
	"actions": [{"horizon":"30 days","action":"Review rent"}, {"horizon":"later","action":""}],
	"nextSteps": ["One", " ", "Two"]
}`

func TestAdviceFromResponse_OverridesCategoryFacts(t *testing.T) {
	advice, err := adviceFromResponse([]byte(narrative), testPayload())
	require.NoError(t, err)

	assert.Equal(t, "Allocate 5-10% more to sales.", advice.PortfolioTip)
	assert.Equal(t, "sales", advice.TopCategory)
	assert.Equal(t, "rent", advice.BottomCategory)
	assert.Equal(t, []models.CategoryRank{{Name: "sales", PercentChange: 100}, {Name: "rent", PercentChange: -10}}, advice.TopCategoriesList)
	assert.Nil(t, advice.Scenarios)
	assert.Equal(t, []models.AdviceAction{{Horizon: "30 days", Action: "Review rent"}}, advice.Actions)
	assert.Equal(t, []string{"One", "Two"}, advice.NextSteps)
}

func TestAdviceFromResponse_RequiresCoreFields(t *testing.T) {
	bodies := []string{
		`{"riskAlert":"x"}`,
		`{"portfolioTip":"x"}`,
		`{"portfolioTip":"<script></script>","riskAlert":"x"}`,
		`{"portfolioTip":1,"riskAlert":"x"}`,
		`["portfolioTip"]`,
		`not json`,
	}
	for _, body := range bodies {
		_, err := adviceFromResponse([]byte(body), testPayload())
		assert.ErrorIs(t, err, ErrMalformedResponse, body)
	}
}

func TestCleanModelJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanModelJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanModelJSON("Here you go:\n{\"a\":1}\nThanks"))
	assert.Equal(t, `{"a":1}`, cleanModelJSON(`  {"a":1}  `))
}

func TestHTTPAdvisor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var got models.AdvicePayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "Mar 2024", got.PeakMonth)
		assert.Equal(t, models.RiskLow, got.RiskAssessment)
		io.WriteString(w, narrative)
	}))
	defer srv.Close()

	advice, err := NewHTTPAdvisor(srv.URL, time.Second, fastRetry).Advise(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, "Bullish trend at 80% confidence.", advice.RiskAlert)
	assert.Equal(t, "sales", advice.TopCategory)
}

func TestHTTPAdvisor_FailuresUseGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":"quota exceeded for key sk-123"}`)
	}))
	defer srv.Close()

	_, err := NewHTTPAdvisor(srv.URL, time.Second, fastRetry).Advise(context.Background(), testPayload())
	assert.Equal(t, AdviceFailedMessage, UserMessage(err))

	_, err = NewHTTPAdvisor("", time.Second, fastRetry).Advise(context.Background(), testPayload())
	assert.Equal(t, AdviceFailedMessage, UserMessage(err))
}

type fakeGenerator struct {
	text     string
	err      error
	calls    int
	prompt   string
	model    string
	mimeType string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if config != nil {
		f.mimeType = config.ResponseMIMEType
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: f.text}}}},
		},
	}, nil
}

func TestGeminiAdvisor(t *testing.T) {
	gen := &fakeGenerator{text: "```json\n" + narrative + "\n```"}
	advisor := newGeminiAdvisor(gen, "gemini-test", fastRetry)

	advice, err := advisor.Advise(context.Background(), testPayload())
	require.NoError(t, err)

	assert.Equal(t, "gemini-test", gen.model)
	assert.Equal(t, "application/json", gen.mimeType)
	assert.Equal(t, "Allocate 5-10% more to sales.", advice.PortfolioTip)
	assert.Equal(t, "sales", advice.TopCategory)
	assert.Contains(t, gen.prompt, "• Top: sales (+100.0%)")
	assert.Contains(t, gen.prompt, "• Bottom: rent (-10.0%)")
	assert.Contains(t, gen.prompt, "• Risk Assessment: Low")
	assert.Contains(t, gen.prompt, "• Confidence Level: 80%")
}

func TestGeminiAdvisor_Failures(t *testing.T) {
	gen := &fakeGenerator{text: "I cannot help with that."}
	_, err := newGeminiAdvisor(gen, "m", fastRetry).Advise(context.Background(), testPayload())
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Equal(t, AdviceFailedMessage, UserMessage(err))
	assert.Equal(t, 1, gen.calls)

	gen = &fakeGenerator{err: errors.New("connection reset")}
	_, err = newGeminiAdvisor(gen, "m", fastRetry).Advise(context.Background(), testPayload())
	assert.Equal(t, AdviceFailedMessage, UserMessage(err))
	assert.Equal(t, 3, gen.calls)
}

func TestBuildAdvicePrompt_Extras(t *testing.T) {
	p := testPayload()
	actual := 100.0
	p.ForecastPoints = []models.ForecastPoint{{Date: models.MustDate("2024-01-01"), Predicted: 98, Actual: &actual}}
	p.Descriptions = []string{"Invoice 12"}

	prompt := BuildAdvicePrompt(p)

	assert.Contains(t, prompt, "• 2024-01-01: 98 / 100")
	assert.Contains(t, prompt, "• Invoice 12")
	assert.True(t, strings.HasSuffix(prompt, `"nextSteps":["...","...","..."]}`))
}
