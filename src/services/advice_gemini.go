package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/username/fincast/backend/src/logger"
	"github.com/username/fincast/backend/src/models"
)

const adviceSystemInstruction = "You are a helpful financial advisor."

// contentGenerator is the part of the genai client the advisor uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAdvisor asks a Gemini model for the narrative and validates its JSON reply.
type GeminiAdvisor struct {
	models contentGenerator
	model  string
	retry  RetryConfig
}

// NewGeminiAdvisor creates a Gemini API client with the given key.
func NewGeminiAdvisor(ctx context.Context, apiKey, model string, retry RetryConfig) (*GeminiAdvisor, error) {
	if apiKey == "" {
		return nil, errors.New("gemini advisor: GEMINI_API_KEY is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini advisor: create genai client: %w", err)
	}
	return newGeminiAdvisor(client.Models, model, retry), nil
}

func newGeminiAdvisor(gen contentGenerator, model string, retry RetryConfig) *GeminiAdvisor {
	return &GeminiAdvisor{models: gen, model: model, retry: retry}
}

func (a *GeminiAdvisor) Advise(ctx context.Context, payload models.AdvicePayload) (*models.Advice, error) {
	prompt := BuildAdvicePrompt(payload)
	return WithRetry(ctx, a.retry, func(ctx context.Context) (*models.Advice, error) {
		return a.adviseOnce(ctx, prompt, payload)
	})
}

func (a *GeminiAdvisor) adviseOnce(ctx context.Context, prompt string, payload models.AdvicePayload) (*models.Advice, error) {
	log := logger.FromContext(ctx)

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}
	temperature := float32(0.7)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: adviceSystemInstruction}}},
		Temperature:       &temperature,
		ResponseMIMEType:  "application/json",
	}

	resp, err := a.models.GenerateContent(ctx, a.model, contents, cfg)
	if err != nil {
		log.Warn("Gemini generate content failed", "model", a.model, "error", err)
		return nil, &UpstreamError{
			Service:   ServiceAdvice,
			Message:   AdviceFailedMessage,
			Retryable: ctx.Err() == nil && geminiRetryable(err),
			Cause:     err,
		}
	}

	rawText := ""
	if resp != nil {
		rawText = resp.Text()
	}
	if strings.TrimSpace(rawText) == "" {
		return nil, &UpstreamError{Service: ServiceAdvice, Message: AdviceFailedMessage, Cause: fmt.Errorf("%w: empty response from model", ErrMalformedResponse)}
	}

	advice, err := adviceFromResponse([]byte(cleanModelJSON(rawText)), payload)
	if err != nil {
		log.Warn("Gemini returned unusable advice", "error", err, "raw", truncate(rawText, 300))
		return nil, &UpstreamError{Service: ServiceAdvice, Message: AdviceFailedMessage, Cause: err}
	}
	return advice, nil
}

// geminiRetryable treats rate limiting and server-side errors as transient.
func geminiRetryable(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
	}
	return true
}

// BuildAdvicePrompt renders the payload as the instruction sent to the model.
func BuildAdvicePrompt(p models.AdvicePayload) string {
	top, bottom := "n/a", "n/a"
	var topPct, bottomPct float64
	if len(p.TopCategoriesList) > 0 {
		top, topPct = p.TopCategoriesList[0].Name, p.TopCategoriesList[0].PercentChange
	}
	for _, c := range p.Categories {
		if c.Name == p.BottomCategory {
			bottom, bottomPct = c.Name, c.PercentChange
			break
		}
	}

	var b strings.Builder
	b.WriteString("You are a top-notch financial AI assistant.\n")
	b.WriteString("Provide highly actionable insights based on the data below.\n\n")

	b.WriteString("1) Portfolio Overview\n")
	fmt.Fprintf(&b, "• Total Value: %.1f\n", p.TotalValue)
	fmt.Fprintf(&b, "• YTD Growth: %.1f%%\n\n", p.GrowthRate)

	b.WriteString("2) Key Metrics\n")
	fmt.Fprintf(&b, "• Forecast Accuracy: %.1f%%\n", p.ForecastAccuracy)
	fmt.Fprintf(&b, "• Risk Assessment: %s\n", p.RiskAssessment)
	fmt.Fprintf(&b, "• Confidence Level: %g%%\n", p.ConfidenceLevel)
	fmt.Fprintf(&b, "• Market Trend: %s\n\n", p.MarketTrend)

	b.WriteString("3) Forecast Summary\n")
	fmt.Fprintf(&b, "• Historical Avg: %.0f\n", p.HistoricalAvg)
	fmt.Fprintf(&b, "• Forecast Avg: %.0f\n", p.ForecastAvg)
	fmt.Fprintf(&b, "• Trend: %.1f%%\n", p.TrendPct)
	fmt.Fprintf(&b, "• Peak: %s at %.0f\n", p.PeakMonth, p.PeakValue)
	fmt.Fprintf(&b, "• Trough: %s at %.0f\n\n", p.TroughMonth, p.TroughValue)

	b.WriteString("4) Category Performance\n")
	fmt.Fprintf(&b, "• Top: %s (%+.1f%%)\n", top, topPct)
	fmt.Fprintf(&b, "• Bottom: %s (%+.1f%%)\n", bottom, bottomPct)

	if len(p.ForecastPoints) > 0 {
		b.WriteString("\n5) Recent Forecast Points (date: predicted / actual)\n")
		for _, pt := range p.ForecastPoints {
			actual := "-"
			if pt.Actual != nil {
				actual = fmt.Sprintf("%.0f", *pt.Actual)
			}
			fmt.Fprintf(&b, "• %s: %.0f / %s\n", pt.Date.String(), pt.Predicted, actual)
		}
	}
	if len(p.Descriptions) > 0 {
		b.WriteString("\n6) Sample Transactions\n")
		for _, d := range p.Descriptions {
			fmt.Fprintf(&b, "• %s\n", d)
		}
	}

	b.WriteString("\nGenerate:\n")
	b.WriteString("1) A one-sentence Portfolio Optimization Tip that mentions the top category and a suggested reallocation percentage.\n")
	b.WriteString("2) A one-sentence Risk Alert citing the market trend and confidence level.\n")
	b.WriteString("3) A one-sentence Top Performer Insight with YTD figures.\n")
	b.WriteString("4) A one-sentence Underperformer Insight with a specific action for the bottom category.\n")
	b.WriteString("5) Short notes on seasonality and anomalies, best/base/worst scenarios, and three actions with a time horizon.\n")
	b.WriteString("6) A list of three numbered Next Steps referencing actual figures.\n\n")

	b.WriteString("Respond strictly as raw JSON, with no Markdown, in this format:\n")
	b.WriteString(`{"portfolioTip":"...","riskAlert":"...","categoryTop":"...","categoryBottom":"...",` +
		`"categoryInsights":"...","seasonality":"...","anomalies":"...",` +
		`"scenarios":{"best":"...","base":"...","worst":"..."},` +
		`"actions":[{"horizon":"...","action":"..."}],"nextSteps":["...","...","..."]}`)
	return b.String()
}
