package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/username/fincast/backend/src/models"
	"github.com/username/fincast/backend/src/processors"
	"github.com/username/fincast/backend/src/security/validation"
)

// adviceFromResponse decodes and checks a narrative body, strips markup from
// every string, and replaces the category facts with the locally computed ones.
func adviceFromResponse(raw []byte, payload models.AdvicePayload) (*models.Advice, error) {
	var advice models.Advice
	if err := json.Unmarshal(raw, &advice); err != nil {
		return nil, fmt.Errorf("%w: advice is not a JSON object of strings: %v", ErrMalformedResponse, err)
	}

	sanitizeAdvice(&advice)

	if advice.PortfolioTip == "" {
		return nil, fmt.Errorf("%w: portfolioTip is missing", ErrMalformedResponse)
	}
	if advice.RiskAlert == "" {
		return nil, fmt.Errorf("%w: riskAlert is missing", ErrMalformedResponse)
	}

	applyLocalCategories(&advice, payload)
	return &advice, nil
}

func sanitizeAdvice(a *models.Advice) {
	for _, s := range []*string{&a.PortfolioTip, &a.RiskAlert, &a.CategoryInsights, &a.CategoryTop, &a.CategoryBottom, &a.Seasonality, &a.Anomalies} {
		*s = validation.SanitizeText(*s)
	}
	if a.Scenarios != nil {
		a.Scenarios.Best = validation.SanitizeText(a.Scenarios.Best)
		a.Scenarios.Base = validation.SanitizeText(a.Scenarios.Base)
		a.Scenarios.Worst = validation.SanitizeText(a.Scenarios.Worst)
		if a.Scenarios.Best == "" && a.Scenarios.Base == "" && a.Scenarios.Worst == "" {
			a.Scenarios = nil
		}
	}

	actions := a.Actions[:0]
	for _, act := range a.Actions {
		act.Horizon = validation.SanitizeText(act.Horizon)
		act.Action = validation.SanitizeText(act.Action)
		if act.Action != "" {
			actions = append(actions, act)
		}
	}
	a.Actions = actions

	steps := a.NextSteps[:0]
	for _, step := range a.NextSteps {
		if step = validation.SanitizeText(step); step != "" {
			steps = append(steps, step)
		}
	}
	a.NextSteps = steps
}

// applyLocalCategories never trusts the service for top/bottom category facts.
func applyLocalCategories(a *models.Advice, payload models.AdvicePayload) {
	top, bottom, list := processors.RankCategories(payload.Categories)
	a.TopCategory = top
	a.BottomCategory = bottom
	a.TopCategoriesList = list
}

// cleanModelJSON removes Markdown fences and any text around the JSON object.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
