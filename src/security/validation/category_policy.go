package validation

import (
	"fmt"
	"strings"
)

// UncategorizedCategory is the category assigned when a row has none.
const UncategorizedCategory = "uncategorized"

// CategoryPolicy decides how the optional category column is checked and normalised.
type CategoryPolicy interface {
	Name() string
	// Resolve returns the normalised category, whether it is outside the known
	// vocabulary, and a non-nil error when the value must be rejected.
	Resolve(raw string, present bool) (category string, custom bool, err error)
}

func vocabulary(known []string) map[string]bool {
	set := make(map[string]bool, len(known))
	for _, k := range known {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			set[k] = true
		}
	}
	return set
}

// StrictCategoryPolicy only accepts categories from a fixed vocabulary.
type StrictCategoryPolicy struct {
	known map[string]bool
}

func NewStrictCategoryPolicy(known []string) *StrictCategoryPolicy {
	return &StrictCategoryPolicy{known: vocabulary(known)}
}

func (p *StrictCategoryPolicy) Name() string { return "strict" }

func (p *StrictCategoryPolicy) Resolve(raw string, present bool) (string, bool, error) {
	if !present {
		return "", false, nil
	}
	norm := strings.ToLower(strings.TrimSpace(raw))
	if !p.known[norm] {
		return "", false, fieldErr("category", fmt.Sprintf(reasonInvalidCategoryFmt, raw))
	}
	return norm, false, nil
}

// PermissiveCategoryPolicy accepts any category and flags the ones outside the vocabulary.
type PermissiveCategoryPolicy struct {
	known map[string]bool
}

func NewPermissiveCategoryPolicy(known []string) *PermissiveCategoryPolicy {
	return &PermissiveCategoryPolicy{known: vocabulary(known)}
}

func (p *PermissiveCategoryPolicy) Name() string { return "permissive" }

func (p *PermissiveCategoryPolicy) Resolve(raw string, present bool) (string, bool, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	if !present || norm == "" {
		return UncategorizedCategory, false, nil
	}
	return norm, !p.known[norm], nil
}
