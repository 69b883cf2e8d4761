package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/username/fincast/backend/src/logger"
	"github.com/username/fincast/backend/src/models"
)

// RowValidator turns raw records into TransactionRecords, quarantining rows
// that break any rule. It holds no state beyond its configuration.
type RowValidator struct {
	categories CategoryPolicy
	asciiOnly  bool
}

// NewRowValidator builds a validator around a category policy.
func NewRowValidator(categories CategoryPolicy, asciiOnlyDescriptions bool) *RowValidator {
	return &RowValidator{categories: categories, asciiOnly: asciiOnlyDescriptions}
}

// NewStrictRowValidator rejects unknown categories and non-ASCII descriptions.
func NewStrictRowValidator(known []string) *RowValidator {
	return NewRowValidator(NewStrictCategoryPolicy(known), true)
}

// NewPermissiveRowValidator accepts any category and flags custom ones.
func NewPermissiveRowValidator(known []string) *RowValidator {
	return NewRowValidator(NewPermissiveCategoryPolicy(known), false)
}

// NewRowValidatorForPolicy selects the validator variant by name ("strict" or "permissive").
func NewRowValidatorForPolicy(policy string, known []string) (*RowValidator, error) {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case "strict":
		return NewStrictRowValidator(known), nil
	case "permissive", "":
		return NewPermissiveRowValidator(known), nil
	default:
		return nil, fmt.Errorf("%w: unknown category policy %q", ErrValidationFailed, policy)
	}
}

// Policy returns the name of the active category policy.
func (v *RowValidator) Policy() string {
	return v.categories.Name()
}

// Validate checks every row. Both output slices keep the input order and are never nil.
func (v *RowValidator) Validate(rows []models.RawRecord) models.ValidationResult {
	result := models.ValidationResult{
		ValidRows:   []models.TransactionRecord{},
		InvalidRows: []models.InvalidRow{},
	}

	for index, row := range rows {
		record, reasons := v.validateRow(row)
		if len(reasons) > 0 {
			logger.L.Debug("Row rejected", "index", index, "reasons", reasons)
			result.InvalidRows = append(result.InvalidRows, models.InvalidRow{
				Index:  index,
				Row:    row,
				Errors: reasons,
			})
			continue
		}
		result.ValidRows = append(result.ValidRows, record)
	}
	return result
}

func (v *RowValidator) validateRow(row models.RawRecord) (models.TransactionRecord, []string) {
	var (
		record  models.TransactionRecord
		reasons []string
	)

	if _, malformed := row[models.ParseErrorField]; malformed {
		return record, []string{ReasonMalformedRow}
	}

	dateVal, _ := lookup(row, "date")
	if date, err := ValidateISODate(dateVal); err != nil {
		reasons = append(reasons, Reason(err))
	} else {
		record.Date = date
	}

	amountVal, _ := lookup(row, "amount")
	if amount, err := ValidateAmount(amountVal); err != nil {
		reasons = append(reasons, Reason(err))
	} else {
		record.Amount = amount
	}

	if descVal, ok := lookup(row, "description"); ok {
		desc, _ := asString(descVal)
		for _, err := range ValidateDescription(desc, v.asciiOnly) {
			reasons = append(reasons, Reason(err))
		}
		record.Description = strings.TrimSpace(desc)
	}

	catVal, catPresent := lookup(row, "category")
	rawCategory, _ := asString(catVal)
	category, custom, err := v.categories.Resolve(rawCategory, catPresent)
	if err != nil {
		reasons = append(reasons, Reason(err))
	} else {
		record.Category = category
		record.CustomCategory = custom
	}

	if idVal, ok := lookup(row, "id"); ok {
		id, err := ValidatePositiveID(idVal)
		if err != nil {
			reasons = append(reasons, Reason(err))
		} else {
			record.ID = &id
		}
	}

	return record, reasons
}

// lookup finds a field by case-insensitive, trimmed key. An exact match wins;
// otherwise the first matching key in sorted order is used. Nil values and blank
// strings count as absent.
func lookup(row models.RawRecord, key string) (any, bool) {
	val, ok := row[key]
	if !ok {
		var matches []string
		for k := range row {
			if strings.EqualFold(strings.TrimSpace(k), key) {
				matches = append(matches, k)
			}
		}
		if len(matches) > 0 {
			sort.Strings(matches)
			val, ok = row[matches[0]], true
		}
	}
	if !ok || val == nil {
		return nil, false
	}
	if s, isString := val.(string); isString && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return val, true
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case nil:
		return "", false
	default:
		return fmt.Sprint(s), true
	}
}
