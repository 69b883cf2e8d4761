package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/username/fincast/backend/src/models"
)

// ErrValidationFailed is wrapped by every field-level failure.
var ErrValidationFailed = errors.New("validation failed")

const MaxDescriptionLength = 120

// Row rejection reasons. These strings are part of the API surface.
const (
	ReasonInvalidDate         = "Invalid or missing date (YYYY-MM-DD)"
	ReasonInvalidAmount       = "Invalid or missing amount"
	ReasonDescriptionTooLong  = "Description too long (max 120 chars)"
	ReasonDescriptionNonASCII = "Description contains non-ASCII characters"
	ReasonInvalidID           = "ID must be a positive integer"
	ReasonMalformedRow        = "Malformed CSV row"
	reasonInvalidCategoryFmt  = "Invalid category: %s"
)

// FieldError is a single rule violation on one field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrValidationFailed
}

func fieldErr(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

var isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateISODate checks the YYYY-MM-DD shape and that the date exists on the calendar.
func ValidateISODate(v any) (models.CalendarDate, error) {
	s, ok := v.(string)
	if !ok {
		return models.CalendarDate{}, fieldErr("date", ReasonInvalidDate)
	}
	trimmed := strings.TrimSpace(s)
	if !isoDateRegex.MatchString(trimmed) {
		return models.CalendarDate{}, fieldErr("date", ReasonInvalidDate)
	}
	t, err := time.Parse(models.DateLayout, trimmed)
	if err != nil {
		return models.CalendarDate{}, fieldErr("date", ReasonInvalidDate)
	}
	return models.CalendarDate{Time: t}, nil
}

// ValidateAmount accepts a string or numeric amount and requires a finite value.
func ValidateAmount(v any) (float64, error) {
	var val float64
	switch n := v.(type) {
	case float64:
		val = n
	case float32:
		val = float64(n)
	case int:
		val = float64(n)
	case int64:
		val = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fieldErr("amount", ReasonInvalidAmount)
		}
		val = f
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return 0, fieldErr("amount", ReasonInvalidAmount)
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, fieldErr("amount", ReasonInvalidAmount)
		}
		val = f
	default:
		return 0, fieldErr("amount", ReasonInvalidAmount)
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, fieldErr("amount", ReasonInvalidAmount)
	}
	return val, nil
}

// ValidateDescription enforces the length limit and, when asciiOnly is set,
// that every character is printable ASCII or whitespace.
func ValidateDescription(s string, asciiOnly bool) []error {
	var errs []error
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		errs = append(errs, fieldErr("description", ReasonDescriptionTooLong))
	}
	if asciiOnly && !isPrintableASCII(s) {
		errs = append(errs, fieldErr("description", ReasonDescriptionNonASCII))
	}
	return errs
}

func isPrintableASCII(s string) bool {
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r >= 0x20 && r <= 0x7E:
		default:
			return false
		}
	}
	return true
}

// ValidatePositiveID accepts "7", 7 or 7.0 and rejects zero, negatives and fractions.
func ValidatePositiveID(v any) (int64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			if i <= 0 {
				return 0, fieldErr("id", ReasonInvalidID)
			}
			return i, nil
		}
		parsed, err := n.Float64()
		if err != nil {
			return 0, fieldErr("id", ReasonInvalidID)
		}
		f = parsed
	case string:
		trimmed := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			if i <= 0 {
				return 0, fieldErr("id", ReasonInvalidID)
			}
			return i, nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, fieldErr("id", ReasonInvalidID)
		}
		f = parsed
	default:
		return 0, fieldErr("id", ReasonInvalidID)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f <= 0 || f > math.MaxInt64 {
		return 0, fieldErr("id", ReasonInvalidID)
	}
	return int64(f), nil
}

// Reason extracts the human-readable reason from a FieldError, or err.Error().
func Reason(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return err.Error()
}
