package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// CalendarDate is a UTC date serialised as YYYY-MM-DD.
type CalendarDate struct {
	time.Time
}

// NewCalendarDate truncates t to its calendar day in UTC.
func NewCalendarDate(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// MustDate parses a YYYY-MM-DD string and panics on failure. Intended for fixtures.
func MustDate(s string) CalendarDate {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return CalendarDate{t}
}

func (d CalendarDate) String() string {
	return d.Format(DateLayout)
}

func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *CalendarDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("date %q is not YYYY-MM-DD: %w", s, err)
	}
	d.Time = t
	return nil
}

// RawRecord is one loosely typed input row, keyed by column name.
// Values are strings when decoded from CSV and may be numbers when decoded from JSON.
type RawRecord map[string]any

// ParseErrorField marks a record whose source row could not be decoded.
// It holds the decoder's message; the row validator rejects any record carrying it.
const ParseErrorField = "_parse_error"

// TransactionRecord is a validated, normalised ledger entry.
type TransactionRecord struct {
	Date           CalendarDate `json:"date"`
	Amount         float64      `json:"amount"`
	Description    string       `json:"description,omitempty"`
	Category       string       `json:"category,omitempty"`
	CustomCategory bool         `json:"customCategory,omitempty"`
	ID             *int64       `json:"id,omitempty"`
}

// InvalidRow is a quarantined input row with the rules it violated.
type InvalidRow struct {
	Index  int       `json:"index"`
	Row    RawRecord `json:"row"`
	Errors []string  `json:"errors"`
}

// ValidationResult partitions an input batch, preserving input order on both sides.
type ValidationResult struct {
	ValidRows   []TransactionRecord `json:"validRows"`
	InvalidRows []InvalidRow        `json:"invalidRows"`
}

// HistoryPoint is one (date, amount) pair sent to the forecasting service.
type HistoryPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}
