package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/username/fincast/backend/src/logger"
	"github.com/username/fincast/backend/src/models"
)

// ErrMissingColumns is returned when the header lacks a required column.
var ErrMissingColumns = errors.New("csv is missing required columns")

// RequiredColumns must be present in the header row.
var RequiredColumns = []string{"date", "amount"}

const utf8BOM = "\uFEFF"

// Parser reads a headed transaction CSV into loosely typed records.
// Values are kept as strings; the row validator decides what they mean.
type Parser struct {
	// LazyQuotes lets a stray quote through inside a field, e.g. `27" monitor`.
	LazyQuotes bool
}

// NewParser creates a Parser that tolerates stray quotes.
func NewParser() *Parser {
	return &Parser{LazyQuotes: true}
}

// Parse reads the header, lowercases it, and maps each following row onto it.
// Blank lines are skipped. Short rows leave the missing columns out, extra cells are dropped.
// A row the decoder rejects is kept as a record carrying models.ParseErrorField so that
// it is quarantined with the rest of the invalid rows.
func (p *Parser) Parse(file io.Reader) ([]models.RawRecord, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = p.LazyQuotes

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: file has no header row", ErrMissingColumns)
		}
		return nil, fmt.Errorf("csv parser: failed to read header: %w", err)
	}

	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		columns[i] = strings.ToLower(strings.TrimSpace(name))
		seen[columns[i]] = true
	}

	var missing []string
	for _, required := range RequiredColumns {
		if !seen[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	records := []models.RawRecord{}
	for {
		line, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if err != nil && !errors.As(err, &parseErr) {
			return nil, fmt.Errorf("csv parser: failed to read row %d: %w", len(records)+1, err)
		}
		if parseErr == nil && isBlank(line) {
			continue
		}

		record := make(models.RawRecord, len(columns)+1)
		for i, name := range columns {
			if name == "" || i >= len(line) {
				continue
			}
			record[name] = strings.TrimSpace(line[i])
		}
		if parseErr != nil {
			logger.L.Warn("Malformed CSV row quarantined", "line", parseErr.StartLine, "error", parseErr)
			record[models.ParseErrorField] = parseErr.Error()
		}
		records = append(records, record)
	}

	logger.L.Debug("CSV parsed", "columns", columns, "rows", len(records))
	return records, nil
}

func isBlank(line []string) bool {
	for _, cell := range line {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
