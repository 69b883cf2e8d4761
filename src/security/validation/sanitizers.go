package validation

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var strictHTMLPolicy = bluemonday.StrictPolicy()

// SanitizeText removes all HTML tags and unprintable characters. bluemonday
// escapes what it keeps, so entities are decoded back to plain text.
func SanitizeText(s string) string {
	cleaned := html.UnescapeString(strictHTMLPolicy.Sanitize(s))
	return strings.TrimSpace(StripUnprintable(cleaned))
}

// SanitizeForFormulaInjection prepends a single quote when a cell would be
// interpreted as a formula by Excel, LibreOffice or Sheets.
func SanitizeForFormulaInjection(s string) string {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) == 0 {
		return s
	}

	switch trimmed[0] {
	case '=', '+', '-', '@', '\t', '\r':
		if isNumeric(trimmed) {
			return s
		}
		return "'" + s
	}
	return s
}

// isNumeric lets signed numbers like -12.5 through the formula guard.
func isNumeric(s string) bool {
	body := strings.TrimLeft(s, "+-")
	if body == "" || len(s)-len(body) > 1 {
		return false
	}
	dot := false
	for _, r := range body {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}

// StripUnprintable removes non-printable characters, keeping tab, newline and carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}
