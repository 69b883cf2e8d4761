package validation

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Coffee beans", SanitizeText("<b>Coffee</b> beans"))
	assert.Equal(t, "Rent & utilities", SanitizeText("Rent & utilities"))
	assert.Equal(t, "a\tb", SanitizeText("  a\tb  "))
}

func TestStripUnprintable(t *testing.T) {
	assert.Equal(t, "ab\tc\n", StripUnprintable("a\x00b\tc\x07\n"))
}

func TestSanitizeForFormulaInjection(t *testing.T) {
	assert.Equal(t, "'=SUM(A1:A2)", SanitizeForFormulaInjection("=SUM(A1:A2)"))
	assert.Equal(t, "'@cmd", SanitizeForFormulaInjection("@cmd"))
	assert.Equal(t, "'+1+2", SanitizeForFormulaInjection("+1+2"))
	assert.Equal(t, "-12.5", SanitizeForFormulaInjection("-12.5"))
	assert.Equal(t, "plain", SanitizeForFormulaInjection("plain"))
	assert.Equal(t, "", SanitizeForFormulaInjection(""))
}

func TestValidateClientContentType(t *testing.T) {
	assert.NoError(t, ValidateClientContentType("text/csv"))
	assert.NoError(t, ValidateClientContentType("text/plain; charset=utf-8"))
	assert.ErrorIs(t, ValidateClientContentType("application/pdf"), ErrValidationFailed)
	assert.Error(t, ValidateClientContentType("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
}

func TestValidateFileContentByMagicBytes(t *testing.T) {
	csv := bytes.NewReader([]byte("date,amount\n2024-01-01,10\n"))
	detected, err := ValidateFileContentByMagicBytes(csv)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", detected)

	// rewound for the parser
	pos, _ := csv.Seek(0, io.SeekCurrent)
	assert.Equal(t, int64(0), pos)

	_, err = ValidateFileContentByMagicBytes(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = ValidateFileContentByMagicBytes(bytes.NewReader([]byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0x00}))
	assert.ErrorIs(t, err, ErrValidationFailed)

	// a multi-byte rune straddling the sniff limit is still text
	big := strings.Repeat("a", 1023) + "é\n"
	_, err = ValidateFileContentByMagicBytes(strings.NewReader(big))
	assert.NoError(t, err)
}
