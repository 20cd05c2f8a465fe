package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/legal-digest/internal/types"
)

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	input := "The   Tenant    shall\tpay rent."
	assert.Equal(t, "The Tenant shall pay rent.", CleanText(input))
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	input := "Section 1\n\n\n\n\nSection 2"
	assert.Equal(t, "Section 1\n\nSection 2", CleanText(input))
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	input := "Line 1\r\nLine 2\rLine 3\nLine 4"
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", CleanText(input))
}

func TestCleanText_FormFeedSeparatesPages(t *testing.T) {
	input := "End of page one.\fStart of page two."
	assert.Equal(t, "End of page one.\n\nStart of page two.", CleanText(input))
}

func TestCleanText_LayoutPadding(t *testing.T) {
	input := "        ARTICLE 1        DEFINITIONS   \n   1.1  \"Premises\" means the unit."
	assert.Equal(t, "ARTICLE 1 DEFINITIONS\n1.1 \"Premises\" means the unit.", CleanText(input))
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	input := "Société Générale — §4.2 «Dépôt»"
	assert.Equal(t, input, CleanText(input))
}

func TestDecodeText(t *testing.T) {
	text, err := DecodeText([]byte("\xEF\xBB\xBFLease agreement"))
	require.NoError(t, err)
	assert.Equal(t, "Lease agreement", text)

	_, err = DecodeText([]byte{0xff, 0xfe, 0x00})
	var validationErr *types.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
