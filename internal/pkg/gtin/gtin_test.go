package gtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_StripsNonDigits(t *testing.T) {
	assert.Equal(t, "4001234567890", Normalize("4001-234-567-890"))
	assert.Equal(t, "4001234567890", Normalize(" 4001234567890 "))
}

func TestNormalize_PadsEAN8(t *testing.T) {
	assert.Equal(t, "0000012345678", Normalize("12345678"))
}

func TestNormalize_PadsUPCA(t *testing.T) {
	assert.Equal(t, "0123456789012", Normalize("123456789012"))
}

func TestNormalize_LeavesOtherLengthsAlone(t *testing.T) {
	assert.Equal(t, "4001234567890", Normalize("4001234567890"))
	assert.Equal(t, "123", Normalize("123"))
	assert.Equal(t, "", Normalize("no digits here"))
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, raw := range []string{"12345678", "123456789012", "4001-234-567-890", "abc", ""} {
		once := Normalize(raw)
		assert.Equal(t, once, Normalize(once), "raw=%q", raw)
	}
}

func TestNormalize_PaddedFormsAgree(t *testing.T) {
	assert.Equal(t, Normalize("0000012345678"), Normalize("12345678"))
}
