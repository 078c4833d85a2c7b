package promo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKnownCodes(t *testing.T) {
	d, ok := Validate("SAVE10")
	require.True(t, ok)
	assert.Equal(t, "SAVE10", d.Code)
	assert.Equal(t, float64(10), d.DiscountValue)
	assert.Equal(t, Percent, d.DiscountType)

	d, ok = Validate("FLAT100")
	require.True(t, ok)
	assert.Equal(t, float64(100), d.DiscountValue)
	assert.Equal(t, Flat, d.DiscountType)
}

func TestValidateIsCaseInsensitive(t *testing.T) {
	for _, code := range []string{"save10", "Save10", " SAVE10 "} {
		d, ok := Validate(code)
		require.True(t, ok, "code %q should validate", code)
		assert.Equal(t, "SAVE10", d.Code)
	}
}

func TestValidateUnknownCodes(t *testing.T) {
	for _, code := range []string{"", "  ", "SAVE20", "FLAT", "save10x"} {
		_, ok := Validate(code)
		assert.False(t, ok, "code %q should not validate", code)
	}
}
