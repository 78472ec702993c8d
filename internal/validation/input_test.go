package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateVendorName(t *testing.T) {
	assert.NoError(t, ValidateVendorName("Green Market"))
	assert.NoError(t, ValidateVendorName("Yaşıl Bazar"))
	assert.Error(t, ValidateVendorName(""))
	assert.Error(t, ValidateVendorName("   "))
	assert.Error(t, ValidateVendorName(strings.Repeat("x", MaxVendorNameLength+1)))
}

func TestValidatePurchaseAmount(t *testing.T) {
	assert.NoError(t, ValidatePurchaseAmount(0.01))
	assert.NoError(t, ValidatePurchaseAmount(MaxPurchaseAmount))
	assert.Error(t, ValidatePurchaseAmount(0))
	assert.Error(t, ValidatePurchaseAmount(-10))
	assert.Error(t, ValidatePurchaseAmount(MaxPurchaseAmount+1))
}

func TestValidatePurchaseDate(t *testing.T) {
	assert.NoError(t, ValidatePurchaseDate("2026-01-15"))
	assert.NoError(t, ValidatePurchaseDate("2024-02-29"))

	assert.Error(t, ValidatePurchaseDate(""))
	assert.Error(t, ValidatePurchaseDate("15.01.2026"))
	assert.Error(t, ValidatePurchaseDate("2026-13-01"))
	assert.Error(t, ValidatePurchaseDate("2025-02-29"))
	assert.Error(t, ValidatePurchaseDate("2026-01-15T10:00:00Z"))
}

func TestValidatePaymentDetails(t *testing.T) {
	assert.NoError(t, ValidatePaymentDetails("AZ21NABZ00000000137010001944"))
	assert.Error(t, ValidatePaymentDetails(""))
	assert.Error(t, ValidatePaymentDetails("  "))
	assert.Error(t, ValidatePaymentDetails(strings.Repeat("1", MaxPaymentDetailsLength+1)))
}

func TestValidateLength_CountsRunes(t *testing.T) {
	// Cyrillic and Azeri characters count as one rune each.
	assert.NoError(t, ValidateLength("field", strings.Repeat("ə", 10), 1, 10))
	assert.Error(t, ValidateLength("field", strings.Repeat("ə", 11), 1, 10))
}
