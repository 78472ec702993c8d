package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Validation limits.
const (
	MaxVendorNameLength     = 200
	MaxPaymentDetailsLength = 500
	MaxAdminNotesLength     = 2000
	MaxDonorNameLength      = 100
	MaxDonationMessageLength = 1000
	MaxPurchaseAmount       = 100000.0 // AZN; anything above is a typo or fraud
	PurchaseDateLayout      = "2006-01-02"
)

// ValidateLength checks the rune length of a string field.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s must be at most %d characters", fieldName, max)
	}
	return nil
}

// ValidateVendorName checks the free-text vendor name on a receipt.
func ValidateVendorName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("vendor name is required")
	}
	return ValidateLength("vendor name", name, 1, MaxVendorNameLength)
}

// ValidatePurchaseAmount checks the receipt amount.
func ValidatePurchaseAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("purchase amount must be positive")
	}
	if amount > MaxPurchaseAmount {
		return fmt.Errorf("purchase amount must be at most %.0f", MaxPurchaseAmount)
	}
	return nil
}

// ValidatePurchaseDate checks that the date is a real calendar date in
// YYYY-MM-DD form.
func ValidatePurchaseDate(date string) error {
	if date == "" {
		return fmt.Errorf("purchase date is required")
	}
	if _, err := time.Parse(PurchaseDateLayout, date); err != nil {
		return fmt.Errorf("purchase date must be a valid date in YYYY-MM-DD format")
	}
	return nil
}

// ValidatePaymentDetails checks the method-dependent free-text details of a
// withdrawal request.
func ValidatePaymentDetails(details string) error {
	if strings.TrimSpace(details) == "" {
		return fmt.Errorf("payment details are required")
	}
	return ValidateLength("payment details", details, 1, MaxPaymentDetailsLength)
}
