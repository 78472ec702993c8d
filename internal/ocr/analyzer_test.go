package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseResult_PlainJSON(t *testing.T) {
	result, err := parseResult(`{"vendorName":"Green Market","amount":24.5,"date":"2026-01-15","confidence":0.92,"isPartnerVendor":true,"rawVendorName":"GREEN MARKET MMC"}`)
	assert.NoError(t, err)
	assert.Equal(t, "Green Market", *result.VendorName)
	assert.Equal(t, 24.5, *result.Amount)
	assert.Equal(t, "2026-01-15", *result.Date)
	assert.Equal(t, 0.92, result.Confidence)
	assert.True(t, result.IsPartnerVendor)
	assert.Equal(t, "GREEN MARKET MMC", *result.RawVendorName)
}

func TestParseResult_MarkdownFence(t *testing.T) {
	content := "Here is the extracted data:\n```json\n{\"vendorName\":\"Bravo\",\"amount\":10,\"date\":null,\"confidence\":0.5,\"isPartnerVendor\":false}\n```"

	result, err := parseResult(content)
	assert.NoError(t, err)
	assert.Equal(t, "Bravo", *result.VendorName)
	assert.Nil(t, result.Date)
	assert.False(t, result.IsPartnerVendor)
}

func TestParseResult_FenceWithoutLanguage(t *testing.T) {
	content := "```\n{\"vendorName\":\"Araz\",\"confidence\":1}\n```"

	result, err := parseResult(content)
	assert.NoError(t, err)
	assert.Equal(t, "Araz", *result.VendorName)
}

func TestParseResult_SurroundingProse(t *testing.T) {
	content := `The receipt shows: {"vendorName":"OBA","amount":3.2,"confidence":0.7} as requested.`

	result, err := parseResult(content)
	assert.NoError(t, err)
	assert.Equal(t, "OBA", *result.VendorName)
	assert.Equal(t, 3.2, *result.Amount)
}

func TestParseResult_NullFields(t *testing.T) {
	result, err := parseResult(`{"vendorName":null,"amount":null,"date":null,"confidence":0}`)
	assert.NoError(t, err)
	assert.Nil(t, result.VendorName)
	assert.Nil(t, result.Amount)
	assert.Nil(t, result.Date)
}

func TestParseResult_Garbage(t *testing.T) {
	_, err := parseResult("I could not read this receipt, sorry.")
	assert.Error(t, err)
}
