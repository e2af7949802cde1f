package document

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		code     string
		expected string
	}{
		{"1050", "AED", "AED 1,050.00/-"},
		{"50", "AED", "AED 50.00/-"},
		{"0", "AED", "AED 0.00/-"},
		{"1234567.891", "AED", "AED 1,234,567.89/-"},
		{"999.995", "AED", "AED 1,000.00/-"},
		{"-2500.5", "AED", "AED -2,500.50/-"},
		{"1050", "", "1,050.00/-"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMoney(decimal.RequireFromString(tt.amount), tt.code))
		})
	}
}

func TestFormatMoney_ComputedAmounts(t *testing.T) {
	rate := decimal.RequireFromString("1000.00")
	vat := decimal.RequireFromString("0.05")

	tax := rate.Mul(vat).Round(2)
	total := rate.Add(tax)

	assert.Equal(t, "AED 50.00/-", FormatMoney(tax, "AED"))
	assert.Equal(t, "AED 1,050.00/-", FormatMoney(total, "AED"))
	assert.Equal(t, "1,050.00/-", FormatAmount(total))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "5%", FormatPercent(decimal.RequireFromString("0.05")))
	assert.Equal(t, "12.5%", FormatPercent(decimal.RequireFromString("0.125")))
}

func TestFormatDisplayDate(t *testing.T) {
	assert.Equal(t, "15-03-2024", FormatDisplayDate("2024-03-15"))
	assert.Equal(t, "15/03/2024", FormatDisplayDate("15/03/2024"))
	assert.Equal(t, "", FormatDisplayDate(""))
}

func TestDisplayValue(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		raw      string
		expected string
	}{
		{"plain text", "full_name", "Jane Doe", "Jane Doe"},
		{"nan suppressed", "dual_nationality", "nan", ""},
		{"NaN suppressed", "dual_nationality", "NaN", ""},
		{"none suppressed", "contact_office", "None", ""},
		{"blank", "contact_office", "   ", ""},
		{"issue date", "passport_issue_date", "2020-01-31", "31-01-2020"},
		{"expiry", "visa_expiry", "2026-12-01", "01-12-2026"},
		{"birth date", "date_of_birth", "1990-07-04", "04-07-1990"},
		{"unparseable date passes through", "visa_expiry", "soon", "soon"},
		{"date-looking non-date key untouched", "emirates_id", "2020-01-31", "2020-01-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DisplayValue(tt.key, tt.raw))
		})
	}
}
