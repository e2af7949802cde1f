package document

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	isoDateLayout     = "2006-01-02"
	displayDateLayout = "02-01-2006"
)

// FormatMoney renders an amount as "<CODE> 1,050.00/-"
func FormatMoney(d decimal.Decimal, code string) string {
	if code == "" {
		return FormatAmount(d)
	}
	return code + " " + FormatAmount(d)
}

// FormatAmount renders an amount for table cells, without the currency code
func FormatAmount(d decimal.Decimal) string {
	return formatDecimalWithCommas(d, 2) + "/-"
}

func formatDecimalWithCommas(d decimal.Decimal, precision int32) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	intPart, decPart, _ := strings.Cut(d.StringFixed(precision), ".")
	if decPart != "" {
		decPart = "." + decPart
	}

	var b strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	return sign + b.String() + decPart
}

// FormatPercent renders a fractional rate such as 0.05 as "5%"
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}

// FormatDisplayDate converts YYYY-MM-DD into DD-MM-YYYY. Anything else is
// returned unchanged.
func FormatDisplayDate(s string) string {
	t, err := time.Parse(isoDateLayout, strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return t.Format(displayDateLayout)
}

// IsDateKey reports whether a stored column holds a date
func IsDateKey(key string) bool {
	return strings.HasSuffix(key, "_date") ||
		strings.HasSuffix(key, "_expiry") ||
		key == "date_of_birth"
}

// DisplayValue prepares a stored value for drawing: blank-like values are
// suppressed and dates are shown as DD-MM-YYYY.
func DisplayValue(key, raw string) string {
	v := strings.TrimSpace(raw)
	switch strings.ToLower(v) {
	case "", "nan", "none", "null", "nat":
		return ""
	}
	if IsDateKey(key) {
		return FormatDisplayDate(v)
	}
	return v
}
