package validator

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
)

func validRecord() *entity.Record {
	return &entity.Record{
		InvoiceNumber:  "VREB1234",
		BillToName:     "Palm Holdings LLC",
		BillToEmail:    "accounts@palmholdings.ae",
		BillToAddress1: "Unit 4, Marina Plaza",
		BillToAddress2: "Dubai Marina, Dubai",
		BillToTRN:      "100123456700003",
		TenantName:     "Sara Khan",
		InvoiceDate:    "2024-03-01",
		PropertyName:   "Villa 12, Palm Jumeirah",
		RentalPrice:    decimal.NewFromInt(120000),
		CommissionRate: decimal.NewFromInt(1000),
		Status:         entity.StatusPending,
	}
}

func TestRecordValidator_ValidRecord(t *testing.T) {
	v := NewRecordValidator("VREB")
	assert.Empty(t, v.Validate(validRecord()))
}

func TestRecordValidator_MissingFieldReportedOnce(t *testing.T) {
	v := NewRecordValidator("VREB")

	tests := []struct {
		field string
		clear func(r *entity.Record)
	}{
		{"Invoice Number", func(r *entity.Record) { r.InvoiceNumber = "" }},
		{"Bill To Party Name", func(r *entity.Record) { r.BillToName = "" }},
		{"Bill To Party Email", func(r *entity.Record) { r.BillToEmail = "  " }},
		{"Bill To Party Address Line 1", func(r *entity.Record) { r.BillToAddress1 = "" }},
		{"Bill To Party Address Line 2", func(r *entity.Record) { r.BillToAddress2 = "" }},
		{"Bill To Party TRN", func(r *entity.Record) { r.BillToTRN = "" }},
		{"Property Name", func(r *entity.Record) { r.PropertyName = "" }},
		{"Tenant Name", func(r *entity.Record) { r.TenantName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			rec := validRecord()
			tt.clear(rec)

			errs := v.Validate(rec)
			assert.Equal(t, []string{tt.field + " is required"}, errs)
		})
	}
}

func TestRecordValidator_InvoiceNumberFormat(t *testing.T) {
	v := NewRecordValidator("VREB")

	rec := validRecord()
	rec.InvoiceNumber = "VREB1"
	assert.Equal(t, []string{"Invoice number must be in format 'VREB####'"}, v.Validate(rec))

	rec.InvoiceNumber = "VREB1234"
	assert.Empty(t, v.Validate(rec))

	rec.InvoiceNumber = "INV1234"
	assert.Len(t, v.Validate(rec), 1)
}

func TestRecordValidator_ConfigurablePrefix(t *testing.T) {
	v := NewRecordValidator("ACME")

	rec := validRecord()
	rec.InvoiceNumber = "ACME0001"
	assert.Empty(t, v.Validate(rec))

	rec.InvoiceNumber = "VREB0001"
	assert.Equal(t, []string{"Invoice number must be in format 'ACME####'"}, v.Validate(rec))
}

func TestRecordValidator_CollectsAllViolations(t *testing.T) {
	v := NewRecordValidator("")

	rec := validRecord()
	rec.BillToEmail = "not-an-email"
	rec.BillToTRN = "12345"
	rec.RentalPrice = decimal.Zero
	rec.CommissionRate = decimal.NewFromInt(-5)

	errs := v.Validate(rec)
	assert.Equal(t, []string{
		"Invalid email format",
		"Bill To Party TRN must be exactly 15 digits",
		"Rental price must be greater than 0",
		"Commission rate must be greater than 0",
	}, errs)
}

func TestRecordValidator_UnprintableText(t *testing.T) {
	v := NewRecordValidator("VREB")

	rec := validRecord()
	rec.TenantName = "Zoë Müller"
	assert.Empty(t, v.Validate(rec))

	rec.BillToName = "محمد Al Nahyan"
	rec.TenantName = "Zoë Łukasz"
	errs := v.Validate(rec)
	assert.Equal(t, []string{
		"Bill To Party Name contains characters that cannot be printed on the invoice",
		"Tenant Name contains characters that cannot be printed on the invoice",
	}, errs)
}

func TestRecordValidator_NilRecord(t *testing.T) {
	errs := NewRecordValidator("VREB").Validate(nil)
	assert.Len(t, errs, 1)
	assert.True(t, strings.Contains(errs[0], "required"))
}
