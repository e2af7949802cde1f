// Package validator checks invoice records and KYC applications against
// the brokerage's business rules. Every rule is evaluated; the caller gets
// the full list of violations.
package validator

import (
	"fmt"
	"strings"

	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"github.com/vreb/brokerage-workflow/pkg/utils"
)

// DefaultInvoicePrefix is used when no prefix is configured
const DefaultInvoicePrefix = "VREB"

// requiredField pairs a display name with an accessor on the record
type requiredField struct {
	name  string
	value func(r *entity.Record) string
}

var requiredFields = []requiredField{
	{"Invoice Number", func(r *entity.Record) string { return r.InvoiceNumber }},
	{"Bill To Party Name", func(r *entity.Record) string { return r.BillToName }},
	{"Bill To Party Email", func(r *entity.Record) string { return r.BillToEmail }},
	{"Bill To Party Address Line 1", func(r *entity.Record) string { return r.BillToAddress1 }},
	{"Bill To Party Address Line 2", func(r *entity.Record) string { return r.BillToAddress2 }},
	{"Bill To Party TRN", func(r *entity.Record) string { return r.BillToTRN }},
	{"Property Name", func(r *entity.Record) string { return r.PropertyName }},
	{"Tenant Name", func(r *entity.Record) string { return r.TenantName }},
}

// RecordValidator applies the invoice rule set
type RecordValidator struct {
	prefix string
}

// NewRecordValidator creates a validator for invoice numbers starting with prefix
func NewRecordValidator(prefix string) *RecordValidator {
	if prefix == "" {
		prefix = DefaultInvoicePrefix
	}
	return &RecordValidator{prefix: prefix}
}

// Validate returns every rule violation for the record; an empty slice means valid
func (v *RecordValidator) Validate(rec *entity.Record) []string {
	if rec == nil {
		return []string{"Record is required"}
	}

	errs := make([]string, 0)
	for _, field := range requiredFields {
		if isBlank(field.value(rec)) {
			errs = append(errs, fmt.Sprintf("%s is required", field.name))
		}
	}

	// Shape checks only run on present values so a missing field is reported once.
	for _, field := range requiredFields {
		value := field.value(rec)
		if !isBlank(value) && utils.ValidatePrintable(value) != nil {
			errs = append(errs, fmt.Sprintf("%s contains characters that cannot be printed on the invoice", field.name))
		}
	}
	if !isBlank(rec.InvoiceNumber) {
		if err := utils.ValidateInvoiceNumber(strings.TrimSpace(rec.InvoiceNumber), v.prefix); err != nil {
			errs = append(errs, fmt.Sprintf("Invoice number must be in format '%s####'", v.prefix))
		}
	}
	if !isBlank(rec.BillToEmail) {
		if err := utils.ValidateEmail(strings.TrimSpace(rec.BillToEmail)); err != nil {
			errs = append(errs, "Invalid email format")
		}
	}
	if !isBlank(rec.BillToTRN) {
		if err := utils.ValidateTRN(strings.TrimSpace(rec.BillToTRN)); err != nil {
			errs = append(errs, "Bill To Party TRN must be exactly 15 digits")
		}
	}

	if !rec.RentalPrice.IsPositive() {
		errs = append(errs, "Rental price must be greater than 0")
	}
	if !rec.CommissionRate.IsPositive() {
		errs = append(errs, "Commission rate must be greater than 0")
	}

	return errs
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
