package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one brokerage invoice: the billed party, the property being
// billed for, the amounts and the lifecycle status.
type Record struct {
	InvoiceNumber  string          `json:"invoice_number"`
	BillToName     string          `json:"bill_to_party_name"`
	BillToEmail    string          `json:"bill_to_party_email"`
	BillToAddress1 string          `json:"bill_to_party_address_1"`
	BillToAddress2 string          `json:"bill_to_party_address_2"`
	BillToTRN      string          `json:"bill_to_party_trn"`
	TenantName     string          `json:"tenant_name"`
	InvoiceDate    string          `json:"invoice_date"`
	PropertyName   string          `json:"property_name"`
	RentalPrice    decimal.Decimal `json:"rental_price"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Status         RecordStatus    `json:"status"`
	PaymentDate    string          `json:"payment_date,omitempty"`
	Terms          string          `json:"terms"`
	VATRate        decimal.Decimal `json:"vat_rate"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ComputeAmounts derives tax and total from the commission rate:
// tax = rate * vatRate, total = rate + tax, both rounded to 2 places.
func (r *Record) ComputeAmounts(vatRate decimal.Decimal) {
	r.VATRate = vatRate
	r.TaxAmount = r.CommissionRate.Mul(vatRate).Round(2)
	r.TotalAmount = r.CommissionRate.Add(r.TaxAmount).Round(2)
}

// Clone returns a copy of the record. Decimal values are immutable so a
// shallow copy is enough.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}
