package notification

import (
	"fmt"
	"strings"

	"github.com/vreb/brokerage-workflow/internal/document"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
)

// Message is an outbound invoice notification
type Message struct {
	To             string
	Subject        string
	Body           string
	AttachmentPath string
}

// BuildInvoiceMessage renders the payment-due message for a record
func BuildInvoiceMessage(recipient string, rec *entity.Record, profile entity.Profile, artifactPath string) Message {
	name := strings.TrimSpace(rec.BillToName)
	if name == "" {
		name = "Customer"
	}

	due := profile.BalanceDueTerms
	terms := rec.Terms
	if terms == "" {
		terms = profile.Terms
	}
	if terms != "" && !strings.EqualFold(terms, due) {
		due = fmt.Sprintf("%s (%s)", due, terms)
	}

	body := fmt.Sprintf(`Dear %s,

Your payment of %s for invoice #%s is due by %s.
Please do the payment at the earliest.

Property: %s
Tenant: %s

The invoice is attached to this message.

Best regards,
%s
%s`,
		name,
		document.FormatMoney(rec.TotalAmount, profile.CurrencyCode),
		rec.InvoiceNumber,
		due,
		rec.PropertyName,
		rec.TenantName,
		profile.CompanyName,
		profile.CompanyPhone,
	)

	return Message{
		To:             recipient,
		Subject:        fmt.Sprintf("Invoice #%s - Payment Due", rec.InvoiceNumber),
		Body:           body,
		AttachmentPath: artifactPath,
	}
}
