package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
)

func TestBuildInvoiceMessage(t *testing.T) {
	rec := testRecord()
	msg := BuildInvoiceMessage("billing@acme.test", rec, entity.DefaultProfile(), "/tmp/VREB1234.pdf")

	assert.Equal(t, "billing@acme.test", msg.To)
	assert.Equal(t, "Invoice #VREB1234 - Payment Due", msg.Subject)
	assert.Equal(t, "/tmp/VREB1234.pdf", msg.AttachmentPath)
	assert.Contains(t, msg.Body, "Dear Acme Holdings,")
	assert.Contains(t, msg.Body, "AED 1,050.00/-")
	assert.Contains(t, msg.Body, "Please do the payment at the earliest.")
	assert.Contains(t, msg.Body, "Immediate (Due on Receipt)")
	assert.Contains(t, msg.Body, "VIHAAN REAL ESTATE BROKERAGE")
}

func TestBuildInvoiceMessage_BlankName(t *testing.T) {
	rec := testRecord()
	rec.BillToName = "  "

	msg := BuildInvoiceMessage("billing@acme.test", rec, entity.DefaultProfile(), "")
	assert.Contains(t, msg.Body, "Dear Customer,")
}
