package document

import (
	"fmt"

	"github.com/vreb/brokerage-workflow/internal/domain/entity"
)

// Invoice labels
const (
	invoiceTitle       = "TAX INVOICE"
	labelBalanceDue    = "Balance Due:"
	labelBalanceDueOn  = "Balance Due Date:"
	labelBillTo        = "Bill To"
	labelTerms         = "Terms:"
	labelTRN           = "TRN:"
	labelBankDetails   = "Bank Details:"
	labelTaxSummary    = "TAX Summary"
	labelNotes         = "Notes"
	leftMargin         = 50.0
	rightBlockInset    = 200.0
	invoiceItemsHeader = 330.0
	invoiceBankTop     = 500.0
)

// Item table columns
const (
	colQty    = 350.0
	colRate   = 400.0
	colTax    = 470.0
	colAmount = 530.0
	tableEnd  = 555.0
)

// drawInvoice lays out a single-item tax invoice. Positions are fixed;
// the running cursor only advances within a block.
func drawInvoice(c *Canvas, rec *entity.Record, p entity.Profile) {
	right := c.Width() - rightBlockInset
	code := p.CurrencyCode

	c.SetTitle(fmt.Sprintf("%s #%s", invoiceTitle, rec.InvoiceNumber))

	// Company header
	c.SetFont(styleBold, 10)
	c.DrawString(leftMargin, 50, p.CompanyName)
	c.SetFont(styleReg, 9)
	c.DrawString(leftMargin, 65, fmt.Sprintf("%s, %s", p.CompanyAddress, p.CompanyCity))
	c.DrawString(leftMargin, 80, fmt.Sprintf("%s %s", p.CompanyWebsite, p.CompanyPhone))

	// Title and number
	c.SetFont(styleBold, 14)
	c.DrawString(leftMargin, 110, invoiceTitle)
	c.SetFont(styleReg, 10)
	c.DrawString(leftMargin, 125, "#"+rec.InvoiceNumber)
	c.DrawString(right, 125, "Invoice Date: "+FormatDisplayDate(rec.InvoiceDate))

	// Issuer block
	c.SetFont(styleBold, 10)
	c.DrawString(leftMargin, 155, p.CompanyName)
	c.SetFont(styleReg, 9)
	c.DrawString(leftMargin, 170, p.CompanyAddress)
	c.DrawString(leftMargin, 185, p.CompanyCity)
	c.DrawString(leftMargin, 200, p.CompanyEmail)
	c.DrawString(leftMargin, 215, "VAT No: "+p.CompanyVAT)

	// Balance due
	c.SetFont(styleBold, 10)
	c.DrawString(right, 155, fmt.Sprintf("%s %s", labelBalanceDue, FormatMoney(rec.TotalAmount, code)))
	c.SetFont(styleReg, 9)
	c.DrawString(right, 170, fmt.Sprintf("%s %s", labelBalanceDueOn, p.BalanceDueTerms))

	// Bill to
	c.SetFont(styleBold, 10)
	c.DrawString(leftMargin, 245, labelBillTo)
	c.SetFont(styleReg, 9)
	c.DrawString(leftMargin, 260, rec.BillToName)
	c.DrawString(leftMargin, 275, rec.BillToAddress1)
	c.DrawString(leftMargin, 290, rec.BillToAddress2)

	terms := rec.Terms
	if terms == "" {
		terms = p.Terms
	}
	c.DrawString(right, 245, fmt.Sprintf("%s %s", labelTerms, terms))
	c.DrawString(right, 260, fmt.Sprintf("%s %s", labelTRN, rec.BillToTRN))

	drawInvoiceItems(c, rec, p)
	drawInvoiceBank(c, rec, p)
}

func drawInvoiceItems(c *Canvas, rec *entity.Record, p entity.Profile) {
	y := invoiceItemsHeader

	c.Line(leftMargin, y-13, tableEnd, y-13)
	c.SetFont(styleBold, 9)
	c.DrawString(leftMargin, y, "# Items & Description")
	c.DrawString(colQty, y, "QTY")
	c.DrawString(colRate, y, "RATE")
	c.DrawString(colTax, y, "TAX @"+FormatPercent(p.VATRate))
	c.DrawString(colAmount, y, "Amount")
	c.Line(leftMargin, y+5, tableEnd, y+5)

	y += 20
	c.SetFont(styleReg, 9)
	c.DrawString(leftMargin, y, "1. Rent Commission")
	c.DrawString(leftMargin, y+15, "Villa Name: "+rec.PropertyName)
	c.DrawString(leftMargin, y+30, "Client Name: "+rec.TenantName)
	c.DrawString(leftMargin, y+45, "Rental Price: "+FormatMoney(rec.RentalPrice, p.CurrencyCode))

	c.DrawString(colQty, y, "1.00")
	c.DrawString(colRate, y, FormatAmount(rec.CommissionRate))
	c.DrawString(colTax, y, FormatAmount(rec.TaxAmount))
	c.DrawString(colAmount, y, FormatAmount(rec.TotalAmount))

	// Totals block
	y += 60
	c.Line(colQty, y, tableEnd, y)
	y += 15
	c.DrawString(colRate, y, "Sub Total")
	c.DrawString(colAmount, y, FormatAmount(rec.CommissionRate))
	y += 15
	c.SetFont(styleBold, 9)
	c.DrawString(colRate, y, "Total")
	c.DrawString(colAmount, y, FormatAmount(rec.TotalAmount))
	y += 7
	c.Line(colQty, y, tableEnd, y)
	c.Line(colQty, y+2, tableEnd, y+2)
}

func drawInvoiceBank(c *Canvas, rec *entity.Record, p entity.Profile) {
	y := invoiceBankTop

	c.SetFont(styleBold, 9)
	c.DrawString(leftMargin, y, labelBankDetails)
	c.SetFont(styleReg, 9)
	c.DrawString(leftMargin, y+15, "Account Name: "+p.BankAccountName)
	c.DrawString(leftMargin, y+30, "Account Number: "+p.BankAccountNo)
	c.DrawString(leftMargin, y+45, "IBAN: "+p.BankIBAN)
	c.DrawString(leftMargin, y+60, "Swift Code: "+p.BankSwift)
	c.DrawString(leftMargin, y+75, "Branch: "+p.BankBranch)

	// Tax summary
	c.SetFont(styleBold, 9)
	c.DrawString(leftMargin, y+105, labelTaxSummary)
	c.SetFont(styleReg, 9)
	c.DrawString(leftMargin, y+120, "TAX details")
	c.DrawString(200, y+120, fmt.Sprintf("Taxable Amount (%s)", p.CurrencyCode))
	c.DrawString(350, y+120, fmt.Sprintf("TAX Amount (%s)", p.CurrencyCode))
	c.DrawString(leftMargin, y+135, p.VATLabel)
	c.DrawString(200, y+135, FormatAmount(rec.CommissionRate))
	c.DrawString(350, y+135, FormatAmount(rec.TaxAmount))

	// Footer
	c.DrawString(leftMargin, y+165, labelNotes)
	c.DrawString(leftMargin, y+180, p.FooterNote)
}
