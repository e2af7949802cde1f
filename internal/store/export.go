package store

import (
	"fmt"
	"io"

	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Invoices"

var exportHeaders = []string{
	"Invoice Number", "Invoice Date", "Bill To", "Email", "TRN",
	"Property", "Tenant", "Rental Price", "Commission", "Tax", "Total",
	"Status", "Payment Date",
}

// ExportWorkbook writes records as a formatted workbook with numeric amount
// cells and a totals row
func ExportWorkbook(w io.Writer, records []*entity.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F2FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return fmt.Errorf("failed to create money style: %w", err)
	}

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	if err := f.SetCellStyle(exportSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range records {
		rowNum := i + 2
		values := []interface{}{
			r.InvoiceNumber, r.InvoiceDate, r.BillToName, r.BillToEmail, r.BillToTRN,
			r.PropertyName, r.TenantName,
			r.RentalPrice.InexactFloat64(), r.CommissionRate.InexactFloat64(),
			r.TaxAmount.InexactFloat64(), r.TotalAmount.InexactFloat64(),
			r.Status.String(), r.PaymentDate,
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}
	}

	if n := len(records); n > 0 {
		totalRow := n + 2
		if err := f.SetCellValue(exportSheet, fmt.Sprintf("A%d", totalRow), "TOTAL"); err != nil {
			return err
		}
		for _, col := range []string{"H", "I", "J", "K"} {
			formula := fmt.Sprintf("SUM(%s2:%s%d)", col, col, totalRow-1)
			if err := f.SetCellFormula(exportSheet, fmt.Sprintf("%s%d", col, totalRow), formula); err != nil {
				return fmt.Errorf("failed to write total formula: %w", err)
			}
		}
		if err := f.SetCellStyle(exportSheet, "H2", fmt.Sprintf("K%d", totalRow), moneyStyle); err != nil {
			return fmt.Errorf("failed to style amounts: %w", err)
		}
	}

	if err := f.SetColWidth(exportSheet, "A", lastCol, 18); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
