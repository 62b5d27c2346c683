package billing

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/javedfarm/dairybook/internal/money"
)

// WriteReport renders the month summary as an XLSX workbook with one row
// per billed customer and a totals row at the bottom.
func WriteReport(w io.Writer, summary *MonthSummary, month time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := month.Format("January 2006")

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Customer", "Phone", "Milk (L)", "Amount", "Paid", "Balance", "Status"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, h)
	}

	row := 2
	for _, bill := range summary.Bills {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), bill.Customer.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), bill.Customer.Phone)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), bill.TotalQuantity)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), money.Format(bill.TotalAmount))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), money.Format(bill.PaidAmount))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), money.Format(bill.Balance))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), string(bill.Status))
		row++
	}

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), summary.TotalQuantity)
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), money.Format(summary.TotalAmount))
	f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), money.Format(summary.TotalPaid))
	f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), money.Format(summary.TotalBalance))

	f.SetColWidth(sheetName, "A", "A", 24)
	f.SetColWidth(sheetName, "B", "B", 16)
	f.SetColWidth(sheetName, "C", "F", 12)
	f.SetColWidth(sheetName, "G", "G", 10)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}
