package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-desk/internal/models"
)

// Sheet names of the workbook.
const (
	TransactionsSheet = "Transactions"
	PerformanceSheet  = "Performance"
)

// XLSXWriter writes a collected statement form and the backend's
// performance report as an Excel workbook.
type XLSXWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the workbook to path.
func (w *XLSXWriter) WriteToFile(path string, data *models.StatementFormData, metrics models.PerformanceMetrics) error {
	f, err := w.build(data, metrics)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write Excel file %q: %w", path, err)
	}
	return nil
}

// Write writes the workbook to out.
func (w *XLSXWriter) Write(out io.Writer, data *models.StatementFormData, metrics models.PerformanceMetrics) error {
	f, err := w.build(data, metrics)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func (w *XLSXWriter) build(data *models.StatementFormData, metrics models.PerformanceMetrics) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", TransactionsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	row := 1
	if w.IncludeHeader {
		for _, kv := range metadata(data) {
			setRow(f, TransactionsSheet, row, kv[0], kv[1])
			row++
		}
		if row > 1 {
			row++
		}
	}

	setRow(f, TransactionsSheet, row, "Date", "Description", "Amount")
	styleRow(f, TransactionsSheet, row, 3, bold)
	for _, tx := range data.Transactions {
		row++
		var amount any
		if tx.Amount.Valid {
			amount = tx.Amount.Value.InexactFloat64()
		}
		setRow(f, TransactionsSheet, row, tx.Date, tx.Description, amount)
	}
	_ = f.SetColWidth(TransactionsSheet, "A", "A", 14)
	_ = f.SetColWidth(TransactionsSheet, "B", "B", 40)
	_ = f.SetColWidth(TransactionsSheet, "C", "C", 14)

	if len(metrics) > 0 {
		if _, err := f.NewSheet(PerformanceSheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to add sheet: %w", err)
		}
		setRow(f, PerformanceSheet, 1, "Operation", "Duration (ms)", "Memory change (MB)")
		styleRow(f, PerformanceSheet, 1, 3, bold)
		for i, m := range metrics {
			setRow(f, PerformanceSheet, i+2, m.Operation, m.DurationMS, m.MemoryChangeMB)
		}
		_ = f.SetColWidth(PerformanceSheet, "A", "C", 20)
	}
	return f, nil
}

// metadata lists the non-empty "Key, Value" rows shared with the CSV
// header.
func metadata(data *models.StatementFormData) [][2]string {
	all := [][2]string{
		{"Language", data.Language.String()},
		{"Name", data.Name},
		{"Card Number", data.MaskedCardNumber()},
		{"Previous Balance", formatNumber(data.PreviousBalance)},
		{"New Balance", formatNumber(data.NewBalance)},
	}
	var out [][2]string
	for _, kv := range all {
		if kv[1] != "" {
			out = append(out, kv)
		}
	}
	return out
}

func setRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) {
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(cols, row)
	_ = f.SetCellStyle(sheet, first, last, style)
}
