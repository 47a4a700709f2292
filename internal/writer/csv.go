package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/insightdelivered/statement-desk/internal/models"
)

// CSVWriter writes a collected statement form as CSV.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the form's transactions to a CSV file at path.
func (w *CSVWriter) WriteToFile(path string, data *models.StatementFormData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	if err := w.Write(f, data); err != nil {
		return err
	}
	return f.Close()
}

// Write writes the form's transactions in CSV format to out, preceded by
// "# Key,Value" metadata rows when IncludeHeader is set.
func (w *CSVWriter) Write(out io.Writer, data *models.StatementFormData) error {
	cw := csv.NewWriter(out)

	if w.IncludeHeader {
		for _, kv := range metadata(data) {
			if err := cw.Write([]string{"# " + kv[0], kv[1]}); err != nil {
				return fmt.Errorf("failed to write CSV metadata: %w", err)
			}
		}
	}

	if err := cw.Write([]string{"Date", "Description", "Amount"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, tx := range data.Transactions {
		if err := cw.Write([]string{tx.Date, tx.Description, formatNumber(tx.Amount)}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// MetricsCSV writes the backend's performance report.
func MetricsCSV(out io.Writer, metrics models.PerformanceMetrics) error {
	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"Operation", "Duration (ms)", "Memory change (MB)"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, m := range metrics {
		row := []string{m.Operation, formatFloat(m.DurationMS), formatFloat(m.MemoryChangeMB)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatNumber prints an amount with two decimals; NaN prints empty.
func formatNumber(n models.Number) string {
	if !n.Valid {
		return ""
	}
	return n.Value.StringFixed(2)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
