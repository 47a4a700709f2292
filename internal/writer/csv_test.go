package writer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-desk/internal/models"
)

func sampleForm() *models.StatementFormData {
	return &models.StatementFormData{
		Name:            "Priya Raman",
		CardNumber:      "4532015112830366",
		PreviousBalance: models.ParseNumber("13840"),
		NewBalance:      models.ParseNumber("13935.5"),
		Language:        models.LanguageTamil,
		Transactions: []models.TransactionEntry{
			{Date: "2025-03-02", Description: "Uber Ride, Chennai", Amount: models.ParseNumber("285.5")},
			{Date: "2025-03-05", Description: "Mobile Recharge", Amount: models.ParseNumber("")},
		},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	require.NoError(t, w.Write(&buf, sampleForm()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// 5 metadata lines + 1 header + 2 transactions
	require.Len(t, lines, 8)
	assert.Equal(t, "# Language,ta", lines[0])
	assert.Equal(t, "# Card Number,XXXX-XXXX-XXXX-0366", lines[2])
	assert.Equal(t, "# Previous Balance,13840.00", lines[3])
	assert.Equal(t, "Date,Description,Amount", lines[5])
	assert.Equal(t, `2025-03-02,"Uber Ride, Chennai",285.50`, lines[6])
	assert.Equal(t, "2025-03-05,Mobile Recharge,", lines[7])
}

func TestCSVWriter_WriteNoHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: false}
	require.NoError(t, w.Write(&buf, sampleForm()))

	output := buf.String()
	assert.NotContains(t, output, "# Name")
	assert.True(t, strings.HasPrefix(output, "Date,Description,Amount\n"))
}

func TestCSVWriter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, (&CSVWriter{}).WriteToFile(path, sampleForm()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Mobile Recharge")
}

func TestMetricsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MetricsCSV(&buf, models.PerformanceMetrics{
		{Operation: "create_cardholder", DurationMS: 4.25, MemoryChangeMB: 0},
		{Operation: "pdf_generation", DurationMS: 640, MemoryChangeMB: -1.5},
	}))

	assert.Equal(t,
		"Operation,Duration (ms),Memory change (MB)\ncreate_cardholder,4.25,0\npdf_generation,640,-1.5\n",
		buf.String())
}
