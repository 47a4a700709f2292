package main

import (
	"bytes"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/phpdave11/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const formYAML = `language: en
fields:
  name: Priya Raman
  card_number: "4111111111111111"
  email: priya@example.com
  phone: "+91 98765 43210"
  billing_address: 12 Anna Salai, Chennai
  previous_balance: "100"
  payments_received: "50"
  purchases_charges: "3.50"
  finance_charges: "0"
  new_balance: "53.50"
  credit_limit: "50000"
  available_credit: "49946.50"
  reward_points: "120"
transactions:
  - date: 2024-01-01
    description: Coffee
    amount: "3.50"
`

func writeForm(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "form.yaml")
	require.NoError(t, os.WriteFile(path, []byte(formYAML), 0o644))
	return path
}

func noEnv(string) (string, bool) { return "", false }

func statementPDF(t *testing.T, name string) []byte {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Cell(40, 10, "Statement for "+name)
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func startBackend(t *testing.T, pdf []byte) string {
	t.Helper()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Post("/api/generate-statement", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"performance": fiber.Map{
				"pdf_generation": fiber.Map{"duration_ms": 120.5, "memory_change_mb": 0.75},
			},
			"download_url": "/download-statement/1",
		})
	})
	app.Get("/download-statement/1", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "application/pdf")
		return c.Send(pdf)
	})
	app.Post("/preview-statement", func(c *fiber.Ctx) error {
		return c.SendString("<section>Preview for Priya Raman</section>")
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String()
}

func TestRunRows(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"rows", writeForm(t)}, noEnv, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var payload map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &payload))
	assert.Equal(t, "Priya Raman", payload["name"])
	assert.Equal(t, 100.0, payload["previous_balance"])
	assert.Equal(t, "en", payload["language"])

	txs := payload["transactions"].([]any)
	require.Len(t, txs, 1)
	tx := txs[0].(map[string]any)
	assert.Equal(t, "2024-01-01", tx["date"])
	assert.Equal(t, "Coffee", tx["description"])
	assert.Equal(t, 3.5, tx["amount"])
}

func TestRunGenerateSavesStatement(t *testing.T) {
	base := startBackend(t, statementPDF(t, "Priya Raman"))
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "statement.pdf")
	csvPath := filepath.Join(dir, "statement.csv")
	xlsxPath := filepath.Join(dir, "statement.xlsx")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-backend=" + base, "-save=" + pdfPath, "-csv=" + csvPath, "-xlsx=" + xlsxPath, "generate", writeForm(t)}, noEnv, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "pdf_generation")
	assert.Contains(t, out, "Download: /download-statement/1")
	assert.Contains(t, out, "1 page(s)")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Card Number,XXXX-XXXX-XXXX-1111")
	assert.Contains(t, string(data), "2024-01-01,Coffee,3.50")
	assert.Contains(t, string(data), "pdf_generation,120.5,0.75")
	assert.FileExists(t, xlsxPath)
	assert.Contains(t, out, "Excel: "+xlsxPath)
}

func TestRunPreviewWritesPage(t *testing.T) {
	base := startBackend(t, nil)
	out := filepath.Join(t.TempDir(), "preview.html")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-backend=" + base, "-lang=ta", "-out=" + out, "preview", writeForm(t)}, noEnv, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	page, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(page), `lang="ta"`)
	assert.Contains(t, string(page), "<section>Preview for Priya Raman</section>")
	assert.Contains(t, string(page), "Noto Sans Tamil")
}

func TestRunBackendDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	var stdout, stderr bytes.Buffer
	code := run([]string{"-backend=http://" + addr, "-timeout=2s", "generate", writeForm(t)}, noEnv, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "An error occurred while generating the statement. Please try again.")
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no arguments", nil, 2},
		{"unknown command", []string{"print", "form.yaml"}, 2},
		{"bad backend", []string{"-backend=nowhere", "rows", "form.yaml"}, 2},
		{"missing form", []string{"rows", "missing.yaml"}, 1},
		{"unsupported language", []string{"-lang=fr", "rows", "form.yaml"}, 1},
	}

	form := writeForm(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string(nil), tt.args...)
			for i, a := range args {
				if a == "form.yaml" {
					args[i] = form
				}
			}
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.code, run(args, noEnv, &stdout, &stderr))
			assert.NotEmpty(t, strings.TrimSpace(stderr.String()))
		})
	}
}

func TestRunVersion(t *testing.T) {
	var stdout bytes.Buffer
	assert.Equal(t, 0, run([]string{"-version"}, noEnv, &stdout, &bytes.Buffer{}))
	assert.Equal(t, "statement-desk v1.0.0\n", stdout.String())
}
