// Package statement saves generated statements and reads them back.
package statement

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Downloader fetches a generated statement by its download link.
type Downloader interface {
	Download(link string) ([]byte, error)
}

// Save downloads the statement at link into path and returns its size.
func Save(d Downloader, link, path string) (int, error) {
	data, err := d.Download(link)
	if err != nil {
		return 0, err
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		return 0, fmt.Errorf("download %q is not a PDF document", link)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write statement %q: %w", path, err)
	}
	return len(data), nil
}

// Report describes a saved statement.
type Report struct {
	Path  string
	Pages int
	Text  []string // plain text per page
}

// Contains reports whether any page mentions s, ignoring case.
func (r *Report) Contains(s string) bool {
	needle := strings.ToLower(s)
	for _, page := range r.Text {
		if strings.Contains(strings.ToLower(page), needle) {
			return true
		}
	}
	return false
}

// Inspect opens a statement PDF and extracts the text of each page. Pages
// whose text cannot be decoded are kept as empty strings.
func Inspect(path string) (report *Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed reading %q: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement %q: %w", path, err)
	}
	defer f.Close()

	n := r.NumPage()
	if n == 0 {
		return nil, fmt.Errorf("statement %q has no pages", path)
	}

	report = &Report{Path: path, Pages: n, Text: make([]string, 0, n)}
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			report.Text = append(report.Text, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			text = ""
		}
		report.Text = append(report.Text, strings.TrimSpace(text))
	}
	return report, nil
}
