// Package console renders the dispatcher's UI surfaces on a terminal.
package console

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"text/tabwriter"

	"github.com/insightdelivered/statement-desk/internal/models"
)

// Console prints alerts and results. It implements the alert, result and
// preview surfaces of the dispatcher.
type Console struct {
	out io.Writer
	err io.Writer

	mu     sync.Mutex
	alerts []string
	link   string
	markup string
	shown  bool
}

// New returns a console writing results to out and alerts to errOut.
func New(out, errOut io.Writer) *Console {
	return &Console{out: out, err: errOut}
}

func (c *Console) Alert(message string) {
	c.mu.Lock()
	c.alerts = append(c.alerts, message)
	c.mu.Unlock()
	fmt.Fprintf(c.err, "Alert: %s\n", message)
}

// ShowMetrics prints the performance table in the order received.
func (c *Console) ShowMetrics(metrics models.PerformanceMetrics) {
	fmt.Fprintln(c.out, "Performance Metrics")
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Operation\tDuration (ms)\tMemory Change (MB)")
	for _, m := range metrics {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Operation, raw(m.DurationMS), raw(m.MemoryChangeMB))
	}
	tw.Flush()
}

func (c *Console) SetDownloadLink(url string) {
	c.mu.Lock()
	c.link = url
	c.mu.Unlock()
	fmt.Fprintf(c.out, "Download: %s\n", url)
}

// ShowPreview keeps the markup for the caller to save.
func (c *Console) ShowPreview(markup string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markup = markup
	c.shown = true
}

// Alerts returns the alerts shown so far.
func (c *Console) Alerts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.alerts...)
}

// DownloadLink returns the last link set.
func (c *Console) DownloadLink() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.link
}

// Preview returns the last markup shown and whether any was.
func (c *Console) Preview() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.markup, c.shown
}

// raw prints a metric as the backend sent it, without rounding.
func raw(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
