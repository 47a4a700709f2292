package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/insightdelivered/statement-desk/internal/config"
	"github.com/insightdelivered/statement-desk/internal/console"
	"github.com/insightdelivered/statement-desk/internal/dispatch"
	"github.com/insightdelivered/statement-desk/internal/fonts"
	"github.com/insightdelivered/statement-desk/internal/form"
	"github.com/insightdelivered/statement-desk/internal/i18n"
	"github.com/insightdelivered/statement-desk/internal/logger"
	"github.com/insightdelivered/statement-desk/internal/models"
	"github.com/insightdelivered/statement-desk/internal/preview"
	"github.com/insightdelivered/statement-desk/internal/statement"
	"github.com/insightdelivered/statement-desk/internal/writer"
)

const version = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:], nil, os.Stdout, os.Stderr))
}

// app is one CLI session: a form registry with the file's values typed
// into one tab.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	table    i18n.Table
	head     *fonts.Head
	registry *form.Registry
	lang     models.Language
	stdout   io.Writer
	stderr   io.Writer
}

func run(args []string, lookup func(string) (string, bool), stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, lookup, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if cfg.Version {
		fmt.Fprintf(stdout, "statement-desk v%s\n", version)
		return 0
	}
	if len(cfg.Args) != 2 {
		fmt.Fprintln(stderr, "Usage: statement-desk [flags] <generate|preview|rows> <form.yaml>")
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	log, err := logger.New(logger.Config{Environment: cfg.Environment, Level: cfg.LogLevel})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	defer func() { _ = log.Sync() }()

	command, formPath := cfg.Args[0], cfg.Args[1]
	a, err := setup(cfg, log, formPath, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error processing %s: %v\n", formPath, err)
		return 1
	}

	switch command {
	case "rows":
		err = a.rows()
	case "generate":
		err = a.generate()
	case "preview":
		err = a.preview()
	default:
		fmt.Fprintf(stderr, "Unknown command %q. Supported: generate, preview, rows\n", command)
		return 2
	}
	if err != nil {
		log.Debug("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// setup builds the UI model the way the page does on load: strings,
// fonts, tabs, then the form file typed into the selected tab.
func setup(cfg *config.Config, log *zap.Logger, formPath string, stdout, stderr io.Writer) (*app, error) {
	table := i18n.Default()
	if cfg.TranslationsPath != "" {
		extra, err := i18n.Load(cfg.TranslationsPath)
		if err != nil {
			return nil, err
		}
		table = table.Merge(extra)
	}

	file, err := form.LoadFile(formPath)
	if err != nil {
		return nil, err
	}

	code := cfg.Language
	if code == "" {
		code = file.Language
	}
	lang := models.LanguageEnglish
	if code != "" {
		if lang, err = models.ParseLanguage(code); err != nil {
			return nil, err
		}
	}

	head := &fonts.Head{}
	loader := fonts.NewLoader(head, log)
	loader.LoadAll()
	loader.LoadForLanguage(lang)

	registry := form.NewRegistry(table)
	els, ins := registry.Elements()
	if _, err := i18n.NewTranslator(table, log).Apply(lang, els, ins); err != nil {
		return nil, err
	}

	tab, err := registry.Tab(lang)
	if err != nil {
		return nil, err
	}
	if err := form.Fill(tab, file, time.Now()); err != nil {
		return nil, err
	}
	log.Info("form loaded",
		zap.String("path", formPath),
		zap.String("language", lang.String()),
		zap.Int("transactions", tab.Rows.Len()))

	return &app{
		cfg:      cfg,
		log:      log,
		table:    table,
		head:     head,
		registry: registry,
		lang:     lang,
		stdout:   stdout,
		stderr:   stderr,
	}, nil
}

func (a *app) dispatcher(ui *console.Console) (*dispatch.Dispatcher, *dispatch.Backend) {
	backend := dispatch.NewBackend(a.cfg.BackendURL,
		dispatch.WithTimeout(a.cfg.Timeout),
		dispatch.WithLogger(a.log))
	surfaces := dispatch.Surfaces{Alerts: ui, Results: ui, Preview: ui}
	tracer := otel.Tracer("github.com/insightdelivered/statement-desk")
	return dispatch.New(a.registry, backend, surfaces, a.log, dispatch.WithTracer(tracer)), backend
}

func (a *app) rows() error {
	payload, err := form.Collect(a.registry, a.lang)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func (a *app) generate() error {
	ui := console.New(a.stdout, a.stderr)
	d, backend := a.dispatcher(ui)

	resp, err := d.Generate(a.lang)
	if err != nil {
		return err
	}

	if a.cfg.Save != "" {
		if err := a.save(backend, resp.DownloadURL); err != nil {
			return err
		}
	}
	if a.cfg.CSV != "" {
		if err := a.exportCSV(resp.Performance); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "CSV: %s\n", a.cfg.CSV)
	}
	if a.cfg.XLSX != "" {
		payload, err := form.Collect(a.registry, a.lang)
		if err != nil {
			return err
		}
		w := &writer.XLSXWriter{IncludeHeader: a.cfg.Header}
		if err := w.WriteToFile(a.cfg.XLSX, payload, resp.Performance); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Excel: %s\n", a.cfg.XLSX)
	}
	return nil
}

func (a *app) save(backend *dispatch.Backend, link string) error {
	size, err := statement.Save(backend, link, a.cfg.Save)
	if err != nil {
		return err
	}
	report, err := statement.Inspect(a.cfg.Save)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Saved: %s (%d bytes, %d page(s))\n", report.Path, size, report.Pages)

	payload, err := form.Collect(a.registry, a.lang)
	if err == nil && payload.Name != "" && !report.Contains(payload.Name) {
		fmt.Fprintln(a.stdout, "  Warning: cardholder name not found in the statement text.")
	}
	return nil
}

func (a *app) exportCSV(metrics models.PerformanceMetrics) error {
	payload, err := form.Collect(a.registry, a.lang)
	if err != nil {
		return err
	}

	f, err := os.Create(a.cfg.CSV)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", a.cfg.CSV, err)
	}
	defer f.Close()

	w := &writer.CSVWriter{IncludeHeader: a.cfg.Header}
	if err := w.Write(f, payload); err != nil {
		return err
	}
	if len(metrics) > 0 {
		fmt.Fprintln(f)
		if err := writer.MetricsCSV(f, metrics); err != nil {
			return err
		}
	}
	return f.Close()
}

func (a *app) preview() error {
	ui := console.New(a.stdout, a.stderr)
	d, _ := a.dispatcher(ui)

	markup, err := d.Preview(a.lang)
	if err != nil {
		return err
	}

	f, err := os.Create(a.cfg.Out)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", a.cfg.Out, err)
	}
	defer f.Close()

	title := a.table.Lookup(a.lang, "title", "Credit Card Statement")
	if err := preview.Write(f, markup, a.lang, title, a.head); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Preview: %s\n", a.cfg.Out)
	return nil
}
