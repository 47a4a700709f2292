// Package dispatch sends the collected statement form to the backend and
// routes the outcome to the UI surfaces.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/insightdelivered/statement-desk/internal/form"
	"github.com/insightdelivered/statement-desk/internal/models"
)

// Busy labels shown on a button while its request is in flight.
const (
	GeneratingLabel = "Generating..."
	LoadingLabel    = "Loading..."
)

// Alert texts for failures the backend did not explain.
const (
	GenerateFailedAlert = "An error occurred while generating the statement. Please try again."
	PreviewFailedAlert  = "An error occurred while generating the preview. Please try again."
)

var (
	// ErrStatementRejected wraps an error message sent back by the backend.
	ErrStatementRejected = errors.New("statement rejected")
	// ErrIncompleteResponse is returned for a reply that neither explains
	// an error nor carries the performance report and download link.
	ErrIncompleteResponse = errors.New("incomplete generate response")
)

// StatementBackend is the remote side of the dispatcher.
type StatementBackend interface {
	GenerateStatement(payload *models.StatementFormData) (*models.GenerateResponse, error)
	PreviewStatement(payload *models.StatementFormData) (string, error)
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(message string)
}

// ResultSurface shows the outcome of a generated statement.
type ResultSurface interface {
	ShowMetrics(metrics models.PerformanceMetrics)
	SetDownloadLink(url string)
}

// PreviewSurface shows preview markup.
type PreviewSurface interface {
	ShowPreview(markup string)
}

// Surfaces groups the UI outputs. Nil members discard their output.
type Surfaces struct {
	Alerts  Alerter
	Results ResultSurface
	Preview PreviewSurface
}

// Dispatcher runs the generate and preview actions of the form.
type Dispatcher struct {
	registry *form.Registry
	backend  StatementBackend
	ui       Surfaces
	logger   *zap.Logger
	tracer   trace.Tracer
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithTracer records a span per generate and preview press.
func WithTracer(t trace.Tracer) DispatcherOption {
	return func(d *Dispatcher) {
		if t != nil {
			d.tracer = t
		}
	}
}

// New returns a dispatcher for the tabs of registry.
func New(registry *form.Registry, backend StatementBackend, ui Surfaces, logger *zap.Logger, opts ...DispatcherOption) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ui.Alerts == nil {
		ui.Alerts = discard{}
	}
	if ui.Results == nil {
		ui.Results = discard{}
	}
	if ui.Preview == nil {
		ui.Preview = discard{}
	}
	d := &Dispatcher{
		registry: registry,
		backend:  backend,
		ui:       ui,
		logger:   logger,
		tracer:   noop.NewTracerProvider().Tracer("statement-desk.noop"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Generate presses the generate button of lang's tab. The button stays
// disabled until the backend answers or the request fails.
func (d *Dispatcher) Generate(lang models.Language) (*models.GenerateResponse, error) {
	log := d.logger.With(zap.String("action", "generate"), zap.String("language", lang.String()))
	_, span := d.tracer.Start(context.Background(), "statement.generate",
		trace.WithAttributes(attribute.String("statement.language", lang.String())))
	defer span.End()

	payload, restore, err := d.begin(lang, func(t *form.Tab) *form.Button { return t.Generate }, GeneratingLabel)
	if err != nil {
		return nil, d.fail(log, span, GenerateFailedAlert, err)
	}
	defer restore()
	span.SetAttributes(attribute.Int("statement.transactions", len(payload.Transactions)))

	resp, err := d.backend.GenerateStatement(payload)
	if err != nil {
		return nil, d.fail(log, span, GenerateFailedAlert, err)
	}
	if resp.Error != "" {
		log.Warn("statement rejected by backend", zap.String("error", resp.Error))
		d.ui.Alerts.Alert("Error: " + resp.Error)
		err := fmt.Errorf("%w: %s", ErrStatementRejected, resp.Error)
		span.SetStatus(codes.Error, err.Error())
		return resp, err
	}
	if err := complete(resp); err != nil {
		return nil, d.fail(log, span, GenerateFailedAlert, err)
	}

	d.ui.Results.ShowMetrics(resp.Performance)
	d.ui.Results.SetDownloadLink(resp.DownloadURL)
	log.Info("statement generated",
		zap.Int("transactions", len(payload.Transactions)),
		zap.Int("operations", len(resp.Performance)),
		zap.String("download_url", resp.DownloadURL))
	return resp, nil
}

// Preview presses the preview button of lang's tab and shows the markup.
func (d *Dispatcher) Preview(lang models.Language) (string, error) {
	log := d.logger.With(zap.String("action", "preview"), zap.String("language", lang.String()))
	_, span := d.tracer.Start(context.Background(), "statement.preview",
		trace.WithAttributes(attribute.String("statement.language", lang.String())))
	defer span.End()

	payload, restore, err := d.begin(lang, func(t *form.Tab) *form.Button { return t.Preview }, LoadingLabel)
	if err != nil {
		return "", d.fail(log, span, PreviewFailedAlert, err)
	}
	defer restore()
	span.SetAttributes(attribute.Int("statement.transactions", len(payload.Transactions)))

	markup, err := d.backend.PreviewStatement(payload)
	if err != nil {
		return "", d.fail(log, span, PreviewFailedAlert, err)
	}

	d.ui.Preview.ShowPreview(markup)
	log.Info("statement preview shown", zap.Int("bytes", len(markup)))
	return markup, nil
}

// begin disables the trigger and collects the form. On error nothing is
// left disabled.
func (d *Dispatcher) begin(lang models.Language, trigger func(*form.Tab) *form.Button, busy string) (*models.StatementFormData, func(), error) {
	tab, err := d.registry.Tab(lang)
	if err != nil {
		return nil, nil, err
	}

	restore, err := trigger(tab).Begin(busy)
	if err != nil {
		return nil, nil, err
	}

	payload, err := tab.Collect()
	if err != nil {
		restore()
		return nil, nil, err
	}
	return payload, restore, nil
}

// fail reports err. A press on a busy button is ignored without an alert.
func (d *Dispatcher) fail(log *zap.Logger, span trace.Span, alert string, err error) error {
	if errors.Is(err, form.ErrControlDisabled) {
		log.Debug("press ignored while request in flight")
		span.AddEvent("press ignored")
		return err
	}
	log.Error("statement action failed", zap.Error(err))
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
	d.ui.Alerts.Alert(alert)
	return err
}

func complete(resp *models.GenerateResponse) error {
	var missing []string
	if resp.Performance == nil {
		missing = append(missing, "performance")
	}
	if resp.DownloadURL == "" {
		missing = append(missing, "download_url")
	}
	if len(missing) == 0 {
		return nil
	}
	if resp.Message != "" {
		return fmt.Errorf("%w: missing %s (%s)", ErrIncompleteResponse, strings.Join(missing, ", "), resp.Message)
	}
	return fmt.Errorf("%w: missing %s", ErrIncompleteResponse, strings.Join(missing, ", "))
}

type discard struct{}

func (discard) Alert(string)                          {}
func (discard) ShowMetrics(models.PerformanceMetrics) {}
func (discard) SetDownloadLink(string)                {}
func (discard) ShowPreview(string)                    {}
