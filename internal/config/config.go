// Package config resolves the CLI settings from defaults, the environment
// and command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/insightdelivered/statement-desk/internal/logger"
)

// Defaults.
const (
	DefaultBackendURL  = "http://localhost:5000"
	DefaultEnvironment = logger.EnvironmentProduction
)

// Environment variables read by Load.
const (
	EnvBackendURL   = "STATEMENT_BACKEND_URL"
	EnvTranslations = "STATEMENT_TRANSLATIONS"
	EnvTimeout      = "STATEMENT_TIMEOUT"
	EnvLogLevel     = "LOG_LEVEL"
	EnvEnvironment  = "ENV"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved CLI configuration.
type Config struct {
	BackendURL       string
	TranslationsPath string
	Timeout          time.Duration
	LogLevel         string
	Environment      logger.Environment

	Language string // overrides the form file's language when set
	Save     string
	CSV      string
	XLSX     string
	Out      string
	Header   bool
	Version  bool

	// Args holds the positional arguments left after the flags.
	Args []string
}

// Load builds the configuration for args (without the program name).
// lookup reads the environment; nil means os.LookupEnv.
func Load(args []string, lookup func(string) (string, bool), output io.Writer) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	cfg := &Config{
		BackendURL:  DefaultBackendURL,
		Environment: DefaultEnvironment,
		Header:      true,
	}
	if err := cfg.fromEnv(lookup); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("statement-desk", flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	fs.Usage = func() { Usage(fs) }

	env := string(cfg.Environment)
	fs.StringVar(&cfg.BackendURL, "backend", cfg.BackendURL, "Statement backend base URL")
	fs.StringVar(&cfg.TranslationsPath, "translations", cfg.TranslationsPath, "YAML file overriding the built-in UI strings")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-request timeout (0 waits indefinitely)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&env, "env", env, "Logging profile: production, development, local")
	fs.StringVar(&cfg.Language, "lang", "", "Tab language: en, ta, hi (defaults to the form file's language)")
	fs.StringVar(&cfg.Save, "save", "", "generate: save the statement PDF to this path and inspect it")
	fs.StringVar(&cfg.CSV, "csv", "", "generate: export transactions and metrics to this CSV path")
	fs.StringVar(&cfg.XLSX, "xlsx", "", "generate: export transactions and metrics to this Excel workbook")
	fs.StringVar(&cfg.Out, "out", "preview.html", "preview: output HTML path")
	fs.BoolVar(&cfg.Header, "header", cfg.Header, "Include metadata header rows in CSV")
	fs.BoolVar(&cfg.Version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Environment = logger.Environment(strings.ToLower(env))
	cfg.Args = fs.Args()
	return cfg, nil
}

func (c *Config) fromEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBackendURL); ok && v != "" {
		c.BackendURL = v
	}
	if v, ok := lookup(EnvTranslations); ok {
		c.TranslationsPath = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvTimeout, v, err)
		}
		c.Timeout = d
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvEnvironment); ok && v != "" {
		c.Environment = logger.Environment(strings.ToLower(v))
	}
	return nil
}

// Validate checks the settings that have no safe fallback.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: backend URL %q must be an absolute http(s) URL", ErrInvalidConfig, c.BackendURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %s", ErrInvalidConfig, c.Timeout)
	}
	switch c.Environment {
	case logger.EnvironmentProduction, logger.EnvironmentDevelopment, logger.EnvironmentLocal:
	default:
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidConfig, c.Environment)
	}
	return nil
}

// Usage prints the help text for fs.
func Usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintf(w, `Credit Card Statement Desk

Fills a statement form from a YAML file and sends it to the statement
backend to generate a PDF or an HTML preview.

Usage:
  statement-desk [flags] <generate|preview|rows> <form.yaml>

Flags:
`)
	fs.PrintDefaults()
	fmt.Fprintf(w, `
Examples:
  # Generate a statement and save the PDF
  statement-desk -save=statement.pdf generate form.yaml

  # Preview the Tamil tab
  statement-desk -lang=ta -out=preview.html preview form.yaml

  # Print the request payload without contacting the backend
  statement-desk rows form.yaml

Environment:
  %s, %s, %s, %s, %s
`, EnvBackendURL, EnvTranslations, EnvTimeout, EnvLogLevel, EnvEnvironment)
}
