package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/insightdelivered/statement-desk/internal/models"
)

// Backend endpoints.
const (
	GeneratePath = "/api/generate-statement"
	PreviewPath  = "/preview-statement"
)

// BackendError is a non-success reply from the statement backend.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("statement backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("statement backend returned status %d: %s", e.StatusCode, e.Message)
}

// Backend talks to the statement generation service. It keeps the cookies
// the service sets, since the download link is tied to the session that
// generated the statement.
type Backend struct {
	baseURL string
	timeout time.Duration
	logger  *zap.Logger

	mu      sync.Mutex
	cookies map[string]string
}

// Option configures a Backend.
type Option func(*Backend)

// WithTimeout bounds each request. Zero, the default, waits indefinitely.
func WithTimeout(d time.Duration) Option {
	return func(b *Backend) { b.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBackend returns a client for the service at baseURL.
func NewBackend(baseURL string, opts ...Option) *Backend {
	b := &Backend{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  zap.NewNop(),
		cookies: make(map[string]string),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// GenerateStatement posts the payload and decodes the JSON reply whatever
// its status; a reply carrying an error message is returned as is.
func (b *Backend) GenerateStatement(payload *models.StatementFormData) (*models.GenerateResponse, error) {
	code, body, err := b.do(fiber.Post(b.resolve(GeneratePath)).JSON(payload))
	if err != nil {
		return nil, fmt.Errorf("generate statement: %w", err)
	}

	var resp models.GenerateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode generate response (status %d): %w", code, err)
	}
	return &resp, nil
}

// PreviewStatement posts the payload and returns the markup of the reply.
func (b *Backend) PreviewStatement(payload *models.StatementFormData) (string, error) {
	_, body, err := b.do(fiber.Post(b.resolve(PreviewPath)).JSON(payload))
	if err != nil {
		return "", fmt.Errorf("preview statement: %w", err)
	}
	return string(body), nil
}

// Download fetches a generated statement. link may be relative to the
// backend, as the generate reply gives it.
func (b *Backend) Download(link string) ([]byte, error) {
	code, body, err := b.do(fiber.Get(b.resolve(link)))
	if err != nil {
		return nil, fmt.Errorf("download statement: %w", err)
	}
	if code != fiber.StatusOK {
		var reply struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &reply)
		return nil, &BackendError{StatusCode: code, Message: reply.Error}
	}
	return body, nil
}

func (b *Backend) do(agent *fiber.Agent) (int, []byte, error) {
	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)

	agent.SetResponse(resp)
	if b.timeout > 0 {
		agent.Timeout(b.timeout)
	}
	b.mu.Lock()
	for k, v := range b.cookies {
		agent.Cookie(k, v)
	}
	b.mu.Unlock()

	uri := agent.Request().URI().String()
	start := time.Now()
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		err := errors.Join(errs...)
		b.logger.Error("statement backend request failed",
			zap.String("url", uri),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return 0, nil, err
	}

	b.keepCookies(&resp.Header)
	b.logger.Debug("statement backend replied",
		zap.String("url", uri),
		zap.Int("status", code),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))
	return code, body, nil
}

func (b *Backend) keepCookies(h *fasthttp.ResponseHeader) {
	b.mu.Lock()
	defer b.mu.Unlock()
	h.VisitAllCookie(func(_, value []byte) {
		c := fasthttp.AcquireCookie()
		defer fasthttp.ReleaseCookie(c)
		if err := c.ParseBytes(value); err != nil {
			return
		}
		b.cookies[string(c.Key())] = string(c.Value())
	})
}

func (b *Backend) resolve(link string) string {
	u, err := url.Parse(link)
	if err == nil && u.IsAbs() {
		return link
	}
	return b.baseURL + "/" + strings.TrimLeft(link, "/")
}
