// AngelaMos | 2026
// client.go

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/rgrams-coder/aicmmlr/internal/client"

var ErrNetwork = errors.New("network error")

// HTTPError is returned for any non-2xx response. Message is safe to show to
// the user verbatim.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}

type TokenProvider interface {
	Token() string
}

type TokenFunc func() string

func (f TokenFunc) Token() string {
	return f()
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithUnauthorizedHandler(fn func(context.Context)) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
	logger  *slog.Logger
	tracer  trace.Tracer

	mu             sync.RWMutex
	onUnauthorized func(context.Context)
}

func New(baseURL string, tokens TokenProvider, opts ...Option) *Client {
	if tokens == nil {
		tokens = TokenFunc(func() string { return "" })
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
		logger:  slog.Default(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetUnauthorizedHandler replaces the hook run when an authenticated request
// comes back 401.
func (c *Client) SetUnauthorizedHandler(fn func(context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) unauthorizedHandler() func(context.Context) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.onUnauthorized
}

// Do sends body (JSON, or a *Multipart) and decodes a 2xx response into out.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.send(ctx, method, path, body, out, true)
}

// DoAnonymous is Do without the bearer token. Used by the credential
// endpoints so a rejected password is not mistaken for an expired session.
func (c *Client) DoAnonymous(ctx context.Context, method, path string, body, out any) error {
	return c.send(ctx, method, path, body, out, false)
}

func (c *Client) send(
	ctx context.Context,
	method, path string,
	body, out any,
	authenticated bool,
) error {
	ctx, span := c.tracer.Start(ctx, "api "+method+" "+routeOf(path),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	reader, contentType, err := encodeBody(body)
	if err != nil {
		span.RecordError(err)
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	sentToken := false
	if authenticated {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
			sentToken = true
		}
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		c.logger.DebugContext(ctx, "api request failed",
			"method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrNetwork, err)
	}
	defer resp.Body.Close() //nolint:errcheck // body fully consumed below

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.logger.DebugContext(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w: %w", method, path, ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{Status: resp.StatusCode, Message: errorMessage(raw)}
		span.SetStatus(codes.Error, httpErr.Message)

		if resp.StatusCode == http.StatusUnauthorized && sentToken {
			if fn := c.unauthorizedHandler(); fn != nil {
				fn(ctx)
			}
		}
		return httpErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	normalized, err := NormalizeIDs(raw)
	if err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	if err := json.Unmarshal(normalized, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *Multipart:
		return b.encode()
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

const fallbackMessage = "request failed"

// errorMessage reads `message`, then `error` (string or {message}), from an
// error body.
func errorMessage(raw []byte) string {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return fallbackMessage
	}

	if msg := stringField(body["message"]); msg != "" {
		return msg
	}
	if msg := stringField(body["error"]); msg != "" {
		return msg
	}

	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body["error"], &nested); err == nil && nested.Message != "" {
		return nested.Message
	}
	return fallbackMessage
}

func stringField(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// routeOf drops query strings and id segments so span names stay low
// cardinality.
func routeOf(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	segs := strings.Split(path, "/")
	if len(segs) > 2 {
		switch segs[1] {
		case "documents", "cases", "notes", "contact":
			segs[2] = "{id}"
		}
	}
	return strings.Join(segs, "/")
}
