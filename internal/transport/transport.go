package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/cloudtrellis/idtoolkit/instrumentation"
)

// Config holds transport configuration
type Config struct {
	// BaseURL is the project-scoped API root, e.g.
	// "https://identitytoolkit.googleapis.com/v2/projects/my-project".
	BaseURL string

	// HTTPClient performs the actual round trips. Auth and retry behavior
	// live in this client's transport chain, not here.
	HTTPClient *http.Client

	// ClientVersion is the value of the X-Client-Version header.
	ClientVersion string

	// Limiter optionally throttles outbound calls. Nil disables throttling.
	Limiter *rate.Limiter

	// Logger for debug output. Nil falls back to slog.Default().
	Logger *slog.Logger

	// Instrumentation optionally records metrics and spans per call.
	Instrumentation *instrumentation.Instrumentation
}

// Transport issues Identity Toolkit API calls and buffers their responses.
// It is immutable after construction and safe for concurrent use.
type Transport struct {
	baseURL       string
	httpClient    *http.Client
	clientVersion string
	limiter       *rate.Limiter
	logger        *slog.Logger
	inst          *instrumentation.Instrumentation
}

// New creates a transport from the given configuration.
func New(cfg *Config) (*Transport, error) {
	if cfg == nil {
		return nil, fmt.Errorf("transport config is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Transport{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:    httpClient,
		clientVersion: cfg.ClientVersion,
		limiter:       cfg.Limiter,
		logger:        logger,
		inst:          cfg.Instrumentation,
	}, nil
}

// BaseURL returns the project-scoped API root the transport resolves
// relative paths against.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// Response is a fully buffered API response. The body is read and closed
// before Send returns, so callers may inspect it repeatedly.
type Response struct {
	Status int
	Header http.Header
	Body   []byte

	// HTTPResponse is the original response. Its body is replaced with a
	// re-readable buffer over Body.
	HTTPResponse *http.Response
}

// Send issues the request and buffers the response. A non-2xx status is not
// an error at this layer; callers map statuses into the library's error
// taxonomy. A non-nil error means no usable response was produced: invalid
// request input, an aborted rate-limiter wait, or a network-level failure.
func (t *Transport) Send(ctx context.Context, req *Request) (*Response, error) {
	operation := req.Operation
	if operation == "" {
		operation = "Call"
	}

	if t.limiter != nil {
		waitStart := time.Now()
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait aborted: %w", err)
		}
		if waited := time.Since(waitStart); t.inst != nil && waited > 0 {
			t.inst.Metrics().RecordRateLimitWait(ctx, operation, float64(waited.Milliseconds()))
		}
	}

	var span trace.Span
	if t.inst != nil {
		ctx, span = t.inst.Tracer("transport").Start(ctx, "idtoolkit.http."+operation)
		defer span.End()
	}

	httpReq, err := t.newHTTPRequest(ctx, req)
	if err != nil {
		instrumentation.RecordError(span, err)
		return nil, err
	}

	instrumentation.AddCallAttributes(span, httpReq.Method, httpReq.URL.Path, operation)
	instrumentation.SetSpanAttributes(span,
		attribute.String(instrumentation.AttrRequestID, httpReq.Header.Get(RequestIDHeader)))

	t.logger.Debug("Sending API request",
		"method", httpReq.Method,
		"path", httpReq.URL.Path,
		"operation", operation,
		"request_id", httpReq.Header.Get(RequestIDHeader),
	)

	start := time.Now()
	httpResp, err := t.httpClient.Do(httpReq)
	durationMs := float64(time.Since(start).Milliseconds())

	if err != nil {
		if t.inst != nil {
			t.inst.Metrics().RecordAPICall(ctx, httpReq.Method, operation, 0, durationMs, err)
		}
		instrumentation.RecordError(span, err)
		t.logger.Debug("API request failed",
			"method", httpReq.Method,
			"path", httpReq.URL.Path,
			"error", err,
		)
		return nil, fmt.Errorf("request to %s failed: %w", httpReq.URL.Path, err)
	}
	body, err := io.ReadAll(httpResp.Body)
	_ = httpResp.Body.Close()
	if err != nil {
		if t.inst != nil {
			t.inst.Metrics().RecordAPICall(ctx, httpReq.Method, operation, httpResp.StatusCode, durationMs, err)
		}
		instrumentation.RecordError(span, err)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	httpResp.Body = io.NopCloser(bytes.NewReader(body))

	if t.inst != nil {
		t.inst.Metrics().RecordAPICall(ctx, httpReq.Method, operation, httpResp.StatusCode, durationMs, nil)
	}
	instrumentation.AddHTTPStatusAttributes(span, httpResp.StatusCode)
	if httpResp.StatusCode >= 200 && httpResp.StatusCode < 300 {
		instrumentation.SetSpanSuccess(span)
	} else {
		instrumentation.SetSpanError(span, fmt.Sprintf("status %d", httpResp.StatusCode))
	}

	t.logger.Debug("API request completed",
		"method", httpReq.Method,
		"path", httpReq.URL.Path,
		"status", httpResp.StatusCode,
		"duration_ms", durationMs,
	)

	return &Response{
		Status:       httpResp.StatusCode,
		Header:       httpResp.Header,
		Body:         body,
		HTTPResponse: httpResp,
	}, nil
}
