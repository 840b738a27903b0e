package idtoolkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/cloudtrellis/idtoolkit/instrumentation"
	"github.com/cloudtrellis/idtoolkit/internal/transport"
)

// Client manages identity provider configurations for one Google Cloud
// project through the Identity Toolkit v2 API. It holds only immutable
// configuration and stateless handles, so a single Client is safe for
// concurrent use and should be reused across calls.
type Client struct {
	transport *transport.Transport
	logger    *slog.Logger
	inst      *instrumentation.Instrumentation
	projectID string
}

// NewClient creates a new Identity Toolkit client
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	cfg = cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.TokenSource == nil {
		cfg.Logger.Warn("No token source configured, API requests will be unauthenticated",
			"project_id", cfg.ProjectID)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	}

	tr, err := transport.New(&transport.Config{
		BaseURL:         cfg.apiRoot(),
		HTTPClient:      cfg.buildHTTPClient(ctx),
		ClientVersion:   clientVersion,
		Limiter:         limiter,
		Logger:          cfg.Logger,
		Instrumentation: cfg.Instrumentation,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}

	return &Client{
		transport: tr,
		logger:    cfg.Logger,
		inst:      cfg.Instrumentation,
		projectID: cfg.ProjectID,
	}, nil
}

// ProjectID returns the project this client operates on.
func (c *Client) ProjectID() string {
	return c.projectID
}

// callJSON issues a request and decodes a successful JSON response into out
// (when non-nil). Non-2xx responses come back as *Error; a 2xx body that
// does not decode comes back as *Error with code UNKNOWN and the raw
// response preserved.
func (c *Client) callJSON(ctx context.Context, req *transport.Request, out any) error {
	resp, err := c.transport.Send(ctx, req)
	if err != nil {
		return err
	}
	if resp.Status < 200 || resp.Status >= 300 {
		return newAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return unknownResponse(resp, err)
	}
	return nil
}

// getJSON is callJSON for simple GET-by-path operations.
func (c *Client) getJSON(ctx context.Context, path, operation string, out any) error {
	return c.callJSON(ctx, &transport.Request{
		Method:    http.MethodGet,
		Path:      path,
		Operation: operation,
	}, out)
}

// startCallSpan opens a span for one logical operation, named
// "idtoolkit.<operation>". The HTTP spans opened by the transport nest under
// it, so one logical call with retries shows up as a single parent span.
// Without instrumentation it returns the no-op span already carried by the
// context, so callers can defer End unconditionally.
func (c *Client) startCallSpan(ctx context.Context, operation string) (context.Context, trace.Span) {
	if c.inst == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return c.inst.Tracer("client").Start(ctx, "idtoolkit."+operation)
}

// finishCallSpan records the call outcome on the span. Failed calls carry
// their taxonomy codes as attributes, so traces can be filtered by error
// code without parsing messages.
func finishCallSpan(span trace.Span, err error) {
	if err == nil {
		instrumentation.SetSpanSuccess(span)
		return
	}
	instrumentation.RecordError(span, err)
	var apiErr *Error
	if errors.As(err, &apiErr) {
		instrumentation.AddErrorCodeAttributes(span, apiErr.Code, apiErr.APICode)
	}
}
