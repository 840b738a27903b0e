package idtoolkit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"

	"github.com/cloudtrellis/idtoolkit/instrumentation"
	"github.com/cloudtrellis/idtoolkit/internal/util"
)

const (
	// defaultEndpoint is the public Identity Toolkit v2 API origin.
	defaultEndpoint = "https://identitytoolkit.googleapis.com/v2"

	// defaultHTTPTimeout bounds one logical call including all retry
	// attempts. Per-call contexts can always shorten it.
	defaultHTTPTimeout = 120 * time.Second

	defaultRetryMax     = 4
	defaultRetryWaitMin = 1 * time.Second
	defaultRetryWaitMax = 30 * time.Second
)

// Config holds the client configuration
// Structured using composition for better organization and maintainability
type Config struct {
	// ProjectID is the Google Cloud project whose identity provider
	// configurations this client manages (required).
	ProjectID string

	// TokenSource supplies OAuth2 access tokens attached to every request.
	// Build one with the credentials package. Nil sends unauthenticated
	// requests, which only makes sense against emulators and test servers.
	TokenSource oauth2.TokenSource

	// Endpoint overrides the API origin, e.g. to target an emulator or a
	// private endpoint. Trailing slashes are ignored.
	// Default: https://identitytoolkit.googleapis.com/v2
	Endpoint string

	// Retry configures automatic retries of transient failures (HTTP 429
	// and 5xx). Ignored when HTTPClient is set.
	Retry RetryConfig

	// RateLimit throttles outbound calls. Zero values disable throttling.
	RateLimit RateLimitConfig

	// Logger for structured logging (optional, uses default if not provided)
	Logger *slog.Logger

	// HTTPClient is a custom base HTTP client for API requests. When set,
	// the Retry configuration is not applied; retry behavior belongs to
	// the supplied client. Credentials still apply on top of it.
	HTTPClient *http.Client

	// Instrumentation enables OpenTelemetry metrics and tracing for API
	// calls. Nil disables instrumentation entirely.
	Instrumentation *instrumentation.Instrumentation
}

// RetryConfig holds retry configuration. Retries are delegated to
// hashicorp/go-retryablehttp; this struct only tunes its policy.
type RetryConfig struct {
	// Disabled turns automatic retries off entirely.
	Disabled bool

	// MaxRetries is the retry budget per call. Default: 4.
	MaxRetries int

	// WaitMin is the initial backoff delay. Default: 1s.
	WaitMin time.Duration

	// WaitMax is the backoff ceiling. Default: 30s.
	WaitMax time.Duration
}

// RateLimitConfig holds outbound rate limiting configuration
type RateLimitConfig struct {
	// RequestsPerSecond is the allowed sustained call rate.
	// Zero disables limiting.
	RequestsPerSecond int

	// Burst is the maximum burst size. Defaults to RequestsPerSecond.
	Burst int
}

// applyDefaults returns a normalized copy of the configuration with all
// defaulted fields filled in. The original config is not modified.
func (c *Config) applyDefaults() *Config {
	out := *c
	if out.Endpoint == "" {
		out.Endpoint = defaultEndpoint
	}
	out.Endpoint = util.NormalizeURL(out.Endpoint)
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	if out.Retry.MaxRetries == 0 {
		out.Retry.MaxRetries = defaultRetryMax
	}
	if out.Retry.WaitMin == 0 {
		out.Retry.WaitMin = defaultRetryWaitMin
	}
	if out.Retry.WaitMax == 0 {
		out.Retry.WaitMax = defaultRetryWaitMax
	}
	if out.RateLimit.Burst <= 0 {
		out.RateLimit.Burst = out.RateLimit.RequestsPerSecond
	}
	return &out
}

// validate checks the configuration for unusable values. Defaults must be
// applied first.
func (c *Config) validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("project ID is required")
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("rate limit requests per second must not be negative")
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry budget must not be negative")
	}
	return nil
}

// apiRoot is the project-scoped base URL all relative request paths resolve
// against.
func (c *Config) apiRoot() string {
	return c.Endpoint + "/projects/" + c.ProjectID
}

// buildHTTPClient assembles the transport chain for API calls: a
// retry-capable base client wrapped, when credentials are configured, in an
// oauth2 transport that attaches tokens.
func (c *Config) buildHTTPClient(ctx context.Context) *http.Client {
	base := c.HTTPClient
	if base == nil {
		if c.Retry.Disabled {
			base = &http.Client{Timeout: defaultHTTPTimeout}
		} else {
			rc := retryablehttp.NewClient()
			rc.RetryMax = c.Retry.MaxRetries
			rc.RetryWaitMin = c.Retry.WaitMin
			rc.RetryWaitMax = c.Retry.WaitMax
			rc.Logger = nil
			// Hand the final response back once the retry budget is spent,
			// so persistent API failures keep their status code instead of
			// collapsing into a transport error.
			rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
			base = rc.StandardClient()
			base.Timeout = defaultHTTPTimeout
		}
	}

	if c.TokenSource == nil {
		return base
	}

	// oauth2.NewClient takes its underlying client from the context.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	authed := oauth2.NewClient(ctx, c.TokenSource)
	authed.Timeout = base.Timeout
	return authed
}
