package instrumentation

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Common span attribute keys
//
// SECURITY WARNING: Never log actual credential material (OAuth access tokens,
// OIDC client secrets, SAML certificates) in traces or metrics. Only log
// metadata such as operation names, provider config IDs, status codes and
// boolean presence flags. Traces are often:
//   - Persisted for extended periods
//   - Accessible to wider audiences than production systems
//   - Replicated across monitoring infrastructure
const (
	// API call attributes - SAFE to use for metadata only
	AttrOperation    = "idtoolkit.operation"      // Logical operation name (GetOIDCProviderConfig, ...)
	AttrProviderID   = "idtoolkit.provider_id"    // Provider config identifier (non-secret)
	AttrProviderKind = "idtoolkit.provider_kind"  // Provider config variant (oidc, saml)
	AttrErrorCode    = "idtoolkit.error_code"     // Coarse error code
	AttrAPIErrorCode = "idtoolkit.api_error_code" // Fine-grained API error code from the response body
	AttrRequestID    = "idtoolkit.request_id"     // Client-generated request correlation ID

	// Pagination attributes
	AttrPageSize         = "idtoolkit.page_size"          // Requested page size
	AttrPageTokenPresent = "idtoolkit.page_token_present" // Whether a resume token was supplied (boolean, never the token)

	// RESERVED - DO NOT USE: never set these to actual credential values.
	// Use boolean flags like "secret_present" instead.
	AttrClientSecret = "idtoolkit.client_secret" //nolint:gosec // RESERVED - use "secret_present" instead
	AttrAccessToken  = "idtoolkit.access_token"  //nolint:gosec // RESERVED - use "token_present" instead

	// HTTP attributes (in addition to standard semantic conventions)
	AttrHTTPEndpoint   = "http.endpoint"
	AttrHTTPMethod     = "http.method"
	AttrHTTPStatusCode = "http.status_code"
)

// RecordError records an error on a span with proper status codes (nil-safe)
func RecordError(span trace.Span, err error) {
	if span != nil && err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess marks a span as successful (nil-safe)
func SetSpanSuccess(span trace.Span) {
	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
}

// SetSpanError sets an error status on a span (nil-safe)
func SetSpanError(span trace.Span, message string) {
	if span != nil {
		span.SetStatus(codes.Error, message)
	}
}

// SetSpanAttributes sets attributes on a span (nil-safe)
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	if span != nil {
		span.SetAttributes(attrs...)
	}
}

// AddCallAttributes adds API call attributes to a span (nil-safe)
func AddCallAttributes(span trace.Span, method, endpoint, operation string) {
	SetSpanAttributes(span,
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrHTTPEndpoint, endpoint),
		attribute.String(AttrOperation, operation),
	)
}

// AddProviderConfigAttributes adds provider config attributes to a span (nil-safe)
func AddProviderConfigAttributes(span trace.Span, kind, providerID string) {
	if kind != "" {
		SetSpanAttributes(span, attribute.String(AttrProviderKind, kind))
	}
	if providerID != "" {
		SetSpanAttributes(span, attribute.String(AttrProviderID, providerID))
	}
}

// AddPageAttributes adds pagination attributes to a span (nil-safe).
// The resume token itself is never recorded, only its presence.
func AddPageAttributes(span trace.Span, pageSize int, tokenPresent bool) {
	SetSpanAttributes(span,
		attribute.Int(AttrPageSize, pageSize),
		attribute.Bool(AttrPageTokenPresent, tokenPresent),
	)
}

// AddErrorCodeAttributes adds error taxonomy attributes to a span (nil-safe)
func AddErrorCodeAttributes(span trace.Span, code, apiCode string) {
	if code != "" {
		SetSpanAttributes(span, attribute.String(AttrErrorCode, code))
	}
	if apiCode != "" {
		SetSpanAttributes(span, attribute.String(AttrAPIErrorCode, apiCode))
	}
}

// AddHTTPStatusAttributes adds the response status to a span (nil-safe)
func AddHTTPStatusAttributes(span trace.Span, statusCode int) {
	SetSpanAttributes(span, attribute.Int(AttrHTTPStatusCode, statusCode))
}
