package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const (
	// ClientVersionHeader identifies the SDK on every outbound call.
	ClientVersionHeader = "X-Client-Version"

	// RequestIDHeader carries a client-generated UUID for log and trace
	// correlation. The value is set once per logical call, so it stays
	// constant across transport-level retries.
	RequestIDHeader = "X-Client-Request-Id"
)

// QueryParam is a single query-string pair. Parameters serialize in the
// order given, which keeps request URLs deterministic for logging and tests.
type QueryParam struct {
	Key   string
	Value string
}

// Request describes one API call before it is bound to the transport's base
// URL and headers.
type Request struct {
	Method string

	// Path is resolved against the project-scoped base URL unless it is
	// already an absolute URL.
	Path string

	// Body is JSON-marshaled into the request when non-nil.
	Body any

	// Query parameters, serialized in order.
	Query []QueryParam

	// Header holds optional extra headers merged into the request.
	Header http.Header

	// Operation names the logical SDK call for logs, metrics and spans.
	Operation string
}

// EncodeQuery serializes query parameters preserving their order. Keys and
// values are percent-encoded. url.Values is deliberately not used here
// because it sorts keys on encoding.
func EncodeQuery(params []QueryParam) string {
	if len(params) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// newHTTPRequest builds the concrete HTTP request: URL resolution, body
// serialization and identification headers. It performs no I/O.
func (t *Transport) newHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	target := req.Path
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = t.baseURL + "/" + strings.TrimPrefix(req.Path, "/")
	}
	if q := EncodeQuery(req.Query); q != "" {
		target += "?" + q
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	// Both identification headers are idempotent: values already present,
	// whether set by a caller or an earlier pass, are left untouched.
	if httpReq.Header.Get(ClientVersionHeader) == "" {
		httpReq.Header.Set(ClientVersionHeader, t.clientVersion)
	}
	if httpReq.Header.Get(RequestIDHeader) == "" {
		httpReq.Header.Set(RequestIDHeader, uuid.NewString())
	}

	return httpReq, nil
}
