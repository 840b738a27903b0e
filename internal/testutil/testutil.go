package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// RecordedRequest is one request captured by a Server.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// Response is one scripted API response.
type Response struct {
	// Status is the HTTP status code. Zero means 200.
	Status int

	// Body is the raw response body, typically JSON.
	Body string

	// ContentType overrides the default application/json content type.
	ContentType string
}

// Server is an HTTP test server that answers from a response script and
// records every request. Responses are served in order; once the script is
// exhausted the last response repeats, and an empty script serves 200 with
// an empty JSON object. Safe for concurrent use.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	script   []Response
	requests []RecordedRequest
}

// NewServer starts a recording server with the given response script. The
// caller must Close it.
func NewServer(script ...Response) *Server {
	s := &Server{script: script}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
		Body:     body,
	})
	resp := Response{Body: "{}"}
	if len(s.script) > 0 {
		i := len(s.requests) - 1
		if i >= len(s.script) {
			i = len(s.script) - 1
		}
		resp = s.script[i]
	}
	s.mu.Unlock()

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp.Body))
}

// Requests returns a copy of all requests recorded so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recently recorded request, or nil when no
// request has arrived yet.
func (s *Server) LastRequest() *RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	req := s.requests[len(s.requests)-1]
	return &req
}
