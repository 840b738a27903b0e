package transport

import (
	"context"
	"net/http"
	"testing"
)

func TestEncodeQuery(t *testing.T) {
	tests := []struct {
		name   string
		params []QueryParam
		want   string
	}{
		{
			name:   "empty",
			params: nil,
			want:   "",
		},
		{
			name: "single pair",
			params: []QueryParam{
				{Key: "pageSize", Value: "100"},
			},
			want: "pageSize=100",
		},
		{
			name: "insertion order preserved",
			params: []QueryParam{
				{Key: "pageSize", Value: "50"},
				{Key: "pageToken", Value: "abc123"},
			},
			want: "pageSize=50&pageToken=abc123",
		},
		{
			name: "reverse insertion order preserved",
			params: []QueryParam{
				{Key: "pageToken", Value: "abc123"},
				{Key: "pageSize", Value: "50"},
			},
			want: "pageToken=abc123&pageSize=50",
		},
		{
			name: "values are percent-encoded",
			params: []QueryParam{
				{Key: "updateMask", Value: "displayName,responseType.code"},
				{Key: "pageToken", Value: "a+b/c="},
			},
			want: "updateMask=displayName%2CresponseType.code&pageToken=a%2Bb%2Fc%3D",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeQuery(tt.params); got != tt.want {
				t.Errorf("EncodeQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewHTTPRequest_PathResolution(t *testing.T) {
	tr := newTestTransport(t, "https://identitytoolkit.example.com/v2/projects/p1")

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "relative path with leading slash",
			path: "/oauthIdpConfigs/oidc.example",
			want: "https://identitytoolkit.example.com/v2/projects/p1/oauthIdpConfigs/oidc.example",
		},
		{
			name: "relative path without leading slash",
			path: "oauthIdpConfigs",
			want: "https://identitytoolkit.example.com/v2/projects/p1/oauthIdpConfigs",
		},
		{
			name: "absolute https url passes through",
			path: "https://other.example.com/v2/projects/p2/inboundSamlConfigs",
			want: "https://other.example.com/v2/projects/p2/inboundSamlConfigs",
		},
		{
			name: "absolute http url passes through",
			path: "http://localhost:9099/v2/projects/p1/oauthIdpConfigs",
			want: "http://localhost:9099/v2/projects/p1/oauthIdpConfigs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpReq, err := tr.newHTTPRequest(context.Background(), &Request{
				Method: http.MethodGet,
				Path:   tt.path,
			})
			if err != nil {
				t.Fatalf("newHTTPRequest() error = %v", err)
			}
			if got := httpReq.URL.String(); got != tt.want {
				t.Errorf("URL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewHTTPRequest_QueryAppended(t *testing.T) {
	tr := newTestTransport(t, "https://example.com/v2/projects/p1")

	httpReq, err := tr.newHTTPRequest(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "/oauthIdpConfigs",
		Query: []QueryParam{
			{Key: "pageSize", Value: "100"},
			{Key: "pageToken", Value: "tok"},
		},
	})
	if err != nil {
		t.Fatalf("newHTTPRequest() error = %v", err)
	}
	want := "https://example.com/v2/projects/p1/oauthIdpConfigs?pageSize=100&pageToken=tok"
	if got := httpReq.URL.String(); got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}
}

func TestNewHTTPRequest_VersionHeaderIdempotent(t *testing.T) {
	tr := newTestTransport(t, "https://example.com/v2/projects/p1")

	t.Run("sets header when absent", func(t *testing.T) {
		httpReq, err := tr.newHTTPRequest(context.Background(), &Request{
			Method: http.MethodGet,
			Path:   "/oauthIdpConfigs",
		})
		if err != nil {
			t.Fatalf("newHTTPRequest() error = %v", err)
		}
		if got := httpReq.Header.Get(ClientVersionHeader); got != "Go/Admin/0.0.0-test" {
			t.Errorf("version header = %q", got)
		}
	})

	t.Run("preserves caller-provided header", func(t *testing.T) {
		hdr := http.Header{}
		hdr.Set(ClientVersionHeader, "Go/Admin/override")
		httpReq, err := tr.newHTTPRequest(context.Background(), &Request{
			Method: http.MethodGet,
			Path:   "/oauthIdpConfigs",
			Header: hdr,
		})
		if err != nil {
			t.Fatalf("newHTTPRequest() error = %v", err)
		}
		if got := httpReq.Header.Get(ClientVersionHeader); got != "Go/Admin/override" {
			t.Errorf("version header = %q, want caller override preserved", got)
		}
		if got := httpReq.Header.Values(ClientVersionHeader); len(got) != 1 {
			t.Errorf("version header appears %d times, want exactly once", len(got))
		}
	})
}

func TestNewHTTPRequest_RequestIDPreserved(t *testing.T) {
	tr := newTestTransport(t, "https://example.com/v2/projects/p1")

	hdr := http.Header{}
	hdr.Set(RequestIDHeader, "fixed-id")
	httpReq, err := tr.newHTTPRequest(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "/oauthIdpConfigs",
		Header: hdr,
	})
	if err != nil {
		t.Fatalf("newHTTPRequest() error = %v", err)
	}
	if got := httpReq.Header.Get(RequestIDHeader); got != "fixed-id" {
		t.Errorf("request ID = %q, want caller value preserved", got)
	}
}

func TestNewHTTPRequest_NoContentTypeWithoutBody(t *testing.T) {
	tr := newTestTransport(t, "https://example.com/v2/projects/p1")

	httpReq, err := tr.newHTTPRequest(context.Background(), &Request{
		Method: http.MethodDelete,
		Path:   "/oauthIdpConfigs/oidc.example",
	})
	if err != nil {
		t.Fatalf("newHTTPRequest() error = %v", err)
	}
	if got := httpReq.Header.Get("Content-Type"); got != "" {
		t.Errorf("Content-Type = %q, want unset for bodyless request", got)
	}
}

func TestNewHTTPRequest_BodyMarshalError(t *testing.T) {
	tr := newTestTransport(t, "https://example.com/v2/projects/p1")

	_, err := tr.newHTTPRequest(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "/oauthIdpConfigs",
		Body:   make(chan int), // not JSON-serializable
	})
	if err == nil {
		t.Fatal("newHTTPRequest() expected marshal error, got nil")
	}
}
