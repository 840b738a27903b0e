package fieldmask

import (
	"reflect"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want []string
	}{
		{
			name: "flat scalars",
			body: map[string]any{
				"displayName": "My Provider",
				"enabled":     true,
			},
			want: []string{"displayName", "enabled"},
		},
		{
			name: "nested object expands to leaf paths",
			body: map[string]any{
				"clientId": "client-1",
				"responseType": map[string]any{
					"code":    true,
					"idToken": false,
				},
			},
			want: []string{"clientId", "responseType.code", "responseType.idToken"},
		},
		{
			name: "deeply nested",
			body: map[string]any{
				"idpConfig": map[string]any{
					"ssoUrl": "https://idp.example.com/sso",
					"idpCertificates": []any{
						map[string]any{"x509Certificate": "CERT"},
					},
				},
			},
			want: []string{"idpConfig.idpCertificates", "idpConfig.ssoUrl"},
		},
		{
			name: "array is a leaf even when it holds objects",
			body: map[string]any{
				"idpCertificates": []any{"a", "b"},
			},
			want: []string{"idpCertificates"},
		},
		{
			name: "explicit null is a leaf",
			body: map[string]any{
				"displayName": nil,
			},
			want: []string{"displayName"},
		},
		{
			name: "empty nested object contributes nothing",
			body: map[string]any{
				"responseType": map[string]any{},
				"enabled":      false,
			},
			want: []string{"enabled"},
		},
		{
			name: "empty body yields empty mask",
			body: map[string]any{},
			want: nil,
		},
		{
			name: "output is sorted lexicographically",
			body: map[string]any{
				"zzz":     1,
				"aaa":     2,
				"middle":  3,
				"enabled": true,
			},
			want: []string{"aaa", "enabled", "middle", "zzz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.body)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compute(%v) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}

func TestComputeDeterministic(t *testing.T) {
	body := map[string]any{
		"displayName": "x",
		"enabled":     true,
		"responseType": map[string]any{
			"idToken": true,
			"code":    false,
		},
		"clientId": "c",
	}
	first := Compute(body)
	for i := 0; i < 50; i++ {
		if got := Compute(body); !reflect.DeepEqual(got, first) {
			t.Fatalf("iteration %d: Compute returned %v, previously %v", i, got, first)
		}
	}
}
