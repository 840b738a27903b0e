package idtoolkit

import (
	"testing"
)

func TestProviderKind_ValidateProviderID(t *testing.T) {
	tests := []struct {
		name    string
		kind    providerKind
		id      string
		wantErr bool
	}{
		{name: "valid oidc id", kind: oidcKind, id: "oidc.corp-login", wantErr: false},
		{name: "valid saml id", kind: samlKind, id: "saml.corp-sso", wantErr: false},
		{name: "empty id", kind: oidcKind, id: "", wantErr: true},
		{name: "missing prefix", kind: oidcKind, id: "corp-login", wantErr: true},
		{name: "oidc id against saml kind", kind: samlKind, id: "oidc.corp-login", wantErr: true},
		{name: "saml id against oidc kind", kind: oidcKind, id: "saml.corp-sso", wantErr: true},
		{name: "bare prefix is accepted", kind: oidcKind, id: "oidc.", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.kind.validateProviderID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateProviderID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !IsInvalidArgument(err) {
				t.Errorf("validation failure should be INVALID_ARGUMENT, got %v", err)
			}
		})
	}
}

func TestProviderKind_Paths(t *testing.T) {
	if got := oidcKind.collectionPath(); got != "/oauthIdpConfigs" {
		t.Errorf("oidc collectionPath() = %q", got)
	}
	if got := oidcKind.configPath("oidc.example"); got != "/oauthIdpConfigs/oidc.example" {
		t.Errorf("oidc configPath() = %q", got)
	}
	if got := samlKind.collectionPath(); got != "/inboundSamlConfigs" {
		t.Errorf("saml collectionPath() = %q", got)
	}
	if got := samlKind.configPath("saml.example"); got != "/inboundSamlConfigs/saml.example" {
		t.Errorf("saml configPath() = %q", got)
	}
}

func TestListProviderConfigsOptions_NormalizedPageSize(t *testing.T) {
	tests := []struct {
		name    string
		opts    *ListProviderConfigsOptions
		want    int
		wantErr bool
	}{
		{name: "nil options", opts: nil, want: DefaultProviderConfigPageSize},
		{name: "zero selects default", opts: &ListProviderConfigsOptions{}, want: DefaultProviderConfigPageSize},
		{name: "explicit size", opts: &ListProviderConfigsOptions{PageSize: 25}, want: 25},
		{name: "maximum is allowed", opts: &ListProviderConfigsOptions{PageSize: MaxProviderConfigPageSize}, want: MaxProviderConfigPageSize},
		{name: "negative rejected", opts: &ListProviderConfigsOptions{PageSize: -5}, wantErr: true},
		{name: "above maximum rejected", opts: &ListProviderConfigsOptions{PageSize: MaxProviderConfigPageSize + 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opts.normalizedPageSize()
			if (err != nil) != tt.wantErr {
				t.Fatalf("normalizedPageSize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !IsInvalidArgument(err) {
					t.Errorf("error should be INVALID_ARGUMENT, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("normalizedPageSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestListProviderConfigsOptions_InitialPageToken(t *testing.T) {
	var nilOpts *ListProviderConfigsOptions
	if got := nilOpts.initialPageToken(); got != "" {
		t.Errorf("nil options initialPageToken() = %q, want empty", got)
	}
	opts := &ListProviderConfigsOptions{PageToken: "page-7"}
	if got := opts.initialPageToken(); got != "page-7" {
		t.Errorf("initialPageToken() = %q, want %q", got, "page-7")
	}
}
