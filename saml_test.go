package idtoolkit

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"github.com/cloudtrellis/idtoolkit/internal/testutil"
)

const samlConfigJSON = `{
	"name": "projects/demo-project/inboundSamlConfigs/saml.corp-sso",
	"displayName": "Corp SSO",
	"enabled": true,
	"idpConfig": {
		"idpEntityId": "https://idp.corp.example.com/metadata",
		"ssoUrl": "https://idp.corp.example.com/sso",
		"signRequest": true,
		"idpCertificates": [
			{"x509Certificate": "CERT-ONE"},
			{"x509Certificate": "CERT-TWO"}
		]
	},
	"spConfig": {
		"spEntityId": "https://auth.example.com/sp",
		"callbackUri": "https://auth.example.com/__/auth/handler"
	}
}`

func TestGetSAMLProviderConfig(t *testing.T) {
	server := testutil.NewServer(testutil.Response{Body: samlConfigJSON})
	defer server.Close()

	client := newTestClient(t, server)
	config, err := client.GetSAMLProviderConfig(context.Background(), "saml.corp-sso")
	if err != nil {
		t.Fatalf("GetSAMLProviderConfig() error = %v", err)
	}

	if config.ID != "saml.corp-sso" {
		t.Errorf("ID = %q, want %q", config.ID, "saml.corp-sso")
	}
	if config.DisplayName != "Corp SSO" {
		t.Errorf("DisplayName = %q, want %q", config.DisplayName, "Corp SSO")
	}
	if !config.Enabled {
		t.Error("Enabled = false, want true")
	}
	if config.IDPEntityID != "https://idp.corp.example.com/metadata" {
		t.Errorf("IDPEntityID = %q", config.IDPEntityID)
	}
	if config.SSOURL != "https://idp.corp.example.com/sso" {
		t.Errorf("SSOURL = %q", config.SSOURL)
	}
	if !config.RequestSigningEnabled {
		t.Error("RequestSigningEnabled = false, want true")
	}
	if want := []string{"CERT-ONE", "CERT-TWO"}; !reflect.DeepEqual(config.X509Certificates, want) {
		t.Errorf("X509Certificates = %v, want %v", config.X509Certificates, want)
	}
	if config.RPEntityID != "https://auth.example.com/sp" {
		t.Errorf("RPEntityID = %q", config.RPEntityID)
	}
	if config.CallbackURL != "https://auth.example.com/__/auth/handler" {
		t.Errorf("CallbackURL = %q", config.CallbackURL)
	}

	req := server.LastRequest()
	if req.Method != http.MethodGet {
		t.Errorf("method = %q, want GET", req.Method)
	}
	wantPath := "/projects/demo-project/inboundSamlConfigs/saml.corp-sso"
	if req.Path != wantPath {
		t.Errorf("path = %q, want %q", req.Path, wantPath)
	}
}

func TestGetSAMLProviderConfig_InvalidID(t *testing.T) {
	server := testutil.NewServer()
	defer server.Close()
	client := newTestClient(t, server)

	tests := []struct {
		name string
		id   string
	}{
		{name: "empty", id: ""},
		{name: "oidc prefix", id: "oidc.corp-sso"},
		{name: "no prefix", id: "corp-sso"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.GetSAMLProviderConfig(context.Background(), tt.id)
			if !IsInvalidArgument(err) {
				t.Errorf("IsInvalidArgument(err) = false, want true (err = %v)", err)
			}
		})
	}

	if got := len(server.Requests()); got != 0 {
		t.Errorf("server saw %d requests, want 0", got)
	}
}

func TestSAMLProviderConfig_MutationsUnimplemented(t *testing.T) {
	server := testutil.NewServer()
	defer server.Close()
	client := newTestClient(t, server)
	ctx := context.Background()

	args := &SAMLProviderConfigArgs{ProviderID: "saml.corp-sso"}

	if _, err := client.CreateSAMLProviderConfig(ctx, args); !IsUnimplemented(err) {
		t.Errorf("Create IsUnimplemented = false (err = %v)", err)
	}
	if _, err := client.UpdateSAMLProviderConfig(ctx, args); !IsUnimplemented(err) {
		t.Errorf("Update IsUnimplemented = false (err = %v)", err)
	}
	if err := client.DeleteSAMLProviderConfig(ctx, "saml.corp-sso"); !IsUnimplemented(err) {
		t.Errorf("Delete IsUnimplemented = false (err = %v)", err)
	}

	if got := len(server.Requests()); got != 0 {
		t.Errorf("server saw %d requests, want 0 for unimplemented operations", got)
	}
}

func TestListSAMLProviderConfigs_Unimplemented(t *testing.T) {
	server := testutil.NewServer()
	defer server.Close()
	client := newTestClient(t, server)
	ctx := context.Background()

	it := client.ListSAMLProviderConfigs(nil)

	if _, err := it.Next(ctx); !IsUnimplemented(err) {
		t.Errorf("Next IsUnimplemented = false (err = %v)", err)
	}
	if _, err := it.NextPage(ctx); !IsUnimplemented(err) {
		t.Errorf("NextPage IsUnimplemented = false (err = %v)", err)
	}
	if got := it.PageToken(); got != "" {
		t.Errorf("PageToken() = %q, want empty", got)
	}
	if got := len(server.Requests()); got != 0 {
		t.Errorf("server saw %d requests, want 0", got)
	}
}
