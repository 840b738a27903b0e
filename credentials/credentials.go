// Package credentials builds oauth2 token sources for authenticating
// idtoolkit clients from the credential material Google issues for service
// accounts: JSON key files, application default credentials, legacy P12
// key files, and raw access tokens.
package credentials

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"golang.org/x/crypto/pkcs12"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

// scopes requested for every token source built by this package. The
// identity provider configuration API accepts either; both are requested so
// one credential serves mixed workloads.
var scopes = []string{
	"https://www.googleapis.com/auth/identitytoolkit",
	"https://www.googleapis.com/auth/cloud-platform",
}

// FromJSON builds a token source from the contents of a service account
// or authorized user JSON key.
func FromJSON(ctx context.Context, data []byte) (oauth2.TokenSource, error) {
	creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials JSON: %w", err)
	}
	return creds.TokenSource, nil
}

// FromFile builds a token source from a JSON key file on disk.
func FromFile(ctx context.Context, path string) (oauth2.TokenSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return FromJSON(ctx, data)
}

// ApplicationDefault builds a token source from the application default
// credentials of the environment: the GOOGLE_APPLICATION_CREDENTIALS file,
// the gcloud well-known file, or the metadata server.
func ApplicationDefault(ctx context.Context) (oauth2.TokenSource, error) {
	ts, err := google.DefaultTokenSource(ctx, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve application default credentials: %w", err)
	}
	return ts, nil
}

// Static builds a token source that always returns the given access token.
// The token is never refreshed; this is intended for short-lived tools and
// tests.
func Static(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
}

// FromP12 builds a token source from a legacy PKCS#12 service account key.
// Keys issued by the Google Cloud console use the password "notasecret".
// email is the service account's client email address.
func FromP12(ctx context.Context, data []byte, email, password string) (oauth2.TokenSource, error) {
	if email == "" {
		return nil, fmt.Errorf("service account email is required")
	}
	key, _, err := pkcs12.Decode(data, password)
	if err != nil {
		return nil, fmt.Errorf("failed to decode P12 key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("P12 key is %T, expected an RSA private key", key)
	}

	pemKey := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(rsaKey),
	})
	cfg := &jwt.Config{
		Email:      email,
		PrivateKey: pemKey,
		Scopes:     scopes,
		TokenURL:   google.JWTTokenURL,
	}
	return cfg.TokenSource(ctx), nil
}
