package idtoolkit

import (
	"context"

	"github.com/cloudtrellis/idtoolkit/instrumentation"
	"github.com/cloudtrellis/idtoolkit/internal/util"
)

// SAMLProviderConfig is the read-only representation of a SAML 2.0 identity
// provider configuration.
type SAMLProviderConfig struct {
	// ID is the provider identifier, always prefixed with "saml.".
	ID string

	// DisplayName is the human-readable label shown to end users.
	DisplayName string

	// Enabled reports whether end users can sign in with this provider.
	Enabled bool

	// IDPEntityID is the SAML entity id of the identity provider.
	IDPEntityID string

	// SSOURL is the identity provider's SSO endpoint.
	SSOURL string

	// RequestSigningEnabled reports whether authentication requests to the
	// identity provider are signed.
	RequestSigningEnabled bool

	// X509Certificates holds the PEM-encoded signing certificates published
	// by the identity provider.
	X509Certificates []string

	// RPEntityID is the relying party's SAML entity id.
	RPEntityID string

	// CallbackURL is the endpoint the identity provider posts assertions
	// back to.
	CallbackURL string
}

// SAMLProviderConfigArgs holds the writable fields of a SAML provider
// configuration. The backing service does not accept SAML writes through
// this surface yet, so the mutating operations taking these args return an
// Unimplemented error without sending a request. The type exists so callers
// can compile against the eventual surface.
type SAMLProviderConfigArgs struct {
	// ProviderID identifies the config and must be prefixed with "saml.".
	ProviderID string

	DisplayName           *string
	Enabled               *bool
	IDPEntityID           *string
	SSOURL                *string
	RequestSigningEnabled *bool
	X509Certificates      []string
	RPEntityID            *string
	CallbackURL           *string
}

// samlIDPCertificateDAO is the wire shape of one entry in the identity
// provider's certificate list.
type samlIDPCertificateDAO struct {
	X509Certificate string `json:"x509Certificate"`
}

// samlIDPConfigDAO is the wire shape of the idpConfig object.
type samlIDPConfigDAO struct {
	IDPEntityID     string                  `json:"idpEntityId"`
	SSOURL          string                  `json:"ssoUrl"`
	SignRequest     bool                    `json:"signRequest"`
	IDPCertificates []samlIDPCertificateDAO `json:"idpCertificates"`
}

// samlSPConfigDAO is the wire shape of the spConfig object.
type samlSPConfigDAO struct {
	SPEntityID  string `json:"spEntityId"`
	CallbackURI string `json:"callbackUri"`
}

// samlProviderConfigDAO is the wire shape of a SAML provider config
// resource.
type samlProviderConfigDAO struct {
	Name        string           `json:"name"`
	DisplayName string           `json:"displayName"`
	Enabled     bool             `json:"enabled"`
	IDPConfig   samlIDPConfigDAO `json:"idpConfig"`
	SPConfig    samlSPConfigDAO  `json:"spConfig"`
}

func (dao *samlProviderConfigDAO) toConfig() *SAMLProviderConfig {
	config := &SAMLProviderConfig{
		ID:                    util.TrailingSegment(dao.Name),
		DisplayName:           dao.DisplayName,
		Enabled:               dao.Enabled,
		IDPEntityID:           dao.IDPConfig.IDPEntityID,
		SSOURL:                dao.IDPConfig.SSOURL,
		RequestSigningEnabled: dao.IDPConfig.SignRequest,
		RPEntityID:            dao.SPConfig.SPEntityID,
		CallbackURL:           dao.SPConfig.CallbackURI,
	}
	for _, cert := range dao.IDPConfig.IDPCertificates {
		config.X509Certificates = append(config.X509Certificates, cert.X509Certificate)
	}
	return config
}

// GetSAMLProviderConfig returns the SAML provider config with the given id.
func (c *Client) GetSAMLProviderConfig(ctx context.Context, id string) (*SAMLProviderConfig, error) {
	ctx, span := c.startCallSpan(ctx, "GetSAMLProviderConfig")
	defer span.End()
	instrumentation.AddProviderConfigAttributes(span, samlKind.kind, id)

	var err error
	defer func() {
		finishCallSpan(span, err)
	}()

	if err = samlKind.validateProviderID(id); err != nil {
		return nil, err
	}
	var dao samlProviderConfigDAO
	if err = c.getJSON(ctx, samlKind.configPath(id), "GetSAMLProviderConfig", &dao); err != nil {
		return nil, err
	}
	return dao.toConfig(), nil
}

// CreateSAMLProviderConfig is not supported by the backing service through
// this surface and always returns an Unimplemented error.
func (c *Client) CreateSAMLProviderConfig(ctx context.Context, args *SAMLProviderConfigArgs) (*SAMLProviderConfig, error) {
	return nil, unimplemented("CreateSAMLProviderConfig is not supported")
}

// UpdateSAMLProviderConfig is not supported by the backing service through
// this surface and always returns an Unimplemented error.
func (c *Client) UpdateSAMLProviderConfig(ctx context.Context, args *SAMLProviderConfigArgs) (*SAMLProviderConfig, error) {
	return nil, unimplemented("UpdateSAMLProviderConfig is not supported")
}

// DeleteSAMLProviderConfig is not supported by the backing service through
// this surface and always returns an Unimplemented error.
func (c *Client) DeleteSAMLProviderConfig(ctx context.Context, id string) error {
	return unimplemented("DeleteSAMLProviderConfig is not supported")
}

// ListSAMLProviderConfigs returns an iterator over the project's SAML
// provider configs. Listing SAML configs is not supported by the backing
// service through this surface; the iterator's Next and NextPage return an
// Unimplemented error.
func (c *Client) ListSAMLProviderConfigs(opts *ListProviderConfigsOptions) *SAMLProviderConfigIterator {
	return &SAMLProviderConfigIterator{}
}

// SAMLProviderConfigIterator is the cursor type for SAML provider config
// listings. The backing service does not support SAML listing through this
// surface, so every call reports Unimplemented.
type SAMLProviderConfigIterator struct{}

// Next always returns an Unimplemented error.
func (it *SAMLProviderConfigIterator) Next(ctx context.Context) (*SAMLProviderConfig, error) {
	return nil, unimplemented("ListSAMLProviderConfigs is not supported")
}

// NextPage always returns an Unimplemented error.
func (it *SAMLProviderConfigIterator) NextPage(ctx context.Context) ([]*SAMLProviderConfig, error) {
	return nil, unimplemented("ListSAMLProviderConfigs is not supported")
}

// PageToken always returns the empty string.
func (it *SAMLProviderConfigIterator) PageToken() string {
	return ""
}
