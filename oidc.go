package idtoolkit

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cloudtrellis/idtoolkit/instrumentation"
	"github.com/cloudtrellis/idtoolkit/internal/fieldmask"
	"github.com/cloudtrellis/idtoolkit/internal/transport"
	"github.com/cloudtrellis/idtoolkit/internal/util"
)

// OIDCProviderConfig is the read-only representation of an OpenID Connect
// identity provider configuration.
type OIDCProviderConfig struct {
	// ID is the provider identifier, always prefixed with "oidc.".
	ID string

	// DisplayName is the human-readable label shown to end users.
	DisplayName string

	// Enabled reports whether end users can sign in with this provider.
	Enabled bool

	// ClientID is the OAuth client id registered with the provider.
	ClientID string

	// Issuer is the provider's OIDC issuer URL.
	Issuer string

	// ClientSecret is the OAuth client secret, set when the code flow is
	// enabled.
	ClientSecret string

	// CodeResponseType reports whether the authorization code flow is
	// enabled for this provider.
	CodeResponseType bool

	// IDTokenResponseType reports whether the ID token flow is enabled
	// for this provider.
	IDTokenResponseType bool
}

// OIDCProviderConfigArgs holds the writable fields for creating or updating
// an OIDC provider configuration. Nil pointer fields are unspecified: they
// are omitted from the request body and, on update, excluded from the
// update mask. A pointer to a zero value is an explicit clear. Use the
// String and Bool helpers for literals.
type OIDCProviderConfigArgs struct {
	// ProviderID identifies the config and must be prefixed with "oidc.".
	ProviderID string

	DisplayName         *string
	Enabled             *bool
	ClientID            *string
	Issuer              *string
	ClientSecret        *string
	CodeResponseType    *bool
	IDTokenResponseType *bool
}

// oidcResponseTypeDAO is the wire shape of the responseType object.
type oidcResponseTypeDAO struct {
	Code    bool `json:"code"`
	IDToken bool `json:"idToken"`
}

// oidcProviderConfigDAO is the wire shape of an OIDC provider config
// resource.
type oidcProviderConfigDAO struct {
	Name         string              `json:"name"`
	ClientID     string              `json:"clientId"`
	Issuer       string              `json:"issuer"`
	DisplayName  string              `json:"displayName"`
	Enabled      bool                `json:"enabled"`
	ClientSecret string              `json:"clientSecret"`
	ResponseType oidcResponseTypeDAO `json:"responseType"`
}

func (dao *oidcProviderConfigDAO) toConfig() *OIDCProviderConfig {
	return &OIDCProviderConfig{
		ID:                  util.TrailingSegment(dao.Name),
		DisplayName:         dao.DisplayName,
		Enabled:             dao.Enabled,
		ClientID:            dao.ClientID,
		Issuer:              dao.Issuer,
		ClientSecret:        dao.ClientSecret,
		CodeResponseType:    dao.ResponseType.Code,
		IDTokenResponseType: dao.ResponseType.IDToken,
	}
}

// toRequestBody assembles the sparse wire body. Only specified fields
// appear, so an update mask computed from the result names exactly the
// supplied leaf paths.
func (args *OIDCProviderConfigArgs) toRequestBody() map[string]any {
	body := map[string]any{}
	if args.DisplayName != nil {
		body["displayName"] = *args.DisplayName
	}
	if args.Enabled != nil {
		body["enabled"] = *args.Enabled
	}
	if args.ClientID != nil {
		body["clientId"] = *args.ClientID
	}
	if args.Issuer != nil {
		body["issuer"] = *args.Issuer
	}
	if args.ClientSecret != nil {
		body["clientSecret"] = *args.ClientSecret
	}
	if args.CodeResponseType != nil || args.IDTokenResponseType != nil {
		responseType := map[string]any{}
		if args.CodeResponseType != nil {
			responseType["code"] = *args.CodeResponseType
		}
		if args.IDTokenResponseType != nil {
			responseType["idToken"] = *args.IDTokenResponseType
		}
		body["responseType"] = responseType
	}
	return body
}

// validateForCreate checks the fields a new config cannot exist without.
func (args *OIDCProviderConfigArgs) validateForCreate() error {
	if args.ClientID == nil || *args.ClientID == "" {
		return invalidArgument("ClientID must not be empty")
	}
	if args.Issuer == nil || *args.Issuer == "" {
		return invalidArgument("Issuer must not be empty")
	}
	if _, err := url.ParseRequestURI(*args.Issuer); err != nil {
		return invalidArgument("malformed Issuer: %q", *args.Issuer)
	}
	return args.validateResponseTypes()
}

// validateForUpdate checks only the fields the caller chose to modify.
func (args *OIDCProviderConfigArgs) validateForUpdate() error {
	if args.ClientID != nil && *args.ClientID == "" {
		return invalidArgument("ClientID must not be empty")
	}
	if args.Issuer != nil {
		if *args.Issuer == "" {
			return invalidArgument("Issuer must not be empty")
		}
		if _, err := url.ParseRequestURI(*args.Issuer); err != nil {
			return invalidArgument("malformed Issuer: %q", *args.Issuer)
		}
	}
	return args.validateResponseTypes()
}

// validateResponseTypes enforces the service's response-type constraints
// locally: disabling both flows is never valid, and the code flow needs a
// client secret for the token exchange.
func (args *OIDCProviderConfigArgs) validateResponseTypes() error {
	if args.CodeResponseType != nil && args.IDTokenResponseType != nil &&
		!*args.CodeResponseType && !*args.IDTokenResponseType {
		return invalidArgument("at least one response type must be enabled")
	}
	if args.CodeResponseType != nil && *args.CodeResponseType &&
		(args.ClientSecret == nil || *args.ClientSecret == "") {
		return invalidArgument("ClientSecret is required when the code response type is enabled")
	}
	return nil
}

// GetOIDCProviderConfig returns the OIDC provider config with the given id.
func (c *Client) GetOIDCProviderConfig(ctx context.Context, id string) (*OIDCProviderConfig, error) {
	ctx, span := c.startCallSpan(ctx, "GetOIDCProviderConfig")
	defer span.End()
	instrumentation.AddProviderConfigAttributes(span, oidcKind.kind, id)

	var err error
	defer func() {
		finishCallSpan(span, err)
	}()

	if err = oidcKind.validateProviderID(id); err != nil {
		return nil, err
	}
	var dao oidcProviderConfigDAO
	if err = c.getJSON(ctx, oidcKind.configPath(id), "GetOIDCProviderConfig", &dao); err != nil {
		return nil, err
	}
	return dao.toConfig(), nil
}

// CreateOIDCProviderConfig creates a new OIDC provider config from the
// given args. ProviderID, ClientID and a well-formed Issuer are required.
func (c *Client) CreateOIDCProviderConfig(ctx context.Context, args *OIDCProviderConfigArgs) (*OIDCProviderConfig, error) {
	ctx, span := c.startCallSpan(ctx, "CreateOIDCProviderConfig")
	defer span.End()

	var err error
	defer func() {
		finishCallSpan(span, err)
	}()

	if args == nil {
		err = invalidArgument("args must not be nil")
		return nil, err
	}
	instrumentation.AddProviderConfigAttributes(span, oidcKind.kind, args.ProviderID)
	if err = oidcKind.validateProviderID(args.ProviderID); err != nil {
		return nil, err
	}
	if err = args.validateForCreate(); err != nil {
		return nil, err
	}

	var dao oidcProviderConfigDAO
	err = c.callJSON(ctx, &transport.Request{
		Method: http.MethodPost,
		Path:   oidcKind.collectionPath(),
		Body:   args.toRequestBody(),
		Query: []transport.QueryParam{
			{Key: oidcKind.idParam, Value: args.ProviderID},
		},
		Operation: "CreateOIDCProviderConfig",
	}, &dao)
	if err != nil {
		return nil, err
	}
	return dao.toConfig(), nil
}

// UpdateOIDCProviderConfig applies a sparse update to an existing OIDC
// provider config. Only the non-nil args fields change; the request's
// update mask is computed from exactly those fields. At least one field
// must be specified.
func (c *Client) UpdateOIDCProviderConfig(ctx context.Context, args *OIDCProviderConfigArgs) (*OIDCProviderConfig, error) {
	ctx, span := c.startCallSpan(ctx, "UpdateOIDCProviderConfig")
	defer span.End()

	var err error
	defer func() {
		finishCallSpan(span, err)
	}()

	if args == nil {
		err = invalidArgument("args must not be nil")
		return nil, err
	}
	instrumentation.AddProviderConfigAttributes(span, oidcKind.kind, args.ProviderID)
	if err = oidcKind.validateProviderID(args.ProviderID); err != nil {
		return nil, err
	}
	if err = args.validateForUpdate(); err != nil {
		return nil, err
	}

	body := args.toRequestBody()
	mask := fieldmask.Compute(body)
	if len(mask) == 0 {
		err = invalidArgument("at least one field must be specified for update")
		return nil, err
	}

	var dao oidcProviderConfigDAO
	err = c.callJSON(ctx, &transport.Request{
		Method: http.MethodPatch,
		Path:   oidcKind.configPath(args.ProviderID),
		Body:   body,
		Query: []transport.QueryParam{
			{Key: "updateMask", Value: strings.Join(mask, ",")},
		},
		Operation: "UpdateOIDCProviderConfig",
	}, &dao)
	if err != nil {
		return nil, err
	}
	return dao.toConfig(), nil
}

// DeleteOIDCProviderConfig removes the OIDC provider config with the given
// id.
func (c *Client) DeleteOIDCProviderConfig(ctx context.Context, id string) error {
	ctx, span := c.startCallSpan(ctx, "DeleteOIDCProviderConfig")
	defer span.End()
	instrumentation.AddProviderConfigAttributes(span, oidcKind.kind, id)

	var err error
	defer func() {
		finishCallSpan(span, err)
	}()

	if err = oidcKind.validateProviderID(id); err != nil {
		return err
	}
	err = c.callJSON(ctx, &transport.Request{
		Method:    http.MethodDelete,
		Path:      oidcKind.configPath(id),
		Operation: "DeleteOIDCProviderConfig",
	}, nil)
	return err
}

// ListOIDCProviderConfigs returns an iterator over the project's OIDC
// provider configs. The iterator is lazy: no request is sent until the
// first Next or NextPage call, and each page is fetched exactly once.
// Invalid options surface as InvalidArgument from the first call.
func (c *Client) ListOIDCProviderConfigs(opts *ListProviderConfigsOptions) *OIDCProviderConfigIterator {
	it := &OIDCProviderConfigIterator{
		client:    c,
		pageToken: opts.initialPageToken(),
	}
	it.pageSize, it.optsErr = opts.normalizedPageSize()
	return it
}

// OIDCProviderConfigIterator is a lazy, forward-only cursor over OIDC
// provider configs. It is not safe for concurrent use; each goroutine
// should create its own iterator.
type OIDCProviderConfigIterator struct {
	client    *Client
	pageSize  int
	pageToken string
	optsErr   error

	buf       []*OIDCProviderConfig
	exhausted bool
}

// oidcConfigPageDAO is the wire shape of one list response page.
type oidcConfigPageDAO struct {
	OAuthIDPConfigs []oidcProviderConfigDAO `json:"oauthIdpConfigs"`
	NextPageToken   string                  `json:"nextPageToken"`
}

// fetch retrieves the next page and advances the cursor. A failed fetch
// leaves the cursor unchanged, so the call can be retried.
func (it *OIDCProviderConfigIterator) fetch(ctx context.Context) ([]*OIDCProviderConfig, error) {
	ctx, span := it.client.startCallSpan(ctx, "ListOIDCProviderConfigs")
	defer span.End()
	instrumentation.AddProviderConfigAttributes(span, oidcKind.kind, "")
	instrumentation.AddPageAttributes(span, it.pageSize, it.pageToken != "")

	var err error
	defer func() {
		finishCallSpan(span, err)
	}()

	params := []transport.QueryParam{
		{Key: "pageSize", Value: strconv.Itoa(it.pageSize)},
	}
	if it.pageToken != "" {
		params = append(params, transport.QueryParam{Key: "pageToken", Value: it.pageToken})
	}

	var page oidcConfigPageDAO
	err = it.client.callJSON(ctx, &transport.Request{
		Method:    http.MethodGet,
		Path:      oidcKind.collectionPath(),
		Query:     params,
		Operation: "ListOIDCProviderConfigs",
	}, &page)
	if err != nil {
		return nil, err
	}

	configs := make([]*OIDCProviderConfig, 0, len(page.OAuthIDPConfigs))
	for i := range page.OAuthIDPConfigs {
		configs = append(configs, page.OAuthIDPConfigs[i].toConfig())
	}

	it.pageToken = page.NextPageToken
	it.exhausted = page.NextPageToken == ""
	if it.client.inst != nil {
		it.client.inst.Metrics().RecordPageFetch(ctx, oidcKind.collection, len(configs))
	}
	return configs, nil
}

// Next returns the next provider config in the sequence, fetching a new
// page whenever the buffered one is drained. It returns Done once the
// sequence is exhausted.
func (it *OIDCProviderConfigIterator) Next(ctx context.Context) (*OIDCProviderConfig, error) {
	if it.optsErr != nil {
		return nil, it.optsErr
	}
	for len(it.buf) == 0 {
		if it.exhausted {
			return nil, Done
		}
		page, err := it.fetch(ctx)
		if err != nil {
			return nil, err
		}
		it.buf = page
	}
	item := it.buf[0]
	it.buf = it.buf[1:]
	return item, nil
}

// NextPage returns the remaining items of the current page, or fetches and
// returns the next page when the buffer is empty. It returns Done once the
// sequence is exhausted. Mixing Next and NextPage on one iterator is
// supported; NextPage never re-yields items Next already consumed.
func (it *OIDCProviderConfigIterator) NextPage(ctx context.Context) ([]*OIDCProviderConfig, error) {
	if it.optsErr != nil {
		return nil, it.optsErr
	}
	if len(it.buf) > 0 {
		page := it.buf
		it.buf = nil
		return page, nil
	}
	if it.exhausted {
		return nil, Done
	}
	page, err := it.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(page) == 0 && it.exhausted {
		return nil, Done
	}
	return page, nil
}

// PageToken returns the cursor for resuming after the most recently fetched
// page: pass it as ListProviderConfigsOptions.PageToken on a fresh
// iterator. Items still buffered on this iterator are not covered by the
// token; drain them first if none may be skipped. An empty token means the
// sequence is exhausted.
func (it *OIDCProviderConfigIterator) PageToken() string {
	return it.pageToken
}
