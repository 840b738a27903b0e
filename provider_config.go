package idtoolkit

import (
	"errors"
	"strings"
)

const (
	// DefaultProviderConfigPageSize is the page size used when the caller
	// does not specify one.
	DefaultProviderConfigPageSize = 100

	// MaxProviderConfigPageSize is the largest page size the API accepts.
	MaxProviderConfigPageSize = 100
)

// Done is returned by iterator calls when no further provider configs
// remain in the sequence.
var Done = errors.New("idtoolkit: no more provider configs")

// providerKind describes one provider-config variant of the Identity
// Toolkit API. The set is sealed: OIDC and SAML are the only variants, and
// every operation dispatches through one of the two values below rather
// than through runtime type inspection.
type providerKind struct {
	kind       string // variant name for messages, logs and spans
	idPrefix   string // required provider-id prefix, including the dot
	collection string // REST collection path segment
	idParam    string // query parameter naming the new config id on create
}

var (
	oidcKind = providerKind{
		kind:       "oidc",
		idPrefix:   "oidc.",
		collection: "oauthIdpConfigs",
		idParam:    "oauthIdpConfigId",
	}
	samlKind = providerKind{
		kind:       "saml",
		idPrefix:   "saml.",
		collection: "inboundSamlConfigs",
		idParam:    "inboundSamlConfigId",
	}
)

// validateProviderID checks the invariant every operation relies on: a
// non-empty id carrying this variant's prefix. Violations never reach the
// network.
func (k providerKind) validateProviderID(id string) error {
	if id == "" {
		return invalidArgument("provider id must not be empty")
	}
	if !strings.HasPrefix(id, k.idPrefix) {
		return invalidArgument("invalid %s provider id %q: must begin with %q", k.kind, id, k.idPrefix)
	}
	return nil
}

// collectionPath is the relative path of this variant's config collection.
func (k providerKind) collectionPath() string {
	return "/" + k.collection
}

// configPath is the relative path of a single config resource.
func (k providerKind) configPath(id string) string {
	return "/" + k.collection + "/" + id
}

// ListProviderConfigsOptions controls paginated provider config listing.
type ListProviderConfigsOptions struct {
	// PageSize is the maximum number of configs per fetched page.
	// Zero selects DefaultProviderConfigPageSize; values above
	// MaxProviderConfigPageSize or below zero are rejected.
	PageSize int

	// PageToken resumes listing from an earlier iterator's PageToken().
	// Empty starts from the first page.
	PageToken string
}

// normalizedPageSize resolves the effective page size for a fetch, treating
// a nil options struct like the zero value.
func (o *ListProviderConfigsOptions) normalizedPageSize() (int, error) {
	if o == nil || o.PageSize == 0 {
		return DefaultProviderConfigPageSize, nil
	}
	if o.PageSize < 0 {
		return 0, invalidArgument("page size must not be negative, got %d", o.PageSize)
	}
	if o.PageSize > MaxProviderConfigPageSize {
		return 0, invalidArgument("page size must not exceed %d, got %d", MaxProviderConfigPageSize, o.PageSize)
	}
	return o.PageSize, nil
}

// initialPageToken resolves the starting cursor, treating a nil options
// struct like the zero value.
func (o *ListProviderConfigsOptions) initialPageToken() string {
	if o == nil {
		return ""
	}
	return o.PageToken
}
