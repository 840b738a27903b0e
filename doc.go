// Package idtoolkit is a client for the Identity Toolkit identity provider
// configuration API. It manages the OIDC and SAML federated sign-in
// providers of a project: creating, reading, updating, deleting and listing
// provider configurations.
//
// # Quick Start
//
//	import (
//		"github.com/cloudtrellis/idtoolkit"
//		"github.com/cloudtrellis/idtoolkit/credentials"
//	)
//
//	ts, err := credentials.FromFile(ctx, "service-account.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	client, err := idtoolkit.NewClient(ctx, &idtoolkit.Config{
//		ProjectID:   "my-project",
//		TokenSource: ts,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	config, err := client.GetOIDCProviderConfig(ctx, "oidc.corp-login")
//
// # Provider Identifiers
//
// Every provider config id carries a kind prefix: "oidc." for OpenID
// Connect providers and "saml." for SAML providers. Operations reject ids
// with the wrong prefix locally, before any request is sent.
//
// # Sparse Updates
//
// Create and update take an args struct whose optional fields are pointers.
// A nil field is left untouched; a pointer to the zero value clears the
// field on the server. Update requests carry an update mask naming exactly
// the fields that were set:
//
//	config, err := client.UpdateOIDCProviderConfig(ctx, &idtoolkit.OIDCProviderConfigArgs{
//		ProviderID:  "oidc.corp-login",
//		DisplayName: idtoolkit.String("Corp Login"),
//		Enabled:     idtoolkit.Bool(true),
//	})
//
// # Listing
//
// List operations return a lazy iterator. Next yields one config at a time
// and NextPage yields whole pages; both return Done when the listing is
// exhausted. PageToken exposes the cursor for resuming a listing later:
//
//	it := client.ListOIDCProviderConfigs(nil)
//	for {
//		config, err := it.Next(ctx)
//		if errors.Is(err, idtoolkit.Done) {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		fmt.Println(config.ID)
//	}
//
// # Errors
//
// API failures are returned as *Error values carrying a coarse error code
// derived from the HTTP status and, when the service supplies one, the
// fine-grained service code. Predicates such as IsNotFound and
// IsConfigurationNotFound inspect errors without unwrapping them manually.
//
// # SAML Support
//
// Reading SAML provider configs is supported. The backing service does not
// accept SAML writes or listing through this surface yet; those operations
// return an Unimplemented error without sending a request.
package idtoolkit
