// Package util provides common utility functions used across the idtoolkit
// library. These utilities handle string manipulation and formatting shared
// by the client, error and transport layers.
package util

import "strings"

// SafeTruncate safely truncates a string to maxLen characters without
// panicking. Returns the original string if it's shorter than maxLen,
// otherwise the first maxLen characters. Used when embedding response bodies
// in error messages and logs, where only a bounded prefix should appear.
//
// If maxLen is negative, it's treated as 0 and returns an empty string.
//
// Example:
//
//	SafeTruncate(`{"error":{"message":"CONFIGURATION_NOT_FOUND"}}`, 16) // Returns: `{"error":{"messa`
//	SafeTruncate("short", 10)                                           // Returns: "short"
func SafeTruncate(s string, maxLen int) string {
	if maxLen < 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// NormalizeURL normalizes a URL by removing trailing slashes. Applied to
// endpoint overrides so that base-URL joining never produces double slashes.
//
// Example:
//
//	NormalizeURL("https://identitytoolkit.googleapis.com/v2/") // Returns: "https://identitytoolkit.googleapis.com/v2"
//	NormalizeURL("http://localhost:9099///")                   // Returns: "http://localhost:9099"
func NormalizeURL(url string) string {
	return strings.TrimRight(url, "/")
}

// TrailingSegment returns the final slash-delimited segment of a resource
// name. The Identity Toolkit API identifies configs by full resource name
// ("projects/p1/oauthIdpConfigs/oidc.example"); callers work with the bare
// provider id.
//
// Example:
//
//	TrailingSegment("projects/p1/oauthIdpConfigs/oidc.example") // Returns: "oidc.example"
//	TrailingSegment("oidc.example")                             // Returns: "oidc.example"
func TrailingSegment(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}
