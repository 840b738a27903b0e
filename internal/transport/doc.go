// Package transport implements the HTTP plumbing shared by every Identity
// Toolkit operation: request construction against the project-scoped base
// URL, identification headers, optional outbound throttling, and full
// response buffering. It stays ignorant of the library's error taxonomy;
// callers classify the buffered responses it hands back.
package transport
