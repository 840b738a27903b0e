// Package testutil provides testing helpers for the idtoolkit library. Its
// recording server scripts API responses and captures every request it
// receives, so tests can assert on methods, paths, query strings, headers
// and bodies after the fact.
package testutil
