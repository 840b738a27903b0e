// Package util provides common utility functions used across the idtoolkit
// library.
//
// This package contains helper functions for string manipulation and
// formatting that don't fit into domain-specific packages. These utilities
// are used internally by multiple packages to avoid code duplication and
// maintain consistent behavior across the codebase.
//
// Key utilities:
//   - SafeTruncate: bounds response bodies embedded in errors and logs
//   - NormalizeURL: normalizes endpoint overrides
//   - TrailingSegment: extracts the provider id from a full resource name
package util
