// Package fieldmask computes sparse update masks from partial request bodies.
// The Identity Toolkit API applies PATCH requests only to the fields named in
// the updateMask query parameter, expressed as dotted paths into the JSON
// body ("displayName", "responseType.code").
package fieldmask

import "sort"

// Compute returns the dotted leaf paths of a partially populated request
// body, sorted lexicographically. Nested objects contribute one path per
// leaf; scalars, arrays and explicit nulls are leaves of their own. An
// empty body (or one containing only empty nested objects) yields an empty
// mask, which callers must reject before issuing a request.
func Compute(body map[string]any) []string {
	paths := leafPaths("", body)
	sort.Strings(paths)
	return paths
}

func leafPaths(prefix string, m map[string]any) []string {
	var paths []string
	for key, value := range m {
		if nested, ok := value.(map[string]any); ok {
			paths = append(paths, leafPaths(prefix+key+".", nested)...)
			continue
		}
		paths = append(paths, prefix+key)
	}
	return paths
}
