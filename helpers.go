package idtoolkit

// String returns a pointer to the given string value. Args structs use
// pointer fields so that an absent value and an explicit clear serialize
// differently; String("") requests a clear.
func String(v string) *string {
	return &v
}

// Bool returns a pointer to the given bool value.
func Bool(v bool) *bool {
	return &v
}
