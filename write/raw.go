package write

// Raw appends each value followed by delim, the bare "extract one
// attribute" output format. delim terminates every value rather than
// separating them, so downstream line-oriented tools (or xargs -0 with
// a NUL delimiter) see one complete record per value.
func Raw(dst []byte, values [][]byte, delim byte) []byte {
	for _, v := range values {
		dst = append(dst, v...)
		dst = append(dst, delim)
	}
	return dst
}
