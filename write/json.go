package write

import "unicode/utf8"

// JSONObject appends one JSON object (no trailing newline) mapping each
// of names to its JSON array of values, in the style of one-object-per-line
// output: write a '\n' between successive calls yourself.
func JSONObject(dst []byte, names []string, cols [][][]byte) []byte {
	dst = append(dst, '{')
	for i, n := range names {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = jsonString(dst, []byte(n))
		dst = append(dst, ':')
		dst = jsonArray(dst, cols[i])
	}
	return append(dst, '}')
}

func jsonArray(dst []byte, values [][]byte) []byte {
	dst = append(dst, '[')
	for i, v := range values {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = jsonString(dst, v)
	}
	return append(dst, ']')
}

const hexDigitsJSON = "0123456789abcdef"

// jsonString appends v as a quoted JSON string: control bytes, '\\',
// and '"' are escaped, and any non-ASCII rune is emitted as a \uXXXX
// (or surrogate-pair) escape rather than passed through as raw UTF-8.
func jsonString(dst []byte, v []byte) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(v); {
		b := v[i]
		switch {
		case b == '"' || b == '\\':
			dst = append(dst, '\\', b)
			i++
		case b == '\n':
			dst = append(dst, '\\', 'n')
			i++
		case b == '\r':
			dst = append(dst, '\\', 'r')
			i++
		case b == '\t':
			dst = append(dst, '\\', 't')
			i++
		case b < 0x20:
			dst = append(dst, '\\', 'u', '0', '0', hexDigitsJSON[b>>4], hexDigitsJSON[b&0x0F])
			i++
		case b < 0x80:
			dst = append(dst, b)
			i++
		default:
			r, size := utf8.DecodeRune(v[i:])
			dst = appendUTF16Escape(dst, r)
			i += size
		}
	}
	return append(dst, '"')
}

func appendUTF16Escape(dst []byte, r rune) []byte {
	if r == utf8.RuneError || r < 0x10000 {
		return appendU16(dst, uint16(r))
	}
	r -= 0x10000
	hi := uint16(0xD800 + (r >> 10))
	lo := uint16(0xDC00 + (r & 0x3FF))
	dst = appendU16(dst, hi)
	return appendU16(dst, lo)
}

func appendU16(dst []byte, u uint16) []byte {
	return append(dst, '\\', 'u',
		hexDigitsJSON[(u>>12)&0xF],
		hexDigitsJSON[(u>>8)&0xF],
		hexDigitsJSON[(u>>4)&0xF],
		hexDigitsJSON[u&0xF])
}
