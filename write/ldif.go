// Package write renders assembled entries and changerecords as raw,
// TSV, CSV, JSON, and LDIF output, all append-style onto a
// caller-owned byte slice rather than through an io.Writer.
package write

import (
	"github.com/ivartj/ldiftools/b64"
	"github.com/ivartj/ldiftools/entry"
)

// AttrVal appends one LDIF attribute/value line: "attr: text\n" when
// value is LDIF-safe, "attr:: base64\n" otherwise. name is written
// verbatim (it is the caller's job to pick original-case vs. lowercase).
func AttrVal(dst []byte, name string, value []byte) []byte {
	dst = append(dst, name...)
	if isSafeValue(value) {
		dst = append(dst, ": "...)
		dst = append(dst, value...)
	} else {
		dst = append(dst, ":: "...)
		dst = append(dst, b64.EncodeAll(value)...)
	}
	return append(dst, '\n')
}

// isSafeValue reports whether value can be written as a plain LDIF
// safe-string: no leading '<' or ':', no NUL/LF/CR/SPACE anywhere, no
// byte above 0x7F. A SPACE anywhere (not just a leading one) forces
// base64, so the value survives the LDIF parser unmodified.
func isSafeValue(value []byte) bool {
	if len(value) == 0 {
		return true
	}
	switch value[0] {
	case '<', ':':
		return false
	}
	for _, b := range value {
		switch {
		case b == 0, b == '\n', b == '\r', b == ' ', b > 0x7F:
			return false
		}
	}
	return true
}

// Entry appends a full entry in LDIF form: "dn: ..." first, then every
// other attribute's values in first-seen order, terminated by a blank
// line.
func Entry(dst []byte, e *entry.Entry) []byte {
	dn, _ := e.DN()
	dst = AttrVal(dst, "dn", dn)
	for _, attr := range e.Attributes() {
		if attr == "dn" {
			continue
		}
		name := e.DisplayName(attr)
		for _, v := range e.Values(attr) {
			dst = AttrVal(dst, name, v)
		}
	}
	return append(dst, '\n')
}
