// Package attrspec parses the small attribute-spec mini-language used
// by the output-format frontends: "attribute(.filter)*(\":-\"
// default)?".
package attrspec

import (
	"fmt"
	"strings"

	"github.com/ivartj/ldiftools/b64"
	"github.com/spf13/cast"
)

// ValueFilter transforms a value list. Filters compose in the order
// they appear in the spec string.
type ValueFilter interface {
	Apply(values [][]byte) [][]byte
}

// NullCoalesce substitutes Defaults for an empty value list, unchanged
// otherwise. It is always the last filter applied, regardless of where
// the ":-default" suffix appears in the spec string, so the default
// text is never itself re-encoded by an earlier .base64/.hex filter.
type NullCoalesce struct {
	Defaults [][]byte
}

func (f NullCoalesce) Apply(values [][]byte) [][]byte {
	if len(values) > 0 {
		return values
	}
	return f.Defaults
}

// NewNullCoalesce builds a NullCoalesce from an arbitrary default value
// — e.g. one decoded from a JSON config field by ldifcfg, where it may
// have arrived as a number or bool rather than a string. cast.ToStringE
// is what does that coercion.
func NewNullCoalesce(v any) (NullCoalesce, error) {
	s, err := cast.ToStringE(v)
	if err != nil {
		return NullCoalesce{}, fmt.Errorf("attrspec: default value: %w", err)
	}
	return NullCoalesce{Defaults: [][]byte{[]byte(s)}}, nil
}

// Base64 encodes each value with the standard base64 alphabet.
type Base64 struct{}

func (Base64) Apply(values [][]byte) [][]byte {
	out := make([][]byte, len(values))
	for i, v := range values {
		out[i] = b64.EncodeAll(v)
	}
	return out
}

// Hex renders each byte of each value as two lowercase hex digits.
type Hex struct{}

const hexDigits = "0123456789abcdef"

func (Hex) Apply(values [][]byte) [][]byte {
	out := make([][]byte, len(values))
	for i, v := range values {
		enc := make([]byte, len(v)*2)
		for j, b := range v {
			enc[j*2] = hexDigits[b>>4]
			enc[j*2+1] = hexDigits[b&0x0F]
		}
		out[i] = enc
	}
	return out
}

// Spec is a parsed attribute specification.
type Spec struct {
	Attribute string // original case, as written
	Lower     string
	Filters   []ValueFilter

	// HasDefault is true once the spec string itself carried a
	// ":-default" suffix, so a caller layering in a config-file default
	// (ApplyConfigDefault) knows not to override it.
	HasDefault bool
}

// Apply runs the spec's value filters over values, in order.
func (s *Spec) Apply(values [][]byte) [][]byte {
	for _, f := range s.Filters {
		values = f.Apply(values)
	}
	return values
}

// ApplyConfigDefault layers a "--config file.json" defaults[attribute]
// entry onto the spec as a NullCoalesce filter, coercing v (a string,
// float64, or bool decoded by ldifcfg.LoadFile) to text via
// NewNullCoalesce. It is a no-op if the spec string already carried its
// own ":-default" suffix, which always takes precedence.
func (s *Spec) ApplyConfigDefault(v interface{}) error {
	if s.HasDefault {
		return nil
	}
	nc, err := NewNullCoalesce(v)
	if err != nil {
		return err
	}
	s.Filters = append(s.Filters, nc)
	return nil
}

// Parse parses one attribute spec, e.g. "jpegPhoto.base64",
// "description:-(none)", or "objectGUID.hex".
func Parse(s string) (*Spec, error) {
	attr, filterPart, defaultVal, hasDefault := splitSpec(s)
	if attr == "" {
		return nil, fmt.Errorf("attrspec: missing attribute name in %q", s)
	}

	var filters []ValueFilter
	if filterPart != "" {
		for _, name := range strings.Split(filterPart, ".") {
			switch name {
			case "base64":
				filters = append(filters, Base64{})
			case "hex":
				filters = append(filters, Hex{})
			default:
				return nil, fmt.Errorf("attrspec: unknown filter %q in %q", name, s)
			}
		}
	}
	if hasDefault {
		filters = append(filters, NullCoalesce{Defaults: [][]byte{[]byte(defaultVal)}})
	}

	return &Spec{Attribute: attr, Lower: strings.ToLower(attr), Filters: filters, HasDefault: hasDefault}, nil
}

// splitSpec splits "attr(.filter)*(:-default)?" into its attribute
// name, the dot-joined filter chain (without leading dot), and an
// optional default.
func splitSpec(s string) (attr, filterPart, defaultVal string, hasDefault bool) {
	body := s
	if idx := strings.Index(s, ":-"); idx >= 0 {
		body, defaultVal, hasDefault = s[:idx], s[idx+2:], true
	}
	attr, filterPart, _ = strings.Cut(body, ".")
	return attr, filterPart, defaultVal, hasDefault
}
