// Package entry holds the assembled form of one LDIF record and the
// assembler that builds it from a token stream.
package entry

import "strings"

// Entry is a mapping from lowercased attribute name to an ordered
// multi-set of values, plus a side table recording the first-seen
// original-case spelling of each attribute for display.
type Entry struct {
	order   []string // lowercased names, first-seen order
	values  map[string][][]byte
	display map[string]string // lowercase -> original case
}

// New returns an empty Entry that accepts any attribute (the "all
// attributes" assembler mode).
func New() *Entry {
	return &Entry{values: make(map[string][][]byte)}
}

// NewFixed returns an Entry preallocated with an empty value list for
// each of attrs (the "fixed attribute set" assembler mode). attrs are
// given in the caller's preferred display case; an attribute encountered
// later under a different case does not change the display name.
func NewFixed(attrs []string) *Entry {
	e := &Entry{values: make(map[string][][]byte, len(attrs))}
	for _, a := range attrs {
		lower := strings.ToLower(a)
		if _, ok := e.values[lower]; ok {
			continue
		}
		e.order = append(e.order, lower)
		e.values[lower] = nil
		if e.display == nil {
			e.display = make(map[string]string)
		}
		e.display[lower] = a
	}
	return e
}

// Add appends value to the attribute named lower, recording display as
// its original-case spelling the first time lower is seen.
func (e *Entry) Add(lower, display string, value []byte) {
	if _, ok := e.values[lower]; !ok {
		e.order = append(e.order, lower)
	}
	e.values[lower] = append(e.values[lower], value)
	if e.display == nil {
		e.display = make(map[string]string)
	}
	if _, ok := e.display[lower]; !ok {
		e.display[lower] = display
	}
}

// Values returns the values recorded for the lowercased attribute name,
// or nil if it was never seen.
func (e *Entry) Values(lower string) [][]byte {
	return e.values[strings.ToLower(lower)]
}

// Has reports whether the entry has at least one value for attribute.
func (e *Entry) Has(attr string) bool {
	return len(e.values[strings.ToLower(attr)]) > 0
}

// DisplayName returns the first-seen original-case spelling of the
// lowercased attribute name.
func (e *Entry) DisplayName(lower string) string {
	if e.display == nil {
		return lower
	}
	if d, ok := e.display[lower]; ok {
		return d
	}
	return lower
}

// Attributes returns the lowercased attribute names in first-seen order.
func (e *Entry) Attributes() []string {
	return e.order
}

// DN returns the entry's dn attribute's first value, if any.
func (e *Entry) DN() ([]byte, bool) {
	vs := e.values["dn"]
	if len(vs) == 0 {
		return nil, false
	}
	return vs[0], true
}
