package write

import (
	"github.com/ivartj/ldiftools/diff"
	"github.com/ivartj/ldiftools/entry"
)

// Changerecord appends one changerecord for c: "dn: ...",
// "changetype: add|delete|modify", then for Modify one block per Mod
// ("add|delete|replace: attr", its value lines, and a "-" terminator),
// followed by the blank line that separates records.
func Changerecord(dst []byte, c diff.Change) []byte {
	dst = AttrVal(dst, "dn", c.DN)
	switch c.Kind {
	case diff.ChangeAdd:
		dst = append(dst, "changetype: add\n"...)
		dst = addAttrs(dst, c.Entry)
	case diff.ChangeDelete:
		dst = append(dst, "changetype: delete\n"...)
	case diff.ChangeModify:
		dst = append(dst, "changetype: modify\n"...)
		for _, m := range c.Mods {
			dst = modOp(dst, m)
		}
	}
	return append(dst, '\n')
}

func addAttrs(dst []byte, e *entry.Entry) []byte {
	for _, attr := range e.Attributes() {
		if attr == "dn" {
			continue
		}
		name := e.DisplayName(attr)
		for _, v := range e.Values(attr) {
			dst = AttrVal(dst, name, v)
		}
	}
	return dst
}

func modOp(dst []byte, m diff.Mod) []byte {
	dst = append(dst, modOpName(m.Op)...)
	dst = append(dst, ": "...)
	dst = append(dst, m.Attr...)
	dst = append(dst, '\n')
	for _, v := range m.Values {
		dst = AttrVal(dst, m.Attr, v)
	}
	return append(dst, "-\n"...)
}

func modOpName(op diff.ModOp) string {
	switch op {
	case diff.ModAdd:
		return "add"
	case diff.ModDelete:
		return "delete"
	case diff.ModReplace:
		return "replace"
	default:
		return "replace"
	}
}
