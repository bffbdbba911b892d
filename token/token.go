// Package token defines the typed events the LDIF lexer emits.
package token

import (
	"fmt"

	"github.com/ivartj/ldiftools/loc"
)

// Kind identifies what a Token represents.
//
//go:generate go run github.com/dmarkham/enumer -type Kind -trimprefix ""
type Kind byte

const (
	AttributeType Kind = iota // an attribute name, e.g. "cn"
	ValueText                 // a safe-string value
	ValueBase64               // a base64-encoded value
	ValueFinish               // the current attribute's value is complete
	EntryFinish               // the current entry is complete (blank line or EOF)
)

// Token is one lexer event. Segment borrows the lexer's internal scratch
// buffer and is only valid for the duration of the callback it is
// delivered to; a sink that needs to retain the bytes must copy them.
type Token struct {
	Kind    Kind
	Loc     loc.Loc
	Segment []byte
}

func (t Token) String() string {
	return fmt.Sprintf("%s@%s(%q)", t.Kind, t.Loc, t.Segment)
}

// Sink receives tokens one at a time. Returning a non-nil error aborts
// the lexer.
type Sink func(Token) error
