// Package lexer implements the push-driven LDIF lexer: it consumes an
// unfolded, CR-stripped byte stream and emits typed token.Token events
//.
package lexer

import (
	"fmt"

	"github.com/ivartj/ldiftools/loc"
	"github.com/ivartj/ldiftools/locw"
	"github.com/ivartj/ldiftools/token"
)

// maxAttributeType is the longest attribute-type name accepted.
const maxAttributeType = 1024

// state names a lexer state. valueKind distinguishes which of the two
// WhitespaceBefore variants is in effect, and which token kind a value
// in progress will eventually be emitted as.
type state int

const (
	lineStart state = iota
	commentLine
	attributeType
	valueColon
	safeStringValue
	base64Value
	whitespaceBeforeSafe
	whitespaceBeforeBase64
)

// Error reports a lexical problem, always located in the original
// input.
type Error struct {
	Loc loc.Loc
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lexer: %s: %s", e.Loc, e.Msg)
}

func errAt(at loc.Loc, format string, args ...interface{}) error {
	return &Error{Loc: at, Msg: fmt.Sprintf(format, args...)}
}

// Lexer is a locw.Writer that turns bytes into token.Token events
// delivered to a token.Sink. It has no downstream byte writer: the
// tokens it emits are its entire output.
type Lexer struct {
	sink token.Sink

	st      state
	scratch []byte
	segLoc  loc.Loc // location of scratch[0], valid once len(scratch) > 0 or a token has been opened

	// set true the instant a token's content starts (even if empty so
	// far), so we know segLoc is meaningful at flush time.
	open bool
}

// New returns a Lexer that delivers tokens to sink.
func New(sink token.Sink) *Lexer {
	return &Lexer{sink: sink, st: lineStart}
}

var _ locw.Writer = (*Lexer)(nil)

func isAlpha(b byte) bool { return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isSafeInitChar(b byte) bool {
	if b < 0x01 || b > 0x7D {
		return false
	}
	switch b {
	case 0x0A, 0x0D, 0x20, 0x3A, 0x3C:
		return false
	}
	return true
}

func isSafeChar(b byte) bool {
	if b < 0x01 || b > 0x7F {
		return false
	}
	return b != 0x0A && b != 0x0D
}

func isBase64Char(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '+' || b == '/' || b == '='
}

func isAttrChar(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '-' || b == '_'
}

func (x *Lexer) beginSegment(at loc.Loc) {
	x.scratch = x.scratch[:0]
	x.segLoc = at
	x.open = true
}

func (x *Lexer) push(b byte) {
	x.scratch = append(x.scratch, b)
}

func (x *Lexer) emit(kind token.Kind, at loc.Loc, segment []byte) error {
	return x.sink(token.Token{Kind: kind, Loc: at, Segment: segment})
}

// WriteLoc processes p, whose first byte is at position at, driving the
// state machine and calling the sink for every completed token.
func (x *Lexer) WriteLoc(at loc.Loc, p []byte) (int, error) {
	cur := at
	for _, b := range p {
		if b >= 0x80 {
			return 0, errAt(cur, "non-ASCII byte 0x%02x", b)
		}
		if err := x.step(cur, b); err != nil {
			return 0, err
		}
		cur = cur.After(b)
	}
	return len(p), nil
}

func (x *Lexer) step(at loc.Loc, b byte) error {
	switch x.st {

	case lineStart:
		switch {
		case b == '\n':
			x.st = lineStart
			return x.emit(token.EntryFinish, at, nil)
		case b == '#':
			x.st = commentLine
		case isAlpha(b):
			x.beginSegment(at)
			x.push(b)
			x.st = attributeType
		default:
			return errAt(at, "expected attribute type, option or type names are not supported")
		}

	case commentLine:
		if b == '\n' {
			x.st = lineStart
		}

	case attributeType:
		switch {
		case isAttrChar(b):
			if len(x.scratch) >= maxAttributeType {
				return errAt(x.segLoc, "attribute type exceeds %d bytes", maxAttributeType)
			}
			x.push(b)
		case b == ':':
			if err := x.emit(token.AttributeType, x.segLoc, x.scratch); err != nil {
				return err
			}
			x.open = false
			x.st = valueColon
		case b == ';':
			return errAt(at, "attribute options are not supported")
		default:
			return errAt(at, "illegal character in attribute type")
		}

	case valueColon:
		switch {
		case b == '\n':
			if err := x.emit(token.ValueText, at, nil); err != nil {
				return err
			}
			if err := x.emit(token.ValueFinish, at, nil); err != nil {
				return err
			}
			x.st = lineStart
		case b == ' ':
			x.st = whitespaceBeforeSafe
		case b == ':':
			x.st = whitespaceBeforeBase64
		case b == '<':
			return errAt(at, "URL values are not supported")
		case isSafeInitChar(b):
			x.beginSegment(at)
			x.push(b)
			x.st = safeStringValue
		default:
			return errAt(at, "illegal character starting a value")
		}

	case safeStringValue:
		switch {
		case b == '\n':
			if err := x.finishValue(token.ValueText, at); err != nil {
				return err
			}
			x.st = lineStart
		case isSafeChar(b):
			x.push(b)
		default:
			return errAt(at, "illegal character in value")
		}

	case base64Value:
		switch {
		case b == '\n':
			if err := x.finishValue(token.ValueBase64, at); err != nil {
				return err
			}
			x.st = lineStart
		case isBase64Char(b):
			x.push(b)
		default:
			return errAt(at, "illegal character in base64 value")
		}

	case whitespaceBeforeSafe:
		switch {
		case b == ' ':
			// stay
		case isSafeChar(b):
			x.beginSegment(at)
			x.push(b)
			x.st = safeStringValue
		default:
			return errAt(at, "illegal character in value")
		}

	case whitespaceBeforeBase64:
		switch {
		case b == ' ':
			// stay
		case isBase64Char(b):
			x.beginSegment(at)
			x.push(b)
			x.st = base64Value
		default:
			return errAt(at, "illegal character in base64 value")
		}

	default:
		panic("lexer: unreachable state")
	}
	return nil
}

func (x *Lexer) finishValue(kind token.Kind, at loc.Loc) error {
	if err := x.emit(kind, x.segLoc, x.scratch); err != nil {
		return err
	}
	x.open = false
	return x.emit(token.ValueFinish, at, nil)
}

// Flush signals end of input at position at, flushing any value in
// progress and emitting a final EntryFinish.
func (x *Lexer) Flush(at loc.Loc) error {
	switch x.st {
	case lineStart, commentLine:
		return x.emit(token.EntryFinish, at, nil)

	case attributeType:
		return errAt(x.segLoc, "unterminated attribute type at end of input")

	case valueColon, whitespaceBeforeSafe:
		if !x.open {
			x.scratch = x.scratch[:0]
			x.segLoc = at
		}
		if err := x.emit(token.ValueText, x.segLoc, x.scratch); err != nil {
			return err
		}
		if err := x.emit(token.ValueFinish, at, nil); err != nil {
			return err
		}
		return x.emit(token.EntryFinish, at, nil)

	case whitespaceBeforeBase64:
		if !x.open {
			x.scratch = x.scratch[:0]
			x.segLoc = at
		}
		if err := x.emit(token.ValueBase64, x.segLoc, x.scratch); err != nil {
			return err
		}
		if err := x.emit(token.ValueFinish, at, nil); err != nil {
			return err
		}
		return x.emit(token.EntryFinish, at, nil)

	case safeStringValue:
		if err := x.emit(token.ValueText, x.segLoc, x.scratch); err != nil {
			return err
		}
		if err := x.emit(token.ValueFinish, at, nil); err != nil {
			return err
		}
		return x.emit(token.EntryFinish, at, nil)

	case base64Value:
		if err := x.emit(token.ValueBase64, x.segLoc, x.scratch); err != nil {
			return err
		}
		if err := x.emit(token.ValueFinish, at, nil); err != nil {
			return err
		}
		return x.emit(token.EntryFinish, at, nil)

	default:
		panic("lexer: unreachable state")
	}
}
