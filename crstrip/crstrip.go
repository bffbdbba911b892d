// Package crstrip removes a CR immediately preceding an LF from a byte
// stream, leaving every other CR untouched, across arbitrary buffer
// splits (RFC 2849 input normalization).
package crstrip

import (
	"github.com/ivartj/ldiftools/loc"
	"github.com/ivartj/ldiftools/locw"
	"github.com/ivartj/ldiftools/skip"
)

type state int

const (
	stNormal state = iota
	stCR
)

// CRStrip is a locw.Writer that strips CR-before-LF and forwards
// everything else unchanged.
type CRStrip struct {
	down  locw.Writer
	fsm   state
	carry skip.State
}

// New wraps down, which will receive the CR-stripped byte stream.
func New(down locw.Writer) *CRStrip {
	return &CRStrip{down: down, carry: skip.Initial}
}

func (c *CRStrip) WriteLoc(at loc.Loc, p []byte) (int, error) {
	sk := skip.New(c.down, at, p, c.carry)

	for {
		b, ok := sk.Lookahead()
		if !ok {
			break
		}

		switch c.fsm {
		case stNormal:
			if b == '\r' {
				sk.BeginSkip()
				sk.Shift()
				c.fsm = stCR
			} else {
				sk.Shift()
			}

		case stCR:
			switch b {
			case '\r':
				if err := sk.CancelSkip(); err != nil {
					return 0, err
				}
				sk.BeginSkip()
				sk.Shift()
				// stays stCR: this CR might itself precede an LF
			case '\n':
				if err := sk.EndSkip(); err != nil {
					return 0, err
				}
				sk.Shift()
				c.fsm = stNormal
			default:
				if err := sk.CancelSkip(); err != nil {
					return 0, err
				}
				sk.Shift()
				c.fsm = stNormal
			}
		}
	}

	st, err := sk.SaveState()
	if err != nil {
		return 0, err
	}
	c.carry = st
	return len(p), nil
}

func (c *CRStrip) Flush(at loc.Loc) error {
	st, err := skip.WriteRemainder(c.down, c.carry)
	c.carry = st
	if err != nil {
		return err
	}
	return c.down.Flush(at)
}
