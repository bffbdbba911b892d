// Package unfold joins RFC 2849 folded continuation lines: an LF
// immediately followed by a SPACE is removed, re-attaching the
// continuation to the previous line.
package unfold

import (
	"github.com/ivartj/ldiftools/loc"
	"github.com/ivartj/ldiftools/locw"
	"github.com/ivartj/ldiftools/skip"
)

type state int

const (
	stText state = iota
	stNewline
)

// Unfold is a locw.Writer that removes "\n " continuation sequences and
// forwards everything else unchanged.
type Unfold struct {
	down  locw.Writer
	fsm   state
	carry skip.State
}

// New wraps down, which will receive the unfolded byte stream.
func New(down locw.Writer) *Unfold {
	return &Unfold{down: down, carry: skip.Initial}
}

func (u *Unfold) WriteLoc(at loc.Loc, p []byte) (int, error) {
	sk := skip.New(u.down, at, p, u.carry)

	for {
		b, ok := sk.Lookahead()
		if !ok {
			break
		}

		switch u.fsm {
		case stText:
			if b == '\n' {
				sk.BeginSkip()
				sk.Shift()
				u.fsm = stNewline
			} else {
				sk.Shift()
			}

		case stNewline:
			switch b {
			case ' ':
				// the LF and the SPACE both disappear
				sk.Shift()
				if err := sk.EndSkip(); err != nil {
					return 0, err
				}
				u.fsm = stText
			case '\n':
				// preserve the first LF, this one opens a fresh region
				if err := sk.CancelSkip(); err != nil {
					return 0, err
				}
				sk.BeginSkip()
				sk.Shift()
				// stays stNewline
			default:
				// preserve the first LF, it was not a fold
				if err := sk.CancelSkip(); err != nil {
					return 0, err
				}
				sk.Shift()
				u.fsm = stText
			}
		}
	}

	st, err := sk.SaveState()
	if err != nil {
		return 0, err
	}
	u.carry = st
	return len(p), nil
}

func (u *Unfold) Flush(at loc.Loc) error {
	st, err := skip.WriteRemainder(u.down, u.carry)
	u.carry = st
	if err != nil {
		return err
	}
	return u.down.Flush(at)
}
