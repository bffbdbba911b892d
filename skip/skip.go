// Package skip implements the lookahead-and-elide helper used by
// transforms that sometimes drop bytes (CR-strip, line-unfold) without
// double-buffering the bytes they keep.
package skip

import (
	"fmt"

	"github.com/ivartj/ldiftools/loc"
	"github.com/ivartj/ldiftools/locw"
)

// maxPrefix is the largest number of bytes a Skipper may carry across a
// WriteLoc call boundary while a skip region is still undecided.
const maxPrefix = 4

// Kind identifies which variant of State is carried across calls.
type Kind int

const (
	// Writing: nothing pending, no open skip region.
	Writing Kind = iota
	// SkippingWithPrefix: a skip region is open and up to maxPrefix bytes
	// of it are held, undecided, from a previous WriteLoc call.
	SkippingWithPrefix
)

// State is what a Skipper-driven transform carries between WriteLoc calls.
type State struct {
	Kind      Kind
	Loc       loc.Loc // position of the first byte of the open region
	Prefix    [maxPrefix]byte
	PrefixLen int
}

// Initial is the state before any bytes have been seen.
var Initial = State{Kind: Writing}

// ErrTooLong is returned when an open skip region would exceed the
// 4-byte cross-buffer carry bound.
var ErrTooLong = fmt.Errorf("skipped data exceeds maximum")

// Skipper drives one WriteLoc call's worth of byte-by-byte scanning for
// a transform, forwarding kept bytes to Down and eliding skipped ones.
type Skipper struct {
	Down locw.Writer

	buf  []byte
	locs []loc.Loc // locs[i] == position of buf[i]; locs[len(buf)] == end

	pos       int // index of the next byte Lookahead will return
	writeFrom int // buf[writeFrom:X) is queued, not yet flushed, "keep" content

	open     bool    // true iff a skip region is currently open
	fromBuf  bool    // true iff the open region started inside buf (at skipFrom)
	skipFrom int     // valid iff open && fromBuf
	openLoc  loc.Loc // position of the first byte of the open region

	prefix    [maxPrefix]byte // carried bytes of the open region that precede buf
	prefixLen int             // valid iff open && !fromBuf
}

// New constructs a Skipper over one buffer, starting at base, resuming
// from a previously saved State.
func New(down locw.Writer, base loc.Loc, buf []byte, carried State) *Skipper {
	s := &Skipper{Down: down, buf: buf}

	s.locs = make([]loc.Loc, len(buf)+1)
	l := base
	s.locs[0] = l
	for i, b := range buf {
		l = l.After(b)
		s.locs[i+1] = l
	}

	if carried.Kind == SkippingWithPrefix {
		s.open = true
		s.fromBuf = false
		s.openLoc = carried.Loc
		s.prefixLen = copy(s.prefix[:], carried.Prefix[:carried.PrefixLen])
	}

	return s
}

func (s *Skipper) locAt(i int) loc.Loc {
	return s.locs[i]
}

// Lookahead returns the next unconsumed byte of buf without consuming it.
// ok is false once buf is exhausted.
func (s *Skipper) Lookahead() (b byte, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	return s.buf[s.pos], true
}

// Shift consumes the byte last returned by Lookahead.
func (s *Skipper) Shift() {
	s.pos++
}

// BeginSkip opens a new skip region starting at the current position.
// Only legal when no skip region is already open.
func (s *Skipper) BeginSkip() {
	if s.open {
		panic("skip: BeginSkip called with a region already open")
	}
	s.open = true
	s.fromBuf = true
	s.skipFrom = s.pos
	s.openLoc = s.locAt(s.pos)
}

// EndSkip commits the open region as dropped: the prefix (if any) and the
// in-buffer portion are discarded, and any content queued before the
// region is flushed to Down.
func (s *Skipper) EndSkip() error {
	if !s.open {
		return nil
	}
	if s.fromBuf && s.skipFrom > s.writeFrom {
		if err := s.flush(s.writeFrom, s.skipFrom); err != nil {
			return err
		}
	}
	s.writeFrom = s.pos
	s.open = false
	s.prefixLen = 0
	return nil
}

// CancelSkip reverses an open region: the carried prefix (if any) and
// everything queued since writeFrom, including the in-buffer portion of
// the region, is flushed to Down as ordinary kept content.
func (s *Skipper) CancelSkip() error {
	if !s.open {
		return nil
	}
	if s.prefixLen > 0 {
		if _, err := s.Down.WriteLoc(s.openLoc, s.prefix[:s.prefixLen]); err != nil {
			return err
		}
		s.prefixLen = 0
	}
	if s.pos > s.writeFrom {
		if err := s.flush(s.writeFrom, s.pos); err != nil {
			return err
		}
	}
	s.writeFrom = s.pos
	s.open = false
	return nil
}

// SaveState flushes any content that can be safely flushed and returns
// the State to carry into the next WriteLoc call. Call once buf is
// exhausted (Lookahead returns ok==false).
func (s *Skipper) SaveState() (State, error) {
	if !s.open {
		if err := s.flushRemainder(); err != nil {
			return State{}, err
		}
		return Initial, nil
	}

	if s.fromBuf && s.skipFrom > s.writeFrom {
		if err := s.flush(s.writeFrom, s.skipFrom); err != nil {
			return State{}, err
		}
	}

	var region []byte
	if s.fromBuf {
		region = s.buf[s.skipFrom:s.pos]
	} else {
		region = append(append([]byte(nil), s.prefix[:s.prefixLen]...), s.buf[:s.pos]...)
	}
	if len(region) > maxPrefix {
		return State{}, ErrTooLong
	}

	out := State{Kind: SkippingWithPrefix, Loc: s.openLoc}
	out.PrefixLen = copy(out.Prefix[:], region)
	return out, nil
}

// WriteRemainder is called from the owning transform's Flush (EOF): any
// still-carried, never-resolved prefix is treated as if CancelSkip had
// been called on EOF, since there is no more input to decide with.
func WriteRemainder(down locw.Writer, carried State) (State, error) {
	if carried.Kind != SkippingWithPrefix || carried.PrefixLen == 0 {
		return Initial, nil
	}
	if _, err := down.WriteLoc(carried.Loc, carried.Prefix[:carried.PrefixLen]); err != nil {
		return carried, err
	}
	return Initial, nil
}

func (s *Skipper) flush(from, to int) error {
	if to <= from {
		return nil
	}
	_, err := s.Down.WriteLoc(s.locAt(from), s.buf[from:to])
	return err
}

func (s *Skipper) flushRemainder() error {
	return s.flush(s.writeFrom, len(s.buf))
}
