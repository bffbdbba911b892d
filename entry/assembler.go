package entry

import (
	"strings"

	"github.com/ivartj/ldiftools/b64"
	"github.com/ivartj/ldiftools/token"
)

// preamble is the small state machine gating entries before and between
// real records: skip a leading "version:" line, and optionally drop any
// attribute group that doesn't start with "dn".
type preamble int

const (
	pStart preamble = iota
	pVersion
	pBeforeEntry
	pIgnoring
	pProcessing
)

// Sink receives one assembled Entry per completed record.
type Sink func(*Entry) error

// Assembler turns a token.Token stream into Entry values. It is not
// safe for concurrent use.
type Assembler struct {
	sink            Sink
	wanted          map[string]bool // nil means "all attributes"
	fixed           []string        // original attrs, for NewFixed on each new entry
	ignoreWithoutDN bool

	pst preamble
	cur *Entry

	attrLower   string
	attrDisplay string
	skipValue   bool

	valBuf   []byte
	decState b64.DecodeState
}

// Options configures an Assembler.
type Options struct {
	// Attributes, if non-empty, switches the assembler to fixed-attribute
	// mode: only these attributes (case-insensitive) are recorded, and
	// every emitted Entry has an entry (possibly empty) for each.
	Attributes []string
	// IgnoreEntriesWithoutDN drops any attribute group whose first
	// attribute is not "dn", used to discard ldapsearch result metadata.
	IgnoreEntriesWithoutDN bool
}

// NewAssembler returns an Assembler that calls sink with each completed Entry.
func NewAssembler(opts Options, sink Sink) *Assembler {
	a := &Assembler{sink: sink, ignoreWithoutDN: opts.IgnoreEntriesWithoutDN, pst: pStart}
	if len(opts.Attributes) > 0 {
		a.fixed = opts.Attributes
		a.wanted = make(map[string]bool, len(opts.Attributes))
		for _, attr := range opts.Attributes {
			a.wanted[strings.ToLower(attr)] = true
		}
	}
	return a
}

func (a *Assembler) newEntry() *Entry {
	if a.fixed != nil {
		return NewFixed(a.fixed)
	}
	return New()
}

// Token feeds one token.Token into the assembler. It satisfies the
// token.Sink signature and is the function to pass to a lexer.
func (a *Assembler) Token(tok token.Token) error {
	switch tok.Kind {
	case token.AttributeType:
		return a.attributeType(tok)
	case token.ValueText:
		if a.skipValue {
			return nil
		}
		a.valBuf = append(a.valBuf, tok.Segment...)
		return nil
	case token.ValueBase64:
		if a.skipValue {
			return nil
		}
		var err error
		a.decState, a.valBuf, err = b64.Decode(a.decState, tok.Segment, a.valBuf)
		return err
	case token.ValueFinish:
		return a.valueFinish()
	case token.EntryFinish:
		return a.entryFinish()
	default:
		return nil
	}
}

func (a *Assembler) attributeType(tok token.Token) error {
	name := string(tok.Segment)
	lower := strings.ToLower(name)

	switch a.pst {
	case pStart:
		if lower == "version" {
			a.pst = pVersion
			a.skipValue = true
			return nil
		}
		a.beginEntry(lower, name)

	case pBeforeEntry:
		a.beginEntry(lower, name)

	case pIgnoring:
		a.skipValue = true

	case pProcessing:
		a.attrLower, a.attrDisplay = lower, name
		a.skipValue = a.wanted != nil && !a.wanted[lower]
	}
	return nil
}

// beginEntry decides, from the first attribute of a new group, whether
// to build a real Entry or to drop the whole group.
func (a *Assembler) beginEntry(lower, display string) {
	if a.ignoreWithoutDN && lower != "dn" {
		a.pst = pIgnoring
		a.skipValue = true
		return
	}
	a.cur = a.newEntry()
	a.pst = pProcessing
	a.attrLower, a.attrDisplay = lower, display
	a.skipValue = a.wanted != nil && !a.wanted[lower]
}

func (a *Assembler) valueFinish() error {
	if !a.skipValue {
		if err := b64.DecodeFlush(a.decState); err != nil {
			return err
		}
		val := append([]byte(nil), a.valBuf...)
		a.cur.Add(a.attrLower, a.attrDisplay, val)
	}
	a.valBuf = a.valBuf[:0]
	a.decState = b64.DecodeState{}

	if a.pst == pVersion {
		a.pst = pBeforeEntry
		a.skipValue = false
	}
	return nil
}

func (a *Assembler) entryFinish() error {
	switch a.pst {
	case pProcessing:
		e := a.cur
		a.cur = nil
		a.pst = pBeforeEntry
		return a.sink(e)
	case pIgnoring:
		a.pst = pBeforeEntry
	}
	return nil
}
