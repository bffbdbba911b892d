// Package ldifpipe wires the location-tracking byte stages
// (crstrip, unfold, the LDIF lexer) to the entry assembler, the way
// every CLI frontend wants to consume an LDIF stream: bytes in,
// *entry.Entry out.
package ldifpipe

import (
	"io"

	"github.com/ivartj/ldiftools/crstrip"
	"github.com/ivartj/ldiftools/entry"
	"github.com/ivartj/ldiftools/lexer"
	"github.com/ivartj/ldiftools/loc"
	"github.com/ivartj/ldiftools/locw"
	"github.com/ivartj/ldiftools/unfold"
	"github.com/rs/zerolog"
)

// Options configures a Pipeline.
type Options struct {
	// Attributes restricts the assembler to a fixed attribute set; nil
	// means "assemble every attribute" (entry.New mode).
	Attributes []string
	// IgnoreEntriesWithoutDN drops every attribute group whose first
	// attribute is not "dn".
	IgnoreEntriesWithoutDN bool
	// Logger receives per-entry debug output; nil defaults to
	// zerolog.Nop(), so every pipeline always has a usable *Logger.
	Logger *zerolog.Logger
}

// Pipeline reads raw LDIF bytes and delivers assembled entries to Sink.
type Pipeline struct {
	*zerolog.Logger

	down locw.Writer // crstrip -> unfold -> lexer -> assembler
	n    int64
}

// Sink receives one assembled entry at a time, in stream order.
type Sink func(*entry.Entry) error

// New builds a Pipeline that calls sink for each assembled entry.
func New(opts Options, sink Sink) *Pipeline {
	p := &Pipeline{}
	p.apply(&opts)

	count := func(e *entry.Entry) error {
		p.n++
		p.Logger.Debug().Int64("n", p.n).Msg("entry assembled")
		return sink(e)
	}

	asm := entry.NewAssembler(entry.Options{
		Attributes:             opts.Attributes,
		IgnoreEntriesWithoutDN: opts.IgnoreEntriesWithoutDN,
	}, count)

	lx := lexer.New(asm.Token)
	uf := unfold.New(lx)
	p.down = crstrip.New(uf)

	return p
}

func (p *Pipeline) apply(opts *Options) {
	if opts.Logger != nil {
		p.Logger = opts.Logger
	} else {
		l := zerolog.Nop()
		p.Logger = &l
	}
}

// Read drives the pipeline from r until EOF, tracking Loc across reads.
func (p *Pipeline) Read(r io.Reader) error {
	buf := make([]byte, 64*1024)
	at := loc.Start()
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if _, werr := p.down.WriteLoc(at, chunk); werr != nil {
				return werr
			}
			at = at.Advance(chunk)
		}
		if err == io.EOF {
			return p.down.Flush(at)
		}
		if err != nil {
			return err
		}
	}
}
