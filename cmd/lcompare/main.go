// Command lcompare diffs two LDIF files and writes the changerecord
// stream that transforms the first into the second.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ivartj/ldiftools/diff"
	"github.com/ivartj/ldiftools/entry"
	"github.com/ivartj/ldiftools/ldifcfg"
	"github.com/ivartj/ldiftools/ldifpipe"
	"github.com/ivartj/ldiftools/write"
	"github.com/rs/zerolog"
)

var (
	attrFlag   = flag.String("attr", "", "comma-separated attribute allow (or, with -invert, deny) list")
	invert     = flag.Bool("invert", false, "treat --attr as a deny list instead of an allow list")
	deferFlag  = flag.String("defer", "", "comma-separated attributes whose modifies are emitted last")
	force      = flag.Bool("force", false, "allow emitting delete changerecords")
	configFlag = flag.String("config", "", "JSON config file overlaying --attr")
	verbose    = flag.Bool("v", false, "enable debug logging")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lcompare: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	if flag.NArg() != 2 {
		return fmt.Errorf("usage: lcompare [options] old.ldif new.ldif")
	}

	attrs := splitNonEmpty(*attrFlag)
	if *configFlag != "" {
		data, err := os.ReadFile(*configFlag)
		if err != nil {
			return err
		}
		cfg, err := ldifcfg.LoadFile(data)
		if err != nil {
			return err
		}
		attrs = append(attrs, cfg.Attributes...)
	}
	if *invert && len(attrs) == 0 {
		return &ldifcfg.ConfigError{Msg: "--invert: meaningless without --attr/--config"}
	}

	log := ldifcfg.NewLogger(*verbose)
	oldEntries, err := readAll(flag.Arg(0), log)
	if err != nil {
		return err
	}
	newEntries, err := readAll(flag.Arg(1), log)
	if err != nil {
		return err
	}

	changes := diff.Compare(oldEntries, newEntries, diff.Options{
		Attrs:  attrs,
		Invert: *invert,
		Defer:  splitNonEmpty(*deferFlag),
	})

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for _, c := range changes {
		if c.Kind == diff.ChangeDelete && !*force {
			// refuse destructive output unless asked for, but leave a
			// trace in the stream so the omission is visible
			fmt.Fprintf(out, "# skipped (use --force): delete %s\n\n", c.DN)
			log.Warn().Bytes("dn", c.DN).Msg("delete changerecord skipped without --force")
			continue
		}
		if _, err := out.Write(write.Changerecord(nil, c)); err != nil {
			return err
		}
	}
	return nil
}

func readAll(path string, log *zerolog.Logger) ([]*entry.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []*entry.Entry
	p := ldifpipe.New(ldifpipe.Options{Logger: log}, func(e *entry.Entry) error {
		entries = append(entries, e)
		return nil
	})
	if err := p.Read(f); err != nil {
		return nil, err
	}
	return entries, nil
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
