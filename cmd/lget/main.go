// Command lget extracts one or more attributes from an LDIF stream as
// raw, TSV, CSV, or JSON output.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ivartj/ldiftools/attrspec"
	"github.com/ivartj/ldiftools/entry"
	"github.com/ivartj/ldiftools/ldifcfg"
	"github.com/ivartj/ldiftools/ldifpipe"
	"github.com/ivartj/ldiftools/write"
)

var (
	attrFlag   = flag.String("attr", "", "comma-separated attribute specs: attr(.filter)*(:-default)?")
	format     = flag.String("format", "raw", "output format: raw, tsv, csv, or json")
	nullFlag   = flag.Bool("null", false, "use NUL instead of LF as the raw/tsv row delimiter")
	ignoreNoDN = flag.Bool("ignore-no-dn", false, "drop entries without a dn")
	configFlag = flag.String("config", "", "JSON config file overlaying --attr")
	verbose    = flag.Bool("v", false, "enable debug logging")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lget: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	specStrs := splitNonEmpty(*attrFlag)
	var cfg ldifcfg.File
	if *configFlag != "" {
		data, err := os.ReadFile(*configFlag)
		if err != nil {
			return err
		}
		cfg, err = ldifcfg.LoadFile(data)
		if err != nil {
			return err
		}
		specStrs = append(specStrs, cfg.Attributes...)
	}
	if err := ldifcfg.Required("--attr", strings.Join(specStrs, "")); err != nil {
		return err
	}

	specs := make([]*attrspec.Spec, 0, len(specStrs))
	names := make([]string, 0, len(specStrs))
	attrs := make([]string, 0, len(specStrs))
	for _, s := range specStrs {
		sp, err := attrspec.Parse(s)
		if err != nil {
			return err
		}
		if v, ok := cfg.Defaults[sp.Lower]; ok {
			if err := sp.ApplyConfigDefault(v); err != nil {
				return err
			}
		}
		specs = append(specs, sp)
		names = append(names, sp.Attribute)
		attrs = append(attrs, sp.Attribute)
	}

	if *format == "raw" && len(specs) != 1 {
		return fmt.Errorf("--format=raw requires exactly one --attr")
	}

	delim := byte('\n')
	if *nullFlag {
		delim = 0
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if *format == "csv" {
		out.Write(write.CSVHeader(nil, names))
	}

	p := ldifpipe.New(ldifpipe.Options{
		Attributes:             attrs,
		IgnoreEntriesWithoutDN: *ignoreNoDN,
		Logger:                 ldifcfg.NewLogger(*verbose),
	}, func(e *entry.Entry) error {
		cols := make([][][]byte, len(specs))
		for i, sp := range specs {
			cols[i] = sp.Apply(e.Values(sp.Lower))
		}

		var buf []byte
		switch *format {
		case "raw":
			buf = write.Raw(buf, cols[0], delim)
		case "tsv":
			buf = write.TSV(buf, cols, delim)
		case "csv":
			buf = write.CSVRows(buf, cols)
		case "json":
			buf = write.JSONObject(buf, names, cols)
			buf = append(buf, '\n')
		default:
			return fmt.Errorf("unknown --format %q", *format)
		}
		_, err := out.Write(buf)
		return err
	})

	return p.Read(os.Stdin)
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
