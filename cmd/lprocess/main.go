// Command lprocess pipes one attribute's values, one at a time, through
// an external process and writes the entry back out with that
// attribute's values replaced by the process's output.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ivartj/ldiftools/entry"
	"github.com/ivartj/ldiftools/ldifcfg"
	"github.com/ivartj/ldiftools/ldifpipe"
	"github.com/ivartj/ldiftools/write"
)

var (
	attrFlag = flag.String("attr", "", "attribute whose values are piped through the command")
	verbose  = flag.Bool("v", false, "enable debug logging")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lprocess: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *attrFlag == "" {
		return fmt.Errorf("--attr: required argument missing")
	}
	args := flag.Args()
	if len(args) == 0 {
		return fmt.Errorf("usage: lprocess --attr NAME -- command [args...]")
	}
	lower := strings.ToLower(*attrFlag)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	p := ldifpipe.New(ldifpipe.Options{Logger: ldifcfg.NewLogger(*verbose)}, func(e *entry.Entry) error {
		buf, err := writeEntryWithProcessedAttr(e, lower, args)
		if err != nil {
			return err
		}
		_, err = out.Write(buf)
		return err
	})

	return p.Read(os.Stdin)
}

func writeEntryWithProcessedAttr(e *entry.Entry, lower string, args []string) ([]byte, error) {
	dn, _ := e.DN()
	buf := write.AttrVal(nil, "dn", dn)

	for _, attr := range e.Attributes() {
		if attr == "dn" {
			continue
		}
		name := e.DisplayName(attr)
		values := e.Values(attr)
		if attr == lower {
			for _, v := range values {
				processed, err := pipeThrough(args, v)
				if err != nil {
					return nil, err
				}
				buf = write.AttrVal(buf, name, processed)
			}
			continue
		}
		for _, v := range values {
			buf = write.AttrVal(buf, name, v)
		}
	}

	return append(buf, '\n'), nil
}

func pipeThrough(args []string, input []byte) ([]byte, error) {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = bytes.NewReader(input)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w", args[0], err)
	}
	return bytes.TrimRight(stdout.Bytes(), "\n"), nil
}
