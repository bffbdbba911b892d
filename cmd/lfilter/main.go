// Command lfilter is a grep-style LDAP search-filter matcher over an
// LDIF stream: entries that match the filter are written through
// unchanged, and the exit code reports whether anything matched.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/ivartj/ldiftools/entry"
	"github.com/ivartj/ldiftools/filter"
	"github.com/ivartj/ldiftools/ldifcfg"
	"github.com/ivartj/ldiftools/ldifpipe"
	"github.com/ivartj/ldiftools/write"
)

var (
	filterFlag = flag.String("filter", "", "LDAP search filter, e.g. (objectClass=person)")
	invert     = flag.Bool("v", false, "print entries that do NOT match, like grep -v")
	debug      = flag.Bool("debug", false, "enable debug logging")
	workers    = flag.Int("workers", 1, "number of goroutines evaluating the filter concurrently")
	configFlag = flag.String("config", "", "JSON config file supplying --filter when it is unset")
)

func main() {
	flag.Parse()
	matched, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lfilter: %s\n", err)
		os.Exit(2)
	}
	if !matched {
		os.Exit(1)
	}
}

func run() (matched bool, reterr error) {
	filterStr := *filterFlag
	if filterStr == "" && *configFlag != "" {
		data, err := os.ReadFile(*configFlag)
		if err != nil {
			return false, err
		}
		cfg, err := ldifcfg.LoadFile(data)
		if err != nil {
			return false, err
		}
		filterStr = cfg.Filter
	}
	if filterStr == "" {
		return false, fmt.Errorf("--filter: required argument missing")
	}
	f, err := filter.Parse(filterStr)
	if err != nil {
		return false, err
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if *workers <= 1 {
		return runSequential(f, out)
	}
	return runConcurrent(f, out, *workers)
}

// runSequential is the default single-threaded mode: the pipeline runs,
// and each entry is decided and (maybe) written before the next is
// assembled.
func runSequential(f *filter.Filter, out *bufio.Writer) (matched bool, reterr error) {
	p := ldifpipe.New(ldifpipe.Options{Logger: ldifcfg.NewLogger(*debug)}, func(e *entry.Entry) error {
		if filter.Match(f, e) == *invert {
			return nil
		}
		matched = true
		_, err := out.Write(write.Entry(nil, e))
		return err
	})
	if err := p.Read(os.Stdin); err != nil {
		return matched, err
	}
	return matched, nil
}

// runConcurrent fans filter evaluation for already-assembled entries out
// across workers goroutines sharing one cached filter.Eval, and writes
// results back in input order. The assembler itself still runs single
// threaded (the byte pipeline owns no concurrency); only this
// frontend-level "decide whether entry N matches" step is
// parallelized, which is why it needs entry.Entry gathered up front
// rather than interleaved with assembly.
func runConcurrent(f *filter.Filter, out *bufio.Writer, n int) (matched bool, reterr error) {
	var entries []*entry.Entry
	p := ldifpipe.New(ldifpipe.Options{Logger: ldifcfg.NewLogger(*debug)}, func(e *entry.Entry) error {
		entries = append(entries, e)
		return nil
	})
	if err := p.Read(os.Stdin); err != nil {
		return false, err
	}

	ev := filter.NewEval(true)
	results := make([]bool, len(entries))

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(n)
	for w := 0; w < n; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = ev.Run(f, entries[i]) != *invert
			}
		}()
	}
	for i := range entries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, keep := range results {
		if !keep {
			continue
		}
		matched = true
		if _, err := out.Write(write.Entry(nil, entries[i])); err != nil {
			return matched, err
		}
	}
	return matched, nil
}
