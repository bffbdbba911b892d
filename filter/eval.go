package filter

import (
	"bytes"

	"github.com/ivartj/ldiftools/entry"
	"github.com/puzpuzpuz/xsync/v3"
)

// Eval evaluates a compiled Filter against an entry.Entry.
//
// A shared Eval (with a cache) may be used concurrently across
// goroutines evaluating the same Filter tree against different
// entries — see cmd/lfilter's worker-pool mode — because the cache
// key includes the Entry pointer and xsync.MapOf is safe for
// concurrent use.
type Eval struct {
	cache *xsync.MapOf[cacheKey, bool]
}

type cacheKey struct {
	f *Filter
	e *entry.Entry
}

// NewEval returns an Eval. useCache enables a shared result cache keyed
// by (Filter, Entry) pointer identity, useful when the same filter tree
// is evaluated against many entries by several goroutines at once.
func NewEval(useCache bool) *Eval {
	ev := &Eval{}
	if useCache {
		ev.cache = xsync.NewMapOf[cacheKey, bool]()
	}
	return ev
}

// Run reports whether e matches f.
func (ev *Eval) Run(f *Filter, e *entry.Entry) bool {
	if ev.cache == nil {
		return match(f, e)
	}
	key := cacheKey{f: f, e: e}
	if res, ok := ev.cache.Load(key); ok {
		return res
	}
	res := match(f, e)
	ev.cache.Store(key, res)
	return res
}

// Match reports whether e matches f, with no caching. Most callers
// without a worker-pool fan-out can use this directly.
func Match(f *Filter, e *entry.Entry) bool {
	return match(f, e)
}

func match(f *Filter, e *entry.Entry) bool {
	switch f.Kind {
	case KindAnd:
		for _, c := range f.Children {
			if !match(c, e) {
				return false
			}
		}
		return true

	case KindOr:
		for _, c := range f.Children {
			if match(c, e) {
				return true
			}
		}
		return false

	case KindNot:
		return !match(f.Child, e)

	case KindPresent:
		return e.Has(f.Attr)

	case KindSimple:
		for _, v := range e.Values(f.Attr) {
			if bytes.Equal(toLower(v), f.Value) {
				return true
			}
		}
		return false

	case KindSubstring:
		for _, v := range e.Values(f.Attr) {
			if matchGlob(f.Glob, v) {
				return true
			}
		}
		return false

	default:
		return false
	}
}
