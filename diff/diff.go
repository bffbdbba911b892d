// Package diff computes the LDIF changerecord stream that transforms
// one sorted sequence of entries into another.
package diff

import (
	"bytes"
	"sort"
	"strings"

	"github.com/ivartj/ldiftools/entry"
)

// ModOp is the kind of operation within a Modify changerecord.
type ModOp int

const (
	ModAdd ModOp = iota
	ModDelete
	ModReplace
)

// Mod is one operation of a Modify change.
type Mod struct {
	Op     ModOp
	Attr   string // original-case display name
	Values [][]byte
}

// ChangeKind is the kind of changerecord a Change represents.
type ChangeKind int

const (
	ChangeAdd ChangeKind = iota
	ChangeDelete
	ChangeModify
)

// Change is one changerecord: an Add carries Entry (the new record), a
// Delete needs only DN, a Modify carries Mods.
type Change struct {
	Kind  ChangeKind
	DN    []byte
	Entry *entry.Entry // set for ChangeAdd
	Mods  []Mod        // set for ChangeModify
}

// Options configures attribute gating for Compare.
type Options struct {
	// Attrs, if non-empty, restricts which attributes participate in a
	// Modify diff: an allow list, or (with Invert) a deny list.
	Attrs  []string
	Invert bool
	// Defer names attributes whose Modify ops (after allow/deny gating)
	// are pulled out of their entry's ordinary Modify change and
	// returned instead as separate Changes appended at the very end of
	// Compare's result, so referential-integrity attributes (e.g. group
	// membership) are only touched once every entry they might
	// reference has already been added.
	Defer []string
}

// Compare merges old and new (sorted or not — Compare sorts defensively
// by DN, case-insensitively, shortest first) and returns the
// changerecord stream that turns old into new.
//
// Order: Adds (shallowest DN first), then Modifies, then Deletes
// (deepest DN first, so a child is always removed before its parent),
// then deferred Modifies last.
func Compare(old, new []*entry.Entry, opts Options) []Change {
	oldSorted := sortedByDN(old)
	newSorted := sortedByDN(new)

	allow := toLowerSet(opts.Attrs)
	defer_ := toLowerSet(opts.Defer)

	var adds, modifies, deletes, deferred []Change

	i, j := 0, 0
	for i < len(oldSorted) && j < len(newSorted) {
		oldDN, _ := oldSorted[i].DN()
		newDN, _ := newSorted[j].DN()
		switch cmpDN(oldDN, newDN) {
		case 0:
			imm, def := modifyOps(oldSorted[i], newSorted[j], allow, opts.Invert, defer_)
			if len(imm) > 0 {
				modifies = append(modifies, Change{Kind: ChangeModify, DN: newDN, Mods: imm})
			}
			if len(def) > 0 {
				deferred = append(deferred, Change{Kind: ChangeModify, DN: newDN, Mods: def})
			}
			i++
			j++
		case -1:
			deletes = append(deletes, Change{Kind: ChangeDelete, DN: oldDN})
			i++
		case 1:
			adds = append(adds, Change{Kind: ChangeAdd, DN: newDN, Entry: newSorted[j]})
			j++
		}
	}
	for ; i < len(oldSorted); i++ {
		dn, _ := oldSorted[i].DN()
		deletes = append(deletes, Change{Kind: ChangeDelete, DN: dn})
	}
	for ; j < len(newSorted); j++ {
		dn, _ := newSorted[j].DN()
		adds = append(adds, Change{Kind: ChangeAdd, DN: dn, Entry: newSorted[j]})
	}

	sort.SliceStable(deletes, func(a, b int) bool {
		return cmpDN(deletes[a].DN, deletes[b].DN) > 0
	})

	out := make([]Change, 0, len(adds)+len(modifies)+len(deletes)+len(deferred))
	out = append(out, adds...)
	out = append(out, modifies...)
	out = append(out, deletes...)
	out = append(out, deferred...)
	return out
}

func modifyOps(old, new *entry.Entry, allow map[string]bool, invert bool, defer_ map[string]bool) (immediate, deferredMods []Mod) {
	for _, attr := range unionAttrs(old, new) {
		if attr == "dn" {
			continue
		}
		if !gated(attr, allow, invert) {
			continue
		}

		oldVals := old.Values(attr)
		newVals := new.Values(attr)
		if multisetEqual(oldVals, newVals) {
			continue
		}

		display := old.DisplayName(attr)
		if display == attr {
			display = new.DisplayName(attr)
		}

		var mods []Mod
		if len(oldVals) == 1 && len(newVals) == 1 {
			mods = []Mod{{Op: ModReplace, Attr: display, Values: newVals}}
		} else {
			delVals, addVals := multisetDiff(oldVals, newVals)
			if len(delVals) > 0 {
				mods = append(mods, Mod{Op: ModDelete, Attr: display, Values: delVals})
			}
			if len(addVals) > 0 {
				mods = append(mods, Mod{Op: ModAdd, Attr: display, Values: addVals})
			}
		}

		if defer_[attr] {
			deferredMods = append(deferredMods, mods...)
		} else {
			immediate = append(immediate, mods...)
		}
	}
	return immediate, deferredMods
}

func gated(attr string, allow map[string]bool, invert bool) bool {
	if len(allow) == 0 {
		return true
	}
	in := allow[attr]
	if invert {
		return !in
	}
	return in
}

func unionAttrs(old, new *entry.Entry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range old.Attributes() {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	for _, a := range new.Attributes() {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	sort.Strings(out)
	return out
}

func multisetEqual(a, b [][]byte) bool {
	del, add := multisetDiff(a, b)
	return len(del) == 0 && len(add) == 0
}

// multisetDiff computes, order-preserving, the values present in a but
// not (fully) matched in b, and vice versa, accounting for duplicates.
func multisetDiff(a, b [][]byte) (onlyInA, onlyInB [][]byte) {
	countA := tally(a)
	countB := tally(b)

	need := make(map[string]int, len(countA))
	for k, n := range countA {
		if d := n - countB[k]; d > 0 {
			need[k] = d
		}
	}
	for _, v := range a {
		k := string(v)
		if need[k] > 0 {
			onlyInA = append(onlyInA, v)
			need[k]--
		}
	}

	need = make(map[string]int, len(countB))
	for k, n := range countB {
		if d := n - countA[k]; d > 0 {
			need[k] = d
		}
	}
	for _, v := range b {
		k := string(v)
		if need[k] > 0 {
			onlyInB = append(onlyInB, v)
			need[k]--
		}
	}
	return onlyInA, onlyInB
}

func tally(vs [][]byte) map[string]int {
	m := make(map[string]int, len(vs))
	for _, v := range vs {
		m[string(v)]++
	}
	return m
}

func toLowerSet(attrs []string) map[string]bool {
	if len(attrs) == 0 {
		return nil
	}
	m := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		m[strings.ToLower(a)] = true
	}
	return m
}

func sortedByDN(entries []*entry.Entry) []*entry.Entry {
	out := append([]*entry.Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i].DN()
		b, _ := out[j].DN()
		return cmpDN(a, b) < 0
	})
	return out
}

// cmpDN orders DNs case-insensitively, shorter first. This makes ascending order a natural parent-before-child order and
// descending order child-before-parent, which Compare relies on for
// delete ordering.
func cmpDN(a, b []byte) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return bytes.Compare(bytes.ToLower(a), bytes.ToLower(b))
}
