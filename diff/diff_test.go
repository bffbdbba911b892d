package diff

import (
	"testing"

	"github.com/ivartj/ldiftools/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkEntry(dn string, attrs ...[2]string) *entry.Entry {
	e := entry.New()
	e.Add("dn", "dn", []byte(dn))
	for _, a := range attrs {
		e.Add(a[0], a[0], []byte(a[1]))
	}
	return e
}

func TestCompareReplaceSingleValue(t *testing.T) {
	old := []*entry.Entry{mkEntry("cn=bob,ou=people", [2]string{"cn", "foo"})}
	new_ := []*entry.Entry{mkEntry("cn=bob,ou=people", [2]string{"cn", "bar"})}

	changes := Compare(old, new_, Options{})
	require.Len(t, changes, 1)
	c := changes[0]
	assert.Equal(t, ChangeModify, c.Kind)
	require.Len(t, c.Mods, 1)
	assert.Equal(t, ModReplace, c.Mods[0].Op)
	assert.Equal(t, "cn", c.Mods[0].Attr)
	assert.Equal(t, [][]byte{[]byte("bar")}, c.Mods[0].Values)
}

func TestCompareMultiValuedDeleteThenAdd(t *testing.T) {
	oldEntry := entry.New()
	oldEntry.Add("dn", "dn", []byte("cn=bob,ou=people"))
	oldEntry.Add("cn", "cn", []byte("a"))
	oldEntry.Add("cn", "cn", []byte("b"))

	newEntry := entry.New()
	newEntry.Add("dn", "dn", []byte("cn=bob,ou=people"))
	newEntry.Add("cn", "cn", []byte("a"))
	newEntry.Add("cn", "cn", []byte("c"))

	changes := Compare([]*entry.Entry{oldEntry}, []*entry.Entry{newEntry}, Options{})
	require.Len(t, changes, 1)
	require.Len(t, changes[0].Mods, 2)
	assert.Equal(t, ModDelete, changes[0].Mods[0].Op)
	assert.Equal(t, [][]byte{[]byte("b")}, changes[0].Mods[0].Values)
	assert.Equal(t, ModAdd, changes[0].Mods[1].Op)
	assert.Equal(t, [][]byte{[]byte("c")}, changes[0].Mods[1].Values)
}

func TestCompareAddAndDelete(t *testing.T) {
	old := []*entry.Entry{mkEntry("cn=gone,ou=people")}
	new_ := []*entry.Entry{mkEntry("cn=fresh,ou=people")}

	changes := Compare(old, new_, Options{})
	require.Len(t, changes, 2)
	assert.Equal(t, ChangeAdd, changes[0].Kind)
	assert.Equal(t, []byte("cn=fresh,ou=people"), changes[0].DN)
	assert.Equal(t, ChangeDelete, changes[1].Kind)
	assert.Equal(t, []byte("cn=gone,ou=people"), changes[1].DN)
}

func TestCompareDeleteOrderIsDeepestFirst(t *testing.T) {
	old := []*entry.Entry{
		mkEntry("ou=people"),
		mkEntry("cn=bob,ou=people"),
	}
	changes := Compare(old, nil, Options{})
	require.Len(t, changes, 2)
	assert.Equal(t, []byte("cn=bob,ou=people"), changes[0].DN)
	assert.Equal(t, []byte("ou=people"), changes[1].DN)
}

func TestCompareInvertAndDeferInteraction(t *testing.T) {
	old := entry.New()
	old.Add("dn", "dn", []byte("cn=bob,ou=people"))
	old.Add("member", "member", []byte("cn=a"))
	old.Add("description", "description", []byte("x"))

	new_ := entry.New()
	new_.Add("dn", "dn", []byte("cn=bob,ou=people"))
	new_.Add("member", "member", []byte("cn=b"))
	new_.Add("description", "description", []byte("y"))

	// Invert turns the explicit "description" allow-list into a deny
	// list, so only "member" passes the gate; "member" is also in the
	// defer list, so its mod must be deferred rather than dropped.
	opts := Options{
		Attrs:  []string{"description"},
		Invert: true,
		Defer:  []string{"member"},
	}
	changes := Compare([]*entry.Entry{old}, []*entry.Entry{new_}, opts)
	require.Len(t, changes, 1)
	c := changes[0]
	assert.Equal(t, ChangeModify, c.Kind)
	require.Len(t, c.Mods, 1)
	assert.Equal(t, "member", c.Mods[0].Attr)
	assert.Equal(t, ModReplace, c.Mods[0].Op)
	assert.Equal(t, [][]byte{[]byte("cn=b")}, c.Mods[0].Values)
}

func TestCompareNoChanges(t *testing.T) {
	old := []*entry.Entry{mkEntry("cn=bob,ou=people", [2]string{"cn", "bob"})}
	new_ := []*entry.Entry{mkEntry("cn=bob,ou=people", [2]string{"cn", "bob"})}
	assert.Empty(t, Compare(old, new_, Options{}))
}
