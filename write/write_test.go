package write

import (
	"bytes"
	"testing"

	"github.com/ivartj/ldiftools/diff"
	"github.com/ivartj/ldiftools/entry"
	"github.com/ivartj/ldiftools/ldifpipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrValSafeString(t *testing.T) {
	out := AttrVal(nil, "cn", []byte("admin"))
	assert.Equal(t, "cn: admin\n", string(out))
}

func TestAttrValForcesBase64(t *testing.T) {
	out := AttrVal(nil, "sn", []byte{0xFF, 0x00})
	assert.Equal(t, "sn:: /wA=\n", string(out))
}

func TestAttrValLeadingSpaceForcesBase64(t *testing.T) {
	out := AttrVal(nil, "cn", []byte(" admin"))
	assert.Equal(t, "cn:: IGFkbWlu\n", string(out))
}

func TestAttrValInteriorSpaceForcesBase64(t *testing.T) {
	out := AttrVal(nil, "cn", []byte("John Doe"))
	assert.Equal(t, "cn:: Sm9obiBEb2U=\n", string(out))
}

func TestEntryWritesDNFirst(t *testing.T) {
	e := entry.New()
	e.Add("dn", "dn", []byte("cn=bob,ou=people"))
	e.Add("cn", "cn", []byte("bob"))
	out := Entry(nil, e)
	assert.Equal(t, "dn: cn=bob,ou=people\ncn: bob\n\n", string(out))
}

// Writing an entry as LDIF and parsing it back must reproduce the same
// values per attribute, including the ones forced through base64.
func TestEntryRoundTrip(t *testing.T) {
	e := entry.New()
	e.Add("dn", "dn", []byte("cn=bob,ou=people"))
	e.Add("cn", "cn", []byte("bob"))
	e.Add("sn", "sn", []byte{0xFF, 0x01})
	e.Add("description", "description", []byte("two words"))

	var got []*entry.Entry
	p := ldifpipe.New(ldifpipe.Options{}, func(e *entry.Entry) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, p.Read(bytes.NewReader(Entry(nil, e))))
	require.Len(t, got, 1)
	for _, attr := range e.Attributes() {
		assert.Equal(t, e.Values(attr), got[0].Values(attr), attr)
	}
}

func TestRawTerminatesEachValue(t *testing.T) {
	out := Raw(nil, [][]byte{[]byte("a"), []byte("b")}, '\n')
	assert.Equal(t, "a\nb\n", string(out))

	out = Raw(nil, [][]byte{[]byte("a"), []byte("b")}, 0)
	assert.Equal(t, "a\x00b\x00", string(out))
}

func TestTSVCartesianProduct(t *testing.T) {
	cols := [][][]byte{
		{[]byte("a"), []byte("b")},
		{[]byte("x"), []byte("y")},
	}
	out := TSV(nil, cols, '\n')
	assert.Equal(t, "a\tx\na\ty\nb\tx\nb\ty\n", string(out))
}

func TestCSVQuotesAndDoublesQuotes(t *testing.T) {
	out := CSVRows(nil, [][][]byte{{[]byte(`say "hi"`)}})
	assert.Equal(t, "\"say \"\"hi\"\"\"\r\n", string(out))
}

func TestCSVHeader(t *testing.T) {
	out := CSVHeader(nil, []string{"cn", "sn"})
	assert.Equal(t, "cn,sn\r\n", string(out))
}

func TestJSONObjectEscapesAndUTF16(t *testing.T) {
	out := JSONObject(nil, []string{"cn"}, [][][]byte{{[]byte("héllo\n")}})
	assert.Equal(t, "{\"cn\":[\"h\\u00e9llo\\n\"]}", string(out))
}

func TestJSONObjectAstralSurrogatePair(t *testing.T) {
	out := jsonString(nil, []byte("😀"))
	assert.Equal(t, "\"\\ud83d\\ude00\"", string(out))
}

func TestChangerecordModify(t *testing.T) {
	c := diff.Change{
		Kind: diff.ChangeModify,
		DN:   []byte("cn=bob,ou=people"),
		Mods: []diff.Mod{
			{Op: diff.ModReplace, Attr: "cn", Values: [][]byte{[]byte("bob2")}},
		},
	}
	out := Changerecord(nil, c)
	assert.Equal(t, "dn: cn=bob,ou=people\nchangetype: modify\nreplace: cn\ncn: bob2\n-\n\n", string(out))
}

func TestChangerecordDelete(t *testing.T) {
	c := diff.Change{Kind: diff.ChangeDelete, DN: []byte("cn=bob,ou=people")}
	out := Changerecord(nil, c)
	assert.Equal(t, "dn: cn=bob,ou=people\nchangetype: delete\n\n", string(out))
}
