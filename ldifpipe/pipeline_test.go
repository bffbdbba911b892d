package ldifpipe

import (
	"strings"
	"testing"
	"testing/iotest"

	"github.com/ivartj/ldiftools/crstrip"
	"github.com/ivartj/ldiftools/entry"
	"github.com/ivartj/ldiftools/loc"
	"github.com/ivartj/ldiftools/unfold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineAssemblesEntries(t *testing.T) {
	input := "dn: cn=admin,dc=example,dc=com\ncn: admin\nsn:: bmljZQ==\n\ndn: cn=bob\n"

	var got []*entry.Entry
	p := New(Options{}, func(e *entry.Entry) error {
		got = append(got, e)
		return nil
	})

	require.NoError(t, p.Read(strings.NewReader(input)))
	require.Len(t, got, 2)

	dn, ok := got[0].DN()
	require.True(t, ok)
	assert.Equal(t, "cn=admin,dc=example,dc=com", string(dn))
	assert.Equal(t, [][]byte{[]byte("admin")}, got[0].Values("cn"))
	assert.Equal(t, [][]byte{[]byte("nice")}, got[0].Values("sn"))

	dn2, ok := got[1].DN()
	require.True(t, ok)
	assert.Equal(t, "cn=bob", string(dn2))
}

type locCapture struct {
	segs []struct {
		at loc.Loc
		b  []byte
	}
}

func (c *locCapture) WriteLoc(at loc.Loc, p []byte) (int, error) {
	c.segs = append(c.segs, struct {
		at loc.Loc
		b  []byte
	}{at, append([]byte(nil), p...)})
	return len(p), nil
}

func (c *locCapture) Flush(loc.Loc) error { return nil }

// The chained byte stages must report, for every forwarded byte, the
// position that byte had in the raw input before any CR or fold was
// removed.
func TestCRStripUnfoldPreservesOriginalLocs(t *testing.T) {
	var c locCapture
	head := crstrip.New(unfold.New(&c))

	input := []byte("a\r\n b\r\n\r\nc")
	_, err := head.WriteLoc(loc.Start(), input)
	require.NoError(t, err)
	require.NoError(t, head.Flush(loc.Start().Advance(input)))

	var out []byte
	locOf := map[byte]loc.Loc{}
	for _, seg := range c.segs {
		at := seg.at
		for _, b := range seg.b {
			out = append(out, b)
			locOf[b] = at
			at = at.After(b)
		}
	}
	assert.Equal(t, "ab\n\nc", string(out))
	assert.Equal(t, loc.Loc{Line: 2, Column: 2, Offset: 4}, locOf['b'])
}

func TestPipelineCrossesChunksViaRead(t *testing.T) {
	var got []*entry.Entry
	p := New(Options{}, func(e *entry.Entry) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, p.Read(iotest.OneByteReader(strings.NewReader("dn: cn=x\ncn: x\n\n"))))
	require.Len(t, got, 1)
}
