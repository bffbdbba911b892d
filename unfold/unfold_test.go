package unfold

import (
	"bytes"
	"testing"

	"github.com/ivartj/ldiftools/loc"
	"github.com/stretchr/testify/assert"
)

type capture struct {
	buf bytes.Buffer
}

func (c *capture) WriteLoc(_ loc.Loc, p []byte) (int, error) {
	return c.buf.Write(p)
}

func (c *capture) Flush(loc.Loc) error { return nil }

func run(t *testing.T, chunks ...string) string {
	t.Helper()
	var c capture
	u := New(&c)
	at := loc.Start()
	for _, s := range chunks {
		n, err := u.WriteLoc(at, []byte(s))
		assert.NoError(t, err)
		at = at.Advance([]byte(s)[:n])
	}
	assert.NoError(t, u.Flush(at))
	return c.buf.String()
}

func TestUnfoldContinuation(t *testing.T) {
	assert.Equal(t, "ab\n\nc", run(t, "a\n b\n\nc"))
}

func TestBlankLinePreserved(t *testing.T) {
	assert.Equal(t, "a\n\nb", run(t, "a\n\nb"))
}

func TestChunkBoundarySplitsFold(t *testing.T) {
	assert.Equal(t, "ab", run(t, "a\n", " b"))
}

func TestNoFoldAtEOF(t *testing.T) {
	assert.Equal(t, "a\n", run(t, "a\n"))
}
