package skip

import (
	"bytes"
	"testing"

	"github.com/ivartj/ldiftools/loc"
	"github.com/stretchr/testify/assert"
)

type capture struct{ buf bytes.Buffer }

func (c *capture) WriteLoc(_ loc.Loc, p []byte) (int, error) { return c.buf.Write(p) }
func (c *capture) Flush(loc.Loc) error { return nil }

// a toy transform that skips every 'x' byte, to exercise Skipper in
// isolation from crstrip/unfold's two-state machines.
func dropX(t *testing.T, down *capture, chunks ...string) {
	t.Helper()
	carry := Initial
	at := loc.Start()
	for _, chunk := range chunks {
		sk := New(down, at, []byte(chunk), carry)
		for {
			b, ok := sk.Lookahead()
			if !ok {
				break
			}
			if b == 'x' {
				sk.BeginSkip()
				sk.Shift()
				assert.NoError(t, sk.EndSkip())
			} else {
				sk.Shift()
			}
		}
		st, err := sk.SaveState()
		assert.NoError(t, err)
		carry = st
		at = at.Advance([]byte(chunk))
	}
}

func TestDropSingleByte(t *testing.T) {
	var c capture
	dropX(t, &c, "axbxc")
	assert.Equal(t, "abc", c.buf.String())
}

func TestDropAcrossChunks(t *testing.T) {
	var c capture
	dropX(t, &c, "ax", "bxc")
	assert.Equal(t, "abc", c.buf.String())
}
