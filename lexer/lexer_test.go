package lexer

import (
	"testing"

	"github.com/ivartj/ldiftools/loc"
	"github.com/ivartj/ldiftools/locw"
	"github.com/ivartj/ldiftools/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	kind token.Kind
	seg  string
}

func run(t *testing.T, input string) []rec {
	t.Helper()
	var got []rec
	lx := New(func(tok token.Token) error {
		got = append(got, rec{kind: tok.Kind, seg: string(tok.Segment)})
		return nil
	})
	_, err := lx.WriteLoc(loc.Start(), []byte(input))
	require.NoError(t, err)
	require.NoError(t, lx.Flush(loc.Start().Advance([]byte(input))))
	return got
}

func TestSmoke(t *testing.T) {
	input := "# c\n" +
		"dn:cn=admin,ou=sa,o=system\n" +
		"cn: admin\n" +
		"sn:: bmljZQ==\n" +
		"\n" +
		"dn: cn=bob\n"

	got := run(t, input)

	want := []rec{
		{token.AttributeType, "dn"},
		{token.ValueText, "cn=admin,ou=sa,o=system"},
		{token.ValueFinish, ""},
		{token.AttributeType, "cn"},
		{token.ValueText, "admin"},
		{token.ValueFinish, ""},
		{token.AttributeType, "sn"},
		{token.ValueBase64, "bmljZQ=="},
		{token.ValueFinish, ""},
		{token.EntryFinish, ""},
		{token.AttributeType, "dn"},
		{token.ValueText, "cn=bob"},
		{token.ValueFinish, ""},
		{token.EntryFinish, ""},
	}
	assert.Equal(t, want, got)
}

func TestEmptyValue(t *testing.T) {
	got := run(t, "attr:\n\n")
	// the blank line finishes the entry, and EOF at line start emits
	// one more EntryFinish
	want := []rec{
		{token.AttributeType, "attr"},
		{token.ValueText, ""},
		{token.ValueFinish, ""},
		{token.EntryFinish, ""},
		{token.EntryFinish, ""},
	}
	assert.Equal(t, want, got)
}

func TestNoTrailingNewline(t *testing.T) {
	got := run(t, "cn: bob")
	want := []rec{
		{token.AttributeType, "cn"},
		{token.ValueText, "bob"},
		{token.ValueFinish, ""},
		{token.EntryFinish, ""},
	}
	assert.Equal(t, want, got)
}

func TestAttributeNameUnderscore(t *testing.T) {
	got := run(t, "ds-sync_state: ok\n")
	assert.Equal(t, "ds-sync_state", got[0].seg)
}

func TestNonASCIIByteError(t *testing.T) {
	lx := New(func(token.Token) error { return nil })
	_, err := lx.WriteLoc(loc.Start(), []byte("cn: \xc3\xa9"))
	assert.Error(t, err)
}

func TestAttributeOptionUnsupported(t *testing.T) {
	lx := New(func(token.Token) error { return nil })
	_, err := lx.WriteLoc(loc.Start(), []byte("cn;lang-en: bob\n"))
	assert.Error(t, err)
}

func TestOIDAttributeTypeUnsupported(t *testing.T) {
	lx := New(func(token.Token) error { return nil })
	_, err := lx.WriteLoc(loc.Start(), []byte("1.2.3: bob\n"))
	assert.Error(t, err)
}

func TestSplitAcrossChunks(t *testing.T) {
	var got []rec
	lx := New(func(tok token.Token) error {
		got = append(got, rec{kind: tok.Kind, seg: string(tok.Segment)})
		return nil
	})
	at := loc.Start()
	for _, chunk := range []string{"c", "n: bo", "b\n"} {
		n, err := lx.WriteLoc(at, []byte(chunk))
		require.NoError(t, err)
		at = at.Advance([]byte(chunk))
		_ = n
	}
	require.NoError(t, lx.Flush(at))
	want := []rec{
		{token.AttributeType, "cn"},
		{token.ValueText, "bob"},
		{token.ValueFinish, ""},
		{token.EntryFinish, ""},
	}
	assert.Equal(t, want, got)
}

var _ locw.Writer = (*Lexer)(nil)
