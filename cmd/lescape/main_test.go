package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeSpecialChars(t *testing.T) {
	assert.Equal(t, `Doe\, John`, Escape("Doe, John"))
	assert.Equal(t, `\#leading`, Escape("#leading"))
	assert.Equal(t, `trailing\ `, Escape("trailing "))
	assert.Equal(t, `\ leading space`, Escape(" leading space"))
}

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	for _, s := range []string{"Doe, John", "#leading", "trailing ", `a\b`, "plain"} {
		got, err := Unescape(Escape(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestUnescapeHexByte(t *testing.T) {
	got, err := Unescape(`\00`)
	require.NoError(t, err)
	assert.Equal(t, "\x00", got)
}
