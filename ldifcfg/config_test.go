package ldifcfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileAttributesAndFilter(t *testing.T) {
	data := []byte(`{"attributes":["cn","sn"],"filter":"(objectClass=person)","defaults":{"description":"(none)","employeeNumber":0,"active":true}}`)
	f, err := LoadFile(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"cn", "sn"}, f.Attributes)
	assert.Equal(t, "(objectClass=person)", f.Filter)
	assert.Equal(t, "(none)", f.Defaults["description"])
	assert.Equal(t, float64(0), f.Defaults["employeeNumber"])
	assert.Equal(t, true, f.Defaults["active"])
}

func TestLoadFileEmpty(t *testing.T) {
	f, err := LoadFile([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, f.Attributes)
	assert.Empty(t, f.Filter)
}

func TestMutuallyExclusive(t *testing.T) {
	assert.NoError(t, MutuallyExclusive("--invert/--defer", true, false))
	err := MutuallyExclusive("--invert/--defer", true, true)
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRequired(t *testing.T) {
	assert.NoError(t, Required("--attr", "cn"))
	assert.Error(t, Required("--attr", ""))
}
