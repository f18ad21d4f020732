package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePorts(t *testing.T) {
	t.Run("empty string means all common ports", func(t *testing.T) {
		spec, err := parsePorts("")
		require.NoError(t, err)
		assert.True(t, spec.All)
	})

	t.Run("comma-separated list parses in order", func(t *testing.T) {
		spec, err := parsePorts("22,80,443")
		require.NoError(t, err)
		assert.Equal(t, []uint16{22, 80, 443}, spec.Ports)
	})

	t.Run("invalid port is rejected", func(t *testing.T) {
		_, err := parsePorts("not-a-port")
		assert.Error(t, err)
	})
}

func TestParseTechniques(t *testing.T) {
	t.Run("known techniques resolve in input order", func(t *testing.T) {
		techniques, err := parseTechniques([]string{"syn", "tcp"})
		require.NoError(t, err)
		require.Len(t, techniques, 2)
		assert.Equal(t, "TCP SYN scan", techniques[0].Kind.String())
		assert.Equal(t, "TCP scan", techniques[1].Kind.String())
	})

	t.Run("names are case-insensitive", func(t *testing.T) {
		techniques, err := parseTechniques([]string{"TCP"})
		require.NoError(t, err)
		require.Len(t, techniques, 1)
	})

	t.Run("unknown technique is an error", func(t *testing.T) {
		_, err := parseTechniques([]string{"udp"})
		assert.Error(t, err)
	})
}

func TestRequiresSyn(t *testing.T) {
	assert.True(t, requiresSyn([]string{"tcp", "SYN"}))
	assert.False(t, requiresSyn([]string{"tcp"}))
	assert.False(t, requiresSyn(nil))
}

func TestNewTaskID(t *testing.T) {
	a, b := newTaskID(), newTaskID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
