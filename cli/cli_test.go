package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pscan/scanner"
)

func TestParsePorts(t *testing.T) {
	t.Run("empty flag means all common ports", func(t *testing.T) {
		spec, err := ParsePorts("")
		require.NoError(t, err)
		assert.True(t, spec.All)
	})

	t.Run("single port", func(t *testing.T) {
		spec, err := ParsePorts("80")
		require.NoError(t, err)
		assert.False(t, spec.All)
		assert.Equal(t, []uint16{80}, spec.Ports)
	})

	t.Run("comma-separated list preserves order", func(t *testing.T) {
		spec, err := ParsePorts("22,80,443")
		require.NoError(t, err)
		assert.Equal(t, []uint16{22, 80, 443}, spec.Ports)
	})

	t.Run("whitespace around entries is tolerated", func(t *testing.T) {
		spec, err := ParsePorts(" 22 , 80 ")
		require.NoError(t, err)
		assert.Equal(t, []uint16{22, 80}, spec.Ports)
	})

	t.Run("out-of-range port is rejected", func(t *testing.T) {
		_, err := ParsePorts("70000")
		require.Error(t, err)
		var scanErr *scanner.ScanError
		require.ErrorAs(t, err, &scanErr)
		assert.Equal(t, scanner.InvalidPort, scanErr.Kind)
	})

	t.Run("non-numeric port is rejected", func(t *testing.T) {
		_, err := ParsePorts("ssh")
		require.Error(t, err)
	})
}

func TestPrintReport(t *testing.T) {
	t.Run("no open ports prints the fallback line", func(t *testing.T) {
		var buf bytes.Buffer
		printReport(&buf, scanner.ScanResult{Elapsed: 250 * time.Millisecond})

		out := buf.String()
		assert.Contains(t, out, "Scan Duration: 0.2500s")
		assert.Contains(t, out, "Didn't find any open port.")
	})

	t.Run("open ports render as a left-justified table", func(t *testing.T) {
		var buf bytes.Buffer
		result := scanner.ScanResult{
			Elapsed: 1234 * time.Millisecond,
			Ports: []scanner.PortResult{
				{Port: 22, State: scanner.StateOpen, Kind: scanner.ScanSYN},
				{Port: 80, State: scanner.StateFiltered, Kind: scanner.ScanTCP},
			},
		}
		printReport(&buf, result)

		out := buf.String()
		assert.Contains(t, out, "Scan Duration: 1.2340s")
		assert.Contains(t, out, "Port    State      Scan Method")
		assert.Contains(t, out, "22      Open       TCP SYN scan")
		assert.Contains(t, out, "80      Filtered   TCP scan")
	})
}
