package scanner

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTCPConnectExecutor(t *testing.T) {
	t.Run("open port accepts the connect", func(t *testing.T) {
		ln, err := net.Listen("tcp4", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		go func() {
			conn, err := ln.Accept()
			if err == nil {
				conn.Close()
			}
		}()

		addr := ln.Addr().(*net.TCPAddr)
		state := tcpConnectExecutor{}.Scan(addr)
		assert.Equal(t, StateOpen, state)
	})

	t.Run("closed port refuses the connect", func(t *testing.T) {
		ln, err := net.Listen("tcp4", "127.0.0.1:0")
		require.NoError(t, err)
		addr := ln.Addr().(*net.TCPAddr)
		require.NoError(t, ln.Close()) // frees the port but nothing listens anymore

		state := tcpConnectExecutor{}.Scan(addr)
		assert.Equal(t, stateClosed, state)
	})
}
