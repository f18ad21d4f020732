package scanner

import (
	"net"
	"time"
)

// tcpConnectTimeout is the dial deadline for the TCP-connect technique.
const tcpConnectTimeout = 1500 * time.Millisecond

// tcpConnectExecutor implements the plain "full connect" technique: a
// kernel TCP connect with a timeout. It requires no special privileges and
// needs no datalink channel, packet builder, or interface discovery at all.
type tcpConnectExecutor struct{}

func (tcpConnectExecutor) Scan(addr *net.TCPAddr) PortState {
	conn, err := net.DialTimeout("tcp4", addr.String(), tcpConnectTimeout)
	if err != nil {
		return stateClosed
	}
	_ = conn.Close()
	return StateOpen
}
