package scanner

import "net"

// udpExecutor exists for symmetry with tcpConnectExecutor and synExecutor
// but is intentionally not implemented: a declared technique, not a
// designed one. Scan logs through the debug sink and reports Unknown
// rather than panicking, so a sweep that (mis)selects it degrades instead
// of crashing the whole process.
type udpExecutor struct{}

func (udpExecutor) Scan(addr *net.TCPAddr) PortState {
	debugf("UDP scan technique is not implemented, skipping %s", addr)
	return StateUnknown
}
