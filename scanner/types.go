// Package scanner implements a user-space TCP port scanner: a SYN half-open
// technique that crafts raw Ethernet/IPv4/TCP frames over a datalink channel,
// a plain TCP-connect technique, and a parallel sweep driver that fans both
// out across a port set.
package scanner

import (
	"fmt"
	"net"
	"time"
)

// PortState is the outcome of probing a single port with a single technique.
type PortState int

const (
	// StateOpen means the remote port accepted the connection attempt.
	StateOpen PortState = iota
	// StateFiltered means a firewall is actively blocking the probe, either by
	// silence (after exhausting retries) or via an ICMP unreachable reply.
	StateFiltered
	// StateUnknown means the local send path itself timed out (the ambiguity
	// is local, not remote), or the technique has no probe (UDP).
	StateUnknown
	// stateClosed is never exposed: the driver drops it before a ScanResult
	// is returned to a caller. It exists purely so Executor.Scan has a value
	// to return for "actively refused, definitely not listening".
	stateClosed
)

func (s PortState) String() string {
	switch s {
	case StateOpen:
		return "Open"
	case StateFiltered:
		return "Filtered"
	case StateUnknown:
		return "Unknown"
	case stateClosed:
		return "Closed"
	default:
		return "Invalid"
	}
}

// Protocol tags a CommonPortEntry with which techniques may claim it.
type Protocol int

const (
	ProtoTCP Protocol = iota
	ProtoUDP
	ProtoBoth
)

// ScanType names a scan technique, both for routing in the sweep driver and
// for the "Scan Method" column of the CLI report.
type ScanType int

const (
	ScanTCP ScanType = iota
	ScanSYN
	ScanUDP
)

func (k ScanType) String() string {
	switch k {
	case ScanTCP:
		return "TCP scan"
	case ScanSYN:
		return "TCP SYN scan"
	case ScanUDP:
		return "UDP scan"
	default:
		return "unknown scan"
	}
}

// Executor is the one operation every scan technique implements. The sweep
// driver holds a slice of Techniques and calls Scan on whichever one it
// selects for a given port; implementations must be safe for concurrent use
// since the driver fans the sweep out across worker goroutines.
type Executor interface {
	Scan(addr *net.TCPAddr) PortState
}

// Technique pairs an Executor with the ScanType it reports as, so the driver
// and the report printer don't need type-switch on the Executor itself.
type Technique struct {
	Kind     ScanType
	Executor Executor
}

// NewTCPTechnique builds the TCP-connect technique.
func NewTCPTechnique() Technique {
	return Technique{Kind: ScanTCP, Executor: &tcpConnectExecutor{}}
}

// NewSynTechnique builds the SYN half-open technique.
func NewSynTechnique() Technique {
	return Technique{Kind: ScanSYN, Executor: &synExecutor{}}
}

// NewUDPTechnique builds the declared-but-unimplemented UDP technique: the
// shape exists for symmetry with the other two, but the probe itself is
// never designed or implemented.
func NewUDPTechnique() Technique {
	return Technique{Kind: ScanUDP, Executor: &udpExecutor{}}
}

// PortSpec selects which ports a sweep covers: either the entire common-ports
// catalog, or an explicit list the caller supplied.
type PortSpec struct {
	All   bool
	Ports []uint16
}

// AllPorts requests a sweep over the common-ports catalog.
func AllPorts() PortSpec { return PortSpec{All: true} }

// SelectedPorts requests a sweep over exactly the given ports, in order.
func SelectedPorts(ports []uint16) PortSpec { return PortSpec{Ports: ports} }

// PortResult is one reported port: the first technique (in input order)
// that produced a non-closed state won. Closed never appears here.
type PortResult struct {
	Port  uint16
	State PortState
	Kind  ScanType
}

func (r PortResult) String() string {
	return fmt.Sprintf("%d/%s: %s", r.Port, r.Kind, r.State)
}

// ScanResult is the full outcome of one sweep: elapsed wall time plus every
// reported (non-closed) port, in unspecified order.
type ScanResult struct {
	Elapsed time.Duration
	Ports   []PortResult
}
