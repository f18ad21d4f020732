package scanner

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
)

const (
	channelReadTimeout  = 1500 * time.Millisecond
	channelWriteTimeout = 1500 * time.Millisecond
)

// ErrTimedOut is returned by datalinkChannel.Send/Receive when the
// configured timeout elapses without completing. It is not an error in the
// SYN state machine's sense — callers treat it as a distinct
// outcome, never as a fatal I/O failure.
var ErrTimedOut = errors.New("datalink channel timed out")

// datalinkChannel is a layer-2 send/receive pair, acquired fresh per SYN
// probe. pcapChannel is its only implementation.
type datalinkChannel interface {
	Send(frame []byte) error
	Receive() ([]byte, error)
	Close() error
}

// pcapChannel implements datalinkChannel over a libpcap live-capture handle.
type pcapChannel struct {
	handle *pcap.Handle
}

// openChannel opens an Ethernet send/receive pair on the default NIC with
// the configured read/write timeouts. Opening failure and a non-Ethernet
// link type are both fatal: the configuration requires layer-2 Ethernet, and
// the rest of the scanner has nothing sensible to do on any other datalink.
func openChannel() datalinkChannel {
	n := defaultNIC()

	handle, err := pcap.OpenLive(n.iface.Name, 65535, true, channelReadTimeout)
	if err != nil {
		Abort(wrapErr(DatalinkChannelFailed, fmt.Sprintf("open datalink channel on %q", n.iface.Name), err))
	}

	if handle.LinkType() != layers.LinkTypeEthernet {
		Abort(newErr(DatalinkChannelFailed, fmt.Sprintf("interface %q is not an Ethernet datalink", n.iface.Name)))
	}

	return &pcapChannel{handle: handle}
}

// Send transmits one framed byte slice. libpcap's WritePacketData has no
// native deadline, so the write timeout is enforced with a
// goroutine race; in practice a raw-socket send to a live NIC never blocks
// anywhere close to 1500ms.
func (c *pcapChannel) Send(frame []byte) error {
	done := make(chan error, 1)
	go func() { done <- c.handle.WritePacketData(frame) }()

	select {
	case err := <-done:
		return err
	case <-time.After(channelWriteTimeout):
		return ErrTimedOut
	}
}

// Receive blocks up to the configured read timeout for the next frame.
func (c *pcapChannel) Receive() ([]byte, error) {
	data, _, err := c.handle.ReadPacketData()
	if err != nil {
		if errors.Is(err, pcap.NextErrorTimeoutExpired) {
			return nil, ErrTimedOut
		}
		return nil, err
	}
	return data, nil
}

func (c *pcapChannel) Close() error {
	c.handle.Close()
	return nil
}
