package scanner

import (
	"fmt"
	"math/rand"
	"net"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	// synSendAttempts is the total number of SYN sends a single probe may
	// issue before giving up and reporting Filtered.
	synSendAttempts = 3
	// synOverallWaitPerAttempt bounds how long one attempt waits for a reply
	// before it's considered exhausted and either retransmits or gives up.
	synOverallWaitPerAttempt = 4000 * time.Millisecond
	// synOptionAreaBytes is the fixed TCP option-area size: MSS +
	// SACK-permitted + 2×NOP + window-scale, padded with trailing NOPs out
	// to 20 bytes (a 40-byte TCP header, data offset 10).
	synOptionAreaBytes = 20
)

// synDestUnreachableCodes are the ICMP type-3 codes that mean "a firewall is
// actively blocking this".
var synDestUnreachableCodes = map[uint8]bool{
	1:  true, // host unreachable
	2:  true, // protocol unreachable
	3:  true, // port unreachable
	9:  true, // network administratively prohibited
	10: true, // host administratively prohibited
	13: true, // communication administratively prohibited
}

// synExecutor implements the SYN half-open technique: craft a
// SYN segment, send it over a fresh datalink channel, and classify the
// reply (or its absence after retries) into a PortState. The algorithm
// follows the nmap SYN-scan playbook: SYN|ACK means open, any other TCP
// match means closed, an ICMP destination-unreachable of the right code
// means filtered, and total silence after all retries also means filtered.
type synExecutor struct{}

func (synExecutor) Scan(addr *net.TCPAddr) PortState {
	ch := openChannel()
	defer ch.Close()

	n := defaultNIC()
	srcIP := n.ipv4
	srcPort := uint16(rand.Intn(1 << 16))

	dstIP := addr.IP.To4()
	dstPort := uint16(addr.Port)

	frame := buildSynFrame(srcIP, dstIP, srcPort, dstPort)

	trialsLeft := synSendAttempts

	for {
		switch err := ch.Send(frame); err {
		case nil:
			debugf("sent SYN TCP packet to port %d", dstPort)
		case ErrTimedOut:
			return StateUnknown
		default:
			Abort(wrapErr(PacketSendFailed, fmt.Sprintf("send SYN to %s:%d", dstIP, dstPort), err))
		}

		start := time.Now()

	receiving:
		for {
			raw, err := ch.Receive()
			if err != nil {
				if err == ErrTimedOut {
					if time.Since(start) <= synOverallWaitPerAttempt {
						continue receiving
					}
					trialsLeft--
					if trialsLeft > 0 {
						break receiving // retransmit the SYN
					}
					return StateFiltered
				}
				Abort(wrapErr(PacketRecvFailed, fmt.Sprintf("receive reply for %s:%d", dstIP, dstPort), err))
			}

			if state, matched := classifySynReply(raw, srcIP, dstIP, srcPort, dstPort); matched {
				return state
			}
			// Frame didn't belong to this probe's 4-tuple: keep reading.
		}
	}
}

// classifySynReply demultiplexes one received frame against the probe's
// 4-tuple ("Demultiplex filter") and, if it matches, classifies it into a
// PortState. matched is false for anything dropped silently.
func classifySynReply(raw []byte, srcIP, dstIP net.IP, srcPort, dstPort uint16) (state PortState, matched bool) {
	pkt := gopacket.NewPacket(raw, layers.LayerTypeEthernet, gopacket.NoCopy)

	eth, ok := pkt.Layer(layers.LayerTypeEthernet).(*layers.Ethernet)
	if !ok || eth.EthernetType != layers.EthernetTypeIPv4 {
		return 0, false
	}

	ip, ok := pkt.Layer(layers.LayerTypeIPv4).(*layers.IPv4)
	if !ok {
		return 0, false
	}
	if !ip.DstIP.Equal(srcIP) || !ip.SrcIP.Equal(dstIP) {
		return 0, false
	}

	switch ip.Protocol {
	case layers.IPProtocolTCP:
		tcp, ok := pkt.Layer(layers.LayerTypeTCP).(*layers.TCP)
		if !ok {
			return 0, false
		}
		if uint16(tcp.DstPort) != srcPort || uint16(tcp.SrcPort) != dstPort {
			return 0, false
		}

		debugf("received %s TCP packet from port %d", tcpFlagSummary(tcp), dstPort)

		if tcp.SYN && tcp.ACK {
			return StateOpen, true
		}
		// RST (with or without ACK) and any other matched flag combination
		// both mean closed; only ICMP gives a distinct Filtered signal.
		return stateClosed, true

	case layers.IPProtocolICMPv4:
		icmp, ok := pkt.Layer(layers.LayerTypeICMPv4).(*layers.ICMPv4)
		if !ok {
			return 0, false
		}

		debugf("received ICMP packet from port %d with type %d and code %d",
			dstPort, icmp.TypeCode.Type(), icmp.TypeCode.Code())

		if icmp.TypeCode.Type() == layers.ICMPv4TypeDestinationUnreachable &&
			synDestUnreachableCodes[icmp.TypeCode.Code()] {
			return StateFiltered, true
		}
		return stateClosed, true

	default:
		return stateClosed, true
	}
}

func tcpFlagSummary(t *layers.TCP) string {
	switch {
	case t.SYN && t.ACK:
		return "SYN/ACK"
	case t.RST && t.ACK:
		return "RST/ACK"
	case t.RST:
		return "RST"
	default:
		return "unrecognized"
	}
}

// buildSynFrame assembles the 40-byte SYN segment (20-byte header + 20
// bytes of options) and wraps it in an Ethernet/IPv4 frame via buildFrame.
func buildSynFrame(srcIP, dstIP net.IP, srcPort, dstPort uint16) []byte {
	tcp := &layers.TCP{
		SrcPort: layers.TCPPort(srcPort),
		DstPort: layers.TCPPort(dstPort),
		Seq:     0,
		SYN:     true,
		Window:  0xFFFF,
		Options: synOptions(),
	}

	ip := &layers.IPv4{SrcIP: srcIP, DstIP: dstIP, Protocol: layers.IPProtocolTCP}
	if err := tcp.SetNetworkLayerForChecksum(ip); err != nil {
		Abort(wrapErr(PacketSendFailed, "set network layer for TCP checksum", err))
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, tcp); err != nil {
		Abort(wrapErr(PacketSendFailed, "serialize SYN segment", err))
	}

	return buildFrame(srcIP, dstIP, layers.IPProtocolTCP, buf.Bytes())
}

// synOptions returns MSS(1460), SACK-permitted, NOP, NOP, window-scale(7),
// padded with trailing NOPs to the full 20-byte option area.
func synOptions() []layers.TCPOption {
	opts := []layers.TCPOption{
		{OptionType: layers.TCPOptionKindMSS, OptionLength: 4, OptionData: []byte{0x05, 0xb4}},
		{OptionType: layers.TCPOptionKindSACKPermitted, OptionLength: 2},
		{OptionType: layers.TCPOptionKindNop, OptionLength: 1},
		{OptionType: layers.TCPOptionKindNop, OptionLength: 1},
		{OptionType: layers.TCPOptionKindWindowScale, OptionLength: 3, OptionData: []byte{0x07}},
	}

	used := 0
	for _, o := range opts {
		used += int(o.OptionLength)
	}
	for used < synOptionAreaBytes {
		opts = append(opts, layers.TCPOption{OptionType: layers.TCPOptionKindNop, OptionLength: 1})
		used++
	}

	return opts
}
