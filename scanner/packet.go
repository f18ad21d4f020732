package scanner

import (
	"math/rand"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// buildFrame constructs an Ethernet(IPv4(payload)) frame:
//   - Ethernet: dst MAC = default gateway, src MAC = our NIC, ethertype = IPv4.
//   - IPv4: version 4, IHL 5 (no options), a fresh random identification,
//     Don't-Fragment set, TTL 64, the caller's protocol tag and addresses,
//     checksum computed over the header with the checksum field zeroed.
//   - Payload: the caller's bytes, unchanged. No fragmentation is ever
//     performed; the only caller sends a 40-byte TCP segment, well under any
//     realistic MTU.
func buildFrame(src, dst net.IP, nextProto layers.IPProtocol, payload []byte) []byte {
	n := defaultNIC()
	gw := gatewayMAC()

	eth := &layers.Ethernet{
		SrcMAC:       n.mac,
		DstMAC:       gw,
		EthernetType: layers.EthernetTypeIPv4,
	}

	ip := &layers.IPv4{
		Version:    4,
		IHL:        5,
		Id:         uint16(rand.Intn(1 << 16)),
		Flags:      layers.IPv4DontFragment,
		FragOffset: 0,
		TTL:        64,
		Protocol:   nextProto,
		SrcIP:      src,
		DstIP:      dst,
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}

	if err := gopacket.SerializeLayers(buf, opts, eth, ip, gopacket.Payload(payload)); err != nil {
		Abort(wrapErr(PacketSendFailed, "serialize outgoing frame", err))
	}

	return buf.Bytes()
}
