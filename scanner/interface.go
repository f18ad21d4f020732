package scanner

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/vishvananda/netlink"
)

// nic is the process-wide NIC record: the chosen network
// interface, its MAC, and its first IPv4 address. Lazily initialized and
// never mutated once set.
type nic struct {
	iface *net.Interface
	mac   net.HardwareAddr
	ipv4  net.IP
}

var (
	nicOnce sync.Once
	nicVal  *nic
)

// defaultNIC selects the first interface that is up, not loopback, and has
// at least one IPv4 address, then extracts its MAC and IPv4 address. Every failure mode here is fatal: the SYN path has
// no fallback without a usable NIC.
func defaultNIC() *nic {
	nicOnce.Do(func() {
		ifaces, err := net.Interfaces()
		if err != nil {
			Abort(wrapErr(MissingDefaultInterface, "enumerate network interfaces", err))
		}

		var chosen *net.Interface
		var addrs []net.Addr

		for i := range ifaces {
			ifc := ifaces[i]
			if ifc.Flags&net.FlagUp == 0 || ifc.Flags&net.FlagLoopback != 0 {
				continue
			}

			a, err := ifc.Addrs()
			if err != nil || len(a) == 0 {
				continue
			}

			hasIPv4 := false
			for _, addr := range a {
				if ipnet, ok := addr.(*net.IPNet); ok && ipnet.IP.To4() != nil && !ipnet.IP.IsLoopback() {
					hasIPv4 = true
					break
				}
			}
			if !hasIPv4 {
				continue
			}

			chosen = &ifc
			addrs = a
			break
		}

		if chosen == nil {
			Abort(newErr(MissingDefaultInterface, "no up, non-loopback interface with an IPv4 address was found"))
		}

		if len(chosen.HardwareAddr) == 0 {
			Abort(newErr(MissingMacAddr, fmt.Sprintf("interface %q has no hardware address", chosen.Name)))
		}

		var ipv4 net.IP
		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if v4 := ipnet.IP.To4(); v4 != nil && !ipnet.IP.IsLoopback() {
				ipv4 = v4
				break
			}
		}
		if ipv4 == nil {
			Abort(newErr(OnlyIpv4InterfaceSupported, fmt.Sprintf("interface %q carries no IPv4 address", chosen.Name)))
		}

		debugf("using network interface %q with MAC %s and IPv4 %s", chosen.Name, chosen.HardwareAddr, ipv4)

		nicVal = &nic{iface: chosen, mac: chosen.HardwareAddr, ipv4: ipv4}
	})

	return nicVal
}

var (
	gatewayOnce sync.Once
	gatewayVal  net.HardwareAddr
)

// gatewayMAC resolves the default gateway's link-layer address via the
// kernel routing and neighbor tables. Cached for the process lifetime;
// failure is fatal since the packet builder addresses every
// frame to this MAC.
func gatewayMAC() net.HardwareAddr {
	gatewayOnce.Do(func() {
		routes, err := netlink.RouteList(nil, netlink.FAMILY_V4)
		if err != nil {
			Abort(wrapErr(GatewayLookupFailed, "list IPv4 routes", err))
		}

		var gw net.IP
		var linkIndex int
		for _, r := range routes {
			if r.Dst == nil && r.Gw != nil {
				gw = r.Gw
				linkIndex = r.LinkIndex
				break
			}
		}
		if gw == nil {
			Abort(newErr(GatewayLookupFailed, "no default IPv4 route found"))
		}

		mac, err := resolveNeighborMAC(linkIndex, gw)
		if err != nil {
			Abort(wrapErr(GatewayLookupFailed, fmt.Sprintf("resolve MAC for gateway %s", gw), err))
		}

		debugf("found gateway MAC address %s", mac)
		gatewayVal = mac
	})

	return gatewayVal
}

// resolveNeighborMAC looks the gateway's link-layer address up in the
// kernel's neighbor (ARP) table, nudging resolution with a throwaway UDP
// dial when the cache is cold.
func resolveNeighborMAC(linkIndex int, gw net.IP) (net.HardwareAddr, error) {
	lookup := func() (net.HardwareAddr, bool) {
		neighs, err := netlink.NeighList(linkIndex, netlink.FAMILY_V4)
		if err != nil {
			return nil, false
		}
		for _, n := range neighs {
			if n.IP.Equal(gw) && len(n.HardwareAddr) > 0 {
				return n.HardwareAddr, true
			}
		}
		return nil, false
	}

	if mac, ok := lookup(); ok {
		return mac, nil
	}

	if conn, err := net.DialTimeout("udp4", net.JoinHostPort(gw.String(), "9"), 200*time.Millisecond); err == nil {
		_ = conn.Close()
	}

	for i := 0; i < 10; i++ {
		if mac, ok := lookup(); ok {
			return mac, nil
		}
		time.Sleep(100 * time.Millisecond)
	}

	return nil, errors.New("gateway did not resolve via ARP in time")
}
