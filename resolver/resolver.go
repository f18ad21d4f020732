// Package resolver turns a CLI target string into the IPv4 address the
// scanner operates on: a thin wrapper around net.LookupIP, not part of the
// scanner's core.
package resolver

import (
	"net"

	"pscan/scanner"
)

// Lookup resolves target — an IPv4 literal or a hostname — into a single
// IPv4 address. A literal is parsed directly; a hostname is resolved and
// the first IPv4 answer is kept.
func Lookup(target string) (net.IP, error) {
	if ip := net.ParseIP(target); ip != nil {
		v4 := ip.To4()
		if v4 == nil {
			return nil, &scanner.ScanError{
				Kind: scanner.OnlyIpv4TargetSupported,
				Msg:  "target " + target + " is an IPv6 address; only IPv4 is supported",
			}
		}
		return v4, nil
	}

	addrs, err := net.LookupIP(target)
	if err != nil {
		return nil, &scanner.ScanError{Kind: scanner.ResolverFailed, Msg: "resolve " + target, Err: err}
	}

	for _, addr := range addrs {
		if v4 := addr.To4(); v4 != nil {
			return v4, nil
		}
	}

	return nil, &scanner.ScanError{
		Kind: scanner.DomainLookupFailed,
		Msg:  "resolver didn't find any IPv4 address mapped by " + target,
	}
}
