// Package cli implements pscan's command-line interface: flag
// parsing, target resolution, technique selection, the sweep itself, and
// the fixed-format textual report.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"pscan/resolver"
	"pscan/scanner"
)

// Run parses os.Args, drives one sweep, and prints the report to stdout. It
// returns a process exit code: 0 on success, non-zero on any configuration,
// resolution, or privilege error. Fatal environment failures
// (interface/gateway/datalink/send/recv) never reach here — scanner.Abort
// terminates the process itself before Run could return.
func Run() int {
	fs := flag.NewFlagSet("pscan", flag.ContinueOnError)
	var debug bool
	fs.BoolVar(&debug, "d", false, "enable the [Debug] trace sink")
	fs.BoolVar(&debug, "debug", false, "enable the [Debug] trace sink")
	var portsFlag string
	fs.StringVar(&portsFlag, "p", "", "comma-separated list of ports; omit to scan common ports")
	fs.StringVar(&portsFlag, "port", "", "comma-separated list of ports; omit to scan common ports")
	var useTCP bool
	fs.BoolVar(&useTCP, "t", false, "use the TCP connect scan technique")
	fs.BoolVar(&useTCP, "tcp", false, "use the TCP connect scan technique")
	var useSyn bool
	fs.BoolVar(&useSyn, "s", false, "use the SYN half-open scan technique")
	fs.BoolVar(&useSyn, "syn", false, "use the SYN half-open scan technique")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: pscan [-d|--debug] [-p|--port=<u16>[,<u16>...]] (-t|--tcp) (-s|--syn) <target>")
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		return 2
	}

	if debug {
		scanner.EnableDebug()
	}

	args := fs.Args()
	if len(args) != 1 {
		fs.Usage()
		return 2
	}
	target := args[0]

	if !useTCP && !useSyn {
		fmt.Fprintln(os.Stderr, "error: at least one of -t/--tcp or -s/--syn is required")
		return 2
	}

	if useSyn && !scanner.IsSuperuser() {
		fmt.Fprintf(os.Stderr, "error: %v\n", &scanner.ScanError{
			Kind: scanner.NormalUserRequired,
			Msg:  "SYN scanning needs CAP_NET_RAW; rerun as root",
		})
		return 1
	}

	ip, err := resolver.Lookup(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	portSpec, err := ParsePorts(portsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	// Input order: -t before -s when both are given, matching the flag
	// declaration order above.
	var techniques []scanner.Technique
	if useTCP {
		techniques = append(techniques, scanner.NewTCPTechnique())
	}
	if useSyn {
		techniques = append(techniques, scanner.NewSynTechnique())
	}

	result := scanner.Sweep(ip, portSpec, techniques)
	printReport(os.Stdout, result)
	return 0
}

// ParsePorts turns the -p/--port flag value into a PortSpec: empty means
// "scan common ports", otherwise it's a comma-separated list of u16 ports
// in the given order.
func ParsePorts(raw string) (scanner.PortSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return scanner.AllPorts(), nil
	}

	fields := strings.Split(raw, ",")
	ports := make([]uint16, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		n, err := strconv.ParseUint(f, 10, 16)
		if err != nil {
			return scanner.PortSpec{}, &scanner.ScanError{
				Kind: scanner.InvalidPort,
				Msg:  fmt.Sprintf("invalid port %q", f),
				Err:  err,
			}
		}
		ports = append(ports, uint16(n))
	}
	return scanner.SelectedPorts(ports), nil
}

// printReport renders a ScanResult in the CLI's fixed report layout.
func printReport(w io.Writer, result scanner.ScanResult) {
	fmt.Fprintf(w, "Scan Duration: %.4fs\n\n", result.Elapsed.Seconds())

	if len(result.Ports) == 0 {
		fmt.Fprintln(w, "Didn't find any open port.")
		return
	}

	fmt.Fprintf(w, "%-8s%-11s%s\n", "Port", "State", "Scan Method")
	for _, p := range result.Ports {
		fmt.Fprintf(w, "%-8d%-11s%s\n", p.Port, p.State.String(), p.Kind.String())
	}
}
