// Command pscan is a TCP port scanner for IPv4 hosts: it resolves
// a target, selects a port set and one or more scan techniques, and prints
// each port's state. See the cli package for the argument contract.
package main

import (
	"os"

	"pscan/cli"
)

func main() {
	os.Exit(cli.Run())
}
