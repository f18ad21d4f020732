package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"pscan/scanner"
)

// parsePorts turns a task's comma-separated Ports string into a PortSpec,
// the same contract the CLI's -p/--port flag uses: empty means
// the common-ports catalog.
func parsePorts(raw string) (scanner.PortSpec, error) {
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
			return scanner.PortSpec{}, fmt.Errorf("invalid port %q: %w", f, err)
		}
		ports = append(ports, uint16(n))
	}
	return scanner.SelectedPorts(ports), nil
}

// parseTechniques turns a task's technique name list into scanner
// Techniques, in the given order. Validation beyond the known names is handled by gin's binding
// tag on CreateScanRequest before a task ever reaches here.
func parseTechniques(names []string) ([]scanner.Technique, error) {
	techniques := make([]scanner.Technique, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(name) {
		case "tcp":
			techniques = append(techniques, scanner.NewTCPTechnique())
		case "syn":
			techniques = append(techniques, scanner.NewSynTechnique())
		default:
			return nil, fmt.Errorf("unknown scan technique %q", name)
		}
	}
	return techniques, nil
}

// requiresSyn reports whether techniques asked for a Syn scan, so the
// worker can apply NormalUserRequired gate before it touches
// interface discovery.
func requiresSyn(names []string) bool {
	for _, name := range names {
		if strings.EqualFold(name, "syn") {
			return true
		}
	}
	return false
}

// newTaskID mints a v4 UUID scan-task identifier.
func newTaskID() string {
	return uuid.NewString()
}
