package api

import "time"

// ScanTask represents an asynchronously-executed sweep managed by the API
// daemon: the same scanner.Sweep the CLI calls, wrapped in
// create/poll semantics and persisted in Redis. Status moves
// pending -> running -> completed|failed.
type ScanTask struct {
	ID          string       `json:"id"`
	Status      string       `json:"status"`
	Target      string       `json:"target"`
	Ports       string       `json:"ports,omitempty"`
	Techniques  []string     `json:"techniques"`
	Results     []PortResult `json:"results,omitempty"`
	ElapsedSecs float64      `json:"elapsed_seconds,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// PortResult mirrors scanner.PortResult with plain string fields for state
// and scan method: scanner.PortState/ScanType are small int enums whose
// only text rendition is their String() method, not a JSON encoding, so the
// API boundary re-shapes them the same way the CLI report does.
type PortResult struct {
	Port   uint16 `json:"port"`
	State  string `json:"state"`
	Method string `json:"method"`
}

// CreateScanRequest is the payload for creating new scan tasks.
type CreateScanRequest struct {
	Target     string   `json:"target" binding:"required" example:"scanme.nmap.org"`
	Ports      string   `json:"ports" example:"22,80,443"`
	Techniques []string `json:"techniques" binding:"required,min=1,dive,oneof=tcp syn" example:"tcp"`
}
