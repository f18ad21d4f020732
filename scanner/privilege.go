package scanner

import "os"

// IsSuperuser reports whether the process's effective UID is 0. The CLI
// consults this before accepting a Syn technique: SYN scanning
// opens a raw datalink channel, which on Linux requires CAP_NET_RAW.
func IsSuperuser() bool {
	return os.Geteuid() == 0
}
