package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// debugHandler renders every record as `[Debug] <msg>`, dropping attributes
// and levels. It exists because the CLI's -d/--debug flag has a
// wire-exact output format, not a structured one — unlike backend/logging's
// JSON handler used by the API daemon.
type debugHandler struct {
	out *os.File
}

func (h *debugHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *debugHandler) Handle(_ context.Context, r slog.Record) error {
	_, err := fmt.Fprintf(h.out, "[Debug] %s\n", r.Message)
	return err
}

func (h *debugHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *debugHandler) WithGroup(_ string) slog.Handler      { return h }

var (
	debugOnce   sync.Once
	debugLogger *slog.Logger
	debugOn     atomic.Bool
)

// EnableDebug turns on the `[Debug] <msg>` trace sink for the rest of the
// process lifetime. Safe to call more than once or concurrently.
func EnableDebug() {
	debugOnce.Do(func() {
		debugLogger = slog.New(&debugHandler{out: os.Stdout})
	})
	debugOn.Store(true)
}

// debugf emits a trace line when debugging is enabled; it is a no-op
// otherwise so hot paths (per-frame demultiplexing) don't pay for
// formatting they'll throw away.
func debugf(format string, args ...any) {
	if !debugOn.Load() {
		return
	}
	debugLogger.Debug(fmt.Sprintf(format, args...))
}
