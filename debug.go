package glide

import (
	"fmt"
	"log/slog"
	"os"
)

// logger receives glide diagnostics. Warnings for missing configuration are
// emitted once per concern; state transitions are logged at debug level
// only when debug mode is on.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// SetLogger replaces the diagnostics logger. A nil logger restores the
// default stderr text logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	logger = l
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, child count warnings are logged, and snap state transitions
// are logged at debug level.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// globalDebug is read by node operations, which lack an engine pointer.
var globalDebug bool

// diagnostics deduplicates configuration warnings so a per-frame code path
// logs a missing-metadata problem once rather than every tick.
type diagnostics struct {
	seen map[string]bool
}

// warnOnce logs msg at warn level the first time key is seen.
func (d *diagnostics) warnOnce(key, msg string, args ...any) {
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	if d.seen[key] {
		return
	}
	d.seen[key] = true
	logger.Warn(msg, args...)
}

// reset forgets previously reported keys, e.g. after the layout changes.
func (d *diagnostics) reset() {
	d.seen = nil
}

func debugLog(msg string, args ...any) {
	if !globalDebug {
		return
	}
	logger.Debug(msg, args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("glide debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugMaxChildCount is the child count above which a warning is logged.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logger.Warn("node child count exceeds threshold",
			"node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}
