package telemetry

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Async leveled logger. Hot paths (estimation fan-out, broadcast) enqueue and
// never block; a single drain goroutine formats and writes.

var (
	debugOn atomic.Bool
	traceOn atomic.Bool

	startOnce sync.Once
	entries   chan entry

	// Ring of recent lines for Tail().
	ringMu   sync.Mutex
	ring     []string
	ringHead int
	ringLen  int
)

const ringCap = 2000

type entry struct {
	at    time.Time
	level string
	msg   string
}

// Start spins up the drain goroutine. Safe to call more than once.
func Start() {
	startOnce.Do(func() {
		entries = make(chan entry, 8192)
		ring = make([]string, ringCap)
		go drain()
	})
}

// Stop closes the log channel; queued entries are still written.
func Stop() {
	if entries != nil {
		close(entries)
	}
}

func drain() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "telemetry drain panic: %v\n", r)
		}
	}()
	for e := range entries {
		line := fmt.Sprintf("%s [%s] %s", e.at.Format("2006/01/02 15:04:05.000"), e.level, e.msg)
		ringMu.Lock()
		ring[ringHead] = line
		ringHead = (ringHead + 1) % ringCap
		if ringLen < ringCap {
			ringLen++
		}
		ringMu.Unlock()
		fmt.Println(line)
	}
}

func EnableDebug(on bool) { debugOn.Store(on) }
func EnableTrace(on bool) { traceOn.Store(on) }
func DebugOn() bool       { return debugOn.Load() }

// enqueue drops on saturation rather than stalling the caller.
func enqueue(level, msg string) {
	if entries == nil {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", level, msg)
		return
	}
	select {
	case entries <- entry{at: time.Now(), level: level, msg: msg}:
	default:
		fmt.Fprintf(os.Stderr, "telemetry: buffer full, dropping: %s\n", msg)
	}
}

func Infof(format string, args ...any)  { enqueue("INFO", fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { enqueue("WARN", fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { enqueue("ERROR", fmt.Sprintf(format, args...)) }

// Debugf formats only when enabled.
func Debugf(format string, args ...any) {
	if !debugOn.Load() {
		return
	}
	enqueue("DEBUG", fmt.Sprintf(format, args...))
}

// Tracef is for very noisy spots; off by default.
func Tracef(format string, args ...any) {
	if !traceOn.Load() {
		return
	}
	enqueue("TRACE", fmt.Sprintf(format, args...))
}

// Tail returns up to n of the most recent log lines, oldest first.
func Tail(n int) []string {
	ringMu.Lock()
	defer ringMu.Unlock()
	if n <= 0 || ringLen == 0 {
		return nil
	}
	if n > ringLen {
		n = ringLen
	}
	out := make([]string, 0, n)
	start := ringHead - n
	if start < 0 {
		start += ringCap
	}
	for i := 0; i < n; i++ {
		out = append(out, ring[(start+i)%ringCap])
	}
	return out
}
