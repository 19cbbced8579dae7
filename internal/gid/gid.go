// Package gid derives a per-goroutine identity for use as a map key by
// goroutine-local caches. Go exposes no public equivalent of
// std::this_thread::get_id(); the technique here parses the goroutine id
// out of the header line runtime.Stack always prints first.
package gid

import (
	"runtime"
	"strconv"
)

// Get returns the id of the calling goroutine.
//
// This is paid on every call: runtime.Stack walks and formats the current
// goroutine's stack trace, which is measurably slower than a single
// mutex-guarded map lookup. It is acceptable here because it is the only
// portable way to key a goroutine-local cache without linkname'ing into
// the runtime, but it is a real cost, not a free one. A future revision
// could trade it for a g-pointer extracted via go:linkname if this ever
// shows up in a profile.
func Get() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]

	// b begins with "goroutine <id> [running]:\n"
	const prefix = "goroutine "
	if len(b) < len(prefix) {
		return 0
	}
	b = b[len(prefix):]

	i := 0
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}
	id, err := strconv.ParseUint(string(b[:i]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
