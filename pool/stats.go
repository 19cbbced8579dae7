package pool

import (
	"fmt"
	"io"
)

// PrintStats writes a keyed text block describing the pool's current
// state. The key set and ordering are part of this package's operational
// contract; scripts may grep it.
func (p *Pool[T]) PrintStats(w io.Writer) {
	total := p.TotalCount()
	free := p.FreeCount()
	allocated := total - free

	fmt.Fprintf(w, "Total blocks: %d\n", total)
	fmt.Fprintf(w, "Free blocks: %d\n", free)
	fmt.Fprintf(w, "Allocated blocks: %d\n", allocated)
	fmt.Fprintf(w, "Block size: %d bytes\n", p.slotSize)
	fmt.Fprintf(w, "Alignment: %d bytes\n", p.align)

	p.mu.Lock()
	nchunks := len(p.chunks)
	p.mu.Unlock()
	if p.maxChunks > 0 {
		fmt.Fprintf(w, "Chunks allocated: %d (max: %d)\n", nchunks, p.maxChunks)
	} else {
		fmt.Fprintf(w, "Chunks allocated: %d\n", nchunks)
	}

	kib := float64(total) * float64(p.slotSize) / 1024.0
	fmt.Fprintf(w, "Memory usage: %.2f KiB\n", kib)

	if p.localOn {
		fmt.Fprintln(w, "Thread local storage: Enabled")
	} else {
		fmt.Fprintln(w, "Thread local storage: Disabled")
	}

	if p.debug {
		p.debugMu.Lock()
		n := len(p.live)
		p.debugMu.Unlock()
		fmt.Fprintf(w, "Currently allocated objects: %d\n", n)
	}
}
