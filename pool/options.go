package pool

// config collects the construction-time parameters for New. It is built
// up by Option functions rather than exposed directly, so new knobs can be
// added without breaking callers.
type config struct {
	blockCount int
	maxChunks  int
	localOn    bool
	debug      bool
}

func defaultConfig() config {
	return config{
		blockCount: 1024,
		maxChunks:  0,
		localOn:    true,
		debug:      true,
	}
}

// Option configures a Pool at construction time.
type Option func(*config)

// WithChunkBlockCount sets the number of slots per chunk (default 1024).
// Values <= 0 are ignored and the default is kept.
func WithChunkBlockCount(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.blockCount = n
		}
	}
}

// WithMaxChunks bounds the number of chunks the pool will grow to. 0 (the
// default) means unbounded.
func WithMaxChunks(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxChunks = n
		}
	}
}

// WithGoroutineLocal enables or disables per-goroutine free-list caching.
// Enabled by default; disabling it makes every Allocate/Deallocate take
// the pool-global mutex, trading throughput for simplicity.
func WithGoroutineLocal(enabled bool) Option {
	return func(c *config) { c.localOn = enabled }
}

// WithDebug enables or disables leak tracking and the DEAD-pattern fill on
// deallocate. Enabled by default, matching a non-NDEBUG build; production
// deployments that have already validated their pool usage may disable it
// to drop the bookkeeping cost.
func WithDebug(enabled bool) Option {
	return func(c *config) { c.debug = enabled }
}
