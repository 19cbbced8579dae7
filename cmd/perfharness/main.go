// Command perfharness measures pool and framer throughput under
// synthetic load and logs the results tagged with a run correlation ID.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Lovening/craftrix/framer"
	"github.com/Lovening/craftrix/internal/applog"
	"github.com/Lovening/craftrix/pool"
)

type widget struct {
	a, b, c int64
}

func main() {
	var iterations int
	var chunkBlocks int
	var logLevel string

	root := &cobra.Command{
		Use:   "perfharness",
		Short: "Time pool and framer operations for a fixed iteration count",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := applog.New(applog.Config{Level: logLevel, Encoding: "console"})
			if err != nil {
				return err
			}
			defer logger.Sync()

			runID := uuid.New().String()
			logger = logger.With(zap.String("run_id", runID))

			if err := runPoolBenchmark(logger, iterations, chunkBlocks); err != nil {
				return err
			}
			runFramerBenchmark(logger, iterations)
			return nil
		},
	}

	root.Flags().IntVar(&iterations, "iterations", 1_000_000, "number of allocate/deallocate or feed cycles to run")
	root.Flags().IntVar(&chunkBlocks, "chunk-blocks", 4096, "slots per pool chunk")
	root.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn, or error")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPoolBenchmark(logger *zap.Logger, iterations, chunkBlocks int) error {
	p, err := pool.New[widget](pool.WithChunkBlockCount(chunkBlocks), pool.WithDebug(false))
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	defer p.MustClose()

	start := time.Now()
	for i := 0; i < iterations; i++ {
		v, err := p.Construct(widget{a: int64(i)})
		if err != nil {
			return fmt.Errorf("allocate: %w", err)
		}
		p.Destroy(v)
	}
	elapsed := time.Since(start)

	logger.Info("pool benchmark complete",
		zap.Int("iterations", iterations),
		zap.Duration("elapsed", elapsed),
		zap.Float64("ns_per_op", float64(elapsed.Nanoseconds())/float64(iterations)),
	)
	return nil
}

func runFramerBenchmark(logger *zap.Logger, iterations int) {
	const docTemplate = `{"i":%d,"payload":"some bytes to frame"}`

	var b strings.Builder
	for i := 0; i < iterations; i++ {
		fmt.Fprintf(&b, docTemplate, i)
	}
	input := []byte(b.String())

	count := 0
	fr := framer.NewIncremental(func(doc []byte) { count++ }, nil)

	const chunkSize = 4096
	start := time.Now()
	for off := 0; off < len(input); off += chunkSize {
		end := off + chunkSize
		if end > len(input) {
			end = len(input)
		}
		fr.Feed(input[off:end])
	}
	elapsed := time.Since(start)

	logger.Info("framer benchmark complete",
		zap.Int("documents", count),
		zap.Int("input_bytes", len(input)),
		zap.Duration("elapsed", elapsed),
	)
}
