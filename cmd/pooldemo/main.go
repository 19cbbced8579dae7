// Command pooldemo streams newline- or whitespace-separated JSON
// documents from a file (or stdin) through a framer, a bounded queue, and
// an object pool, validating and logging each document as it drains.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Lovening/craftrix/framer"
	"github.com/Lovening/craftrix/internal/applog"
	"github.com/Lovening/craftrix/internal/queue"
	"github.com/Lovening/craftrix/internal/validate"
	"github.com/Lovening/craftrix/pool"
)

// record is the value type pooled for each framed document: a slot per
// document avoids a heap allocation for the bookkeeping that wraps it.
type record struct {
	seq  int
	size int
	ok   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		inputPath   string
		chunkBlocks int
		maxChunks   int
		queueSize   int
		logLevel    string
		noLocal     bool
		noValidate  bool
	)

	root := &cobra.Command{
		Use:   "pooldemo",
		Short: "Frame a stream of JSON documents and process each through a pooled worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.SetEnvPrefix("POOLDEMO")
			viper.AutomaticEnv()
			if viper.IsSet("chunk_blocks") {
				chunkBlocks = viper.GetInt("chunk_blocks")
			}

			logger, err := applog.New(applog.Config{Level: logLevel, Encoding: "console"})
			if err != nil {
				return err
			}
			defer logger.Sync()

			var in io.Reader = os.Stdin
			if inputPath != "" {
				f, err := os.Open(inputPath)
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				in = f
			}

			return run(cmd.Context(), in, logger, runConfig{
				chunkBlocks: chunkBlocks,
				maxChunks:   maxChunks,
				queueSize:   queueSize,
				localOn:     !noLocal,
				validate:    !noValidate,
			})
		},
	}

	root.Flags().StringVar(&inputPath, "input", "", "path to a file of JSON documents (default stdin)")
	root.Flags().IntVar(&chunkBlocks, "chunk-blocks", 256, "slots per pool chunk")
	root.Flags().IntVar(&maxChunks, "max-chunks", 0, "maximum pool chunks (0 = unbounded)")
	root.Flags().IntVar(&queueSize, "queue-size", 64, "bounded queue capacity between framer and worker")
	root.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn, or error")
	root.Flags().BoolVar(&noLocal, "no-goroutine-local", false, "disable per-goroutine pool caching")
	root.Flags().BoolVar(&noValidate, "no-validate", false, "skip JSON validation of framed documents")

	return root
}

type runConfig struct {
	chunkBlocks int
	maxChunks   int
	queueSize   int
	localOn     bool
	validate    bool
}

func run(ctx context.Context, in io.Reader, logger *zap.Logger, cfg runConfig) error {
	p, err := pool.New[record](
		pool.WithChunkBlockCount(cfg.chunkBlocks),
		pool.WithMaxChunks(cfg.maxChunks),
		pool.WithGoroutineLocal(cfg.localOn),
	)
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	defer func() {
		if cerr := p.Close(); cerr != nil {
			logger.Warn("pool closed with outstanding allocations", zap.Error(cerr))
		}
	}()

	q := queue.New(cfg.queueSize)
	defer q.Close()

	seq := 0
	onDoc := func(doc []byte) {
		docCopy := append([]byte(nil), doc...)
		if perr := q.Push(ctx, docCopy); perr != nil {
			logger.Warn("dropped document, queue push failed", zap.Error(perr))
		}
	}
	onErr := func(err error) {
		logger.Error("framer error", zap.Error(err))
	}

	fr := framer.NewIncremental(onDoc, onErr)

	done := make(chan error, 1)
	go func() {
		done <- consume(ctx, p, q, logger, cfg.validate, &seq)
	}()

	reader := bufio.NewReaderSize(in, 64*1024)
	buf := make([]byte, 32*1024)
	for {
		n, rerr := reader.Read(buf)
		if n > 0 {
			fr.Feed(buf[:n])
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			q.Close()
			<-done
			return fmt.Errorf("read input: %w", rerr)
		}
	}
	q.Close()

	if cerr := <-done; cerr != nil {
		return cerr
	}

	p.PrintStats(os.Stdout)
	return nil
}

func consume(ctx context.Context, p *pool.Pool[record], q *queue.Queue, logger *zap.Logger, doValidate bool, seq *int) error {
	for {
		doc, ok, err := q.Pop(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		rec, err := p.Construct(record{seq: *seq, size: len(doc)})
		if err != nil {
			logger.Error("pool exhausted", zap.Error(err))
			continue
		}
		*seq++

		if doValidate {
			if verr := validate.Document(doc); verr != nil {
				logger.Warn("invalid document", zap.Int("seq", rec.seq), zap.Error(verr))
			} else {
				rec.ok = true
			}
		} else {
			rec.ok = true
		}

		logger.Info("processed document",
			zap.Int("seq", rec.seq),
			zap.Int("bytes", rec.size),
			zap.Bool("valid", rec.ok),
		)
		p.Destroy(rec)
	}
}
