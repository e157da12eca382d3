// Package ingest counts distinct lines from readers by sharding the input
// across workers, each owning its own estimator, and merging the shards
// once the input is exhausted.
package ingest

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/clarkduvall/hyperloglog"
	"github.com/clarkduvall/hyperloglog/internal/logging"
)

// ErrInvalidOptions is returned when Workers or BatchSize is not positive.
var ErrInvalidOptions = errors.New("ingest: invalid options")

// Options controls sharding and line canonicalization.
type Options struct {
	Logger    *slog.Logger
	Workers   int
	BatchSize int
	Precision uint8
	Trim      bool
	Lower     bool
	SkipEmpty bool
}

// Stats describes one Count run.
type Stats struct {
	Lines   uint64
	Skipped uint64
	Shards  int
}

// Canonicalize applies the trim and lowercase options to line. Invalid
// UTF-8 is lowercased in its ASCII bytes only. It reports
// false when the line should be skipped. The returned slice never aliases
// line.
func (o Options) Canonicalize(line []byte) ([]byte, bool) {
	if o.Trim {
		line = bytes.TrimSpace(line)
	}
	if o.SkipEmpty && len(line) == 0 {
		return nil, false
	}
	if o.Lower {
		if utf8.Valid(line) {
			return bytes.ToLower(line), true
		}
		return asciiLower(line), true
	}
	return bytes.Clone(line), true
}

// asciiLower lowercases A-Z and leaves every other byte alone, so invalid
// UTF-8 input keeps its exact bytes.
func asciiLower(b []byte) []byte {
	out := bytes.Clone(b)
	for i, c := range out {
		if 'A' <= c && c <= 'Z' {
			out[i] = c + 'a' - 'A'
		}
	}
	return out
}

// Count estimates the number of distinct canonical lines across readers.
func Count(ctx context.Context, opts Options, readers ...io.Reader) (*hyperloglog.HyperLogLog, Stats, error) {
	var stats Stats

	if opts.Workers <= 0 || opts.BatchSize <= 0 {
		return nil, stats, fmt.Errorf("%w: workers=%d batch_size=%d", ErrInvalidOptions, opts.Workers, opts.BatchSize)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	shards := make([]*hyperloglog.HyperLogLog, opts.Workers)
	for i := range shards {
		h, err := hyperloglog.New(opts.Precision)
		if err != nil {
			return nil, stats, err
		}
		shards[i] = h
	}

	batches := make(chan [][]byte, opts.Workers)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(batches)
		return produce(gctx, opts, readers, batches, &stats)
	})

	for i, shard := range shards {
		g.Go(func() error {
			var n int
			for batch := range batches {
				for _, el := range batch {
					shard.Add(el)
				}
				n += len(batch)
			}
			logger.Debug("shard done", "shard", i, "elements", n)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	total := shards[0]
	for _, shard := range shards[1:] {
		if err := total.Merge(shard); err != nil {
			return nil, stats, err
		}
	}
	stats.Shards = len(shards)

	logger.Debug("ingest done", "lines", stats.Lines, "skipped", stats.Skipped, "shards", stats.Shards)
	return total, stats, nil
}

func produce(ctx context.Context, opts Options, readers []io.Reader, out chan<- [][]byte, stats *Stats) error {
	batch := make([][]byte, 0, opts.BatchSize)

	send := func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}
		select {
		case out <- batch:
		case <-ctx.Done():
			return ctx.Err()
		}
		batch = make([][]byte, 0, opts.BatchSize)
		return nil
	}

	lines := make(chan line, opts.BatchSize)
	done := make(chan struct{})
	defer close(done)

	// A reader blocked in Read is left behind on cancellation; its
	// goroutine exits once Read returns.
	go readLines(readers, lines, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var (
			l  line
			ok bool
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok = <-lines:
		}
		if !ok {
			return send()
		}
		if l.err != nil {
			return l.err
		}

		stats.Lines++
		el, keep := opts.Canonicalize(l.b)
		if !keep {
			stats.Skipped++
			continue
		}
		batch = append(batch, el)
		if len(batch) == opts.BatchSize {
			if err := send(); err != nil {
				return err
			}
		}
	}
}

// line is one input line without its terminator, or the error that ended
// the input.
type line struct {
	b   []byte
	err error
}

// readLines sends every line of readers in order, then closes out. Lines
// have no length limit. A trailing "\r" is dropped along with the "\n".
func readLines(readers []io.Reader, out chan<- line, done <-chan struct{}) {
	defer close(out)

	emit := func(l line) bool {
		select {
		case out <- l:
			return true
		case <-done:
			return false
		}
	}

	for _, r := range readers {
		br := bufio.NewReader(r)
		for {
			b, err := br.ReadBytes('\n')
			if len(b) > 0 && !emit(line{b: dropEOL(b)}) {
				return
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				emit(line{err: fmt.Errorf("read input: %w", err)})
				return
			}
		}
	}
}

func dropEOL(b []byte) []byte {
	b = bytes.TrimSuffix(b, []byte{'\n'})
	return bytes.TrimSuffix(b, []byte{'\r'})
}
