package archive

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/galaxies/internal/config"
	"github.com/udisondev/galaxies/internal/game/combat"
)

const (
	defaultBufferSize    = 1024
	defaultBatchSize     = 64
	defaultFlushInterval = 500 * time.Millisecond

	// shutdownFlushTimeout bounds the final flush after ctx is cancelled.
	shutdownFlushTimeout = 5 * time.Second
)

// Pump buffers entries and writes them to sinks in batches.
//
// Publish never blocks: when the buffer is full the entry is dropped and
// counted. Run owns the sinks; one Run per Pump.
type Pump struct {
	queue chan combat.Entry
	sinks []Sink

	batchSize     int
	flushInterval time.Duration

	closeOnce sync.Once
	done      chan struct{}

	published atomic.Int64
	dropped   atomic.Int64
	written   atomic.Int64
	failed    atomic.Int64
}

// NewPump creates a Pump over sinks. Zero values in cfg fall back to defaults.
func NewPump(cfg config.Archive, sinks ...Sink) *Pump {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}
	return &Pump{
		queue:         make(chan combat.Entry, cfg.BufferSize),
		sinks:         sinks,
		batchSize:     cfg.BatchSize,
		flushInterval: cfg.FlushInterval,
		done:          make(chan struct{}),
	}
}

// Attach subscribes the pump to log.
func (p *Pump) Attach(log *combat.Log) {
	log.Subscribe(func(e combat.Entry) { p.Publish(e) })
}

// Publish enqueues e and reports whether it was accepted.
func (p *Pump) Publish(e combat.Entry) bool {
	select {
	case <-p.done:
		p.dropped.Add(1)
		return false
	default:
	}

	select {
	case p.queue <- e:
		p.published.Add(1)
		return true
	default:
		if n := p.dropped.Add(1); n == 1 || n%100 == 0 {
			slog.Warn("archive buffer full, dropping entries",
				"encounter", e.Encounter,
				"dropped", n)
		}
		return false
	}
}

// Close stops accepting entries. Run flushes what is buffered and returns.
func (p *Pump) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}

// Stats returns counters since creation. written counts entries at least
// one sink accepted; failed counts entries once per sink that rejected them.
func (p *Pump) Stats() (published, dropped, written, failed int64) {
	return p.published.Load(), p.dropped.Load(), p.written.Load(), p.failed.Load()
}

// Run drains the queue until ctx is cancelled or Close is called, writing
// a batch whenever it reaches the batch size or the flush interval passes.
// Sink failures are logged and never stop the pump.
//
// Workflow:
//  1. collect entries from the queue into the pending batch
//  2. flush on full batch or ticker
//  3. on shutdown drain the queue and flush with a bounded timeout
func (p *Pump) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.flushInterval)
	defer ticker.Stop()

	batch := make([]combat.Entry, 0, p.batchSize)
	flush := func(fctx context.Context) {
		if len(batch) == 0 {
			return
		}
		p.flush(fctx, batch)
		batch = make([]combat.Entry, 0, p.batchSize)
	}

	for {
		select {
		case e := <-p.queue:
			batch = append(batch, e)
			if len(batch) >= p.batchSize {
				flush(ctx)
			}
		case <-ticker.C:
			flush(ctx)
		case <-ctx.Done():
			p.Close()
			p.shutdown(&batch)
			return ctx.Err()
		case <-p.done:
			p.shutdown(&batch)
			return nil
		}
	}
}

func (p *Pump) shutdown(batch *[]combat.Entry) {
drain:
	for {
		select {
		case e := <-p.queue:
			*batch = append(*batch, e)
		default:
			break drain
		}
	}

	if len(*batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownFlushTimeout)
	defer cancel()
	for start := 0; start < len(*batch); start += p.batchSize {
		end := min(start+p.batchSize, len(*batch))
		p.flush(ctx, (*batch)[start:end])
	}
	*batch = nil
}

// flush writes batch to every sink concurrently. The batch counts as
// written once at least one sink accepts it.
func (p *Pump) flush(ctx context.Context, batch []combat.Entry) {
	var accepted atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range p.sinks {
		g.Go(func() error {
			if err := s.Write(gctx, batch); err != nil {
				p.failed.Add(int64(len(batch)))
				slog.Error("archive sink write failed",
					"sink", s.Name(),
					"entries", len(batch),
					"error", err)
				return nil
			}
			accepted.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	if accepted.Load() > 0 {
		p.written.Add(int64(len(batch)))
	}

	slog.Debug("archive batch flushed",
		"entries", len(batch),
		"sinks", len(p.sinks))
}
