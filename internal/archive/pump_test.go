package archive

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/galaxies/internal/config"
	"github.com/udisondev/galaxies/internal/game/combat"
	"github.com/udisondev/galaxies/internal/testutil"
)

type recordingSink struct {
	mu      sync.Mutex
	batches [][]combat.Entry
	err     error
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Write(_ context.Context, entries []combat.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, append([]combat.Entry(nil), entries...))
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

func (s *recordingSink) batchSizes() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, 0, len(s.batches))
	for _, b := range s.batches {
		out = append(out, len(b))
	}
	return out
}

func entry(seq uint64) combat.Entry {
	return combat.Entry{Seq: seq, Encounter: "enc-1", Type: combat.EventPlayerAttack, AttackerID: "hero", TargetID: "orc"}
}

func TestPump_FlushesFullBatches(t *testing.T) {
	sink := &recordingSink{}
	p := NewPump(config.Archive{BufferSize: 16, BatchSize: 2, FlushInterval: time.Hour}, sink)

	ctx, cancel := testutil.ContextWithCancel(t)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx) }()

	for i := uint64(1); i <= 4; i++ {
		require.True(t, p.Publish(entry(i)))
	}

	require.Eventually(t, func() bool { return sink.count() == 4 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{2, 2}, sink.batchSizes())

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
}

func TestPump_FlushesPartialBatchOnInterval(t *testing.T) {
	sink := &recordingSink{}
	p := NewPump(config.Archive{BufferSize: 16, BatchSize: 100, FlushInterval: 10 * time.Millisecond}, sink)

	ctx, _ := testutil.ContextWithCancel(t)
	go func() { _ = p.Run(ctx) }()

	require.True(t, p.Publish(entry(1)))
	require.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestPump_CloseDrainsBuffered(t *testing.T) {
	sink := &recordingSink{}
	p := NewPump(config.Archive{BufferSize: 16, BatchSize: 2, FlushInterval: time.Hour}, sink)

	for i := uint64(1); i <= 3; i++ {
		require.True(t, p.Publish(entry(i)))
	}
	p.Close()
	assert.False(t, p.Publish(entry(4)), "closed pump rejects entries")

	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, []int{2, 1}, sink.batchSizes())

	published, dropped, written, failed := p.Stats()
	assert.Equal(t, int64(3), published)
	assert.Equal(t, int64(1), dropped)
	assert.Equal(t, int64(3), written)
	assert.Zero(t, failed)
}

func TestPump_PublishNeverBlocks(t *testing.T) {
	p := NewPump(config.Archive{BufferSize: 2, BatchSize: 10, FlushInterval: time.Hour})

	assert.True(t, p.Publish(entry(1)))
	assert.True(t, p.Publish(entry(2)))

	done := make(chan bool, 1)
	go func() { done <- p.Publish(entry(3)) }()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full buffer")
	}

	_, dropped, _, _ := p.Stats()
	assert.Equal(t, int64(1), dropped)
}

func TestPump_SinkFailureDoesNotStopOthers(t *testing.T) {
	bad := &recordingSink{err: testutil.ErrSinkDown}
	good := &recordingSink{}
	p := NewPump(config.Archive{BufferSize: 4, BatchSize: 1, FlushInterval: time.Hour}, bad, good)

	require.True(t, p.Publish(entry(1)))
	require.True(t, p.Publish(entry(2)))
	p.Close()
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, 2, good.count())
	assert.Equal(t, 2, bad.count())
	_, _, written, failed := p.Stats()
	assert.Equal(t, int64(2), failed)
	assert.Equal(t, int64(2), written, "one sink accepted both batches")
}

func TestPump_AllSinksFailingWritesNothing(t *testing.T) {
	p := NewPump(config.Archive{BufferSize: 4, BatchSize: 1, FlushInterval: time.Hour},
		&recordingSink{err: testutil.ErrSinkDown}, &recordingSink{err: testutil.ErrSinkDown})

	require.True(t, p.Publish(entry(1)))
	p.Close()
	require.NoError(t, p.Run(context.Background()))

	published, dropped, written, failed := p.Stats()
	assert.Equal(t, int64(1), published)
	assert.Zero(t, dropped)
	assert.Zero(t, written)
	assert.Equal(t, int64(2), failed, "failures are counted per sink")
}

func TestPump_AttachToLog(t *testing.T) {
	sink := &recordingSink{}
	p := NewPump(config.Archive{BufferSize: 4, BatchSize: 10, FlushInterval: time.Hour}, sink)

	log := combat.NewLog(8)
	p.Attach(log)
	log.Append(entry(0))
	log.Append(entry(0))

	p.Close()
	require.NoError(t, p.Run(context.Background()))

	require.Equal(t, []int{2}, sink.batchSizes())
	assert.Equal(t, uint64(1), sink.batches[0][0].Seq)
	assert.Equal(t, uint64(2), sink.batches[0][1].Seq)
}
