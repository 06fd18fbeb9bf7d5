package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMaintenance struct {
	sweeps  atomic.Int64
	prunes  atomic.Int64
	blockCh chan struct{}
}

func (f *fakeMaintenance) SweepExpired(_ context.Context, _ int) (int, error) {
	f.sweeps.Add(1)
	if f.blockCh != nil {
		<-f.blockCh
	}
	return 0, nil
}

func (f *fakeMaintenance) PruneDownloadLogs(context.Context) (int64, error) {
	f.prunes.Add(1)
	return 0, nil
}

func TestRunOnceExecutesBothJobs(t *testing.T) {
	svc := &fakeMaintenance{}
	s := New(svc, time.Hour, 200, zerolog.Nop())

	s.RunOnce(context.Background())

	assert.Equal(t, int64(1), svc.sweeps.Load())
	assert.Equal(t, int64(1), svc.prunes.Load())
}

func TestRunOnceNeverOverlaps(t *testing.T) {
	svc := &fakeMaintenance{blockCh: make(chan struct{})}
	s := New(svc, time.Hour, 200, zerolog.Nop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.RunOnce(context.Background())
	}()

	// Wait until the first run is inside SweepExpired.
	require.Eventually(t, func() bool {
		return svc.sweeps.Load() == 1
	}, time.Second, time.Millisecond)

	// Concurrent ticks are dropped while a run is in flight.
	s.RunOnce(context.Background())
	s.RunOnce(context.Background())
	assert.Equal(t, int64(1), svc.sweeps.Load())

	close(svc.blockCh)
	wg.Wait()
	assert.Equal(t, int64(1), svc.sweeps.Load())
	assert.Equal(t, int64(1), svc.prunes.Load())
}

func TestStartStopsOnContextCancel(t *testing.T) {
	svc := &fakeMaintenance{}
	s := New(svc, time.Hour, 200, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	// The immediate cycle runs before any tick.
	require.Eventually(t, func() bool {
		return svc.sweeps.Load() == 1
	}, time.Second, time.Millisecond)

	cancel()

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}
