package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyflowhq/studyflow/internal/worker"
)

type countingJob struct {
	mu   sync.Mutex
	runs int
	done chan struct{}
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(ctx context.Context) error {
	j.mu.Lock()
	j.runs++
	j.mu.Unlock()
	select {
	case j.done <- struct{}{}:
	default:
	}
	return nil
}

func (j *countingJob) count() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.runs
}

func TestPool_RunsSubmittedJobs(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	defer pool.Stop()

	job := &countingJob{done: make(chan struct{}, 1)}
	require.True(t, pool.TrySubmit(job))

	select {
	case <-job.done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not run")
	}
	assert.Equal(t, 1, job.count())
}

func TestPool_TrySubmitDropsWhenFull(t *testing.T) {
	// Pool never started, so nothing drains the queue.
	pool := worker.NewPool(1, 1)

	job := &countingJob{done: make(chan struct{}, 1)}
	assert.True(t, pool.TrySubmit(job))
	assert.False(t, pool.TrySubmit(job), "a full queue drops instead of blocking")
}

func TestPool_StopDrainsQueue(t *testing.T) {
	pool := worker.NewPool(2, 8)
	pool.Start(context.Background())

	job := &countingJob{done: make(chan struct{}, 8)}
	for i := 0; i < 3; i++ {
		require.True(t, pool.TrySubmit(job))
	}

	for i := 0; i < 3; i++ {
		select {
		case <-job.done:
		case <-time.After(2 * time.Second):
			t.Fatal("job was not run")
		}
	}
	pool.Stop()
	assert.Equal(t, 3, job.count())
}
