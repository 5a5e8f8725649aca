package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

// blockingAnalyzer lets the test hold a batch open and observe cancellation.
type blockingAnalyzer struct {
	mu      sync.Mutex
	started chan struct{}
	release chan struct{}
	result  *BatchResult
	err     error
}

func newBlockingAnalyzer() *blockingAnalyzer {
	return &blockingAnalyzer{
		started: make(chan struct{}),
		release: make(chan struct{}),
		result:  &BatchResult{},
	}
}

func (a *blockingAnalyzer) AnalyzeBatch(ctx context.Context, _ uuid.UUID, ids []uuid.UUID, _ Criteria, onProgress ProgressFunc) (*BatchResult, error) {
	close(a.started)
	select {
	case <-a.release:
	case <-ctx.Done():
		return a.result, ctx.Err()
	}
	if onProgress != nil {
		for i := range ids {
			onProgress(i + 1)
		}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result, a.err
}

func waitForStatus(t *testing.T, runner BatchRunner, id uuid.UUID, want BatchJobStatus) *BatchJob {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, ok := runner.Job(id)
		if ok && job.Status == want {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	job, _ := runner.Job(id)
	t.Fatalf("job never reached %s, last seen: %+v", want, job)
	return nil
}

func TestBatchRunnerCompletesJob(t *testing.T) {
	analyzer := newBlockingAnalyzer()
	analyzer.result = &BatchResult{
		Failed: []BatchFailure{{ID: uuid.New(), Reason: "missing text"}},
	}

	runner := NewBatchRunner(analyzer)
	runner.Start()
	defer runner.Stop()

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	jobID, err := runner.Enqueue(uuid.New(), ids, Criteria{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	<-analyzer.started
	close(analyzer.release)

	job := waitForStatus(t, runner, jobID, JobCompleted)
	if job.Total != 2 || job.Processed != 2 {
		t.Fatalf("expected processed to reach total, got %+v", job)
	}
	if job.Result == nil || len(job.Result.Failed) != 1 {
		t.Fatalf("expected the batch result on the job, got %+v", job.Result)
	}
}

func TestBatchRunnerCancelRunningJob(t *testing.T) {
	analyzer := newBlockingAnalyzer()
	runner := NewBatchRunner(analyzer)
	runner.Start()
	defer runner.Stop()

	jobID, err := runner.Enqueue(uuid.New(), []uuid.UUID{uuid.New()}, Criteria{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	<-analyzer.started
	if !runner.Cancel(jobID) {
		t.Fatalf("expected a running job to be cancellable")
	}

	job := waitForStatus(t, runner, jobID, JobCancelled)
	if job.Result == nil {
		t.Fatalf("a cancelled job keeps its partial result")
	}
}

func TestBatchRunnerCancelQueuedJob(t *testing.T) {
	analyzer := newBlockingAnalyzer()
	runner := NewBatchRunner(analyzer)
	// Not started: the job stays queued.

	jobID, err := runner.Enqueue(uuid.New(), []uuid.UUID{uuid.New()}, Criteria{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !runner.Cancel(jobID) {
		t.Fatalf("expected a queued job to be cancellable")
	}
	job, ok := runner.Job(jobID)
	if !ok || job.Status != JobCancelled {
		t.Fatalf("expected cancelled status, got %+v", job)
	}

	// Cancelling twice is a no-op.
	if runner.Cancel(jobID) {
		t.Fatalf("a cancelled job must not be cancellable again")
	}
}

func TestBatchRunnerRejectsEnqueueAfterStop(t *testing.T) {
	analyzer := newBlockingAnalyzer()
	close(analyzer.release)

	runner := NewBatchRunner(analyzer)
	runner.Start()
	runner.Stop()

	// Nobody drains the queue anymore; the job must be refused, not parked.
	if _, err := runner.Enqueue(uuid.New(), []uuid.UUID{uuid.New()}, Criteria{}); err == nil {
		t.Fatalf("expected enqueue to fail after the runner stopped")
	}
}

func TestBatchRunnerUnknownJob(t *testing.T) {
	runner := NewBatchRunner(newBlockingAnalyzer())

	if _, ok := runner.Job(uuid.New()); ok {
		t.Fatalf("unknown job id must not resolve")
	}
	if runner.Cancel(uuid.New()) {
		t.Fatalf("unknown job id must not be cancellable")
	}
}
