package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type BatchJobStatus string

const (
	JobQueued    BatchJobStatus = "queued"
	JobRunning   BatchJobStatus = "running"
	JobCompleted BatchJobStatus = "completed"
	JobCancelled BatchJobStatus = "cancelled"
	JobFailed    BatchJobStatus = "failed"
)

// BatchJob is a snapshot of one queued or running analysis batch.
type BatchJob struct {
	ID        uuid.UUID      `json:"id"`
	ProjectID uuid.UUID      `json:"project_id"`
	Status    BatchJobStatus `json:"status"`
	Total     int            `json:"total"`
	Processed int            `json:"processed"`
	Result    *BatchResult   `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// BatchRunner runs analysis batches off the request path. A single goroutine
// consumes the queue, so batches run one at a time and each batch processes
// its resumes sequentially. Cancellation takes effect before the next resume
// starts; the in-flight scorer call is never interrupted.
type BatchRunner interface {
	Start()
	Stop()
	Enqueue(projectID uuid.UUID, ids []uuid.UUID, criteria Criteria) (uuid.UUID, error)
	Job(id uuid.UUID) (*BatchJob, bool)
	Cancel(id uuid.UUID) bool
}

type batchRunner struct {
	analyzer AnalyzerService

	mu      sync.Mutex
	jobs    map[uuid.UUID]*batchJobState
	queue   chan uuid.UUID
	stopped chan struct{}
	wg      sync.WaitGroup
}

type batchJobState struct {
	job      BatchJob
	ids      []uuid.UUID
	criteria Criteria
	cancel   context.CancelFunc
}

func NewBatchRunner(analyzer AnalyzerService) BatchRunner {
	return &batchRunner{
		analyzer: analyzer,
		jobs:     make(map[uuid.UUID]*batchJobState),
		queue:    make(chan uuid.UUID, 100),
		stopped:  make(chan struct{}),
	}
}

// Start implements BatchRunner.
func (b *batchRunner) Start() {
	b.wg.Add(1)
	go b.run()
	log.Println("✅ Batch runner started")
}

// Stop implements BatchRunner.
func (b *batchRunner) Stop() {
	close(b.stopped)
	b.wg.Wait()
	log.Println("✅ Batch runner stopped")
}

// Enqueue implements BatchRunner. Once Stop has been called no new job is
// accepted; the consumer goroutine is gone and a queued job would never run.
func (b *batchRunner) Enqueue(projectID uuid.UUID, ids []uuid.UUID, criteria Criteria) (uuid.UUID, error) {
	select {
	case <-b.stopped:
		return uuid.Nil, context.Canceled
	default:
	}

	state := &batchJobState{
		job: BatchJob{
			ID:        uuid.New(),
			ProjectID: projectID,
			Status:    JobQueued,
			Total:     len(ids),
			CreatedAt: time.Now(),
		},
		ids:      ids,
		criteria: criteria,
	}

	b.mu.Lock()
	b.jobs[state.job.ID] = state
	b.mu.Unlock()

	select {
	case b.queue <- state.job.ID:
		log.Printf("📥 Analysis batch %s enqueued (%d resumes)\n", state.job.ID, len(ids))
		return state.job.ID, nil
	case <-b.stopped:
		b.mu.Lock()
		delete(b.jobs, state.job.ID)
		b.mu.Unlock()
		return uuid.Nil, context.Canceled
	}
}

// Job implements BatchRunner. Returns a copy safe to serialize.
func (b *batchRunner) Job(id uuid.UUID) (*BatchJob, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, ok := b.jobs[id]
	if !ok {
		return nil, false
	}

	snapshot := state.job
	return &snapshot, true
}

// Cancel implements BatchRunner. Queued jobs are cancelled immediately;
// running jobs stop before their next resume.
func (b *batchRunner) Cancel(id uuid.UUID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, ok := b.jobs[id]
	if !ok {
		return false
	}

	switch state.job.Status {
	case JobQueued:
		state.job.Status = JobCancelled
		return true
	case JobRunning:
		if state.cancel != nil {
			state.cancel()
		}
		return true
	default:
		return false
	}
}

func (b *batchRunner) run() {
	defer b.wg.Done()

	for {
		select {
		case <-b.stopped:
			return
		case id := <-b.queue:
			b.process(id)
		}
	}
}

func (b *batchRunner) process(id uuid.UUID) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b.mu.Lock()
	state, ok := b.jobs[id]
	if !ok || state.job.Status != JobQueued {
		b.mu.Unlock()
		return
	}
	state.job.Status = JobRunning
	state.cancel = cancel
	projectID, ids, criteria := state.job.ProjectID, state.ids, state.criteria
	b.mu.Unlock()

	log.Printf("🔄 Running analysis batch %s\n", id)

	onProgress := func(processed int) {
		b.mu.Lock()
		state.job.Processed = processed
		b.mu.Unlock()
	}

	result, err := b.analyzer.AnalyzeBatch(ctx, projectID, ids, criteria, onProgress)

	b.mu.Lock()
	defer b.mu.Unlock()

	state.job.Result = result
	state.cancel = nil

	switch {
	case ctx.Err() != nil:
		state.job.Status = JobCancelled
		log.Printf("🛑 Analysis batch %s cancelled after %d resumes\n", id, state.job.Processed)
	case err != nil:
		state.job.Status = JobFailed
		state.job.Error = err.Error()
		log.Printf("❌ Analysis batch %s failed: %v\n", id, err)
	default:
		state.job.Status = JobCompleted
		log.Printf("✅ Analysis batch %s completed: %d succeeded, %d failed\n",
			id, len(result.Succeeded), len(result.Failed))
	}
}
