package async

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/record"
)

type fakeProcessor struct {
	mu    sync.Mutex
	calls []Job
	block chan struct{}
	err   error
}

func (f *fakeProcessor) ProcessDocument(ctx context.Context, documentID uuid.UUID, template constants.TemplateType) (uuid.UUID, *record.Record, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return uuid.Nil, nil, ctx.Err()
		}
	}
	f.mu.Lock()
	f.calls = append(f.calls, Job{DocumentID: documentID, Template: template})
	f.mu.Unlock()
	return uuid.New(), record.New(template), f.err
}

func (f *fakeProcessor) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestProcessorQueue_ProcessesAllJobs(t *testing.T) {
	proc := &fakeProcessor{}
	q := NewProcessorQueue(proc, discardLogger(), WithWorkers(3), WithQueueSize(8))

	for i := 0; i < 10; i++ {
		require.NoError(t, q.Enqueue(context.Background(), Job{DocumentID: uuid.New(), Template: constants.BirthCertificate}))
	}
	q.Shutdown(context.Background())

	assert.Equal(t, 10, proc.count())
}

func TestProcessorQueue_FailuresDoNotStopWorkers(t *testing.T) {
	proc := &fakeProcessor{err: errors.New("boom")}
	q := NewProcessorQueue(proc, discardLogger(), WithWorkers(1))

	require.NoError(t, q.Enqueue(context.Background(), Job{DocumentID: uuid.New()}))
	require.NoError(t, q.Enqueue(context.Background(), Job{DocumentID: uuid.New()}))
	q.Shutdown(context.Background())

	assert.Equal(t, 2, proc.count())
}

func TestProcessorQueue_EnqueueAfterShutdown(t *testing.T) {
	q := NewProcessorQueue(&fakeProcessor{}, discardLogger())
	q.Shutdown(context.Background())
	q.Shutdown(context.Background())

	err := q.Enqueue(context.Background(), Job{DocumentID: uuid.New()})
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestProcessorQueue_BackpressureHonorsContext(t *testing.T) {
	proc := &fakeProcessor{block: make(chan struct{})}
	q := NewProcessorQueue(proc, discardLogger(), WithWorkers(1), WithQueueSize(1))

	// One job held by the worker, one filling the buffer.
	require.NoError(t, q.Enqueue(context.Background(), Job{DocumentID: uuid.New()}))
	require.Eventually(t, func() bool { return len(q.ch) == 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, q.Enqueue(context.Background(), Job{DocumentID: uuid.New()}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := q.Enqueue(ctx, Job{DocumentID: uuid.New()})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(proc.block)
	q.Shutdown(context.Background())
	assert.Equal(t, 2, proc.count())
}

func TestProcessorQueue_ProcessTimeout(t *testing.T) {
	proc := &fakeProcessor{block: make(chan struct{})}
	q := NewProcessorQueue(proc, discardLogger(), WithWorkers(1), WithProcessTimeout(10*time.Millisecond))

	require.NoError(t, q.Enqueue(context.Background(), Job{DocumentID: uuid.New()}))
	q.Shutdown(context.Background())

	assert.Equal(t, 0, proc.count())
}

func TestOptions_IgnoreNonPositive(t *testing.T) {
	q := NewProcessorQueue(&fakeProcessor{}, nil, WithWorkers(0), WithQueueSize(-1), WithProcessTimeout(0))
	defer q.Shutdown(context.Background())

	assert.Equal(t, 4, q.workers)
	assert.Equal(t, 256, cap(q.ch))
	assert.Equal(t, 30*time.Second, q.timeout)
}
