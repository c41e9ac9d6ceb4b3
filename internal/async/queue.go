package async

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/certificate-extractor/constants"
)

// Job asks for one extraction of an ingested document.
type Job struct {
	DocumentID  uuid.UUID
	Template    constants.TemplateType
	SubmittedAt time.Time
	TraceID     string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

var ErrQueueClosed = errors.New("queue is shutting down")
