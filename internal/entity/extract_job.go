package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ExtractJob represents an extract job for data transfer between layers.
type ExtractJob struct {
	ID           uuid.UUID       `json:"id"`
	DocumentID   uuid.UUID       `json:"document_id"`
	Template     string          `json:"template"`
	StartedAt    time.Time       `json:"started_at"`
	FinishedAt   *time.Time      `json:"finished_at,omitempty"`
	Status       string          `json:"status"`
	ErrorMessage *string         `json:"error_message,omitempty"`
	Confidence   *float32        `json:"confidence,omitempty"`
	NeedsReview  bool            `json:"needs_review"`
	RecordJSON   json.RawMessage `json:"record_json,omitempty"`
}
