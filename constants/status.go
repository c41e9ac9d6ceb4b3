package constants

// JobStatus is the canonical status for rows in extract_job.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued    JobStatus = "QUEUED"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusExtracted JobStatus = "EXTRACTED" // record built and validated
	JobStatusFailed    JobStatus = "FAILED"
)
