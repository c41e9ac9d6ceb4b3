package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/common"
	"github.com/joseph-ayodele/certificate-extractor/internal/entity"
)

type ExtractJobRepository interface {
	Start(ctx context.Context, documentID uuid.UUID, template constants.TemplateType) (*entity.ExtractJob, error)
	FinishSuccess(ctx context.Context, jobID uuid.UUID, template constants.TemplateType, record json.RawMessage, confidence float32, needsReview bool) error
	FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error
	GetByID(ctx context.Context, jobID uuid.UUID) (*entity.ExtractJob, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*entity.ExtractJob, error)
}

type extractJobRepo struct {
	db  *DB
	log *slog.Logger
}

func NewExtractJobRepository(db *DB, log *slog.Logger) ExtractJobRepository {
	return &extractJobRepo{db: db, log: log}
}

const jobColumns = `id, document_id, template, status, started_at, finished_at, error_message, confidence, needs_review, record_json`

func (r *extractJobRepo) Start(ctx context.Context, documentID uuid.UUID, template constants.TemplateType) (*entity.ExtractJob, error) {
	job := &entity.ExtractJob{
		ID:         uuid.New(),
		DocumentID: documentID,
		Template:   string(template),
		Status:     string(constants.JobStatusRunning),
		StartedAt:  time.Now().UTC(),
	}
	_, err := r.db.SQL.ExecContext(ctx,
		r.db.rebind(`INSERT INTO extract_jobs (id, document_id, template, status, started_at, needs_review) VALUES (?, ?, ?, ?, ?, ?)`),
		job.ID.String(), documentID.String(), job.Template, job.Status, formatTime(job.StartedAt), false,
	)
	if err != nil {
		r.log.Error("extract_job start failed", "document_id", documentID, "err", err)
		return nil, common.DatabaseError("start job", err)
	}
	r.log.Info("extract_job started", "job_id", job.ID, "document_id", documentID, "template", template)
	return job, nil
}

// FinishSuccess records the extracted record. template is the resolved one,
// which differs from the requested one when detection ran.
func (r *extractJobRepo) FinishSuccess(ctx context.Context, jobID uuid.UUID, template constants.TemplateType, record json.RawMessage, confidence float32, needsReview bool) error {
	res, err := r.db.SQL.ExecContext(ctx,
		r.db.rebind(`UPDATE extract_jobs SET template = ?, status = ?, finished_at = ?, confidence = ?, needs_review = ?, record_json = ? WHERE id = ?`),
		string(template), string(constants.JobStatusExtracted), formatTime(time.Now()), confidence, needsReview, string(record), jobID.String(),
	)
	if err != nil {
		err = common.DatabaseError("finish job", err)
	} else {
		err = expectOneRow(res)
	}
	if err != nil {
		r.log.Error("extract_job finish(OK) failed", "job_id", jobID, "err", err)
		return fmt.Errorf("finish job %s: %w", jobID, err)
	}
	r.log.Info("extract_job finished (EXTRACTED)", "job_id", jobID, "template", template, "needs_review", needsReview)
	return nil
}

func (r *extractJobRepo) FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error {
	res, err := r.db.SQL.ExecContext(ctx,
		r.db.rebind(`UPDATE extract_jobs SET status = ?, finished_at = ?, error_message = ? WHERE id = ?`),
		string(constants.JobStatusFailed), formatTime(time.Now()), message, jobID.String(),
	)
	if err != nil {
		err = common.DatabaseError("fail job", err)
	} else {
		err = expectOneRow(res)
	}
	if err != nil {
		r.log.Error("extract_job finish(FAILED) failed", "job_id", jobID, "err", err)
		return fmt.Errorf("fail job %s: %w", jobID, err)
	}
	r.log.Warn("extract_job finished (FAILED)", "job_id", jobID, "error", message)
	return nil
}

func (r *extractJobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*entity.ExtractJob, error) {
	row := r.db.SQL.QueryRowContext(ctx, r.db.rebind(`SELECT `+jobColumns+` FROM extract_jobs WHERE id = ?`), jobID.String())
	job, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", jobID, err)
	}
	return job, nil
}

func (r *extractJobRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*entity.ExtractJob, error) {
	rows, err := r.db.SQL.QueryContext(ctx,
		r.db.rebind(`SELECT `+jobColumns+` FROM extract_jobs WHERE document_id = ? ORDER BY started_at`), documentID.String())
	if err != nil {
		return nil, common.DatabaseError("list jobs", err)
	}
	defer rows.Close()

	var jobs []*entity.ExtractJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, common.DatabaseError("list jobs", err)
	}
	return jobs, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return common.DatabaseError("rows affected", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanJob(row rowScanner) (*entity.ExtractJob, error) {
	var (
		job        entity.ExtractJob
		id, docID  string
		startedAt  string
		finishedAt sql.NullString
		errMsg     sql.NullString
		confidence sql.NullFloat64
		recordJSON sql.NullString
	)
	err := row.Scan(&id, &docID, &job.Template, &job.Status, &startedAt, &finishedAt, &errMsg, &confidence, &job.NeedsReview, &recordJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.DatabaseError("scan job", err)
	}
	if job.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse id: %w", err)
	}
	if job.DocumentID, err = uuid.Parse(docID); err != nil {
		return nil, fmt.Errorf("parse document id: %w", err)
	}
	job.StartedAt = parseTime(startedAt)
	job.FinishedAt = parseNullableTime(finishedAt)
	if errMsg.Valid {
		job.ErrorMessage = &errMsg.String
	}
	if confidence.Valid {
		c := float32(confidence.Float64)
		job.Confidence = &c
	}
	if recordJSON.Valid && recordJSON.String != "" {
		job.RecordJSON = json.RawMessage(recordJSON.String)
	}
	return &job, nil
}
