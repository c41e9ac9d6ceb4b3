package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/async"
	"github.com/joseph-ayodele/certificate-extractor/internal/common"
	"github.com/joseph-ayodele/certificate-extractor/internal/entity"
	"github.com/joseph-ayodele/certificate-extractor/internal/extract"
	"github.com/joseph-ayodele/certificate-extractor/internal/ingest"
	"github.com/joseph-ayodele/certificate-extractor/internal/ocr"
	"github.com/joseph-ayodele/certificate-extractor/internal/pipeline"
	"github.com/joseph-ayodele/certificate-extractor/internal/record"
	"github.com/joseph-ayodele/certificate-extractor/internal/repository"
)

// maxTextRunes bounds the text accepted by Extract.
const maxTextRunes = 1 << 20

type ExtractionService struct {
	engine          *extract.Engine
	ingestor        ingest.Ingestor
	processor       *pipeline.Processor
	jobs            repository.ExtractJobRepository
	queue           async.Queue
	defaultTemplate constants.TemplateType
	logger          *slog.Logger
}

// NewExtractionService wires the service. queue may be nil, in which case
// IngestFile always processes inline.
func NewExtractionService(
	engine *extract.Engine,
	ing ingest.Ingestor,
	proc *pipeline.Processor,
	jobs repository.ExtractJobRepository,
	queue async.Queue,
	defaultTemplate constants.TemplateType,
	logger *slog.Logger,
) *ExtractionService {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultTemplate == "" {
		defaultTemplate = constants.TemplateAuto
	}
	return &ExtractionService{
		engine:          engine,
		ingestor:        ing,
		processor:       proc,
		jobs:            jobs,
		queue:           queue,
		defaultTemplate: defaultTemplate,
		logger:          logger,
	}
}

var _ ExtractionServer = (*ExtractionService)(nil)

func (s *ExtractionService) template(req *structpb.Struct) (constants.TemplateType, error) {
	raw := strings.TrimSpace(stringField(req, "template"))
	if raw == "" {
		return s.defaultTemplate, nil
	}
	t, ok := constants.Canonicalize(raw)
	if !ok {
		return "", common.InvalidArgumentErrorf("unknown template %q", raw)
	}
	return t, nil
}

func (s *ExtractionService) Extract(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	text := stringField(req, "text")
	v := common.NewValidator().
		Field("text", text, common.Required, common.MaxLength(maxTextRunes)).
		Field("template", stringField(req, "template"), common.Template)
	if err := common.ValidateAndReturnError(v); err != nil {
		s.logger.Warn("extract request invalid", "request_id", common.RequestIDFromContext(ctx), "error", err)
		return nil, err
	}
	t, err := s.template(req)
	if err != nil {
		return nil, err
	}

	rec := s.engine.Extract(text, t)
	out := map[string]any{
		"template":   string(rec.Template),
		"confidence": float64(ocr.HeuristicConfidence(text)),
		"notes":      stringsToAny(rec.Notes),
		"record":     rec.Map(),
	}
	if boolField(req, "summary") {
		out["summary"] = record.Summary(rec)
	}
	s.logger.Info("extract served", "request_id", common.RequestIDFromContext(ctx), "template", rec.Template)
	return toStruct(out)
}

func (s *ExtractionService) IngestFile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	path := strings.TrimSpace(stringField(req, "path"))
	if path == "" {
		s.logger.Error("ingest request missing path")
		return nil, common.InvalidArgumentError("path is required")
	}
	t, err := s.template(req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("starting file ingest", "path", path, "template", t)
	r, err := s.ingestor.IngestPath(ctx, path)
	if err != nil {
		return nil, common.InvalidArgumentErrorf("ingest: %v", err)
	}
	s.logger.Info("file ingest succeeded", "document_id", r.DocumentID, "deduplicated", r.Deduplicated)

	out := map[string]any{
		"document_id":      r.DocumentID,
		"deduplicated":     r.Deduplicated,
		"content_hash_hex": r.HashHex,
		"file_ext":         r.FileExt,
		"uploaded_at":      r.UploadedAt.UTC().Format(time.RFC3339),
		"source_path":      r.SourcePath,
	}

	docID, err := uuid.Parse(r.DocumentID)
	if err != nil {
		return nil, common.InternalErrorf("bad document id %q", r.DocumentID)
	}

	if boolField(req, "async") && s.queue != nil {
		if err := s.queue.Enqueue(ctx, async.Job{DocumentID: docID, Template: t, TraceID: common.RequestIDFromContext(ctx)}); err != nil {
			return nil, common.InternalErrorf("enqueue: %v", err)
		}
		out["status"] = string(constants.JobStatusQueued)
		return toStruct(out)
	}

	jobID, rec, err := s.processor.ProcessDocument(ctx, docID, t)
	if jobID != uuid.Nil {
		out["job_id"] = jobID.String()
	}
	if err != nil {
		s.logger.Error("pipeline.failed", "document_id", r.DocumentID, "err", err)
		out["status"] = string(constants.JobStatusFailed)
		out["error"] = err.Error()
		return toStruct(out)
	}
	out["status"] = string(constants.JobStatusExtracted)
	out["template"] = string(rec.Template)
	out["record"] = rec.Map()
	return toStruct(out)
}

func (s *ExtractionService) GetJob(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raw := strings.TrimSpace(stringField(req, "job_id"))
	if err := common.ValidateAndReturnError(common.NewValidator().Field("job_id", raw, common.UUID)); err != nil {
		return nil, err
	}
	jobID := uuid.MustParse(raw)

	job, err := s.jobs.GetByID(ctx, jobID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NotFoundError("job not found")
	}
	if err != nil {
		s.logger.Error("get job failed", "job_id", jobID, "error", err)
		return nil, common.InternalError("get job failed")
	}
	out, err := jobToMap(job)
	if err != nil {
		return nil, common.InternalErrorf("decode job record: %v", err)
	}
	return toStruct(out)
}

func jobToMap(job *entity.ExtractJob) (map[string]any, error) {
	out := map[string]any{
		"job_id":       job.ID.String(),
		"document_id":  job.DocumentID.String(),
		"template":     job.Template,
		"status":       job.Status,
		"started_at":   job.StartedAt.Format(time.RFC3339Nano),
		"needs_review": job.NeedsReview,
	}
	if job.FinishedAt != nil {
		out["finished_at"] = job.FinishedAt.Format(time.RFC3339Nano)
	}
	if job.ErrorMessage != nil {
		out["error"] = *job.ErrorMessage
	}
	if job.Confidence != nil {
		out["confidence"] = float64(*job.Confidence)
	}
	if len(job.RecordJSON) > 0 {
		var rec map[string]any
		if err := json.Unmarshal(job.RecordJSON, &rec); err != nil {
			return nil, err
		}
		out["record"] = rec
	}
	return out, nil
}

func toStruct(m map[string]any) (*structpb.Struct, error) {
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, common.InternalErrorf("encode response: %v", err)
	}
	return st, nil
}

func stringField(s *structpb.Struct, key string) string {
	if v, ok := s.GetFields()[key]; ok {
		return v.GetStringValue()
	}
	return ""
}

func boolField(s *structpb.Struct, key string) bool {
	if v, ok := s.GetFields()[key]; ok {
		return v.GetBoolValue()
	}
	return false
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
