package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/extract"
	"github.com/joseph-ayodele/certificate-extractor/internal/ocr"
	"github.com/joseph-ayodele/certificate-extractor/internal/record"
	"github.com/joseph-ayodele/certificate-extractor/internal/repository"
)

// Processor reads an ingested document, extracts its record and persists the
// outcome on an extract_job row.
type Processor struct {
	logger        *slog.Logger
	engine        *extract.Engine
	docsRepo      repository.DocumentRepository
	jobsRepo      repository.ExtractJobRepository
	minConfidence float32
}

func NewProcessor(
	logger *slog.Logger,
	engine *extract.Engine,
	docsRepo repository.DocumentRepository,
	jobsRepo repository.ExtractJobRepository,
	minConfidence float32,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if minConfidence == 0 {
		minConfidence = 0.60
	}
	return &Processor{
		logger:        logger,
		engine:        engine,
		docsRepo:      docsRepo,
		jobsRepo:      jobsRepo,
		minConfidence: minConfidence,
	}
}

// ProcessDocument runs one extraction for documentID. The job ID is returned
// whenever a job was started, including on failure.
func (p *Processor) ProcessDocument(ctx context.Context, documentID uuid.UUID, template constants.TemplateType) (uuid.UUID, *record.Record, error) {
	doc, err := p.docsRepo.GetByID(ctx, documentID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("get document: %w", err)
	}
	if _, ok := constants.AllowedExtensions[constants.NormalizeExt(doc.FileExt)]; !ok {
		return uuid.Nil, nil, fmt.Errorf("unsupported format: %s", doc.FileExt)
	}

	job, err := p.jobsRepo.Start(ctx, doc.ID, template)
	if err != nil {
		return uuid.Nil, nil, err
	}

	text, err := readText(ctx, doc.SourcePath)
	if err != nil {
		p.logger.Error("processor.read.failed", "document_id", documentID, "job_id", job.ID, "err", err)
		p.fail(ctx, job.ID, err)
		return job.ID, nil, err
	}

	rec := p.engine.Extract(text, template)
	data, err := json.Marshal(rec)
	if err == nil {
		err = record.ValidateJSON(rec.Template, data)
	}
	if err != nil {
		p.logger.Error("processor.extract.failed", "document_id", documentID, "job_id", job.ID, "err", err)
		p.fail(ctx, job.ID, err)
		return job.ID, nil, fmt.Errorf("extract: %w", err)
	}

	confidence := ocr.HeuristicConfidence(text)
	needsReview := confidence < p.minConfidence || len(rec.Notes) > 0
	if needsReview {
		p.logger.Warn("processor.review", "job_id", job.ID, "confidence", confidence, "notes", len(rec.Notes))
	}

	if err := p.jobsRepo.FinishSuccess(ctx, job.ID, rec.Template, data, confidence, needsReview); err != nil {
		return job.ID, rec, err
	}
	p.logger.Info("processor.extract.ok",
		"document_id", documentID,
		"job_id", job.ID,
		"template", rec.Template,
		"confidence", confidence,
	)
	return job.ID, rec, nil
}

func (p *Processor) fail(ctx context.Context, jobID uuid.UUID, cause error) {
	if err := p.jobsRepo.FinishFailure(ctx, jobID, cause.Error()); err != nil {
		p.logger.Error("processor.finish_failure.failed", "job_id", jobID, "err", err)
	}
}
