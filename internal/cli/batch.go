package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/common"
	"github.com/joseph-ayodele/certificate-extractor/internal/ingest"
	"github.com/joseph-ayodele/certificate-extractor/internal/pipeline"
	repo "github.com/joseph-ayodele/certificate-extractor/internal/repository"
)

var (
	batchDir        string
	batchManifest   string
	batchTemplate   string
	batchDSN        string
	batchInMem      bool
	batchSkipHidden bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Ingest and extract a directory of OCR text files",
	Long: `Ingests every .txt/.text/.ocr file under --dir, or the files listed in an
XLSX --manifest, extracts each one and stores the result in the database.
When --manifest is given --dir is ignored and relative manifest paths resolve
against the manifest's directory. Files already stored (same content hash) are
extracted again as a new job.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	cfg := common.LoadConfig()
	batchCmd.Flags().StringVar(&batchDir, "dir", "", "directory of OCR text files")
	batchCmd.Flags().StringVar(&batchManifest, "manifest", "", "XLSX manifest with path and template columns")
	batchCmd.Flags().StringVarP(&batchTemplate, "template", "t", cfg.Extraction.DefaultTemplate, "template for files without one in the manifest")
	batchCmd.Flags().StringVar(&batchDSN, "db", cfg.Database.DSN, "database: SQLite path or postgres:// URL")
	batchCmd.Flags().BoolVar(&batchInMem, "inmem", false, "use an in-memory SQLite database")
	batchCmd.Flags().BoolVar(&batchSkipHidden, "skip-hidden", true, "skip dot files and directories")
	batchCmd.MarkFlagsOneRequired("dir", "manifest")
	rootCmd.AddCommand(batchCmd)
}

// batchStats counts extraction outcomes; ingest outcomes are in ingest.DirStats.
type batchStats struct {
	Extracted   int
	NeedsReview int
	Failed      int
}

func runBatch(cmd *cobra.Command, _ []string) error {
	fallback, ok := constants.Canonicalize(batchTemplate)
	if !ok {
		return fmt.Errorf("unknown template %q", batchTemplate)
	}
	dsn := batchDSN
	if batchInMem {
		dsn = ":memory:"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := common.LoadConfig()
	db, err := repo.Open(ctx, repo.Config{
		DSN:              dsn,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close(logger)

	docsRepo := repo.NewDocumentRepository(db, logger)
	jobsRepo := repo.NewExtractJobRepository(db, logger)
	ingestor := ingest.NewFSIngestor(docsRepo, logger)
	processor := pipeline.NewProcessor(logger, engine, docsRepo, jobsRepo, cfg.Extraction.MinConfidence)

	type item struct {
		result   ingest.IngestionResult
		template constants.TemplateType
	}
	var items []item
	var dirStats ingest.DirStats

	if batchManifest != "" {
		rows, err := ingest.ReadManifest(batchManifest)
		if err != nil {
			return err
		}
		for _, row := range rows {
			dirStats.Scanned++
			dirStats.Matched++
			r, err := ingestor.IngestPath(ctx, row.Path)
			if err != nil {
				dirStats.Failed++
				cmd.Printf("FAILED  %s: %v\n", row.Path, err)
				continue
			}
			dirStats.Succeeded++
			if r.Deduplicated {
				dirStats.Deduplicated++
			}
			items = append(items, item{result: r, template: row.Template})
		}
	} else {
		results, stats, err := ingestor.IngestDirectory(ctx, batchDir, batchSkipHidden)
		if err != nil {
			return err
		}
		dirStats = stats
		for _, r := range results {
			if r.Err != "" {
				cmd.Printf("FAILED  %s: %s\n", r.SourcePath, r.Err)
				continue
			}
			items = append(items, item{result: r, template: fallback})
		}
	}

	var stats batchStats
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		docID, err := uuid.Parse(it.result.DocumentID)
		if err != nil {
			stats.Failed++
			continue
		}
		jobID, _, err := processor.ProcessDocument(ctx, docID, it.template)
		if err != nil {
			stats.Failed++
			cmd.Printf("FAILED  %s: %v\n", it.result.SourcePath, err)
			continue
		}
		job, err := jobsRepo.GetByID(ctx, jobID)
		if err != nil {
			return fmt.Errorf("reading job %s: %w", jobID, err)
		}
		stats.Extracted++
		mark := "OK     "
		if job.NeedsReview {
			stats.NeedsReview++
			mark = "REVIEW "
		}
		cmd.Printf("%s %s  %s  job=%s\n", mark, it.result.SourcePath, job.Template, job.ID)
	}

	cmd.Printf("\nscanned=%d matched=%d ingested=%d deduplicated=%d ingest_failed=%d\n",
		dirStats.Scanned, dirStats.Matched, dirStats.Succeeded, dirStats.Deduplicated, dirStats.Failed)
	cmd.Printf("extracted=%d needs_review=%d failed=%d\n", stats.Extracted, stats.NeedsReview, stats.Failed)
	return nil
}
