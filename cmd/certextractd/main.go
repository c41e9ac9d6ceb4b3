package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/joseph-ayodele/certificate-extractor/internal/async"
	"github.com/joseph-ayodele/certificate-extractor/internal/common"
	"github.com/joseph-ayodele/certificate-extractor/internal/dictionary"
	"github.com/joseph-ayodele/certificate-extractor/internal/extract"
	"github.com/joseph-ayodele/certificate-extractor/internal/ingest"
	"github.com/joseph-ayodele/certificate-extractor/internal/pipeline"
	repo "github.com/joseph-ayodele/certificate-extractor/internal/repository"
	svc "github.com/joseph-ayodele/certificate-extractor/internal/server"
)

func main() {
	// Setup structured logger that outputs messages with variables but no time/level
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	addr := cfg.Server.GRPCAddr
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dict, err := dictionary.Load(cfg.Extraction.TranslationsFile)
	if err != nil {
		logger.Error("failed to load dictionaries", "error", err, "file", cfg.Extraction.TranslationsFile)
		os.Exit(1)
	}
	engine := extract.NewEngine(dict, logger)

	db, err := repo.Open(ctx, repo.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close(logger)

	if err := db.HealthCheck(ctx, 5*time.Second, logger); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	docsRepo := repo.NewDocumentRepository(db, logger)
	jobsRepo := repo.NewExtractJobRepository(db, logger)
	processor := pipeline.NewProcessor(logger, engine, docsRepo, jobsRepo, cfg.Extraction.MinConfidence)
	ingestor := ingest.NewFSIngestor(docsRepo, logger)

	queue := async.NewProcessorQueue(processor, logger,
		async.WithWorkers(cfg.Ingest.Workers),
		async.WithQueueSize(cfg.Ingest.QueueSize),
		async.WithProcessTimeout(cfg.Ingest.ProcessTimeout),
	)

	if cfg.Ingest.WatchDir != "" {
		if err := watch(ctx, cfg, ingestor, queue, logger); err != nil {
			logger.Error("failed to start watcher", "dir", cfg.Ingest.WatchDir, "error", err)
			os.Exit(1)
		}
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("failed to listen on address", "addr", addr, "error", err)
		os.Exit(1)
	}
	service := svc.NewExtractionService(engine, ingestor, processor, jobsRepo, queue, cfg.DefaultTemplate(), logger)
	grpcServer, healthServer := svc.New(service, logger)

	logger.Info("certextractd listening", "addr", addr, "translations", dict.Translator().Len())
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			slog.Error("gRPC serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Ingest.ProcessTimeout+5*time.Second)
	defer cancel()
	queue.Shutdown(shutdownCtx)
	grpcServer.GracefulStop()
}

// watch ingests every certificate file that appears under the watch directory
// and queues it for extraction with the default template.
func watch(ctx context.Context, cfg *common.Config, ing *ingest.FSIngestor, queue async.Queue, logger *slog.Logger) error {
	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{cfg.Ingest.WatchDir},
		InitialScan: true,
		Debounce:    cfg.Ingest.Debounce,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	template := cfg.DefaultTemplate()
	go func() {
		for {
			select {
			case path, ok := <-events:
				if !ok {
					return
				}
				r, err := ing.IngestPath(ctx, path)
				if err != nil {
					logger.Warn("watch.ingest.failed", "path", path, "error", err)
					continue
				}
				if r.Deduplicated {
					continue
				}
				docID, err := uuid.Parse(r.DocumentID)
				if err != nil {
					continue
				}
				if err := queue.Enqueue(ctx, async.Job{DocumentID: docID, Template: template}); err != nil {
					logger.Warn("watch.enqueue.failed", "path", path, "error", err)
				}
			case err, ok := <-errs:
				if !ok {
					return
				}
				logger.Warn("watch.error", "error", err)
			}
		}
	}()
	return nil
}
