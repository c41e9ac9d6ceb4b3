package repository

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/common"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

// setupTestDB opens an in-memory SQLite database with the schema applied.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	logger := discardLogger()
	db, err := Open(context.Background(), Config{DSN: ":memory:"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(logger) })
	return db
}

func hashOf(s string) []byte {
	h := sha256.Sum256([]byte(s))
	return h[:]
}

func TestDialectFor(t *testing.T) {
	assert.Equal(t, Postgres, DialectFor("postgres://u:p@localhost/db"))
	assert.Equal(t, Postgres, DialectFor("postgresql://localhost/db"))
	assert.Equal(t, SQLite, DialectFor("certextract.db"))
	assert.Equal(t, SQLite, DialectFor(":memory:"))
}

func TestRebind(t *testing.T) {
	pg := &DB{Dialect: Postgres}
	assert.Equal(t, "SELECT 1 WHERE a = $1 AND b = $2", pg.rebind("SELECT 1 WHERE a = ? AND b = ?"))

	lite := &DB{Dialect: SQLite}
	assert.Equal(t, "a = ?", lite.rebind("a = ?"))
}

func TestFormatTime_SortsChronologically(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 5, 100_000_000, time.UTC)
	later := base.Add(20 * time.Millisecond)

	assert.Less(t, formatTime(base), formatTime(later))
	assert.True(t, parseTime(formatTime(later)).Equal(later))
	assert.True(t, parseTime("garbage").IsZero())
}

func TestHealthCheck(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, db.HealthCheck(context.Background(), time.Second, discardLogger()))
}

func TestDocumentRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db, discardLogger())
	ctx := context.Background()
	uploaded := time.Now()

	doc, err := repo.Create(ctx, "/in/a.txt", "a.txt", "txt", 42, hashOf("a"), uploaded)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, "/in/a.txt", got.SourcePath)
	assert.Equal(t, "a.txt", got.Filename)
	assert.Equal(t, "txt", got.FileExt)
	assert.Equal(t, 42, got.FileSize)
	assert.Equal(t, hashOf("a"), got.ContentHash)
	assert.WithinDuration(t, uploaded, got.UploadedAt, time.Millisecond)

	byHash, err := repo.GetByHash(ctx, hashOf("a"))
	require.NoError(t, err)
	assert.Equal(t, doc.ID, byHash.ID)
}

func TestDocumentRepository_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db, discardLogger())

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = repo.GetByHash(context.Background(), hashOf("missing"))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDocumentRepository_UpsertByHash(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db, discardLogger())
	ctx := context.Background()

	first, existed, err := repo.UpsertByHash(ctx, "/in/a.txt", "a.txt", "txt", 1, hashOf("same"), time.Now())
	require.NoError(t, err)
	assert.False(t, existed)

	second, existed, err := repo.UpsertByHash(ctx, "/in/copy.txt", "copy.txt", "txt", 1, hashOf("same"), time.Now())
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "/in/a.txt", second.SourcePath)

	_, err = repo.Create(ctx, "/in/dup.txt", "dup.txt", "txt", 1, hashOf("same"), time.Now())
	require.Error(t, err, "content hash is unique")
	assert.ErrorIs(t, err, common.ErrDatabase)

	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.CodeDatabase, appErr.Code)
}

func TestExtractJobRepository_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	logger := discardLogger()
	docs := NewDocumentRepository(db, logger)
	jobs := NewExtractJobRepository(db, logger)
	ctx := context.Background()

	doc, err := docs.Create(ctx, "/in/a.txt", "a.txt", "txt", 1, hashOf("a"), time.Now())
	require.NoError(t, err)

	job, err := jobs.Start(ctx, doc.ID, constants.TemplateAuto)
	require.NoError(t, err)
	assert.Equal(t, string(constants.JobStatusRunning), job.Status)

	got, err := jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, string(constants.JobStatusRunning), got.Status)
	assert.Nil(t, got.FinishedAt)
	assert.Nil(t, got.Confidence)
	assert.Empty(t, got.RecordJSON)

	rec := json.RawMessage(`{"firstname":"David"}`)
	require.NoError(t, jobs.FinishSuccess(ctx, job.ID, constants.BirthCertificate, rec, 0.75, true))

	got, err = jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, string(constants.JobStatusExtracted), got.Status)
	assert.Equal(t, string(constants.BirthCertificate), got.Template)
	require.NotNil(t, got.FinishedAt)
	require.NotNil(t, got.Confidence)
	assert.InDelta(t, 0.75, *got.Confidence, 0.0001)
	assert.True(t, got.NeedsReview)
	assert.JSONEq(t, string(rec), string(got.RecordJSON))
}

func TestExtractJobRepository_FinishFailure(t *testing.T) {
	db := setupTestDB(t)
	logger := discardLogger()
	docs := NewDocumentRepository(db, logger)
	jobs := NewExtractJobRepository(db, logger)
	ctx := context.Background()

	doc, err := docs.Create(ctx, "/in/a.txt", "a.txt", "txt", 1, hashOf("a"), time.Now())
	require.NoError(t, err)
	job, err := jobs.Start(ctx, doc.ID, constants.DivorceCertificate)
	require.NoError(t, err)

	require.NoError(t, jobs.FinishFailure(ctx, job.ID, "file is not UTF-8 text"))

	got, err := jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, string(constants.JobStatusFailed), got.Status)
	require.NotNil(t, got.ErrorMessage)
	assert.Equal(t, "file is not UTF-8 text", *got.ErrorMessage)

	assert.ErrorIs(t, jobs.FinishFailure(ctx, uuid.New(), "x"), common.ErrNotFound)
	_, err = jobs.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestExtractJobRepository_ListByDocument(t *testing.T) {
	db := setupTestDB(t)
	logger := discardLogger()
	docs := NewDocumentRepository(db, logger)
	jobs := NewExtractJobRepository(db, logger)
	ctx := context.Background()

	doc, err := docs.Create(ctx, "/in/a.txt", "a.txt", "txt", 1, hashOf("a"), time.Now())
	require.NoError(t, err)
	other, err := docs.Create(ctx, "/in/b.txt", "b.txt", "txt", 1, hashOf("b"), time.Now())
	require.NoError(t, err)

	first, err := jobs.Start(ctx, doc.ID, constants.BirthCertificate)
	require.NoError(t, err)
	second, err := jobs.Start(ctx, doc.ID, constants.MarriageCertificate)
	require.NoError(t, err)
	_, err = jobs.Start(ctx, other.ID, constants.BirthCertificate)
	require.NoError(t, err)

	list, err := jobs.ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestExtractJobRepository_StartRequiresDocument(t *testing.T) {
	db := setupTestDB(t)
	jobs := NewExtractJobRepository(db, discardLogger())

	_, err := jobs.Start(context.Background(), uuid.New(), constants.BirthCertificate)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDatabase)
	assert.NotErrorIs(t, err, common.ErrNotFound)
}

func TestRepositoryErrorsAfterClose(t *testing.T) {
	logger := discardLogger()
	db, err := Open(context.Background(), Config{DSN: ":memory:"}, logger)
	require.NoError(t, err)
	db.Close(logger)

	err = db.HealthCheck(context.Background(), time.Second, logger)
	assert.ErrorIs(t, err, common.ErrDatabase)

	_, err = NewExtractJobRepository(db, logger).ListByDocument(context.Background(), uuid.New())
	assert.ErrorIs(t, err, common.ErrDatabase)
}
