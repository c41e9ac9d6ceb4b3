package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/certificate-extractor/internal/common"
	"github.com/joseph-ayodele/certificate-extractor/internal/entity"
)

type DocumentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	GetByHash(ctx context.Context, hash []byte) (*entity.Document, error)
	Create(ctx context.Context, sourcePath, filename, ext string, size int, hash []byte, uploadedAt time.Time) (*entity.Document, error)
	UpsertByHash(ctx context.Context, sourcePath, filename, ext string, size int, hash []byte, uploadedAt time.Time) (*entity.Document, bool, error)
}

type documentRepo struct {
	db     *DB
	logger *slog.Logger
}

func NewDocumentRepository(db *DB, logger *slog.Logger) DocumentRepository {
	return &documentRepo{
		db:     db,
		logger: logger,
	}
}

const documentColumns = `id, source_path, filename, file_ext, file_size, content_hash, uploaded_at`

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	row := r.db.SQL.QueryRowContext(ctx, r.db.rebind(`SELECT `+documentColumns+` FROM documents WHERE id = ?`), id.String())
	doc, err := scanDocument(row)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", id, err)
	}
	return doc, nil
}

func (r *documentRepo) GetByHash(ctx context.Context, hash []byte) (*entity.Document, error) {
	row := r.db.SQL.QueryRowContext(ctx, r.db.rebind(`SELECT `+documentColumns+` FROM documents WHERE content_hash = ?`), hash)
	doc, err := scanDocument(row)
	if err != nil {
		return nil, fmt.Errorf("document by hash: %w", err)
	}
	return doc, nil
}

func (r *documentRepo) Create(ctx context.Context, sourcePath, filename, ext string, size int, hash []byte, uploadedAt time.Time) (*entity.Document, error) {
	doc := &entity.Document{
		ID:          uuid.New(),
		SourcePath:  sourcePath,
		ContentHash: hash,
		Filename:    filename,
		FileExt:     ext,
		FileSize:    size,
		UploadedAt:  uploadedAt.UTC(),
	}
	_, err := r.db.SQL.ExecContext(ctx,
		r.db.rebind(`INSERT INTO documents (`+documentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		doc.ID.String(), doc.SourcePath, doc.Filename, doc.FileExt, doc.FileSize, doc.ContentHash, formatTime(doc.UploadedAt),
	)
	if err != nil {
		r.logger.Error("failed to create document", "source_path", sourcePath, "filename", filename, "error", err)
		return nil, common.DatabaseError("create document", err)
	}
	return doc, nil
}

// UpsertByHash returns the stored document with the same content hash, or
// creates one. The bool reports whether the document already existed.
func (r *documentRepo) UpsertByHash(ctx context.Context, sourcePath, filename, ext string, size int, hash []byte, uploadedAt time.Time) (*entity.Document, bool, error) {
	existing, err := r.GetByHash(ctx, hash)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, false, err
	}
	doc, err := r.Create(ctx, sourcePath, filename, ext, size, hash, uploadedAt)
	if err != nil {
		r.logger.Error("failed to upsert document by hash", "source_path", sourcePath, "filename", filename, "error", err)
		return nil, false, err
	}
	return doc, false, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*entity.Document, error) {
	var (
		doc        entity.Document
		id         string
		uploadedAt string
	)
	err := row.Scan(&id, &doc.SourcePath, &doc.Filename, &doc.FileExt, &doc.FileSize, &doc.ContentHash, &uploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.DatabaseError("scan document", err)
	}
	if doc.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse id: %w", err)
	}
	doc.UploadedAt = parseTime(uploadedAt)
	return &doc, nil
}
