package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, username, doc_type, filename, storage_key, url, mime_type, size_bytes, uploaded_at`

// Create inserts a new document row.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, username, doc_type, filename, storage_key, url, mime_type, size_bytes, uploaded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.Username,
		doc.DocType,
		doc.FileName,
		doc.StorageKey,
		doc.URL,
		doc.MimeType,
		doc.SizeBytes,
		doc.UploadedAt,
	)
	return err
}

// GetByID fetches a document by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE id = $1
LIMIT 1`

	var doc Document
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.Username,
		&doc.DocType,
		&doc.FileName,
		&doc.StorageKey,
		&doc.URL,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListByUser lists a user's documents, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, username string) ([]Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE username = $1
ORDER BY uploaded_at DESC`

	return r.queryDocuments(ctx, query, username)
}

// ListAll lists every stored document, newest first.
func (r *PGRepo) ListAll(ctx context.Context) ([]Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
ORDER BY uploaded_at DESC`

	return r.queryDocuments(ctx, query)
}

// Delete removes a document row.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM documents WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) queryDocuments(ctx context.Context, query string, args ...any) ([]Document, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(
			&doc.ID,
			&doc.Username,
			&doc.DocType,
			&doc.FileName,
			&doc.StorageKey,
			&doc.URL,
			&doc.MimeType,
			&doc.SizeBytes,
			&doc.UploadedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
