package kyc

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const kycColumns = `id, username, document_type, extracted_data, extraction_method, original_file_url, document_id, created_at`

// Create inserts a new KYC record row.
func (r *PGRepo) Create(ctx context.Context, rec KycRecord) error {
	const query = `
INSERT INTO kyc_data (id, username, document_type, extracted_data, extraction_method, original_file_url, document_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.Username,
		rec.DocumentType,
		rec.ExtractedData,
		rec.ExtractionMethod,
		rec.OriginalFileURL,
		rec.DocumentID,
		rec.CreatedAt,
	)
	return err
}

// GetByID fetches a single KYC record.
func (r *PGRepo) GetByID(ctx context.Context, id string) (KycRecord, error) {
	const query = `
SELECT ` + kycColumns + `
FROM kyc_data
WHERE id = $1
LIMIT 1`

	var rec KycRecord
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rec.ID,
		&rec.Username,
		&rec.DocumentType,
		&rec.ExtractedData,
		&rec.ExtractionMethod,
		&rec.OriginalFileURL,
		&rec.DocumentID,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return KycRecord{}, ErrNotFound
		}
		return KycRecord{}, err
	}
	return rec, nil
}

// ListByUsername returns a user's KYC records, oldest first.
func (r *PGRepo) ListByUsername(ctx context.Context, username string) ([]KycRecord, error) {
	const query = `
SELECT ` + kycColumns + `
FROM kyc_data
WHERE username = $1
ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []KycRecord
	for rows.Next() {
		var rec KycRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Username,
			&rec.DocumentType,
			&rec.ExtractedData,
			&rec.ExtractionMethod,
			&rec.OriginalFileURL,
			&rec.DocumentID,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListUsernames returns the distinct usernames with stored KYC data.
func (r *PGRepo) ListUsernames(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT username FROM kyc_data ORDER BY username ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
