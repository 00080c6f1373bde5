package documents

import (
	"context"
	"database/sql"
	"time"
)

// PGRepo implements DocumentsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new pending document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    owner_email,
    filename,
    file_type,
    file_size,
    storage_key,
    upload_status,
    error,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, $8, $8)`

	status := doc.Status
	if status == "" {
		status = StatusPending
	}

	var fileType sql.NullString
	if doc.FileType != "" {
		fileType = sql.NullString{String: doc.FileType, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.OwnerEmail,
		doc.Filename,
		fileType,
		doc.SizeBytes,
		doc.StorageKey,
		status,
		doc.CreatedAt,
	)
	return err
}

// UpdateStatus writes a terminal status for a document. The row match is
// scoped by id and owner email together.
func (r *PGRepo) UpdateStatus(ctx context.Context, id, ownerEmail, status, errText string, updatedAt time.Time) error {
	const query = `
UPDATE documents
SET upload_status = $1, error = $2, updated_at = $3
WHERE id = $4 AND owner_email = $5`

	var errValue sql.NullString
	if errText != "" {
		errValue = sql.NullString{String: errText, Valid: true}
	}

	res, err := r.DB.ExecContext(ctx, query, status, errValue, updatedAt, id, ownerEmail)
	if err != nil {
		return err
	}
	updated, _ := res.RowsAffected()
	if updated == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByOwner lists documents for a user ordered newest-first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]Document, error) {
	const query = `
SELECT id, owner_email, filename, file_type, file_size, storage_key, upload_status, error, created_at, updated_at
FROM documents
WHERE owner_email = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var doc Document
		var fileType sql.NullString
		var errText sql.NullString
		if err := rows.Scan(
			&doc.ID,
			&doc.OwnerEmail,
			&doc.Filename,
			&fileType,
			&doc.SizeBytes,
			&doc.StorageKey,
			&doc.Status,
			&errText,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if fileType.Valid {
			doc.FileType = fileType.String
		}
		if errText.Valid {
			doc.Error = errText.String
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

var _ DocumentsRepo = (*PGRepo)(nil)
