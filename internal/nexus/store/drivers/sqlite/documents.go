package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
)

type documentsRepo struct {
	db dbtx
}

func (r *documentsRepo) CreateDocument(ctx context.Context, d domain.Document) error {
	if d.UploadedAt.IsZero() {
		d.UploadedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (id, project_id, filename, original_name, content_type, size_bytes, uploaded_by, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.ProjectID, d.Filename, d.OriginalName, d.ContentType, d.SizeBytes, d.UploadedBy, d.UploadedAt,
	)
	return mapConstraint(err)
}

func (r *documentsRepo) GetDocumentByID(ctx context.Context, id string) (domain.Document, error) {
	var d domain.Document
	err := r.db.QueryRowContext(ctx, `
		SELECT d.id, d.project_id, d.filename, d.original_name, d.content_type, d.size_bytes,
		       d.uploaded_by, u.username, d.uploaded_at
		FROM documents d
		JOIN users u ON u.id = d.uploaded_by
		WHERE d.id = ?`, id,
	).Scan(&d.ID, &d.ProjectID, &d.Filename, &d.OriginalName, &d.ContentType, &d.SizeBytes,
		&d.UploadedBy, &d.UploaderName, &d.UploadedAt)
	if err != nil {
		return domain.Document{}, mapNotFound(err)
	}
	return d, nil
}

func (r *documentsRepo) ListDocuments(ctx context.Context, projectID string) ([]domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT d.id, d.project_id, d.filename, d.original_name, d.content_type, d.size_bytes,
		       d.uploaded_by, u.username, d.uploaded_at
		FROM documents d
		JOIN users u ON u.id = d.uploaded_by
		WHERE d.project_id = ?
		ORDER BY d.uploaded_at DESC, d.id DESC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.Filename, &d.OriginalName, &d.ContentType, &d.SizeBytes,
			&d.UploadedBy, &d.UploaderName, &d.UploadedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
