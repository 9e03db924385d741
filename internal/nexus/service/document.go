package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/aussiebroadwan/nexus/internal/nexus/blob"
	"github.com/aussiebroadwan/nexus/internal/nexus/domain"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/aussiebroadwan/nexus/pkg/idx"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
)

// DocumentService stores project documents: bytes in the blob store, metadata
// in the database.
type DocumentService struct {
	Store    store.Store
	Blobs    blob.Store
	MaxBytes int64
}

type UploadRequest struct {
	ProjectID    string
	OriginalName string
	ContentType  string
	Body         io.Reader
}

// Upload writes the blob first and the row second. If the row cannot be
// written the blob is removed again.
func (s *DocumentService) Upload(ctx context.Context, sess *domain.Session, req UploadRequest) (domain.Document, error) {
	original := cleanOriginalName(req.OriginalName)
	if original == "" {
		return domain.Document{}, fmt.Errorf("%w: file name is required", ErrInvalidDocument)
	}

	if _, err := s.Store.Projects().GetProjectByID(ctx, req.ProjectID); err != nil {
		return domain.Document{}, err
	}

	name := idx.BlobName(original)
	size, err := s.Blobs.Save(ctx, name, req.Body, s.MaxBytes)
	if err != nil {
		return domain.Document{}, err
	}

	doc := domain.Document{
		ID:           idx.New().String(),
		ProjectID:    req.ProjectID,
		Filename:     name,
		OriginalName: original,
		ContentType:  contentTypeFor(original, req.ContentType),
		SizeBytes:    size,
		UploadedBy:   sess.UserID,
	}

	if err := s.Store.Documents().CreateDocument(ctx, doc); err != nil {
		if derr := s.Blobs.Delete(ctx, name); derr != nil {
			slogx.FromContext(ctx).Error("remove orphaned blob", "blob", name, "error", derr)
		}
		return domain.Document{}, fmt.Errorf("record document: %w", err)
	}

	slogx.FromContext(ctx).Info("document uploaded",
		"project_id", req.ProjectID, "document_id", doc.ID, "size_bytes", size)
	return s.Store.Documents().GetDocumentByID(ctx, doc.ID)
}

func (s *DocumentService) List(ctx context.Context, projectID string) ([]domain.Document, error) {
	if _, err := s.Store.Projects().GetProjectByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.Store.Documents().ListDocuments(ctx, projectID)
}

func (s *DocumentService) Get(ctx context.Context, id string) (domain.Document, error) {
	return s.Store.Documents().GetDocumentByID(ctx, id)
}

// Open returns the stored bytes of doc. A row whose blob has gone missing
// reports store.ErrNotFound.
func (s *DocumentService) Open(ctx context.Context, doc domain.Document) (*blob.Object, error) {
	obj, err := s.Blobs.Open(ctx, doc.Filename)
	if errors.Is(err, blob.ErrNotFound) {
		slogx.FromContext(ctx).Error("document blob missing", "document_id", doc.ID, "blob", doc.Filename)
		return nil, store.ErrNotFound
	}
	return obj, err
}

func cleanOriginalName(name string) string {
	name = filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

func contentTypeFor(name, declared string) string {
	// octet-stream is the multipart default and says nothing about the file
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "application/octet-stream" {
			return mt
		}
	}
	if mt := mime.TypeByExtension(filepath.Ext(name)); mt != "" {
		return mt
	}
	return "application/octet-stream"
}
