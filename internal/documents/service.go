package documents

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"kyc-backend/internal/shared/storage/object"
)

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// Upload saves the file to object storage and records the document.
func (s *Service) Upload(ctx context.Context, username, docType, fileName string, r io.Reader) (Document, error) {
	if fileName == "" || strings.TrimSpace(docType) == "" {
		return Document{}, ErrInvalidInput
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, username, fileName, r)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:         uuid.NewString(),
		Username:   username,
		DocType:    strings.TrimSpace(docType),
		FileName:   fileName,
		StorageKey: storageKey,
		URL:        s.Store.PublicURL(storageKey),
		MimeType:   mimeType,
		SizeBytes:  size,
		UploadedAt: time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	return doc, nil
}

// List returns a user's documents.
func (s *Service) List(ctx context.Context, username string) ([]Document, error) {
	if username == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, username)
}

// ListAll returns every stored document, for admin review.
func (s *Service) ListAll(ctx context.Context) ([]Document, error) {
	return s.Repo.ListAll(ctx)
}

// Get returns a single document by ID.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	if id == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

// Open fetches the stored bytes of a document.
func (s *Service) Open(ctx context.Context, doc Document) (io.ReadCloser, error) {
	return s.Store.Open(ctx, doc.StorageKey)
}

// Delete removes the stored object and the document row. Owners may delete
// their own documents; admins may delete any.
func (s *Service) Delete(ctx context.Context, username, id string, isAdmin bool) error {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && doc.Username != username {
		return ErrForbidden
	}

	if err := s.Store.Delete(ctx, doc.StorageKey); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}
