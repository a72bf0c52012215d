package kyc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"kyc-backend/internal/documents"
	"kyc-backend/internal/extract"
	"kyc-backend/internal/shared/metrics"
	"kyc-backend/internal/shared/telemetry"
	"kyc-backend/internal/shared/util"
)

// Extractor is the text-extraction boundary the orchestrator dispatches to.
type Extractor interface {
	Extract(ctx context.Context, data []byte, ext string) (extract.Result, error)
}

// Service orchestrates the extraction pipeline: fetch stored bytes, extract
// text, persist one KycRecord per processed document. Documents are processed
// sequentially; a failure on one never aborts the rest of the batch.
type Service struct {
	Docs      *documents.Service
	Extractor Extractor
	Repo      Repo
}

// ProcessDocuments runs the pipeline over the given document IDs for a user.
// The returned slice has one entry per input ID, in order. The error return
// is reserved for invalid input; per-document failures are reported in the
// results, not as an error.
func (s *Service) ProcessDocuments(ctx context.Context, username string, documentIDs []string) ([]FileResult, error) {
	if username == "" || len(documentIDs) == 0 {
		return nil, ErrInvalidInput
	}

	results := make([]FileResult, 0, len(documentIDs))
	for _, id := range documentIDs {
		results = append(results, s.processOne(ctx, username, id))
	}
	return results, nil
}

// ProcessUser runs the pipeline over every stored document of a user. Used by
// the batch CLI.
func (s *Service) ProcessUser(ctx context.Context, username string) ([]FileResult, error) {
	docs, err := s.Docs.List(ctx, username)
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, s.processOne(ctx, username, doc.ID))
	}
	return results, nil
}

func (s *Service) processOne(ctx context.Context, username, documentID string) FileResult {
	start := time.Now()

	doc, err := s.Docs.Get(ctx, documentID)
	if err != nil {
		metrics.IncExtractionFailed()
		return FileResult{
			DocumentID: documentID,
			Status:     StatusFailed,
			Message:    fmt.Sprintf("document %s: %v", documentID, err),
		}
	}

	res := FileResult{DocumentID: documentID, FileName: doc.FileName}

	data, err := s.readDocument(ctx, doc)
	if err != nil {
		metrics.IncExtractionFailed()
		res.Status = StatusFailed
		res.Message = fmt.Sprintf("%s: fetch failed: %v", doc.FileName, err)
		return res
	}

	ext := util.FileExtension(doc.FileName)
	extracted, err := s.Extractor.Extract(ctx, data, ext)
	if err != nil {
		return s.extractionFailure(doc, err, res)
	}

	rec := KycRecord{
		ID:               uuid.NewString(),
		Username:         username,
		DocumentType:     methodLabel(extracted.Method),
		ExtractedData:    extracted.Text,
		ExtractionMethod: string(extracted.Method),
		OriginalFileURL:  doc.URL,
		DocumentID:       doc.ID,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		metrics.IncExtractionFailed()
		res.Status = StatusFailed
		res.Message = fmt.Sprintf("%s: persist failed: %v", doc.FileName, err)
		return res
	}

	metrics.IncExtractionProcessed()
	metrics.ObserveExtractionDurationMs(float64(time.Since(start).Milliseconds()))
	telemetry.Info("document processed", map[string]any{
		"documentId": doc.ID,
		"method":     string(extracted.Method),
		"textLen":    len(extracted.Text),
	})

	res.Status = StatusProcessed
	res.RecordID = rec.ID
	return res
}

func (s *Service) readDocument(ctx context.Context, doc documents.Document) ([]byte, error) {
	rc, err := s.Docs.Open(ctx, doc)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// extractionFailure maps typed extractor errors to a skip and everything else
// to a failure. Both continue the batch.
func (s *Service) extractionFailure(doc documents.Document, err error, res FileResult) FileResult {
	var unsupported *extract.UnsupportedTypeError
	var corrupt *extract.CorruptImageError
	var encoding *extract.EncodingError

	switch {
	case errors.As(err, &unsupported):
		metrics.IncExtractionSkipped()
		telemetry.Warn("skipping unsupported file type", map[string]any{
			"documentId": doc.ID,
			"fileName":   doc.FileName,
			"extension":  unsupported.Extension,
		})
		res.Status = StatusSkipped
		res.Message = fmt.Sprintf("%s: unsupported file type %q", doc.FileName, unsupported.Extension)
	case errors.As(err, &corrupt):
		metrics.IncExtractionSkipped()
		telemetry.Warn("skipping undecodable image", map[string]any{
			"documentId": doc.ID,
			"fileName":   doc.FileName,
		})
		res.Status = StatusSkipped
		res.Message = fmt.Sprintf("%s: cannot decode image", doc.FileName)
	case errors.As(err, &encoding):
		metrics.IncExtractionSkipped()
		res.Status = StatusSkipped
		res.Message = fmt.Sprintf("%s: file is not valid UTF-8 text", doc.FileName)
	default:
		metrics.IncExtractionFailed()
		telemetry.Error("extraction failed", map[string]any{
			"documentId": doc.ID,
			"fileName":   doc.FileName,
			"error":      err.Error(),
		})
		res.Status = StatusFailed
		res.Message = fmt.Sprintf("%s: extraction failed: %v", doc.FileName, err)
	}
	return res
}

func methodLabel(m extract.Method) string {
	switch m {
	case extract.MethodImageOCR:
		return LabelImage
	case extract.MethodPDFTextLayer, extract.MethodPDFOCRFallback:
		return LabelPDF
	case extract.MethodPlainText:
		return LabelText
	default:
		return string(m)
	}
}
