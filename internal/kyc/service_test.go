package kyc

import (
	"context"
	"strings"
	"testing"

	"kyc-backend/internal/documents"
	"kyc-backend/internal/extract"
	"kyc-backend/internal/shared/storage/object/local"
)

func newTestService(t *testing.T) (*Service, *documents.Service, *MemoryRepo) {
	t.Helper()
	docSvc := &documents.Service{
		Store: local.New(t.TempDir()),
		Repo:  documents.NewMemoryRepo(),
	}
	repo := NewMemoryRepo()
	svc := &Service{
		Docs:      docSvc,
		Extractor: extract.New(nil),
		Repo:      repo,
	}
	return svc, docSvc, repo
}

func uploadDoc(t *testing.T, docSvc *documents.Service, username, name, content string) documents.Document {
	t.Helper()
	doc, err := docSvc.Upload(context.Background(), username, documents.TypeIDProof, name, strings.NewReader(content))
	if err != nil {
		t.Fatalf("upload %s: %v", name, err)
	}
	return doc
}

func TestProcessDocumentsSkipsUnsupported(t *testing.T) {
	svc, docSvc, repo := newTestService(t)
	ctx := context.Background()

	d1 := uploadDoc(t, docSvc, "alice", "passport.txt", "Name: John Doe\nDOB: 1990-01-01")
	d2 := uploadDoc(t, docSvc, "alice", "archive.zip", "not a supported format")
	d3 := uploadDoc(t, docSvc, "alice", "utility.csv", "address,123 Main St")

	results, err := svc.ProcessDocuments(ctx, "alice", []string{d1.ID, d2.ID, d3.ID})
	if err != nil {
		t.Fatalf("ProcessDocuments: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	if results[0].Status != StatusProcessed || results[2].Status != StatusProcessed {
		t.Errorf("expected files 1 and 3 processed, got %+v", results)
	}
	if results[1].Status != StatusSkipped {
		t.Errorf("file 2 status = %q, want skipped", results[1].Status)
	}
	if !strings.Contains(results[1].Message, "archive.zip") {
		t.Errorf("skip message should name the file: %q", results[1].Message)
	}

	recs, err := repo.ListByUsername(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("persisted %d records, want 2", len(recs))
	}
	for _, rec := range recs {
		if rec.DocumentType != LabelText {
			t.Errorf("document_type = %q, want %q", rec.DocumentType, LabelText)
		}
		if rec.ExtractionMethod != string(extract.MethodPlainText) {
			t.Errorf("extraction_method = %q", rec.ExtractionMethod)
		}
		if rec.OriginalFileURL == "" {
			t.Error("original_file_url not recorded")
		}
	}
	if recs[0].ExtractedData != "Name: John Doe\nDOB: 1990-01-01" {
		t.Errorf("extracted_data = %q", recs[0].ExtractedData)
	}
}

func TestProcessDocumentsMissingDocument(t *testing.T) {
	svc, docSvc, repo := newTestService(t)
	ctx := context.Background()

	d1 := uploadDoc(t, docSvc, "bob", "note.txt", "hello")

	results, err := svc.ProcessDocuments(ctx, "bob", []string{"missing-id", d1.ID})
	if err != nil {
		t.Fatalf("ProcessDocuments: %v", err)
	}
	if results[0].Status != StatusFailed {
		t.Errorf("missing doc status = %q, want failed", results[0].Status)
	}
	if results[1].Status != StatusProcessed {
		t.Errorf("valid doc status = %q, want processed", results[1].Status)
	}

	recs, _ := repo.ListByUsername(ctx, "bob")
	if len(recs) != 1 {
		t.Fatalf("persisted %d records, want 1", len(recs))
	}
}

func TestProcessDocumentsAppendOnly(t *testing.T) {
	svc, docSvc, repo := newTestService(t)
	ctx := context.Background()

	d1 := uploadDoc(t, docSvc, "carol", "id.txt", "same content")

	for i := 0; i < 2; i++ {
		if _, err := svc.ProcessDocuments(ctx, "carol", []string{d1.ID}); err != nil {
			t.Fatal(err)
		}
	}

	recs, _ := repo.ListByUsername(ctx, "carol")
	if len(recs) != 2 {
		t.Fatalf("reprocessing should append, got %d records", len(recs))
	}

	// Display-level dedup collapses identical texts without touching storage.
	if got := len(dedupeByContent(recs)); got != 1 {
		t.Errorf("dedupeByContent returned %d, want 1", got)
	}
}

func TestProcessDocumentsInvalidInput(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.ProcessDocuments(context.Background(), "", []string{"x"}); err == nil {
		t.Error("expected error for empty username")
	}
	if _, err := svc.ProcessDocuments(context.Background(), "alice", nil); err == nil {
		t.Error("expected error for empty batch")
	}
}

func TestProcessUser(t *testing.T) {
	svc, docSvc, repo := newTestService(t)
	ctx := context.Background()

	uploadDoc(t, docSvc, "dave", "a.txt", "first")
	uploadDoc(t, docSvc, "dave", "b.txt", "second")

	results, err := svc.ProcessUser(ctx, "dave")
	if err != nil {
		t.Fatalf("ProcessUser: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	recs, _ := repo.ListByUsername(ctx, "dave")
	if len(recs) != 2 {
		t.Fatalf("persisted %d records, want 2", len(recs))
	}
}
