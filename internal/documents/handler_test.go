package documents_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"kyc-backend/internal/shared/config"
	"kyc-backend/internal/shared/server"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
	}
	return server.NewRouter(cfg)
}

func asUser(req *http.Request, username string) {
	req.Header.Set("X-User-Id", username)
}

func asAdmin(req *http.Request, username string) {
	asUser(req, username)
	req.Header.Set("X-Admin", "true")
}

func uploadFile(t *testing.T, router *gin.Engine, username, docType, name, content string) string {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("type", docType); err != nil {
		t.Fatalf("write type field: %v", err)
	}
	fileWriter, err := writer.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte(content)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	asUser(req, username)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("upload: expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.DocumentID == "" {
		t.Fatal("expected documentId, got empty")
	}
	return created.DocumentID
}

func TestDocumentsUploadAndList(t *testing.T) {
	router := newTestRouter(t)

	uploadFile(t, router, "alice", "ID Proof", "passport.txt", "Name: John Doe")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	asUser(req, "alice")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var listed struct {
		Documents []struct {
			FileName string `json:"fileName"`
			DocType  string `json:"docType"`
			URL      string `json:"url"`
		} `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed.Documents) != 1 {
		t.Fatalf("expected 1 document, got %d", len(listed.Documents))
	}
	if listed.Documents[0].FileName != "passport.txt" || listed.Documents[0].DocType != "ID Proof" {
		t.Errorf("unexpected document: %+v", listed.Documents[0])
	}
	if listed.Documents[0].URL == "" {
		t.Error("expected a retrieval URL")
	}
}

func TestDocumentsMissingIdentity(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestDocumentsListAllRequiresAdmin(t *testing.T) {
	router := newTestRouter(t)

	uploadFile(t, router, "alice", "ID Proof", "a.txt", "x")
	uploadFile(t, router, "bob", "Address Proof", "b.txt", "y")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/all", nil)
	asUser(req, "alice")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("non-admin: expected status 403, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/documents/all", nil)
	asAdmin(req, "root")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("admin: expected status 200, got %d", resp.Code)
	}

	var listed struct {
		Documents []struct {
			Username string `json:"username"`
		} `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(listed.Documents))
	}
}

func TestDocumentsDelete(t *testing.T) {
	router := newTestRouter(t)

	id := uploadFile(t, router, "alice", "ID Proof", "gone.txt", "bye")

	// Another user cannot delete it.
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/"+id, nil)
	asUser(req, "mallory")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}

	// The owner can.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/documents/"+id, nil)
	asUser(req, "alice")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	// Deleting again is a 404.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/documents/"+id, nil)
	asUser(req, "alice")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
