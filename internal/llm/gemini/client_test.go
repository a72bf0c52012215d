package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "gemini-1.5-pro"); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient("key", ""); err == nil {
		t.Fatal("expected error for missing model")
	}
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  {\"name\":\"John Doe\"}  "}]}}]}`))
	}))
	defer srv.Close()

	c, err := NewClient("test-key", "gemini-1.5-pro")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	c.baseURL = srv.URL

	got, err := c.Generate(context.Background(), "extract fields")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != `{"name":"John Doe"}` {
		t.Fatalf("response = %q", got)
	}
}

func TestGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer srv.Close()

	c, err := NewClient("bad-key", "gemini-1.5-pro")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	c.baseURL = srv.URL

	_, err = c.Generate(context.Background(), "extract fields")
	if err == nil || !strings.Contains(err.Error(), "API key not valid") {
		t.Fatalf("expected api error, got %v", err)
	}
}
