package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestReadLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.yaml")
	if err := os.WriteFile(path, []byte("- id: a\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	body, err := NewFetcher(t.TempDir()).Read(context.Background(), path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if string(body) != "- id: a\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestReadRemoteUsesConditionalCache(t *testing.T) {
	var hits, notModified atomic.Int32
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if fail.Load() {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		if r.Header.Get("If-None-Match") == `"v1"` {
			notModified.Add(1)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte("- id: remote\n"))
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir())
	url := srv.URL + "/sessions.yaml?token=secret"
	for i := 0; i < 2; i++ {
		body, err := f.Read(context.Background(), url)
		if err != nil {
			t.Fatalf("Read %d returned error: %v", i, err)
		}
		if string(body) != "- id: remote\n" {
			t.Fatalf("Read %d body = %q", i, body)
		}
	}
	if notModified.Load() != 1 {
		t.Fatalf("expected one conditional hit, got %d", notModified.Load())
	}

	fail.Store(true)
	body, err := f.Read(context.Background(), url)
	if err != nil {
		t.Fatalf("expected cached fallback, got error %v", err)
	}
	if string(body) != "- id: remote\n" {
		t.Fatalf("fallback body = %q", body)
	}
	if hits.Load() != 3 {
		t.Fatalf("expected 3 requests, got %d", hits.Load())
	}
}

func TestReadRemoteFailsWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := NewFetcher(t.TempDir()).Read(context.Background(), srv.URL+"/missing.yaml"); err == nil {
		t.Fatal("expected error for 404 without cache")
	}
}

func TestRedactURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://example.com/private/sessions.yaml?token=abcd", "https://example.com/...(redacted)"},
		{"http://host:8080", "http://host:8080/...(redacted)"},
		{"not a url", "source://...(redacted)"},
	}
	for _, tt := range tests {
		if got := redactURL(tt.in); got != tt.want {
			t.Fatalf("redactURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
