package cli

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStatusHealthy(t *testing.T) {
	resetFlags(t)
	t.Setenv("HOME", t.TempDir())

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %s, want /health", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer ts.Close()

	out, err := executeCommand("status", "--server", ts.URL)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, ts.URL) {
		t.Errorf("output missing server URL: %q", out)
	}
	if !strings.Contains(out, "healthy") {
		t.Errorf("output = %q, want healthy", out)
	}
}

func TestStatusUnavailable(t *testing.T) {
	resetFlags(t)
	t.Setenv("HOME", t.TempDir())

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unavailable"}`))
	}))
	defer ts.Close()

	out, err := executeCommand("status", "--server", ts.URL)
	if err != nil {
		t.Fatalf("status should report, not fail: %v", err)
	}
	if strings.Contains(out, "healthy") {
		t.Errorf("output = %q, should not claim healthy", out)
	}
	if !strings.Contains(out, "✗") {
		t.Errorf("output = %q, want failure mark", out)
	}
}

func TestStatusUnreachable(t *testing.T) {
	resetFlags(t)
	t.Setenv("HOME", t.TempDir())

	out, err := executeCommand("status", "--server", "http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("status should report, not fail: %v", err)
	}
	if !strings.Contains(out, "✗") {
		t.Errorf("output = %q, want failure mark", out)
	}
}
