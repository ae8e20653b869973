package urlcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestRunReachableURLs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	checker := New(Config{Client: server.Client()})
	diags := checker.Run(context.Background(), []Check{
		{URL: server.URL, File: "articles/a.md", Line: 3},
	})
	if len(diags) != 0 {
		t.Fatalf("reachable URL must not warn, got %#v", diags)
	}
}

func TestRunFallsBackToGetOn405(t *testing.T) {
	var mu sync.Mutex
	var methods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		methods = append(methods, r.Method)
		mu.Unlock()
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	checker := New(Config{Client: server.Client()})
	diags := checker.Run(context.Background(), []Check{{URL: server.URL, File: "a.md"}})
	if len(diags) != 0 {
		t.Fatalf("GET fallback succeeded, must not warn: %#v", diags)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(methods) != 2 || methods[0] != http.MethodHead || methods[1] != http.MethodGet {
		t.Fatalf("expected HEAD then GET, got %v", methods)
	}
}

func TestRunRateLimitedIsReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	checker := New(Config{Client: server.Client()})
	if diags := checker.Run(context.Background(), []Check{{URL: server.URL}}); len(diags) != 0 {
		t.Fatalf("429 counts as reachable, got %#v", diags)
	}
}

func TestRunBadStatusWarns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	checker := New(Config{Client: server.Client()})
	diags := checker.Run(context.Background(), []Check{
		{URL: server.URL, File: "articles/a.md", Line: 4, Label: "source_url"},
	})
	if len(diags) != 1 {
		t.Fatalf("expected one warning, got %#v", diags)
	}
	diag := diags[0]
	if diag.Severity != "warning" {
		t.Fatalf("unreachable URLs warn, never error: %#v", diag)
	}
	if diag.File != "articles/a.md" || diag.Line != 4 {
		t.Fatalf("warning must be attributed to the referencing file: %#v", diag)
	}
	if !strings.Contains(diag.Message, "404") || !strings.Contains(diag.Message, "source_url") {
		t.Fatalf("unexpected message: %q", diag.Message)
	}
}

func TestRunNetworkErrorWarns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	checker := New(Config{Timeout: time.Second})
	diags := checker.Run(context.Background(), []Check{{URL: url, File: "a.md"}})
	if len(diags) != 1 || diags[0].Severity != "warning" {
		t.Fatalf("network failures warn, got %#v", diags)
	}
	if !strings.Contains(diags[0].Message, "unreachable") {
		t.Fatalf("unexpected message: %q", diags[0].Message)
	}
}

func TestRunPreservesInputOrder(t *testing.T) {
	// Delay the first URL so it completes after the others; warnings must
	// still come back in the order the checks were given.
	mux := http.NewServeMux()
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/fast", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	checker := New(Config{Client: server.Client(), BatchSize: 4})
	diags := checker.Run(context.Background(), []Check{
		{URL: server.URL + "/slow", File: "first.md"},
		{URL: server.URL + "/fast", File: "second.md"},
		{URL: server.URL + "/fast", File: "third.md"},
	})
	if len(diags) != 3 {
		t.Fatalf("expected 3 warnings, got %#v", diags)
	}
	for i, want := range []string{"first.md", "second.md", "third.md"} {
		if diags[i].File != want {
			t.Fatalf("result %d attributed to %q, want %q", i, diags[i].File, want)
		}
	}
}

func TestRunTimeoutWarns(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	checker := New(Config{Client: server.Client(), Timeout: 50 * time.Millisecond})
	diags := checker.Run(context.Background(), []Check{{URL: server.URL, File: "a.md"}})
	if len(diags) != 1 || diags[0].Severity != "warning" {
		t.Fatalf("timeouts warn, got %#v", diags)
	}
}

func TestRunEmpty(t *testing.T) {
	if diags := New(Config{}).Run(context.Background(), nil); diags != nil {
		t.Fatalf("no checks means no diagnostics, got %#v", diags)
	}
}
