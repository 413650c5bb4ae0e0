package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetReadsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "ytscribe/1.0" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	c := New(nil)
	defer c.Close()

	resp, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
	if string(resp.Body) != "hello" {
		t.Errorf("Body = %q", resp.Body)
	}
}

func TestGetReturnsNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(nil)
	defer c.Close()

	resp, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", resp.StatusCode)
	}
}

func TestGetHonorsRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.RequestsPerSecond = 20

	c := New(cfg)
	defer c.Close()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := c.Get(context.Background(), srv.URL); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
	}
	// Bucket size 1 at 20 req/s: three requests need at least ~100ms.
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Errorf("three requests took %v, rate limit not applied", elapsed)
	}
}

func TestGetCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := New(nil)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Get(ctx, srv.URL); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
