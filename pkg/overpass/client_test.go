package overpass

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/roadgraph/pkg/cache"
	"github.com/matzehuels/roadgraph/pkg/errors"
)

func TestClientQuery(t *testing.T) {
	var gotQuery, gotContentType, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		form, err := url.ParseQuery(string(body))
		if err != nil {
			t.Errorf("body is not form encoded: %v", err)
		}
		gotQuery = form.Get("data")
		gotContentType = r.Header.Get("Content-Type")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, sampleBody)
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{Endpoint: srv.URL, UserAgent: "roadgraph-test"})
	res, err := c.Query(context.Background(), "[out:json];way(1,2,3,4);out;")
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(res.Elements) != 5 {
		t.Errorf("Query() = %d elements, want 5", len(res.Elements))
	}
	if gotQuery != "[out:json];way(1,2,3,4);out;" {
		t.Errorf("data = %q", gotQuery)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotUA != "roadgraph-test" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestClientQueryFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"rate limited", http.StatusTooManyRequests, "rate_limited\nmore", "status 429: rate_limited"},
		{"gateway timeout", http.StatusGatewayTimeout, "", "status 504"},
		{"bad json", http.StatusOK, "<html>not json</html>", "decode overpass response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := NewClient(ClientOptions{Endpoint: srv.URL})
			_, err := c.Query(context.Background(), "q")
			if err == nil {
				t.Fatal("Query() should fail")
			}
			if !errors.Is(err, errors.ErrCodeTransport) {
				t.Errorf("error code = %q, want TRANSPORT_FAILURE", errors.GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestClientQueryUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	c := NewClient(ClientOptions{Endpoint: endpoint, Timeout: time.Second})
	_, err := c.Query(context.Background(), "q")
	if !errors.Is(err, errors.ErrCodeTransport) {
		t.Errorf("Query() error = %v, want TRANSPORT_FAILURE", err)
	}
}

func TestClientQueryCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		io.WriteString(w, sampleBody)
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	c := NewClient(ClientOptions{Endpoint: srv.URL, Cache: fc})
	for range 3 {
		if _, err := c.Query(ctx, "q"); err != nil {
			t.Fatalf("Query() error: %v", err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}

	if _, err := c.Query(ctx, "other"); err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("a different query should miss the cache, calls = %d", got)
	}

	refresh := NewClient(ClientOptions{Endpoint: srv.URL, Cache: fc, Refresh: true})
	if _, err := refresh.Query(ctx, "q"); err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("refresh should bypass the cache, calls = %d", got)
	}
}

func TestClientDoesNotCacheFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(ClientOptions{Endpoint: srv.URL, Cache: fc})
	for range 2 {
		c.Query(context.Background(), "q")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("server called %d times, want 2", got)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(ClientOptions{})
	if c.Endpoint() != DefaultEndpoint {
		t.Errorf("Endpoint() = %q, want %q", c.Endpoint(), DefaultEndpoint)
	}
	if !strings.HasPrefix(c.userAgent, "roadgraph/") {
		t.Errorf("userAgent = %q", c.userAgent)
	}
	if c.ttl != cache.TTLQuery {
		t.Errorf("ttl = %v, want %v", c.ttl, cache.TTLQuery)
	}
}
