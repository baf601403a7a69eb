package source

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/httputil"
)

func TestHTTPLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/graph.json":
			w.Write([]byte(sampleJSON))
		case "/graph.yaml":
			w.Write([]byte(sampleYAML))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	ds, err := (&HTTP{URL: srv.URL + "/graph.json", Client: srv.Client()}).Load(ctx)
	if err != nil {
		t.Fatalf("Load(json): %v", err)
	}
	if len(ds.Members) != 3 {
		t.Errorf("got %d members", len(ds.Members))
	}

	ds, err = (&HTTP{URL: srv.URL + "/graph.yaml", Client: srv.Client()}).Load(ctx)
	if err != nil {
		t.Fatalf("Load(yaml): %v", err)
	}
	if len(ds.Members) != 2 {
		t.Errorf("got %d members", len(ds.Members))
	}

	_, err = (&HTTP{URL: srv.URL + "/missing.json", Client: srv.Client()}).Load(ctx)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing err = %v, want NOT_FOUND", err)
	}

	_, err = (&HTTP{URL: "ftp://example.com/graph.json"}).Load(ctx)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad scheme err = %v, want INVALID_INPUT", err)
	}
}

func TestHTTPFallback(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	cache, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	src := &HTTP{
		URL:      srv.URL + "/graph.json",
		Client:   srv.Client(),
		Attempts: 2,
		Delay:    time.Millisecond,
		Fallback: cache,
		Logger:   log.New(io.Discard),
	}
	ctx := context.Background()

	if _, err := src.Load(ctx); err != nil {
		t.Fatalf("first load: %v", err)
	}

	healthy.Store(false)
	ds, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("fallback load: %v", err)
	}
	if len(ds.Members) != 3 {
		t.Errorf("fallback dataset has %d members", len(ds.Members))
	}

	noCache := &HTTP{URL: src.URL, Client: srv.Client(), Attempts: 1, Delay: time.Millisecond}
	if _, err := noCache.Load(ctx); !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("without fallback err = %v, want NETWORK_ERROR", err)
	}
}
