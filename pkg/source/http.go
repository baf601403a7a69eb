package source

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kinship/pkg/dataset"
	"github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/httputil"
)

// HTTP loads a dataset from a URL.
//
// When Fallback is set, every successful body is stored there, and a later
// fetch that fails on the network serves the stored copy instead. NOT_FOUND
// and malformed bodies are never masked by the fallback.
type HTTP struct {
	URL      string
	Client   *http.Client    // http.DefaultClient when nil
	Format   dataset.Format  // from the URL path extension when empty
	Attempts int             // fetch attempts; 3 when zero
	Delay    time.Duration   // first retry delay; 1s when zero
	Fallback *httputil.Cache // optional last-known-good store
	Logger   *log.Logger     // log.Default() when nil
}

// Name returns the URL.
func (h *HTTP) Name() string { return h.URL }

// Load fetches and decodes the dataset.
func (h *HTTP) Load(ctx context.Context) (*dataset.Dataset, error) {
	if err := errors.ValidateURL(h.URL); err != nil {
		return nil, err
	}

	body, err := httputil.Fetch(ctx, h.Client, h.URL, httputil.FetchOptions{Attempts: h.Attempts, Delay: h.Delay})
	if err != nil {
		if cached, ok := h.fromFallback(err); ok {
			body = cached
		} else {
			return nil, err
		}
	}

	ds, err := dataset.Decode(bytes.NewReader(body), h.format())
	if err != nil {
		return nil, err
	}
	if h.Fallback != nil {
		if err := h.Fallback.Set(h.URL, string(body)); err != nil {
			h.logger().Warn("could not store dataset fallback", "url", h.URL, "err", err)
		}
	}
	return ds, nil
}

func (h *HTTP) fromFallback(fetchErr error) ([]byte, bool) {
	if h.Fallback == nil || !errors.Is(fetchErr, errors.ErrCodeNetwork) {
		return nil, false
	}
	var body string
	ok, err := h.Fallback.Get(h.URL, &body)
	if err != nil || !ok {
		return nil, false
	}
	h.logger().Warn("remote dataset unavailable, using last fetched copy", "url", h.URL, "err", fetchErr)
	return []byte(body), true
}

func (h *HTTP) format() dataset.Format {
	if h.Format != "" {
		return h.Format
	}
	if u, err := url.Parse(h.URL); err == nil {
		return dataset.FormatFromPath(u.Path)
	}
	return dataset.FormatJSON
}

func (h *HTTP) logger() *log.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return log.Default()
}
