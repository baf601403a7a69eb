package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/kinship/pkg/dataset"
	"github.com/matzehuels/kinship/pkg/layout"
	"github.com/matzehuels/kinship/pkg/pipeline"
	"github.com/matzehuels/kinship/pkg/stats"
)

type staticSource struct{ ds *dataset.Dataset }

func (s staticSource) Name() string                                   { return "static" }
func (s staticSource) Load(context.Context) (*dataset.Dataset, error) { return s.ds, nil }

func rel(from, to string, w float64) dataset.Relationship {
	return dataset.Relationship{From: from, To: to, Weight: dataset.NumberWeight(w), Kind: "big-little"}
}

func testServer(t *testing.T, load bool) *httptest.Server {
	t.Helper()
	ds := &dataset.Dataset{
		Members: []dataset.Member{
			{ID: "Ada Lovelace", Cohort: "Alpha"},
			{ID: "Ben Franklin", Cohort: "Beta"},
			{ID: "Cy Young", Cohort: "Beta"},
		},
		Relationships: []dataset.Relationship{
			rel("Ada Lovelace", "Ben Franklin", 1),
			rel("Ben Franklin", "Cy Young", 1),
			rel("Ada Lovelace", "Cy Young", 5),
		},
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(staticSource{ds}, nil, nil, logger)
	runner.Provider = layout.Circle{}
	if load {
		_, err := runner.Reload(context.Background())
		require.NoError(t, err)
	}
	ts := httptest.NewServer(New(runner, logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(ts.URL + target)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestHealth(t *testing.T) {
	ts := testServer(t, true)
	resp, body := get(t, ts, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var h healthResponse
	require.NoError(t, json.Unmarshal(body, &h))
	assert.Equal(t, "ok", h.Status)
	_, err := uuid.Parse(h.Snapshot)
	assert.NoError(t, err)
}

func TestRequestID(t *testing.T) {
	ts := testServer(t, true)

	resp, _ := get(t, ts, "/healthz")
	_, err := uuid.Parse(resp.Header.Get(RequestIDHeader))
	assert.NoError(t, err, "server should assign a uuid")

	want := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, want)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, want, resp.Header.Get(RequestIDHeader))
}

func TestPathEndpoint(t *testing.T) {
	ts := testServer(t, true)

	tests := []struct {
		name        string
		query       string
		wantStatus  int
		wantOutcome string
		wantCode    string
	}{
		{"found", "?from=Ada+Lovelace&to=Cy+Young", 200, "found", ""},
		{"no path", "?from=Cy+Young&to=Ada+Lovelace", 200, "no_path", ""},
		{"same member", "?from=Cy+Young&to=Cy+Young", 400, "", "INVALID_QUERY"},
		{"unknown member", "?from=Cy+Young&to=Nobody", 400, "", "INVALID_QUERY"},
		{"missing param", "?from=Cy+Young", 400, "", "INVALID_QUERY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts, "/api/path"+tt.query)
			assert.Equal(t, tt.wantStatus, resp.StatusCode, string(body))

			var m map[string]any
			require.NoError(t, json.Unmarshal(body, &m))
			if tt.wantOutcome != "" {
				assert.Equal(t, tt.wantOutcome, m["outcome"])
			}
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, m["code"])
			}
		})
	}
}

func TestPathEndpointBody(t *testing.T) {
	ts := testServer(t, true)

	_, body := get(t, ts, "/api/path?from=Ada+Lovelace&to=Cy+Young")
	var p pathResponse
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, []string{"Ada Lovelace", "Ben Franklin", "Cy Young"}, p.Nodes)
	assert.Equal(t, 2.0, p.TotalWeight)
	assert.Len(t, p.Steps, 2)

	_, body = get(t, ts, "/api/path?from=Cy+Young&to=Ada+Lovelace")
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, NoPathMessage, p.Message)
}

func TestMembersAndStats(t *testing.T) {
	ts := testServer(t, true)

	resp, body := get(t, ts, "/api/members")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []stats.MemberRow
	require.NoError(t, json.Unmarshal(body, &rows))
	assert.Len(t, rows, 3)

	resp, body = get(t, ts, "/api/stats")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var sum pipeline.Summary
	require.NoError(t, json.Unmarshal(body, &sum))
	assert.Equal(t, 3, sum.Stats.NodeCount)
	assert.Equal(t, 3, sum.Stats.EdgeCount)
}

func TestReachEndpoint(t *testing.T) {
	ts := testServer(t, true)

	_, body := get(t, ts, "/api/reach?from=Ben+Franklin")
	var dist map[string]float64
	require.NoError(t, json.Unmarshal(body, &dist))
	assert.Equal(t, map[string]float64{"Ben Franklin": 0, "Cy Young": 1}, dist)
}

func TestLayoutEndpoint(t *testing.T) {
	ts := testServer(t, true)

	resp, body := get(t, ts, "/api/layout?seed=9")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	doc, err := layout.UnmarshalDocument(body)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), doc.Seed)
	assert.Len(t, doc.Nodes, 3)

	resp, _ = get(t, ts, "/api/layout?seed=-3")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGraphSVG(t *testing.T) {
	ts := testServer(t, true)

	resp, body := get(t, ts, "/api/graph.svg?from=Ada+Lovelace&to=Cy+Young")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.True(t, strings.Contains(string(body), "<svg"))

	resp, _ = get(t, ts, "/api/graph.svg?from=Ada+Lovelace")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReload(t *testing.T) {
	ts := testServer(t, false)

	resp, _ := get(t, ts, "/api/stats")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, err := http.Post(ts.URL+"/api/reload", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = get(t, ts, "/api/stats")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := testServer(t, true)
	resp, _ := get(t, ts, "/api/reload")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
