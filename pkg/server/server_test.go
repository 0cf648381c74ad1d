package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nullspace/nullspace"
	"github.com/nullspace/nullspace/pkg/config"
	"github.com/nullspace/nullspace/pkg/source"
	"github.com/nullspace/nullspace/pkg/summarize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	catalog, err := source.NewLocal()
	require.NoError(t, err)

	opts := nullspace.DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	explorer, err := nullspace.NewClient(catalog, summarize.NewStatic(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { explorer.Close() })

	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.Mode = gin.TestMode

	srv := New(cfg, explorer)
	srv.Setup()
	return srv
}

func doRequest(t *testing.T, srv *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestRootBanner(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Welcome to NULLspace API", body["message"])
	assert.Equal(t, "operational", body["status"])
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "nullspace", body["service"])
}

func TestListExperiments(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/experiments")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Experiments []map[string]any `json:"experiments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Experiments, 8)
}

func TestListExperimentsFiltered(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/experiments?search=yeast")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Experiments []map[string]any `json:"experiments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Experiments, 1)
	assert.Equal(t, "GLDS-418", body.Experiments[0]["id"])
}

func TestListExperimentsBadLimit(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/experiments?limit=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetExperiment(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/experiments/GLDS-47")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "GLDS-47", body["id"])
	assert.NotNil(t, body["related_experiments"])
}

func TestGetExperimentNotFound(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/experiments/GLDS-9999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestKnowledgeGraph(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/knowledge-graph?experiment_ids=GLDS-47,GLDS-21")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Nodes []struct {
			Data map[string]any `json:"data"`
		} `json:"nodes"`
		Edges []struct {
			Data map[string]any `json:"data"`
		} `json:"edges"`
		Layout map[string]any `json:"layout"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Nodes)
	assert.NotEmpty(t, body.Edges)
	assert.Equal(t, "cose", body.Layout["name"])
}

func TestKnowledgeGraphFallback(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/knowledge-graph?experiment_ids=GLDS-9999")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Nodes  []map[string]any `json:"nodes"`
		Layout map[string]any   `json:"layout"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Nodes)
	assert.Equal(t, "circle", body.Layout["name"])
}

func TestSearch(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/search?query=microgravity+muscle")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results []map[string]any `json:"results"`
		Query   string           `json:"query"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "microgravity muscle", body.Query)
	require.NotEmpty(t, body.Results)
	assert.Equal(t, "GLDS-47", body.Results[0]["id"])
}

func TestSearchMissingQuery(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/search")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStats(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(8), body["total_experiments"])
	assert.Equal(t, float64(7), body["organisms_studied"])
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/health")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
