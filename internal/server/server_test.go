package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/morikuni/failure/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/packdocs/internal/catalog"
)

const fixtureJSON = `{
  "repository": {"name": "agentic-collections", "url": "https://github.com/example/agentic-collections"},
  "packs": [
    {"name": "rh-sre", "plugin": {"name": "Site Reliability", "version": "1.2.0", "description": "Operate fleets"},
     "skills": [{"name": "cve-scan", "description": "Run security scanning across hosts"}],
     "agents": [], "has_readme": true},
    {"name": "ocp-admin", "plugin": {}, "skills": [], "agents": [], "has_readme": false}
  ],
  "mcp_servers": [
    {"name": "lightspeed", "pack": "rh-sre", "command": "podman", "args": ["run"], "env": ["TOKEN"], "security": {"isolation": "container"}},
    {"name": "lightspeed", "pack": "ocp-admin", "command": "npx", "args": [], "env": [], "security": {}}
  ]
}`

func writeFixture(t *testing.T) (root, source string) {
	t.Helper()
	root = t.TempDir()
	source = filepath.Join(root, "data.json")
	require.NoError(t, os.WriteFile(source, []byte(fixtureJSON), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "rh-sre"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "rh-sre", "README.md"), []byte("# SRE\n\nHello."), 0o644))
	return root, source
}

func newLoadedServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	root, source := writeFixture(t)
	cfg.RootDir = root
	cfg.Source = source
	srv := New(cfg, catalog.NewLoader())
	require.NoError(t, srv.Load(context.Background()))
	return srv
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := newLoadedServer(t, Config{})

	w := get(t, srv, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %v", body["status"])
	}
	if body["packs"] != float64(2) {
		t.Errorf("packs = %v, want 2", body["packs"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := New(Config{AllowAll: true}, catalog.NewLoader())

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestIndexPage(t *testing.T) {
	srv := newLoadedServer(t, Config{})

	w := get(t, srv, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, `id="packs-grid"`)
	assert.Contains(t, body, `<span class="count" id="packs-count">(2)</span>`)
	assert.Contains(t, body, `href="/packs/rh-sre/readme"`)
	assert.NotContains(t, body, "error-banner")
}

func TestIndexQueryParams(t *testing.T) {
	srv := newLoadedServer(t, Config{})

	w := get(t, srv, "/?q=security")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<span class="count" id="packs-count">(1)</span>`)
	assert.Contains(t, w.Body.String(), `<span class="count" id="mcp-count">(0)</span>`)

	w = get(t, srv, "/?pack=rh-sre")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="pack-modal" class="modal" role="dialog" aria-modal="true" aria-label="Pack details" style="display: block"`)

	w = get(t, srv, "/?server=lightspeed&server_pack=ocp-admin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "From pack: ")

	w = get(t, srv, "/?pack=nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIndexShowsBannerOnLoadFailure(t *testing.T) {
	srv := New(Config{Source: filepath.Join(t.TempDir(), "missing.json")}, catalog.NewLoader())
	err := srv.Load(context.Background())
	require.Error(t, err)
	assert.True(t, failure.Is(err, catalog.ErrFetch))

	w := get(t, srv, "/")
	require.Equal(t, http.StatusOK, w.Code, "the page is still served")
	assert.Contains(t, w.Body.String(), "Error: "+catalog.LoadErrorMessage)

	w = get(t, srv, "/data.json")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, catalog.LoadErrorMessage, body.Error)
	assert.Equal(t, "CatalogFetch", body.Code)
}

func TestDataJSON(t *testing.T) {
	srv := newLoadedServer(t, Config{})
	w := get(t, srv, "/data.json")
	require.Equal(t, http.StatusOK, w.Code)

	cat, err := catalog.Decode(w.Body)
	require.NoError(t, err)
	assert.Len(t, cat.Packs, 2)
	assert.Len(t, cat.MCPServers, 2)
}

func TestSearchAPI(t *testing.T) {
	srv := newLoadedServer(t, Config{})

	w := get(t, srv, "/api/search?q=PODMAN")
	require.Equal(t, http.StatusOK, w.Code)
	var resp searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "podman", resp.Query)
	assert.Empty(t, resp.Packs)
	require.Len(t, resp.MCPServers, 1)
	assert.Equal(t, "rh-sre", resp.MCPServers[0].Pack)
	assert.Equal(t, catalog.Tally{Servers: 1}, resp.Tally)

	w = get(t, srv, "/api/search")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Packs, 2)
	assert.Len(t, resp.MCPServers, 2)
}

func TestDetailAPI(t *testing.T) {
	srv := newLoadedServer(t, Config{})

	w := get(t, srv, "/api/packs/rh-sre")
	require.Equal(t, http.StatusOK, w.Code)
	var pack catalog.Pack
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pack))
	assert.Equal(t, "Site Reliability", pack.Plugin.Name)

	w = get(t, srv, "/api/servers/ocp-admin/lightspeed")
	require.Equal(t, http.StatusOK, w.Code)
	var s catalog.MCPServer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.Equal(t, "npx", s.Command)

	w = get(t, srv, "/api/servers/rh-virt/lightspeed")
	assert.Equal(t, http.StatusNotFound, w.Code)
	var e errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Equal(t, "ServerNotFound", e.Code)

	w = get(t, srv, "/api/packs/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReadmeAndAssets(t *testing.T) {
	srv := newLoadedServer(t, Config{})

	w := get(t, srv, "/packs/rh-sre/readme")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<h1 id="sre">SRE</h1>`)

	assert.Equal(t, http.StatusNotFound, get(t, srv, "/packs/ocp-admin/readme").Code)

	w = get(t, srv, "/style.css")
	assert.Equal(t, "text/css; charset=utf-8", w.Header().Get("Content-Type"))
	w = get(t, srv, "/script.js")
	assert.True(t, strings.HasPrefix(w.Body.String(), "(function()"))
}

type countingFetcher struct {
	calls int
	cat   *catalog.Catalog
}

func (f *countingFetcher) Load(context.Context, string) (*catalog.Catalog, error) {
	f.calls++
	if f.cat == nil {
		return nil, errors.New("boom")
	}
	return f.cat, nil
}

func TestLoadIsSingleFetch(t *testing.T) {
	f := &countingFetcher{}
	srv := New(Config{Source: "https://example.com/data.json"}, f)
	require.Error(t, srv.Load(context.Background()))
	assert.Equal(t, 1, f.calls, "no retry")

	f.cat = &catalog.Catalog{Packs: []catalog.Pack{{Name: "a"}}}
	require.NoError(t, srv.Load(context.Background()))
	assert.Equal(t, 1, len(srv.current().cat.Packs))
	assert.NoError(t, srv.current().err)
}

func TestReloadBroadcast(t *testing.T) {
	srv := newLoadedServer(t, Config{Watch: true})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/reload"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return srv.Hub().Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, srv.Reload(context.Background()))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, ReloadMessage, string(msg))
}

func TestWatchSourceReloadsOnChange(t *testing.T) {
	srv := newLoadedServer(t, Config{Watch: true})
	stop, err := srv.WatchSource(context.Background())
	require.NoError(t, err)
	defer stop()

	// Replace the file in one step so the watcher never sees a truncated document.
	updated := strings.Replace(fixtureJSON, `"name": "ocp-admin"`, `"name": "ocp-platform"`, 1)
	tmp := srv.cfg.Source + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(updated), 0o644))
	require.NoError(t, os.Rename(tmp, srv.cfg.Source))

	require.Eventually(t, func() bool {
		return srv.current().index.HasPack("ocp-platform")
	}, 5*time.Second, 50*time.Millisecond)
}

func TestWatchRejectsRemoteSource(t *testing.T) {
	srv := New(Config{Source: "https://example.com/data.json"}, catalog.NewLoader())
	_, err := srv.WatchSource(context.Background())
	assert.Error(t, err)
}
