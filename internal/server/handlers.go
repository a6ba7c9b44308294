package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/morikuni/failure/v2"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/logging"
	"github.com/ziadkadry99/packdocs/internal/search"
	"github.com/ziadkadry99/packdocs/internal/site"
)

// searchResponse is the JSON body of /api/search.
type searchResponse struct {
	Query      string              `json:"query"`
	Packs      []catalog.Pack      `json:"packs"`
	MCPServers []catalog.MCPServer `json:"mcp_servers"`
	Tally      catalog.Tally       `json:"tally"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Debug("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	if msg := failure.MessageOf(err); msg != "" {
		resp.Error = msg.String()
	}
	for _, code := range errorCodes {
		if failure.Is(err, code) {
			resp.Code = code.ErrorCode()
			break
		}
	}
	writeJSON(w, status, resp)
}

var errorCodes = []catalog.ErrorCode{
	catalog.ErrFetch,
	catalog.ErrDecode,
	catalog.ErrPackNotFound,
	catalog.ErrServerNotFound,
}

// ServedReadmeHref is the README link used by the live server.
func ServedReadmeHref(pack string) string {
	return "/packs/" + url.PathEscape(pack) + "/readme"
}

func (s *Server) siteOptions(snap *snapshot) site.Options {
	inst, err := site.NewInstaller(s.cfg.InstallTemplate, snap.cat.Repository)
	if err != nil {
		logging.Warn("Invalid install template, using default", "error", err)
		inst, _ = site.NewInstaller("", snap.cat.Repository)
	}
	page := s.cfg.Page
	page.LiveReload = s.cfg.Watch
	return site.Options{
		Page: page,
		Detail: site.DetailOptions{
			DescriptionLimit: s.cfg.DescriptionLimit,
			Installer:        inst,
			ReadmeHref:       ServedReadmeHref,
			HasPack:          snap.index.HasPack,
		},
		EmbedDetails: true,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.current()
	status := map[string]any{"status": "ok", "packs": len(snap.cat.Packs), "mcp_servers": len(snap.cat.MCPServers)}
	if snap.err != nil {
		status["catalog_error"] = snap.err.Error()
	}
	writeJSON(w, http.StatusOK, status)
}

// handleIndex renders the page for this request. q filters the grids; pack, or
// server with server_pack, opens a detail modal.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.current()
	q := r.URL.Query()

	opts := s.siteOptions(snap)
	opts.Page.Query = q.Get("q")
	app := site.New(opts)
	if snap.err != nil {
		app.Fail(snap.err)
	} else {
		app.SetCatalog(snap.cat)
	}

	if query := q.Get("q"); query != "" {
		app.Search(query)
	}
	status := http.StatusOK
	if name := q.Get("pack"); name != "" {
		if err := app.ShowPack(name); err != nil {
			status = http.StatusNotFound
		}
	} else if name := q.Get("server"); name != "" {
		if err := app.ShowServer(name, q.Get("server_pack")); err != nil {
			status = http.StatusNotFound
		}
	}

	var buf bytes.Buffer
	if err := app.Render(&buf); err != nil {
		http.Error(w, "rendering page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	snap := s.current()
	if snap.err != nil {
		writeError(w, http.StatusServiceUnavailable, snap.err)
		return
	}
	writeJSON(w, http.StatusOK, snap.cat)
}

func (s *Server) handleAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write([]byte(body))
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	snap := s.current()
	res := search.Catalog(r.URL.Query().Get("q"), snap.cat)
	writeJSON(w, http.StatusOK, searchResponse{
		Query:      res.Query,
		Packs:      res.Packs,
		MCPServers: res.Servers,
		Tally:      res.Tally(),
	})
}

func (s *Server) handlePack(w http.ResponseWriter, r *http.Request) {
	pack, err := s.current().index.Pack(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, pack)
}

func (s *Server) handleServer(w http.ResponseWriter, r *http.Request) {
	srv, err := s.current().index.Server(chi.URLParam(r, "name"), chi.URLParam(r, "pack"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, srv)
}

func (s *Server) handleReadme(w http.ResponseWriter, r *http.Request) {
	snap := s.current()
	pack, err := snap.index.Pack(chi.URLParam(r, "name"))
	if err != nil || !pack.HasReadme {
		http.NotFound(w, r)
		return
	}
	source, err := site.ReadReadme(s.cfg.RootDir, pack.Path, pack.Name)
	if err != nil {
		logging.Warn("README not readable", "pack", pack.Name, "error", err)
		http.NotFound(w, r)
		return
	}
	var buf bytes.Buffer
	err = s.readmes.Render(&buf, source, site.ReadmePage{
		Title:       pack.Title(),
		ProjectName: s.cfg.Page.Title,
		BasePath:    "/",
		IndexHref:   "/",
	})
	if err != nil {
		http.Error(w, "rendering README", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
