package server

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/logging"
	"github.com/ziadkadry99/packdocs/internal/site"
)

// Config holds server configuration.
type Config struct {
	Port     int
	Source   string // data.json path or URL
	RootDir  string // directory holding the pack directories, for READMEs
	AllowAll bool   // allow all CORS origins (dev mode)
	Watch    bool   // push reloads to browsers when the data file changes

	Page             site.PageOptions
	DescriptionLimit int
	InstallTemplate  string
}

// snapshot is one immutable load result. A failed load keeps err and no catalog.
type snapshot struct {
	cat      *catalog.Catalog
	index    *catalog.Index
	err      error
	loadedAt time.Time
}

// Server serves the catalog browser and its JSON API.
type Server struct {
	cfg        Config
	fetcher    site.Fetcher
	snap       atomic.Pointer[snapshot]
	hub        *Hub
	readmes    *site.ReadmeRenderer
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. Call Load before serving; until then every request
// sees an empty catalog.
func New(cfg Config, fetcher site.Fetcher) *Server {
	s := &Server{
		cfg:     cfg,
		fetcher: fetcher,
		hub:     NewHub(),
		readmes: site.NewReadmeRenderer(),
	}
	s.snap.Store(&snapshot{cat: &catalog.Catalog{}, index: catalog.NewIndex(&catalog.Catalog{})})
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", s.handleHealth)

	// The websocket route must not run under the request timeout.
	r.Get("/ws/reload", s.handleReloadSocket)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/", s.handleIndex)
		r.Get("/index.html", s.handleIndex)
		r.Get("/data.json", s.handleData)
		r.Get("/style.css", s.handleAsset("text/css; charset=utf-8", site.Stylesheet()))
		r.Get("/script.js", s.handleAsset("application/javascript; charset=utf-8", site.Script()))
		r.Get("/packs/{name}/readme", s.handleReadme)

		r.Route("/api", func(r chi.Router) {
			r.Get("/search", s.handleSearch)
			r.Get("/packs/{name}", s.handlePack)
			r.Get("/servers/{pack}/{name}", s.handleServer)
		})
	})

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the live-reload hub.
func (s *Server) Hub() *Hub { return s.hub }

// Load performs one fetch of the configured source and swaps in the result.
// A failed load replaces the catalog with an empty one and is served as the
// error banner; there is no retry.
func (s *Server) Load(ctx context.Context) error {
	cat, err := s.fetcher.Load(ctx, s.cfg.Source)
	if err != nil {
		logging.Error("Failed to load data", "source", s.cfg.Source, "error", err)
		empty := &catalog.Catalog{}
		s.snap.Store(&snapshot{cat: empty, index: catalog.NewIndex(empty), err: err, loadedAt: time.Now()})
		return err
	}
	s.snap.Store(&snapshot{cat: cat, index: catalog.NewIndex(cat), loadedAt: time.Now()})
	logging.Info("Catalog loaded", "source", s.cfg.Source, "packs", len(cat.Packs), "servers", len(cat.MCPServers))
	return nil
}

// Reload re-reads the source and tells connected browsers to refresh.
func (s *Server) Reload(ctx context.Context) error {
	err := s.Load(ctx)
	n := s.hub.Broadcast(ReloadMessage)
	logging.Debug("Reload broadcast", "clients", n)
	return err
}

func (s *Server) current() *snapshot { return s.snap.Load() }

// Start begins listening on the configured port. With Watch set, the data
// file is watched until the server shuts down.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if s.cfg.Watch {
		stop, err := s.WatchSource(context.Background())
		if err != nil {
			logging.Warn("Live reload disabled", "error", err)
		} else {
			s.httpServer.RegisterOnShutdown(stop)
		}
	}

	logging.Info("packdocs server listening", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and closes reload sockets.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.CloseAll()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
