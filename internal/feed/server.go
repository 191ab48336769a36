package feed

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/whereim/internal/game"
	"github.com/vovakirdan/whereim/internal/geo"
	"github.com/vovakirdan/whereim/internal/observability"
	"github.com/vovakirdan/whereim/internal/sim"
)

// Options configures a feed server.
type Options struct {
	// Address is the host:port to listen on (e.g., ":8090").
	Address string

	// Registry receives the session metrics. A fresh registry is used if nil.
	Registry *prometheus.Registry

	// Logger defaults to a timestamped logger with a "whereim-feed" prefix.
	Logger *log.Logger
}

// Server is the HTTP feed over one game controller.
type Server struct {
	ctrl    *game.Controller
	hub     *Hub
	router  *mux.Router
	metrics *observability.SessionCollector
	logger  *log.Logger
	addr    string

	events      <-chan sim.Event
	unsubscribe func()
}

// StartRequest is the optional body of POST /api/start and the body of
// POST /api/viewport. Missing fields keep the viewer's current values.
type StartRequest struct {
	Center *geo.GeoPoint `json:"center,omitempty"`
	Span   *geo.Span     `json:"span,omitempty"`
}

// NewServer creates a feed server over ctrl.
func NewServer(ctrl *game.Controller, opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	metrics, err := observability.NewSessionCollector(reg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		ctrl:    ctrl,
		hub:     NewHub(logger),
		router:  mux.NewRouter(),
		metrics: metrics,
		logger:  logger,
		addr:    opts.Address,
	}
	// Subscribe up front so events between NewServer and Run are kept.
	s.events, s.unsubscribe = ctrl.Session().Subscribe(sendBuffer)
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	s.router.Use(s.loggingMiddleware)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", s.handleState).Methods("GET")
	api.HandleFunc("/start", s.handleStart).Methods("POST")
	api.HandleFunc("/stop", s.handleStop).Methods("POST")
	api.HandleFunc("/viewport", s.handleViewport).Methods("POST")

	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics.Gatherer(), promhttp.HandlerOpts{}))
	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Metrics returns the session metrics collector.
func (s *Server) Metrics() *observability.SessionCollector {
	return s.metrics
}

// Run pumps session events to metrics and websocket clients until ctx is
// done. It must be running for /ws and /metrics to see live data, and may
// only be called once.
func (s *Server) Run(ctx context.Context) {
	go s.hub.Run(ctx)
	defer s.unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-s.events:
			if !ok {
				return
			}
			s.metrics.Observe(evt)
			view := s.ctrl.ViewOf(evt.Snapshot)
			s.hub.Broadcast(Message{Event: evt.Type.String(), Moved: evt.Moved, View: &view})
		}
	}
}

// NotifyViewport broadcasts the current view after the viewer moved.
func (s *Server) NotifyViewport(geo.Region) {
	view := s.ctrl.View()
	s.hub.Broadcast(Message{Event: "viewport", View: &view})
}

// ListenAndServe serves HTTP and runs the event pump until ctx is done,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting feed server", "address", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

// loggingMiddleware logs each request at debug level.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		began := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(began))
	})
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decodeRegion reads an optional StartRequest and applies it to base.
// An empty body yields base unchanged and ok == false.
func decodeRegion(r *http.Request, base geo.Region) (region geo.Region, ok bool, err error) {
	var req StartRequest
	if r.Body == nil {
		return base, false, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return base, false, nil
		}
		return base, false, err
	}
	if req.Center != nil {
		base.Center = *req.Center
	}
	if req.Span != nil {
		base.Span = *req.Span
	}
	return base, req.Center != nil || req.Span != nil, nil
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.ctrl.View())
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	region, explicit, err := decodeRegion(r, s.ctrl.Tracker().Free())
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if explicit {
		err = s.ctrl.StartAt(region)
	} else {
		err = s.ctrl.Start()
	}
	if errors.Is(err, sim.ErrAlreadyRunning) {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info("game started", "level", s.ctrl.Session().Level())
	respondJSON(w, http.StatusOK, s.ctrl.View())
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.ctrl.End()
	respondJSON(w, http.StatusOK, s.ctrl.View())
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	region, explicit, err := decodeRegion(r, s.ctrl.Tracker().Free())
	if err != nil || !explicit {
		respondError(w, http.StatusBadRequest, "body must set center or span")
		return
	}
	if !s.ctrl.Tracker().Update(region) {
		respondError(w, http.StatusConflict, "viewport is pinned while a game is running")
		return
	}
	s.NotifyViewport(region)
	respondJSON(w, http.StatusOK, s.ctrl.View())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	view := s.ctrl.View()
	s.hub.ServeWS(w, r, Message{Event: "hello", View: &view})
}
