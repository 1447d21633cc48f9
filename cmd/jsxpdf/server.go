package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/k-yle/jsx-pdf/cmd/jsxpdf/dslyaml"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v4/process"
)

const renderIDHeader = "X-Render-ID"

// server is the HTTP render API. Component libraries are loaded once at
// start; each request carries a document file.
type server struct {
	router    chi.Router
	libraries []dslyaml.Document
	opts      renderOptions
	maxBody   int64
	metrics   *metrics
	log       zerolog.Logger
	started   time.Time
}

func newServer(log zerolog.Logger, libraries []dslyaml.Document, opts renderOptions, maxBody int64) *server {
	s := &server{
		libraries: libraries,
		opts:      opts,
		maxBody:   maxBody,
		metrics:   newMetrics(),
		log:       log,
		started:   time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())
	r.Post("/render", s.handleRender)

	s.router = r
}

type healthResponse struct {
	Status     string  `json:"status"`
	Uptime     string  `json:"uptime"`
	Goroutines int     `json:"goroutines"`
	RSSBytes   uint64  `json:"rss_bytes,omitempty"`
	CPUPercent float64 `json:"cpu_percent,omitempty"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:     "ok",
		Uptime:     time.Since(s.started).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
	}
	if p, err := process.NewProcessWithContext(r.Context(), int32(os.Getpid())); err == nil {
		if mem, err := p.MemoryInfoWithContext(r.Context()); err == nil {
			resp.RSSBytes = mem.RSS
		}
		if cpu, err := p.CPUPercentWithContext(r.Context()); err == nil {
			resp.CPUPercent = cpu
		}
	} else {
		s.log.Debug().Err(err).Msg("process stats unavailable")
	}
	writeJSON(w, http.StatusOK, resp)
}

type errorResponse struct {
	ID     string `json:"id"`
	Family string `json:"family,omitempty"`
	Error  string `json:"error"`
}

// handleRender renders the YAML document in the request body. The pages
// query parameter overrides the preview page count.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	w.Header().Set(renderIDHeader, id)
	log := s.log.With().Str("render_id", id).Logger()

	opts := s.opts
	if v := r.URL.Query().Get("pages"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{ID: id, Error: "pages must be a positive integer"})
			return
		}
		opts.Pages = n
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{ID: id, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{ID: id, Error: err.Error()})
		return
	}

	s.metrics.inFlight.Inc()
	defer s.metrics.inFlight.Dec()
	start := time.Now()

	def, err := s.render(r, log, body, opts)
	if err != nil {
		family := errorFamily(err)
		s.metrics.observe(family, time.Since(start))
		log.Warn().Err(err).Str("family", family).Msg("render failed")
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{ID: id, Family: family, Error: err.Error()})
		return
	}
	s.metrics.observe("ok", time.Since(start))
	log.Debug().Dur("took", time.Since(start)).Msg("rendered")
	writeJSON(w, http.StatusOK, def)
}

func (s *server) render(r *http.Request, log zerolog.Logger, body []byte, opts renderOptions) (map[string]any, error) {
	doc, err := dslyaml.Parse(body)
	if err != nil {
		return nil, err
	}
	docs := make([]dslyaml.Document, 0, len(s.libraries)+1)
	docs = append(docs, s.libraries...)
	docs = append(docs, doc)
	return renderDocuments(r.Context(), log, opts, docs...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger logs one line per request.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Msg("request")
		})
	}
}
