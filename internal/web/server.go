package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"go-seo-analyzer/internal/analyzer"
	"go-seo-analyzer/internal/wordcloud"
	"go-seo-analyzer/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Messages shown to the user.
const (
	MsgInvalidURL = "Por favor, introduce una URL válida que comience con http o https."
	MsgBusy       = "Ya hay un análisis en curso. Espera a que termine e inténtalo de nuevo."
	MsgErrorFmt   = "Ocurrió un error: "
	MsgNoCloud    = "No hay palabras clave suficientes para generar la nube."

	defaultURL = "https://"
)

// Analyzer runs one analysis.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (*models.Analysis, error)
}

type Server struct {
	analyzer Analyzer
	logger   *slog.Logger
	metrics  http.Handler
	tmpl     *template.Template
	cloud    wordcloud.Renderer
}

type ServerOption func(*Server)

// WithWordCloudAssetsHost makes the word cloud load its scripts from host.
func WithWordCloudAssetsHost(host string) ServerOption {
	return func(s *Server) {
		s.cloud.AssetsHost = host
	}
}

// NewServer builds the UI server. metrics may be nil to disable /metrics.
func NewServer(a Analyzer, logger *slog.Logger, metrics http.Handler, opts ...ServerOption) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	s := &Server{analyzer: a, logger: logger, metrics: metrics, tmpl: tmpl}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/analyze", s.handleAPIAnalyze)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving UI", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type pageView struct {
	URL       string
	Error     string
	Analysis  *models.Analysis
	WordCloud string
	CloudNote string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, pageView{URL: defaultURL})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	rawURL := r.FormValue("url")
	view := pageView{URL: rawURL}

	analysis, err := s.analyzer.Analyze(r.Context(), rawURL)
	if err != nil {
		view.Error = userMessage(err)
		s.render(w, statusFor(err), view)
		return
	}

	view.Analysis = analysis
	cloud, err := s.cloud.RenderString(analysis.CloudTerms)
	switch {
	case errors.Is(err, wordcloud.ErrEmpty):
		view.CloudNote = MsgNoCloud
	case err != nil:
		s.logger.Error("word cloud rendering failed", "url", rawURL, "error", err)
		view.CloudNote = MsgErrorFmt + err.Error()
	default:
		view.WordCloud = cloud
	}
	s.render(w, http.StatusOK, view)
}

type apiError struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) handleAPIAnalyze(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.analyzer.Analyze(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		writeJSON(w, statusFor(err), apiError{Error: err.Error(), Kind: analyzer.KindOf(err)})
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) render(w http.ResponseWriter, status int, view pageView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "index.html", view); err != nil {
		s.logger.Error("template execution failed", "error", err)
	}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, analyzer.ErrInvalidInput):
		return MsgInvalidURL
	case errors.Is(err, analyzer.ErrBusy):
		return MsgBusy
	default:
		return MsgErrorFmt + err.Error()
	}
}

func statusFor(err error) int {
	switch analyzer.KindOf(err) {
	case analyzer.KindInvalidInput:
		return http.StatusBadRequest
	case analyzer.KindFetchFailed:
		return http.StatusBadGateway
	case analyzer.KindParseFailed:
		return http.StatusUnprocessableEntity
	case analyzer.KindModelUnavailable:
		return http.StatusServiceUnavailable
	case analyzer.KindBusy:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
