// Package web serves the blog as server-rendered HTML pages.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/CrestNiraj12/termblog/app"
	"github.com/CrestNiraj12/termblog/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// SessionSource yields the viewer session for a request.
type SessionSource interface {
	Load() (app.Session, error)
}

// Deps holds the services the web front end talks to.
type Deps struct {
	Posts       app.PostService
	Comments    app.CommentService
	Summaries   app.SummaryService
	Users       app.UserService
	Follows     app.FollowService
	Sessions    SessionSource
	PageSize    int
	LoginURL    string
	SessionPath string
	Logger      *log.Logger
}

// Server is the HTTP front end.
type Server struct {
	deps      Deps
	logger    *log.Logger
	router    chi.Router
	templates *template.Template
	metrics   *metrics
}

// New parses the templates and builds the router.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.PageSize <= 0 {
		deps.PageSize = 12
	}
	if deps.LoginURL == "" {
		deps.LoginURL = "/login"
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"timeAgo":    timeAgo,
		"name":       domain.DisplayName,
		"userName":   func(u domain.UserRef) string { return domain.DisplayName(&u) },
		"excerpt":    func(s string) string { return domain.Excerpt(domain.PlainText(s), 200) },
		"count":      func(n int) string { return humanize.Comma(int64(n)) },
		"paragraphs": paragraphs,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		deps:      deps,
		logger:    deps.Logger,
		templates: tmpl,
		metrics:   newMetrics(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(s.metrics.instrument)

	r.Get("/", s.handleList)
	r.Get("/posts", s.handleList)
	r.Route("/posts/{id}", func(r chi.Router) {
		r.Get("/", s.handlePost)
		r.Post("/comments", s.handleComment)
		r.Get("/summary", s.handleSummary)
	})
	r.Get("/users/{id}", s.handleProfile)
	r.Post("/users/{id}/follow", s.handleFollow)
	r.Get("/login", s.handleLogin)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	s.router = r
}

// ServeHTTP makes the server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Printf("Server starting on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) session() app.Session {
	if s.deps.Sessions == nil {
		return app.Session{}
	}
	sess, err := s.deps.Sessions.Load()
	if err != nil {
		s.logger.Printf("web: loading session: %v", err)
		return app.Session{}
	}
	return sess
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf strings.Builder
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Printf("Template error: %v", err)
		http.Error(w, "Render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

func (s *Server) renderError(w http.ResponseWriter, viewer app.Session, what string, err error) {
	status := http.StatusBadGateway
	msg := fmt.Sprintf("This %s could not be loaded.", what)
	if errors.Is(err, domain.ErrNotFound) {
		status = http.StatusNotFound
		msg = fmt.Sprintf("This %s does not exist or was removed.", what)
	}
	s.render(w, status, "error.html", errorPage{
		base:    s.base(viewer, "Error"),
		Message: msg,
		Detail:  err.Error(),
	})
}

func timeAgo(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

// paragraphs turns post HTML into plain text paragraphs.
func paragraphs(html string) []string {
	var out []string
	for _, p := range strings.Split(domain.PlainText(html), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
