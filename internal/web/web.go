package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"confsched/internal/config"
	"confsched/internal/ics"
	appLog "confsched/internal/log"
	"confsched/internal/model"
	"confsched/internal/schedule"
)

// RefreshFunc rebuilds every configured year into the cache.
type RefreshFunc func(ctx context.Context) error

// Server exposes cached schedules over HTTP.
type Server struct {
	cfg     *config.Config
	cache   *schedule.Cache
	refresh RefreshFunc
	loc     *time.Location
	mux     *http.ServeMux
}

// NewServer constructs a new Server. refresh may be nil, in which case
// POST /api/refresh is not served.
func NewServer(cfg *config.Config, cache *schedule.Cache, refresh RefreshFunc) *Server {
	s := &Server{
		cfg:     cfg,
		cache:   cache,
		refresh: refresh,
		loc:     resolveLocationOrUTC(cfg.Timezone),
		mux:     http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured.
func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// Empty credentials disable auth.
	if s.cfg.BasicAuth.Username == "" || s.cfg.BasicAuth.Password == "" {
		return false
	}
	return true
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="confsched", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Run serves on cfg.Listen until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		appLog.Info("stopping HTTP server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/years", s.handleYears)
	s.mux.HandleFunc("GET /api/schedule/{year}", s.handleSchedule)
	s.mux.HandleFunc("GET /api/schedule/{year}/workshops", s.handleWorkshops)
	s.mux.HandleFunc("GET /api/schedule/{year}/sessions/{slug}", s.handleSession)
	s.mux.HandleFunc("GET /schedule/{file}", s.handleICS)
	if s.refresh != nil {
		s.mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleYears(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, yearsResponse{Years: s.cache.Years()})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	sched, ok := s.lookup(w, r.PathValue("year"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newScheduleDTO(sched))
}

func (s *Server) handleWorkshops(w http.ResponseWriter, r *http.Request) {
	sched, ok := s.lookup(w, r.PathValue("year"))
	if !ok {
		return
	}
	groups := make([]workshopGroupDTO, 0, len(sched.WorkshopGroups))
	for _, g := range sched.WorkshopGroups {
		groups = append(groups, newWorkshopGroupDTO(g))
	}
	writeJSON(w, http.StatusOK, workshopsResponse{Year: sched.Year, Groups: groups})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	sched, ok := s.lookup(w, r.PathValue("year"))
	if !ok {
		return
	}
	inst, ok := sched.SessionsBySlug[r.PathValue("slug")]
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, newSessionDetailDTO(inst))
}

// handleICS serves /schedule/{year}.ics.
func (s *Server) handleICS(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	yearStr, ok := strings.CutSuffix(file, ".ics")
	if !ok {
		http.NotFound(w, r)
		return
	}
	sched, ok := s.lookup(w, yearStr)
	if !ok {
		return
	}
	body, err := ics.Export(sched, ics.ExportOptions{Location: s.loc})
	if err != nil {
		appLog.Error("ics export failed", err, "year", sched.Year)
		writeError(w, http.StatusInternalServerError, "failed to export calendar")
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.refresh(r.Context()); err != nil {
		appLog.Error("api refresh failed", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, yearsResponse{Years: s.cache.Years()})
}

// lookup resolves a year path segment, writing the error response itself
// when the year is malformed or not built.
func (s *Server) lookup(w http.ResponseWriter, yearStr string) (*model.Schedule, bool) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year")
		return nil, false
	}
	sched, ok := s.cache.Get(year)
	if !ok {
		writeError(w, http.StatusNotFound, "no schedule for year")
		return nil, false
	}
	return sched, true
}

func resolveLocationOrUTC(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		appLog.Error("failed to load timezone; falling back to UTC", err, "name", name)
		return time.UTC
	}
	return loc
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
