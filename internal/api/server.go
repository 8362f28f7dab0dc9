// Package api serves read-only JSON views of the catalog, the profile store
// and the game history over fasthttp.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/valyala/fasthttp"

	"github.com/vovakirdan/theory-games/internal/catalog"
	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/storage"
)

const (
	defaultLimit   = 20
	maxLimit       = 500
	requestTimeout = 5 * time.Second
)

// Response is the envelope of every reply.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// CategoryView is a catalog category.
type CategoryView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Kind      string `json:"kind"`
	Questions int    `json:"questions"`
}

// ProfileView is a profile with its achievements spelled out.
type ProfileView struct {
	storage.Profile
	Achievements []string `json:"achievements"`
	WinRate      float64  `json:"win_rate"`
}

// Server is the stats HTTP server.
type Server struct {
	addr     string
	catalog  *catalog.Catalog
	profiles *storage.Profiles
	logger   *log.Logger
	server   *fasthttp.Server
}

// New creates a server. profiles may be nil, in which case the profile and
// history endpoints answer 503.
func New(addr string, cat *catalog.Catalog, profiles *storage.Profiles, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		addr:     addr,
		catalog:  cat,
		profiles: profiles,
		logger:   logger,
	}
	s.server = &fasthttp.Server{
		Handler: s.Handler,
		Name:    "theorygames",
	}
	return s
}

// Handler routes one request.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	s.logger.Debug("request", "method", string(ctx.Method()), "path", path)

	ctx.Response.Header.Set("Cache-Control", "no-cache")
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")

	if !ctx.IsGet() && !ctx.IsHead() {
		respondWithError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}

	switch {
	case path == "/healthz":
		respondWithSuccess(ctx, map[string]string{"status": "ok"})
	case path == "/categories":
		s.categories(ctx)
	case path == "/profiles":
		s.listProfiles(ctx)
	case strings.HasPrefix(path, "/profiles/"):
		s.profile(ctx, strings.TrimPrefix(path, "/profiles/"))
	case path == "/leaderboard":
		s.leaderboard(ctx)
	case path == "/history":
		s.history(ctx)
	default:
		respondWithError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) categories(ctx *fasthttp.RequestCtx) {
	cats := s.catalog.Categories()
	out := make([]CategoryView, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryView{
			ID:        c.ID,
			Title:     c.Title,
			Kind:      c.Kind.String(),
			Questions: len(s.catalog.QuestionsFor(c.ID)),
		})
	}
	respondWithSuccess(ctx, out)
}

func (s *Server) listProfiles(ctx *fasthttp.RequestCtx) {
	if !s.hasStore(ctx) {
		return
	}
	rctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	profiles, err := s.profiles.List(rctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	respondWithSuccess(ctx, views(profiles))
}

func (s *Server) profile(ctx *fasthttp.RequestCtx, id string) {
	if !s.hasStore(ctx) {
		return
	}
	if id == "" || strings.Contains(id, "/") {
		respondWithError(ctx, fasthttp.StatusNotFound, "not found")
		return
	}
	rctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	p := s.profiles.Load(rctx, core.PlayerID(id))
	if p == nil {
		respondWithError(ctx, fasthttp.StatusNotFound, "profile not found")
		return
	}
	respondWithSuccess(ctx, view(*p))
}

func (s *Server) leaderboard(ctx *fasthttp.RequestCtx) {
	if !s.hasStore(ctx) {
		return
	}
	limit, ok := parseLimit(ctx)
	if !ok {
		return
	}
	rctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	profiles, err := s.profiles.Leaderboard(rctx, limit)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	respondWithSuccess(ctx, views(profiles))
}

func (s *Server) history(ctx *fasthttp.RequestCtx) {
	if !s.hasStore(ctx) {
		return
	}
	limit, ok := parseLimit(ctx)
	if !ok {
		return
	}
	rctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	entries, err := s.profiles.History(rctx, limit)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	if entries == nil {
		entries = []storage.HistoryEntry{}
	}
	respondWithSuccess(ctx, entries)
}

func (s *Server) hasStore(ctx *fasthttp.RequestCtx) bool {
	if s.profiles == nil {
		respondWithError(ctx, fasthttp.StatusServiceUnavailable, "no profile store configured")
		return false
	}
	return true
}

func (s *Server) fail(ctx *fasthttp.RequestCtx, err error) {
	s.logger.Error("request failed", "path", string(ctx.Path()), "error", err)
	respondWithError(ctx, fasthttp.StatusInternalServerError, "storage error")
}

// parseLimit reads ?limit=N, defaulting to 20 and capping at 500.
func parseLimit(ctx *fasthttp.RequestCtx) (int, bool) {
	raw := ctx.QueryArgs().Peek("limit")
	if len(raw) == 0 {
		return defaultLimit, true
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil || n < 1 {
		respondWithError(ctx, fasthttp.StatusBadRequest, "limit must be a positive integer")
		return 0, false
	}
	return min(n, maxLimit), true
}

func view(p storage.Profile) ProfileView {
	titles := make([]string, 0, len(p.Achievements))
	for _, a := range p.Achievements {
		titles = append(titles, a.Title())
	}
	return ProfileView{Profile: p, Achievements: titles, WinRate: p.WinRate()}
}

func views(ps []storage.Profile) []ProfileView {
	out := make([]ProfileView, 0, len(ps))
	for _, p := range ps {
		out = append(out, view(p))
	}
	return out
}

func respondWithJSON(ctx *fasthttp.RequestCtx, statusCode int, response any) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(statusCode)

	data, err := json.Marshal(response)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"success":false,"error":"cannot encode response"}`)
		return
	}
	ctx.SetBody(data)
}

func respondWithError(ctx *fasthttp.RequestCtx, statusCode int, message string) {
	respondWithJSON(ctx, statusCode, Response{Error: message})
}

func respondWithSuccess(ctx *fasthttp.RequestCtx, data any) {
	respondWithJSON(ctx, fasthttp.StatusOK, Response{Success: true, Data: data})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting HTTP server", "address", s.addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(s.addr); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.logger.Error("server error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.ShutdownWithContext(sctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}
