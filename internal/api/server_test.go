package api

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/vovakirdan/theory-games/internal/catalog"
	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/storage"
)

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) (*Server, *storage.Profiles) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	profiles := storage.NewProfiles(store, nil)
	return New(":0", catalog.New(1), profiles, nil), profiles
}

func get(t *testing.T, s *Server, uri string) (int, envelope) {
	t.Helper()
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	ctx.Request.SetRequestURI(uri)
	s.Handler(&ctx)

	var env envelope
	if err := json.Unmarshal(ctx.Response.Body(), &env); err != nil {
		t.Fatalf("%s: invalid JSON %q: %v", uri, ctx.Response.Body(), err)
	}
	return ctx.Response.StatusCode(), env
}

func seed(t *testing.T, profiles *storage.Profiles) {
	t.Helper()
	ctx := context.Background()

	ada := storage.NewProfile("Ada", "🦊")
	ada.GamesPlayed, ada.GamesWon = 4, 3
	ada.Achievements = []core.Achievement{core.AchievementFirstWin}
	bo := storage.NewProfile("Bo", "🐼")
	bo.GamesPlayed, bo.GamesWon = 4, 1
	for _, p := range []*storage.Profile{bo, ada} {
		if err := profiles.Save(ctx, p); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
	}
	err := profiles.AppendHistory(ctx, storage.HistoryEntry{
		GameID:   "g1",
		Mode:     "classic",
		PlayedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Rounds:   10,
		WinnerID: ada.ID,
		Winner:   ada.Name,
	})
	if err != nil {
		t.Fatalf("AppendHistory() failed: %v", err)
	}
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	code, env := get(t, s, "/healthz")
	if code != fasthttp.StatusOK || !env.Success {
		t.Errorf("Expected 200 success, got %d %+v", code, env)
	}
}

func TestCategories(t *testing.T) {
	s, _ := newTestServer(t)
	code, env := get(t, s, "/categories")
	if code != fasthttp.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	var cats []CategoryView
	if err := json.Unmarshal(env.Data, &cats); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(cats) != len(s.catalog.Categories()) {
		t.Errorf("Expected %d categories, got %d", len(s.catalog.Categories()), len(cats))
	}
	for _, c := range cats {
		if c.ID == "" || c.Kind == "" {
			t.Errorf("Incomplete category: %+v", c)
		}
	}
}

func TestProfilesAndLeaderboard(t *testing.T) {
	s, profiles := newTestServer(t)
	seed(t, profiles)

	_, env := get(t, s, "/profiles")
	var list []ProfileView
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Ada" {
		t.Fatalf("Expected profiles sorted by name, got %+v", list)
	}
	if len(list[0].Achievements) != 1 || list[0].Achievements[0] != core.AchievementFirstWin.Title() {
		t.Errorf("Expected achievement titles, got %v", list[0].Achievements)
	}

	_, env = get(t, s, "/leaderboard?limit=1")
	var board []ProfileView
	if err := json.Unmarshal(env.Data, &board); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(board) != 1 || board[0].Name != "Ada" {
		t.Errorf("Expected Ada on top, got %+v", board)
	}
	if board[0].WinRate != 0.75 {
		t.Errorf("Expected win rate 0.75, got %v", board[0].WinRate)
	}
}

func TestProfileByID(t *testing.T) {
	s, profiles := newTestServer(t)
	seed(t, profiles)

	code, env := get(t, s, "/profiles/"+string(storage.ProfileID("bo")))
	if code != fasthttp.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	var p ProfileView
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if p.Name != "Bo" {
		t.Errorf("Expected Bo, got %q", p.Name)
	}

	code, env = get(t, s, "/profiles/missing")
	if code != fasthttp.StatusNotFound || env.Success {
		t.Errorf("Expected 404, got %d %+v", code, env)
	}
}

func TestHistory(t *testing.T) {
	s, profiles := newTestServer(t)

	_, env := get(t, s, "/history")
	if string(env.Data) != "[]" {
		t.Errorf("Expected empty list, got %s", env.Data)
	}

	seed(t, profiles)
	_, env = get(t, s, "/history?limit=5")
	var entries []storage.HistoryEntry
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(entries) != 1 || entries[0].GameID != "g1" {
		t.Errorf("Unexpected history: %+v", entries)
	}
}

func TestBadRequests(t *testing.T) {
	s, _ := newTestServer(t)
	tests := []struct {
		uri  string
		code int
	}{
		{"/history?limit=abc", fasthttp.StatusBadRequest},
		{"/leaderboard?limit=0", fasthttp.StatusBadRequest},
		{"/nope", fasthttp.StatusNotFound},
		{"/profiles/a/b", fasthttp.StatusNotFound},
	}
	for _, tt := range tests {
		code, env := get(t, s, tt.uri)
		if code != tt.code || env.Success {
			t.Errorf("%s: expected %d, got %d", tt.uri, tt.code, code)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetRequestURI("/profiles")
	s.Handler(&ctx)
	if ctx.Response.StatusCode() != fasthttp.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", ctx.Response.StatusCode())
	}
}

func TestNoStore(t *testing.T) {
	s := New(":0", catalog.New(1), nil, nil)
	code, _ := get(t, s, "/profiles")
	if code != fasthttp.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", code)
	}
	if code, _ := get(t, s, "/categories"); code != fasthttp.StatusOK {
		t.Errorf("Categories should work without a store, got %d", code)
	}
}
