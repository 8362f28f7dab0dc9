package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/game"
)

// Key layout.
const (
	profilePrefix = "profile:"
	settingsKey   = "settings"
	historyList   = "history"
)

// MaxHistory is the number of game summaries kept in the history list.
const MaxHistory = 500

var profileNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/vovakirdan/theory-games/profiles"))

// ProfileID derives a stable player id from a display name. Names that differ
// only in case or spacing map to the same profile.
func ProfileID(name string) core.PlayerID {
	return core.PlayerID(uuid.NewSHA1(profileNamespace, []byte(core.NormalizeName(name))).String())
}

// CategoryStats counts one player's rounds in one category.
type CategoryStats struct {
	Played int `json:"played"`
	Won    int `json:"won"`
}

// Profile is the persisted record of one player across games.
type Profile struct {
	ID            core.PlayerID            `json:"id"`
	Name          string                   `json:"name"`
	Avatar        string                   `json:"avatar"`
	GamesPlayed   int                      `json:"games_played"`
	GamesWon      int                      `json:"games_won"`
	RoundsWon     int                      `json:"rounds_won"`
	TotalScore    int                      `json:"total_score"`
	BestScore     int                      `json:"best_score"`
	LongestStreak int                      `json:"longest_streak"`
	PowerUpsUsed  int                      `json:"power_ups_used"`
	Achievements  []core.Achievement       `json:"achievements"`
	Categories    map[string]CategoryStats `json:"categories"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// NewProfile creates an empty profile for a display name.
func NewProfile(name, avatar string) *Profile {
	return &Profile{
		ID:         ProfileID(name),
		Name:       name,
		Avatar:     avatar,
		Categories: make(map[string]CategoryStats),
	}
}

// Player returns a fresh game participant carrying the profile's lifetime
// stats and achievements.
func (p *Profile) Player() *core.Player {
	pl := core.NewPlayer(p.ID, p.Name, p.Avatar)
	pl.Achievements = append([]core.Achievement(nil), p.Achievements...)
	pl.LifetimeGames = p.GamesPlayed
	pl.LifetimeWins = p.GamesWon
	pl.LifetimeRoundsWon = p.RoundsWon
	return pl
}

// WinRate returns games won over games played.
func (p *Profile) WinRate() float64 {
	if p.GamesPlayed == 0 {
		return 0
	}
	return float64(p.GamesWon) / float64(p.GamesPlayed)
}

func (p *Profile) addAchievements(as []core.Achievement) {
	for _, a := range as {
		found := false
		for _, have := range p.Achievements {
			if have == a {
				found = true
				break
			}
		}
		if !found {
			p.Achievements = append(p.Achievements, a)
		}
	}
}

// HistoryPlayer is one participant of a recorded game.
type HistoryPlayer struct {
	ID         core.PlayerID `json:"id"`
	Name       string        `json:"name"`
	Avatar     string        `json:"avatar"`
	Score      int           `json:"score"`
	RoundsWon  int           `json:"rounds_won"`
	Eliminated bool          `json:"eliminated"`
}

// HistoryEntry summarizes one finished game.
type HistoryEntry struct {
	GameID   string          `json:"game_id"`
	Mode     string          `json:"mode"`
	PlayedAt time.Time       `json:"played_at"`
	Duration time.Duration   `json:"duration"`
	Rounds   int             `json:"rounds"`
	WinnerID core.PlayerID   `json:"winner_id,omitempty"`
	Winner   string          `json:"winner,omitempty"`
	Players  []HistoryPlayer `json:"players"`
}

// Settings are the front end's remembered preferences.
type Settings struct {
	Mode          string   `json:"mode"`
	Rounds        int      `json:"rounds"`
	TimersEnabled bool     `json:"timers_enabled"`
	Categories    []string `json:"categories,omitempty"`
	LastPlayers   []string `json:"last_players,omitempty"`
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() Settings {
	return Settings{
		Mode:          core.ModeClassic.String(),
		TimersEnabled: true,
	}
}

// Profiles stores profiles, settings and history as JSON in a KV backend.
// Reads never fail on bad data: a corrupt record is logged and treated as
// missing.
type Profiles struct {
	kv     KV
	logger *log.Logger
	clock  func() time.Time
}

var _ game.ProfileSaver = (*Profiles)(nil)

// NewProfiles creates a profile store. A nil logger discards output.
func NewProfiles(kv KV, logger *log.Logger) *Profiles {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Profiles{kv: kv, logger: logger, clock: time.Now}
}

// Load returns the stored profile or nil when it is absent or unreadable.
func (s *Profiles) Load(ctx context.Context, id core.PlayerID) *Profile {
	data, err := s.kv.Get(ctx, profilePrefix+string(id))
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Warn("cannot load profile", "id", id, "error", err)
		return nil
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn("corrupt profile", "id", id, "error", err)
		return nil
	}
	if p.Categories == nil {
		p.Categories = make(map[string]CategoryStats)
	}
	return &p
}

// LoadOrCreate returns the profile for a display name, creating an unsaved
// one when none exists.
func (s *Profiles) LoadOrCreate(ctx context.Context, name, avatar string) *Profile {
	if p := s.Load(ctx, ProfileID(name)); p != nil {
		return p
	}
	p := NewProfile(name, avatar)
	p.CreatedAt = s.clock()
	return p
}

// Save writes a profile.
func (s *Profiles) Save(ctx context.Context, p *Profile) error {
	if p.ID == "" {
		return fmt.Errorf("storage: profile %q has no id", p.Name)
	}
	p.UpdatedAt = s.clock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = p.UpdatedAt
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("storage: cannot encode profile: %w", err)
	}
	return s.kv.Put(ctx, profilePrefix+string(p.ID), data)
}

// List returns every readable profile sorted by name.
func (s *Profiles) List(ctx context.Context) ([]Profile, error) {
	keys, err := s.kv.Keys(ctx, profilePrefix)
	if err != nil {
		return nil, err
	}
	profiles := make([]Profile, 0, len(keys))
	for _, k := range keys {
		if p := s.Load(ctx, core.PlayerID(strings.TrimPrefix(k, profilePrefix))); p != nil {
			profiles = append(profiles, *p)
		}
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		return strings.ToLower(profiles[i].Name) < strings.ToLower(profiles[j].Name)
	})
	return profiles, nil
}

// Leaderboard ranks profiles by games won, then rounds won, then total
// score. A positive limit truncates the result.
func (s *Profiles) Leaderboard(ctx context.Context, limit int) ([]Profile, error) {
	profiles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		a, b := profiles[i], profiles[j]
		if a.GamesWon != b.GamesWon {
			return a.GamesWon > b.GamesWon
		}
		if a.RoundsWon != b.RoundsWon {
			return a.RoundsWon > b.RoundsWon
		}
		return a.TotalScore > b.TotalScore
	})
	if limit > 0 && len(profiles) > limit {
		profiles = profiles[:limit]
	}
	return profiles, nil
}

// AppendHistory records a finished game.
func (s *Profiles) AppendHistory(ctx context.Context, e HistoryEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("storage: cannot encode history: %w", err)
	}
	return s.kv.Append(ctx, historyList, data, MaxHistory)
}

// History returns up to limit games, newest first. Unreadable entries are
// skipped.
func (s *Profiles) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	raw, err := s.kv.Range(ctx, historyList, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]HistoryEntry, 0, len(raw))
	for _, data := range raw {
		var e HistoryEntry
		if err := json.Unmarshal(data, &e); err != nil {
			s.logger.Warn("corrupt history entry", "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// LoadSettings returns the stored settings, or defaults when they are
// absent or unreadable.
func (s *Profiles) LoadSettings(ctx context.Context) Settings {
	data, err := s.kv.Get(ctx, settingsKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("cannot load settings", "error", err)
		}
		return DefaultSettings()
	}
	st := DefaultSettings()
	if err := json.Unmarshal(data, &st); err != nil {
		s.logger.Warn("corrupt settings", "error", err)
		return DefaultSettings()
	}
	return st
}

// SaveSettings writes the settings.
func (s *Profiles) SaveSettings(ctx context.Context, st Settings) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("storage: cannot encode settings: %w", err)
	}
	return s.kv.Put(ctx, settingsKey, data)
}

// RecordGame folds a finished game into every participant's profile and
// appends it to the history. All players are attempted even if one fails.
func (s *Profiles) RecordGame(ctx context.Context, sum game.Summary) error {
	eliminated := make(map[core.PlayerID]bool, len(sum.Eliminated))
	for _, id := range sum.Eliminated {
		eliminated[id] = true
	}

	var errs []error
	entry := HistoryEntry{
		GameID:   sum.ID,
		Mode:     sum.Mode.String(),
		PlayedAt: sum.EndedAt,
		Duration: sum.EndedAt.Sub(sum.StartedAt),
		Rounds:   sum.Rounds,
	}

	for _, pl := range sum.Players {
		p := s.Load(ctx, pl.ID)
		if p == nil {
			p = &Profile{ID: pl.ID, Categories: make(map[string]CategoryStats)}
		}
		p.Name = pl.Name
		p.Avatar = pl.Avatar
		p.GamesPlayed++
		if sum.Won(pl.ID) {
			p.GamesWon++
		}
		p.RoundsWon += pl.RoundsWon
		p.TotalScore += pl.Score
		p.BestScore = max(p.BestScore, pl.Score)
		p.LongestStreak = max(p.LongestStreak, pl.LongestStreak)
		p.PowerUpsUsed += pl.PowerUpsUsed
		p.addAchievements(pl.Achievements)

		for _, r := range sum.Results {
			if !played(r, pl.ID) {
				continue
			}
			cs := p.Categories[r.Category]
			cs.Played++
			if r.Winner != nil && *r.Winner == pl.ID {
				cs.Won++
			}
			p.Categories[r.Category] = cs
		}

		if err := s.Save(ctx, p); err != nil {
			errs = append(errs, err)
		}

		entry.Players = append(entry.Players, HistoryPlayer{
			ID:         pl.ID,
			Name:       pl.Name,
			Avatar:     pl.Avatar,
			Score:      pl.Score,
			RoundsWon:  pl.RoundsWon,
			Eliminated: eliminated[pl.ID],
		})
		if sum.Won(pl.ID) {
			entry.WinnerID = pl.ID
			entry.Winner = pl.Name
		}
	}

	if err := s.AppendHistory(ctx, entry); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func played(r game.RoundResult, id core.PlayerID) bool {
	for _, p := range r.Players {
		if p == id {
			return true
		}
	}
	return false
}
