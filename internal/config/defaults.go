package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/storage"
)

//go:embed defaults/theorygames.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	rc := core.DefaultConfig()
	st := storage.DefaultConfig()
	return Config{
		Game: GameConfig{
			Mode:          "classic",
			TickRate:      rc.TickRate,
			TimersEnabled: rc.TimersEnabled,
			TurnPause:     rc.TurnPause,
			FreezeWindow:  rc.FreezeWindow,
			ExtraTime:     rc.ExtraTime,
			MaxTurnTime:   rc.MaxTurnTime,
			PowerUpEvery:  rc.PowerUpEvery,
		},
		Difficulty: DefaultBands(),
		Modes:      map[string]ModeConfig{},
		Storage: StorageConfig{
			Backend: st.Backend,
			Path:    st.Path,
			Redis: RedisConfig{
				Addr:   st.RedisAddr,
				Prefix: st.RedisPrefix,
			},
		},
		Server: ServerConfig{
			SSHAddr:     ":23234",
			HostKeyPath: "~/.theorygames/ssh_host_ed25519",
			IdleTimeout: 10 * time.Minute,
			MaxTimeout:  time.Hour,
			HTTPAddr:    ":8080",
		},
		Log: LogConfig{Level: "info"},
	}
}
