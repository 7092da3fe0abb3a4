package config

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil

	default:
		return errors.New("invalid duration")
	}
}

type LogConfig struct {
	Level      string `json:"level"`
	File       string `json:"file"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

type GameConfig struct {
	Width         int  `json:"width"`
	Height        int  `json:"height"`
	MineCount     int  `json:"mine_count"`
	SafeStart     bool `json:"safe_start"`
	ClearClusters bool `json:"clear_clusters"`
}

func (g GameConfig) Params() mines.GameParams {
	return mines.GameParams{
		Width:         g.Width,
		Height:        g.Height,
		MineCount:     g.MineCount,
		SafeStart:     g.SafeStart,
		ClearClusters: g.ClearClusters,
	}
}

type SessionConfig struct {
	Secret      string   `json:"secret"`
	IdleTimeout Duration `json:"idle_timeout"`
	MaxSessions int      `json:"max_sessions"`
}

type Config struct {
	Mode    string        `json:"mode"`
	Addr    string        `json:"addr"`
	Origins []string      `json:"cors_origins"`
	Log     LogConfig     `json:"log"`
	Game    GameConfig    `json:"game"`
	Session SessionConfig `json:"session"`
}

func Default() *Config {
	return &Config{
		Mode:    "development",
		Addr:    ":8080",
		Origins: []string{"*"},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Game: GameConfig{
			Width:     9,
			Height:    9,
			MineCount: 10,
			SafeStart: true,
		},
		Session: SessionConfig{
			IdleTimeout: Duration{30 * time.Minute},
			MaxSessions: 1024,
		},
	}
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":                 c.Mode,
		"addr":                 c.Addr,
		"cors_origins":         c.Origins,
		"log_level":            c.Log.Level,
		"log_file":             c.Log.File,
		"game":                 c.Game.Params().Seed(),
		"session_secret_set":   c.Session.Secret != "",
		"session_idle_timeout": c.Session.IdleTimeout.Duration.String(),
		"session_max_sessions": c.Session.MaxSessions,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) Validate() error {
	if err := c.Game.Params().Validate(); err != nil {
		return err
	}
	if c.Production() && c.Session.Secret == "" {
		return errors.New("session secret must be set in production mode")
	}
	if c.Session.MaxSessions <= 0 {
		return errors.New("session max_sessions must be above 0")
	}
	return nil
}

// Read loads the config file at path over the defaults and applies
// environment overrides. An empty path skips the file.
func Read(path string) (*Config, error) {
	config := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, config); err != nil {
			return nil, err
		}
	}
	applyEnv(config)
	return config, nil
}
