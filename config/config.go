// Package config loads the optional JSON settings file and maps it onto game rules.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"snake-web/game/types"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	FrontendRaylib   = "raylib"
	FrontendTerminal = "terminal"
	FrontendWeb      = "web"
)

// Config is the full runtime configuration. Zero-valued fields in the file
// keep their defaults.
type Config struct {
	Frontend   string      `json:"frontend"`
	Difficulty string      `json:"difficulty"`
	Map        string      `json:"map"`
	Store      string      `json:"store"`
	DataPath   string      `json:"dataPath"`
	Addr       string      `json:"addr"`
	Codec      string      `json:"codec"`
	Lang       string      `json:"lang"`
	Mute       bool        `json:"mute"`
	Seed       uint64      `json:"seed"`
	Rules      RulesConfig `json:"rules"`
}

// RulesConfig exposes the tunable gameplay policy in file-friendly units
type RulesConfig struct {
	GridSize          int    `json:"gridSize"`
	ShieldUnits       int    `json:"shieldUnits"`
	ShieldUnitMs      int    `json:"shieldUnitMs"`
	PowerUpLifetimeMs int    `json:"powerUpLifetimeMs"`
	ScissorsNoticeMs  int    `json:"scissorsNoticeMs"`
	ScissorsMinLength int    `json:"scissorsMinLength"`
	BoostIntervalMs   int    `json:"boostIntervalMs"`
	BoostDurationMs   int    `json:"boostDurationMs"`
	CountdownFrom     int    `json:"countdownFrom"`
	PowerUpScoreStep  int    `json:"powerUpScoreStep"`
	SpawnPolicy       string `json:"spawnPolicy"`
}

func Default() Config {
	r := types.DefaultRules()
	return Config{
		Frontend:   FrontendRaylib,
		Difficulty: string(types.Medium),
		Map:        types.MapIDs[0],
		Store:      "json",
		DataPath:   "data/gamestats.json",
		Addr:       ":8080",
		Codec:      "json",
		Lang:       "en",
		Rules: RulesConfig{
			GridSize:          r.GridSize,
			ShieldUnits:       r.ShieldUnits,
			ShieldUnitMs:      int(r.ShieldUnitInterval / time.Millisecond),
			PowerUpLifetimeMs: int(r.PowerUpLifetime / time.Millisecond),
			ScissorsNoticeMs:  int(r.ScissorsNotice / time.Millisecond),
			ScissorsMinLength: r.ScissorsMinLength,
			BoostIntervalMs:   int(r.BoostInterval / time.Millisecond),
			BoostDurationMs:   int(r.BoostDuration / time.Millisecond),
			CountdownFrom:     r.CountdownFrom,
			PowerUpScoreStep:  r.PowerUpScoreStep,
			SpawnPolicy:       string(r.SpawnPolicy),
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	Clamp(&cfg)
	return cfg, nil
}

// Validate rejects names that do not match a known preset
func (c Config) Validate() error {
	if _, err := types.ParseDifficulty(c.Difficulty); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := types.LookupMap(c.Map); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Frontend {
	case FrontendRaylib, FrontendTerminal, FrontendWeb:
	default:
		return fmt.Errorf("%w: unknown frontend %q", ErrInvalidConfig, c.Frontend)
	}
	switch c.Codec {
	case "json", "msgpack":
	default:
		return fmt.Errorf("%w: unknown codec %q", ErrInvalidConfig, c.Codec)
	}
	switch types.SpawnPolicy(c.Rules.SpawnPolicy) {
	case types.SpawnOnExactMultiple, types.SpawnOnCrossing:
	default:
		return fmt.Errorf("%w: unknown spawn policy %q", ErrInvalidConfig, c.Rules.SpawnPolicy)
	}
	return nil
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// Clamp enforces hard bounds on user-provided rule values
func Clamp(c *Config) {
	if c == nil {
		return
	}
	r := &c.Rules
	// built-in maps are laid out for the default grid
	r.GridSize = clampInt(r.GridSize, types.DefaultGridSize, 60)
	r.ShieldUnits = clampInt(r.ShieldUnits, 1, 1000)
	r.ShieldUnitMs = clampInt(r.ShieldUnitMs, 10, 1000)
	r.PowerUpLifetimeMs = clampInt(r.PowerUpLifetimeMs, 1000, 60000)
	r.ScissorsNoticeMs = clampInt(r.ScissorsNoticeMs, 100, 10000)
	r.ScissorsMinLength = clampInt(r.ScissorsMinLength, 0, 100)
	r.BoostIntervalMs = clampInt(r.BoostIntervalMs, 20, 150)
	r.BoostDurationMs = clampInt(r.BoostDurationMs, 0, 30000)
	r.CountdownFrom = clampInt(r.CountdownFrom, 0, 10)
	r.PowerUpScoreStep = clampInt(r.PowerUpScoreStep, 1, 100)
}

// GameRules converts the rules section into types.Rules
func (c Config) GameRules() types.Rules {
	rules := types.DefaultRules()
	r := c.Rules
	rules.GridSize = r.GridSize
	rules.ShieldUnits = r.ShieldUnits
	rules.ShieldUnitInterval = time.Duration(r.ShieldUnitMs) * time.Millisecond
	rules.PowerUpLifetime = time.Duration(r.PowerUpLifetimeMs) * time.Millisecond
	rules.ScissorsNotice = time.Duration(r.ScissorsNoticeMs) * time.Millisecond
	rules.ScissorsMinLength = r.ScissorsMinLength
	rules.BoostInterval = time.Duration(r.BoostIntervalMs) * time.Millisecond
	rules.BoostDuration = time.Duration(r.BoostDurationMs) * time.Millisecond
	rules.CountdownFrom = r.CountdownFrom
	rules.PowerUpScoreStep = r.PowerUpScoreStep
	rules.SpawnPolicy = types.SpawnPolicy(r.SpawnPolicy)
	return rules
}
