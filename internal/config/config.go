package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type GameConfig struct {
	// TurnDurationSeconds bounds how long a human may sit on a single
	// decision before the server acts for them.
	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before
	// adding bots to a solo human lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	// Bot move pacing so turns stay readable for humans.
	BotMinDelaySeconds int    `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds int    `json:"bot_max_delay_seconds"`
	DefaultBotStrategy string `json:"default_bot_strategy"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Defaults returns the configuration used when no file is loaded.
func Defaults() GameConfig {
	return GameConfig{
		TurnDurationSeconds:     30,
		BotAutoFillDelaySeconds: 10,
		BotMinDelaySeconds:      1,
		BotMaxDelaySeconds:      3,
		DefaultBotStrategy:      "balanced",
	}
}

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c := Defaults()
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or the defaults when
// no file was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Defaults()
	}
	return *cfg
}
