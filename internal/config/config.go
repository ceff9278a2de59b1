// Package config loads translator settings from a YAML file, environment
// variables, and defaults, in that order of increasing precedence for the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable of the application.
type Config struct {
	Service           string        `mapstructure:"service"`
	GeminiAPIKey      string        `mapstructure:"gemini_api_key"`
	GeminiModel       string        `mapstructure:"gemini_model"`
	TTSModel          string        `mapstructure:"tts_model"`
	TTSVoice          string        `mapstructure:"tts_voice"`
	GoogleCredentials string        `mapstructure:"google_credentials"`
	Debounce          time.Duration `mapstructure:"debounce"`
	HistoryDB         string        `mapstructure:"history_db"`
	ListenAddr        string        `mapstructure:"listen_addr"`
}

func defaultHistoryDB() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "translator.db"
	}
	return filepath.Join(home, ".local", "share", "translator", "history.db")
}

// Load reads configuration. path may be empty, in which case
// ~/.config/translator/config.yaml is used when present; a missing file is
// not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("service", "gemini")
	// Empty defaults register the keys so AutomaticEnv can fill them.
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("google_credentials", "")
	v.SetDefault("gemini_model", "gemini-2.0-flash")
	v.SetDefault("tts_model", "gemini-2.5-flash-preview-tts")
	v.SetDefault("tts_voice", "Kore")
	v.SetDefault("debounce", 800*time.Millisecond)
	v.SetDefault("history_db", defaultHistoryDB())
	v.SetDefault("listen_addr", "localhost:8080")

	v.SetEnvPrefix("TRANSLATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "translator"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
