/*
Copyright © 2025 Jaya Prakash

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/JayaPrakash0264/translator/internal/config"
	"github.com/JayaPrakash0264/translator/internal/gateway"
	"github.com/JayaPrakash0264/translator/internal/history"
)

// loadConfig reads the config file selected by the root --config flag.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// buildService constructs the translation gateway named in the config.
func buildService(cfg *config.Config) (gateway.Service, error) {
	switch cfg.Service {
	case "gemini":
		return gateway.NewGeminiService(gateway.Config{
			APIKey:   cfg.GeminiAPIKey,
			Model:    cfg.GeminiModel,
			TTSModel: cfg.TTSModel,
			Voice:    cfg.TTSVoice,
		}), nil
	case "google":
		return gateway.NewGoogleService(cfg.GoogleCredentials), nil
	default:
		return nil, fmt.Errorf("unknown service: %s", cfg.Service)
	}
}

// openHistoryStore opens the persistent history database, creating its
// directory when needed.
func openHistoryStore(cfg *config.Config) (*history.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.HistoryDB), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return history.NewStore(cfg.HistoryDB)
}
