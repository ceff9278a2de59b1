// Package gateway wraps the external AI providers behind a small interface:
// text translation plus speech synthesis. All intelligence lives on the
// provider side; this package normalizes requests, responses, and errors.
package gateway

import (
	"context"
	"errors"
	"time"
)

// ErrNoCredential marks a configuration failure: no API key or credentials
// file is available for the selected provider. No network call is made.
var ErrNoCredential = errors.New("no provider credential configured")

// Config carries provider settings shared by all services.
type Config struct {
	APIKey   string        `mapstructure:"api_key" json:"api_key"`
	Model    string        `mapstructure:"model" json:"model"`
	TTSModel string        `mapstructure:"tts_model" json:"tts_model"`
	Voice    string        `mapstructure:"voice" json:"voice"`
	BaseURL  string        `mapstructure:"base_url" json:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout"`
}

// Request is one translation request. SourceLang may be the auto-detect
// sentinel, instructing the provider to infer the source language.
type Request struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// Result is the normalized provider response. All fields past
// TranslatedText are optional; absent values stay at their zero value.
type Result struct {
	TranslatedText   string   `json:"translated_text"`
	DetectedLanguage string   `json:"detected_language,omitempty"`
	Pronunciation    string   `json:"pronunciation,omitempty"`
	Alternatives     []string `json:"alternatives,omitempty"`
}

// Service is a translation provider. Synthesize returns raw little-endian
// 16-bit PCM (24 kHz mono); providers without speech support return an
// error.
type Service interface {
	Name() string
	Translate(ctx context.Context, req Request) (*Result, error)
	Synthesize(ctx context.Context, text, languageDisplayName string) ([]byte, error)
}
