// Package session implements the view-controller for a translation
// session: it owns the editable text and language selection, debounces
// gateway calls, surfaces request errors, and maintains the history log.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/JayaPrakash0264/translator/internal/audio"
	"github.com/JayaPrakash0264/translator/internal/catalog"
	"github.com/JayaPrakash0264/translator/internal/gateway"
	"github.com/JayaPrakash0264/translator/internal/history"
)

// DefaultDebounce is the quiet period after the last edit before a
// translation request is issued.
const DefaultDebounce = 800 * time.Millisecond

// State is a read-only snapshot of the session.
type State struct {
	SourceText   string `json:"source_text"`
	TargetText   string `json:"target_text"`
	SourceLang   string `json:"source_lang"`
	TargetLang   string `json:"target_lang"`
	DetectedLang string `json:"detected_lang,omitempty"`
	InFlight     bool   `json:"in_flight"`
	LastError    string `json:"last_error,omitempty"`
	Speaking     bool   `json:"speaking"`
}

// Controller mediates between user input and the translation gateway.
// All methods are safe for concurrent use; the debounce timer callback and
// HTTP handlers share one instance.
type Controller struct {
	gw     gateway.Service
	store  *history.Store
	player audio.Player

	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
	log   *history.Log

	sourceText   string
	targetText   string
	sourceLang   string
	targetLang   string
	detectedLang string
	inFlight     bool
	lastErr      string
	speaking     bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce overrides the debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithStore attaches a persistent history store. The store is read once
// here and rewritten in full on every history mutation.
func WithStore(store *history.Store) Option {
	return func(c *Controller) { c.store = store }
}

// WithPlayer attaches an audio player used by Speak.
func WithPlayer(p audio.Player) Option {
	return func(c *Controller) { c.player = p }
}

// New builds a Controller over gw. The session starts with auto-detect
// source and Spanish target, matching the UI defaults.
func New(gw gateway.Service, opts ...Option) *Controller {
	c := &Controller{
		gw:         gw,
		debounce:   DefaultDebounce,
		sourceLang: catalog.AutoCode,
		targetLang: "es",
		log:        history.NewLog(nil),
	}
	for _, o := range opts {
		o(c)
	}
	if c.store != nil {
		if items, err := c.store.Load(context.Background()); err == nil {
			c.log = history.NewLog(items)
		}
	}
	return c
}

// Close cancels any pending debounce timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimerLocked()
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		SourceText:   c.sourceText,
		TargetText:   c.targetText,
		SourceLang:   c.sourceLang,
		TargetLang:   c.targetLang,
		DetectedLang: c.detectedLang,
		InFlight:     c.inFlight,
		LastError:    c.lastErr,
		Speaking:     c.speaking,
	}
}

// SetSourceText replaces the source text. Empty input clears the target
// text and detected language immediately and cancels any pending request;
// non-empty input (re)starts the debounce timer.
func (c *Controller) SetSourceText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sourceText = text
	if strings.TrimSpace(text) == "" {
		c.targetText = ""
		c.detectedLang = ""
		c.stopTimerLocked()
		return
	}
	c.restartTimerLocked()
}

// SetSourceLang selects the source language; the auto-detect sentinel is
// allowed. Restarts the debounce timer when there is text to translate.
func (c *Controller) SetSourceLang(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sourceLang = code
	if strings.TrimSpace(c.sourceText) != "" {
		c.restartTimerLocked()
	}
}

// SetTargetLang selects the target language. The auto-detect sentinel is
// never a valid target.
func (c *Controller) SetTargetLang(code string) error {
	if catalog.IsAuto(code) {
		return fmt.Errorf("target language cannot be %q", code)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.targetLang = code
	if strings.TrimSpace(c.sourceText) != "" {
		c.restartTimerLocked()
	}
	return nil
}

// ClearError dismisses the last request error.
func (c *Controller) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = ""
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// restartTimerLocked implements the debounce: only the last edit within the
// quiet window survives.
func (c *Controller) restartTimerLocked() {
	c.stopTimerLocked()
	c.timer = time.AfterFunc(c.debounce, func() {
		_ = c.Translate(context.Background())
	})
}

// Translate issues one translation request with the current text and
// language selection. Empty source text short-circuits without a gateway
// call. On failure the target text is left unchanged and the error message
// is kept until the next successful request or ClearError.
func (c *Controller) Translate(ctx context.Context) error {
	c.mu.Lock()
	c.stopTimerLocked()

	text := c.sourceText
	if strings.TrimSpace(text) == "" {
		c.targetText = ""
		c.detectedLang = ""
		c.mu.Unlock()
		return nil
	}

	req := gateway.Request{
		Text:       text,
		SourceLang: c.sourceLang,
		TargetLang: c.targetLang,
	}
	c.inFlight = true
	c.lastErr = ""
	c.mu.Unlock()

	result, err := c.gw.Translate(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err != nil {
		c.lastErr = fmt.Sprintf("translation unavailable: %v", err)
		return err
	}

	// No fencing of overlapping requests: the last response to arrive wins.
	c.targetText = result.TranslatedText
	if result.DetectedLanguage != "" {
		c.detectedLang = result.DetectedLanguage
	}

	sourceLang := req.SourceLang
	if catalog.IsAuto(sourceLang) && result.DetectedLanguage != "" {
		sourceLang = result.DetectedLanguage
	}
	c.log.Add(history.NewItem(text, result.TranslatedText, sourceLang, req.TargetLang))
	c.persistHistoryLocked(ctx)
	return nil
}

// Swap exchanges source and target languages together with the displayed
// texts. It is a no-op while the source language is the auto-detect
// sentinel: the reverse direction would have no concrete source.
func (c *Controller) Swap() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if catalog.IsAuto(c.sourceLang) {
		return
	}
	c.sourceLang, c.targetLang = c.targetLang, c.sourceLang
	c.sourceText, c.targetText = c.targetText, c.sourceText
}

// Speak requests synthesized audio for text and plays it to completion.
// The call is rejected (returns false) while a playback is in flight or
// when text is empty. Failures are silent: the playback flag is reset and
// no error is surfaced.
func (c *Controller) Speak(ctx context.Context, text, langCode string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	c.mu.Lock()
	if c.speaking {
		c.mu.Unlock()
		return false
	}
	c.speaking = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.speaking = false
		c.mu.Unlock()
	}()

	pcm, err := c.gw.Synthesize(ctx, text, catalog.DisplayName(langCode))
	if err != nil || len(pcm) == 0 {
		return true
	}
	buf, err := audio.Decode(pcm, audio.DefaultSampleRate, audio.DefaultChannels)
	if err != nil {
		return true
	}
	if c.player != nil {
		_ = c.player.Play(ctx, buf)
	}
	return true
}

// History returns the session's history entries, newest first.
func (c *Controller) History() []history.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log.Items()
}

// RestoreHistory loads an entry's text and languages back into the session
// and re-enters the debounce flow, effectively re-running the translation.
func (c *Controller) RestoreHistory(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.log.Get(id)
	if !ok {
		return false
	}
	c.sourceText = item.SourceText
	c.sourceLang = item.SourceLang
	c.targetLang = item.TargetLang
	c.restartTimerLocked()
	return true
}

// ClearHistory empties the log and the persistent store.
func (c *Controller) ClearHistory(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.log.Clear()
	if c.store != nil {
		_ = c.store.Clear(ctx)
	}
}

func (c *Controller) persistHistoryLocked(ctx context.Context) {
	if c.store != nil {
		_ = c.store.Save(ctx, c.log.Items())
	}
}
