// Package server exposes a translation session over HTTP as a small JSON
// API, plus the static page the browser UI loads from.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JayaPrakash0264/translator/internal/audio"
	"github.com/JayaPrakash0264/translator/internal/catalog"
	"github.com/JayaPrakash0264/translator/internal/gateway"
	"github.com/JayaPrakash0264/translator/internal/session"
)

//go:embed index.html
var staticFS embed.FS

// Server wires a Controller and its gateway to HTTP handlers.
type Server struct {
	controller *session.Controller
	gw         gateway.Service
	mux        *http.ServeMux
}

// New builds the handler set over controller. gw is used directly for the
// speech endpoint, which streams WAV audio instead of playing it locally.
func New(controller *session.Controller, gw gateway.Service) *Server {
	s := &Server{
		controller: controller,
		gw:         gw,
		mux:        http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /api/languages", s.handleLanguages)
	s.mux.HandleFunc("GET /api/state", s.handleState)
	s.mux.HandleFunc("POST /api/translate", s.handleTranslate)
	s.mux.HandleFunc("POST /api/swap", s.handleSwap)
	s.mux.HandleFunc("GET /api/history", s.handleHistory)
	s.mux.HandleFunc("DELETE /api/history", s.handleClearHistory)
	s.mux.HandleFunc("POST /api/history/{id}/restore", s.handleRestoreHistory)
	s.mux.HandleFunc("POST /api/speak", s.handleSpeak)
	s.mux.Handle("GET /", http.FileServerFS(staticFS))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, gateway.ErrNoCredential) {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	langs := catalog.Languages()
	if r.URL.Query().Get("selectable") == "true" {
		langs = catalog.Selectable()
	}
	writeJSON(w, http.StatusOK, langs)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.controller.Snapshot())
}

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Target != "" && catalog.IsAuto(req.Target) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "target language cannot be auto"})
		return
	}

	if req.Source != "" {
		s.controller.SetSourceLang(req.Source)
	}
	if req.Target != "" {
		if err := s.controller.SetTargetLang(req.Target); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}
	s.controller.SetSourceText(req.Text)

	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusOK, s.controller.Snapshot())
		return
	}

	if err := s.controller.Translate(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.controller.Snapshot())
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	s.controller.Swap()
	writeJSON(w, http.StatusOK, s.controller.Snapshot())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.controller.History())
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	s.controller.ClearHistory(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRestoreHistory(w http.ResponseWriter, r *http.Request) {
	if !s.controller.RestoreHistory(r.PathValue("id")) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "history entry not found"})
		return
	}
	writeJSON(w, http.StatusOK, s.controller.Snapshot())
}

type speakRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

func (s *Server) handleSpeak(w http.ResponseWriter, r *http.Request) {
	var req speakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	pcm, err := s.synthesize(r.Context(), req.Text, req.Lang)
	if err != nil {
		writeError(w, err)
		return
	}

	var wav bytes.Buffer
	if err := audio.WriteWAV(&wav, pcm, audio.DefaultSampleRate, audio.DefaultChannels); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	_, _ = w.Write(wav.Bytes())
}

func (s *Server) synthesize(ctx context.Context, text, langCode string) ([]byte, error) {
	pcm, err := s.gw.Synthesize(ctx, text, catalog.DisplayName(langCode))
	if err != nil {
		return nil, err
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("provider returned no audio")
	}
	return pcm, nil
}
