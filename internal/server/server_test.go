package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JayaPrakash0264/translator/internal/catalog"
	"github.com/JayaPrakash0264/translator/internal/gateway"
	"github.com/JayaPrakash0264/translator/internal/session"
)

type fakeGateway struct {
	result   *gateway.Result
	err      error
	pcm      []byte
	synthErr error
}

func (f *fakeGateway) Name() string { return "fake" }

func (f *fakeGateway) Translate(ctx context.Context, req gateway.Request) (*gateway.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeGateway) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if f.synthErr != nil {
		return nil, f.synthErr
	}
	return f.pcm, nil
}

func newTestServer(t *testing.T, gw gateway.Service) (*Server, *session.Controller) {
	t.Helper()
	c := session.New(gw)
	t.Cleanup(c.Close)
	return New(c, gw), c
}

func TestHandleLanguages(t *testing.T) {
	srv, _ := newTestServer(t, &fakeGateway{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/languages", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var langs []catalog.Language
	if err := json.Unmarshal(rec.Body.Bytes(), &langs); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(langs) == 0 || langs[0].Code != catalog.AutoCode {
		t.Errorf("expected full catalog with sentinel first, got %v", langs[:1])
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/languages?selectable=true", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &langs); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, l := range langs {
		if l.Code == catalog.AutoCode {
			t.Fatal("selectable list must exclude the sentinel")
		}
	}
}

func TestHandleTranslate(t *testing.T) {
	gw := &fakeGateway{result: &gateway.Result{TranslatedText: "Hola", DetectedLanguage: "en"}}
	srv, _ := newTestServer(t, gw)

	body, _ := json.Marshal(map[string]string{"text": "Hello", "source": "auto", "target": "es"})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/translate", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var st session.State
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("failed to decode state: %v", err)
	}
	if st.TargetText != "Hola" || st.DetectedLang != "en" {
		t.Errorf("unexpected state: %+v", st)
	}
}

func TestHandleTranslate_EmptyTextNoGatewayCall(t *testing.T) {
	gw := &fakeGateway{err: fmt.Errorf("should not be called")}
	srv, _ := newTestServer(t, gw)

	body, _ := json.Marshal(map[string]string{"text": "", "target": "es"})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/translate", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty text, got %d", rec.Code)
	}
}

func TestHandleTranslate_RejectsAutoTarget(t *testing.T) {
	srv, _ := newTestServer(t, &fakeGateway{})

	body, _ := json.Marshal(map[string]string{"text": "Hello", "target": "auto"})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/translate", bytes.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for auto target, got %d", rec.Code)
	}
}

func TestHandleTranslate_ErrorStatuses(t *testing.T) {
	gw := &fakeGateway{err: fmt.Errorf("gemini: %w", gateway.ErrNoCredential)}
	srv, _ := newTestServer(t, gw)

	body, _ := json.Marshal(map[string]string{"text": "Hello", "target": "es"})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/translate", bytes.NewReader(body)))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 for missing credential, got %d", rec.Code)
	}

	gw.err = fmt.Errorf("provider down")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/translate", bytes.NewReader(body)))
	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502 for transient failure, got %d", rec.Code)
	}
}

func TestHandleSwap(t *testing.T) {
	gw := &fakeGateway{result: &gateway.Result{TranslatedText: "Hola"}}
	srv, c := newTestServer(t, gw)

	c.SetSourceLang("en")
	body, _ := json.Marshal(map[string]string{"text": "Hello", "source": "en", "target": "es"})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/translate", bytes.NewReader(body)))

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/swap", nil))

	var st session.State
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("failed to decode state: %v", err)
	}
	if st.SourceLang != "es" || st.TargetLang != "en" {
		t.Errorf("expected swapped languages, got %+v", st)
	}
	if st.SourceText != "Hola" || st.TargetText != "Hello" {
		t.Errorf("expected swapped texts, got %+v", st)
	}
}

func TestHandleHistoryFlow(t *testing.T) {
	gw := &fakeGateway{result: &gateway.Result{TranslatedText: "Hola", DetectedLanguage: "en"}}
	srv, _ := newTestServer(t, gw)

	body, _ := json.Marshal(map[string]string{"text": "Hello", "source": "auto", "target": "es"})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/translate", bytes.NewReader(body)))

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/history", nil))
	var items []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 history item, got %d", len(items))
	}
	id, _ := items[0]["id"].(string)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/history/"+id+"/restore", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for restore, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/history/nope/restore", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown entry, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/history", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for clear, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/history", nil))
	items = nil
	_ = json.Unmarshal(rec.Body.Bytes(), &items)
	if len(items) != 0 {
		t.Errorf("expected empty history after clear, got %d", len(items))
	}
}

func TestHandleSpeak(t *testing.T) {
	gw := &fakeGateway{pcm: []byte{0x00, 0x00, 0x00, 0x40}}
	srv, _ := newTestServer(t, gw)

	body, _ := json.Marshal(map[string]string{"text": "Hola", "lang": "es"})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/speak", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/wav" {
		t.Errorf("expected audio/wav, got %q", ct)
	}
	b := rec.Body.Bytes()
	if len(b) != 44+4 || string(b[0:4]) != "RIFF" {
		t.Errorf("expected WAV payload, got %d bytes", len(b))
	}
}

func TestHandleSpeak_EmptyText(t *testing.T) {
	srv, _ := newTestServer(t, &fakeGateway{})

	body, _ := json.Marshal(map[string]string{"text": "  ", "lang": "es"})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/speak", bytes.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty text, got %d", rec.Code)
	}
}

func TestHandleSpeak_NoAudio(t *testing.T) {
	srv, _ := newTestServer(t, &fakeGateway{})

	body, _ := json.Marshal(map[string]string{"text": "Hola", "lang": "es"})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/speak", bytes.NewReader(body)))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502 when provider returns no audio, got %d", rec.Code)
	}
}

func TestServesIndexPage(t *testing.T) {
	srv, _ := newTestServer(t, &fakeGateway{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for index page, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("Translator")) {
		t.Error("expected index page content")
	}
}
