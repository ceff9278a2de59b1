package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func geminiTextResponse(text string) geminiResponse {
	return geminiResponse{
		Candidates: []struct {
			Content geminiContent `json:"content"`
		}{
			{Content: geminiContent{Parts: []geminiPart{{Text: text}}}},
		},
	}
}

func TestGeminiService_Name(t *testing.T) {
	svc := NewGeminiService(Config{APIKey: "k"})
	if svc.Name() != "gemini" {
		t.Errorf("expected 'gemini', got %q", svc.Name())
	}
}

func TestGeminiService_Translate_NoAPIKey(t *testing.T) {
	svc := NewGeminiService(Config{})

	_, err := svc.Translate(context.Background(), Request{Text: "Hello", TargetLang: "es"})
	if err == nil {
		t.Fatal("expected error when no API key")
	}
	if !errors.Is(err, ErrNoCredential) {
		t.Errorf("expected ErrNoCredential, got %v", err)
	}
}

func TestGeminiService_Translate_StructuredResponse(t *testing.T) {
	payload := `{"translated_text":"Hola","detected_language":"en","pronunciation":"","alternatives":["Buenas"]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing API key header")
		}
		json.NewEncoder(w).Encode(geminiTextResponse(payload))
	}))
	defer server.Close()

	svc := NewGeminiService(Config{APIKey: "test-key", BaseURL: server.URL})

	result, err := svc.Translate(context.Background(), Request{
		Text:       "Hello",
		SourceLang: "auto",
		TargetLang: "es",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.TranslatedText != "Hola" {
		t.Errorf("expected Hola, got %q", result.TranslatedText)
	}
	if result.DetectedLanguage != "en" {
		t.Errorf("expected detected language en, got %q", result.DetectedLanguage)
	}
	if len(result.Alternatives) != 1 || result.Alternatives[0] != "Buenas" {
		t.Errorf("unexpected alternatives: %v", result.Alternatives)
	}
}

func TestGeminiService_Translate_FencedJSON(t *testing.T) {
	payload := "```json\n{\"translated_text\":\"Hallo\"}\n```"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiTextResponse(payload))
	}))
	defer server.Close()

	svc := NewGeminiService(Config{APIKey: "test-key", BaseURL: server.URL})

	result, err := svc.Translate(context.Background(), Request{Text: "Hello", TargetLang: "de"})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.TranslatedText != "Hallo" {
		t.Errorf("expected Hallo, got %q", result.TranslatedText)
	}
}

func TestGeminiService_Translate_MalformedFallsBackToRawText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiTextResponse("Hola"))
	}))
	defer server.Close()

	svc := NewGeminiService(Config{APIKey: "test-key", BaseURL: server.URL})

	result, err := svc.Translate(context.Background(), Request{Text: "Hello", TargetLang: "es"})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.TranslatedText != "Hola" {
		t.Errorf("expected raw text fallback Hola, got %q", result.TranslatedText)
	}
	if result.DetectedLanguage != "" {
		t.Errorf("expected empty detected language, got %q", result.DetectedLanguage)
	}
}

func TestGeminiService_Translate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	svc := NewGeminiService(Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := svc.Translate(context.Background(), Request{Text: "Hello", TargetLang: "es"})
	if err == nil {
		t.Fatal("expected error for non-OK status")
	}
}

func TestGeminiService_Translate_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	svc := NewGeminiService(Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := svc.Translate(context.Background(), Request{Text: "Hello", TargetLang: "es"})
	if err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestGeminiService_Synthesize(t *testing.T) {
	pcm := []byte{0x00, 0x00, 0x00, 0x40}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := geminiResponse{}
		resp.Candidates = []struct {
			Content geminiContent `json:"content"`
		}{
			{Content: geminiContent{Parts: []geminiPart{
				{InlineData: &geminiInlineData{
					MimeType: "audio/L16;codec=pcm;rate=24000",
					Data:     base64.StdEncoding.EncodeToString(pcm),
				}},
			}}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := NewGeminiService(Config{APIKey: "test-key", BaseURL: server.URL})

	got, err := svc.Synthesize(context.Background(), "Hola", "Spanish")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if len(got) != len(pcm) {
		t.Fatalf("expected %d bytes, got %d", len(pcm), len(got))
	}
	for i := range pcm {
		if got[i] != pcm[i] {
			t.Fatalf("byte %d mismatch: %x != %x", i, got[i], pcm[i])
		}
	}
}

func TestGeminiService_Synthesize_NoAudio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiTextResponse("no audio here"))
	}))
	defer server.Close()

	svc := NewGeminiService(Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := svc.Synthesize(context.Background(), "Hola", "Spanish")
	if err == nil {
		t.Fatal("expected error when response carries no audio")
	}
}

func TestGeminiService_Synthesize_NoAPIKey(t *testing.T) {
	svc := NewGeminiService(Config{})

	_, err := svc.Synthesize(context.Background(), "Hola", "Spanish")
	if !errors.Is(err, ErrNoCredential) {
		t.Errorf("expected ErrNoCredential, got %v", err)
	}
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, c := range cases {
		if got := stripFences(c.in); got != c.want {
			t.Errorf("stripFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
