package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/JayaPrakash0264/translator/internal/catalog"
)

const (
	defaultGeminiBaseURL  = "https://generativelanguage.googleapis.com"
	defaultGeminiModel    = "gemini-2.0-flash"
	defaultGeminiTTSModel = "gemini-2.5-flash-preview-tts"
	defaultGeminiVoice    = "Kore"
)

// GeminiService talks to the Generative Language API over plain HTTP.
type GeminiService struct {
	apiKey   string
	model    string
	ttsModel string
	voice    string
	baseURL  string
	client   *http.Client
}

// NewGeminiService builds a Gemini-backed gateway. Empty fields in cfg fall
// back to defaults; only the API key is mandatory, checked per call.
func NewGeminiService(cfg Config) *GeminiService {
	s := &GeminiService{
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		ttsModel: cfg.TTSModel,
		voice:    cfg.Voice,
		baseURL:  cfg.BaseURL,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
	if s.model == "" {
		s.model = defaultGeminiModel
	}
	if s.ttsModel == "" {
		s.ttsModel = defaultGeminiTTSModel
	}
	if s.voice == "" {
		s.voice = defaultGeminiVoice
	}
	if s.baseURL == "" {
		s.baseURL = defaultGeminiBaseURL
	}
	if cfg.Timeout <= 0 {
		s.client.Timeout = 60 * time.Second
	}
	return s
}

func (s *GeminiService) Name() string {
	return "gemini"
}

// generateContent request/response wire types, reduced to the fields used.
type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig *geminiGenConfig `json:"generationConfig,omitempty"`
}

type geminiGenConfig struct {
	Temperature        *float64            `json:"temperature,omitempty"`
	ResponseMIMEType   string              `json:"responseMimeType,omitempty"`
	ResponseModalities []string            `json:"responseModalities,omitempty"`
	SpeechConfig       *geminiSpeechConfig `json:"speechConfig,omitempty"`
}

type geminiSpeechConfig struct {
	VoiceConfig struct {
		PrebuiltVoiceConfig struct {
			VoiceName string `json:"voiceName"`
		} `json:"prebuiltVoiceConfig"`
	} `json:"voiceConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func translationPrompt(req Request) string {
	source := req.SourceLang
	if source == "" || catalog.IsAuto(source) {
		source = "the detected language"
	} else {
		source = catalog.DisplayName(source)
	}
	target := catalog.DisplayName(req.TargetLang)

	return fmt.Sprintf(`Translate the following text from %s to %s.
Respond with a JSON object only, no prose, with these keys:
"translated_text" (string, required), "detected_language" (ISO 639-1 code of the source text),
"pronunciation" (romanization of the translation, if the target script is non-Latin),
"alternatives" (array of up to 3 alternative translations).

Text:
%s`, source, target, req.Text)
}

// Translate asks the model for a structured translation. A response that is
// not the requested JSON object is treated as the translation itself rather
// than an error.
func (s *GeminiService) Translate(ctx context.Context, req Request) (*Result, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrNoCredential)
	}

	temp := 0.3
	body := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: translationPrompt(req)}}},
		},
		GenerationConfig: &geminiGenConfig{
			Temperature:      &temp,
			ResponseMIMEType: "application/json",
		},
	}

	raw, err := s.call(ctx, s.model, body)
	if err != nil {
		return nil, err
	}

	text := firstText(raw)
	if text == "" {
		return nil, fmt.Errorf("gemini: empty response")
	}

	var result Result
	if err := json.Unmarshal([]byte(stripFences(text)), &result); err != nil || result.TranslatedText == "" {
		// Model ignored the JSON instruction; use the raw text verbatim.
		return &Result{TranslatedText: strings.TrimSpace(text)}, nil
	}
	return &result, nil
}

// Synthesize requests spoken audio for text and returns the raw PCM bytes.
// An answer without audio data is an error.
func (s *GeminiService) Synthesize(ctx context.Context, text, languageDisplayName string) ([]byte, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrNoCredential)
	}

	prompt := fmt.Sprintf("Say the following in %s: %s", languageDisplayName, text)
	speech := &geminiSpeechConfig{}
	speech.VoiceConfig.PrebuiltVoiceConfig.VoiceName = s.voice

	body := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &geminiGenConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig:       speech,
		},
	}

	raw, err := s.call(ctx, s.ttsModel, body)
	if err != nil {
		return nil, err
	}

	for _, cand := range raw.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				pcm, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					return nil, fmt.Errorf("gemini: failed to decode audio payload: %w", err)
				}
				return pcm, nil
			}
		}
	}
	return nil, fmt.Errorf("gemini: no audio in response")
}

func (s *GeminiService) call(ctx context.Context, model string, body geminiRequest) (*geminiResponse, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to read response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("gemini: API error (status %d)", resp.StatusCode)
		}
		return nil, fmt.Errorf("gemini: failed to parse response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return nil, fmt.Errorf("gemini: API error (status %d): %s", resp.StatusCode, parsed.Error.Message)
		}
		return nil, fmt.Errorf("gemini: API error (status %d)", resp.StatusCode)
	}
	return &parsed, nil
}

func firstText(resp *geminiResponse) string {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				return part.Text
			}
		}
	}
	return ""
}

// stripFences removes a surrounding markdown code fence, which the model
// sometimes adds despite the JSON response instruction.
func stripFences(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```json")
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}
