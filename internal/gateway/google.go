package gateway

import (
	"context"
	"fmt"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"

	"github.com/JayaPrakash0264/translator/internal/catalog"
)

// GoogleService uses the Cloud Translation API. It has no speech support;
// Synthesize always fails.
type GoogleService struct {
	credentials string
}

// NewGoogleService builds a Cloud Translation gateway. credentials is an
// optional path to a service-account file; when empty, ambient application
// default credentials are used.
func NewGoogleService(credentials string) *GoogleService {
	return &GoogleService{credentials: credentials}
}

func (s *GoogleService) Name() string {
	return "google"
}

func (s *GoogleService) Translate(ctx context.Context, req Request) (*Result, error) {
	targetTag, err := language.Parse(req.TargetLang)
	if err != nil {
		return nil, fmt.Errorf("google: invalid target language: %w", err)
	}

	opts := []option.ClientOption{}
	if s.credentials != "" {
		opts = append(opts, option.WithCredentialsFile(s.credentials))
	}

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google: failed to create client: %w", err)
	}
	defer client.Close()

	var translations []translate.Translation
	if req.SourceLang == "" || catalog.IsAuto(req.SourceLang) {
		translations, err = client.Translate(ctx, []string{req.Text}, targetTag, nil)
	} else {
		sourceTag, _ := language.Parse(req.SourceLang)
		translations, err = client.Translate(ctx, []string{req.Text}, targetTag, &translate.Options{
			Source: sourceTag,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("google: translation failed: %w", err)
	}
	if len(translations) == 0 {
		return nil, fmt.Errorf("google: no translation returned")
	}

	result := &Result{TranslatedText: translations[0].Text}
	if !translations[0].Source.IsRoot() {
		result.DetectedLanguage = translations[0].Source.String()
	}
	return result, nil
}

func (s *GoogleService) Synthesize(ctx context.Context, text, languageDisplayName string) ([]byte, error) {
	return nil, fmt.Errorf("google: speech synthesis not supported")
}
