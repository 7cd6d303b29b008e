package tts

import (
	"context"
	"fmt"
	"strings"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/andrewdionne/polishpages/internal/platform/gcp"
	"github.com/andrewdionne/polishpages/internal/platform/logger"
)

// neuralSynthesizer uses the Cloud Text-to-Speech neural voices.
type neuralSynthesizer struct {
	log        *logger.Logger
	client     *texttospeech.Client
	voice      string
	maxRetries int
}

func NewNeuralSynthesizer(ctx context.Context, log *logger.Logger, cfg Config) (Synthesizer, error) {
	client, err := texttospeech.NewClient(ctx, gcp.ClientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("texttospeech client: %w", err)
	}
	return &neuralSynthesizer{
		log:        log.With("service", "NeuralSynthesizer"),
		client:     client,
		voice:      cfg.Voice,
		maxRetries: 4,
	}, nil
}

func (s *neuralSynthesizer) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *neuralSynthesizer) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text")
	}
	languageCode := languageCodeFor(language)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCode,
			Name:         s.voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	backoff := 750 * time.Millisecond
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		resp, err := s.client.SynthesizeSpeech(ctx, req)
		if err == nil {
			return resp.AudioContent, nil
		}
		lastErr = err

		code := status.Code(err)
		if code != codes.Unavailable && code != codes.ResourceExhausted && code != codes.DeadlineExceeded {
			return nil, fmt.Errorf("synthesize speech: %w", err)
		}
		if attempt == s.maxRetries {
			break
		}
		if err := waitBackoff(ctx, backoff); err != nil {
			return nil, err
		}
		backoff *= 2
		if backoff > 10*time.Second {
			backoff = 10 * time.Second
		}
	}
	return nil, fmt.Errorf("synthesize speech: %w", lastErr)
}

// languageCodeFor widens a bare language tag to the BCP-47 code the
// neural API expects.
func languageCodeFor(language string) string {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "", "pl", "pl-pl":
		return "pl-PL"
	case "en", "en-us":
		return "en-US"
	default:
		return language
	}
}
