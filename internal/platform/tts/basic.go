package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/andrewdionne/polishpages/internal/platform/logger"
)

const basicEndpoint = "https://translate.google.com/translate_tts"

// basicSynthesizer calls the free Translate speech endpoint. Quality is
// serviceable for vocabulary drills; long passages are truncated by the
// service at around 200 characters per request.
type basicSynthesizer struct {
	log        *logger.Logger
	client     *http.Client
	endpoint   string
	maxRetries int
}

func NewBasicSynthesizer(log *logger.Logger) Synthesizer {
	return &basicSynthesizer{
		log:        log.With("service", "BasicSynthesizer"),
		client:     &http.Client{Timeout: 30 * time.Second},
		endpoint:   basicEndpoint,
		maxRetries: 4,
	}
}

func (s *basicSynthesizer) Close() error { return nil }

func (s *basicSynthesizer) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text")
	}
	if language == "" {
		language = DefaultLanguage
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", language)
	q.Set("q", text)
	reqURL := s.endpoint + "?" + q.Encode()

	backoff := 750 * time.Millisecond
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		body, retryable, err := s.fetch(ctx, reqURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable || attempt == s.maxRetries {
			break
		}

		s.log.Warn("TTS request failed, retrying", "attempt", attempt, "error", err)
		if err := waitBackoff(ctx, backoff); err != nil {
			return nil, err
		}
		backoff *= 2
		if backoff > 10*time.Second {
			backoff = 10 * time.Second
		}
	}
	return nil, lastErr
}

func (s *basicSynthesizer) fetch(ctx context.Context, reqURL string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		data, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, true, fmt.Errorf("read tts response: %w", readErr)
		}
		return data, false, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("tts endpoint status %d", resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("tts endpoint status %d", resp.StatusCode)
	}
}
