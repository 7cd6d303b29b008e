package app

import (
	"context"
	"fmt"

	"github.com/andrewdionne/polishpages/internal/platform/logger"
	"github.com/andrewdionne/polishpages/internal/platform/tts"
)

var newNeuralSynthesizer = tts.NewNeuralSynthesizer

type TTSProviderBootstrapErrorCode string

const (
	TTSProviderBootstrapErrorInvalidConfig TTSProviderBootstrapErrorCode = "invalid_config"
	TTSProviderBootstrapErrorConnectFailed TTSProviderBootstrapErrorCode = "connect_failed"
)

type TTSProviderBootstrapError struct {
	Code     TTSProviderBootstrapErrorCode
	Provider string
	Cause    error
}

func (e *TTSProviderBootstrapError) Error() string {
	if e == nil {
		return "tts provider bootstrap failed"
	}
	return fmt.Sprintf(
		"tts provider bootstrap failed (code=%s provider=%q): %v",
		e.Code, e.Provider, e.Cause,
	)
}

func (e *TTSProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ResolveSynthesizer selects the synthesis provider from the
// environment. The basic provider needs no credentials; the neural one
// dials Cloud Text-to-Speech.
func ResolveSynthesizer(ctx context.Context, log *logger.Logger) (tts.Synthesizer, tts.Config, error) {
	cfg, err := tts.ResolveConfigFromEnv()
	if err != nil {
		return nil, cfg, &TTSProviderBootstrapError{
			Code:     TTSProviderBootstrapErrorInvalidConfig,
			Provider: string(cfg.Provider),
			Cause:    err,
		}
	}

	switch cfg.Provider {
	case tts.ProviderModeNeural:
		synth, err := newNeuralSynthesizer(ctx, log, cfg)
		if err != nil {
			return nil, cfg, &TTSProviderBootstrapError{
				Code:     TTSProviderBootstrapErrorConnectFailed,
				Provider: string(cfg.Provider),
				Cause:    err,
			}
		}
		log.Info("TTS provider initialized", "provider", cfg.Provider, "voice", cfg.Voice)
		return synth, cfg, nil
	default:
		log.Info("TTS provider initialized", "provider", tts.ProviderModeBasic)
		return tts.NewBasicSynthesizer(log), cfg, nil
	}
}
