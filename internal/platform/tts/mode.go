package tts

import (
	"fmt"
	"os"
	"strings"
)

type ProviderMode string

const (
	ProviderModeBasic  ProviderMode = "basic"
	ProviderModeNeural ProviderMode = "neural"
)

const (
	DefaultVoice    = ""
	DefaultFormat   = "mp3"
	DefaultLanguage = "pl"
)

// Config selects the synthesis provider and its voice parameters. It is
// resolved once at construction and passed in explicitly; providers never
// read the process environment at call time.
type Config struct {
	Provider ProviderMode
	Voice    string
	Format   string
	Language string
}

func IsSupportedProviderMode(mode ProviderMode) bool {
	switch mode {
	case ProviderModeBasic, ProviderModeNeural:
		return true
	default:
		return false
	}
}

type ConfigErrorCode string

const (
	ConfigErrorInvalidProvider ConfigErrorCode = "invalid_provider"
	ConfigErrorInvalidFormat   ConfigErrorCode = "invalid_format"
)

type ConfigError struct {
	Code     ConfigErrorCode
	Provider string
	Format   string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "invalid tts config"
	}
	switch e.Code {
	case ConfigErrorInvalidProvider:
		return fmt.Sprintf(
			"invalid TTS_PROVIDER=%q (allowed: %q, %q)",
			e.Provider, ProviderModeBasic, ProviderModeNeural,
		)
	case ConfigErrorInvalidFormat:
		return fmt.Sprintf("invalid TTS_FORMAT=%q (allowed: %q)", e.Format, DefaultFormat)
	default:
		return "invalid tts config"
	}
}

// ResolveConfigFromEnv reads TTS_PROVIDER, TTS_VOICE, TTS_FORMAT and
// TTS_LANGUAGE. Absent values fall back to the basic provider speaking
// Polish mp3, matching the published site's content.
func ResolveConfigFromEnv() (Config, error) {
	cfg := Config{
		Voice:    strings.TrimSpace(os.Getenv("TTS_VOICE")),
		Format:   strings.ToLower(strings.TrimSpace(os.Getenv("TTS_FORMAT"))),
		Language: strings.TrimSpace(os.Getenv("TTS_LANGUAGE")),
	}

	rawProvider := strings.TrimSpace(os.Getenv("TTS_PROVIDER"))
	mode := ProviderMode(strings.ToLower(rawProvider))
	switch mode {
	case "":
		cfg.Provider = ProviderModeBasic
	case ProviderModeBasic, ProviderModeNeural:
		cfg.Provider = mode
	default:
		return cfg, &ConfigError{Code: ConfigErrorInvalidProvider, Provider: rawProvider}
	}

	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}

	if err := ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func ValidateConfig(cfg Config) error {
	if !IsSupportedProviderMode(cfg.Provider) {
		return &ConfigError{Code: ConfigErrorInvalidProvider, Provider: string(cfg.Provider)}
	}
	if cfg.Format != DefaultFormat {
		return &ConfigError{Code: ConfigErrorInvalidFormat, Format: cfg.Format}
	}
	return nil
}
