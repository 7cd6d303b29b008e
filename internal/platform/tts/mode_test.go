package tts

import (
	"errors"
	"testing"
)

func TestResolveConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("TTS_PROVIDER", "")
	t.Setenv("TTS_VOICE", "")
	t.Setenv("TTS_FORMAT", "")
	t.Setenv("TTS_LANGUAGE", "")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.Provider != ProviderModeBasic {
		t.Fatalf("provider: want=%q got=%q", ProviderModeBasic, cfg.Provider)
	}
	if cfg.Format != "mp3" {
		t.Fatalf("format: want=%q got=%q", "mp3", cfg.Format)
	}
	if cfg.Language != "pl" {
		t.Fatalf("language: want=%q got=%q", "pl", cfg.Language)
	}
}

func TestResolveConfigFromEnvExplicitNeural(t *testing.T) {
	t.Setenv("TTS_PROVIDER", "neural")
	t.Setenv("TTS_VOICE", "pl-PL-Wavenet-A")
	t.Setenv("TTS_FORMAT", "mp3")
	t.Setenv("TTS_LANGUAGE", "pl")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.Provider != ProviderModeNeural {
		t.Fatalf("provider: want=%q got=%q", ProviderModeNeural, cfg.Provider)
	}
	if cfg.Voice != "pl-PL-Wavenet-A" {
		t.Fatalf("voice: want=%q got=%q", "pl-PL-Wavenet-A", cfg.Voice)
	}
}

func TestResolveConfigFromEnvInvalidProvider(t *testing.T) {
	t.Setenv("TTS_PROVIDER", "espeak")

	_, err := ResolveConfigFromEnv()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("ResolveConfigFromEnv: want ConfigError got %v", err)
	}
	if cfgErr.Code != ConfigErrorInvalidProvider {
		t.Fatalf("code: want=%q got=%q", ConfigErrorInvalidProvider, cfgErr.Code)
	}
}

func TestResolveConfigFromEnvInvalidFormat(t *testing.T) {
	t.Setenv("TTS_PROVIDER", "basic")
	t.Setenv("TTS_FORMAT", "ogg")

	_, err := ResolveConfigFromEnv()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("ResolveConfigFromEnv: want ConfigError got %v", err)
	}
	if cfgErr.Code != ConfigErrorInvalidFormat {
		t.Fatalf("code: want=%q got=%q", ConfigErrorInvalidFormat, cfgErr.Code)
	}
}

func TestLanguageCodeFor(t *testing.T) {
	cases := []struct{ in, want string }{
		{"pl", "pl-PL"},
		{"", "pl-PL"},
		{"en", "en-US"},
		{"de-DE", "de-DE"},
	}
	for _, tc := range cases {
		if got := languageCodeFor(tc.in); got != tc.want {
			t.Fatalf("languageCodeFor(%q): want=%q got=%q", tc.in, tc.want, got)
		}
	}
}
