// Package tts synthesizes speech audio for set content. Two
// interchangeable providers exist: a free "basic" engine and a
// higher-quality "neural" one, selected by configuration.
package tts

import (
	"context"
	"time"
)

// Synthesizer converts one text string to audio bytes. Implementations
// are safe for sequential use from a single regeneration run; callers
// needing concurrency supply their own coordination.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
	Close() error
}

// waitBackoff blocks for the retry delay, returning early with the
// context's error when the caller is cancelled mid-wait.
func waitBackoff(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
