// Package audio fills the per-set audio cache: one synthesized file per
// item, content-addressed by index and text hash. Filling is best
// effort: single synthesis failures are logged and skipped, never
// failing the batch.
package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrewdionne/polishpages/internal/platform/logger"
	"github.com/andrewdionne/polishpages/internal/platform/tts"
	"github.com/andrewdionne/polishpages/internal/set"
)

// SystemCueNames are the shared UI cue recordings generators reference.
// They are hand-recorded, never synthesized; absence is only warned
// about.
var SystemCueNames = []string{"repeat_after_me", "good", "try_again"}

type Ensurer struct {
	log       *logger.Logger
	synth     tts.Synthesizer
	staticDir string
	language  string
}

func NewEnsurer(log *logger.Logger, synth tts.Synthesizer, staticDir string, cfg tts.Config) *Ensurer {
	return &Ensurer{
		log:       log.With("service", "AudioEnsurer"),
		synth:     synth,
		staticDir: staticDir,
		language:  cfg.Language,
	}
}

// VocabDir is the audio directory for one set's vocabulary files.
func (e *Ensurer) VocabDir(slugName string) string {
	return filepath.Join(e.staticDir, slugName, "audio")
}

// ReadingDir is the audio directory for one set's passage files.
func (e *Ensurer) ReadingDir(slugName string) string {
	return filepath.Join(e.staticDir, slugName, "reading")
}

// EnsureVocabAudio synthesizes any missing or stale vocabulary audio for
// the set. Every index gets its own file, even when two items share the
// same phrase text.
func (e *Ensurer) EnsureVocabAudio(ctx context.Context, slugName string, cards []set.Card) {
	dir := e.VocabDir(slugName)
	e.ensure(ctx, dir, len(cards), func(i int) (name, text string) {
		phrase := strings.TrimSpace(cards[i].Phrase)
		if phrase == "" {
			return "", ""
		}
		return VocabFileName(i, phrase), phrase
	})
}

// EnsureReadingAudio synthesizes any missing or stale passage audio.
func (e *Ensurer) EnsureReadingAudio(ctx context.Context, slugName string, passages []set.Passage) {
	dir := e.ReadingDir(slugName)
	e.ensure(ctx, dir, len(passages), func(i int) (name, text string) {
		polish := strings.TrimSpace(passages[i].Polish)
		if polish == "" {
			return "", ""
		}
		return ReadingFileName(i), polish
	})
}

func (e *Ensurer) ensure(ctx context.Context, dir string, n int, itemAt func(int) (string, string)) {
	if n == 0 {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		e.log.Error("Create audio dir failed", "dir", dir, "error", err)
		return
	}

	manifest := loadManifest(dir)
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			e.log.Warn("Audio ensure interrupted", "dir", dir, "error", ctx.Err())
			break
		}
		name, text := itemAt(i)
		if name == "" || text == "" {
			continue
		}
		if manifest.current(dir, name, text) {
			continue
		}

		data, err := e.synth.Synthesize(ctx, text, e.language)
		if err != nil {
			e.log.Warn("TTS synthesis failed, skipping item", "file", name, "error", err)
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			e.log.Warn("Write audio file failed, skipping item", "file", name, "error", err)
			continue
		}
		manifest.record(name, text)
		e.log.Debug("Synthesized audio", "file", name)
	}

	if manifest.dirty {
		if err := manifest.save(dir); err != nil {
			e.log.Warn("Write audio manifest failed", "dir", dir, "error", err)
		}
	}
}

// EnsureSystemCues checks the shared cue directory exists and warns
// about any missing cue recordings.
func (e *Ensurer) EnsureSystemCues() {
	dir := filepath.Join(e.staticDir, "system_audio")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		e.log.Error("Create system audio dir failed", "dir", dir, "error", err)
		return
	}
	var missing []string
	for _, name := range SystemCueNames {
		if _, err := os.Stat(filepath.Join(dir, name+".mp3")); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		e.log.Info("System audio missing (won't auto-generate)", "files", fmt.Sprint(missing))
	}
}
