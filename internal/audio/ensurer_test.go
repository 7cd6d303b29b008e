package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/andrewdionne/polishpages/internal/platform/logger"
	"github.com/andrewdionne/polishpages/internal/platform/tts"
	"github.com/andrewdionne/polishpages/internal/set"
)

type fakeSynth struct {
	calls  []string
	failOn string
}

func (f *fakeSynth) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	f.calls = append(f.calls, text)
	if f.failOn != "" && text == f.failOn {
		return nil, errors.New("synthesis unavailable")
	}
	return []byte("mp3:" + text), nil
}

func (f *fakeSynth) Close() error { return nil }

func newTestEnsurer(t *testing.T, synth tts.Synthesizer) (*Ensurer, string) {
	t.Helper()
	staticDir := t.TempDir()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return NewEnsurer(log, synth, staticDir, tts.Config{Language: "pl"}), staticDir
}

func TestVocabFileName(t *testing.T) {
	got := VocabFileName(0, "czerwony")
	if got != "0_czerwony.mp3" {
		t.Fatalf("file name: want=%q got=%q", "0_czerwony.mp3", got)
	}
	got = VocabFileName(3, "Cześć!")
	if got != "3_Czesc.mp3" {
		t.Fatalf("file name: want=%q got=%q", "3_Czesc.mp3", got)
	}
}

func TestEnsureVocabAudioWritesFiles(t *testing.T) {
	synth := &fakeSynth{}
	e, staticDir := newTestEnsurer(t, synth)

	cards := []set.Card{
		{Phrase: "czerwony", Meaning: "red"},
		{Phrase: "niebieski", Meaning: "blue"},
	}
	e.EnsureVocabAudio(context.Background(), "Colors", cards)

	for _, name := range []string{"0_czerwony.mp3", "1_niebieski.mp3"} {
		path := filepath.Join(staticDir, "Colors", "audio", name)
		body, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if len(body) == 0 {
			t.Fatalf("file %s is empty", name)
		}
	}
	if len(synth.calls) != 2 {
		t.Fatalf("synth calls: want=2 got=%d", len(synth.calls))
	}
}

func TestEnsureVocabAudioSkipsCurrentFiles(t *testing.T) {
	synth := &fakeSynth{}
	e, _ := newTestEnsurer(t, synth)

	cards := []set.Card{{Phrase: "czerwony"}, {Phrase: "zielony"}}
	e.EnsureVocabAudio(context.Background(), "Colors", cards)
	e.EnsureVocabAudio(context.Background(), "Colors", cards)

	if len(synth.calls) != 2 {
		t.Fatalf("second run should synthesize nothing: calls=%d", len(synth.calls))
	}
}

func TestEnsureReadingAudioResynthesizesChangedText(t *testing.T) {
	synth := &fakeSynth{}
	e, staticDir := newTestEnsurer(t, synth)

	e.EnsureReadingAudio(context.Background(), "Daily", []set.Passage{{Polish: "Rano piję kawę."}})
	// Same file name, different text behind it.
	e.EnsureReadingAudio(context.Background(), "Daily", []set.Passage{{Polish: "Rano piję herbatę."}})

	body, err := os.ReadFile(filepath.Join(staticDir, "Daily", "reading", "0.mp3"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != "mp3:Rano piję herbatę." {
		t.Fatalf("stale audio not replaced: got=%q", body)
	}
	if len(synth.calls) != 2 {
		t.Fatalf("synth calls: want=2 got=%d", len(synth.calls))
	}
}

func TestEnsureVocabAudioAdoptsExistingFiles(t *testing.T) {
	synth := &fakeSynth{}
	e, staticDir := newTestEnsurer(t, synth)

	dir := filepath.Join(staticDir, "Colors", "audio")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "0_czerwony.mp3"), []byte("hand recorded"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	e.EnsureVocabAudio(context.Background(), "Colors", []set.Card{{Phrase: "czerwony"}})
	if len(synth.calls) != 0 {
		t.Fatalf("pre-existing file should be kept: calls=%d", len(synth.calls))
	}
	body, err := os.ReadFile(filepath.Join(dir, "0_czerwony.mp3"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != "hand recorded" {
		t.Fatalf("pre-existing file overwritten: got=%q", body)
	}

	// The adopted hash persists across runs.
	e.EnsureVocabAudio(context.Background(), "Colors", []set.Card{{Phrase: "czerwony"}})
	if len(synth.calls) != 0 {
		t.Fatalf("adopted file resynthesized: calls=%d", len(synth.calls))
	}
}

func TestEnsureVocabAudioContinuesAfterFailure(t *testing.T) {
	synth := &fakeSynth{failOn: "zielony"}
	e, staticDir := newTestEnsurer(t, synth)

	cards := []set.Card{{Phrase: "czerwony"}, {Phrase: "zielony"}, {Phrase: "niebieski"}}
	e.EnsureVocabAudio(context.Background(), "Colors", cards)

	dir := filepath.Join(staticDir, "Colors", "audio")
	if _, err := os.Stat(filepath.Join(dir, "0_czerwony.mp3")); err != nil {
		t.Fatalf("item before failure missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "2_niebieski.mp3")); err != nil {
		t.Fatalf("item after failure missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "1_zielony.mp3")); err == nil {
		t.Fatalf("failed item should not produce a file")
	}
}

func TestEnsureVocabAudioSkipsEmptyPhrases(t *testing.T) {
	synth := &fakeSynth{}
	e, _ := newTestEnsurer(t, synth)

	cards := []set.Card{{Phrase: "  "}, {Phrase: "dom"}}
	e.EnsureVocabAudio(context.Background(), "Houses", cards)
	if len(synth.calls) != 1 || synth.calls[0] != "dom" {
		t.Fatalf("empty phrase not skipped: calls=%v", synth.calls)
	}
}

func TestEnsureReadingAudio(t *testing.T) {
	synth := &fakeSynth{}
	e, staticDir := newTestEnsurer(t, synth)

	passages := []set.Passage{
		{Title: "Rano", Polish: "Rano piję kawę.", English: "In the morning I drink coffee."},
		{Title: "Wieczorem", Polish: "Wieczorem czytam.", English: "In the evening I read."},
	}
	e.EnsureReadingAudio(context.Background(), "Daily", passages)

	for _, name := range []string{"0.mp3", "1.mp3"} {
		if _, err := os.Stat(filepath.Join(staticDir, "Daily", "reading", name)); err != nil {
			t.Fatalf("reading audio %s missing: %v", name, err)
		}
	}
	if synth.calls[0] != "Rano piję kawę." {
		t.Fatalf("passage text: want=%q got=%q", "Rano piję kawę.", synth.calls[0])
	}
}

func TestEnsureSystemCuesWarnsOnly(t *testing.T) {
	synth := &fakeSynth{}
	e, staticDir := newTestEnsurer(t, synth)

	e.EnsureSystemCues()
	if len(synth.calls) != 0 {
		t.Fatalf("system cues must never be synthesized: calls=%v", synth.calls)
	}
	if _, err := os.Stat(filepath.Join(staticDir, "system_audio")); err != nil {
		t.Fatalf("system audio dir not created: %v", err)
	}
}
