// Package pages renders the static practice pages for a set, one
// generator per mode. Pages are self-contained: items are embedded as
// inline JSON so the published site needs no API to browse.
package pages

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/andrewdionne/polishpages/internal/audio"
	"github.com/andrewdionne/polishpages/internal/platform/fsutil"
	"github.com/andrewdionne/polishpages/internal/platform/logger"
	"github.com/andrewdionne/polishpages/internal/publish"
	"github.com/andrewdionne/polishpages/internal/set"
)

//go:embed templates
var templateFS embed.FS

// Generator renders the pages for one practice mode. Generate returns
// the path of the primary page it wrote. Same set in, same bytes out;
// nothing embeds a timestamp.
type Generator interface {
	Mode() set.Mode
	Name() string
	Generate(s *set.Set, manifest *publish.Manifest) (string, error)
}

// ForModes returns the generators for the inferred modes, in canonical
// order. Vocabulary sets additionally get the self-quiz page.
func ForModes(log *logger.Logger, pagesDir string, modes []set.Mode) []Generator {
	gens := []Generator{}
	for _, m := range modes {
		switch m {
		case set.ModeLearn:
			gens = append(gens, NewFlashcardsGenerator(log, pagesDir))
		case set.ModeSpeak:
			gens = append(gens, NewPracticeGenerator(log, pagesDir))
		case set.ModeRead:
			gens = append(gens, NewReadingGenerator(log, pagesDir))
		case set.ModeListen:
			gens = append(gens, NewListeningGenerator(log, pagesDir))
		}
	}
	if set.HasMode(modes, set.ModeLearn) || set.HasMode(modes, set.ModeSpeak) {
		gens = append(gens, NewTestGenerator(log, pagesDir))
	}
	return gens
}

func mustTemplate(name string) *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/"+name))
}

// cardView is what the vocabulary templates see: the stored card plus
// its resolved audio URL. The stored document is never mutated.
type cardView struct {
	Phrase        string `json:"phrase"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Meaning       string `json:"meaning"`
	Audio         string `json:"audio,omitempty"`
}

type passageView struct {
	Title   string `json:"title,omitempty"`
	Polish  string `json:"polish"`
	English string `json:"english,omitempty"`
	Audio   string `json:"audio,omitempty"`
}

// resolveAssetURL prefers the published CDN URL for an asset key and
// falls back to the path relative to a page two levels below the root.
func resolveAssetURL(manifest *publish.Manifest, slugName, kind, file string) string {
	key := fmt.Sprintf("%s/%s/%s", kind, slugName, file)
	if url := manifest.URLFor(key); url != "" {
		return url
	}
	return fmt.Sprintf("../../static/%s/%s/%s", slugName, kind, file)
}

func cardViews(s *set.Set, manifest *publish.Manifest) []cardView {
	views := make([]cardView, 0, len(s.Cards))
	for i, c := range s.Cards {
		v := cardView{
			Phrase:        c.Phrase,
			Pronunciation: c.Pronunciation,
			Meaning:       c.Meaning,
		}
		if c.Phrase != "" {
			v.Audio = resolveAssetURL(manifest, s.Slug, "audio", audio.VocabFileName(i, c.Phrase))
		}
		views = append(views, v)
	}
	return views
}

func passageViews(s *set.Set, manifest *publish.Manifest) []passageView {
	views := make([]passageView, 0, len(s.Passages))
	for i, p := range s.Passages {
		views = append(views, passageView{
			Title:   p.Title,
			Polish:  p.Polish,
			English: p.English,
			Audio:   resolveAssetURL(manifest, s.Slug, "reading", audio.ReadingFileName(i)),
		})
	}
	return views
}

// payloadJSON renders views as an inline script payload. json.Marshal
// escapes <, > and & so the payload is safe inside a script element.
func payloadJSON(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

func renderPage(tmpl *template.Template, outPath string, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(outPath), err)
	}
	if err := fsutil.WriteFileAtomic(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

func writeServiceWorker(dir string) error {
	body, err := templateFS.ReadFile("templates/sw.js")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(filepath.Join(dir, "sw.js"), body, 0o644)
}
