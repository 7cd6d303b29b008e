package pages

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrewdionne/polishpages/internal/platform/logger"
	"github.com/andrewdionne/polishpages/internal/publish"
	"github.com/andrewdionne/polishpages/internal/set"
)

var listeningTmpl = mustTemplate("listening.html.tmpl")

// listeningGenerator writes the listen-mode page. It only consumes
// audio references already present on the cards; nothing here
// triggers synthesis.
type listeningGenerator struct {
	log      *logger.Logger
	pagesDir string
}

func NewListeningGenerator(log *logger.Logger, pagesDir string) Generator {
	return &listeningGenerator{log: log.With("generator", "listening"), pagesDir: pagesDir}
}

func (g *listeningGenerator) Mode() set.Mode { return set.ModeListen }
func (g *listeningGenerator) Name() string   { return "listening" }

type listeningData struct {
	Title   string
	Slug    string
	Payload template.JS
}

func listeningViews(s *set.Set, manifest *publish.Manifest) []cardView {
	views := make([]cardView, 0, len(s.Cards))
	for _, c := range s.Cards {
		v := cardView{
			Phrase:        c.Phrase,
			Pronunciation: c.Pronunciation,
			Meaning:       c.Meaning,
		}
		switch {
		case strings.TrimSpace(c.AudioURL) != "":
			v.Audio = strings.TrimSpace(c.AudioURL)
		case strings.TrimSpace(c.AudioFile) != "":
			v.Audio = resolveAssetURL(manifest, s.Slug, "audio", strings.TrimSpace(c.AudioFile))
		case strings.TrimSpace(c.Audio) != "":
			v.Audio = resolveAssetURL(manifest, s.Slug, "audio", strings.TrimSpace(c.Audio))
		}
		views = append(views, v)
	}
	return views
}

func (g *listeningGenerator) Generate(s *set.Set, manifest *publish.Manifest) (string, error) {
	outDir := filepath.Join(g.pagesDir, g.Name(), s.Slug)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	payload, err := payloadJSON(listeningViews(s, manifest))
	if err != nil {
		return "", err
	}
	data := listeningData{
		Title:   s.Name,
		Slug:    s.Slug,
		Payload: payload,
	}

	indexPath := filepath.Join(outDir, "index.html")
	if err := renderPage(listeningTmpl, indexPath, data); err != nil {
		return "", err
	}
	g.log.Debug("Generated listening page", "set", s.Slug, "items", len(s.Cards))
	return indexPath, nil
}
