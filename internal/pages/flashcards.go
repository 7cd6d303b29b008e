package pages

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/andrewdionne/polishpages/internal/platform/logger"
	"github.com/andrewdionne/polishpages/internal/publish"
	"github.com/andrewdionne/polishpages/internal/set"
)

var (
	flashcardsTmpl = mustTemplate("flashcards.html.tmpl")
	summaryTmpl    = mustTemplate("summary.html.tmpl")
)

// flashcardsGenerator writes the learn-mode card deck plus a printable
// summary table.
type flashcardsGenerator struct {
	log      *logger.Logger
	pagesDir string
}

func NewFlashcardsGenerator(log *logger.Logger, pagesDir string) Generator {
	return &flashcardsGenerator{log: log.With("generator", "flashcards"), pagesDir: pagesDir}
}

func (g *flashcardsGenerator) Mode() set.Mode { return set.ModeLearn }
func (g *flashcardsGenerator) Name() string   { return "flashcards" }

type flashcardsData struct {
	Title   string
	Slug    string
	Count   int
	Payload template.JS
}

func (g *flashcardsGenerator) Generate(s *set.Set, manifest *publish.Manifest) (string, error) {
	outDir := filepath.Join(g.pagesDir, g.Name(), s.Slug)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	payload, err := payloadJSON(cardViews(s, manifest))
	if err != nil {
		return "", err
	}
	data := flashcardsData{
		Title:   s.Name,
		Slug:    s.Slug,
		Count:   len(s.Cards),
		Payload: payload,
	}

	indexPath := filepath.Join(outDir, "index.html")
	if err := renderPage(flashcardsTmpl, indexPath, data); err != nil {
		return "", err
	}
	if err := renderPage(summaryTmpl, filepath.Join(outDir, "summary.html"), data); err != nil {
		return "", err
	}
	g.log.Debug("Generated flashcards page", "set", s.Slug, "cards", len(s.Cards))
	return indexPath, nil
}
