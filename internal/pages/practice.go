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

var practiceTmpl = mustTemplate("practice.html.tmpl")

// practiceGenerator writes the speak-mode page with its offline
// service worker companion.
type practiceGenerator struct {
	log      *logger.Logger
	pagesDir string
}

func NewPracticeGenerator(log *logger.Logger, pagesDir string) Generator {
	return &practiceGenerator{log: log.With("generator", "practice"), pagesDir: pagesDir}
}

func (g *practiceGenerator) Mode() set.Mode { return set.ModeSpeak }
func (g *practiceGenerator) Name() string   { return "practice" }

type practiceData struct {
	Title     string
	Slug      string
	CacheName string
	Payload   template.JS
}

func (g *practiceGenerator) Generate(s *set.Set, manifest *publish.Manifest) (string, error) {
	outDir := filepath.Join(g.pagesDir, g.Name(), s.Slug)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	payload, err := payloadJSON(cardViews(s, manifest))
	if err != nil {
		return "", err
	}
	data := practiceData{
		Title:     s.Name,
		Slug:      s.Slug,
		CacheName: "practice-" + s.Slug,
		Payload:   payload,
	}

	indexPath := filepath.Join(outDir, "index.html")
	if err := renderPage(practiceTmpl, indexPath, data); err != nil {
		return "", err
	}
	if err := writeServiceWorker(outDir); err != nil {
		return "", err
	}
	g.log.Debug("Generated practice page", "set", s.Slug, "cards", len(s.Cards))
	return indexPath, nil
}
