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

var readingTmpl = mustTemplate("reading.html.tmpl")

type readingGenerator struct {
	log      *logger.Logger
	pagesDir string
}

func NewReadingGenerator(log *logger.Logger, pagesDir string) Generator {
	return &readingGenerator{log: log.With("generator", "reading"), pagesDir: pagesDir}
}

func (g *readingGenerator) Mode() set.Mode { return set.ModeRead }
func (g *readingGenerator) Name() string   { return "reading" }

type readingData struct {
	Title     string
	Slug      string
	CacheName string
	Payload   template.JS
}

func (g *readingGenerator) Generate(s *set.Set, manifest *publish.Manifest) (string, error) {
	outDir := filepath.Join(g.pagesDir, g.Name(), s.Slug)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	payload, err := payloadJSON(passageViews(s, manifest))
	if err != nil {
		return "", err
	}
	data := readingData{
		Title:     s.Name,
		Slug:      s.Slug,
		CacheName: "reading-" + s.Slug,
		Payload:   payload,
	}

	indexPath := filepath.Join(outDir, "index.html")
	if err := renderPage(readingTmpl, indexPath, data); err != nil {
		return "", err
	}
	if err := writeServiceWorker(outDir); err != nil {
		return "", err
	}
	g.log.Debug("Generated reading page", "set", s.Slug, "passages", len(s.Passages))
	return indexPath, nil
}
