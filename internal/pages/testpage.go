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

var testTmpl = mustTemplate("test.html.tmpl")

// testGenerator writes the self-quiz page that rides along with any
// vocabulary set.
type testGenerator struct {
	log      *logger.Logger
	pagesDir string
}

func NewTestGenerator(log *logger.Logger, pagesDir string) Generator {
	return &testGenerator{log: log.With("generator", "test"), pagesDir: pagesDir}
}

func (g *testGenerator) Mode() set.Mode { return set.ModeLearn }
func (g *testGenerator) Name() string   { return "test" }

type testData struct {
	Title   string
	Slug    string
	Payload template.JS
}

func (g *testGenerator) Generate(s *set.Set, manifest *publish.Manifest) (string, error) {
	outDir := filepath.Join(g.pagesDir, g.Name(), s.Slug)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	payload, err := payloadJSON(cardViews(s, manifest))
	if err != nil {
		return "", err
	}
	data := testData{
		Title:   s.Name,
		Slug:    s.Slug,
		Payload: payload,
	}

	indexPath := filepath.Join(outDir, "index.html")
	if err := renderPage(testTmpl, indexPath, data); err != nil {
		return "", err
	}
	g.log.Debug("Generated test page", "set", s.Slug, "cards", len(s.Cards))
	return indexPath, nil
}
