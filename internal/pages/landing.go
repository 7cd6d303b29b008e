package pages

import (
	"fmt"
	"path/filepath"

	"github.com/andrewdionne/polishpages/internal/platform/fsutil"
	"github.com/andrewdionne/polishpages/internal/platform/logger"
)

var redirectTmpl = mustTemplate("redirect.html.tmpl")

// ModeDirs are the output directories that get a landing page, and
// whose per-slug subtrees deletion must purge.
var ModeDirs = []string{"flashcards", "practice", "reading", "listening", "test"}

// learnFilters maps each mode directory to the filter the shared learn
// page understands. Legacy links into <mode>/index.html keep working.
var learnFilters = map[string]string{
	"flashcards": "vocab",
	"practice":   "speak",
	"reading":    "read",
	"listening":  "listen",
	"test":       "all",
}

var modeLabels = map[string]string{
	"flashcards": "Vocabulary",
	"practice":   "Speak",
	"reading":    "Read",
	"listening":  "Listen",
	"test":       "Learn",
}

type redirectData struct {
	Title  string
	Label  string
	Filter string
}

// WriteModeIndex writes <pages-root>/<mode>/index.html as a redirect
// into the shared learn page with the mode's filter preselected.
func WriteModeIndex(pagesDir, mode string) (string, error) {
	filter, ok := learnFilters[mode]
	if !ok {
		return "", fmt.Errorf("unknown mode dir: %s", mode)
	}
	data := redirectData{
		Title:  modeLabels[mode],
		Label:  modeLabels[mode],
		Filter: filter,
	}
	outPath := filepath.Join(pagesDir, mode, "index.html")
	if err := renderPage(redirectTmpl, outPath, data); err != nil {
		return "", err
	}
	return outPath, nil
}

// WriteAllModeIndexes refreshes every landing page. A single failed
// mode is logged and skipped.
func WriteAllModeIndexes(log *logger.Logger, pagesDir string) {
	for _, mode := range ModeDirs {
		if _, err := WriteModeIndex(pagesDir, mode); err != nil {
			log.Warn("Skipped mode landing page", "mode", mode, "error", err)
		}
	}
}

// WriteNoJekyll drops the marker that stops GitHub Pages from running
// the output through Jekyll.
func WriteNoJekyll(pagesDir string) error {
	return fsutil.WriteFileAtomic(filepath.Join(pagesDir, ".nojekyll"), []byte{}, 0o644)
}
