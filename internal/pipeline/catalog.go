package pipeline

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/andrewdionne/polishpages/internal/pages"
	"github.com/andrewdionne/polishpages/internal/platform/fsutil"
	"github.com/andrewdionne/polishpages/internal/set"
)

const CatalogFileName = "set_modes.json"

// RebuildCatalog recomputes the slug to modes map from every persisted
// set and refreshes the per-mode landing pages. Always a full scan;
// nothing is updated incrementally.
func (o *Orchestrator) RebuildCatalog() error {
	names, err := o.store.List()
	if err != nil {
		return fmt.Errorf("list sets: %w", err)
	}

	mapping := map[string][]set.Mode{}
	for _, name := range names {
		s, err := o.store.Load(name)
		if err != nil {
			o.log.Warn("Skipping unreadable set in catalog", "set", name, "error", err)
			continue
		}
		mapping[s.Slug] = set.InferModes(s)
	}

	body, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return err
	}
	outPath := filepath.Join(o.pagesDir, CatalogFileName)
	if err := fsutil.WriteFileAtomic(outPath, append(body, '\n'), 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}

	pages.WriteAllModeIndexes(o.log, o.pagesDir)
	if err := pages.WriteNoJekyll(o.pagesDir); err != nil {
		return fmt.Errorf("write .nojekyll: %w", err)
	}
	o.log.Debug("Rebuilt catalog", "sets", len(mapping))
	return nil
}
