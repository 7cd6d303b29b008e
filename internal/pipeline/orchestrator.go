// Package pipeline ties the store, audio ensurer, publisher and page
// generators into the regeneration workflow.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/andrewdionne/polishpages/internal/audio"
	"github.com/andrewdionne/polishpages/internal/pages"
	"github.com/andrewdionne/polishpages/internal/platform/logger"
	"github.com/andrewdionne/polishpages/internal/publish"
	"github.com/andrewdionne/polishpages/internal/set"
	"github.com/andrewdionne/polishpages/internal/slug"
)

// Result reports one set's regeneration: the modes that were built and
// any per-step warnings. Warnings never abort the run.
type Result struct {
	Slug     string     `json:"slug"`
	Modes    []set.Mode `json:"modes"`
	Warnings []string   `json:"warnings,omitempty"`
}

func (r *Result) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

type Orchestrator struct {
	log       *logger.Logger
	store     *set.Store
	ensurer   *audio.Ensurer
	publisher publish.Publisher
	pagesDir  string
	staticDir string
	parallel  int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewOrchestrator(
	log *logger.Logger,
	store *set.Store,
	ensurer *audio.Ensurer,
	publisher publish.Publisher,
	pagesDir, staticDir string,
	parallel int,
) *Orchestrator {
	if parallel < 1 {
		parallel = 1
	}
	return &Orchestrator{
		log:       log.With("service", "Orchestrator"),
		store:     store,
		ensurer:   ensurer,
		publisher: publisher,
		pagesDir:  pagesDir,
		staticDir: staticDir,
		parallel:  parallel,
		locks:     map[string]*sync.Mutex{},
	}
}

// lockSlug serializes builds of the same slug. Different slugs touch
// disjoint subtrees and proceed concurrently.
func (o *Orchestrator) lockSlug(slugName string) func() {
	o.mu.Lock()
	l, ok := o.locks[slugName]
	if !ok {
		l = &sync.Mutex{}
		o.locks[slugName] = l
	}
	o.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// Regenerate rebuilds everything derived from one set: audio, published
// assets, pages and the catalog. A missing or unreadable document is
// the only fatal error; every later step degrades to a warning.
func (o *Orchestrator) Regenerate(ctx context.Context, name string) (*Result, error) {
	return o.regenerate(ctx, name, true)
}

func (o *Orchestrator) regenerate(ctx context.Context, name string, withCatalog bool) (*Result, error) {
	slugName := slug.Sanitize(name)
	unlock := o.lockSlug(slugName)
	defer unlock()

	s, err := o.store.Load(name)
	if err != nil {
		return nil, err
	}

	res := &Result{Slug: s.Slug, Modes: set.InferModes(s)}

	if set.HasMode(res.Modes, set.ModeLearn) || set.HasMode(res.Modes, set.ModeSpeak) {
		o.ensurer.EnsureVocabAudio(ctx, s.Slug, s.Cards)
	}
	if set.HasMode(res.Modes, set.ModeRead) {
		o.ensurer.EnsureReadingAudio(ctx, s.Slug, s.Passages)
	}
	o.ensurer.EnsureSystemCues()

	manifest, err := o.publisher.PublishSet(ctx, s.Slug)
	if err != nil {
		res.Warn("publish_failed: %v", err)
	}
	if manifest == nil {
		// Reuse an earlier manifest so pages keep their CDN links.
		prev, err := publish.LoadManifest(o.staticDir, s.Slug)
		if err != nil {
			res.Warn("manifest_read_failed: %v", err)
		}
		manifest = prev
	}

	for _, g := range pages.ForModes(o.log, o.pagesDir, res.Modes) {
		out, err := g.Generate(s, manifest)
		if err != nil {
			res.Warn("generate_failed:%s: %v", g.Name(), err)
			continue
		}
		o.log.Info("Regenerated page", "set", s.Slug, "mode", g.Name(), "path", out)
	}

	if withCatalog {
		if err := o.RebuildCatalog(); err != nil {
			res.Warn("catalog_rebuild_failed: %v", err)
		}
	}
	return res, nil
}

// DeleteSet removes the document and every derived artifact for the
// slug: the static subtree and all mode directories, current modes or
// not. Absent pieces are no-ops. Reports whether the document existed.
func (o *Orchestrator) DeleteSet(ctx context.Context, name string) (bool, error) {
	slugName := slug.Sanitize(name)
	unlock := o.lockSlug(slugName)
	defer unlock()

	existed, err := o.store.Delete(name)
	if err != nil {
		return existed, err
	}

	if err := os.RemoveAll(filepath.Join(o.staticDir, slugName)); err != nil {
		return existed, fmt.Errorf("remove static subtree: %w", err)
	}
	for _, dir := range pages.ModeDirs {
		if err := os.RemoveAll(filepath.Join(o.pagesDir, dir, slugName)); err != nil {
			return existed, fmt.Errorf("remove %s pages: %w", dir, err)
		}
	}

	if err := o.RebuildCatalog(); err != nil {
		o.log.Warn("Catalog rebuild after delete failed", "set", slugName, "error", err)
	}
	o.log.Info("Deleted set", "set", slugName, "existed", existed)
	return existed, nil
}
