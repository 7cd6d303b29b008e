package app

import (
	"path/filepath"
	"strings"

	"github.com/andrewdionne/polishpages/internal/platform/envutil"
	"github.com/andrewdionne/polishpages/internal/platform/logger"
	"github.com/andrewdionne/polishpages/internal/publish"
)

type Config struct {
	Addr string

	// PagesDir is the generated site root; sets and static assets
	// default to subdirectories of it.
	PagesDir  string
	SetsDir   string
	StaticDir string

	AllowedOrigins     []string
	Publish            publish.Config
	RebuildParallelism int
}

func LoadConfig(log *logger.Logger) Config {
	pagesDir := envutil.String("PAGES_DIR", "docs")
	cfg := Config{
		Addr:               envutil.String("ADDR", ":8080"),
		PagesDir:           pagesDir,
		SetsDir:            envutil.String("SETS_DIR", filepath.Join(pagesDir, "sets")),
		StaticDir:          envutil.String("STATIC_DIR", filepath.Join(pagesDir, "static")),
		Publish:            publish.ResolveConfigFromEnv(),
		RebuildParallelism: envutil.Int("REBUILD_PARALLELISM", 4),
	}
	if raw := envutil.String("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}
	log.Info(
		"Loaded config",
		"addr", cfg.Addr,
		"pages_dir", cfg.PagesDir,
		"sets_dir", cfg.SetsDir,
		"static_dir", cfg.StaticDir,
		"publish_enabled", cfg.Publish.Enabled(),
		"rebuild_parallelism", cfg.RebuildParallelism,
	)
	return cfg
}
