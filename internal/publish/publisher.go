// Package publish uploads derived audio to object storage so the
// generated pages can reference a CDN instead of repo-relative files.
// Publishing is optional; when disabled, pages keep their local paths.
package publish

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/andrewdionne/polishpages/internal/platform/logger"
)

type Publisher interface {
	// PublishSet uploads the set's local audio and returns the asset
	// manifest it wrote. A nil manifest means nothing was published.
	PublishSet(ctx context.Context, slugName string) (*Manifest, error)
}

type Config struct {
	Bucket    string
	CDNDomain string
}

// ResolveConfigFromEnv reads publisher settings. An empty bucket name
// means publishing is disabled.
func ResolveConfigFromEnv() Config {
	return Config{
		Bucket:    strings.TrimSpace(os.Getenv("ASSETS_GCS_BUCKET_NAME")),
		CDNDomain: strings.TrimSpace(os.Getenv("ASSETS_CDN_DOMAIN")),
	}
}

func (c Config) Enabled() bool { return c.Bucket != "" }

// PublicURL is where a published object key is served from.
func (c Config) PublicURL(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if c.CDNDomain != "" {
		return fmt.Sprintf("https://%s/%s", strings.TrimSuffix(c.CDNDomain, "/"), key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.Bucket, key)
}

// AssetsBase is the base URL recorded in manifests, without a trailing
// slash.
func (c Config) AssetsBase() string {
	if c.CDNDomain != "" {
		return "https://" + strings.TrimSuffix(c.CDNDomain, "/")
	}
	return "https://storage.googleapis.com/" + c.Bucket
}

type disabledPublisher struct{}

// NewDisabledPublisher returns a publisher that uploads nothing and
// reports no manifest.
func NewDisabledPublisher() Publisher { return disabledPublisher{} }

func (disabledPublisher) PublishSet(ctx context.Context, slugName string) (*Manifest, error) {
	return nil, nil
}

// NewPublisher selects a publisher for the config.
func NewPublisher(ctx context.Context, log *logger.Logger, cfg Config, staticDir string) (Publisher, error) {
	if !cfg.Enabled() {
		log.Info("Asset publishing disabled (no bucket configured)")
		return NewDisabledPublisher(), nil
	}
	return NewGCSPublisher(ctx, log, cfg, staticDir)
}
