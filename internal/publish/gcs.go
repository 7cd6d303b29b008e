package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/andrewdionne/polishpages/internal/platform/gcp"
	"github.com/andrewdionne/polishpages/internal/platform/logger"
)

const audioCacheControl = "public,max-age=31536000,immutable"

// gcsPublisher mirrors a set's local audio into a GCS bucket under
// "audio/<slug>/" and "reading/<slug>/" keys.
type gcsPublisher struct {
	log       *logger.Logger
	client    *storage.Client
	cfg       Config
	staticDir string
}

func NewGCSPublisher(ctx context.Context, log *logger.Logger, cfg Config, staticDir string) (Publisher, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("missing publish bucket name")
	}
	opts := gcp.ClientOptionsFromEnv()
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	serviceLog := log.With("service", "GCSPublisher")
	serviceLog.Info("Asset publishing initialized", "bucket", cfg.Bucket, "cdn_domain", cfg.CDNDomain)
	return &gcsPublisher{
		log:       serviceLog,
		client:    client,
		cfg:       cfg,
		staticDir: staticDir,
	}, nil
}

// PublishSet uploads every local mp3 for the set and writes the asset
// manifest. Individual upload failures are logged and the object is
// left out of the manifest; only a manifest write failure is fatal.
func (p *gcsPublisher) PublishSet(ctx context.Context, slugName string) (*Manifest, error) {
	manifest := &Manifest{
		Set:        slugName,
		AssetsBase: p.cfg.AssetsBase(),
		Files:      map[string]string{},
	}

	for _, kind := range []string{"audio", "reading"} {
		dir := filepath.Join(p.staticDir, slugName, kind)
		names, err := localAudioFiles(dir)
		if err != nil {
			p.log.Warn("List local audio failed", "dir", dir, "error", err)
			continue
		}
		for _, name := range names {
			key := fmt.Sprintf("%s/%s/%s", kind, slugName, name)
			if err := p.uploadFile(ctx, filepath.Join(dir, name), key); err != nil {
				p.log.Warn("Upload failed, object left unpublished", "key", key, "error", err)
				continue
			}
			manifest.Files[key] = p.cfg.PublicURL(key)
		}
	}

	if err := WriteManifest(p.staticDir, slugName, manifest); err != nil {
		return nil, fmt.Errorf("write cdn manifest: %w", err)
	}
	p.log.Info("Published set assets", "set", slugName, "uploaded", len(manifest.Files))
	return manifest, nil
}

func (p *gcsPublisher) uploadFile(ctx context.Context, path, key string) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := p.client.Bucket(p.cfg.Bucket).Object(key).NewWriter(ctx)
	w.ContentType = "audio/mpeg"
	w.CacheControl = audioCacheControl
	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

// localAudioFiles lists the mp3 names in dir, sorted. A missing dir is
// an empty listing.
func localAudioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".mp3") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
