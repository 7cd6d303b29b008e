package publish

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andrewdionne/polishpages/internal/platform/fsutil"
)

const ManifestFileName = "cdn_manifest.json"

// Manifest maps uploaded asset keys ("audio/<slug>/<file>",
// "reading/<slug>/<file>") to their public URLs. Generators consult it
// to decide between CDN and relative static references.
type Manifest struct {
	Set        string            `json:"set"`
	AssetsBase string            `json:"assetsBase"`
	Files      map[string]string `json:"files"`
}

// URLFor returns the public URL recorded for key, or "" when the key
// was never published.
func (m *Manifest) URLFor(key string) string {
	if m == nil || m.Files == nil {
		return ""
	}
	return m.Files[strings.TrimLeft(key, "/")]
}

// Keys returns the published asset keys in sorted order.
func (m *Manifest) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.Files))
	for k := range m.Files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func manifestPath(staticDir, slugName string) string {
	return filepath.Join(staticDir, slugName, ManifestFileName)
}

// WriteManifest persists the manifest next to the set's static assets.
func WriteManifest(staticDir, slugName string, m *Manifest) error {
	body, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(manifestPath(staticDir, slugName), append(body, '\n'), 0o644)
}

// LoadManifest reads a previously written manifest. A missing or
// unparsable file yields (nil, nil): pages fall back to local paths.
func LoadManifest(staticDir, slugName string) (*Manifest, error) {
	body, err := os.ReadFile(manifestPath(staticDir, slugName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, nil
	}
	return &m, nil
}
