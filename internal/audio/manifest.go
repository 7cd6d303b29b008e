package audio

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
)

const manifestName = ".audio_manifest.json"

// textManifest records, per generated audio file, the hash of the text
// it was synthesized from. Staleness is keyed off this hash rather than
// mere file presence, so editing an item's phrase under an unchanged
// filename triggers resynthesis.
type textManifest struct {
	Files map[string]string `json:"files"`

	dirty bool
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func loadManifest(dir string) *textManifest {
	m := &textManifest{Files: map[string]string{}}
	body, err := os.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		return m
	}
	var parsed textManifest
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Files == nil {
		return m
	}
	return &parsed
}

func (m *textManifest) save(dir string) error {
	body, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, manifestName), append(body, '\n'), 0o644)
}

// current reports whether the named file exists and was synthesized from
// text. A pre-existing file with no recorded hash is adopted as current
// and its hash recorded, preserving hand-placed audio.
func (m *textManifest) current(dir, name, text string) bool {
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		return false
	}
	want := hashText(text)
	recorded, ok := m.Files[name]
	if !ok {
		m.Files[name] = want
		m.dirty = true
		return true
	}
	return recorded == want
}

func (m *textManifest) record(name, text string) {
	m.Files[name] = hashText(text)
	m.dirty = true
}
