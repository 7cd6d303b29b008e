package set

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andrewdionne/polishpages/internal/platform/logger"
	"github.com/andrewdionne/polishpages/internal/slug"
)

// ErrSetNotFound reports that a slug has no backing document.
var ErrSetNotFound = errors.New("set not found")

// SlugCollisionError reports that two distinct display names sanitize to
// the same slug. Creation is rejected rather than silently overwriting.
type SlugCollisionError struct {
	Slug         string
	ExistingName string
	NewName      string
}

func (e *SlugCollisionError) Error() string {
	return fmt.Sprintf(
		"slug %q already taken by set named %q (new name %q)",
		e.Slug, e.ExistingName, e.NewName,
	)
}

// Metadata is the listing row for one set.
type Metadata struct {
	Name      string `json:"name"`
	Count     int    `json:"count"`
	Type      string `json:"type"`
	CreatedBy string `json:"created_by"`
}

// Store reads and writes set documents under a single sets root, one
// <slug>.json file per set.
type Store struct {
	log  *logger.Logger
	root string
}

func NewStore(log *logger.Logger, root string) *Store {
	return &Store{log: log.With("service", "SetStore"), root: root}
}

func (st *Store) path(slugName string) string {
	return filepath.Join(st.root, slugName+".json")
}

// Exists reports whether a document exists for the sanitized name.
func (st *Store) Exists(name string) bool {
	s := slug.Sanitize(name)
	if s == "" {
		return false
	}
	_, err := os.Stat(st.path(s))
	return err == nil
}

// Load reads and decodes one set document. A missing file is
// ErrSetNotFound; a present but malformed file decodes to zero items.
func (st *Store) Load(name string) (*Set, error) {
	s := slug.Sanitize(name)
	if s == "" {
		return nil, fmt.Errorf("%w: empty slug for name %q", ErrSetNotFound, name)
	}
	body, err := os.ReadFile(st.path(s))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSetNotFound, s)
		}
		return nil, fmt.Errorf("read set %q: %w", s, err)
	}
	return DecodeDocument(s, body), nil
}

// Save writes the canonical wrapper for s, deriving the slug from the
// display name. A collision with a differently named existing set is
// rejected.
func (st *Store) Save(s *Set) error {
	sanitized := slug.Sanitize(s.Name)
	if sanitized == "" {
		return fmt.Errorf("invalid set name %q: sanitizes to empty slug", s.Name)
	}
	s.Slug = sanitized

	if existing, err := st.Load(sanitized); err == nil {
		if existing.Name != s.Name {
			return &SlugCollisionError{
				Slug:         sanitized,
				ExistingName: existing.Name,
				NewName:      s.Name,
			}
		}
	}

	body, err := EncodeDocument(s)
	if err != nil {
		return fmt.Errorf("encode set %q: %w", sanitized, err)
	}
	if err := os.MkdirAll(st.root, 0o755); err != nil {
		return fmt.Errorf("create sets root: %w", err)
	}
	if err := os.WriteFile(st.path(sanitized), body, 0o644); err != nil {
		return fmt.Errorf("write set %q: %w", sanitized, err)
	}
	return nil
}

// Delete removes the document. Reports whether it existed; absence is
// not an error.
func (st *Store) Delete(name string) (bool, error) {
	s := slug.Sanitize(name)
	if s == "" {
		return false, nil
	}
	err := os.Remove(st.path(s))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete set %q: %w", s, err)
	}
	return true, nil
}

// List returns every persisted slug, sorted.
func (st *Store) List() ([]string, error) {
	entries, err := os.ReadDir(st.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list sets root: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(out)
	return out, nil
}

// Metadata builds the listing row for one slug.
func (st *Store) Metadata(name string) (*Metadata, error) {
	s, err := st.Load(name)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		Name:      s.Slug,
		Count:     s.Count(),
		Type:      TypeForModes(InferModes(s)),
		CreatedBy: "system",
	}, nil
}
