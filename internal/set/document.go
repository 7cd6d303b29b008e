// Package set holds the canonical content unit of the site: a named
// bundle of vocabulary cards or reading passages, persisted as one JSON
// document per set and regenerated into static practice pages.
package set

import (
	"encoding/json"
	"strings"
)

// Card is a vocabulary item. Audio/AudioURL are explicit references used
// by listening sets; AudioFile is the derived per-index filename assigned
// during generation.
type Card struct {
	Phrase        string `json:"phrase"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Meaning       string `json:"meaning"`
	AudioFile     string `json:"audio_file,omitempty"`
	Audio         string `json:"audio,omitempty"`
	AudioURL      string `json:"audio_url,omitempty"`
}

// Passage is a reading item: source text plus its translation.
type Passage struct {
	Title   string `json:"title"`
	Polish  string `json:"polish"`
	English string `json:"english"`
}

// Set is one decoded set document.
type Set struct {
	Name string
	Slug string

	// DeclaredModes are the raw mode tags saved in the document, before
	// normalization. Empty when the document predates explicit modes.
	DeclaredModes []string

	Cards    []Card
	Passages []Passage

	// HasPassages records that the document carried a passages list,
	// even an empty one. Mode inference keys off the list's presence,
	// not its length.
	HasPassages bool
}

// Count returns the number of items of the set's primary shape.
func (s *Set) Count() int {
	if len(s.Passages) > 0 && len(s.Cards) == 0 {
		return len(s.Passages)
	}
	return len(s.Cards)
}

type meta struct {
	Modes []string `json:"modes,omitempty"`
}

// document is the canonical wrapper shape on disk. Older sets used bare
// arrays or the items/data keys; decoding accepts all of them.
type document struct {
	Name     string    `json:"name"`
	Modes    []string  `json:"modes,omitempty"`
	Meta     *meta     `json:"meta,omitempty"`
	Cards    []Card          `json:"cards,omitempty"`
	Items    []Card          `json:"items,omitempty"`
	Data     []Card          `json:"data,omitempty"`
	Passages json.RawMessage `json:"passages,omitempty"`
}

// DecodeDocument parses a set document. Malformed bodies decode to a set
// with zero items rather than failing: regeneration favors availability
// over strictness and still produces valid, empty pages.
func DecodeDocument(slugName string, body []byte) *Set {
	s := &Set{Name: slugName, Slug: slugName}

	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var cards []Card
		if err := json.Unmarshal(body, &cards); err == nil {
			s.Cards = cards
			s.DeclaredModes = []string{string(ModeLearn), string(ModeSpeak)}
		}
		return s
	}

	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return s
	}
	if strings.TrimSpace(doc.Name) != "" {
		s.Name = doc.Name
	}
	s.DeclaredModes = doc.Modes
	if len(s.DeclaredModes) == 0 && doc.Meta != nil {
		s.DeclaredModes = doc.Meta.Modes
	}

	if strings.HasPrefix(strings.TrimSpace(string(doc.Passages)), "[") {
		var passages []Passage
		if err := json.Unmarshal(doc.Passages, &passages); err == nil {
			s.Passages = passages
			s.HasPassages = true
		}
	}
	switch {
	case len(doc.Cards) > 0:
		s.Cards = doc.Cards
	case len(doc.Items) > 0:
		s.Cards = doc.Items
	case len(doc.Data) > 0:
		s.Cards = doc.Data
	}
	return s
}

// EncodeDocument renders the canonical on-disk wrapper: name, normalized
// modes (mirrored under meta for older readers), and passages for
// read-only sets or cards for everything else.
func EncodeDocument(s *Set) ([]byte, error) {
	modes := NormalizeModes(s.DeclaredModes)
	tags := make([]string, 0, len(modes))
	for _, m := range modes {
		tags = append(tags, string(m))
	}

	name := strings.TrimSpace(s.Name)
	if name == "" {
		name = s.Slug
	}

	var doc any
	readOnly := len(modes) == 1 && modes[0] == ModeRead
	if readOnly {
		passages := s.Passages
		if passages == nil {
			passages = []Passage{}
		}
		doc = struct {
			Name     string    `json:"name"`
			Modes    []string  `json:"modes"`
			Meta     meta      `json:"meta"`
			Passages []Passage `json:"passages"`
		}{name, tags, meta{Modes: tags}, passages}
	} else {
		cards := s.Cards
		if cards == nil {
			cards = []Card{}
		}
		doc = struct {
			Name  string   `json:"name"`
			Modes []string `json:"modes"`
			Meta  meta     `json:"meta"`
			Cards []Card   `json:"cards"`
		}{name, tags, meta{Modes: tags}, cards}
	}

	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}
