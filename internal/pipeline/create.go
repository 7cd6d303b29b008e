package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/andrewdionne/polishpages/internal/set"
	"github.com/andrewdionne/polishpages/internal/slug"
)

var ErrSetAlreadyExists = errors.New("set already exists")

// SetType selects the item schema a new set is validated against.
type SetType string

const (
	SetTypeFlashcards SetType = "flashcards"
	SetTypeReading    SetType = "reading"
	SetTypeListening  SetType = "listening"
)

type CreateRequest struct {
	Type  SetType         `json:"type"`
	Name  string          `json:"name"`
	Modes []string        `json:"modes,omitempty"`
	Items json.RawMessage `json:"items"`
}

// ValidationError describes a rejected create request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CreateSet validates the request, persists the document and runs a
// full regeneration. Creating over an existing slug is rejected;
// editors go through save plus regenerate instead.
func (o *Orchestrator) CreateSet(ctx context.Context, req CreateRequest) (*Result, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	slugName := slug.Sanitize(name)
	if slugName == "" {
		return nil, &ValidationError{Field: "name", Reason: "contains no usable characters"}
	}
	if o.store.Exists(name) {
		return nil, fmt.Errorf("%w: %s", ErrSetAlreadyExists, slugName)
	}

	s := &set.Set{
		Name:          name,
		Slug:          slugName,
		DeclaredModes: req.Modes,
	}

	switch req.Type {
	case SetTypeReading:
		var passages []set.Passage
		if err := json.Unmarshal(req.Items, &passages); err != nil {
			return nil, &ValidationError{Field: "items", Reason: "expected a passage array"}
		}
		for i, p := range passages {
			if strings.TrimSpace(p.Polish) == "" {
				return nil, &ValidationError{Field: "items", Reason: fmt.Sprintf("passage %d has no polish text", i)}
			}
		}
		s.Passages = passages
		s.HasPassages = true
		if len(s.DeclaredModes) == 0 {
			s.DeclaredModes = []string{string(set.ModeRead)}
		}
	case SetTypeFlashcards, SetTypeListening, "":
		var cards []set.Card
		if err := json.Unmarshal(req.Items, &cards); err != nil {
			return nil, &ValidationError{Field: "items", Reason: "expected a card array"}
		}
		for i, c := range cards {
			if strings.TrimSpace(c.Phrase) == "" {
				return nil, &ValidationError{Field: "items", Reason: fmt.Sprintf("card %d has no phrase", i)}
			}
			if req.Type != SetTypeListening && strings.TrimSpace(c.Meaning) == "" {
				return nil, &ValidationError{Field: "items", Reason: fmt.Sprintf("card %d has no meaning", i)}
			}
		}
		s.Cards = cards
		if req.Type == SetTypeListening && len(s.DeclaredModes) == 0 {
			s.DeclaredModes = []string{string(set.ModeListen)}
		}
	default:
		return nil, &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown set type %q", req.Type)}
	}

	if len(s.Cards) == 0 && len(s.Passages) == 0 {
		return nil, &ValidationError{Field: "items", Reason: "must not be empty"}
	}

	if err := o.store.Save(s); err != nil {
		return nil, err
	}
	o.log.Info("Created set", "set", slugName, "type", string(req.Type), "items", s.Count())
	return o.Regenerate(ctx, name)
}
