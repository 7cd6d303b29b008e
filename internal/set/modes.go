package set

import "strings"

// Mode is one practice modality of a set.
type Mode string

const (
	ModeLearn  Mode = "learn"
	ModeSpeak  Mode = "speak"
	ModeRead   Mode = "read"
	ModeListen Mode = "listen"
)

// CanonicalModeOrder is the fixed display order downstream consumers
// assume: learn, speak, read, listen.
var CanonicalModeOrder = []Mode{ModeLearn, ModeSpeak, ModeRead, ModeListen}

func isRecognizedMode(m Mode) bool {
	switch m {
	case ModeLearn, ModeSpeak, ModeRead, ModeListen:
		return true
	default:
		return false
	}
}

// NormalizeModes filters raw tags to the recognized four, dedupes,
// forces the learn<->speak pairing, and re-emits in canonical order.
// Unrecognized input never fails; it is dropped.
func NormalizeModes(raw []string) []Mode {
	seen := map[Mode]bool{}
	for _, r := range raw {
		m := Mode(strings.ToLower(strings.TrimSpace(r)))
		if isRecognizedMode(m) {
			seen[m] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	if seen[ModeLearn] || seen[ModeSpeak] {
		seen[ModeLearn] = true
		seen[ModeSpeak] = true
	}
	out := make([]Mode, 0, len(seen))
	for _, m := range CanonicalModeOrder {
		if seen[m] {
			out = append(out, m)
		}
	}
	return out
}

// InferModes determines a set's supported modes. Explicit declared modes
// win; otherwise the document shape decides: a passages list (even an
// empty one) means read, items carrying an audio reference mean listen,
// and anything else defaults to learn+speak so content is never silently
// unpublishable.
func InferModes(s *Set) []Mode {
	if s == nil {
		return []Mode{ModeLearn, ModeSpeak}
	}
	if modes := NormalizeModes(s.DeclaredModes); len(modes) > 0 {
		return modes
	}
	if s.HasPassages || len(s.Passages) > 0 {
		return []Mode{ModeRead}
	}
	for _, c := range s.Cards {
		if strings.TrimSpace(c.Audio) != "" || strings.TrimSpace(c.AudioURL) != "" {
			return []Mode{ModeListen}
		}
	}
	return []Mode{ModeLearn, ModeSpeak}
}

// HasMode reports whether m is in modes.
func HasMode(modes []Mode, m Mode) bool {
	for _, x := range modes {
		if x == m {
			return true
		}
	}
	return false
}

// TypeForModes maps a mode list to the legacy set "type" label used by
// listings and the create API.
func TypeForModes(modes []Mode) string {
	if len(modes) == 1 {
		switch modes[0] {
		case ModeListen:
			return "listening"
		case ModeRead:
			return "reading"
		}
	}
	return "flashcards"
}
