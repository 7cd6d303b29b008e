package audio

import (
	"fmt"

	"github.com/andrewdionne/polishpages/internal/slug"
)

// VocabFileName is the derived audio filename for one vocabulary card.
// The filename encodes both the zero-based index and the sanitized
// phrase so distinct items with the same text in different positions
// never collide.
func VocabFileName(index int, phrase string) string {
	return fmt.Sprintf("%d_%s.mp3", index, slug.Sanitize(phrase))
}

// ReadingFileName is the derived audio filename for one passage.
func ReadingFileName(index int) string {
	return fmt.Sprintf("%d.mp3", index)
}
