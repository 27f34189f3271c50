package driven

import (
	"github.com/readerelf/readerelf/internal/core/domain"
)

// TextNormalizer cleans decoded text into paragraph-structured sections.
// Implementations must be pure: identical input always yields identical
// output, and normalizing already-normalized text is a no-op.
type TextNormalizer interface {
	Normalize(documentID string, res *DecodeResult) *domain.NormalizedText
}
