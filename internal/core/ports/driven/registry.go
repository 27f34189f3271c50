package driven

import (
	"context"

	"github.com/readerelf/readerelf/internal/core/domain"
)

// DecoderRegistry selects the appropriate decoder for a document.
// It maintains a priority-ordered set of decoders and dispatches on the
// declared format tag, sniffing one from the URI extension and content
// signature when the tag is empty.
type DecoderRegistry interface {
	// Decode extracts text using the best matching decoder.
	// Fails with domain.ErrUnsupportedFormat when no decoder claims
	// the resolved tag.
	Decode(ctx context.Context, raw *domain.RawDocument) (*DecodeResult, error)

	// Register adds a decoder to the registry.
	Register(decoder Decoder)

	// SupportedFormats returns all format tags that can be decoded.
	SupportedFormats() []string
}
