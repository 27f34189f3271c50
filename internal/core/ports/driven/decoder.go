package driven

import (
	"context"

	"github.com/readerelf/readerelf/internal/core/domain"
)

// Decoder extracts readable text and structural boundaries from one
// source format. Each decoder handles specific format tags (e.g. txt,
// html, epub). New formats register under this contract without touching
// other components.
type Decoder interface {
	// FormatTags returns the format tags this decoder handles.
	FormatTags() []string

	// Extensions returns the file extensions (including the dot) this
	// decoder recognises, used for format sniffing.
	Extensions() []string

	// Priority returns the selection priority (higher = preferred)
	// when several decoders claim the same tag.
	Priority() int

	// Decode extracts text and outline from raw bytes.
	// Fails with domain.ErrMalformedInput when the content does not
	// parse under the claimed format.
	Decode(ctx context.Context, raw *domain.RawDocument) (*DecodeResult, error)
}

// DecodeResult contains the output of format decoding: the document's
// readable text split into outline sections, in document order.
type DecodeResult struct {
	// Title is the document title discovered during decoding
	// (<title> tag, package metadata), empty if none.
	Title string

	// Format is the tag the content was decoded under. Populated by
	// the registry when it resolves a sniffed format.
	Format string

	// Sections holds the extracted text in document order. Untitled
	// leading content appears as a section with an empty title.
	Sections []DecodedSection
}

// DecodedSection is the raw text of one outline section.
type DecodedSection struct {
	// Title is the heading text, empty for untitled content.
	Title string

	// Level is the heading depth (1 = top level), 0 for untitled.
	Level int

	// Text is the extracted text. Paragraph boundaries are marked by
	// blank lines; cleaning is the normalizer's job.
	Text string
}
