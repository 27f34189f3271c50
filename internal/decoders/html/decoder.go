package html

import (
	"bytes"
	"context"
	"fmt"

	"github.com/readerelf/readerelf/internal/core/domain"
	"github.com/readerelf/readerelf/internal/core/ports/driven"
)

// Ensure Decoder implements the interface.
var _ driven.Decoder = (*Decoder)(nil)

// Decoder handles HTML documents. Markup, script/style content and
// comments are stripped; visible text is extracted in document order and
// h1-h6 headings become outline sections.
type Decoder struct{}

// New creates a new HTML decoder.
func New() *Decoder {
	return &Decoder{}
}

// FormatTags returns the format tags this decoder handles.
func (d *Decoder) FormatTags() []string {
	return []string{domain.FormatHTML}
}

// Extensions returns the file extensions this decoder recognises.
func (d *Decoder) Extensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

// Priority returns the selection priority.
func (d *Decoder) Priority() int {
	return 50 // Generic format decoder, higher than plaintext
}

// Decode converts an HTML document to outline sections.
func (d *Decoder) Decode(_ context.Context, raw *domain.RawDocument) (*driven.DecodeResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	result, err := Parse(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}
	return result, nil
}
