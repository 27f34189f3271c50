package plaintext

import (
	"bytes"
	"context"
	"fmt"
	"unicode/utf8"

	encunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/readerelf/readerelf/internal/core/domain"
	"github.com/readerelf/readerelf/internal/core/ports/driven"
)

// Ensure Decoder implements the interface.
var _ driven.Decoder = (*Decoder)(nil)

// Decoder handles plain text documents. UTF-8 with BOM detection;
// UTF-16 input with a BOM is transcoded. Plain text carries no
// structural outline: the entire content is one untitled section.
type Decoder struct{}

// New creates a new plain text decoder.
func New() *Decoder {
	return &Decoder{}
}

// FormatTags returns the format tags this decoder handles.
func (d *Decoder) FormatTags() []string {
	return []string{domain.FormatPlainText}
}

// Extensions returns the file extensions this decoder recognises.
func (d *Decoder) Extensions() []string {
	return []string{".txt", ".text"}
}

// Priority returns the selection priority.
func (d *Decoder) Priority() int {
	return 5 // Fallback decoder
}

// Decode converts raw bytes to a single-section decode result.
func (d *Decoder) Decode(_ context.Context, raw *domain.RawDocument) (*driven.DecodeResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text, err := decodeText(raw.Content)
	if err != nil {
		return nil, err
	}

	return &driven.DecodeResult{
		Sections: []driven.DecodedSection{{Text: text}},
	}, nil
}

// utf8BOM is the UTF-8 byte order mark.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText converts raw bytes to a UTF-8 string. UTF-16 content is
// detected by its BOM and transcoded; invalid UTF-8 without a BOM is
// rejected rather than silently truncated.
func decodeText(content []byte) (string, error) {
	switch {
	case bytes.HasPrefix(content, utf8BOM):
		content = bytes.TrimPrefix(content, utf8BOM)

	case bytes.HasPrefix(content, []byte{0xFF, 0xFE}), bytes.HasPrefix(content, []byte{0xFE, 0xFF}):
		// ExpectBOM lets the BOM itself pick the endianness.
		dec := encunicode.UTF16(encunicode.LittleEndian, encunicode.ExpectBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, content)
		if err != nil {
			return "", fmt.Errorf("%w: UTF-16 transcode: %v", domain.ErrMalformedInput, err)
		}
		return string(out), nil
	}

	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: content is not valid UTF-8", domain.ErrMalformedInput)
	}
	return string(content), nil
}
