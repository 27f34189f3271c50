package epub

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"

	"github.com/readerelf/readerelf/internal/core/domain"
	"github.com/readerelf/readerelf/internal/core/ports/driven"
	htmldec "github.com/readerelf/readerelf/internal/decoders/html"
	"github.com/readerelf/readerelf/internal/logger"
)

// Ensure Decoder implements the interface.
var _ driven.Decoder = (*Decoder)(nil)

// Decoder handles EPUB packages. Content documents are decoded in spine
// order, each as HTML; every spine entry contributes at least one
// outline section, titled from the NCX navigation map where available.
type Decoder struct{}

// New creates a new EPUB decoder.
func New() *Decoder {
	return &Decoder{}
}

// FormatTags returns the format tags this decoder handles.
func (d *Decoder) FormatTags() []string {
	return []string{domain.FormatEPUB}
}

// Extensions returns the file extensions this decoder recognises.
func (d *Decoder) Extensions() []string {
	return []string{".epub"}
}

// Priority returns the selection priority.
func (d *Decoder) Priority() int {
	return 50 // Generic format decoder
}

// Decode extracts text from an EPUB archive held in memory. Large
// archives are processed one spine entry at a time and the context is
// checked between entries, so a caller can abort an oversized ingestion.
func (d *Decoder) Decode(ctx context.Context, raw *domain.RawDocument) (*driven.DecodeResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	rdr, err := epub.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening epub: %v", domain.ErrMalformedInput, err)
	}
	if len(rdr.Rootfiles) == 0 {
		return nil, fmt.Errorf("%w: no rootfiles in epub", domain.ErrMalformedInput)
	}

	book := rdr.Rootfiles[0]
	titles := ncxTitles(book)

	result := &driven.DecodeResult{
		Title: strings.TrimSpace(book.Title),
	}

	for i, ref := range book.Spine.Itemrefs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if ref.Item == nil {
			continue
		}

		data, err := readItem(ref.Item)
		if err != nil {
			logger.Warn("skipping unreadable spine entry %s: %v", ref.Item.HREF, err)
			continue
		}

		part, err := htmldec.Parse(bytes.NewReader(data))
		if err != nil {
			logger.Warn("skipping unparsable spine entry %s: %v", ref.Item.HREF, err)
			continue
		}
		if len(part.Sections) == 0 {
			continue
		}

		// Title the entry's leading untitled content from the NCX,
		// falling back to a positional name.
		if part.Sections[0].Title == "" {
			part.Sections[0].Title = entryTitle(titles, ref.Item.HREF, i)
			part.Sections[0].Level = 1
		}
		result.Sections = append(result.Sections, part.Sections...)
	}

	if len(result.Sections) == 0 {
		return nil, fmt.Errorf("%w: no readable spine content", domain.ErrMalformedInput)
	}
	return result, nil
}

// readItem reads the full content of one manifest item.
func readItem(item *epub.Item) ([]byte, error) {
	r, err := item.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// entryTitle resolves a spine entry title from the NCX href map.
func entryTitle(titles map[string]string, href string, spineIndex int) string {
	if href != "" {
		if t, ok := titles[href]; ok && t != "" {
			return t
		}
		if t, ok := titles[path.Base(href)]; ok && t != "" {
			return t
		}
	}
	return fmt.Sprintf("Section %d", spineIndex+1)
}
