package decoders

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/readerelf/readerelf/internal/core/domain"
	"github.com/readerelf/readerelf/internal/core/ports/driven"
	"github.com/readerelf/readerelf/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.DecoderRegistry = (*Registry)(nil)

// Registry dispatches raw documents to the decoder claiming their format
// tag. When several decoders claim a tag, the highest priority wins.
type Registry struct {
	mu       sync.RWMutex
	decoders []driven.Decoder
}

// NewRegistry creates an empty decoder registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a decoder to the registry.
func (r *Registry) Register(decoder driven.Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders = append(r.decoders, decoder)
}

// Decode extracts text from a raw document using the best matching
// decoder. The format tag is taken from the raw document or sniffed from
// its URI extension and content signature.
func (r *Registry) Decode(ctx context.Context, raw *domain.RawDocument) (*driven.DecodeResult, error) {
	if raw == nil || len(raw.Content) == 0 {
		return nil, domain.ErrInvalidInput
	}

	tag := raw.Format
	if tag == "" {
		tag = Sniff(raw.URI, raw.Content)
		logger.Debug("sniffed format %q for %s", tag, raw.URI)
	}
	if tag == "" {
		return nil, fmt.Errorf("%w: unable to determine format of %s", domain.ErrUnsupportedFormat, raw.URI)
	}

	decoder := r.selectDecoder(tag)
	if decoder == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, tag)
	}

	result, err := decoder.Decode(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s as %q: %w", raw.URI, tag, err)
	}
	result.Format = tag
	return result, nil
}

// selectDecoder returns the highest-priority decoder claiming tag,
// or nil when none does.
func (r *Registry) selectDecoder(tag string) driven.Decoder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best driven.Decoder
	for _, d := range r.decoders {
		for _, t := range d.FormatTags() {
			if t != tag {
				continue
			}
			if best == nil || d.Priority() > best.Priority() {
				best = d
			}
		}
	}
	return best
}

// SupportedFormats returns all registered format tags, sorted.
func (r *Registry) SupportedFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, d := range r.decoders {
		for _, t := range d.FormatTags() {
			seen[t] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// KnownExtension reports whether any registered decoder claims the file
// extension of path. Used by the library watcher to skip foreign files.
func (r *Registry) KnownExtension(path string) bool {
	ext := lowerExt(path)
	if ext == "" {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.decoders {
		for _, e := range d.Extensions() {
			if e == ext {
				return true
			}
		}
	}
	return false
}
