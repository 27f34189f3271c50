package decoders

import (
	"github.com/readerelf/readerelf/internal/decoders/epub"
	"github.com/readerelf/readerelf/internal/decoders/html"
	"github.com/readerelf/readerelf/internal/decoders/plaintext"
)

// RegisterDefaults registers all built-in decoders with the registry.
// Call this during application initialisation.
func RegisterDefaults(r *Registry) {
	r.Register(plaintext.New())
	r.Register(html.New())
	r.Register(epub.New())
}
