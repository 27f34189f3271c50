package domain

// RawDocument represents opaque bytes handed to the ingestion pipeline.
// It is the input to format decoding.
type RawDocument struct {
	// URI is the original location (file path, URL, etc).
	URI string

	// Format is the declared format tag ("txt", "html", "epub").
	// Empty means the registry should sniff it from the URI extension
	// and content signature.
	Format string

	// Content is the raw bytes.
	Content []byte
}
