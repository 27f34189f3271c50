package domain

import "time"

// Format tags recognised by the decoder registry.
const (
	FormatPlainText = "txt"
	FormatHTML      = "html"
	FormatEPUB      = "epub"
)

// Document represents an ingested source document.
// It is immutable after decoding; changed content yields a new Document
// with a new identifier.
type Document struct {
	// ID is the unique identifier, derived from the content hash.
	// Identical bytes always produce the same ID.
	ID string

	// URI is the original location (file path, URL, etc).
	URI string

	// Title is the human-readable title.
	Title string

	// Format is the format tag the document was decoded under.
	Format string

	// ContentHash is the hex-encoded SHA-256 of the raw input bytes.
	ContentHash string

	// Outline is the ordered list of chapter/section boundaries
	// discovered during decoding. May be empty.
	Outline []OutlineEntry

	// SegmentCount is the number of segments produced by ingestion.
	SegmentCount int

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time

	// UpdatedAt is when the document record was last written.
	UpdatedAt time.Time
}

// OutlineEntry marks the start of a chapter or section.
type OutlineEntry struct {
	// Title is the heading text.
	Title string

	// Level is the heading depth (1 = top level).
	Level int

	// SegmentStart is the index of the first segment in the section.
	SegmentStart int
}

// Segment is one addressable reading unit within a document.
// Concatenating all segments in index order reconstructs the
// document's normalized text, modulo boundary whitespace.
type Segment struct {
	// DocumentID links to the owning Document.
	DocumentID string

	// Index is the 0-based ordinal position. Indices are strictly
	// increasing and stable across re-runs on unchanged input.
	Index int

	// Text is the segment content.
	Text string

	// Section is the title of the enclosing outline section, if any.
	Section string
}
