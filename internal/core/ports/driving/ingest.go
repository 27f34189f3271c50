package driving

import (
	"context"

	"github.com/readerelf/readerelf/internal/core/domain"
)

// Ingestor runs the decode -> normalize -> segment pipeline for one
// document and stores the result. Ingestion is all-or-nothing per
// document; a failure leaves the library untouched.
type Ingestor interface {
	// Ingest processes raw bytes under their declared or sniffed
	// format tag and returns the stored document.
	Ingest(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error)

	// IngestFile reads a file from disk and ingests it, sniffing the
	// format from the extension and content.
	IngestFile(ctx context.Context, path string) (*domain.Document, error)
}
