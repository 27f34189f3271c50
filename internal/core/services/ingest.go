package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/readerelf/readerelf/internal/core/domain"
	"github.com/readerelf/readerelf/internal/core/ports/driven"
	"github.com/readerelf/readerelf/internal/core/ports/driving"
	"github.com/readerelf/readerelf/internal/logger"
)

// documentNamespace is the UUID namespace for content-derived document
// identifiers. Never change it: stable IDs across re-ingestion depend
// on it.
var documentNamespace = uuid.MustParse("b1aef0d4-2d43-4b64-9a27-7f38c9e1b5a1")

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService runs the decode -> normalize -> segment pipeline and
// stores the result. The document identifier is derived from the raw
// content hash, so unchanged input always maps to the same document and
// changed input to a new one.
type IngestService struct {
	registry   driven.DecoderRegistry
	normalizer driven.TextNormalizer
	segmenter  driven.SegmenterPipeline
	library    driven.LibraryStore
}

// NewIngestService creates an ingest service.
func NewIngestService(
	registry driven.DecoderRegistry,
	normalizer driven.TextNormalizer,
	segmenter driven.SegmenterPipeline,
	library driven.LibraryStore,
) *IngestService {
	return &IngestService{
		registry:   registry,
		normalizer: normalizer,
		segmenter:  segmenter,
		library:    library,
	}
}

// Ingest processes raw bytes and stores the resulting document.
// Nothing is written until the whole pipeline has succeeded.
func (s *IngestService) Ingest(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	hash := sha256.Sum256(raw.Content)
	contentHash := hex.EncodeToString(hash[:])
	id := uuid.NewSHA1(documentNamespace, hash[:]).String()

	res, err := s.registry.Decode(ctx, raw)
	if err != nil {
		return nil, err
	}

	norm := s.normalizer.Normalize(id, res)

	// Each section is segmented on its own so outline entries can point
	// at exact segment boundaries even when long paragraphs are split.
	var segments []domain.Segment
	var outline []domain.OutlineEntry
	for _, sec := range norm.Sections {
		if sec.Title != "" {
			level := sec.Level
			if level < 1 {
				level = 1
			}
			outline = append(outline, domain.OutlineEntry{
				Title:        sec.Title,
				Level:        level,
				SegmentStart: len(segments),
			})
		}

		secNorm := &domain.NormalizedText{
			DocumentID: id,
			Sections:   []domain.NormalizedSection{sec},
		}
		secSegments, err := s.segmenter.Process(ctx, secNorm)
		if err != nil {
			return nil, err
		}
		segments = append(segments, secSegments...)
	}
	for i := range segments {
		segments[i].Index = i
	}

	doc := &domain.Document{
		ID:           id,
		URI:          raw.URI,
		Title:        documentTitle(res.Title, outline, raw.URI),
		Format:       res.Format,
		ContentHash:  contentHash,
		Outline:      outline,
		SegmentCount: len(segments),
	}

	if err := s.library.SaveIngest(ctx, doc, segments); err != nil {
		return nil, err
	}

	logger.Info("ingested %s: %d segments, %d outline entries", doc.Title, len(segments), len(outline))
	return doc, nil
}

// IngestFile reads a file from disk and ingests it. The format tag is
// left empty so the registry sniffs it from the extension and content.
func (s *IngestService) IngestFile(ctx context.Context, path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return s.Ingest(ctx, &domain.RawDocument{
		URI:     path,
		Content: data,
	})
}

// documentTitle picks the best available title: decoder metadata, then
// the first outline heading, then the file name.
func documentTitle(decoded string, outline []domain.OutlineEntry, uri string) string {
	if t := strings.TrimSpace(decoded); t != "" {
		return t
	}
	if len(outline) > 0 {
		return outline[0].Title
	}
	base := filepath.Base(uri)
	if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" && name != "." {
		return name
	}
	return "Untitled"
}
