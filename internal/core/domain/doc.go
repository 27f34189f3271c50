// Package domain defines the core business entities for ReaderElf.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawDocument: Opaque bytes handed to the pipeline for ingestion
//   - Document: An ingested document with its structural outline
//   - NormalizedText: Cleaned text derived from a document
//   - Segment: An addressable reading unit with a stable index
//   - ReadingPosition: The persisted per-document reading cursor
package domain
