// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Decoder: Extracts text and outline from one source format
//   - DecoderRegistry: Selects the appropriate decoder for a format tag
//   - SegmentProcessor / SegmenterPipeline: Splits normalized text into segments
//   - LibraryStore: Document and segment persistence
//   - PositionStore: Reading position persistence
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, decoder, or segmenter package
package driven
