package segmenter

import (
	"github.com/readerelf/readerelf/internal/core/ports/driven"
	"github.com/readerelf/readerelf/internal/segmenter/paragraph"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("paragraph", buildParagraph)
}

// buildParagraph creates a paragraph segmenter from generic config.
// Supported config keys:
//   - max_segment_length (int): Characters per segment before a long
//     paragraph is split on sentence boundaries (default: 2000)
func buildParagraph(cfg map[string]any) (driven.SegmentProcessor, error) {
	var opts []paragraph.Option

	if cfg != nil {
		if max := getIntFromConfig(cfg, "max_segment_length"); max > 0 {
			opts = append(opts, paragraph.WithMaxSegmentLength(max))
		}
	}

	return paragraph.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
