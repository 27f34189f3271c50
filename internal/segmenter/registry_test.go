package segmenter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readerelf/readerelf/internal/core/domain"
)

func TestRegistry_BuildDefaultParagraph(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	require.True(t, r.Has("paragraph"))

	proc, err := r.Build("paragraph", nil)
	require.NoError(t, err)
	assert.Equal(t, "paragraph", proc.Name())
}

func TestRegistry_BuildWithConfig(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	// TOML hands over int64, JSON float64; both must be accepted.
	proc, err := r.Build("paragraph", map[string]any{"max_segment_length": int64(50)})
	require.NoError(t, err)

	norm := &domain.NormalizedText{
		DocumentID: "doc-1",
		Sections: []domain.NormalizedSection{
			{Paragraphs: []string{"First sentence right here. Second sentence follows on. Third one closes it out."}},
		},
	}
	segments, err := proc.Process(context.Background(), norm, nil)
	require.NoError(t, err)
	assert.Greater(t, len(segments), 1)
}

func TestRegistry_UnknownProcessor(t *testing.T) {
	r := NewRegistry()

	_, err := r.Build("nope", nil)

	assert.Error(t, err)
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	assert.Contains(t, r.Names(), "paragraph")
}
