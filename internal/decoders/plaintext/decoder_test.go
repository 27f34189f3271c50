package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readerelf/readerelf/internal/core/domain"
)

func decode(t *testing.T, content []byte) string {
	t.Helper()

	res, err := New().Decode(context.Background(), &domain.RawDocument{
		URI:     "test.txt",
		Content: content,
	})
	require.NoError(t, err)
	require.Len(t, res.Sections, 1)
	return res.Sections[0].Text
}

func TestDecode_PlainUTF8(t *testing.T) {
	assert.Equal(t, "Hello, world.", decode(t, []byte("Hello, world.")))
}

func TestDecode_StripsUTF8BOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("After the mark.")...)

	assert.Equal(t, "After the mark.", decode(t, content))
}

func TestDecode_UTF16LittleEndian(t *testing.T) {
	// "Hi" with a little-endian BOM.
	content := []byte{0xFF, 0xFE, 'H', 0x00, 'i', 0x00}

	assert.Equal(t, "Hi", decode(t, content))
}

func TestDecode_UTF16BigEndian(t *testing.T) {
	content := []byte{0xFE, 0xFF, 0x00, 'H', 0x00, 'i'}

	assert.Equal(t, "Hi", decode(t, content))
}

func TestDecode_RejectsInvalidUTF8(t *testing.T) {
	_, err := New().Decode(context.Background(), &domain.RawDocument{
		URI:     "test.txt",
		Content: []byte{0xC3, 0x28, 0xA0, 0xA1},
	})

	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}

func TestDecode_NoOutline(t *testing.T) {
	res, err := New().Decode(context.Background(), &domain.RawDocument{
		URI:     "test.txt",
		Content: []byte("Just text."),
	})

	require.NoError(t, err)
	assert.Empty(t, res.Title)
	assert.Empty(t, res.Sections[0].Title)
	assert.Zero(t, res.Sections[0].Level)
}
