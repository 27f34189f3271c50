package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readerelf/readerelf/internal/core/ports/driven"
)

func TestNormalizeText_SoftWrapCollapse(t *testing.T) {
	n := New()

	paras := n.NormalizeText("Line one.\nLine two continues\nhere.\n\nNew paragraph.\n")

	require.Len(t, paras, 2)
	assert.Equal(t, "Line one. Line two continues here.", paras[0])
	assert.Equal(t, "New paragraph.", paras[1])
}

func TestNormalizeText_PageNumberLines(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		line string
	}{
		{"bare digits", "42"},
		{"dash decorated", "- 42 -"},
		{"bracketed", "[7]"},
		{"page word", "Page 13"},
		{"page word lowercase", "page 13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := "Before the break.\n\n" + tt.line + "\n\nAfter the break."
			paras := n.NormalizeText(text)
			require.Len(t, paras, 2)
			assert.Equal(t, "Before the break.", paras[0])
			assert.Equal(t, "After the break.", paras[1])
		})
	}
}

func TestNormalizeText_KeepsNumbersInsideProse(t *testing.T) {
	n := New()

	paras := n.NormalizeText("Chapter 42 begins on page 7 of the book.")

	require.Len(t, paras, 1)
	assert.Equal(t, "Chapter 42 begins on page 7 of the book.", paras[0])
}

func TestNormalizeText_Dehyphenation(t *testing.T) {
	n := New()

	paras := n.NormalizeText("This is an impor-\ntant point.")

	require.Len(t, paras, 1)
	assert.Equal(t, "This is an important point.", paras[0])
}

func TestNormalizeText_PunctuationThenIndentStartsParagraph(t *testing.T) {
	n := New()

	paras := n.NormalizeText("The chapter ended.\n    A new scene opened with rain.")

	require.Len(t, paras, 2)
	assert.Equal(t, "The chapter ended.", paras[0])
	assert.Equal(t, "A new scene opened with rain.", paras[1])
}

func TestNormalizeText_CanonicalGlyphs(t *testing.T) {
	n := New()

	paras := n.NormalizeText("“Hello,” she said — then left…")

	require.Len(t, paras, 1)
	assert.Equal(t, `"Hello," she said - then left...`, paras[0])
}

func TestNormalizeText_StripsControlsAndCollapsesWhitespace(t *testing.T) {
	n := New()

	paras := n.NormalizeText("A\x00B​ mind at   work\tindeed")

	require.Len(t, paras, 1)
	assert.Equal(t, "AB mind at work indeed", paras[0])
}

func TestNormalizeText_RepeatedHeaderRemoved(t *testing.T) {
	n := New(WithBoilerplateWindow(5))

	var b strings.Builder
	for page := 0; page < 4; page++ {
		b.WriteString("THE GREAT NOVEL\n\n")
		b.WriteString("Prose content for this stretch of the book.\n\n")
	}
	paras := n.NormalizeText(b.String())

	require.NotEmpty(t, paras)
	for _, p := range paras {
		assert.NotContains(t, p, "THE GREAT NOVEL")
	}
}

func TestNormalizeText_RareRepeatKept(t *testing.T) {
	n := New()

	// Twice is below the repeat threshold.
	paras := n.NormalizeText("Call me maybe.\n\nSome filler.\n\nCall me maybe.")

	require.Len(t, paras, 3)
	assert.Equal(t, "Call me maybe.", paras[0])
	assert.Equal(t, "Call me maybe.", paras[2])
}

func TestNormalizeText_CRLFInput(t *testing.T) {
	n := New()

	paras := n.NormalizeText("First line\r\nwrapped.\r\n\r\nSecond.")

	require.Len(t, paras, 2)
	assert.Equal(t, "First line wrapped.", paras[0])
	assert.Equal(t, "Second.", paras[1])
}

func TestNormalizeText_Idempotent(t *testing.T) {
	n := New()

	input := "“Strange” text with an impor-\ntant\nsoft wrap.\n\n- 9 -\n\nAnd a second\nparagraph here."
	first := n.NormalizeText(input)
	second := n.NormalizeText(strings.Join(first, "\n\n"))

	assert.Equal(t, first, second)
}

func TestNormalizeText_NFCComposition(t *testing.T) {
	n := New()

	// "é" as base letter plus combining accent composes to one rune.
	paras := n.NormalizeText("café")

	require.Len(t, paras, 1)
	assert.Equal(t, "café", paras[0])
}

func TestNormalize_Sections(t *testing.T) {
	n := New()

	res := &driven.DecodeResult{
		Title: "Book",
		Sections: []driven.DecodedSection{
			{Title: "Ch 1", Level: 1, Text: "Hello\nworld.\n\nBye."},
			{Title: "", Level: 0, Text: "   \n  "},
		},
	}

	norm := n.Normalize("doc-1", res)

	require.Len(t, norm.Sections, 2)
	assert.Equal(t, "doc-1", norm.DocumentID)
	assert.Equal(t, "Ch 1", norm.Sections[0].Title)
	assert.Equal(t, []string{"Hello world.", "Bye."}, norm.Sections[0].Paragraphs)
	assert.Empty(t, norm.Sections[1].Paragraphs)
}

func TestNormalize_NilResult(t *testing.T) {
	n := New()

	norm := n.Normalize("doc-1", nil)

	assert.Equal(t, "doc-1", norm.DocumentID)
	assert.Empty(t, norm.Sections)
}
