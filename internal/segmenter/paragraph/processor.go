// Package paragraph provides the paragraph-based segmentation processor.
package paragraph

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/readerelf/readerelf/internal/core/domain"
)

// DefaultMaxSegmentLength is the default character count above which a
// paragraph is split on sentence boundaries.
const DefaultMaxSegmentLength = 2000

// Processor emits one segment per paragraph, splitting oversized
// paragraphs at sentence boundaries. It never splits mid-sentence: a
// single sentence longer than the limit stays whole.
type Processor struct {
	maxLength int
}

// Option configures the paragraph processor.
type Option func(*Processor)

// WithMaxSegmentLength sets the maximum segment length in characters.
func WithMaxSegmentLength(max int) Option {
	return func(p *Processor) {
		if max > 0 {
			p.maxLength = max
		}
	}
}

// New creates a new paragraph processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		maxLength: DefaultMaxSegmentLength,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "paragraph"
}

// Process creates segments from the normalized paragraphs. Input
// segments are ignored; this processor is the pipeline's first stage.
func (p *Processor) Process(ctx context.Context, norm *domain.NormalizedText, _ []domain.Segment) ([]domain.Segment, error) {
	var segments []domain.Segment

	for _, sec := range norm.Sections {
		for _, para := range sec.Paragraphs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			for _, text := range p.split(para) {
				segments = append(segments, domain.Segment{
					DocumentID: norm.DocumentID,
					Index:      len(segments),
					Text:       text,
					Section:    sec.Title,
				})
			}
		}
	}

	return segments, nil
}

// split breaks an oversized paragraph into runs of whole sentences, each
// run at most maxLength characters where possible.
func (p *Processor) split(para string) []string {
	if utf8.RuneCountInString(para) <= p.maxLength {
		return []string{para}
	}

	sentences := splitSentences(para)
	if len(sentences) <= 1 {
		return []string{para}
	}

	var out []string
	var run strings.Builder
	runLen := 0

	for _, s := range sentences {
		sLen := utf8.RuneCountInString(s)
		// +1 accounts for the joining space.
		if runLen > 0 && runLen+1+sLen > p.maxLength {
			out = append(out, run.String())
			run.Reset()
			runLen = 0
		}
		if runLen > 0 {
			run.WriteByte(' ')
			runLen++
		}
		run.WriteString(s)
		runLen += sLen
	}
	if runLen > 0 {
		out = append(out, run.String())
	}
	return out
}

// sentenceCloser reports runes that may trail terminal punctuation
// before a sentence boundary (closing quotes and brackets).
func sentenceCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']':
		return true
	}
	return false
}

func terminalPunct(r rune) bool {
	switch r {
	case '.', '!', '?':
		return true
	}
	return false
}

// splitSentences cuts text at sentence boundaries: terminal punctuation,
// optional closing quotes, a space, then an upper-case letter or opening
// quote. Abbreviation-heavy text errs toward fewer cuts, which only
// means a slightly longer segment.
func splitSentences(text string) []string {
	runes := []rune(text)
	var out []string
	start := 0

	for i := 0; i < len(runes); i++ {
		if !terminalPunct(runes[i]) {
			continue
		}
		j := i + 1
		for j < len(runes) && sentenceCloser(runes[j]) {
			j++
		}
		if j >= len(runes) || runes[j] != ' ' {
			continue
		}
		k := j + 1
		if k >= len(runes) {
			continue
		}
		next := runes[k]
		if next == '"' || next == '\'' {
			if k+1 < len(runes) {
				next = runes[k+1]
			}
		}
		if !unicode.IsUpper(next) {
			continue
		}
		out = append(out, string(runes[start:j]))
		start = k
		i = k - 1
	}

	if start < len(runes) {
		out = append(out, string(runes[start:]))
	}
	return out
}
