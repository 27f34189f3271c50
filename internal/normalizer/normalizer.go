// Package normalizer implements the text cleaning pipeline that turns
// decoded text into speakable, paragraph-structured content.
//
// Normalization is a pure function of its input: the same bytes always
// yield identical output, and a second pass over its own output is a
// no-op (required so segment indices stay valid across restarts).
package normalizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/readerelf/readerelf/internal/core/domain"
	"github.com/readerelf/readerelf/internal/core/ports/driven"
)

// DefaultBoilerplateMinRepeats is how often a line must recur before it
// counts as a repeated header/footer.
const DefaultBoilerplateMinRepeats = 3

// DefaultBoilerplateWindow is the number of lines treated as one "page"
// when measuring how widely a repeated line is spread.
const DefaultBoilerplateWindow = 40

// boilerplateMaxLen caps the length of lines considered for repeated
// header/footer detection. Real headers are short.
const boilerplateMaxLen = 80

// Normalizer runs the cleaning rules, in order:
//
//  1. Unicode NFC composition
//  2. Page-number and repeated header/footer line removal
//  3. De-hyphenation and soft line-break collapse into paragraphs
//  4. Canonical quotation marks and dashes
//  5. Control character removal
//  6. Whitespace run collapse
type Normalizer struct {
	minRepeats  int
	windowLines int
}

// Option configures the normalizer.
type Option func(*Normalizer)

// WithBoilerplateMinRepeats sets how many occurrences of a line count
// as repeated boilerplate.
func WithBoilerplateMinRepeats(n int) Option {
	return func(nm *Normalizer) {
		if n > 1 {
			nm.minRepeats = n
		}
	}
}

// WithBoilerplateWindow sets the page-window size in lines.
func WithBoilerplateWindow(n int) Option {
	return func(nm *Normalizer) {
		if n > 0 {
			nm.windowLines = n
		}
	}
}

// New creates a normalizer with the given options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		minRepeats:  DefaultBoilerplateMinRepeats,
		windowLines: DefaultBoilerplateWindow,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize cleans a decode result into normalized, sectioned text.
func (n *Normalizer) Normalize(documentID string, res *driven.DecodeResult) *domain.NormalizedText {
	out := &domain.NormalizedText{DocumentID: documentID}
	if res == nil {
		return out
	}
	for _, sec := range res.Sections {
		out.Sections = append(out.Sections, domain.NormalizedSection{
			Title:      CleanInline(sec.Title),
			Level:      sec.Level,
			Paragraphs: n.NormalizeText(sec.Text),
		})
	}
	return out
}

// NormalizeText runs the full rule set over one block of raw text and
// returns its paragraphs in order.
func (n *Normalizer) NormalizeText(text string) []string {
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	// NUL doubles as the internal paragraph marker below.
	text = strings.ReplaceAll(text, "\x00", "")

	text = n.stripBoilerplate(text)

	paras := splitParagraphs(text)

	out := make([]string, 0, len(paras))
	for _, p := range paras {
		p = CleanInline(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CleanInline applies the glyph, control and whitespace rules to a
// single line of text (rules 4-6). Used for paragraphs and titles.
func CleanInline(s string) string {
	s = canonicalGlyphs(s)
	s = stripControls(s)
	return collapseWhitespace(s)
}

// pageNumberRe matches a page-number line: pure digits alone on a line,
// optionally bracketed or dash-decorated, optionally "Page N".
var pageNumberRe = regexp.MustCompile(`(?i)^\s*(?:[-–—*\[\(]+\s*)?(?:page\s+)?\d{1,4}(?:\s*[-–—*\]\)]+)?\s*$`)

// stripBoilerplate drops page-number lines and short lines repeated
// across a majority of page-sized windows (the header/footer heuristic).
func (n *Normalizer) stripBoilerplate(text string) string {
	lines := strings.Split(text, "\n")

	// First pass: occurrence counts and window spread per candidate.
	counts := make(map[string]int)
	windows := make(map[string]map[int]struct{})
	totalWindows := 0
	for i, line := range lines {
		s := strings.TrimSpace(line)
		if s == "" {
			continue
		}
		w := i / n.windowLines
		if w+1 > totalWindows {
			totalWindows = w + 1
		}
		if len(s) > boilerplateMaxLen {
			continue
		}
		counts[s]++
		if windows[s] == nil {
			windows[s] = make(map[int]struct{})
		}
		windows[s][w] = struct{}{}
	}

	repeated := func(s string) bool {
		if counts[s] < n.minRepeats {
			return false
		}
		// Must appear in at least half the windows that hold text.
		return len(windows[s])*2 >= totalWindows
	}

	filtered := lines[:0]
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if s != "" {
			if pageNumberRe.MatchString(s) {
				continue
			}
			if repeated(s) {
				continue
			}
		}
		filtered = append(filtered, line)
	}
	return strings.Join(filtered, "\n")
}

var (
	// "impor-\ntant" -> "important"
	hyphenBreakRe = regexp.MustCompile(`(\p{L})-\n[ \t]*(\p{L})`)

	// Two or more breaks always separate paragraphs.
	multiBreakRe = regexp.MustCompile(`\n[ \t]*\n\s*`)

	// A single break after terminal punctuation followed by an
	// indented line also separates paragraphs. A bare punct+capital
	// break does not: print-width wrapping regularly ends lines on
	// full stops.
	punctIndentRe = regexp.MustCompile(`([.!?…][”"'’)\]]*)\n[ \t]+`)
)

// paraSep is an internal paragraph marker; it is consumed by the split
// below and can never survive into output.
const paraSep = "\x00"

// splitParagraphs repairs hyphenation, collapses soft line breaks and
// returns the resulting raw paragraphs.
func splitParagraphs(text string) []string {
	text = hyphenBreakRe.ReplaceAllString(text, "$1$2")
	text = multiBreakRe.ReplaceAllString(text, paraSep)
	text = punctIndentRe.ReplaceAllString(text, "$1"+paraSep)
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.Split(text, paraSep)
}

// glyphReplacer maps quotation marks and dashes to one canonical set.
var glyphReplacer = strings.NewReplacer(
	"“", `"`, "”", `"`, "„", `"`, "‟", `"`,
	"«", `"`, "»", `"`,
	"‘", "'", "’", "'", "‚", "'", "‛", "'",
	"‒", "-", "–", "-", "—", "-", "―", "-",
	"…", "...",
)

func canonicalGlyphs(s string) string {
	return glyphReplacer.Replace(s)
}

// stripControls removes non-printable characters. Line structure is
// already resolved at this point, so stray breaks become plain spaces.
func stripControls(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		case r == '\u00a0':
			return ' '
		case r == '\u200b', r == '\u200c', r == '\u200d', r == '\ufeff':
			return -1
		}
		return r
	}, s)
}

// collapseWhitespace reduces whitespace runs to single spaces and trims.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
