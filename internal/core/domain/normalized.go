package domain

// NormalizedText is the cleaned, Unicode-normalized text derived from a
// Document. Paragraphs contain no print-width line breaks, whitespace runs
// are collapsed and quotation marks use one canonical style.
type NormalizedText struct {
	// DocumentID links back to the originating Document.
	DocumentID string

	// Sections holds the paragraphs grouped by outline section, in
	// document order. Untitled leading content is a section with an
	// empty title.
	Sections []NormalizedSection
}

// NormalizedSection groups the paragraphs of one outline section.
type NormalizedSection struct {
	// Title is the section heading, empty for untitled content.
	Title string

	// Level is the heading depth, 0 for untitled content.
	Level int

	// Paragraphs are the cleaned paragraphs in reading order.
	Paragraphs []string
}

// Paragraphs returns all paragraphs across sections, flattened in
// document order.
func (n *NormalizedText) Paragraphs() []string {
	var out []string
	for _, sec := range n.Sections {
		out = append(out, sec.Paragraphs...)
	}
	return out
}
