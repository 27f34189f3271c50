package html

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/readerelf/readerelf/internal/core/ports/driven"
)

// Elements whose content is never visible text.
var skipElements = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"svg":      {},
	"template": {},
	"iframe":   {},
}

// Elements that delimit paragraphs in the extracted text.
var blockElements = map[string]struct{}{
	"p": {}, "div": {}, "li": {}, "ul": {}, "ol": {},
	"tr": {}, "table": {}, "blockquote": {}, "pre": {},
	"section": {}, "article": {}, "header": {}, "footer": {},
	"figure": {}, "figcaption": {}, "br": {}, "hr": {},
}

// Parse extracts visible text and heading structure from an HTML stream.
// Heading text (h1-h6) becomes the title of a new section and does not
// appear in the body text. Shared with the EPUB decoder, which parses
// each spine entry through this function.
func Parse(r io.Reader) (*driven.DecodeResult, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	b := &builder{}
	b.walk(doc)
	b.flush()
	return &b.result, nil
}

// builder accumulates the section currently being extracted.
type builder struct {
	result driven.DecodeResult
	title  string
	level  int
	buf    strings.Builder
}

func (b *builder) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.buf.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		name := n.Data
		if _, skip := skipElements[name]; skip {
			return
		}
		if name == "head" {
			// Only the <title> inside head is interesting.
			if t := findTitle(n); t != "" && b.result.Title == "" {
				b.result.Title = t
			}
			return
		}
		if level := headingLevel(name); level > 0 {
			b.startSection(strings.TrimSpace(collectText(n)), level)
			return
		}
		if _, block := blockElements[name]; block {
			b.paragraphBreak()
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				b.walk(c)
			}
			b.paragraphBreak()
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.walk(c)
	}
}

// startSection closes the current section and opens a titled one.
func (b *builder) startSection(title string, level int) {
	b.flush()
	b.title = title
	b.level = level
}

func (b *builder) paragraphBreak() {
	b.buf.WriteString("\n\n")
}

// flush appends the accumulated section when it has a title or any
// visible text. Untitled empty preambles are dropped.
func (b *builder) flush() {
	text := b.buf.String()
	b.buf.Reset()
	if strings.TrimSpace(text) == "" && b.title == "" {
		return
	}
	b.result.Sections = append(b.result.Sections, driven.DecodedSection{
		Title: b.title,
		Level: b.level,
		Text:  text,
	})
	b.title = ""
	b.level = 0
}

// headingLevel returns 1-6 for h1-h6 element names, 0 otherwise.
func headingLevel(name string) int {
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}

// findTitle returns the text of the first <title> child of head.
func findTitle(head *html.Node) string {
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "title" {
			return strings.TrimSpace(collectText(c))
		}
	}
	return ""
}

// collectText concatenates all text nodes under n.
func collectText(n *html.Node) string {
	var out strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			out.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out.String()
}
