package decoders

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/readerelf/readerelf/internal/core/domain"
)

// zipMagic is the local-file-header signature of a ZIP archive.
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// Sniff determines a format tag from the URI extension, falling back to
// content signatures. Returns "" when nothing matches.
func Sniff(uri string, content []byte) string {
	switch lowerExt(uri) {
	case ".txt", ".text":
		return domain.FormatPlainText
	case ".html", ".htm", ".xhtml":
		return domain.FormatHTML
	case ".epub":
		return domain.FormatEPUB
	}
	return sniffContent(content)
}

// sniffContent inspects the leading bytes for a recognisable signature.
func sniffContent(content []byte) string {
	if len(content) == 0 {
		return ""
	}

	// EPUB: a ZIP whose first entry is the epub mimetype declaration.
	if bytes.HasPrefix(content, zipMagic) {
		head := content
		if len(head) > 256 {
			head = head[:256]
		}
		if bytes.Contains(head, []byte("application/epub+zip")) {
			return domain.FormatEPUB
		}
		return ""
	}

	head := strings.TrimLeft(string(trimBOM(content)), " \t\r\n")
	if len(head) > 1024 {
		head = head[:1024]
	}
	lower := strings.ToLower(head)
	if strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html") || strings.Contains(lower, "<html") {
		return domain.FormatHTML
	}

	if hasUnicodeBOM(content) || utf8.Valid(content) {
		return domain.FormatPlainText
	}
	return ""
}

// trimBOM strips a leading UTF-8 byte order mark.
func trimBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
}

// hasUnicodeBOM reports whether the content starts with any Unicode BOM.
func hasUnicodeBOM(b []byte) bool {
	return bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(b, []byte{0xFF, 0xFE}) ||
		bytes.HasPrefix(b, []byte{0xFE, 0xFF})
}

// lowerExt returns the lowercased file extension of path.
func lowerExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
