package epub

import (
	"encoding/xml"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

// NCX XML structures for parsing the navigation map (toc.ncx).
type ncx struct {
	NavMap navMap `xml:"navMap"`
}

type navMap struct {
	NavPoints []navPoint `xml:"navPoint"`
}

type navPoint struct {
	Label    navLabel   `xml:"navLabel"`
	Content  navContent `xml:"content"`
	Children []navPoint `xml:"navPoint"`
}

type navLabel struct {
	Text string `xml:"text"`
}

type navContent struct {
	Src string `xml:"src,attr"`
}

const ncxMediaType = "application/x-dtbncx+xml"

// ncxTitles parses the book's NCX and returns a map from content href
// (full and base name, with fragments stripped) to navigation title.
// Books without a usable NCX get an empty map.
func ncxTitles(book *epub.Rootfile) map[string]string {
	result := make(map[string]string)

	data := readNCX(book)
	if data == nil {
		return result
	}

	var toc ncx
	if err := xml.Unmarshal(data, &toc); err != nil {
		return result
	}

	var collect func(points []navPoint)
	collect = func(points []navPoint) {
		for _, np := range points {
			title := strings.TrimSpace(np.Label.Text)
			for _, key := range hrefKeys(np.Content.Src) {
				if _, exists := result[key]; !exists {
					result[key] = title
				}
			}
			collect(np.Children)
		}
	}
	collect(toc.NavMap.NavPoints)

	return result
}

// readNCX locates and reads the NCX manifest item, nil if absent.
func readNCX(book *epub.Rootfile) []byte {
	for i := range book.Manifest.Items {
		item := &book.Manifest.Items[i]
		if item.MediaType != ncxMediaType {
			continue
		}
		r, err := item.Open()
		if err != nil {
			return nil
		}
		defer r.Close()
		data, err := io.ReadAll(r)
		if err != nil {
			return nil
		}
		return data
	}
	return nil
}

// hrefKeys returns the lookup keys for one nav point src: the href with
// any fragment stripped, plus its base name.
func hrefKeys(src string) []string {
	href := src
	if idx := strings.Index(href, "#"); idx != -1 {
		href = href[:idx]
	}
	if href == "" {
		return nil
	}
	keys := []string{href}
	if base := path.Base(href); base != href {
		keys = append(keys, base)
	}
	return keys
}
