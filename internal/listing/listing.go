package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/rojanmagar2001/gitcopy/internal/domain"
)

// Column headers that older Apache versions render as links.
var headerLabels = map[string]struct{}{
	"name":          {},
	"last modified": {},
	"size":          {},
	"description":   {},
}

// Compared lower-cased. Apache says "Parent Directory", nginx and Go's
// file server use "../".
var parentMarkers = map[string]struct{}{
	"parent directory": {},
	"../":              {},
	"..":               {},
}

// Apache lists entries in <td> or <pre>, nginx in <pre>, others in <li>.
var entryContainers = map[string]struct{}{
	"td":  {},
	"li":  {},
	"pre": {},
}

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Parse(r io.Reader) ([]domain.CandidateLink, error) {
	return Parse(r)
}

// Parse returns the anchors of a directory listing that look like entries,
// in document order. A page without any such anchor yields an empty slice.
func Parse(r io.Reader) ([]domain.CandidateLink, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var out []domain.CandidateLink
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		text := s.Text()

		if !inEntryContainer(s.Nodes[0]) {
			return
		}
		if len(href) <= 1 {
			return // "#", "/" and friends
		}
		if _, isHeader := headerLabels[strings.ToLower(strings.TrimSpace(text))]; isHeader {
			return
		}
		if IsParentMarker(text) {
			return
		}

		out = append(out, domain.CandidateLink{Text: text, Href: href})
	})

	return out, nil
}

func IsParentMarker(text string) bool {
	_, ok := parentMarkers[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

func inEntryContainer(n *html.Node) bool {
	p := n.Parent
	if p == nil || p.Type != html.ElementNode {
		return false
	}
	_, ok := entryContainers[p.Data]
	return ok
}
