package scraper

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// ErrTableNotFound is returned when no strategy picks a table
var ErrTableNotFound = errors.New("standings table not found")

const (
	DefaultLookback   = 5
	DefaultMinColumns = 8
)

// TableStrategy picks the standings table out of every table in the page.
// Select returns nil when the strategy has no opinion.
type TableStrategy interface {
	Name() string
	Select(tables *goquery.Selection) *goquery.Selection
}

// Locator asks each strategy in order and returns the first table chosen
type Locator struct {
	strategies []TableStrategy
}

// NewLocator builds a locator from an ordered strategy list
func NewLocator(strategies ...TableStrategy) *Locator {
	return &Locator{strategies: strategies}
}

// NewDefaultLocator returns heading proximity followed by the column count fallback
func NewDefaultLocator(markers []string, lookback, minColumns int) *Locator {
	return NewLocator(
		&ProximityStrategy{Markers: markers, Lookback: lookback},
		&ShapeStrategy{MinColumns: minColumns},
	)
}

// Locate returns the standings table of doc
func (l *Locator) Locate(doc *goquery.Document) (*goquery.Selection, error) {
	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, ErrTableNotFound
	}

	for _, s := range l.strategies {
		table := s.Select(tables)
		if table == nil || table.Length() == 0 {
			continue
		}

		log.Debug().
			Str("strategy", s.Name()).
			Int("tables", tables.Length()).
			Msg("Standings table located")
		return table.First(), nil
	}

	return nil, ErrTableNotFound
}

// ProximityStrategy selects the first table preceded, within Lookback
// elements in reverse document order, by an element whose text contains
// every marker. Ancestors of the table count toward Lookback but their text
// is not matched, since it includes the table and everything after it.
type ProximityStrategy struct {
	Markers  []string
	Lookback int
}

func (p *ProximityStrategy) Name() string { return "proximity" }

func (p *ProximityStrategy) Select(tables *goquery.Selection) *goquery.Selection {
	if len(p.Markers) == 0 {
		return nil
	}

	lookback := p.Lookback
	if lookback <= 0 {
		lookback = DefaultLookback
	}

	markers := make([]string, 0, len(p.Markers))
	for _, m := range p.Markers {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			markers = append(markers, m)
		}
	}
	if len(markers) == 0 {
		return nil
	}

	for i, node := range tables.Nodes {
		visited := 0
		for el := previousElement(node); el != nil && visited < lookback; el = previousElement(el) {
			visited++
			if isAncestor(el, node) {
				continue
			}
			if containsAll(strings.ToLower(strings.TrimSpace(nodeText(el))), markers) {
				return tables.Eq(i)
			}
		}
	}

	return nil
}

// ShapeStrategy selects the first table whose header row has at least
// MinColumns cells.
type ShapeStrategy struct {
	MinColumns int
}

func (s *ShapeStrategy) Name() string { return "shape" }

func (s *ShapeStrategy) Select(tables *goquery.Selection) *goquery.Selection {
	minColumns := s.MinColumns
	if minColumns <= 0 {
		minColumns = DefaultMinColumns
	}

	var picked *goquery.Selection
	tables.EachWithBreak(func(_ int, table *goquery.Selection) bool {
		header := table.Find("tr").First()
		if header.Children().Filter("td, th").Length() >= minColumns {
			picked = table
			return false
		}
		return true
	})

	return picked
}

// previousElement steps back one element in document order: the previous
// sibling's deepest last descendant, else the parent. Non-element nodes are
// skipped.
func previousElement(n *html.Node) *html.Node {
	for {
		n = previousNode(n)
		if n == nil || n.Type == html.ElementNode {
			return n
		}
	}
}

func previousNode(n *html.Node) *html.Node {
	if n.PrevSibling == nil {
		return n.Parent
	}
	n = n.PrevSibling
	for n.LastChild != nil {
		n = n.LastChild
	}
	return n
}

func isAncestor(a, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func containsAll(text string, markers []string) bool {
	for _, m := range markers {
		if !strings.Contains(text, m) {
			return false
		}
	}
	return true
}
