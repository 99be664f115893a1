package scraper

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func headerRow(cols int) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for i := 0; i < cols; i++ {
		b.WriteString("<th>c</th>")
	}
	b.WriteString("</tr>")
	return b.String()
}

func defaultLocator() *Locator {
	return NewDefaultLocator([]string{"ПЕРВАЯ", "лига"}, DefaultLookback, DefaultMinColumns)
}

func TestLocate_ProximityBeatsShape(t *testing.T) {
	page := `<html><body>
		<table id="wide">` + headerRow(12) + `</table>
		<h2>2024 ПЕРВАЯ лига итоги</h2>
		<table id="first">` + headerRow(4) + `</table>
	</body></html>`

	table, err := defaultLocator().Locate(mustDoc(t, page))
	require.NoError(t, err)

	id, _ := table.Attr("id")
	assert.Equal(t, "first", id)
}

func TestLocate_ProximityCaseInsensitive(t *testing.T) {
	page := `<html><body>
		<p>Первая Лига</p>
		<table id="t1">` + headerRow(3) + `</table>
	</body></html>`

	table, err := defaultLocator().Locate(mustDoc(t, page))
	require.NoError(t, err)

	id, _ := table.Attr("id")
	assert.Equal(t, "t1", id)
}

func TestLocate_ProximityRequiresAllMarkers(t *testing.T) {
	page := `<html><body>
		<h2>ПЕРВАЯ группа</h2>
		<table id="t1">` + headerRow(3) + `</table>
	</body></html>`

	_, err := defaultLocator().Locate(mustDoc(t, page))
	assert.True(t, errors.Is(err, ErrTableNotFound))
}

func TestLocate_ProximityLookbackLimit(t *testing.T) {
	// six elements sit between the heading and the table
	page := `<html><body>
		<h2>ПЕРВАЯ лига</h2>
		<p>a</p><p>b</p><p>c</p><p>d</p><p>e</p><p>f</p>
		<table id="far">` + headerRow(3) + `</table>
	</body></html>`

	_, err := defaultLocator().Locate(mustDoc(t, page))
	assert.True(t, errors.Is(err, ErrTableNotFound))

	loc := NewDefaultLocator([]string{"ПЕРВАЯ", "лига"}, 7, DefaultMinColumns)
	table, err := loc.Locate(mustDoc(t, page))
	require.NoError(t, err)
	id, _ := table.Attr("id")
	assert.Equal(t, "far", id)
}

func TestLocate_ProximityWalksIntoPreviousSubtree(t *testing.T) {
	// the marker sits in the deepest last descendant of the previous sibling
	page := `<html><body>
		<div class="header"><div><span>ВТОРАЯ лига</span><span>ПЕРВАЯ лига</span></div></div>
		<table id="t1">` + headerRow(3) + `</table>
	</body></html>`

	table, err := defaultLocator().Locate(mustDoc(t, page))
	require.NoError(t, err)
	id, _ := table.Attr("id")
	assert.Equal(t, "t1", id)
}

func TestLocate_ProximityIgnoresAncestorText(t *testing.T) {
	// the wrapper's text contains the markers only because of what follows the table
	page := `<html><body><div id="wrap"><table id="inner">` + headerRow(3) + `</table><p>ПЕРВАЯ лига</p></div></body></html>`

	_, err := defaultLocator().Locate(mustDoc(t, page))
	assert.True(t, errors.Is(err, ErrTableNotFound))
}

func TestLocate_FirstProximityMatchWins(t *testing.T) {
	page := `<html><body>
		<h3>ПЕРВАЯ лига</h3>
		<table id="one">` + headerRow(3) + `</table>
		<h3>ПЕРВАЯ лига (женщины)</h3>
		<table id="two">` + headerRow(10) + `</table>
	</body></html>`

	table, err := defaultLocator().Locate(mustDoc(t, page))
	require.NoError(t, err)
	id, _ := table.Attr("id")
	assert.Equal(t, "one", id)
}

func TestLocate_ShapeFallback(t *testing.T) {
	page := `<html><body>
		<table id="narrow">` + headerRow(3) + `</table>
		<table id="wide">` + headerRow(9) + `</table>
		<table id="wider">` + headerRow(11) + `</table>
	</body></html>`

	table, err := defaultLocator().Locate(mustDoc(t, page))
	require.NoError(t, err)
	id, _ := table.Attr("id")
	assert.Equal(t, "wide", id)
}

func TestLocate_ShapeCountsTdHeaders(t *testing.T) {
	page := `<html><body>
		<table id="td"><tr><td>1</td><td>2</td><td>3</td><td>4</td><td>5</td><td>6</td><td>7</td><td>8</td></tr></table>
	</body></html>`

	table, err := defaultLocator().Locate(mustDoc(t, page))
	require.NoError(t, err)
	id, _ := table.Attr("id")
	assert.Equal(t, "td", id)
}

func TestLocate_NotFound(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{"no tables", `<html><body><h2>ПЕРВАЯ лига</h2><p>Скоро</p></body></html>`},
		{"only narrow tables", `<html><body><table>` + headerRow(5) + `</table></body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := defaultLocator().Locate(mustDoc(t, tt.page))
			assert.Nil(t, table)
			assert.True(t, errors.Is(err, ErrTableNotFound))
		})
	}
}

type fixedStrategy struct {
	index int
}

func (f fixedStrategy) Name() string { return "fixed" }

func (f fixedStrategy) Select(tables *goquery.Selection) *goquery.Selection {
	if f.index >= tables.Length() {
		return nil
	}
	return tables.Eq(f.index)
}

func TestLocate_StrategiesAskedInOrder(t *testing.T) {
	page := `<html><body>
		<table id="a">` + headerRow(9) + `</table>
		<table id="b">` + headerRow(2) + `</table>
	</body></html>`

	loc := NewLocator(fixedStrategy{index: 5}, fixedStrategy{index: 1}, &ShapeStrategy{})
	table, err := loc.Locate(mustDoc(t, page))
	require.NoError(t, err)
	id, _ := table.Attr("id")
	assert.Equal(t, "b", id)
}
