package scraper

import (
	"fmt"
	"strings"
	"testing"

	"clubsite/backend/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standingsHeader = `<tr><th>#</th><th>Команда</th><th>И</th><th>В</th><th>Н</th><th>П</th><th>ЗМ</th><th>ПМ</th><th>О</th></tr>`

func row(cells ...string) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, c := range cells {
		b.WriteString("<td>" + c + "</td>")
	}
	b.WriteString("</tr>")
	return b.String()
}

func mustTable(t *testing.T, rows ...string) *goquery.Selection {
	t.Helper()
	page := "<html><body><table>" + standingsHeader + strings.Join(rows, "") + "</table></body></html>"
	doc := mustDoc(t, page)
	table := doc.Find("table").First()
	require.Equal(t, 1, table.Length())
	return table
}

func TestParse_FullRow(t *testing.T) {
	table := mustTable(t, row("1", "Александрия", "10", "7", "2", "1", "21", "8", "23"))

	rows, skipped := NewParser().Parse(table)
	require.Len(t, rows, 1)
	assert.Empty(t, skipped)

	assert.Equal(t, models.StandingsRow{
		Position:       1,
		Team:           "Александрия",
		Games:          10,
		Wins:           7,
		Draws:          2,
		Losses:         1,
		GoalsFor:       21,
		GoalsAgainst:   8,
		GoalDifference: 13,
		Points:         23,
	}, rows[0])
}

func TestParse_GoalDifferenceDerived(t *testing.T) {
	// a goal difference column on the page is ignored
	table := mustTable(t, row("3", "Team", "5", "1", "1", "3", "10", "4", "4", "-99"))

	rows, _ := NewParser().Parse(table)
	require.Len(t, rows, 1)
	assert.Equal(t, 6, rows[0].GoalDifference)
	assert.Equal(t, 4, rows[0].Points)
}

func TestParse_NonNumericPositionUsesOrdinal(t *testing.T) {
	table := mustTable(t,
		row("1", "A", "1", "1", "0", "0", "2", "0", "3"),
		row("2", "B", "1", "1", "0", "0", "2", "0", "3"),
		row("—", "C", "1", "0", "0", "1", "0", "2", "0"),
		row("0", "D", "1", "0", "0", "1", "0", "2", "0"),
	)

	rows, skipped := NewParser().Parse(table)
	require.Len(t, rows, 4)
	assert.Empty(t, skipped)

	assert.Equal(t, 3, rows[2].Position)
	assert.Equal(t, 4, rows[3].Position)
}

func TestParse_NonNumericCellsDefaultToZero(t *testing.T) {
	table := mustTable(t, row("1", "Team", "n/a", "-2", "", "1.5", "x", "3", "?"))

	rows, skipped := NewParser().Parse(table)
	require.Len(t, rows, 1)
	assert.Empty(t, skipped)

	r := rows[0]
	assert.Equal(t, 0, r.Games)
	assert.Equal(t, 0, r.Wins)
	assert.Equal(t, 0, r.Draws)
	assert.Equal(t, 0, r.Losses)
	assert.Equal(t, 0, r.GoalsFor)
	assert.Equal(t, 3, r.GoalsAgainst)
	assert.Equal(t, -3, r.GoalDifference)
	assert.Equal(t, 0, r.Points)
}

func TestParse_EmptyTeamExcluded(t *testing.T) {
	table := mustTable(t,
		row("1", "A", "1", "1", "0", "0", "2", "0", "3"),
		row("2", "   ", "1", "1", "0", "0", "2", "0", "3"),
	)

	rows, skipped := NewParser().Parse(table)
	require.Len(t, rows, 1)
	require.Len(t, skipped, 1)
	assert.Equal(t, ReasonEmptyTeam, skipped[0].Reason)
	assert.Equal(t, 1, skipped[0].Index)
}

func TestParse_HashTeamExcluded(t *testing.T) {
	table := mustTable(t,
		row("#", "#Команда", "И", "В", "Н", "П", "ЗМ", "ПМ", "О"),
		row("1", "A", "1", "1", "0", "0", "2", "0", "3"),
	)

	rows, skipped := NewParser().Parse(table)
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].Team)
	require.Len(t, skipped, 1)
	assert.Equal(t, ReasonHeaderLike, skipped[0].Reason)
}

func TestParse_ShortRowDoesNotFailTable(t *testing.T) {
	var rows []string
	for i := 1; i <= 10; i++ {
		if i == 3 {
			rows = append(rows, row("3", "Short", "1", "1", "0"))
			continue
		}
		rows = append(rows, row(fmt.Sprint(i), fmt.Sprintf("Team %d", i), "1", "1", "0", "0", "1", "0", "3"))
	}

	parsed, skipped := NewParser().Parse(mustTable(t, rows...))
	require.Len(t, parsed, 9)
	require.Len(t, skipped, 1)
	assert.Equal(t, ReasonTooFewCells, skipped[0].Reason)
	assert.Equal(t, 2, skipped[0].Index)
	assert.Equal(t, 5, skipped[0].Cells)

	for _, r := range parsed {
		assert.NotEqual(t, "Short", r.Team)
	}
}

func TestParse_KeepsTableOrder(t *testing.T) {
	table := mustTable(t,
		row("3", "C", "1", "0", "0", "1", "0", "1", "0"),
		row("1", "A", "1", "1", "0", "0", "1", "0", "3"),
		row("2", "B", "1", "0", "1", "0", "0", "0", "1"),
	)

	rows, _ := NewParser().Parse(table)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{rows[0].Team, rows[1].Team, rows[2].Team})
}

func TestParse_MixedCellTags(t *testing.T) {
	page := `<html><body><table>` + standingsHeader +
		`<tr><th>1</th><th>A</th><td>2</td><td>1</td><td>1</td><td>0</td><td>4</td><td>2</td><td>4</td></tr>` +
		`</table></body></html>`

	rows, skipped := NewParser().Parse(mustDoc(t, page).Find("table"))
	require.Len(t, rows, 1)
	assert.Empty(t, skipped)
	assert.Equal(t, "A", rows[0].Team)
	assert.Equal(t, 4, rows[0].Points)
}

func TestParse_HeaderOnly(t *testing.T) {
	rows, skipped := NewParser().Parse(mustTable(t))
	assert.Empty(t, rows)
	assert.Empty(t, skipped)
}

func TestParseRows_OneResultPerDataRow(t *testing.T) {
	table := mustTable(t,
		row("1", "A", "1", "1", "0", "0", "2", "0", "3"),
		row("2"),
		row("3", "", "1", "1", "0", "0", "2", "0", "3"),
	)

	results := NewParser().ParseRows(table)
	require.Len(t, results, 3)

	assert.Nil(t, results[0].Err)
	require.NotNil(t, results[1].Err)
	assert.Equal(t, ReasonTooFewCells, results[1].Err.Reason)
	require.NotNil(t, results[2].Err)
	assert.Equal(t, ReasonEmptyTeam, results[2].Err.Reason)

	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}
}

func TestRowError_Error(t *testing.T) {
	err := RowError{Index: 4, Reason: ReasonTooFewCells, Cells: 5}
	assert.Equal(t, "row 4: too_few_cells (5 cells)", err.Error())
}
