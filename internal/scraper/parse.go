package scraper

import (
	"fmt"
	"strconv"
	"strings"

	"clubsite/backend/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// MinCells is the number of cells a data row needs
const MinCells = 9

// Column order of the league table
const (
	colPosition = iota
	colTeam
	colGames
	colWins
	colDraws
	colLosses
	colGoalsFor
	colGoalsAgainst
	colPoints
)

// Reason says why a row was skipped
type Reason string

const (
	ReasonTooFewCells Reason = "too_few_cells"
	ReasonEmptyTeam   Reason = "empty_team"
	ReasonHeaderLike  Reason = "header_like"
	ReasonMalformed   Reason = "malformed"
)

// RowError describes one skipped data row. Index is 0-based among data rows.
type RowError struct {
	Index  int
	Reason Reason
	Cells  int
	Detail string
}

func (e RowError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("row %d: %s: %s", e.Index, e.Reason, e.Detail)
	}
	return fmt.Sprintf("row %d: %s (%d cells)", e.Index, e.Reason, e.Cells)
}

// RowResult is the outcome of parsing one data row; Err is nil on success
type RowResult struct {
	Index int
	Row   models.StandingsRow
	Err   *RowError
}

// Parser turns a located table into standings rows
type Parser struct{}

// NewParser returns a Parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the accepted rows in table order plus the rows it skipped
func (p *Parser) Parse(table *goquery.Selection) ([]models.StandingsRow, []RowError) {
	results := p.ParseRows(table)

	rows := make([]models.StandingsRow, 0, len(results))
	var skipped []RowError
	for _, r := range results {
		if r.Err != nil {
			skipped = append(skipped, *r.Err)
			continue
		}
		rows = append(rows, r.Row)
	}

	return rows, skipped
}

// ParseRows returns one result per data row. The first row is the header
// and is never parsed.
func (p *Parser) ParseRows(table *goquery.Selection) []RowResult {
	trs := table.Find("tr")
	if trs.Length() <= 1 {
		return nil
	}

	results := make([]RowResult, 0, trs.Length()-1)
	trs.Slice(1, trs.Length()).Each(func(idx int, tr *goquery.Selection) {
		results = append(results, parseRow(idx, tr))
	})

	return results
}

func parseRow(idx int, tr *goquery.Selection) (res RowResult) {
	res.Index = idx
	defer func() {
		if r := recover(); r != nil {
			res.Row = models.StandingsRow{}
			res.Err = &RowError{Index: idx, Reason: ReasonMalformed, Detail: fmt.Sprint(r)}
		}
	}()

	cells := tr.Find("td, th")
	if cells.Length() < MinCells {
		res.Err = &RowError{Index: idx, Reason: ReasonTooFewCells, Cells: cells.Length()}
		return res
	}

	text := make([]string, cells.Length())
	cells.Each(func(i int, c *goquery.Selection) {
		text[i] = strings.TrimSpace(c.Text())
	})

	team := text[colTeam]
	switch {
	case team == "":
		res.Err = &RowError{Index: idx, Reason: ReasonEmptyTeam, Cells: len(text)}
		return res
	case strings.HasPrefix(team, "#"):
		res.Err = &RowError{Index: idx, Reason: ReasonHeaderLike, Cells: len(text)}
		return res
	}

	position, ok := parseCount(text[colPosition])
	if !ok || position <= 0 {
		position = idx + 1
	}

	goalsFor := count(text[colGoalsFor])
	goalsAgainst := count(text[colGoalsAgainst])

	res.Row = models.StandingsRow{
		Position:       position,
		Team:           team,
		Games:          count(text[colGames]),
		Wins:           count(text[colWins]),
		Draws:          count(text[colDraws]),
		Losses:         count(text[colLosses]),
		GoalsFor:       goalsFor,
		GoalsAgainst:   goalsAgainst,
		GoalDifference: goalsFor - goalsAgainst,
		Points:         count(text[colPoints]),
	}
	return res
}

// parseCount accepts only plain decimal digits
func parseCount(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func count(s string) int {
	n, _ := parseCount(s)
	return n
}
