package source

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"github.com/richard-senior/leaguestats/internal/logger"
	"github.com/richard-senior/leaguestats/pkg/league"
	"github.com/richard-senior/leaguestats/pkg/util"
)

type column int

const (
	colOrder column = iota
	colPosition
	colTeam1
	colTeam2
	colGoals1
	colGoals2
	colOutcome
	colVenue
	numColumns
)

var columnNames = [numColumns]string{
	"order", "position_at_time", "team1", "team2", "goals1", "goals2", "outcome", "venue",
}

// headerAliases maps normalised header text to a column. Both the Portuguese spreadsheet
// headers and the English names are accepted.
var headerAliases = map[string]column{
	"ordemjogo":      colOrder,
	"ordem":          colOrder,
	"order":          colOrder,
	"rodada":         colOrder,
	"round":          colOrder,
	"posicaojogo":    colPosition,
	"posicao":        colPosition,
	"positionattime": colPosition,
	"position":       colPosition,
	"time1":          colTeam1,
	"team1":          colTeam1,
	"team":           colTeam1,
	"time2":          colTeam2,
	"team2":          colTeam2,
	"adversario":     colTeam2,
	"opponent":       colTeam2,
	"gols1":          colGoals1,
	"goals1":         colGoals1,
	"gols2":          colGoals2,
	"goals2":         colGoals2,
	"resultado":      colOutcome,
	"result":         colOutcome,
	"outcome":        colOutcome,
	"local":          colVenue,
	"venue":          colVenue,
}

func normaliseHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	s := slug.Make(h)
	return strings.NewReplacer("-", "", "_", "").Replace(s)
}

// mapHeader finds the index of every required column.
func mapHeader(header []string) ([numColumns]int, error) {
	var idx [numColumns]int
	for i := range idx {
		idx[i] = -1
	}
	for i, h := range header {
		if c, ok := headerAliases[normaliseHeader(h)]; ok && idx[c] < 0 {
			idx[c] = i
		}
	}
	var missing []string
	for c, i := range idx {
		if i < 0 {
			missing = append(missing, columnNames[c])
		}
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("%w: missing column(s) %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return idx, nil
}

func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// vocabulary decides how single-letter outcome codes are read: V/E/D (where D is a defeat)
// or W/D/L (where D is a draw).
type vocabulary int

const (
	vocabUnknown vocabulary = iota
	vocabPortuguese
	vocabEnglish
)

func (v vocabulary) parse(s string) (league.Outcome, error) {
	if v == vocabEnglish {
		return league.ParseOutcome(s)
	}
	return league.ParseStoredOutcome(s)
}

func detectVocabulary(records [][]string, col int) vocabulary {
	for _, r := range records {
		switch strings.ToLower(cell(r, col)) {
		case "v", "e", "vitoria", "vitória", "empate", "derrota":
			return vocabPortuguese
		case "w", "l", "win", "loss", "draw":
			return vocabEnglish
		}
	}
	return vocabUnknown
}

// parseRecords converts a header row plus data rows into matches. Entirely blank rows are
// skipped; anything else that cannot be coerced is a schema mismatch.
func parseRecords(header []string, records [][]string) ([]league.Match, error) {
	idx, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	vocab := detectVocabulary(records, idx[colOutcome])
	if vocab == vocabUnknown {
		vocab = resolveAmbiguousVocabulary(records, idx)
	}

	matches := make([]league.Match, 0, len(records))
	for n, record := range records {
		if blank(record) {
			continue
		}
		line := n + 2 // header is line 1
		m, err := parseRecord(record, idx, vocab)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrSchemaMismatch, line, err)
		}
		if !m.Consistent() {
			logger.Warn(fmt.Sprintf("Row %d stores outcome %s for score %d-%d:", line, m.Outcome, m.Goals1, m.Goals2), m.String())
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// resolveAmbiguousVocabulary handles tables whose outcome column only ever says "D": pick
// the reading that agrees with more scores.
func resolveAmbiguousVocabulary(records [][]string, idx [numColumns]int) vocabulary {
	draws, losses := 0, 0
	for _, r := range records {
		g1, err1 := util.GetAsInteger(cell(r, idx[colGoals1]))
		g2, err2 := util.GetAsInteger(cell(r, idx[colGoals2]))
		if err1 != nil || err2 != nil {
			continue
		}
		switch league.OutcomeFromGoals(g1, g2) {
		case league.Draw:
			draws++
		case league.Loss:
			losses++
		}
	}
	if draws > losses {
		return vocabEnglish
	}
	return vocabPortuguese
}

func parseRecord(record []string, idx [numColumns]int, vocab vocabulary) (league.Match, error) {
	var m league.Match
	ints := []struct {
		col column
		dst *int
	}{
		{colOrder, &m.Order},
		{colPosition, &m.Position},
		{colGoals1, &m.Goals1},
		{colGoals2, &m.Goals2},
	}
	for _, f := range ints {
		v, err := util.GetAsInteger(cell(record, idx[f.col]))
		if err != nil {
			return m, fmt.Errorf("column %s: %v", columnNames[f.col], err)
		}
		*f.dst = v
	}
	if m.Goals1 < 0 || m.Goals2 < 0 {
		return m, fmt.Errorf("negative goals %d-%d", m.Goals1, m.Goals2)
	}

	m.Team1 = cell(record, idx[colTeam1])
	m.Team2 = cell(record, idx[colTeam2])
	if m.Team1 == "" || m.Team2 == "" {
		return m, fmt.Errorf("team names must not be empty")
	}

	var err error
	if m.Outcome, err = vocab.parse(cell(record, idx[colOutcome])); err != nil {
		return m, fmt.Errorf("column outcome: %v", err)
	}
	if m.Venue, err = league.ParseVenue(cell(record, idx[colVenue])); err != nil {
		return m, fmt.Errorf("column venue: %v", err)
	}
	return m, nil
}
