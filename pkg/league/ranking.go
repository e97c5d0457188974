package league

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey selects the primary ordering of a ranking.
type SortKey string

const (
	ByPoints        SortKey = "points"
	ByGoalsScored   SortKey = "attack"
	ByGoalsConceded SortKey = "defense"
	ByPointsPerGame SortKey = "ppg"
	ByGoalsPerGame  SortKey = "gpg"
)

var SortKeys = []SortKey{ByPoints, ByGoalsScored, ByGoalsConceded, ByPointsPerGame, ByGoalsPerGame}

func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "points", "pontos", "general", "geral":
		return ByPoints, nil
	case "attack", "goals", "goalsscored", "ataque":
		return ByGoalsScored, nil
	case "defense", "defence", "conceded", "goalsconceded", "defesa":
		return ByGoalsConceded, nil
	case "ppg", "pointspergame", "ppj":
		return ByPointsPerGame, nil
	case "gpg", "goalspergame", "gpj":
		return ByGoalsPerGame, nil
	}
	return "", fmt.Errorf("unknown ranking sort key %q (want one of %v)", s, SortKeys)
}

// RankingRow is a TeamSummary with its 1-based position.
type RankingRow struct {
	Position int `json:"position"`
	TeamSummary
}

// compareRatio orders a/b against c/d without floating point, treating x/0 as 0.
func compareRatio(a, b, c, d int) int {
	if b == 0 {
		a, b = 0, 1
	}
	if d == 0 {
		c, d = 0, 1
	}
	l, r := a*d, c*b
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// primary returns >0 when a should rank above b on the primary key alone.
func (k SortKey) primary(a, b TeamSummary) int {
	switch k {
	case ByGoalsScored:
		return compareInt(a.GoalsScored, b.GoalsScored)
	case ByGoalsConceded:
		return compareInt(b.GoalsConceded, a.GoalsConceded)
	case ByPointsPerGame:
		return compareRatio(a.Points, a.Games, b.Points, b.Games)
	case ByGoalsPerGame:
		return compareRatio(a.GoalsScored, a.Games, b.GoalsScored, b.Games)
	default:
		return compareInt(a.Points, b.Points)
	}
}

// ranksAbove applies the primary key and then wins, goal difference and goals scored.
func (k SortKey) ranksAbove(a, b TeamSummary) bool {
	for _, c := range []int{
		k.primary(a, b),
		compareInt(a.Wins, b.Wins),
		compareInt(a.GoalDiff, b.GoalDiff),
		compareInt(a.GoalsScored, b.GoalsScored),
	} {
		if c != 0 {
			return c > 0
		}
	}
	return false
}

// BuildRanking summarises every team in the relation under the venue filter and orders them
// by key. Teams that still tie keep their collated name order.
func BuildRanking(r *Relation, venue VenueFilter, key SortKey) []RankingRow {
	teams := r.Teams()
	rows := make([]RankingRow, 0, len(teams))
	for _, team := range teams {
		rows = append(rows, RankingRow{TeamSummary: SummarizeTeam(r, team, venue)})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return key.ranksAbove(rows[i].TeamSummary, rows[j].TeamSummary)
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

// PositionOf returns the team's 1-based position in rows, or 0 if absent.
func PositionOf(rows []RankingRow, team string) int {
	for _, row := range rows {
		if row.Team == team {
			return row.Position
		}
	}
	return 0
}
