package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamsOf(rows []RankingRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Team)
	}
	return out
}

func TestBuildRankingViews(t *testing.T) {
	r := sampleLeague()

	cases := []struct {
		name  string
		venue VenueFilter
		key   SortKey
		want  []string
	}{
		{"points", AllVenues, ByPoints, []string{"Bahia", "Grêmio", "Flamengo", "Santos"}},
		{"attack", AllVenues, ByGoalsScored, []string{"Flamengo", "Grêmio", "Bahia", "Santos"}},
		{"defense", AllVenues, ByGoalsConceded, []string{"Bahia", "Grêmio", "Flamengo", "Santos"}},
		{"home points", HomeOnly, ByPoints, []string{"Bahia", "Flamengo", "Grêmio", "Santos"}},
		{"away points", AwayOnly, ByPoints, []string{"Grêmio", "Bahia", "Flamengo", "Santos"}},
		{"ppg", AllVenues, ByPointsPerGame, []string{"Bahia", "Grêmio", "Flamengo", "Santos"}},
		{"gpg", AllVenues, ByGoalsPerGame, []string{"Flamengo", "Grêmio", "Bahia", "Santos"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows := BuildRanking(r, tc.venue, tc.key)
			assert.Equal(t, tc.want, teamsOf(rows))
			for i, row := range rows {
				assert.Equal(t, i+1, row.Position)
			}
		})
	}
}

func TestRankingTieBreakOnGoalDifference(t *testing.T) {
	r := NewRelation([]Match{
		row(1, 0, "Beta", "Gamma", 1, 0, Home),
		row(2, 0, "Beta", "Delta", 0, 1, Away),
		row(1, 0, "Alpha", "Delta", 3, 0, Home),
		row(2, 0, "Alpha", "Gamma", 0, 1, Away),
	})
	rows := BuildRanking(r, AllVenues, ByPoints)
	require.Len(t, rows, 4)
	assert.Equal(t, 1, PositionOf(rows, "Alpha"))
	assert.Equal(t, 2, PositionOf(rows, "Beta"))
}

func TestRankingTieBreakOnWinsBeforeGoalDifference(t *testing.T) {
	// Draws is 3 draws (3 pts, 0 wins); Winner is 1 win, 2 losses (3 pts, 1 win, worse GD).
	r := NewRelation([]Match{
		row(1, 0, "Draws", "X", 0, 0, Home),
		row(2, 0, "Draws", "Y", 0, 0, Home),
		row(3, 0, "Draws", "Z", 0, 0, Home),
		row(1, 0, "Winner", "Y", 1, 0, Home),
		row(2, 0, "Winner", "Z", 0, 3, Home),
		row(3, 0, "Winner", "X", 0, 3, Home),
	})
	rows := BuildRanking(r, AllVenues, ByPoints)
	assert.Less(t, PositionOf(rows, "Winner"), PositionOf(rows, "Draws"))
}

func TestRankingRatioKeysCompareExactly(t *testing.T) {
	// Two points per game each (4/2 and 6/3); Wide has more wins.
	r := NewRelation([]Match{
		row(1, 0, "Narrow", "O", 1, 0, Home),
		row(2, 0, "Narrow", "O", 1, 1, Home),
		row(1, 0, "Wide", "P", 1, 0, Home),
		row(2, 0, "Wide", "P", 1, 0, Home),
		row(3, 0, "Wide", "P", 0, 1, Home),
	})
	narrow := SummarizeTeam(r, "Narrow", AllVenues)
	wide := SummarizeTeam(r, "Wide", AllVenues)
	require.Equal(t, 0, compareRatio(narrow.Points, narrow.Games, wide.Points, wide.Games))

	rows := BuildRanking(r, AllVenues, ByPointsPerGame)
	assert.Equal(t, []string{"Wide", "Narrow"}, teamsOf(rows)[:2])
}

func TestRankingKeepsTeamsWithoutMatches(t *testing.T) {
	r := NewRelation([]Match{
		row(1, 0, "Hosts", "Visitors", 2, 1, Home),
		row(2, 0, "Hosts", "Visitors", 0, 0, Home),
	})
	for _, key := range SortKeys {
		for _, venue := range []VenueFilter{AllVenues, HomeOnly, AwayOnly} {
			rows := BuildRanking(r, venue, key)
			assert.Len(t, rows, 2, "%s %s", key, venue)
		}
	}

	home := BuildRanking(r, HomeOnly, ByPoints)
	assert.Equal(t, "Visitors", home[1].Team)
	assert.Zero(t, home[1].Games)
	assert.Zero(t, home[1].Points)
}

func TestRankingStableForFullTies(t *testing.T) {
	r := NewRelation([]Match{
		row(1, 0, "Ceará", "Avaí", 1, 1, Home),
		row(1, 0, "Avaí", "Ceará", 1, 1, Away),
	})
	rows := BuildRanking(r, AllVenues, ByPoints)
	assert.Equal(t, []string{"Avaí", "Ceará"}, teamsOf(rows))
}

func TestBuildRankingEmptyRelation(t *testing.T) {
	assert.Empty(t, BuildRanking(Empty(), AllVenues, ByPoints))
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("Defesa")
	require.NoError(t, err)
	assert.Equal(t, ByGoalsConceded, k)

	k, err = ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, ByPoints, k)

	_, err = ParseSortKey("possession")
	assert.Error(t, err)
}
