package tools

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richard-senior/leaguestats/pkg/crest"
	"github.com/richard-senior/leaguestats/pkg/dashboard"
	"github.com/richard-senior/leaguestats/pkg/league"
	"github.com/richard-senior/leaguestats/pkg/protocol"
)

type fixedTables struct {
	rel *league.Relation
	msg string
}

func (f fixedTables) Relation() (*league.Relation, string) { return f.rel, f.msg }

func toolbox(msg string) *Toolbox {
	m := func(order, pos int, t1, t2 string, g1, g2 int, v league.Venue) league.Match {
		return league.Match{Order: order, Position: pos, Team1: t1, Team2: t2, Goals1: g1, Goals2: g2,
			Outcome: league.OutcomeFromGoals(g1, g2), Venue: v}
	}
	rel := league.NewRelation([]league.Match{
		m(1, 1, "Vasco", "Botafogo", 3, 1, league.Home),
		m(1, 2, "Botafogo", "Vasco", 1, 3, league.Away),
		m(2, 2, "Vasco", "Botafogo", 0, 1, league.Away),
		m(2, 1, "Botafogo", "Vasco", 1, 0, league.Home),
	})
	return NewToolbox(dashboard.New(fixedTables{rel: rel, msg: msg}, crest.NewResolver(nil, "https://placehold.co/x"), 3))
}

func invalidParams(t *testing.T, err error) {
	t.Helper()
	var rpc *protocol.JsonRpcError
	require.True(t, errors.As(err, &rpc), "want a JSON-RPC error, got %v", err)
	assert.Equal(t, protocol.ErrInvalidParams, rpc.Code)
}

func TestEntriesAreUniqueAndDescribed(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range toolbox("").Entries() {
		assert.False(t, seen[e.Tool.Name], e.Tool.Name)
		seen[e.Tool.Name] = true
		assert.NotEmpty(t, e.Tool.Description)
		assert.Equal(t, "object", e.Tool.InputSchema.Type)
		assert.NotNil(t, e.Handle)
	}
	assert.Len(t, seen, 7)
}

func TestListTeams(t *testing.T) {
	out, err := toolbox("").HandleListTeams(nil)
	require.NoError(t, err)
	res := out.(protocol.ToolResult)
	assert.Equal(t, "- Botafogo\n- Vasco", res.Content[0].Text)
}

func TestLeagueRanking(t *testing.T) {
	out, err := toolbox("").HandleLeagueRanking(map[string]any{"sort": "attack", "venue": "home"})
	require.NoError(t, err)
	view := out.(protocol.ToolResult).StructuredContent.(dashboard.View)
	rows := view.Data.(map[string]any)["rows"].([]league.RankingRow)
	require.Len(t, rows, 2)
	assert.Equal(t, "Vasco", rows[0].Team)
	assert.Equal(t, 3, rows[0].GoalsScored)

	_, err = toolbox("").HandleLeagueRanking(map[string]any{"sort": "luck"})
	invalidParams(t, err)
	_, err = toolbox("").HandleLeagueRanking(map[string]any{"venue": 4})
	invalidParams(t, err)
}

func TestRecentForm(t *testing.T) {
	out, err := toolbox("").HandleRecentForm(map[string]any{"team": "vasco", "window": float64(1)})
	require.NoError(t, err)
	form := out.(protocol.ToolResult).StructuredContent.(dashboard.View).Data.(league.Form)
	assert.Equal(t, "L", form.String())

	_, err = toolbox("").HandleRecentForm(map[string]any{"team": "Vasco", "window": 0})
	invalidParams(t, err)
	_, err = toolbox("").HandleRecentForm(map[string]any{"team": "Vasco", "window": 1.5})
	invalidParams(t, err)
	_, err = toolbox("").HandleRecentForm(map[string]any{})
	invalidParams(t, err)
}

func TestHeadToHeadAndDuel(t *testing.T) {
	out, err := toolbox("").HandleHeadToHead(map[string]any{"team": "Botafogo", "opponent": "Vasco"})
	require.NoError(t, err)
	text := out.(protocol.ToolResult).Content[0].Text
	assert.Contains(t, text, "Result: 1 x 0 - Match 2 - home")
	assert.Contains(t, text, "Result: 1 x 3 - Match 1 - away")

	_, err = toolbox("").HandleTeamDuel(map[string]any{"home": "Vasco", "away": "vasco"})
	invalidParams(t, err)

	out, err = toolbox("").HandleTeamDuel(map[string]any{"home": "Vasco", "away": "Botafogo"})
	require.NoError(t, err)
	assert.Contains(t, out.(protocol.ToolResult).Content[0].Text, "# Vasco vs Botafogo")
}

func TestWarningIsPrefixed(t *testing.T) {
	out, err := toolbox("source unavailable").HandleListTeams(nil)
	require.NoError(t, err)
	assert.Contains(t, out.(protocol.ToolResult).Content[0].Text, "> source unavailable")
}

func TestArgumentsMustBeAnObject(t *testing.T) {
	_, err := toolbox("").HandleTeamOverview([]any{"Vasco"})
	invalidParams(t, err)
}
