package resources

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richard-senior/leaguestats/pkg/dashboard"
	"github.com/richard-senior/leaguestats/pkg/league"
	"github.com/richard-senior/leaguestats/pkg/protocol"
)

type fixedTables struct{ rel *league.Relation }

func (f fixedTables) Relation() (*league.Relation, string) { return f.rel, "" }

func catalog() *Catalog {
	rel := league.NewRelation([]league.Match{
		{Order: 1, Position: 1, Team1: "Fortaleza", Team2: "Ceará", Goals1: 1, Goals2: 0, Outcome: league.Win, Venue: league.Home},
		{Order: 1, Position: 2, Team1: "Ceará", Team2: "Fortaleza", Goals1: 0, Goals2: 1, Outcome: league.Loss, Venue: league.Away},
	})
	return NewCatalog(dashboard.New(fixedTables{rel}, nil, 3))
}

func TestGetResources(t *testing.T) {
	list := catalog().GetResources()
	require.Len(t, list, 1+len(league.SortKeys))
	assert.Equal(t, "leaguestats://teams", list[0].URI)
	assert.Equal(t, "leaguestats://ranking/points", list[1].URI)
}

func TestRead(t *testing.T) {
	res, err := catalog().Read("leaguestats://teams")
	require.NoError(t, err)
	assert.Equal(t, "- Ceará\n- Fortaleza", res.Contents[0].Text)

	res, err = catalog().Read("leaguestats://ranking/defense")
	require.NoError(t, err)
	assert.Contains(t, res.Contents[0].Text, "Best defense")

	for _, uri := range []string{"leaguestats://ranking/pontos", "leaguestats://ranking/luck", "file:///etc/passwd"} {
		_, err = catalog().Read(uri)
		var rpc *protocol.JsonRpcError
		require.True(t, errors.As(err, &rpc), uri)
		assert.Equal(t, protocol.ErrResourceNotFound, rpc.Code)
	}
}
