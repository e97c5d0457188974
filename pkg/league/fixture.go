package league

import "sort"

// Fixture is a single game between two teams, independent of which side's row it came from.
// TeamA is whichever participant's row was seen first.
type Fixture struct {
	Order     int     `json:"order"`
	TeamA     string  `json:"teamA"`
	TeamB     string  `json:"teamB"`
	GoalsA    int     `json:"goalsA"`
	GoalsB    int     `json:"goalsB"`
	VenueA    Venue   `json:"venueA"`
	OutcomeA  Outcome `json:"outcomeA"`
	PositionA int     `json:"positionA,omitempty"`
	PositionB int     `json:"positionB,omitempty"`
}

// Perspective is a fixture projected onto one participant.
type Perspective struct {
	Order        int     `json:"order"`
	Team         string  `json:"team"`
	Opponent     string  `json:"opponent"`
	Venue        Venue   `json:"venue"`
	GoalsFor     int     `json:"goalsFor"`
	GoalsAgainst int     `json:"goalsAgainst"`
	Outcome      Outcome `json:"outcome"`
	// Position is the team's league position at the time, 0 when the source did not carry it.
	Position int `json:"positionAtTime"`
}

// PerspectiveOf views the fixture from team's side. ok is false when team did not play in it.
func PerspectiveOf(f Fixture, team string) (Perspective, bool) {
	switch team {
	case f.TeamA:
		return Perspective{
			Order:        f.Order,
			Team:         f.TeamA,
			Opponent:     f.TeamB,
			Venue:        f.VenueA,
			GoalsFor:     f.GoalsA,
			GoalsAgainst: f.GoalsB,
			Outcome:      f.OutcomeA,
			Position:     f.PositionA,
		}, true
	case f.TeamB:
		return Perspective{
			Order:        f.Order,
			Team:         f.TeamB,
			Opponent:     f.TeamA,
			Venue:        f.VenueA.Opposite(),
			GoalsFor:     f.GoalsB,
			GoalsAgainst: f.GoalsA,
			Outcome:      f.OutcomeA.Invert(),
			Position:     f.PositionB,
		}, true
	}
	return Perspective{}, false
}

func fixtureFromMatch(m Match) Fixture {
	return Fixture{
		Order:     m.Order,
		TeamA:     m.Team1,
		TeamB:     m.Team2,
		GoalsA:    m.Goals1,
		GoalsB:    m.Goals2,
		VenueA:    m.Venue,
		OutcomeA:  m.Outcome,
		PositionA: m.Position,
	}
}

type fixtureKey struct {
	order  int
	first  string
	second string
}

func keyOf(order int, a, b string) fixtureKey {
	if b < a {
		a, b = b, a
	}
	return fixtureKey{order: order, first: a, second: b}
}

// Fixtures collapses the table into one fixture per (order, team pair). When both participants
// have a row for the same game under the same order, the first row defines the fixture and the
// mirror row only contributes the second team's league position. Mirror rows numbered
// differently stay separate fixtures; per-team views use TeamPerspectives instead.
func (r *Relation) Fixtures() []Fixture {
	if r == nil {
		return nil
	}
	index := map[fixtureKey]int{}
	var out []Fixture
	for _, m := range r.rows {
		k := keyOf(m.Order, m.Team1, m.Team2)
		if i, ok := index[k]; ok {
			if out[i].TeamB == m.Team1 && out[i].PositionB == 0 {
				out[i].PositionB = m.Position
			}
			continue
		}
		index[k] = len(out)
		out = append(out, fixtureFromMatch(m))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// TeamPerspectives returns one entry per distinct order for team, ascending. Rows where the team
// is team1 are authoritative and the first occurrence wins on duplicate orders. Only a team with
// no team1 rows at all is projected from its opponents' rows, since mirror rows need not share
// the team's own order numbering.
func (r *Relation) TeamPerspectives(team string) []Perspective {
	if r == nil || team == "" {
		return []Perspective{}
	}
	out := perspectives(r.rows, team, func(m Match) bool { return m.Team1 == team })
	if len(out) == 0 {
		out = perspectives(r.rows, team, func(m Match) bool { return m.Team2 == team })
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func perspectives(rows []Match, team string, keep func(Match) bool) []Perspective {
	taken := map[int]bool{}
	out := []Perspective{}
	for _, m := range rows {
		if !keep(m) || taken[m.Order] {
			continue
		}
		taken[m.Order] = true
		p, _ := PerspectiveOf(fixtureFromMatch(m), team)
		out = append(out, p)
	}
	return out
}
