package league

import (
	"fmt"
	"sort"
)

// Meeting is a head-to-head game seen from the requesting team.
type Meeting struct {
	Perspective
	Score string `json:"score"`
	Color string `json:"color"`
}

// HeadToHead lists every game between team and opponent, newest first, from team's side. The
// games come from team's own rows, so a fixture stored once per participant is counted once.
func HeadToHead(r *Relation, team, opponent string) []Meeting {
	out := []Meeting{}
	if team == "" || opponent == "" || team == opponent {
		return out
	}
	for _, p := range r.TeamPerspectives(team) {
		if p.Opponent != opponent {
			continue
		}
		out = append(out, Meeting{
			Perspective: p,
			Score:       fmt.Sprintf("%d x %d", p.GoalsFor, p.GoalsAgainst),
			Color:       p.Outcome.Color(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order > out[j].Order })
	return out
}
