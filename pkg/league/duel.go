package league

// DuelSide is one team in a matchup, summarised at the venue it will play.
type DuelSide struct {
	Team            string      `json:"team"`
	Crest           string      `json:"crest,omitempty"`
	Venue           VenueFilter `json:"venue"`
	OverallPosition int         `json:"overallPosition"`
	Summary         TeamSummary `json:"summary"`
	Form            Form        `json:"form"`
	HeadToHead      []Meeting   `json:"headToHead"`
}

// Duel compares a home team's home record with an away team's away record.
type Duel struct {
	Home DuelSide `json:"home"`
	Away DuelSide `json:"away"`
}

// BuildDuel assembles the matchup view. Overall positions come from the points ranking with
// no venue filter; form uses the same venue filter as the side's summary.
func BuildDuel(r *Relation, home, away string, window int) Duel {
	overall := BuildRanking(r, AllVenues, ByPoints)
	side := func(team, opponent string, venue VenueFilter) DuelSide {
		return DuelSide{
			Team:            team,
			Venue:           venue,
			OverallPosition: PositionOf(overall, team),
			Summary:         SummarizeTeam(r, team, venue),
			Form:            RecentForm(r, team, venue, window),
			HeadToHead:      HeadToHead(r, team, opponent),
		}
	}
	return Duel{
		Home: side(home, away, HomeOnly),
		Away: side(away, home, AwayOnly),
	}
}
