package league

// MatchMetrics is one of a team's matches enriched with running totals.
type MatchMetrics struct {
	Order              int     `json:"order"`
	Position           int     `json:"positionAtTime"`
	Opponent           string  `json:"opponent"`
	Venue              Venue   `json:"venue"`
	Outcome            Outcome `json:"outcome"`
	GoalsScored        int     `json:"goalsScored"`
	GoalsConceded      int     `json:"goalsConceded"`
	GoalDifferential   int     `json:"goalDifferential"`
	Points             int     `json:"points"`
	CumulativePoints   int     `json:"cumulativePoints"`
	CumulativeGoalDiff int     `json:"cumulativeGoalDiff"`
}

// GoalDiffTrend labels the running goal difference for charts. Zero counts as positive.
func (m MatchMetrics) GoalDiffTrend() string {
	if m.CumulativeGoalDiff >= 0 {
		return "positive"
	}
	return "negative"
}

// TeamMatches returns the team's matches in ascending order with derived and cumulative fields.
// An unknown team or an empty relation yields an empty, non-nil slice.
func TeamMatches(r *Relation, team string) []MatchMetrics {
	perspectives := r.TeamPerspectives(team)
	out := make([]MatchMetrics, 0, len(perspectives))
	points, diff := 0, 0
	for _, p := range perspectives {
		gd := p.GoalsFor - p.GoalsAgainst
		pts := p.Outcome.Points()
		points += pts
		diff += gd
		out = append(out, MatchMetrics{
			Order:              p.Order,
			Position:           p.Position,
			Opponent:           p.Opponent,
			Venue:              p.Venue,
			Outcome:            p.Outcome,
			GoalsScored:        p.GoalsFor,
			GoalsConceded:      p.GoalsAgainst,
			GoalDifferential:   gd,
			Points:             pts,
			CumulativePoints:   points,
			CumulativeGoalDiff: diff,
		})
	}
	return out
}

// FilterVenue keeps the matches played at the given venue, preserving order.
func FilterVenue(matches []MatchMetrics, venue VenueFilter) []MatchMetrics {
	if venue == AllVenues {
		return matches
	}
	out := make([]MatchMetrics, 0, len(matches))
	for _, m := range matches {
		if venue.Allows(m.Venue) {
			out = append(out, m)
		}
	}
	return out
}
