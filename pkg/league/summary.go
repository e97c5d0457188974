package league

// Record counts wins, draws and losses.
type Record struct {
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

func (r *Record) add(o Outcome) {
	switch o {
	case Win:
		r.Wins++
	case Draw:
		r.Draws++
	case Loss:
		r.Losses++
	}
}

func (r Record) Games() int  { return r.Wins + r.Draws + r.Losses }
func (r Record) Points() int { return r.Wins*PointsWin + r.Draws*PointsDraw }

// WinPercentage is points earned over points available, as a percentage.
func (r Record) WinPercentage() float64 {
	return percentage(r.Points(), r.Games())
}

// TeamSummary aggregates a team's matches, optionally restricted to one venue.
type TeamSummary struct {
	Team          string      `json:"team"`
	Venue         VenueFilter `json:"venue"`
	Points        int         `json:"points"`
	Games         int         `json:"games"`
	Record                    // overall W/D/L
	Home          Record      `json:"home"`
	Away          Record      `json:"away"`
	GoalsScored   int         `json:"goalsScored"`
	GoalsConceded int         `json:"goalsConceded"`
	GoalDiff      int         `json:"goalDiff"`
	WinPercentage float64     `json:"winPercentage"`
	PointsPerGame float64     `json:"pointsPerGame"`
	GoalsPerGame  float64     `json:"goalsPerGame"`
	// ConcededPerGame is not a ranking key but the matchup view shows it.
	ConcededPerGame float64 `json:"concededPerGame"`
}

// Summarize folds a team's matches into totals after applying the venue filter.
func Summarize(team string, matches []MatchMetrics, venue VenueFilter) TeamSummary {
	s := TeamSummary{Team: team, Venue: venue}
	for _, m := range FilterVenue(matches, venue) {
		s.Games++
		s.Points += m.Points
		s.GoalsScored += m.GoalsScored
		s.GoalsConceded += m.GoalsConceded
		s.Record.add(m.Outcome)
		if m.Venue == Home {
			s.Home.add(m.Outcome)
		} else {
			s.Away.add(m.Outcome)
		}
	}
	s.GoalDiff = s.GoalsScored - s.GoalsConceded
	s.WinPercentage = percentage(s.Points, s.Games)
	s.PointsPerGame = ratio(s.Points, s.Games)
	s.GoalsPerGame = ratio(s.GoalsScored, s.Games)
	s.ConcededPerGame = ratio(s.GoalsConceded, s.Games)
	return s
}

// SummarizeTeam is Summarize over TeamMatches.
func SummarizeTeam(r *Relation, team string, venue VenueFilter) TeamSummary {
	return Summarize(team, TeamMatches(r, team), venue)
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

func percentage(points, games int) float64 {
	if games == 0 {
		return 0
	}
	return float64(points) / float64(PointsWin*games) * 100
}
