package league

// PositionStats describes a team's league position over the season. Zero means unknown.
type PositionStats struct {
	Current int `json:"current"`
	Best    int `json:"best"`
	Worst   int `json:"worst"`
}

// Streaks holds the highlighted runs of a team view.
type Streaks struct {
	Wins     Streak `json:"wins"`
	Winless  Streak `json:"winless"`
	Unbeaten Streak `json:"unbeaten"`
	Losses   Streak `json:"losses"`
}

// Profile gathers everything shown on the single team view.
type Profile struct {
	Team      string         `json:"team"`
	Crest     string         `json:"crest,omitempty"`
	Summary   TeamSummary    `json:"summary"`
	Position  PositionStats  `json:"position"`
	Streaks   Streaks        `json:"streaks"`
	BestWin   *MatchMetrics  `json:"bestWin"`
	WorstLoss *MatchMetrics  `json:"worstLoss"`
	Form      Form           `json:"form"`
	Matches   []MatchMetrics `json:"matches"`
}

// Positions ignores matches without a recorded position.
func Positions(matches []MatchMetrics) PositionStats {
	var ps PositionStats
	for _, m := range matches {
		if m.Position <= 0 {
			continue
		}
		ps.Current = m.Position
		if ps.Best == 0 || m.Position < ps.Best {
			ps.Best = m.Position
		}
		if m.Position > ps.Worst {
			ps.Worst = m.Position
		}
	}
	return ps
}

// BestWin is the win with the largest goal differential, the earliest one on ties.
func BestWin(matches []MatchMetrics) *MatchMetrics {
	var best *MatchMetrics
	for i := range matches {
		m := matches[i]
		if m.Outcome != Win {
			continue
		}
		if best == nil || m.GoalDifferential > best.GoalDifferential {
			best = &m
		}
	}
	return best
}

// WorstLoss is the loss with the smallest goal differential, the earliest one on ties.
func WorstLoss(matches []MatchMetrics) *MatchMetrics {
	var worst *MatchMetrics
	for i := range matches {
		m := matches[i]
		if m.Outcome != Loss {
			continue
		}
		if worst == nil || m.GoalDifferential < worst.GoalDifferential {
			worst = &m
		}
	}
	return worst
}

// BuildProfile computes the team view. window is the recent form length.
func BuildProfile(r *Relation, team string, window int) Profile {
	matches := TeamMatches(r, team)
	return Profile{
		Team:     team,
		Summary:  Summarize(team, matches, AllVenues),
		Position: Positions(matches),
		Streaks: Streaks{
			Wins:     LongestStreak(matches, Is(Win)),
			Winless:  LongestStreak(matches, IsNot(Win)),
			Unbeaten: LongestStreak(matches, IsNot(Loss)),
			Losses:   LongestStreak(matches, Is(Loss)),
		},
		BestWin:   BestWin(matches),
		WorstLoss: WorstLoss(matches),
		Form:      RecentForm(r, team, AllVenues, window),
		Matches:   matches,
	}
}
