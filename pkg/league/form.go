package league

// DefaultFormWindow is the number of matches recent-form views look back over.
const DefaultFormWindow = 3

// Form summarises a team's most recent matches.
type Form struct {
	Team          string         `json:"team"`
	Venue         VenueFilter    `json:"venue"`
	Window        int            `json:"window"`
	Record                       // over the window
	Points        int            `json:"points"`
	WinPercentage float64        `json:"winPercentage"`
	Outcomes      []Outcome      `json:"outcomes"` // oldest first
	Matches       []MatchMetrics `json:"matches"`  // oldest first
}

// String renders the outcomes oldest first, e.g. "WDL".
func (f Form) String() string {
	b := make([]byte, 0, len(f.Outcomes))
	for _, o := range f.Outcomes {
		b = append(b, string(o)...)
	}
	return string(b)
}

// RecentForm takes the last window matches (by order) that pass the venue filter. Fewer
// matches than the window are used as-is; a window below one is treated as one.
func RecentForm(r *Relation, team string, venue VenueFilter, window int) Form {
	if window < 1 {
		window = 1
	}
	matches := FilterVenue(TeamMatches(r, team), venue)
	if len(matches) > window {
		matches = matches[len(matches)-window:]
	}
	f := Form{
		Team:     team,
		Venue:    venue,
		Window:   window,
		Outcomes: make([]Outcome, 0, len(matches)),
		Matches:  append([]MatchMetrics{}, matches...),
	}
	for _, m := range matches {
		f.Record.add(m.Outcome)
		f.Points += m.Points
		f.Outcomes = append(f.Outcomes, m.Outcome)
	}
	f.WinPercentage = percentage(f.Points, len(matches))
	return f
}
