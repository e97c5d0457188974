package league

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Outcome is a match result from the point of view of the subject team.
type Outcome string

const (
	Win  Outcome = "W"
	Draw Outcome = "D"
	Loss Outcome = "L"
)

// Points awarded per outcome
const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

// ParseOutcome understands the stored codes (V/E/D) as well as W/D/L and the long forms.
// Note that "D" is a defeat in the stored V/E/D vocabulary, so callers that read raw
// spreadsheets must go through ParseStoredOutcome instead.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w", "v", "win", "vitoria", "vitória":
		return Win, nil
	case "d", "draw", "e", "empate":
		return Draw, nil
	case "l", "loss", "derrota":
		return Loss, nil
	}
	return "", fmt.Errorf("unknown outcome %q", s)
}

// ParseStoredOutcome reads the outcome column of a match table, where the codes are V (win),
// E (draw) and D (defeat). Long English or Portuguese words are accepted too.
func ParseStoredOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "v", "w", "win", "vitoria", "vitória":
		return Win, nil
	case "e", "draw", "empate":
		return Draw, nil
	case "d", "l", "loss", "derrota":
		return Loss, nil
	}
	return "", fmt.Errorf("unknown outcome %q", s)
}

// OutcomeFromGoals derives the outcome for the side that scored goalsFor.
func OutcomeFromGoals(goalsFor, goalsAgainst int) Outcome {
	switch {
	case goalsFor > goalsAgainst:
		return Win
	case goalsFor < goalsAgainst:
		return Loss
	default:
		return Draw
	}
}

func (o Outcome) Points() int {
	switch o {
	case Win:
		return PointsWin
	case Draw:
		return PointsDraw
	default:
		return PointsLoss
	}
}

// Invert returns the outcome seen by the opponent.
func (o Outcome) Invert() Outcome {
	switch o {
	case Win:
		return Loss
	case Loss:
		return Win
	default:
		return o
	}
}

// Color is the display colour used for result badges.
func (o Outcome) Color() string {
	switch o {
	case Win:
		return "#28a745"
	case Loss:
		return "#dc3545"
	default:
		return "#000000"
	}
}

func (o Outcome) Label() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	case Loss:
		return "loss"
	}
	return string(o)
}

// Venue is where the subject team played.
type Venue string

const (
	Home Venue = "home"
	Away Venue = "away"
)

// ParseVenue accepts home/away, H/A and the stored codes C (casa) / F (fora).
func ParseVenue(s string) (Venue, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home", "h", "c", "casa":
		return Home, nil
	case "away", "a", "f", "fora":
		return Away, nil
	}
	return "", fmt.Errorf("unknown venue %q", s)
}

func (v Venue) Opposite() Venue {
	if v == Home {
		return Away
	}
	return Home
}

// VenueFilter restricts a computation to home or away matches. AllVenues keeps everything.
type VenueFilter string

const (
	AllVenues VenueFilter = ""
	HomeOnly  VenueFilter = VenueFilter(Home)
	AwayOnly  VenueFilter = VenueFilter(Away)
)

// ParseVenueFilter maps "", "all", "geral" to AllVenues and otherwise defers to ParseVenue.
func ParseVenueFilter(s string) (VenueFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "any", "both", "geral", "overall":
		return AllVenues, nil
	}
	v, err := ParseVenue(s)
	if err != nil {
		return AllVenues, err
	}
	return VenueFilter(v), nil
}

func (f VenueFilter) Allows(v Venue) bool {
	return f == AllVenues || Venue(f) == v
}

func (f VenueFilter) String() string {
	if f == AllVenues {
		return "all"
	}
	return string(f)
}

// MarshalJSON keeps the "all" spelling on the wire.
func (f VenueFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// Match is one row of the match table, as seen from Team1.
type Match struct {
	Order    int     `json:"order"`
	Position int     `json:"positionAtTime"`
	Team1    string  `json:"team1"`
	Team2    string  `json:"team2"`
	Goals1   int     `json:"goals1"`
	Goals2   int     `json:"goals2"`
	Outcome  Outcome `json:"outcome"`
	Venue    Venue   `json:"venue"`
}

// Consistent reports whether the stored outcome agrees with the score.
func (m Match) Consistent() bool {
	return m.Outcome == OutcomeFromGoals(m.Goals1, m.Goals2)
}

func (m Match) String() string {
	return fmt.Sprintf("#%d %s %d-%d %s (%s, %s)", m.Order, m.Team1, m.Goals1, m.Goals2, m.Team2, m.Venue, m.Outcome)
}
