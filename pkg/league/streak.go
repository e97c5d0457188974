package league

import "fmt"

// Condition selects matches by outcome, either equal to or different from Outcome.
type Condition struct {
	Outcome Outcome `json:"outcome"`
	Negate  bool    `json:"negate,omitempty"`
}

// Is matches outcome == o.
func Is(o Outcome) Condition { return Condition{Outcome: o} }

// IsNot matches outcome != o.
func IsNot(o Outcome) Condition { return Condition{Outcome: o, Negate: true} }

func (c Condition) Holds(m MatchMetrics) bool {
	return (m.Outcome == c.Outcome) != c.Negate
}

func (c Condition) String() string {
	if c.Negate {
		return fmt.Sprintf("outcome != %s", c.Outcome)
	}
	return fmt.Sprintf("outcome == %s", c.Outcome)
}

// Streak is the longest run of consecutive matches satisfying a condition. Start and End are
// the orders of the first and last match of the run and are nil when no match satisfies it.
type Streak struct {
	Length int  `json:"length"`
	Start  *int `json:"start"`
	End    *int `json:"end"`
}

// LongestStreak scans matches (already in ascending order) for the longest run satisfying cond.
// Ties go to the earliest run.
func LongestStreak(matches []MatchMetrics, cond Condition) Streak {
	best := Streak{}
	runLen, runStart := 0, 0
	for i, m := range matches {
		if !cond.Holds(m) {
			runLen = 0
			continue
		}
		if runLen == 0 {
			runStart = i
		}
		runLen++
		if runLen > best.Length {
			start, end := matches[runStart].Order, m.Order
			best = Streak{Length: runLen, Start: &start, End: &end}
		}
	}
	return best
}
