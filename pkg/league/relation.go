package league

import (
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/richard-senior/leaguestats/pkg/util"
)

// fuzzyThreshold is the minimum similarity for ResolveTeam to accept a misspelt name
const fuzzyThreshold = 0.75

// Relation is the loaded match table. It is never mutated after construction, so a single
// value can be shared between concurrent readers.
type Relation struct {
	rows  []Match
	teams []string
	keys  map[string]string
}

// NewRelation copies rows so later changes to the caller's slice cannot leak in.
func NewRelation(rows []Match) *Relation {
	r := &Relation{
		rows: append([]Match(nil), rows...),
		keys: map[string]string{},
	}
	seen := map[string]bool{}
	for _, m := range r.rows {
		for _, name := range []string{m.Team1, m.Team2} {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			r.teams = append(r.teams, name)
			if _, ok := r.keys[TeamKey(name)]; !ok {
				r.keys[TeamKey(name)] = name
			}
		}
	}
	collate.New(language.BrazilianPortuguese, collate.IgnoreCase).SortStrings(r.teams)
	return r
}

// Empty returns a relation with no rows
func Empty() *Relation {
	return NewRelation(nil)
}

func (r *Relation) Len() int {
	if r == nil {
		return 0
	}
	return len(r.rows)
}

func (r *Relation) IsEmpty() bool {
	return r.Len() == 0
}

// Rows returns a copy of the stored rows in load order.
func (r *Relation) Rows() []Match {
	if r == nil {
		return nil
	}
	return append([]Match(nil), r.rows...)
}

// Teams lists every distinct name appearing as team1 or team2, in Portuguese collation order.
func (r *Relation) Teams() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.teams...)
}

// TeamKey normalises a team name for comparisons that ignore case, accents and punctuation.
func TeamKey(name string) string {
	return slug.Make(strings.TrimSpace(name))
}

// ResolveTeam maps user input onto a stored team name. Exact matches win, then matches that
// only differ by case or accents, then the closest fuzzy match. Unknown names are returned
// unchanged so the caller gets a zero-games view rather than an error.
func (r *Relation) ResolveTeam(query string) (string, bool) {
	query = strings.TrimSpace(query)
	if r == nil || query == "" {
		return query, false
	}
	for _, t := range r.teams {
		if t == query {
			return t, true
		}
	}
	if t, ok := r.keys[TeamKey(query)]; ok {
		return t, true
	}

	best, bestScore := "", 0.0
	for _, t := range r.teams {
		score := util.FuzzyMatchScore(TeamKey(query), TeamKey(t))
		if score > bestScore {
			best, bestScore = t, score
		}
	}
	if bestScore >= fuzzyThreshold {
		return best, true
	}
	return query, false
}

// Mismatches lists rows whose stored outcome disagrees with their score.
func (r *Relation) Mismatches() []Match {
	var out []Match
	if r == nil {
		return out
	}
	for _, m := range r.rows {
		if !m.Consistent() {
			out = append(out, m)
		}
	}
	return out
}
