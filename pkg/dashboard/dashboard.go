// Package dashboard assembles the league views served by the MCP tools, the HTTP API and the
// query command. Each call reads the current match table from the cache and computes its view
// from scratch.
package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/richard-senior/leaguestats/internal/logger"
	"github.com/richard-senior/leaguestats/pkg/crest"
	"github.com/richard-senior/leaguestats/pkg/league"
	"github.com/richard-senior/leaguestats/pkg/render"
	"github.com/richard-senior/leaguestats/pkg/source"
)

// ErrInvalidArgument marks errors caused by the caller's parameters.
var ErrInvalidArgument = errors.New("invalid argument")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Tables supplies the current match table. *source.Cache implements it.
type Tables interface {
	Relation() (*league.Relation, string)
}

var _ Tables = (*source.Cache)(nil)

// View is a computed page: structured data, its Markdown rendering and, when the match table
// could not be loaded, a warning explaining why the data is empty.
type View struct {
	Data     any    `json:"data"`
	Markdown string `json:"markdown,omitempty"`
	Warning  string `json:"warning,omitempty"`
}

type Dashboard struct {
	tables Tables
	crests *crest.Resolver
	window int
}

func New(tables Tables, crests *crest.Resolver, window int) *Dashboard {
	if window < 1 {
		window = league.DefaultFormWindow
	}
	return &Dashboard{tables: tables, crests: crests, window: window}
}

// Window is the default recent form length.
func (d *Dashboard) Window() int { return d.window }

func (d *Dashboard) relation() (*league.Relation, string) {
	rel, msg := d.tables.Relation()
	if rel == nil {
		rel = league.Empty()
	}
	return rel, msg
}

func (d *Dashboard) resolve(rel *league.Relation, name, param string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", invalid("%s is required", param)
	}
	team, ok := rel.ResolveTeam(name)
	if !ok {
		logger.Warn("Unknown team, showing an empty view for", name)
	} else if team != name {
		logger.Debug(fmt.Sprintf("Resolved %q to", name), team)
	}
	return team, nil
}

func (d *Dashboard) crest(team string) string {
	if d.crests == nil {
		return ""
	}
	return d.crests.URL(team)
}

// Teams lists every team in the match table.
func (d *Dashboard) Teams() View {
	rel, msg := d.relation()
	teams := rel.Teams()
	lines := make([]string, 0, len(teams))
	for _, t := range teams {
		lines = append(lines, "- "+t)
	}
	return View{
		Data:     map[string]any{"teams": teams, "count": len(teams)},
		Markdown: strings.Join(lines, "\n"),
		Warning:  msg,
	}
}

// Team is the single team view.
func (d *Dashboard) Team(name string) (View, error) {
	rel, msg := d.relation()
	team, err := d.resolve(rel, name, "team")
	if err != nil {
		return View{}, err
	}
	p := league.BuildProfile(rel, team, d.window)
	p.Crest = d.crest(team)
	md, err := render.Report(render.ProfileHTML(p))
	if err != nil {
		return View{}, err
	}
	return View{Data: p, Markdown: md, Warning: msg}, nil
}

// Ranking orders every team by sortKey, optionally restricted to one venue.
func (d *Dashboard) Ranking(sortKey, venue string) (View, error) {
	key, err := league.ParseSortKey(sortKey)
	if err != nil {
		return View{}, invalid("%v", err)
	}
	filter, err := league.ParseVenueFilter(venue)
	if err != nil {
		return View{}, invalid("%v", err)
	}
	rel, msg := d.relation()
	rows := league.BuildRanking(rel, filter, key)
	md, err := render.Report(render.RankingHTML(rows, key, filter, d.crest))
	if err != nil {
		return View{}, err
	}
	return View{
		Data:     map[string]any{"sort": key, "venue": filter, "rows": rows},
		Markdown: md,
		Warning:  msg,
	}, nil
}

// Form summarises a team's last window matches. A window of zero uses the configured default.
func (d *Dashboard) Form(name string, window int, venue string) (View, error) {
	if window == 0 {
		window = d.window
	}
	if window < 1 {
		return View{}, invalid("window must be at least 1, got %d", window)
	}
	filter, err := league.ParseVenueFilter(venue)
	if err != nil {
		return View{}, invalid("%v", err)
	}
	rel, msg := d.relation()
	team, err := d.resolve(rel, name, "team")
	if err != nil {
		return View{}, err
	}
	f := league.RecentForm(rel, team, filter, window)
	md, err := render.Report(render.FormHTML(f))
	if err != nil {
		return View{}, err
	}
	return View{Data: f, Markdown: md, Warning: msg}, nil
}

// HeadToHead lists the meetings between two teams from the first team's side.
func (d *Dashboard) HeadToHead(name, opponentName string) (View, error) {
	rel, msg := d.relation()
	team, err := d.resolve(rel, name, "team")
	if err != nil {
		return View{}, err
	}
	opponent, err := d.resolve(rel, opponentName, "opponent")
	if err != nil {
		return View{}, err
	}
	if team == opponent {
		return View{}, invalid("team and opponent must differ")
	}
	meetings := league.HeadToHead(rel, team, opponent)
	md, err := render.Report(render.HeadToHeadHTML(team, opponent, meetings))
	if err != nil {
		return View{}, err
	}
	return View{
		Data:     map[string]any{"team": team, "opponent": opponent, "meetings": meetings},
		Markdown: md,
		Warning:  msg,
	}, nil
}

// Duel compares home's home record with away's away record.
func (d *Dashboard) Duel(homeName, awayName string) (View, error) {
	rel, msg := d.relation()
	home, err := d.resolve(rel, homeName, "home")
	if err != nil {
		return View{}, err
	}
	away, err := d.resolve(rel, awayName, "away")
	if err != nil {
		return View{}, err
	}
	if home == away {
		return View{}, invalid("home and away must be different teams")
	}
	duel := league.BuildDuel(rel, home, away, d.window)
	duel.Home.Crest = d.crest(home)
	duel.Away.Crest = d.crest(away)
	md, err := render.Report(render.DuelHTML(duel))
	if err != nil {
		return View{}, err
	}
	return View{Data: duel, Markdown: md, Warning: msg}, nil
}

// Crest returns the configured crest for a team, or the one found on page when given.
func (d *Dashboard) Crest(name, page string) (View, error) {
	rel, msg := d.relation()
	team, err := d.resolve(rel, name, "team")
	if err != nil {
		return View{}, err
	}
	data := map[string]any{"team": team}
	if page != "" {
		u, err := crest.Discover(page)
		if err != nil {
			return View{}, fmt.Errorf("failed to discover crest for %s: %w", team, err)
		}
		data["crest"], data["source"] = u, page
		if img, err := crest.Inspect(u); err != nil {
			logger.Warn("Discovered crest could not be inspected", err)
		} else {
			data["image"] = img
		}
	} else {
		_, configured := d.crests.Lookup(team)
		data["crest"], data["configured"] = d.crest(team), configured
	}
	return View{
		Data:     data,
		Markdown: fmt.Sprintf("![%s](%s)", team, data["crest"]),
		Warning:  msg,
	}, nil
}
