// Package render turns league views into HTML fragments and Markdown reports.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/richard-senior/leaguestats/pkg/league"
)

// CrestFunc returns the image URL for a team.
type CrestFunc func(team string) string

var funcs = template.FuncMap{
	"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	"dec": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"signed": func(v int) string {
		if v > 0 {
			return fmt.Sprintf("+%d", v)
		}
		return fmt.Sprintf("%d", v)
	},
	"round": func(p *int) string {
		if p == nil {
			return "-"
		}
		return fmt.Sprintf("%d", *p)
	},
	"ordinal": func(n int) string {
		if n <= 0 {
			return "-"
		}
		return fmt.Sprintf("%dº", n)
	},
	"meetings": headToHead,
	"venue": func(v league.VenueFilter) string {
		switch v {
		case league.HomeOnly:
			return "home"
		case league.AwayOnly:
			return "away"
		}
		return "overall"
	},
}

var templates = template.Must(template.New("render").Funcs(funcs).Parse(layouts))

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

var markdown = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// Markdown converts an HTML fragment to Markdown.
func Markdown(html string) (string, error) {
	md, err := markdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert report to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}

type rankingRow struct {
	league.RankingRow
	Crest string
}

type rankingPage struct {
	Title   string
	Key     league.SortKey
	Venue   league.VenueFilter
	Rows    []rankingRow
	Message string
}

var rankingTitles = map[league.SortKey]string{
	league.ByPoints:        "General ranking",
	league.ByGoalsScored:   "Best attack",
	league.ByGoalsConceded: "Best defense",
	league.ByPointsPerGame: "Points per game",
	league.ByGoalsPerGame:  "Goals per game",
}

// RankingHTML renders a ranking table.
func RankingHTML(rows []league.RankingRow, key league.SortKey, venue league.VenueFilter, crest CrestFunc) (string, error) {
	page := rankingPage{Title: rankingTitles[key], Key: key, Venue: venue}
	for _, r := range rows {
		page.Rows = append(page.Rows, rankingRow{RankingRow: r, Crest: crestOf(crest, r.Team)})
	}
	return execute("ranking", page)
}

// ProfileHTML renders the single team view.
func ProfileHTML(p league.Profile) (string, error) {
	return execute("profile", p)
}

// DuelHTML renders a home versus away comparison.
func DuelHTML(d league.Duel) (string, error) {
	return execute("duel", d)
}

// FormHTML renders a recent form block.
func FormHTML(f league.Form) (string, error) {
	return execute("form", f)
}

type meetings struct {
	Team     string
	Opponent string
	Meetings []league.Meeting
}

func headToHead(team, opponent string, m []league.Meeting) meetings {
	return meetings{Team: team, Opponent: opponent, Meetings: m}
}

// HeadToHeadHTML renders the meetings between two teams from team's side.
func HeadToHeadHTML(team, opponent string, m []league.Meeting) (string, error) {
	return execute("h2h", headToHead(team, opponent, m))
}

// Report converts the result of one of the *HTML functions to Markdown, e.g.
// render.Report(render.DuelHTML(d)).
func Report(html string, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return Markdown(html)
}

func crestOf(f CrestFunc, team string) string {
	if f == nil {
		return ""
	}
	return f(team)
}
