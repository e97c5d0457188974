package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/richard-senior/leaguestats/internal/logger"
	"github.com/richard-senior/leaguestats/pkg/dashboard"
	"github.com/richard-senior/leaguestats/pkg/league"
	"github.com/richard-senior/leaguestats/pkg/protocol"
	"github.com/richard-senior/leaguestats/pkg/util"
)

// Handler runs a tool call with the decoded "arguments" object.
type Handler func(params any) (any, error)

// Entry pairs a tool description with its handler.
type Entry struct {
	Tool   protocol.Tool
	Handle Handler
}

// Toolbox exposes the league views as MCP tools.
type Toolbox struct {
	board *dashboard.Dashboard
}

func NewToolbox(board *dashboard.Dashboard) *Toolbox {
	return &Toolbox{board: board}
}

// Entries lists every tool in registration order.
func (tb *Toolbox) Entries() []Entry {
	return []Entry{
		{ListTeamsTool(), tb.HandleListTeams},
		{TeamOverviewTool(), tb.HandleTeamOverview},
		{LeagueRankingTool(), tb.HandleLeagueRanking},
		{RecentFormTool(), tb.HandleRecentForm},
		{HeadToHeadTool(), tb.HandleHeadToHead},
		{TeamDuelTool(), tb.HandleTeamDuel},
		{TeamCrestTool(), tb.HandleTeamCrest},
	}
}

var (
	teamProperty = protocol.ToolProperty{
		Type:        "string",
		Description: "Team name as it appears in the match log. Accents and case are ignored, e.g. 'gremio' finds 'Grêmio'.",
	}
	venueProperty = protocol.ToolProperty{
		Type:        "string",
		Description: "Restrict to matches played 'home' or 'away'. Omit for every match.",
		Enum:        []string{"all", "home", "away"},
	}
	one = 1
)

func ListTeamsTool() protocol.Tool {
	return protocol.Tool{
		Name:        "list_teams",
		Description: "Lists every team that appears in the match log, sorted alphabetically.",
		InputSchema: protocol.InputSchema{Type: "object", Required: []string{}},
	}
}

func (tb *Toolbox) HandleListTeams(params any) (any, error) {
	return result(tb.board.Teams(), nil)
}

func TeamOverviewTool() protocol.Tool {
	return protocol.Tool{
		Name: "team_overview",
		Description: `
		The full statistics page of one team:
		- current, best and worst league position
		- points, record, goals and per game averages, split by home and away
		- best win, worst loss and the longest winning, winless, unbeaten and losing runs
		- recent form and the match by match table with cumulative points and goal difference
		`,
		InputSchema: protocol.InputSchema{
			Type:       "object",
			Properties: map[string]protocol.ToolProperty{"team": teamProperty},
			Required:   []string{"team"},
		},
	}
}

func (tb *Toolbox) HandleTeamOverview(params any) (any, error) {
	args, err := arguments(params)
	if err != nil {
		return nil, err
	}
	team, err := stringArg(args, "team", true)
	if err != nil {
		return nil, err
	}
	return result(tb.board.Team(team))
}

func LeagueRankingTool() protocol.Tool {
	keys := make([]string, 0, len(league.SortKeys))
	for _, k := range league.SortKeys {
		keys = append(keys, string(k))
	}
	return protocol.Tool{
		Name: "league_ranking",
		Description: `
		Ranks every team. Sort keys:
		- points: the general table
		- attack: most goals scored
		- defense: fewest goals conceded
		- ppg: points per game
		- gpg: goals scored per game
		Ties are broken by wins, then goal difference, then goals scored.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"sort": {
					Type:        "string",
					Description: "Ranking criterion, defaults to points.",
					Enum:        keys,
				},
				"venue": venueProperty,
			},
			Required: []string{},
		},
	}
}

func (tb *Toolbox) HandleLeagueRanking(params any) (any, error) {
	args, err := arguments(params)
	if err != nil {
		return nil, err
	}
	sortKey, err := stringArg(args, "sort", false)
	if err != nil {
		return nil, err
	}
	venue, err := stringArg(args, "venue", false)
	if err != nil {
		return nil, err
	}
	return result(tb.board.Ranking(sortKey, venue))
}

func RecentFormTool() protocol.Tool {
	return protocol.Tool{
		Name:        "recent_form",
		Description: "Results, points and win percentage of a team over its last few matches, oldest first.",
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"team": teamProperty,
				"window": {
					Type:        "integer",
					Description: "How many of the latest matches to include. Defaults to the server setting (3).",
					Minimum:     &one,
				},
				"venue": venueProperty,
			},
			Required: []string{"team"},
		},
	}
}

func (tb *Toolbox) HandleRecentForm(params any) (any, error) {
	args, err := arguments(params)
	if err != nil {
		return nil, err
	}
	team, err := stringArg(args, "team", true)
	if err != nil {
		return nil, err
	}
	venue, err := stringArg(args, "venue", false)
	if err != nil {
		return nil, err
	}
	window := 0
	if v, ok := args["window"]; ok && v != nil {
		window, err = util.GetAsInteger(v)
		if err != nil {
			return nil, protocol.NewInvalidParamsError("window: %v", err)
		}
		if window < 1 {
			return nil, protocol.NewInvalidParamsError("window must be at least 1, got %d", window)
		}
	}
	return result(tb.board.Form(team, window, venue))
}

func HeadToHeadTool() protocol.Tool {
	return protocol.Tool{
		Name:        "head_to_head",
		Description: "Every meeting between two teams, newest first, scored from the first team's side.",
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"team":     teamProperty,
				"opponent": teamProperty,
			},
			Required: []string{"team", "opponent"},
		},
	}
}

func (tb *Toolbox) HandleHeadToHead(params any) (any, error) {
	args, err := arguments(params)
	if err != nil {
		return nil, err
	}
	team, err := stringArg(args, "team", true)
	if err != nil {
		return nil, err
	}
	opponent, err := stringArg(args, "opponent", true)
	if err != nil {
		return nil, err
	}
	return result(tb.board.HeadToHead(team, opponent))
}

func TeamDuelTool() protocol.Tool {
	return protocol.Tool{
		Name: "team_duel",
		Description: `
		Previews a fixture: the home team's record at home against the away team's record away,
		their overall league positions, recent form and previous meetings.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"home": teamProperty,
				"away": teamProperty,
			},
			Required: []string{"home", "away"},
		},
	}
}

func (tb *Toolbox) HandleTeamDuel(params any) (any, error) {
	args, err := arguments(params)
	if err != nil {
		return nil, err
	}
	home, err := stringArg(args, "home", true)
	if err != nil {
		return nil, err
	}
	away, err := stringArg(args, "away", true)
	if err != nil {
		return nil, err
	}
	return result(tb.board.Duel(home, away))
}

func TeamCrestTool() protocol.Tool {
	return protocol.Tool{
		Name: "team_crest",
		Description: `
		The crest image URL of a team. Uses the configured logo list, or the placeholder when the team has none.
		When 'page' is given (e.g. the club's Wikipedia article) the crest is discovered from that page instead.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"team": teamProperty,
				"page": {Type: "string", Description: "Optional web page to discover the crest from."},
			},
			Required: []string{"team"},
		},
	}
}

func (tb *Toolbox) HandleTeamCrest(params any) (any, error) {
	args, err := arguments(params)
	if err != nil {
		return nil, err
	}
	team, err := stringArg(args, "team", true)
	if err != nil {
		return nil, err
	}
	page, err := stringArg(args, "page", false)
	if err != nil {
		return nil, err
	}
	return result(tb.board.Crest(team, page))
}

func arguments(params any) (map[string]any, error) {
	if params == nil {
		return map[string]any{}, nil
	}
	args, ok := params.(map[string]any)
	if !ok {
		return nil, protocol.NewInvalidParamsError("arguments must be an object, got %T", params)
	}
	return args, nil
}

func stringArg(args map[string]any, name string, required bool) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		if required {
			return "", protocol.NewInvalidParamsError("missing required parameter %q", name)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", protocol.NewInvalidParamsError("parameter %q must be a string", name)
	}
	s = strings.TrimSpace(s)
	if required && s == "" {
		return "", protocol.NewInvalidParamsError("parameter %q must not be empty", name)
	}
	return s, nil
}

// result turns a dashboard view into a tool result. Caller mistakes become invalid params errors.
func result(v dashboard.View, err error) (any, error) {
	if err != nil {
		if errors.Is(err, dashboard.ErrInvalidArgument) {
			return nil, protocol.NewInvalidParamsError("%s", strings.TrimPrefix(err.Error(), dashboard.ErrInvalidArgument.Error()+": "))
		}
		logger.Error("Tool failed", err)
		return nil, err
	}
	text := v.Markdown
	if v.Warning != "" {
		text = fmt.Sprintf("> %s\n\n%s", v.Warning, text)
	}
	return protocol.ToolResult{
		Content:           []protocol.Content{protocol.TextContent(text)},
		StructuredContent: v,
	}, nil
}
