package processor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/richard-senior/leaguestats/internal/logger"
	"github.com/richard-senior/leaguestats/pkg/dashboard"
	"github.com/richard-senior/leaguestats/pkg/util"
)

// QueryRequest is the JSON accepted on stdin or from -input.
type QueryRequest struct {
	Query     string `json:"query"`
	RequestID string `json:"requestId"`
}

// QueryResponse carries the computed view back to the caller.
type QueryResponse struct {
	RequestID string `json:"requestId,omitempty"`
	Query     string `json:"query"`
	Context   any    `json:"context"`
	Markdown  string `json:"markdown,omitempty"`
	Warning   string `json:"warning,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ErrUnknownQuery is returned for a query word Run does not understand.
var ErrUnknownQuery = errors.New("unknown query")

// Usage lists the supported queries.
const Usage = `teams
team <name>
ranking [points|attack|defense|ppg|gpg] [all|home|away]
form <name> [window] [all|home|away]
duel <home> vs <away>
h2h <team> vs <opponent>`

func createErrorResponse(code, message string) ([]byte, error) {
	var response ErrorResponse
	response.Error.Code = code
	response.Error.Message = message
	return json.MarshalIndent(response, "", "  ")
}

// ProcessRequest answers a QueryRequest. With markdown set the report text is returned instead
// of JSON. Query failures are reported in the response body; the error return is only for
// failures to encode it.
func ProcessRequest(board *dashboard.Dashboard, input []byte, markdown bool) ([]byte, error) {
	var request QueryRequest
	if err := json.Unmarshal(input, &request); err != nil {
		logger.Error("Failed to parse input JSON", err)
		return createErrorResponse("invalid_request", fmt.Sprintf("Invalid JSON: %v", err))
	}
	logger.Info("Processing request", request.Query)

	view, err := Run(board, request.Query)
	if err != nil {
		logger.Warn("Query failed", err)
		switch {
		case errors.Is(err, ErrUnknownQuery):
			return createErrorResponse("unknown_query", err.Error()+"\nsupported queries:\n"+Usage)
		case errors.Is(err, dashboard.ErrInvalidArgument):
			return createErrorResponse("invalid_argument", err.Error())
		default:
			return createErrorResponse("internal_error", err.Error())
		}
	}

	if markdown {
		text := view.Markdown
		if view.Warning != "" {
			text = "> " + view.Warning + "\n\n" + text
		}
		return []byte(text + "\n"), nil
	}
	return json.MarshalIndent(QueryResponse{
		RequestID: request.RequestID,
		Query:     request.Query,
		Context:   view.Data,
		Markdown:  view.Markdown,
		Warning:   view.Warning,
	}, "", "  ")
}

// Run parses a one line query and computes its view.
func Run(board *dashboard.Dashboard, query string) (dashboard.View, error) {
	words := strings.Fields(query)
	if len(words) == 0 {
		return dashboard.View{}, fmt.Errorf("%w: empty query", ErrUnknownQuery)
	}
	args := words[1:]

	switch strings.ToLower(words[0]) {
	case "teams":
		return board.Teams(), nil
	case "team", "time":
		return board.Team(strings.Join(args, " "))
	case "ranking", "table":
		var sortKey, venue string
		if len(args) > 0 {
			sortKey = args[0]
		}
		if len(args) > 1 {
			venue = args[1]
		}
		if len(args) > 2 {
			return dashboard.View{}, fmt.Errorf("%w: ranking takes at most a sort key and a venue", dashboard.ErrInvalidArgument)
		}
		return board.Ranking(sortKey, venue)
	case "form":
		name, window, venue, err := formArgs(args)
		if err != nil {
			return dashboard.View{}, err
		}
		return board.Form(name, window, venue)
	case "duel", "duelo":
		home, away, err := pair(args)
		if err != nil {
			return dashboard.View{}, err
		}
		return board.Duel(home, away)
	case "h2h":
		team, opponent, err := pair(args)
		if err != nil {
			return dashboard.View{}, err
		}
		return board.HeadToHead(team, opponent)
	}
	return dashboard.View{}, fmt.Errorf("%w: %q", ErrUnknownQuery, words[0])
}

// venueWords are the venues accepted at the end of a form query. Single letter codes are left
// out since they also end team names.
var venueWords = map[string]bool{"all": true, "geral": true, "home": true, "casa": true, "away": true, "fora": true}

// formArgs peels an optional venue and then an optional window off the end of the words.
func formArgs(args []string) (string, int, string, error) {
	venue := ""
	if n := len(args); n > 1 && venueWords[strings.ToLower(args[n-1])] {
		venue, args = args[n-1], args[:n-1]
	}
	window := 0
	if n := len(args); n > 1 {
		if w, err := util.GetAsInteger(args[n-1]); err == nil {
			if w < 1 {
				return "", 0, "", fmt.Errorf("%w: window must be at least 1, got %d", dashboard.ErrInvalidArgument, w)
			}
			window, args = w, args[:n-1]
		}
	}
	return strings.Join(args, " "), window, venue, nil
}

// pair splits "<a> vs <b>", allowing multi word names on either side.
func pair(args []string) (string, string, error) {
	for i, w := range args {
		if strings.EqualFold(w, "vs") || strings.EqualFold(w, "x") {
			return strings.Join(args[:i], " "), strings.Join(args[i+1:], " "), nil
		}
	}
	return "", "", fmt.Errorf("%w: expected \"<team> vs <team>\"", dashboard.ErrInvalidArgument)
}
