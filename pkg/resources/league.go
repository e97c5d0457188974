package resources

import (
	"strings"

	"github.com/richard-senior/leaguestats/internal/logger"
	"github.com/richard-senior/leaguestats/pkg/dashboard"
	"github.com/richard-senior/leaguestats/pkg/league"
	"github.com/richard-senior/leaguestats/pkg/protocol"
)

const (
	scheme       = "leaguestats://"
	teamsURI     = scheme + "teams"
	rankingURI   = scheme + "ranking/"
	markdownMIME = "text/markdown"
)

// Catalog publishes the league tables as readable MCP resources.
type Catalog struct {
	board *dashboard.Dashboard
}

func NewCatalog(board *dashboard.Dashboard) *Catalog {
	return &Catalog{board: board}
}

// GetResources lists the team list and one ranking per sort key.
func (c *Catalog) GetResources() []protocol.Resource {
	out := []protocol.Resource{{
		URI:         teamsURI,
		Name:        "teams",
		Description: "Every team in the match log",
		MimeType:    markdownMIME,
	}}
	for _, k := range league.SortKeys {
		out = append(out, protocol.Resource{
			URI:         rankingURI + string(k),
			Name:        "ranking_" + string(k),
			Description: "League ranking ordered by " + string(k),
			MimeType:    markdownMIME,
		})
	}
	return out
}

// Read renders the resource at uri as Markdown.
func (c *Catalog) Read(uri string) (*protocol.ReadResourceResult, error) {
	logger.Info("Handling resource read for:", uri)

	var view dashboard.View
	switch {
	case uri == teamsURI:
		view = c.board.Teams()
	case strings.HasPrefix(uri, rankingURI):
		key, err := league.ParseSortKey(strings.TrimPrefix(uri, rankingURI))
		if err != nil || uri != rankingURI+string(key) {
			return nil, notFound(uri)
		}
		view, err = c.board.Ranking(string(key), "")
		if err != nil {
			return nil, err
		}
	default:
		return nil, notFound(uri)
	}

	text := view.Markdown
	if view.Warning != "" {
		text = "> " + view.Warning + "\n\n" + text
	}
	return &protocol.ReadResourceResult{
		Contents: []protocol.ResourceContents{{URI: uri, MimeType: markdownMIME, Text: text}},
	}, nil
}

func notFound(uri string) error {
	return &protocol.JsonRpcError{Code: protocol.ErrResourceNotFound, Message: "resource not found: " + uri}
}
