// Package api serves the league views over HTTP.
package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/richard-senior/leaguestats/pkg/dashboard"
)

type API struct {
	board   *dashboard.Dashboard
	version string
}

func New(board *dashboard.Dashboard, version string) *API {
	return &API{board: board, version: version}
}

func (a *API) Routes() http.Handler {
	router := chi.NewRouter()

	router.NotFound(notFoundResponse)
	router.MethodNotAllowed(methodNotAllowedResponse)

	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Get("/v1/healthcheck", a.HealthCheck)

	router.Route("/v1/teams", func(router chi.Router) {
		router.Get("/", a.ListTeams)
		router.Get("/{team}", a.GetTeam)
		router.Get("/{team}/form", a.GetForm)
	})
	router.Get("/v1/ranking", a.GetRanking)
	router.Get("/v1/duel", a.GetDuel)
	router.Get("/v1/h2h", a.GetHeadToHead)

	return router
}

func teamParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "team")
	team, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w: bad team name %q", dashboard.ErrInvalidArgument, raw)
	}
	return team, nil
}

func (a *API) HealthCheck(w http.ResponseWriter, r *http.Request) {
	teams := a.board.Teams()
	body := envelope{
		"status":  "available",
		"version": a.version,
		"teams":   teams.Data.(map[string]any)["count"],
	}
	if teams.Warning != "" {
		body["status"] = "degraded"
		body["warning"] = teams.Warning
	}
	if err := writeJSON(w, http.StatusOK, body, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (a *API) ListTeams(w http.ResponseWriter, r *http.Request) {
	v := a.board.Teams()
	v.Data = v.Data.(map[string]any)["teams"]
	respond(w, r, "teams", v)
}

func (a *API) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := teamParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	v, err := a.board.Team(team)
	viewResponse(w, r, "team", v, err)
}

func (a *API) GetForm(w http.ResponseWriter, r *http.Request) {
	team, err := teamParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	qs := r.URL.Query()
	window, err := readInt(qs, "window", 0)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if qs.Get("window") != "" && window < 1 {
		badRequestResponse(w, r, fmt.Errorf("%w: window must be at least 1", dashboard.ErrInvalidArgument))
		return
	}
	v, err := a.board.Form(team, window, readString(qs, "venue", ""))
	viewResponse(w, r, "form", v, err)
}

func (a *API) GetRanking(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	v, err := a.board.Ranking(readString(qs, "sort", "points"), readString(qs, "venue", ""))
	viewResponse(w, r, "ranking", v, err)
}

func (a *API) GetDuel(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	v, err := a.board.Duel(qs.Get("home"), qs.Get("away"))
	viewResponse(w, r, "duel", v, err)
}

func (a *API) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	v, err := a.board.HeadToHead(qs.Get("team"), qs.Get("opponent"))
	viewResponse(w, r, "h2h", v, err)
}
