package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/richard-senior/leaguestats/internal/logger"
	"github.com/richard-senior/leaguestats/pkg/dashboard"
)

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func writeMarkdown(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, text)
}

// respond writes a view as JSON, or as Markdown when ?format=markdown.
func respond(w http.ResponseWriter, r *http.Request, name string, v dashboard.View) {
	if r.URL.Query().Get("format") == "markdown" {
		text := v.Markdown
		if v.Warning != "" {
			text = "> " + v.Warning + "\n\n" + text
		}
		writeMarkdown(w, text)
		return
	}
	body := envelope{name: v.Data}
	if v.Warning != "" {
		body["warning"] = v.Warning
	}
	if err := writeJSON(w, http.StatusOK, body, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	if err := writeJSON(w, status, envelope{"error": message}, nil); err != nil {
		logger.Error("Failed to write error response", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logger.Error(r.Method+" "+r.URL.String(), err)
	errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("the %s method is not supported for this resource", r.Method))
}

// viewResponse maps dashboard errors onto status codes.
func viewResponse(w http.ResponseWriter, r *http.Request, name string, v dashboard.View, err error) {
	switch {
	case err == nil:
		respond(w, r, name, v)
	case errors.Is(err, dashboard.ErrInvalidArgument):
		badRequestResponse(w, r, err)
	default:
		serverErrorResponse(w, r, err)
	}
}

func readString(qs url.Values, key string, defaultValue string) string {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	return s
}

func readInt(qs url.Values, key string, defaultValue int) (int, error) {
	s := qs.Get(key)
	if s == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue, fmt.Errorf("%w: %s must be an integer value", dashboard.ErrInvalidArgument, key)
	}
	return i, nil
}
