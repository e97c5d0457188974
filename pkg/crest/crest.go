// Package crest finds the image shown next to a team's name.
package crest

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/richard-senior/leaguestats/internal/logger"
	"github.com/richard-senior/leaguestats/pkg/league"
	"github.com/richard-senior/leaguestats/pkg/transport"
)

// Resolver maps team names to crest URLs from an injected table, falling back to a placeholder.
type Resolver struct {
	logos       map[string]string
	byKey       map[string]string
	placeholder string
}

func NewResolver(logos map[string]string, placeholder string) *Resolver {
	r := &Resolver{
		logos:       map[string]string{},
		byKey:       map[string]string{},
		placeholder: placeholder,
	}
	for team, u := range logos {
		r.logos[team] = u
		r.byKey[league.TeamKey(team)] = u
	}
	return r
}

// URL returns the configured crest, matching names case and accent insensitively.
func (r *Resolver) URL(team string) string {
	if u, ok := r.Lookup(team); ok {
		return u
	}
	return r.placeholder
}

// Lookup is URL without the placeholder fallback.
func (r *Resolver) Lookup(team string) (string, bool) {
	if r == nil {
		return "", false
	}
	if u, ok := r.logos[team]; ok {
		return u, true
	}
	u, ok := r.byKey[league.TeamKey(team)]
	return u, ok
}

// selectors are tried in order against a team's web page
var selectors = []struct {
	query string
	attr  string
}{
	{`meta[property="og:image"]`, "content"},
	{`meta[name="twitter:image"]`, "content"},
	{`table.infobox img`, "src"},
	{`link[rel="apple-touch-icon"]`, "href"},
	{`link[rel="icon"]`, "href"},
}

// Discover fetches pageURL (a club or encyclopedia page) and extracts its crest image.
func Discover(pageURL string) (string, error) {
	body, err := transport.GetHtml(pageURL)
	if err != nil {
		return "", err
	}
	return Extract(body, pageURL)
}

// Extract finds the crest image in an HTML document. Relative links resolve against base.
func Extract(html []byte, base string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	for _, s := range selectors {
		v, ok := doc.Find(s.query).First().Attr(s.attr)
		v = strings.TrimSpace(v)
		if !ok || v == "" {
			continue
		}
		logger.Debug("Crest found with selector", s.query)
		return absolute(v, base), nil
	}
	return "", fmt.Errorf("no crest image found on %s", base)
}

func absolute(ref, base string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
