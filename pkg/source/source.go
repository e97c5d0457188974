// Package source loads match tables from spreadsheets, databases and URLs.
package source

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/richard-senior/leaguestats/internal/logger"
	"github.com/richard-senior/leaguestats/pkg/league"
)

var (
	// ErrSourceUnavailable means the table could not be read at all.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSchemaMismatch means a required column is missing or a value has the wrong type.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrUnsupportedSource means the location's format is not recognised.
	ErrUnsupportedSource = errors.New("unsupported source")
)

// Source is somewhere a match table can be loaded from.
type Source interface {
	// Location is the path or URL, for messages.
	Location() string
	// Fingerprint changes whenever the underlying data changes.
	Fingerprint() (string, error)
	Load() (*league.Relation, error)
}

// Options tweak format-specific behaviour.
type Options struct {
	Sheet string // xlsx sheet, first sheet when empty
	Table string // sqlite table, "matches" when empty
}

const DefaultTable = "matches"

type format int

const (
	formatUnknown format = iota
	formatCSV
	formatXLSX
	formatSQLite
)

func formatOf(name string) format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return formatCSV
	case ".xlsx", ".xlsm":
		return formatXLSX
	case ".db", ".sqlite", ".sqlite3":
		return formatSQLite
	}
	return formatUnknown
}

// Open picks a Source for location: http(s) URLs are fetched, local files are chosen by extension.
func Open(location string, opts Options) (Source, error) {
	if location == "" {
		return nil, fmt.Errorf("%w: no source configured", ErrSourceUnavailable)
	}
	if u, err := url.Parse(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return NewRemoteSource(location, opts), nil
	}
	switch formatOf(location) {
	case formatCSV:
		return NewCSVSource(location), nil
	case formatXLSX:
		return NewXLSXSource(location, opts.Sheet), nil
	case formatSQLite:
		return NewSQLiteSource(location, opts.Table), nil
	}
	return nil, fmt.Errorf("%w: cannot tell the format of %q", ErrUnsupportedSource, location)
}

// OpenLenient is Open for long running modes: a location Open rejects becomes a Source whose
// every call fails with that error, so views come out empty with an explanation.
func OpenLenient(location string, opts Options) Source {
	src, err := Open(location, opts)
	if err != nil {
		logger.Error("Cannot open match table", err)
		return failedSource{location: location, err: err}
	}
	return src
}

type failedSource struct {
	location string
	err      error
}

func (f failedSource) Location() string                { return f.location }
func (f failedSource) Fingerprint() (string, error)    { return "", f.err }
func (f failedSource) Load() (*league.Relation, error) { return nil, f.err }

// LoadOrEmpty never fails: any load error becomes an empty relation and a message for the user.
// The message is empty on success.
func LoadOrEmpty(src Source) (*league.Relation, string) {
	rel, err := src.Load()
	if err != nil {
		logger.Error("Failed to load match table", err)
		return league.Empty(), Describe(err)
	}
	logger.Info(fmt.Sprintf("Loaded %d rows from", rel.Len()), src.Location())
	return rel, ""
}

// Describe turns a loader error into a message suitable for the dashboard.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSchemaMismatch):
		return fmt.Sprintf("The match table does not have the expected layout (%v).", err)
	case errors.Is(err, ErrUnsupportedSource):
		return fmt.Sprintf("The match table format is not supported (%v).", err)
	default:
		return fmt.Sprintf("The match table could not be read (%v).", err)
	}
}

func statFingerprint(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return fmt.Sprintf("%d:%d", info.ModTime().UnixNano(), info.Size()), nil
}
