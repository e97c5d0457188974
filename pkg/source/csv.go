package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/richard-senior/leaguestats/pkg/league"
)

// CSVSource reads a comma or semicolon separated file.
type CSVSource struct {
	Path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Location() string { return s.Path }

func (s *CSVSource) Fingerprint() (string, error) {
	return statFingerprint(s.Path)
}

func (s *CSVSource) Load() (*league.Relation, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	matches, err := parseCSV(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return league.NewRelation(matches), nil
}

// sniffDelimiter prefers ';' when the header line has more semicolons than commas, as
// spreadsheet exports with a comma decimal separator do.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

func parseCSV(data []byte) ([]league.Match, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: file has no header", ErrSchemaMismatch)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return parseRecords(header, records)
}
