package source

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/richard-senior/leaguestats/pkg/league"
)

// XLSXSource reads one sheet of an Excel workbook.
type XLSXSource struct {
	Path  string
	Sheet string
}

func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{Path: path, Sheet: sheet}
}

func (s *XLSXSource) Location() string { return s.Path }

func (s *XLSXSource) Fingerprint() (string, error) {
	return statFingerprint(s.Path)
}

func (s *XLSXSource) Load() (*league.Relation, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()
	matches, err := parseXLSX(f, s.Sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return league.NewRelation(matches), nil
}

func parseXLSX(r io.Reader, sheet string) ([]league.Match, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable workbook: %v", ErrSourceUnavailable, err)
	}
	defer book.Close()

	if sheet == "" {
		sheets := book.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrSchemaMismatch)
		}
		sheet = sheets[0]
	}
	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrSchemaMismatch, sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrSchemaMismatch, sheet)
	}
	return parseRecords(rows[0], rows[1:])
}
