package source

import (
	"database/sql"
	"fmt"
	"os"
	"regexp"

	_ "modernc.org/sqlite"

	"github.com/richard-senior/leaguestats/pkg/league"
	"github.com/richard-senior/leaguestats/pkg/util"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads every row of one table. Column names follow the same aliases as the
// spreadsheet headers, so a table imported straight from the workbook works unchanged.
type SQLiteSource struct {
	Path  string
	Table string
}

func NewSQLiteSource(path, table string) *SQLiteSource {
	if table == "" {
		table = DefaultTable
	}
	return &SQLiteSource{Path: path, Table: table}
}

func (s *SQLiteSource) Location() string { return s.Path + "#" + s.Table }

func (s *SQLiteSource) Fingerprint() (string, error) {
	main, err := statFingerprint(s.Path)
	if err != nil {
		return "", err
	}
	// uncheckpointed writes live in the WAL file
	if wal, err := statFingerprint(s.Path + "-wal"); err == nil {
		return main + "/" + wal, nil
	}
	return main, nil
}

func (s *SQLiteSource) Load() (*league.Relation, error) {
	if !tableName.MatchString(s.Table) {
		return nil, fmt.Errorf("%w: invalid table name %q", ErrUnsupportedSource, s.Table)
	}
	// sql.Open would happily create a missing database
	if _, err := os.Stat(s.Path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", ErrSourceUnavailable, err)
	}
	defer db.Close()
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: failed to ping database: %v", ErrSourceUnavailable, err)
	}

	header, records, err := readTable(db, s.Table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Location(), err)
	}
	matches, err := parseRecords(header, records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Location(), err)
	}
	return league.NewRelation(matches), nil
}

// readTable returns the table as text cells in rowid order.
func readTable(db *sql.DB, table string) ([]string, [][]string, error) {
	rows, err := db.Query(fmt.Sprintf(`SELECT * FROM "%s" ORDER BY rowid`, table))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}

	var records [][]string
	for rows.Next() {
		values := make([]any, len(header))
		ptrs := make([]any, len(header))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
		}
		record := make([]string, len(values))
		for i, v := range values {
			if v == nil {
				continue
			}
			record[i], _ = util.GetAsString(v)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return header, records, nil
}
