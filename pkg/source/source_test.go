package source

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/richard-senior/leaguestats/pkg/league"
)

const portugueseCSV = `Ordem_Jogo,Posicao_Jogo,Time1,Time2,Gols1,Gols2,Resultado,Local
1,1,Flamengo,Santos,3,0,V,C
1,4,Santos,Flamengo,0,3,D,F
2,2,Flamengo,Bahia,1,1,E,F
`

const englishCSV = `order,position_at_time,team1,team2,goals1,goals2,outcome,venue
1,1,Flamengo,Santos,3,0,W,home
1,4,Santos,Flamengo,0,3,L,away
2,2,Flamengo,Bahia,1,1,D,away
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVHeadersInEitherLanguageLoadTheSame(t *testing.T) {
	pt, err := NewCSVSource(writeFile(t, "pt.csv", portugueseCSV)).Load()
	require.NoError(t, err)
	en, err := NewCSVSource(writeFile(t, "en.csv", englishCSV)).Load()
	require.NoError(t, err)

	assert.Equal(t, pt.Rows(), en.Rows())
	rows := pt.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, league.Match{
		Order: 1, Position: 4, Team1: "Santos", Team2: "Flamengo",
		Goals1: 0, Goals2: 3, Outcome: league.Loss, Venue: league.Away,
	}, rows[1])
	assert.Equal(t, league.Draw, rows[2].Outcome)
}

func TestCSVSemicolonsBOMAndBlankRows(t *testing.T) {
	content := "\xef\xbb\xbfOrdem_Jogo;Posição_Jogo;Time1;Time2;Gols1;Gols2;Resultado;Local\n" +
		"1;3;Grêmio;Bahia;2;1;V;C\n" +
		";;;;;;;\n" +
		"2;2;Grêmio;Santos;0;0;E;F\n"
	rel, err := NewCSVSource(writeFile(t, "semi.csv", content)).Load()
	require.NoError(t, err)
	assert.Equal(t, 2, rel.Len())
	assert.Equal(t, []string{"Bahia", "Grêmio", "Santos"}, rel.Teams())
}

func TestCSVAmbiguousOutcomeCodesFollowTheScores(t *testing.T) {
	onlyDefeats := "order,position,team1,team2,goals1,goals2,outcome,venue\n1,5,A,B,0,2,D,C\n2,5,A,C,1,3,D,F\n"
	rel, err := NewCSVSource(writeFile(t, "d.csv", onlyDefeats)).Load()
	require.NoError(t, err)
	assert.Equal(t, league.Loss, rel.Rows()[0].Outcome)

	onlyDraws := "order,position,team1,team2,goals1,goals2,outcome,venue\n1,5,A,B,1,1,D,C\n2,5,A,C,0,0,D,F\n"
	rel, err = NewCSVSource(writeFile(t, "e.csv", onlyDraws)).Load()
	require.NoError(t, err)
	assert.Equal(t, league.Draw, rel.Rows()[1].Outcome)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]struct {
		content string
		want    error
		msg     string
	}{
		"missing column": {
			content: "Ordem_Jogo,Time1,Time2,Gols1,Gols2,Resultado,Local\n1,A,B,1,0,V,C\n",
			want:    ErrSchemaMismatch,
			msg:     "position_at_time",
		},
		"non integer goals": {
			content: "Ordem_Jogo,Posicao_Jogo,Time1,Time2,Gols1,Gols2,Resultado,Local\n1,1,A,B,one,0,V,C\n",
			want:    ErrSchemaMismatch,
			msg:     "row 2",
		},
		"bad venue": {
			content: "Ordem_Jogo,Posicao_Jogo,Time1,Time2,Gols1,Gols2,Resultado,Local\n1,1,A,B,1,0,V,N\n",
			want:    ErrSchemaMismatch,
			msg:     "venue",
		},
		"empty file": {
			content: "",
			want:    ErrSchemaMismatch,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewCSVSource(writeFile(t, "bad.csv", tc.content)).Load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), err.Error())
			assert.Contains(t, err.Error(), tc.msg)
		})
	}

	_, err := NewCSVSource(filepath.Join(t.TempDir(), "missing.csv")).Load()
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestLoadOrEmptyNeverFails(t *testing.T) {
	rel, msg := LoadOrEmpty(NewXLSXSource(filepath.Join(t.TempDir(), "nope.xlsx"), ""))
	assert.True(t, rel.IsEmpty())
	assert.Contains(t, msg, "could not be read")

	rel, msg = LoadOrEmpty(NewCSVSource(writeFile(t, "x.csv", "a,b\n1,2\n")))
	assert.True(t, rel.IsEmpty())
	assert.Contains(t, msg, "expected layout")

	rel, msg = LoadOrEmpty(NewCSVSource(writeFile(t, "ok.csv", portugueseCSV)))
	assert.Equal(t, 3, rel.Len())
	assert.Empty(t, msg)
}

func TestOpenPicksSourceByLocation(t *testing.T) {
	src, err := Open("data/df.xlsx", Options{Sheet: "Jogos"})
	require.NoError(t, err)
	assert.IsType(t, &XLSXSource{}, src)
	assert.Equal(t, "Jogos", src.(*XLSXSource).Sheet)

	src, err = Open("league.sqlite", Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTable, src.(*SQLiteSource).Table)

	src, err = Open("https://example.com/table.csv", Options{})
	require.NoError(t, err)
	assert.IsType(t, &RemoteSource{}, src)

	_, err = Open("table.json", Options{})
	assert.ErrorIs(t, err, ErrUnsupportedSource)

	_, err = Open("", Options{})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestOpenLenientWrapsRejectedLocations(t *testing.T) {
	src := OpenLenient("table.json", Options{})
	assert.Equal(t, "table.json", src.Location())
	_, err := src.Fingerprint()
	assert.ErrorIs(t, err, ErrUnsupportedSource)

	rel, msg := NewCache(src).Relation()
	assert.True(t, rel.IsEmpty())
	assert.Contains(t, msg, "not supported")
}

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, r := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &r))
	}
	path := filepath.Join(t.TempDir(), "df.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestXLSXSource(t *testing.T) {
	path := writeWorkbook(t, "Jogos", [][]any{
		{"Ordem_Jogo", "Posicao_Jogo", "Time1", "Time2", "Gols1", "Gols2", "Resultado", "Local"},
		{1, 2, "Bahia", "Vitória", 2, 0, "V", "C"},
		{2, 1, "Bahia", "Sport", 1, 1, "E", "F"},
	})

	rel, err := NewXLSXSource(path, "").Load()
	require.NoError(t, err)
	require.Equal(t, 2, rel.Len())
	assert.Equal(t, league.Win, rel.Rows()[0].Outcome)
	assert.Equal(t, league.Away, rel.Rows()[1].Venue)

	_, err = NewXLSXSource(path, "Missing").Load()
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestSQLiteSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "league.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE matches (
		ordem_jogo INTEGER, posicao_jogo INTEGER, time1 TEXT, time2 TEXT,
		gols1 INTEGER, gols2 INTEGER, resultado TEXT, local TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO matches VALUES
		(1, 1, 'Ceará', 'Fortaleza', 1, 0, 'V', 'C'),
		(2, 3, 'Ceará', 'Sport', 0, 2, 'D', 'F')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	rel, err := NewSQLiteSource(path, "").Load()
	require.NoError(t, err)
	require.Equal(t, 2, rel.Len())
	assert.Equal(t, league.Loss, rel.Rows()[1].Outcome)
	assert.Equal(t, 3, rel.Rows()[1].Position)

	_, err = NewSQLiteSource(path, "standings").Load()
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	_, err = NewSQLiteSource(path, "matches; DROP TABLE matches").Load()
	assert.ErrorIs(t, err, ErrUnsupportedSource)

	missing := filepath.Join(t.TempDir(), "missing.db")
	_, err = NewSQLiteSource(missing, "").Load()
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.NoFileExists(t, missing)
}

func TestRemoteSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/df":
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			fmt.Fprint(w, portugueseCSV)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewRemoteSource(srv.URL+"/df", Options{})
	fp, err := src.Fingerprint()
	require.NoError(t, err)
	assert.Len(t, fp, 64)

	rel, err := src.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, rel.Len())

	_, err = NewRemoteSource(srv.URL+"/gone.csv", Options{}).Load()
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestRemoteSourcePrefersValidators(t *testing.T) {
	var gets atomic.Int32
	etag := `"r1"`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets.Add(1)
		}
		w.Header().Set("Content-Type", "text/csv")
		switch r.URL.Path {
		case "/etag.csv":
			w.Header().Set("ETag", etag)
		case "/modified.csv":
			w.Header().Set("Last-Modified", "Sun, 01 Mar 2026 12:00:00 GMT")
		}
		fmt.Fprint(w, portugueseCSV)
	}))
	defer srv.Close()

	src := NewRemoteSource(srv.URL+"/etag.csv", Options{})
	fp, err := src.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, `etag:"r1"`, fp)
	assert.Zero(t, gets.Load(), "the fingerprint must not download the table")

	cache := NewCache(src)
	rel, _ := cache.Relation()
	assert.Equal(t, 3, rel.Len())
	cache.Relation()
	assert.EqualValues(t, 1, gets.Load())
	assert.EqualValues(t, 1, cache.Loads())

	fp, err = NewRemoteSource(srv.URL+"/modified.csv", Options{}).Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, "modified:Sun, 01 Mar 2026 12:00:00 GMT", fp)
}

func TestCacheReloadsOnlyWhenFileChanges(t *testing.T) {
	path := writeFile(t, "df.csv", portugueseCSV)
	cache := NewCache(NewCSVSource(path))

	rel, msg := cache.Relation()
	assert.Empty(t, msg)
	assert.Equal(t, 3, rel.Len())
	again, _ := cache.Relation()
	assert.Same(t, rel, again)
	assert.EqualValues(t, 1, cache.Loads())

	extra := portugueseCSV + "3,1,Flamengo,Grêmio,2,0,V,C\n"
	require.NoError(t, os.WriteFile(path, []byte(extra), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	rel, _ = cache.Relation()
	assert.Equal(t, 4, rel.Len())
	assert.EqualValues(t, 2, cache.Loads())

	require.NoError(t, os.Remove(path))
	rel, msg = cache.Relation()
	assert.True(t, rel.IsEmpty())
	assert.NotEmpty(t, msg)
}

// slowSource blocks in Load until released so concurrent callers pile up.
type slowSource struct {
	release chan struct{}
	mu      sync.Mutex
	calls   int
}

func (s *slowSource) Location() string             { return "slow" }
func (s *slowSource) Fingerprint() (string, error) { return "v1", nil }
func (s *slowSource) Load() (*league.Relation, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	<-s.release
	return league.NewRelation([]league.Match{{Order: 1, Team1: "A", Team2: "B", Outcome: league.Draw, Venue: league.Home}}), nil
}

func TestCacheSharesConcurrentRefreshes(t *testing.T) {
	src := &slowSource{release: make(chan struct{})}
	cache := NewCache(src)

	var wg sync.WaitGroup
	results := make([]*league.Relation, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = cache.Relation()
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.Equal(t, 1, src.calls)
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestDescribe(t *testing.T) {
	assert.Empty(t, Describe(nil))
	assert.True(t, strings.HasPrefix(Describe(fmt.Errorf("x: %w", ErrSchemaMismatch)), "The match table does not have"))
}

// versionedSource serves a table of version rows and blocks every Load until gate is closed.
type versionedSource struct {
	gate    chan struct{}
	started chan struct{}
	version atomic.Int32
	active  atomic.Int32
	peak    atomic.Int32
}

func (s *versionedSource) Location() string { return "versioned" }
func (s *versionedSource) Fingerprint() (string, error) {
	return fmt.Sprintf("v%d", s.version.Load()), nil
}
func (s *versionedSource) Load() (*league.Relation, error) {
	n := s.version.Load()
	now := s.active.Add(1)
	for peak := s.peak.Load(); now > peak && !s.peak.CompareAndSwap(peak, now); peak = s.peak.Load() {
	}
	defer s.active.Add(-1)
	select {
	case s.started <- struct{}{}:
	default:
	}
	<-s.gate
	rows := make([]league.Match, 0, n)
	for i := int32(1); i <= n; i++ {
		rows = append(rows, league.Match{Order: int(i), Team1: "A", Team2: "B", Outcome: league.Draw, Venue: league.Home})
	}
	return league.NewRelation(rows), nil
}

func TestCacheRefreshesNeverOverlap(t *testing.T) {
	src := &versionedSource{gate: make(chan struct{}), started: make(chan struct{}, 1)}
	src.version.Store(1)
	cache := NewCache(src)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		cache.Relation()
	}()
	<-src.started

	// the table changes while the first load is still running
	src.version.Store(2)
	go func() {
		defer wg.Done()
		cache.Relation()
	}()
	time.Sleep(50 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	assert.EqualValues(t, 1, src.peak.Load())
	rel, msg := cache.Relation()
	assert.Empty(t, msg)
	assert.Equal(t, 2, rel.Len())
	again, _ := cache.Relation()
	assert.Same(t, rel, again)
}
