package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, LevenshteinDistance("Grêmio", "Grêmio"))
	assert.Equal(t, 1, LevenshteinDistance("Grêmio", "Gremio"))
	assert.Equal(t, 3, LevenshteinDistance("", "abc"))
	assert.Equal(t, 3, LevenshteinDistance("kitten", "sitting"))
}

func TestFuzzyMatchScore(t *testing.T) {
	assert.Equal(t, 1.0, FuzzyMatchScore(" Santos ", "santos"))
	assert.Equal(t, 1.0, FuzzyMatchScore("", ""))
	assert.True(t, IsFuzzyMatch("Palmeiras", "Palmeira", 0.75))
	assert.False(t, IsFuzzyMatch("Palmeiras", "Bahia", 0.75))
}

func TestGetAsInteger(t *testing.T) {
	cases := map[string]struct {
		in   any
		want int
	}{
		"int":           {3, 3},
		"int64":         {int64(7), 7},
		"whole float":   {2.0, 2},
		"padded string": {" 4 ", 4},
		"float string":  {"5.0", 5},
		"bytes":         {[]byte("12"), 12},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := GetAsInteger(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, bad := range []any{nil, "", "abc", 2.5, "1.5", struct{}{}} {
		_, err := GetAsInteger(bad)
		assert.Error(t, err, "%v should not convert", bad)
	}
}

func TestGetAsString(t *testing.T) {
	s, err := GetAsString(int64(10))
	require.NoError(t, err)
	assert.Equal(t, "10", s)

	s, err = GetAsString(1.5)
	require.NoError(t, err)
	assert.Equal(t, "1.5", s)

	_, err = GetAsString(nil)
	assert.Error(t, err)
}
