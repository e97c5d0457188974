package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLongestWinStreak(t *testing.T) {
	matches := TeamMatches(outcomeSeq("Vasco", Win, Win, Loss, Win, Win, Win, Draw), "Vasco")

	s := LongestStreak(matches, Is(Win))
	assert.Equal(t, 3, s.Length)
	require.NotNil(t, s.Start)
	require.NotNil(t, s.End)
	assert.Equal(t, 4, *s.Start)
	assert.Equal(t, 6, *s.End)
}

func TestLongestWinlessStreakCoversWholeSequence(t *testing.T) {
	matches := TeamMatches(outcomeSeq("Vasco", Loss, Draw, Loss, Draw, Loss), "Vasco")

	s := LongestStreak(matches, IsNot(Win))
	assert.Equal(t, 5, s.Length)
	assert.Equal(t, 1, *s.Start)
	assert.Equal(t, 5, *s.End)
}

func TestLongestStreakTiePicksEarliestRun(t *testing.T) {
	matches := TeamMatches(outcomeSeq("Vasco", Draw, Draw, Win, Draw, Draw), "Vasco")

	s := LongestStreak(matches, Is(Draw))
	assert.Equal(t, 2, s.Length)
	assert.Equal(t, 1, *s.Start)
	assert.Equal(t, 2, *s.End)
}

func TestLongestStreakWithNoMatch(t *testing.T) {
	s := LongestStreak(nil, Is(Win))
	assert.Zero(t, s.Length)
	assert.Nil(t, s.Start)
	assert.Nil(t, s.End)

	matches := TeamMatches(outcomeSeq("Vasco", Loss, Draw), "Vasco")
	s = LongestStreak(matches, Is(Win))
	assert.Zero(t, s.Length)
	assert.Nil(t, s.Start)
}

func TestConditionString(t *testing.T) {
	assert.Equal(t, "outcome == W", Is(Win).String())
	assert.Equal(t, "outcome != L", IsNot(Loss).String())
}
