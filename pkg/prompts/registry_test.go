package prompts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPrompts(t *testing.T) {
	pr := NewPromptRegistry()
	names := []string{}
	for _, p := range pr.ListPrompts() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"match_preview", "ranking_commentary", "team_report"}, names)

	res, err := pr.GetPrompt("match_preview", map[string]string{"home": "Bahia", "away": "Vitória"})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	assert.Contains(t, res.Messages[0].Content.Text, "home=Bahia and away=Vitória")
	assert.NotContains(t, res.Messages[0].Content.Text, "{{")

	_, err = pr.GetPrompt("match_preview", map[string]string{"home": "Bahia"})
	assert.ErrorContains(t, err, `"away"`)
	_, err = pr.GetPrompt("nope", nil)
	assert.Error(t, err)

	res, err = pr.GetPrompt("ranking_commentary", nil)
	require.NoError(t, err)
	assert.Contains(t, res.Messages[0].Content.Text, "sort= and")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "derby.json"),
		[]byte(`{"description":"Derby talk","arguments":[{"name":"team","required":true}],"content":"Derby day for {{team}}"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`ignored`), 0o644))

	pr := NewPromptRegistry()
	n, err := pr.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	res, err := pr.GetPrompt("derby", map[string]string{"team": "Grêmio"})
	require.NoError(t, err)
	assert.Equal(t, "Derby day for Grêmio", res.Messages[0].Content.Text)

	_, err = pr.LoadDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
