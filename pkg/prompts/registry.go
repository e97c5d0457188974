package prompts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/richard-senior/leaguestats/internal/logger"
	"github.com/richard-senior/leaguestats/pkg/protocol"
)

// PromptRegistry holds the prompts offered over prompts/list and prompts/get
type PromptRegistry struct {
	mu      sync.RWMutex
	prompts map[string]protocol.Prompt
}

// NewPromptRegistry creates a registry holding the built in league prompts
func NewPromptRegistry() *PromptRegistry {
	pr := &PromptRegistry{prompts: map[string]protocol.Prompt{}}
	for _, p := range builtin {
		pr.Add(p)
	}
	return pr
}

// Add registers a prompt, replacing any prompt with the same name.
func (pr *PromptRegistry) Add(p protocol.Prompt) {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	pr.prompts[p.Name] = p
}

// promptFile is the on-disk form of a prompt.
type promptFile struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Arguments   []protocol.PromptArgument `json:"arguments"`
	Content     string                    `json:"content"`
}

// LoadDir adds every *.json prompt in dir. Files that cannot be read are logged and skipped.
func (pr *PromptRegistry) LoadDir(dir string) (int, error) {
	loaded := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Failed to read prompt", path, err)
			return nil
		}
		var f promptFile
		if err := json.Unmarshal(data, &f); err != nil {
			logger.Warn("Failed to parse prompt", path, err)
			return nil
		}
		if f.Name == "" {
			f.Name = strings.TrimSuffix(d.Name(), ".json")
		}
		if f.Content == "" {
			logger.Warn("Skipping prompt with no content", path)
			return nil
		}
		pr.Add(protocol.Prompt{Name: f.Name, Description: f.Description, Arguments: f.Arguments, Content: f.Content})
		loaded++
		return nil
	})
	if err != nil {
		return loaded, fmt.Errorf("failed to load prompts from %s: %w", dir, err)
	}
	logger.Info(fmt.Sprintf("Loaded %d prompts from", loaded), dir)
	return loaded, nil
}

// ListPrompts returns the prompts sorted by name
func (pr *PromptRegistry) ListPrompts() []protocol.Prompt {
	pr.mu.RLock()
	defer pr.mu.RUnlock()
	out := make([]protocol.Prompt, 0, len(pr.prompts))
	for _, p := range pr.prompts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetPrompt renders a prompt, replacing each {{argument}} with its value.
func (pr *PromptRegistry) GetPrompt(name string, args map[string]string) (*protocol.GetPromptResult, error) {
	pr.mu.RLock()
	p, ok := pr.prompts[name]
	pr.mu.RUnlock()
	if !ok {
		return nil, protocol.NewInvalidParamsError("prompt not found: %s", name)
	}

	content := p.Content
	for _, a := range p.Arguments {
		v := strings.TrimSpace(args[a.Name])
		if v == "" && a.Required {
			return nil, protocol.NewInvalidParamsError("prompt %s needs argument %q", name, a.Name)
		}
		content = strings.ReplaceAll(content, "{{"+a.Name+"}}", v)
	}

	return &protocol.GetPromptResult{
		Description: p.Description,
		Messages: []protocol.PromptMessage{
			{Role: "user", Content: protocol.TextContent(content)},
		},
	}, nil
}

var builtin = []protocol.Prompt{
	{
		Name:        "match_preview",
		Description: "Preview an upcoming fixture from the match log",
		Arguments: []protocol.PromptArgument{
			{Name: "home", Description: "Home team", Required: true},
			{Name: "away", Description: "Away team", Required: true},
		},
		Content: "Write a short preview of {{home}} (home) against {{away}} (away).\n" +
			"Call team_duel with home={{home}} and away={{away}}, then comment on:\n" +
			"- how each side performs at this venue\n" +
			"- their recent form\n" +
			"- previous meetings\n" +
			"Only use figures returned by the tools.",
	},
	{
		Name:        "team_report",
		Description: "Summarise a team's season so far",
		Arguments: []protocol.PromptArgument{
			{Name: "team", Description: "Team to report on", Required: true},
		},
		Content: "Call team_overview for {{team}} and write a season report covering league position, " +
			"home and away record, goal difference trend and the longest runs. Only use figures returned by the tool.",
	},
	{
		Name:        "ranking_commentary",
		Description: "Comment on the league table",
		Arguments: []protocol.PromptArgument{
			{Name: "sort", Description: "points, attack, defense, ppg or gpg"},
		},
		Content: "Call league_ranking with sort={{sort}} and describe the top and the bottom of the table, " +
			"pointing out teams separated only by the tie-breakers.",
	},
}
