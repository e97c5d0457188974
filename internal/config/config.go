package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/richard-senior/leaguestats/internal/logger"
)

// Environment variables read by Load
const (
	EnvSource          = "LEAGUESTATS_SOURCE"
	EnvSheet           = "LEAGUESTATS_SHEET"
	EnvTable           = "LEAGUESTATS_TABLE"
	EnvLogosFile       = "LEAGUESTATS_LOGOS_FILE"
	EnvPlaceholderLogo = "LEAGUESTATS_PLACEHOLDER_LOGO"
	EnvRecentWindow    = "LEAGUESTATS_RECENT_WINDOW"
	EnvHTTPAddr        = "LEAGUESTATS_HTTP_ADDR"
	EnvLogLevel        = "LEAGUESTATS_LOG_LEVEL"
	EnvPromptsDir      = "LEAGUESTATS_PROMPTS_DIR"
)

// DefaultPlaceholderLogo is shown for teams without a configured crest.
const DefaultPlaceholderLogo = "https://placehold.co/200x200/eeeeee/333333?text=Logo+N/A"

// Config holds everything the dashboard needs that is not in the match table itself.
type Config struct {
	Source          string            // path or URL of the match table
	Sheet           string            // xlsx sheet, first one when empty
	Table           string            // sqlite table name
	LogosFile       string            // JSON object of team name to crest URL
	Logos           map[string]string // team name to crest URL
	PlaceholderLogo string
	RecentWindow    int // matches in the recent form views
	HTTPAddr        string
	LogLevel        string
	PromptsDir      string // extra MCP prompts, one JSON file each
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Source:          "df.xlsx",
		Table:           "matches",
		Logos:           map[string]string{},
		PlaceholderLogo: DefaultPlaceholderLogo,
		RecentWindow:    3,
		HTTPAddr:        ":8080",
		LogLevel:        "INFO",
	}
}

// Load starts from Default, reads the given .env files (missing files are skipped), then
// applies LEAGUESTATS_* environment variables. Variables already set in the environment take
// precedence over .env values.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("No env file at", f)
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
		logger.Debug("Loaded env file", f)
	}

	cfg := Default()
	setString(&cfg.Source, EnvSource)
	setString(&cfg.Sheet, EnvSheet)
	setString(&cfg.Table, EnvTable)
	setString(&cfg.LogosFile, EnvLogosFile)
	setString(&cfg.PlaceholderLogo, EnvPlaceholderLogo)
	setString(&cfg.HTTPAddr, EnvHTTPAddr)
	setString(&cfg.LogLevel, EnvLogLevel)
	setString(&cfg.PromptsDir, EnvPromptsDir)
	if v, ok := os.LookupEnv(EnvRecentWindow); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer, got: %q", EnvRecentWindow, v)
		}
		cfg.RecentWindow = n
	}

	if cfg.LogosFile != "" {
		if err := cfg.LoadLogos(cfg.LogosFile); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func setString(dst *string, env string) {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}

// LoadLogos merges a JSON object of team name to crest URL into Logos.
func (c *Config) LoadLogos(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read logos file: %w", err)
	}
	logos := map[string]string{}
	if err := json.Unmarshal(data, &logos); err != nil {
		return fmt.Errorf("logos file %s is not a JSON object of strings: %w", path, err)
	}
	if c.Logos == nil {
		c.Logos = map[string]string{}
	}
	for team, url := range logos {
		c.Logos[team] = url
	}
	logger.Info(fmt.Sprintf("Loaded %d team logos from", len(logos)), path)
	return nil
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("no match table configured, set %s or -source", EnvSource)
	}
	if c.RecentWindow < 1 {
		return fmt.Errorf("RecentWindow must be at least 1, got: %d", c.RecentWindow)
	}
	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown log level: %q", c.LogLevel)
	}
	return nil
}
