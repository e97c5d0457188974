package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/richard-senior/leaguestats/internal/config"
	"github.com/richard-senior/leaguestats/internal/logger"
	"github.com/richard-senior/leaguestats/internal/processor"
	"github.com/richard-senior/leaguestats/pkg/api"
	"github.com/richard-senior/leaguestats/pkg/crest"
	"github.com/richard-senior/leaguestats/pkg/dashboard"
	"github.com/richard-senior/leaguestats/pkg/prompts"
	"github.com/richard-senior/leaguestats/pkg/resources"
	"github.com/richard-senior/leaguestats/pkg/server"
	"github.com/richard-senior/leaguestats/pkg/source"
	"github.com/richard-senior/leaguestats/pkg/tools"
	"github.com/richard-senior/leaguestats/pkg/transport"
)

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging")
	envFile := flag.String("env", ".env", "Env file with LEAGUESTATS_* settings (skipped when missing)")
	mode := flag.String("mode", "mcp", "What to run: mcp (stdio server), http or query")
	src := flag.String("source", "", "Match table path or URL (overrides "+config.EnvSource+")")
	sheet := flag.String("sheet", "", "Worksheet to read from an xlsx source")
	table := flag.String("table", "", "Table to read from a sqlite source")
	logos := flag.String("logos", "", "JSON file of team name to crest URL")
	window := flag.Int("window", 0, "Matches in the recent form views")
	addr := flag.String("addr", "", "HTTP listen address in http mode")
	inputFile := flag.String("input", "", "Query mode input file (if not provided, arguments or stdin are used)")
	outputFile := flag.String("output", "", "Query mode output file (if not provided, stdout is used)")
	format := flag.String("format", "json", "Query mode output: json or markdown")
	flag.Parse()

	// stdout carries protocol frames in mcp mode
	logger.SetOutput(os.Stderr, os.Stderr)
	logger.SetShowDateTime(true)

	cfg, err := config.Load(*envFile)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	override(&cfg.Source, *src)
	override(&cfg.Sheet, *sheet)
	override(&cfg.Table, *table)
	override(&cfg.HTTPAddr, *addr)
	if *logos != "" {
		if err := cfg.LoadLogos(*logos); err != nil {
			logger.Fatal("Failed to load logos", err)
		}
	}
	if *window != 0 {
		cfg.RecentWindow = *window
	}
	if *debug {
		cfg.LogLevel = logger.DEBUG.String()
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", err)
	}
	level, _ := logger.ParseLevel(cfg.LogLevel)
	logger.SetLevel(level)
	logger.Debug("Configuration", cfg)

	cache := source.NewCache(source.OpenLenient(cfg.Source, source.Options{Sheet: cfg.Sheet, Table: cfg.Table}))
	board := dashboard.New(cache, crest.NewResolver(cfg.Logos, cfg.PlaceholderLogo), cfg.RecentWindow)

	switch *mode {
	case "mcp":
		err = runMCP(cfg, board)
	case "http":
		err = runHTTP(cfg, board)
	case "query":
		err = runQuery(board, *inputFile, *outputFile, *format == "markdown")
	default:
		err = fmt.Errorf("unknown mode %q (want mcp, http or query)", *mode)
	}
	if err != nil {
		logger.Fatal("leaguestats failed", err)
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func runMCP(cfg *config.Config, board *dashboard.Dashboard) error {
	registry := prompts.NewPromptRegistry()
	if cfg.PromptsDir != "" {
		if _, err := registry.LoadDir(cfg.PromptsDir); err != nil {
			logger.Warn("Continuing with the built in prompts only", err)
		}
	}
	s := server.New(transport.NewStdioTransport(), resources.NewCatalog(board), registry)
	s.RegisterToolbox(tools.NewToolbox(board))
	if err := s.Start(); err != nil {
		return err
	}
	logger.Info("MCP server shutting down")
	return nil
}

func runHTTP(cfg *config.Config, board *dashboard.Dashboard) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return api.New(board, server.Version).Serve(ctx, cfg.HTTPAddr)
}

func runQuery(board *dashboard.Dashboard, inputFile, outputFile string, markdown bool) error {
	var input []byte
	var err error
	switch {
	case inputFile != "":
		input, err = os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
	case flag.NArg() > 0:
		input, err = json.Marshal(processor.QueryRequest{
			Query:     strings.Join(flag.Args(), " "),
			RequestID: fmt.Sprintf("cli-%d", os.Getpid()),
		})
		if err != nil {
			return err
		}
	default:
		input, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read from stdin: %w", err)
		}
	}

	result, err := processor.ProcessRequest(board, input, markdown)
	if err != nil {
		return err
	}
	if outputFile != "" {
		return os.WriteFile(outputFile, result, 0o644)
	}
	_, err = os.Stdout.Write(result)
	return err
}
