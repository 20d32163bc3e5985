package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vinothezhumalai/legalmcpserver/internal/config"
	"github.com/vinothezhumalai/legalmcpserver/internal/oracle"
	"github.com/vinothezhumalai/legalmcpserver/internal/orchestration"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "legalmcp",
		Short: "legalmcp - MCP server for legal document analysis and quality scoring",
		Long: `legalmcp analyzes legal documents and grades the quality of the analysis.

It summarizes and classifies documents through an LLM oracle, then judges
both outputs across 14 weighted criteria to produce a deterministic quality
scoreboard with tier counts, benchmark comparison, and trend tracking.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newEvaluateCommand())
	cmd.AddCommand(newAnalyzeCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// buildService loads project config and wires the document pipeline against
// the live oracle. The API key comes from the environment, never from config
// files.
func buildService(logger *slog.Logger) (*orchestration.Service, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}

	completer := oracle.NewAnthropicCompleter(apiKey, cfg.Oracle.Model, logger)

	cacheDir := ""
	if cfg.Cache.Enabled != nil && *cfg.Cache.Enabled {
		cacheDir = cfg.Cache.Dir
	}

	return orchestration.NewService(completer, orchestration.Options{
		Model:           cfg.Oracle.Model,
		MaxTokens:       int64(cfg.Oracle.MaxTokens),
		HistoryCapacity: cfg.History.Capacity,
		CacheDir:        cacheDir,
		Logger:          logger,
	}), nil
}
