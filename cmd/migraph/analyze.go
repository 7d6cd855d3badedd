package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	analyzeFacts  string
	analyzeFormat string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full analysis pipeline",
	Long: `Run the full pipeline: load the facts batch, build the dependency graph,
detect cycles, compute metrics, score every file, and record the run.

The facts batch is the JSON output of the parser stage. Its location is taken
from --facts, then migraph.toml, then the configured default.

Examples:
  migraph analyze
  migraph analyze --facts=build/facts.json
  migraph analyze --format=json`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeFacts, "facts", "", "Path to the facts batch")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "human", "Output format (json, human)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, logger, store := mustSetup()
	defer store.Close()

	factsPath, err := resolveFactsPath(analyzeFacts, cfg)
	if err != nil {
		return err
	}

	eng := newEngine(cfg, logger, store)
	result, err := eng.RunFile(context.Background(), factsPath)
	if err != nil {
		return err
	}

	if OutputFormat(analyzeFormat) == FormatJSON {
		return printJSON(map[string]interface{}{
			"run":     result.Run,
			"summary": result.Summary,
		})
	}

	fmt.Printf("Run %s\n", result.Run.ID)
	fmt.Printf("  Files analyzed: %d\n", result.Run.NodeCount)
	fmt.Printf("  Dependencies:   %d\n", result.Run.EdgeCount)
	fmt.Printf("  safe:    %d\n", result.Summary.Safe)
	fmt.Printf("  caution: %d\n", result.Summary.Caution)
	fmt.Printf("  unsafe:  %d\n", result.Summary.Unsafe)
	fmt.Printf("  Took %dms\n", result.Run.DurationMs)
	return nil
}
