package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"migraph/internal/facts"
	"migraph/internal/graph"
)

var (
	graphFacts  string
	graphFormat string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Build and print the dependency graph",
	Long: `Run only the graph stage: build nodes and resolved edges from the facts
batch, detect cycles, and compute structural metrics. Nothing is persisted;
use this to inspect graph construction before a full analyze.

Examples:
  migraph graph
  migraph graph --facts=build/facts.json --format=json`,
	RunE: runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringVar(&graphFacts, "facts", "", "Path to the facts batch")
	graphCmd.Flags().StringVar(&graphFormat, "format", "human", "Output format (json, human)")
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg, _, store := mustSetup()
	defer store.Close()

	factsPath, err := resolveFactsPath(graphFacts, cfg)
	if err != nil {
		return err
	}

	batch, err := facts.LoadBatch(factsPath)
	if err != nil {
		return err
	}
	result := graph.NewBuilder(batch.Files).Build()

	if OutputFormat(graphFormat) == FormatJSON {
		return printJSON(result)
	}

	cycles := 0
	for _, n := range result.Graph.Nodes {
		if n.InCycle {
			cycles++
		}
	}
	fmt.Printf("Nodes: %d\n", len(result.Graph.Nodes))
	fmt.Printf("Edges: %d\n", len(result.Graph.Edges))
	fmt.Printf("Nodes in cycles: %d\n", cycles)
	return nil
}
