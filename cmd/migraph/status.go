package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"migraph/internal/errors"
	"migraph/internal/storage"
	"migraph/internal/version"
)

var statusFormat string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest analysis run",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusFormat, "format", "human", "Output format (json, human)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	_, _, store := mustSetup()
	defer store.Close()

	latest, err := store.LatestRun()
	if err != nil {
		if errors.IsCode(err, errors.NoRuns) {
			if OutputFormat(statusFormat) == FormatJSON {
				return printJSON(map[string]interface{}{
					"version":   version.Version,
					"latestRun": nil,
				})
			}
			fmt.Printf("migraph %s\n", version.Version)
			fmt.Println("No runs recorded yet. Run 'migraph analyze' first.")
			return nil
		}
		return err
	}

	if OutputFormat(statusFormat) == FormatJSON {
		return printJSON(map[string]interface{}{
			"version":   version.Version,
			"latestRun": latest,
		})
	}

	fmt.Printf("migraph %s\n\n", version.Version)
	printRun(latest)
	return nil
}

func printRun(run *storage.Run) {
	fmt.Printf("Run:      %s\n", run.ID)
	fmt.Printf("Created:  %s\n", run.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Facts:    %s\n", run.FactsPath)
	fmt.Printf("Graph:    %d nodes, %d edges\n", run.NodeCount, run.EdgeCount)
	fmt.Printf("Tiers:    %d safe, %d caution, %d unsafe\n", run.Safe, run.Caution, run.Unsafe)
	fmt.Printf("Duration: %dms\n", run.DurationMs)
}
