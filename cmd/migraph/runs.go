package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	runsLimit  int
	runsFormat string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded analysis runs",
	RunE:  runRuns,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a single recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsShowCmd)

	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to list")
	runsCmd.Flags().StringVar(&runsFormat, "format", "human", "Output format (json, human)")
}

func runRuns(cmd *cobra.Command, args []string) error {
	_, _, store := mustSetup()
	defer store.Close()

	runs, err := store.ListRuns(runsLimit)
	if err != nil {
		return err
	}

	if OutputFormat(runsFormat) == FormatJSON {
		return printJSON(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet. Run 'migraph analyze' first.")
		return nil
	}
	fmt.Printf("%-38s %-20s %6s %6s %6s %8s %7s\n",
		"RUN", "CREATED", "NODES", "SAFE", "CAUT", "UNSAFE", "MS")
	for _, run := range runs {
		fmt.Printf("%-38s %-20s %6d %6d %6d %8d %7d\n",
			run.ID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.NodeCount, run.Safe, run.Caution, run.Unsafe, run.DurationMs)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	_, _, store := mustSetup()
	defer store.Close()

	run, err := store.GetRun(args[0])
	if err != nil {
		return err
	}

	if OutputFormat(runsFormat) == FormatJSON {
		return printJSON(run)
	}
	printRun(run)
	return nil
}
