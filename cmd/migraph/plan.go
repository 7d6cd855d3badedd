package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"migraph/internal/plan"
)

var (
	planRun    string
	planFormat string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Derive the migration worklist from a run",
	Long: `Build the migration plan for a recorded run: safe files queued for
unattended migration, caution files for review, unsafe files blocked.
Operator waivers in .migraph/plan.toml move files between buckets without
touching the recorded analysis.

Examples:
  migraph plan                 # latest run
  migraph plan --run=<run id>
  migraph plan --format=json`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVar(&planRun, "run", "", "Run id (default: latest run)")
	planCmd.Flags().StringVar(&planFormat, "format", "human", "Output format (json, human)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	_, _, store := mustSetup()
	defer store.Close()

	runID := planRun
	if runID == "" {
		latest, err := store.LatestRun()
		if err != nil {
			return err
		}
		runID = latest.ID
	}

	analyses, err := store.LoadAnalysis(runID)
	if err != nil {
		return err
	}
	waivers, err := plan.LoadWaivers(projectRootFlag)
	if err != nil {
		return err
	}
	p := plan.Build(runID, analyses, waivers)

	if OutputFormat(planFormat) == FormatJSON {
		return printJSON(p)
	}

	fmt.Printf("Migration plan for run %s\n\n", p.RunID)
	fmt.Printf("Auto-migrate (%d):\n", len(p.AutoMigrate))
	for _, item := range p.AutoMigrate {
		printPlanItem(item)
	}
	fmt.Printf("\nNeeds review (%d):\n", len(p.NeedsReview))
	for _, item := range p.NeedsReview {
		printPlanItem(item)
	}
	fmt.Printf("\nBlocked (%d):\n", len(p.Blocked))
	for _, item := range p.Blocked {
		printPlanItem(item)
	}
	return nil
}

func printPlanItem(item plan.Item) {
	marker := ""
	if item.Waived {
		marker = fmt.Sprintf("  [waived: %s]", item.WaiverReason)
	}
	fmt.Printf("  %-60s risk=%-3d conv=%-3d%s\n",
		item.FilePath, item.RiskScore, item.ConvertibilityScore, marker)
}
