package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"migraph/internal/export"
)

var (
	exportRun      string
	exportOut      string
	exportFormat   string
	exportCompress bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a run's graph, metrics, and analysis to files",
	Long: `Write a recorded run to disk for downstream tools: graph, metrics,
and per-node analysis, as JSON or YAML, optionally gzip-compressed.

Examples:
  migraph export --out=./out
  migraph export --run=<run id> --format=yaml --compress`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportRun, "run", "", "Run id (default: latest run)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output directory (default: config export settings)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "File format (json, yaml)")
	exportCmd.Flags().BoolVar(&exportCompress, "compress", false, "Gzip every written file")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, logger, store := mustSetup()
	defer store.Close()

	runID := exportRun
	if runID == "" {
		latest, err := store.LatestRun()
		if err != nil {
			return err
		}
		runID = latest.ID
	}

	result, err := store.LoadResult(runID)
	if err != nil {
		return err
	}
	analyses, err := store.LoadAnalysis(runID)
	if err != nil {
		return err
	}

	format := exportFormat
	if format == "" {
		format = cfg.Export.Format
	}
	compress := exportCompress || cfg.Export.Compress

	written, err := export.NewExporter(logger).ExportRun(result, analyses, export.Options{
		OutDir:   exportOut,
		Format:   format,
		Compress: compress,
	})
	if err != nil {
		return err
	}

	for _, path := range written {
		fmt.Println(path)
	}
	return nil
}
