package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"migraph/internal/config"
	"migraph/internal/project"
)

var (
	initName     string
	initManifest bool
	initForce    bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a project for analysis",
	Long: `Create the .migraph state directory with a default config.json.
With --manifest, also write a migraph.toml project manifest at the root.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initName, "name", "", "Project name for the manifest (default: directory name)")
	initCmd.Flags().BoolVar(&initManifest, "manifest", false, "Also write a migraph.toml manifest")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing config")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := filepath.Join(projectRootFlag, config.Dir, "config.json")
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	cfg := config.DefaultConfig()
	cfg.ProjectRoot = projectRootFlag
	if err := cfg.Save(projectRootFlag); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", configPath)

	if initManifest {
		name := initName
		if name == "" {
			abs, err := filepath.Abs(projectRootFlag)
			if err != nil {
				return err
			}
			name = filepath.Base(abs)
		}
		manifest := &project.Manifest{
			Version:   1,
			Name:      name,
			Language:  "java",
			Target:    "go",
			FactsPath: cfg.Facts.Path,
		}
		if err := manifest.Save(projectRootFlag); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", filepath.Join(projectRootFlag, project.ManifestFile))
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Extract facts for your codebase into facts.json")
	fmt.Println("  2. Run 'migraph analyze' to build the graph and score it")
	fmt.Println("  3. Run 'migraph plan' to get the migration worklist")
	return nil
}
