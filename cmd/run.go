package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/smartfolder/smartfolder/internal/config"
	"github.com/smartfolder/smartfolder/internal/supervisor"
	"github.com/spf13/cobra"
)

var (
	runConfigPath string
	runDryRun     bool
	runOnce       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch every folder (or root directory) declared in a config file",
	Long: `Loads a JSON config file (spec §6) describing either a fixed list of
folders or one or more rootDirectories to scan for smartfolder.md files, and
watches them until a shutdown signal arrives.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runConfigPath == "" {
			return fmt.Errorf("--config is required")
		}
		resolved, raw, err := config.Load(runConfigPath)
		if err != nil {
			return err
		}
		if runDryRun {
			for i := range resolved.Folders {
				resolved.Folders[i].DryRun = true
			}
			raw.DryRun = true
		}

		gateway, err := buildGateway(resolved.AI)
		if err != nil {
			return err
		}
		if gateway == nil && !runDryRun {
			log.Printf("run: no AI gateway credential found (AI_GATEWAY_API_KEY or ~/.smartfolder/token); jobs will fail until one is configured")
		}

		sup := supervisor.New(resolved, raw, gateway)
		if runOnce {
			return sup.RunOnce()
		}
		return sup.Run(context.Background())
	},
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "path to the JSON config file (required)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "force every folder into dry-run mode regardless of config")
	runCmd.Flags().BoolVar(&runOnce, "run-once", false, "start every watcher, confirm readiness, then exit without processing events")
	rootCmd.AddCommand(runCmd)
}
