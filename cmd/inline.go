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
	inlinePrompt  string
	inlineDryRun  bool
	inlineRunOnce bool
)

// inlineCmd backs the no-config single-folder invocation documented in
// spec.md §6: `smartfolder <folder> --prompt "..."`. root.go rewrites a bare
// folder argument into `inline <folder> ...` before cobra parses it.
var inlineCmd = &cobra.Command{
	Use:    "inline <folder>",
	Hidden: true,
	Args:   cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if inlinePrompt == "" {
			return fmt.Errorf("--prompt is required")
		}
		resolved, raw, err := config.ForSingleFolder(args[0], inlinePrompt, inlineDryRun)
		if err != nil {
			return err
		}

		gateway, err := buildGateway(resolved.AI)
		if err != nil {
			return err
		}
		if gateway == nil && !inlineDryRun {
			log.Printf("inline: no AI gateway credential found (AI_GATEWAY_API_KEY or ~/.smartfolder/token); jobs will fail until one is configured")
		}

		sup := supervisor.New(resolved, raw, gateway)
		if inlineRunOnce {
			return sup.RunOnce()
		}
		return sup.Run(context.Background())
	},
}

func init() {
	inlineCmd.Flags().StringVar(&inlinePrompt, "prompt", "", "instructions for this folder (required)")
	inlineCmd.Flags().BoolVar(&inlineDryRun, "dry-run", false, "report what tools would do without mutating the folder")
	inlineCmd.Flags().BoolVar(&inlineRunOnce, "run-once", false, "start the watcher, confirm readiness, then exit without processing events")
	rootCmd.AddCommand(inlineCmd)
}
