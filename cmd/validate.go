package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/smartfolder/smartfolder/internal/config"
	"github.com/spf13/cobra"
)

var validateConfigPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse and normalize a config file without starting any watchers",
	Long: `Loads and validates a config file the same way run does, but exits
immediately: 0 on success, non-zero on any validation error (spec §6's exit
code contract). With --verbose, also prints the normalized configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateConfigPath == "" {
			return fmt.Errorf("--config is required")
		}
		resolved, _, err := config.Load(validateConfigPath)
		if err != nil {
			return err
		}
		fmt.Printf("config is valid: %d folder(s), rootMode=%v\n", len(resolved.Folders), resolved.RootMode)
		if verbose {
			dump, err := json.MarshalIndent(resolved, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(dump))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateConfigPath, "config", "", "path to the JSON config file (required)")
	rootCmd.AddCommand(validateCmd)
}
