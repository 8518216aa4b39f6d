package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "smartfolder",
	Short:   "smartfolder - watch folders and let an agent organize what lands in them",
	Version: "v0.1.0",
	Long: `smartfolder watches one or more folders. When a file is added, it builds a
prompt from the folder's configured instructions plus the file's metadata
and content, and lets a tool-calling model rename, move, edit, or create
files inside that folder -- never outside it.`,
}

func Execute() {
	maybeRewriteArgsForInlineFolder()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "smartfolder: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lmicroseconds)
		} else {
			log.SetFlags(0)
		}
	}
}

// maybeRewriteArgsForInlineFolder supports the inline single-folder
// invocation `smartfolder <folder> --prompt "..."` by rewriting it to the
// `inline` subcommand when the first argument isn't a known command or
// flag, the same way the teacher's root.go rewrote a bare target name into
// `target <name>`.
func maybeRewriteArgsForInlineFolder() {
	args := os.Args[1:]
	if len(args) == 0 {
		return
	}
	first := strings.TrimSpace(args[0])
	if first == "" || strings.HasPrefix(first, "-") {
		return
	}
	if isKnownRootCommand(first) {
		return
	}
	rootCmd.SetArgs(append([]string{"inline"}, args...))
}

func isKnownRootCommand(name string) bool {
	for _, c := range rootCmd.Commands() {
		if c.Name() == name {
			return true
		}
		for _, a := range c.Aliases {
			if a == name {
				return true
			}
		}
	}
	return false
}
