// Package cli implements the revlog command line interface. It decodes
// user input into the core operation shapes and maps typed core failures
// to exit codes and messages; the core itself never logs or recovers.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/revlog-project/revlog/pkg/color"
)

var (
	jsonOutput  bool
	noColorFlag bool

	rootCmd = &cobra.Command{
		Use:   "revlog",
		Short: "revlog - versioned document collections",
		Long: `revlog manages named document collections ("entries") whose content
evolves through an ordered chain of immutable revisions. Each revision
records file additions, replacements, and removals plus a description and
an author. Snapshots at any revision are materialized on demand, and
entries carry a comment log independent of the revision chain.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			color.Init(noColorFlag)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// outputJSON prints v as indented JSON when --json is set.
func outputJSON(v any) error {
	if !jsonOutput {
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
