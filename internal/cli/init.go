package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/revlog-project/revlog/internal/repo"
	"github.com/revlog-project/revlog/pkg/color"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a new revlog data root",
	Long: `Initialize a new revlog data root in the given directory (default:
current directory).

This creates:
  - .revlog/ with format_version (version 1) and repo_id
  - a default config.yaml selecting the file store backend`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			fmtErr("create %s: %v", path, err)
			os.Exit(1)
		}

		r, err := repo.Init(path)
		if err != nil {
			fmtErr("failed to initialize data root: %v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(map[string]any{
				"root":           r.Root,
				"format_version": r.FormatVersion,
				"repo_id":        r.RepoID,
			})
			return
		}
		fmt.Printf("Initialized revlog data root in %s\n", color.Success(r.Root))
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
