package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/revlog-project/revlog/pkg/color"
)

var (
	updateFiles   []string
	updateRemoves []string
	updateMessage string
	updateAuthor  string
)

var updateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Append a new revision to an existing entry",
	Long: `Append a new revision to an existing entry. Files are stored as whole
documents; a --remove deletes the file from subsequent snapshots.

Examples:
  revlog update snippets -f main.go=./main.go -m "fix build"
  revlog update snippets --remove scratch.txt -m "tidy"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		changes, err := parseChanges(updateFiles, updateRemoves)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		client := requireClient()
		defer client.Close()

		rev, err := client.UpdateEntry(context.Background(), args[0], changes, updateMessage, updateAuthor)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(rev)
			return
		}
		fmt.Printf("Appended revision %s to %s\n",
			color.Highlight(fmt.Sprintf("%d", rev.Sequence)), args[0])
	},
}

func init() {
	updateCmd.Flags().StringArrayVarP(&updateFiles, "file", "f", nil, "file change as name=path ('-' for stdin)")
	updateCmd.Flags().StringArrayVar(&updateRemoves, "remove", nil, "filename to mark removed")
	updateCmd.Flags().StringVarP(&updateMessage, "message", "m", "", "revision description")
	updateCmd.Flags().StringVar(&updateAuthor, "author", "", "revision author (empty = anonymous)")
	rootCmd.AddCommand(updateCmd)
}
