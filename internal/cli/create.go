package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/revlog-project/revlog/pkg/color"
)

var (
	createFiles   []string
	createRemoves []string
	createMessage string
	createAuthor  string
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new entry with its first revision",
	Long: `Create a new entry with its first revision.

Examples:
  revlog create snippets -f main.go=./main.go -m "initial"
  revlog create notes -f today.md=- -m "from stdin" --author alice`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		changes, err := parseChanges(createFiles, createRemoves)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		client := requireClient()
		defer client.Close()

		rev, err := client.CreateEntry(context.Background(), args[0], changes, createMessage, createAuthor)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(rev)
			return
		}
		fmt.Printf("Created entry %s at revision %d\n", color.Success(args[0]), rev.Sequence)
	},
}

func init() {
	createCmd.Flags().StringArrayVarP(&createFiles, "file", "f", nil, "file change as name=path ('-' for stdin)")
	createCmd.Flags().StringArrayVar(&createRemoves, "remove", nil, "filename to mark removed")
	createCmd.Flags().StringVarP(&createMessage, "message", "m", "", "revision description")
	createCmd.Flags().StringVar(&createAuthor, "author", "", "revision author (empty = anonymous)")
	rootCmd.AddCommand(createCmd)
}
