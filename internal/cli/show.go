package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/revlog-project/revlog/pkg/color"
	"github.com/revlog-project/revlog/pkg/model"
)

var showNamesOnly bool

var showCmd = &cobra.Command{
	Use:   "show <name> [sequence]",
	Short: "Materialize an entry's file set at a revision",
	Long: `Materialize an entry's file set at the given revision (default:
latest) and print it.

Examples:
  revlog show snippets        # latest snapshot
  revlog show snippets 2      # snapshot at revision 2
  revlog show snippets --names-only`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		var sequence int64
		if len(args) == 2 {
			parsed, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				fmtErr("invalid sequence %q", args[1])
				os.Exit(1)
			}
			sequence = parsed
		}

		client := requireClient()
		defer client.Close()

		snap, err := client.GetSnapshot(context.Background(), args[0], sequence)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(snap)
			return
		}
		printSnapshot(args[0], snap)
	},
}

func printSnapshot(name string, snap *model.Snapshot) {
	fmt.Printf("%s @ revision %d by %s\n", color.Highlight(name), snap.Sequence,
		model.DisplayAuthor(snap.Author))
	if snap.Description != "" {
		fmt.Printf("  %s\n", snap.Description)
	}
	fmt.Printf("  %s\n", color.Faint(snap.CreatedAt.Format("2006-01-02 15:04:05 MST")))

	filenames := make([]string, 0, len(snap.Files))
	for filename := range snap.Files {
		filenames = append(filenames, filename)
	}
	sort.Strings(filenames)

	for _, filename := range filenames {
		fmt.Printf("\n--- %s ---\n", color.Success(filename))
		if !showNamesOnly {
			fmt.Println(snap.Files[filename])
		}
	}
	if len(filenames) == 0 {
		fmt.Println("\n(no files at this revision)")
	}
}

func init() {
	showCmd.Flags().BoolVar(&showNamesOnly, "names-only", false, "list filenames without contents")
	rootCmd.AddCommand(showCmd)
}
