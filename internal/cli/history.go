package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/revlog-project/revlog/pkg/color"
	"github.com/revlog-project/revlog/pkg/model"
)

var historyReverse bool

var historyCmd = &cobra.Command{
	Use:   "history <name>",
	Short: "Show an entry's revision history",
	Long: `Show an entry's revision history in chronological order.
Use --reverse for most-recent-first display.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := requireClient()
		defer client.Close()

		history, err := client.GetHistory(context.Background(), args[0])
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		if historyReverse {
			for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
				history[i], history[j] = history[j], history[i]
			}
		}

		if jsonOutput {
			outputJSON(history)
			return
		}
		for _, meta := range history {
			fmt.Printf("%s  %s  %s  %s\n",
				color.Highlight(fmt.Sprintf("r%d", meta.Sequence)),
				color.Faint(meta.CreatedAt.Format("2006-01-02 15:04")),
				model.DisplayAuthor(meta.Author),
				meta.Description)
		}
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyReverse, "reverse", false, "most recent first")
	rootCmd.AddCommand(historyCmd)
}
