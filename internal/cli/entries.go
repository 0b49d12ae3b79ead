package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revlog-project/revlog/pkg/color"
	"github.com/revlog-project/revlog/pkg/model"
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List all entries, most recently updated first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client := requireClient()
		defer client.Close()

		infos := client.ListEntries(context.Background())

		if jsonOutput {
			if infos == nil {
				outputJSON([]any{})
				return
			}
			outputJSON(infos)
			return
		}
		if len(infos) == 0 {
			fmt.Println("No entries.")
			return
		}
		for _, info := range infos {
			fmt.Printf("%s  r%d  %s  %s  %s\n",
				color.Highlight(info.Name),
				info.RevisionCount,
				color.Faint(info.UpdatedAt.Format("2006-01-02 15:04")),
				model.DisplayAuthor(info.LatestAuthor),
				info.LatestDescription)
		}
	},
}

func init() {
	rootCmd.AddCommand(entriesCmd)
}
