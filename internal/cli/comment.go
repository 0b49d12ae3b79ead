package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/revlog-project/revlog/pkg/color"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Manage an entry's comment log",
}

var commentAddCmd = &cobra.Command{
	Use:   "add <name> <text>...",
	Short: "Append a comment to an entry",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client := requireClient()
		defer client.Close()

		c, err := client.AddComment(context.Background(), args[0], strings.Join(args[1:], " "))
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(c)
			return
		}
		fmt.Printf("Commented on %s\n", color.Success(args[0]))
	},
}

var commentListCmd = &cobra.Command{
	Use:   "list <name>",
	Short: "List an entry's comments in insertion order",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := requireClient()
		defer client.Close()

		comments, err := client.ListComments(context.Background(), args[0])
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		if jsonOutput {
			if comments == nil {
				outputJSON([]any{})
				return
			}
			outputJSON(comments)
			return
		}
		if len(comments) == 0 {
			fmt.Println("No comments.")
			return
		}
		for _, c := range comments {
			fmt.Printf("%s  %s\n", color.Faint(c.CreatedAt.Format("2006-01-02 15:04")), c.Text)
		}
	},
}

func init() {
	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentListCmd)
	rootCmd.AddCommand(commentCmd)
}
