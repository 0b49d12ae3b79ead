package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/revlog-project/revlog/pkg/color"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [name]",
	Short: "Check durable log integrity",
	Long: `Re-read the durable revision logs and check their integrity. With no
argument, verifies every entry. A corrupted log is reported distinctly
from a missing entry.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := requireClient()
		defer client.Close()

		ctx := context.Background()
		names := []string{}
		if len(args) == 1 {
			names = append(names, args[0])
		} else {
			for _, info := range client.ListEntries(ctx) {
				names = append(names, info.Name)
			}
		}

		failed := 0
		for _, name := range names {
			if err := client.Verify(ctx, name); err != nil {
				failed++
				fmt.Printf("%s %s: %v\n", color.Error("FAIL"), name, err)
				continue
			}
			fmt.Printf("%s %s\n", color.Success("OK"), name)
		}

		if jsonOutput {
			outputJSON(map[string]any{"checked": len(names), "failed": failed})
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
