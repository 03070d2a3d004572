package cli

import (
	"github.com/spf13/cobra"
)

var contextCmd = &cobra.Command{
	Use:   "context <topic>",
	Short: "Assemble the discussion context for a topic",
	Long:  "Combines the topic summary, relevant entries, and the framework and key-points summaries into one result.",
	Args:  cobra.ExactArgs(1),
	Run:   runContext,
}

func init() {
	RootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	printJSON(s.GetContext(args[0], nil))
}
