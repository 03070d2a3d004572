package cli

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [layer]",
	Short: "Show layer statistics",
	Args:  cobra.MaximumNArgs(1),
	Run:   runStats,
}

func init() {
	RootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}

	if len(args) == 1 {
		st, err := s.LayerStatistics(args[0])
		if err != nil {
			exitErr("stats", err)
		}
		printJSON(st)
		return
	}
	printJSON(s.Statistics())
}
