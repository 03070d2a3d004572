package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/board-context/internal/model"
)

var clearCmd = &cobra.Command{
	Use:   "clear [layer]",
	Short: "Drop entries older than a cutoff",
	Long:  "Removes entries older than --max-age-hours from the given layer, or from active_discussion by default.",
	Args:  cobra.MaximumNArgs(1),
	Run:   runClear,
}

func init() {
	clearCmd.Flags().Float64("max-age-hours", 24, "Drop entries older than this many hours")
	RootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) {
	layerName := model.ActiveDiscussion
	if len(args) == 1 {
		layerName = args[0]
	}
	maxAge, _ := cmd.Flags().GetFloat64("max-age-hours")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}

	if err := s.ClearOldEntries(layerName, maxAge); err != nil {
		exitErr("clear", err)
	}
	saveStore(s)
	fmt.Printf("cleared %s entries older than %.1fh\n", layerName, maxAge)
}
