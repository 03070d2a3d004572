package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Render a context summary",
	Long: "Renders a multi-layer summary by default. Use --layer for a single\n" +
		"layer or --topic for a topic summary; --window limits entries by age.",
	Args: cobra.NoArgs,
	Run:  runSummary,
}

func init() {
	summaryCmd.Flags().StringP("layer", "l", "", "Summarize a single layer")
	summaryCmd.Flags().StringP("topic", "t", "", "Summarize entries matching a topic")
	summaryCmd.Flags().Duration("window", 0, "Only include entries newer than this (e.g. 2h)")
	summaryCmd.Flags().Float64("min-importance", 0, "Minimum importance (single-layer only)")
	summaryCmd.Flags().StringSlice("layers", nil, "Layers for the multi-layer summary (default: all)")
	RootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) {
	layerName, _ := cmd.Flags().GetString("layer")
	topic, _ := cmd.Flags().GetString("topic")
	window, _ := cmd.Flags().GetDuration("window")
	minImp, _ := cmd.Flags().GetFloat64("min-importance")
	layers, _ := cmd.Flags().GetStringSlice("layers")

	var win *time.Duration
	if window > 0 {
		win = &window
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}

	switch {
	case topic != "":
		fmt.Println(s.TopicSummary(topic, layers...))
	case layerName != "":
		out, err := s.LayerSummary(layerName, win, minImp)
		if err != nil {
			exitErr("summary", err)
		}
		fmt.Println(out)
	default:
		fmt.Println(s.MultiLayerSummary(layers, win))
	}
}
