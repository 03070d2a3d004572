package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/board-context/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search entries by keyword relevance",
	Long:  "Scores entries against the query by keyword overlap, recency, and importance, best match first.",
	Args:  cobra.MinimumNArgs(1),
	Run:   runSearch,
}

var topicCmd = &cobra.Command{
	Use:   "topic <topic>",
	Short: "List entries matching a topic",
	Args:  cobra.ExactArgs(1),
	Run:   runTopic,
}

var timeframeCmd = &cobra.Command{
	Use:   "timeframe",
	Short: "List entries within a time range",
	Long:  "Lists entries between --start and --end (RFC3339), newest first. Either bound may be omitted.",
	Args:  cobra.NoArgs,
	Run:   runTimeframe,
}

func init() {
	searchCmd.Flags().StringSlice("layers", nil, "Layers to search (default: all)")
	searchCmd.Flags().Float64("min-relevance", 0, "Minimum relevance score (default 0.3)")
	RootCmd.AddCommand(searchCmd)

	topicCmd.Flags().StringSlice("layers", nil, "Layers to search (default: all)")
	RootCmd.AddCommand(topicCmd)

	timeframeCmd.Flags().String("start", "", "Range start (RFC3339)")
	timeframeCmd.Flags().String("end", "", "Range end (RFC3339)")
	timeframeCmd.Flags().StringSlice("layers", nil, "Layers to search (default: all)")
	RootCmd.AddCommand(timeframeCmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	layers, _ := cmd.Flags().GetStringSlice("layers")
	minRel, _ := cmd.Flags().GetFloat64("min-relevance")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}

	results := s.Search(store.SearchParams{
		Query:        strings.Join(args, " "),
		TargetLayers: layers,
		MinRelevance: minRel,
	})
	if len(results) == 0 {
		fmt.Println("[]")
		return
	}
	printJSON(results)
}

func runTopic(cmd *cobra.Command, args []string) {
	layers, _ := cmd.Flags().GetStringSlice("layers")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}

	results := s.SearchByTopic(args[0], layers...)
	if len(results) == 0 {
		fmt.Println("[]")
		return
	}
	printJSON(results)
}

func parseTimeFlag(cmd *cobra.Command, name string) *time.Time {
	val, _ := cmd.Flags().GetString(name)
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		exitErr("parse --"+name, err)
	}
	return &t
}

func runTimeframe(cmd *cobra.Command, args []string) {
	start := parseTimeFlag(cmd, "start")
	end := parseTimeFlag(cmd, "end")
	layers, _ := cmd.Flags().GetStringSlice("layers")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}

	results := s.SearchByTimeframe(start, end, layers...)
	if len(results) == 0 {
		fmt.Println("[]")
		return
	}
	printJSON(results)
}
