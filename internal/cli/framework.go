package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/board-context/internal/model"
	"github.com/rcliao/board-context/internal/store"
)

var frameworkCmd = &cobra.Command{
	Use:   "framework [content]",
	Short: "Add a meeting framework entry",
	Long:  "Adds agenda or structural information to meeting_framework and boosts topic-related discussion entries.",
	Args:  cobra.ArbitraryArgs,
	Run:   runFramework,
}

func init() {
	frameworkCmd.Flags().Float64P("importance", "i", 0, "Importance 0..1 (default 1.0)")
	frameworkCmd.Flags().String("topic", "", "Topic attribute")
	frameworkCmd.Flags().StringSlice("topics", nil, "Topics the framework entry relates to")
	RootCmd.AddCommand(frameworkCmd)
}

func runFramework(cmd *cobra.Command, args []string) {
	content := readContent(args)
	if content == "" {
		exitErr("framework", errEmptyContent)
	}

	topic, _ := cmd.Flags().GetString("topic")
	topics, _ := cmd.Flags().GetStringSlice("topics")

	p := store.FrameworkParams{
		Content: content,
		Attrs: &model.Attributes{
			Topic:  topic,
			Topics: topics,
		},
	}
	if cmd.Flags().Changed("importance") {
		imp, _ := cmd.Flags().GetFloat64("importance")
		p.Importance = &imp
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}

	e := s.UpdateFramework(p)
	saveStore(s)
	printJSON(e)
}
