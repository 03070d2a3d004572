package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/board-context/internal/model"
	"github.com/rcliao/board-context/internal/store"
)

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge [content]",
	Short: "Add an entry to persistent knowledge",
	Long:  "Adds a verified fact to persistent_knowledge with keyword indexing and relationship tracking.",
	Args:  cobra.ArbitraryArgs,
	Run:   runKnowledge,
}

func init() {
	knowledgeCmd.Flags().Float64P("importance", "i", 0, "Importance 0..1 (default 0.8)")
	knowledgeCmd.Flags().String("topic", "", "Topic attribute")
	knowledgeCmd.Flags().StringSlice("topics", nil, "Additional topics (comma-separated)")
	knowledgeCmd.Flags().Bool("verified", true, "Mark the entry verified")
	RootCmd.AddCommand(knowledgeCmd)
}

func runKnowledge(cmd *cobra.Command, args []string) {
	content := readContent(args)
	if content == "" {
		exitErr("knowledge", errEmptyContent)
	}

	topic, _ := cmd.Flags().GetString("topic")
	topics, _ := cmd.Flags().GetStringSlice("topics")
	verified, _ := cmd.Flags().GetBool("verified")

	p := store.KnowledgeParams{
		Content: content,
		Attrs: &model.Attributes{
			Topic:    topic,
			Topics:   topics,
			Verified: verified,
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

	e := s.AddKnowledge(p)
	saveStore(s)
	printJSON(e)
}
