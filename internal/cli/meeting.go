package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/board-context/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the context for a meeting",
	Long:  "Seeds the framework layer with the meeting format and posts the format and topics into the discussion layers.",
	Args:  cobra.NoArgs,
	Run:   runInit,
}

var contributeCmd = &cobra.Command{
	Use:   "contribute <topic> [content]",
	Short: "Record a participant contribution",
	Long: "Records a contribution under a topic in active_discussion; sufficiently\n" +
		"important or explicitly flagged contributions are mirrored into key_points.",
	Args: cobra.MinimumNArgs(1),
	Run:  runContribute,
}

var concludeCmd = &cobra.Command{
	Use:   "conclude [history.json]",
	Short: "Generate the meeting-conclusion summary",
	Long: "Builds per-layer summaries, per-topic summaries for every topic in the\n" +
		"discussion history, and an overall summary. The history is a JSON array\n" +
		"of {topic, source, content} records read from the file or stdin.",
	Args: cobra.MaximumNArgs(1),
	Run:  runConclude,
}

func init() {
	initCmd.Flags().String("format", "standard", "Meeting format name")
	initCmd.Flags().StringSlice("topics", nil, "Meeting topics (comma-separated)")
	RootCmd.AddCommand(initCmd)

	contributeCmd.Flags().String("source", "unknown", "Participant name")
	contributeCmd.Flags().String("type", "discussion", "Contribution type")
	contributeCmd.Flags().Float64P("importance", "i", 0, "Importance 0..1 (default 0.5)")
	contributeCmd.Flags().Bool("key-point", false, "Flag as an explicit key point")
	RootCmd.AddCommand(contributeCmd)

	RootCmd.AddCommand(concludeCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	format, _ := cmd.Flags().GetString("format")
	topics, _ := cmd.Flags().GetStringSlice("topics")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}

	if err := s.InitializeContext(store.FormatConfig{Format: format, Topics: topics}); err != nil {
		exitErr("init", err)
	}
	saveStore(s)
	printJSON(s.Statistics())
}

func runContribute(cmd *cobra.Command, args []string) {
	topic := args[0]
	content := readContent(args[1:])
	if content == "" {
		exitErr("contribute", errEmptyContent)
	}

	source, _ := cmd.Flags().GetString("source")
	ctype, _ := cmd.Flags().GetString("type")
	keyPoint, _ := cmd.Flags().GetBool("key-point")

	c := store.Contribution{
		Content:    content,
		Source:     source,
		Type:       ctype,
		IsKeyPoint: keyPoint,
	}
	if cmd.Flags().Changed("importance") {
		imp, _ := cmd.Flags().GetFloat64("importance")
		c.Importance = &imp
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}

	if err := s.AddContribution(topic, c); err != nil {
		cmd.PrintErrf("warning: %v\n", err)
	}
	saveStore(s)

	entries := s.SearchByTopic(topic)
	if len(entries) == 0 {
		fmt.Println("[]")
		return
	}
	printJSON(entries)
}

func runConclude(cmd *cobra.Command, args []string) {
	var history []store.TurnRecord
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitErr("read history", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &history); err != nil {
			exitErr("parse history", err)
		}
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	printJSON(s.GenerateSummary(history))
}
