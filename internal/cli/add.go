package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/board-context/internal/model"
	"github.com/rcliao/board-context/internal/store"
)

var errEmptyContent = errors.New("content is empty")

var addCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Add an entry to a context layer",
	Long:  "Adds an entry to the given layer. Content is taken from the argument, or from stdin when omitted.",
	Args:  cobra.ArbitraryArgs,
	Run:   runAdd,
}

func init() {
	addCmd.Flags().String("source", "unknown", "Who produced the entry")
	addCmd.Flags().StringP("layer", "l", model.ActiveDiscussion, "Target layer")
	addCmd.Flags().Float64P("importance", "i", 0, "Importance 0..1 (default: layer default)")
	addCmd.Flags().String("topic", "", "Topic attribute")
	addCmd.Flags().StringSlice("topics", nil, "Additional topics (comma-separated)")
	addCmd.Flags().Bool("key-point", false, "Flag as an explicit key point")
	RootCmd.AddCommand(addCmd)
}

func readContent(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}
	return strings.TrimSpace(string(data))
}

func runAdd(cmd *cobra.Command, args []string) {
	content := readContent(args)
	if content == "" {
		exitErr("add", errEmptyContent)
	}

	source, _ := cmd.Flags().GetString("source")
	layerName, _ := cmd.Flags().GetString("layer")
	topic, _ := cmd.Flags().GetString("topic")
	topics, _ := cmd.Flags().GetStringSlice("topics")
	keyPoint, _ := cmd.Flags().GetBool("key-point")

	p := store.AddParams{
		Content: content,
		Source:  source,
		Layer:   layerName,
		Attrs: &model.Attributes{
			Topic:      topic,
			Topics:     topics,
			IsKeyPoint: keyPoint,
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

	e, err := s.AddEntry(p)
	if err != nil {
		// Auto-promotion can be rejected while the entry itself lands.
		if e == nil {
			exitErr("add entry", err)
		}
		cmd.PrintErrf("warning: %v\n", err)
	}

	saveStore(s)
	printJSON(e)
}
