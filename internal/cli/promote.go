package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var promoteCmd = &cobra.Command{
	Use:   "promote <entry-id> <target-layer>",
	Short: "Promote an entry to a higher layer",
	Long:  "Moves an entry into the target layer, subject to its promotion threshold (key_points: importance >= 0.5; persistent_knowledge: verified and importance >= 0.8).",
	Args:  cobra.ExactArgs(2),
	Run:   runPromote,
}

func init() {
	RootCmd.AddCommand(promoteCmd)
}

func runPromote(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}

	if err := s.PromoteByID(args[0], args[1]); err != nil {
		exitErr("promote", err)
	}
	saveStore(s)
	fmt.Printf("promoted %s to %s\n", args[0], args[1])
}
