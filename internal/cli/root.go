// Package cli implements the board-context CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rcliao/board-context/internal/config"
	"github.com/rcliao/board-context/internal/store"
)

var (
	snapshotPath string
	configPath   string
	verbose      bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "board-context",
	Short: "Layered context management for multi-participant discussions",
	Long: "A CLI over the board-context store: four in-memory context layers with\n" +
		"promotion, retention, relevance search, and heuristic summaries.\n" +
		"State lives in a JSON snapshot file between invocations.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		godotenv.Load()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&snapshotPath, "snapshot", "s", "", "Snapshot file (default: $BOARD_CONTEXT_SNAPSHOT)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default: $BOARD_CONTEXT_CONFIG)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

func getSnapshotPath() string {
	if snapshotPath != "" {
		return snapshotPath
	}
	return os.Getenv("BOARD_CONTEXT_SNAPSHOT")
}

// openStore builds a store from config and loads the snapshot file when one
// is set.
func openStore() (*store.ContextStore, error) {
	cfg := &config.Config{}
	path := configPath
	if path == "" {
		path = os.Getenv("BOARD_CONTEXT_CONFIG")
	}
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	logCfg := cfg.Log
	if verbose {
		logCfg.Level = zerolog.LevelDebugValue
	}
	logger, err := logCfg.BuildLogger()
	if err != nil {
		return nil, err
	}

	s := store.New(store.Config{Layers: cfg.LayerConfigs(), Logger: &logger})

	if snap := getSnapshotPath(); snap != "" {
		if err := loadSnapshot(s, snap); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func loadSnapshot(s *store.ContextStore, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // first run
		}
		return fmt.Errorf("read snapshot: %w", err)
	}
	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}
	if _, err := s.Restore(&snap); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	return nil
}

// saveStore writes the store back to the snapshot file after a mutating
// command. A missing snapshot path means state is discarded on exit.
func saveStore(s *store.ContextStore) {
	path := getSnapshotPath()
	if path == "" {
		return
	}
	b, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		exitErr("encode snapshot", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		exitErr("write snapshot", err)
	}
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
