package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	v1 "github.com/aevon-lab/affinity/internal/api/v1"
	"github.com/aevon-lab/affinity/internal/collect"
	"github.com/aevon-lab/affinity/internal/reconcile"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	backfillGroup string
	backfillFile  string
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Reconcile a history dump for one group into today's counters",
	Long: "Reads a history pool (JSON, or YAML for .yaml/.yml files) and applies every message from today\n" +
		"that was not already ingested live. Running the same file twice changes nothing the second time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := readHistoryPool(backfillFile)
		if err != nil {
			return err
		}

		store, err := openStore(cmd, true)
		if err != nil {
			return err
		}
		defer store.Close()

		loc, err := cfg.Ingestion.Location()
		if err != nil {
			return err
		}

		svc := reconcile.NewService(store, collect.NewSequenceCache(), reconcile.Options{
			TopicThreshold: cfg.Ingestion.TopicThresholdDuration(),
			Location:       loc,
			MaxPoolSize:    cfg.Backfill.MaxPoolSize,
		})

		summary, err := svc.Reconcile(cmd.Context(), backfillGroup, pool)
		if err != nil {
			return err
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%s %s (group %s, day %s)\n", bold("Backfill"), summary.RunID, summary.GroupID, summary.Day)
		fmt.Printf("  received:        %d\n", summary.Received)
		fmt.Printf("  processed:       %s\n", color.GreenString("%d", summary.Processed))
		fmt.Printf("  skipped:         %s\n", color.YellowString("%d", summary.Skipped))
		fmt.Printf("    invalid:         %d\n", summary.Invalid)
		fmt.Printf("    duplicates:      %d\n", summary.Duplicates)
		fmt.Printf("    already indexed: %d\n", summary.AlreadyIndexed)
		fmt.Printf("    outside day:     %d\n", summary.OutsideDay)
		fmt.Printf("  topics: %d  repeats: %d  images: %d  replies: %d  mentions: %d\n",
			summary.Topics, summary.Repeats, summary.Images, summary.Replies, summary.Mentions)
		return nil
	},
}

func init() {
	backfillCmd.Flags().StringVarP(&backfillGroup, "group", "g", "", "Group id the history belongs to")
	backfillCmd.Flags().StringVarP(&backfillFile, "file", "f", "", "History pool file")
	_ = backfillCmd.MarkFlagRequired("group")
	_ = backfillCmd.MarkFlagRequired("file")
}

// readHistoryPool loads a pool file. YAML documents are converted to JSON
// first so that segments go through the same decoder as the HTTP API.
func readHistoryPool(path string) (v1.HistoryPool, error) {
	var pool v1.HistoryPool

	data, err := os.ReadFile(path)
	if err != nil {
		return pool, fmt.Errorf("reading history file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return pool, fmt.Errorf("parsing %s: %w", path, err)
		}
		if data, err = json.Marshal(doc); err != nil {
			return pool, fmt.Errorf("converting %s: %w", path, err)
		}
	}

	// A bare array of messages is accepted as well as {"messages": [...]}.
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &pool.Messages); err != nil {
			return pool, fmt.Errorf("parsing %s: %w", path, err)
		}
		return pool, nil
	}

	if err := json.Unmarshal(data, &pool); err != nil {
		return pool, fmt.Errorf("parsing %s: %w", path, err)
	}
	return pool, nil
}
