package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thoughtfan/telegram-analysis-tools/internal/chunk"
	"github.com/thoughtfan/telegram-analysis-tools/internal/config"
	"github.com/thoughtfan/telegram-analysis-tools/internal/record"
	"github.com/thoughtfan/telegram-analysis-tools/internal/report"
)

func splitCmd() *cobra.Command {
	var prefix, summary string
	var maxChars int

	cmd := &cobra.Command{
		Use:   "split <input.txt>",
		Short: "Split a record file into bounded-size chunks",
		Long: `Greedily packs whole lines into numbered files under a character budget
and writes a CSV manifest recording the timestamp span each chunk covers.
Lines are never split; a single over-budget line becomes its own chunk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if maxChars <= 0 {
				maxChars = cfg.ChunkChars
			}

			rep := report.New(os.Stderr)
			inputPath := args[0]

			header, lines, err := record.ReadLines(inputPath)
			if err != nil {
				return err
			}
			rep.Printf("Splitting %q into chunks of at most %d characters", inputPath, maxChars)

			sp := chunk.NewSplitter(prefix, maxChars, rep)
			chunks, err := sp.Split(header, lines)
			if err != nil {
				return err
			}

			if err := chunk.WriteManifest(summary, chunks); err != nil {
				return err
			}

			rep.Printf("Successfully split into %d chunks", len(chunks))
			rep.Printf("Chunk summary saved to %s", summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "chunk_", "Chunk filename prefix")
	cmd.Flags().IntVar(&maxChars, "max-chars", 0, "Character budget per chunk (0 = config default)")
	cmd.Flags().StringVar(&summary, "summary", "chunk_summary.csv", "Manifest CSV path")

	return cmd
}
