package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thoughtfan/telegram-analysis-tools/internal/config"
	"github.com/thoughtfan/telegram-analysis-tools/internal/noise"
	"github.com/thoughtfan/telegram-analysis-tools/internal/record"
	"github.com/thoughtfan/telegram-analysis-tools/internal/report"
)

func filterCmd() *cobra.Command {
	var minLength int
	var startMsg int64
	var startDate string

	cmd := &cobra.Command{
		Use:   "filter <input.txt> <output.txt>",
		Short: "Remove conversational noise from pipe-delimited records",
		Long: `Classifies each record's text against the configured low-information
patterns (acknowledgements, emoji-only, URL-only, off-topic redirections) and
drops matches. Optionally restricts the pass to messages at or after a given
id or date.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			rep := report.New(os.Stderr)

			cls, err := noise.NewClassifier(cfg, minLength)
			if err != nil {
				return fmt.Errorf("build classifier: %w", err)
			}

			rng := noise.NewRangeFilter()
			if cmd.Flags().Changed("start-msg") {
				rng.SetStartID(startMsg)
			}
			if startDate != "" {
				ts, err := noise.ResolveStartDate(startDate)
				if err != nil {
					rep.Printf("Warning: %v. Using all messages.", err)
				} else {
					rng.SetStartUnixtime(ts)
				}
			}

			inputPath, outputPath := args[0], args[1]
			header, lines, err := record.ReadLines(inputPath)
			if err != nil {
				return err
			}
			rep.Printf("Read %d lines from %q", len(lines), inputPath)

			kept, stats := noise.NewFilter(cls, rng).Run(lines)
			stats.Report(rep)

			var b strings.Builder
			if header != "" {
				b.WriteString(header)
				b.WriteString("\n")
			}
			for _, line := range kept {
				b.WriteString(line)
				b.WriteString("\n")
			}
			if err := os.WriteFile(outputPath, []byte(b.String()), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			if info, err := os.Stat(inputPath); err == nil {
				inSize := info.Size()
				outSize := int64(b.Len())
				rep.Printf("File size: %d -> %d bytes (%.1f%% reduction)",
					inSize, outSize, report.Pct(int(inSize-outSize), int(inSize)))
			}
			rep.Printf("Noise-filtered data saved to %q", outputPath)
			return nil
		},
	}

	cmd.Flags().IntVar(&minLength, "min-length", 0, "Length below which single messages count as noise (0 = disabled)")
	cmd.Flags().Int64Var(&startMsg, "start-msg", 0, "Keep only messages with id >= this value")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Keep only messages dated >= this value (YYYY-MM-DD or unixtime)")

	return cmd
}
