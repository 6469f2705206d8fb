package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thoughtfan/telegram-analysis-tools/internal/config"
	"github.com/thoughtfan/telegram-analysis-tools/internal/noise"
	"github.com/thoughtfan/telegram-analysis-tools/internal/record"
	"github.com/thoughtfan/telegram-analysis-tools/internal/report"
)

func statsCmd() *cobra.Command {
	var minLength int

	cmd := &cobra.Command{
		Use:   "stats <input.txt>",
		Short: "Dry-run analysis of a record file: counts, span, noise breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			header, lines, err := record.ReadLines(args[0])
			if err != nil {
				return err
			}

			records := 0
			malformed := 0
			senders := make(map[string]bool)
			var firstTS, lastTS string
			for _, line := range lines {
				m, ok := record.Parse(line)
				if !ok {
					malformed++
					continue
				}
				records++
				if m.FromID != "" {
					senders[m.FromID] = true
				}
				if _, ok := record.ParseUnixtime(m.Unixtime); ok {
					if firstTS == "" {
						firstTS = m.Unixtime
					}
					lastTS = m.Unixtime
				}
			}

			fmt.Println("=== Records ===")
			fmt.Printf("  Lines:     %d\n", len(lines))
			fmt.Printf("  Records:   %d\n", records)
			fmt.Printf("  Malformed: %d\n", malformed)
			fmt.Printf("  Senders:   %d\n", len(senders))
			if header != "" {
				fmt.Println("  Legend:    present")
			}

			fmt.Println("\n=== Time span ===")
			if firstTS != "" {
				fmt.Printf("  First: %s (%s)\n", record.HumanDate(firstTS), firstTS)
				fmt.Printf("  Last:  %s (%s)\n", record.HumanDate(lastTS), lastTS)
			} else {
				fmt.Println("  Unknown (no parseable timestamps)")
			}

			cls, err := noise.NewClassifier(cfg, minLength)
			if err != nil {
				return fmt.Errorf("build classifier: %w", err)
			}
			_, st := noise.NewFilter(cls, nil).Run(lines)

			fmt.Println("\n=== Noise breakdown (dry run) ===")
			for _, cat := range noise.Categories {
				fmt.Printf("  %-12s %d\n", string(cat)+":", st.ByCategory[cat])
			}
			fmt.Printf("  would remove %d of %d records (%.1f%%)\n",
				st.Removed, records, report.Pct(st.Removed, records))

			return nil
		},
	}

	cmd.Flags().IntVar(&minLength, "min-length", 0, "Length threshold to simulate (0 = disabled)")

	return cmd
}
