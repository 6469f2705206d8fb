package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thoughtfan/telegram-analysis-tools/internal/record"
	"github.com/thoughtfan/telegram-analysis-tools/internal/tui"
	"golang.org/x/term"
)

const (
	bColorReset = "\033[0m"
	bColorDim   = "\033[2m"
	bColorBlue  = "\033[1;34m"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <input.txt>",
		Short: "Interactively browse a pipe-delimited record file",
		Long: `Opens a TUI with a filter input, a record list, and a full-record
preview. Enter copies the selected record's text to the clipboard. When
stdout is not a terminal, records are printed as TSV instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, lines, err := record.ReadLines(args[0])
			if err != nil {
				return err
			}

			var msgs []record.Message
			for _, line := range lines {
				if m, ok := record.Parse(line); ok {
					msgs = append(msgs, m)
				}
			}
			if len(msgs) == 0 {
				return fmt.Errorf("no records in %s", args[0])
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(msgs, filepath.Base(args[0]))
			}

			for _, m := range msgs {
				text := strings.ReplaceAll(m.Text, "\t", " ")
				fmt.Printf("%s\t%s%s%s\t%s%s%s\t%s\n",
					m.ID,
					bColorDim, record.HumanDate(m.Unixtime), bColorReset,
					bColorBlue, m.From, bColorReset,
					text,
				)
			}
			return nil
		},
	}
}
