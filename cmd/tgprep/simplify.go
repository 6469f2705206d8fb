package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thoughtfan/telegram-analysis-tools/internal/config"
	"github.com/thoughtfan/telegram-analysis-tools/internal/export"
	"github.com/thoughtfan/telegram-analysis-tools/internal/report"
	"github.com/thoughtfan/telegram-analysis-tools/internal/simplify"
)

func simplifyCmd() *cobra.Command {
	var window, maxLength int
	var urlMode, markdownPath string
	var noConsolidate, noBotFilter, noMarkdown bool

	cmd := &cobra.Command{
		Use:   "simplify <export.json> <output.txt>",
		Short: "Convert a raw JSON export into pipe-delimited records",
		Long: `Reads a Telegram JSON export, drops bot/service messages, flattens
rich-text fields, rewrites URLs, merges bursts of sequential messages from
one sender, and writes one pipe-delimited record per line. A human-readable
markdown rendering is written next to the output unless disabled.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cmd.Flags().Changed("window") {
				window = cfg.TimeWindow
			}
			if !cmd.Flags().Changed("max-length") {
				maxLength = cfg.MaxLength
			}
			if !simplify.ValidURLMode(urlMode) {
				return fmt.Errorf("invalid URL mode %q: want preserve, replace, or domain", urlMode)
			}

			inputPath, outputPath := args[0], args[1]
			rep := report.New(os.Stderr)

			doc, err := export.Load(inputPath)
			if err != nil {
				return err
			}

			bots := simplify.NewBotFilter(cfg.KnownBots, cfg.BotPhrases)
			s := simplify.New(bots, simplify.Options{
				FilterBots:  !noBotFilter,
				Consolidate: !noConsolidate,
				TimeWindow:  window,
				MaxLength:   maxLength,
				URLMode:     urlMode,
			}, rep)

			msgs := s.Simplify(doc)

			content := simplify.Render(msgs)
			if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			if info, err := os.Stat(inputPath); err == nil {
				inSize := info.Size()
				outSize := int64(len(content))
				rep.Printf("File size: %d -> %d bytes (%.1f%% reduction)",
					inSize, outSize, report.Pct(int(inSize-outSize), int(inSize)))
			}
			rep.Printf("%s", simplify.Overall(len(doc.Messages), len(msgs)))

			if !noMarkdown {
				path := markdownPath
				if path == "" {
					path = deriveMarkdownPath(outputPath)
				}
				md := simplify.Markdown(msgs, doc.Name)
				if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
					return fmt.Errorf("write markdown: %w", err)
				}
				rep.Printf("Human-readable markdown version saved to %s", path)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&window, "window", 0, "Consolidation time window in seconds (default: config value)")
	cmd.Flags().IntVar(&maxLength, "max-length", 0, "Max message length eligible for consolidation (default: config value)")
	cmd.Flags().StringVar(&urlMode, "url-mode", simplify.URLDomain, "How to handle URLs: preserve, replace, domain")
	cmd.Flags().BoolVar(&noConsolidate, "no-consolidate", false, "Don't consolidate sequential messages")
	cmd.Flags().BoolVar(&noBotFilter, "no-bot-filter", false, "Don't filter out bot/machine messages")
	cmd.Flags().StringVar(&markdownPath, "markdown", "", "Markdown output path (default: derived from output path)")
	cmd.Flags().BoolVar(&noMarkdown, "no-markdown", false, "Skip the markdown rendering")

	return cmd
}

// deriveMarkdownPath swaps the output file's extension for .md. Only the
// final path element is considered, so dotted parent directories stay intact.
func deriveMarkdownPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".md"
}
