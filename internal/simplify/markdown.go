package simplify

import (
	"fmt"
	"strings"

	"github.com/thoughtfan/telegram-analysis-tools/internal/record"
)

// Markdown renders the records as a human-readable document: one section per
// record with sender and date metadata and the text as a blockquote. Purely
// cosmetic; the pipe-delimited output stays the machine format.
func Markdown(msgs []record.Message, groupName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Telegram Messages from %q\n\n", groupName)
	b.WriteString("_This markdown file was automatically generated for easy reading and reference._\n\n")
	b.WriteString("---\n\n")

	for _, m := range msgs {
		date := record.HumanDate(m.Unixtime)
		if date == "Unknown" {
			date = "Unknown date"
		}

		fmt.Fprintf(&b, "### Message ID: %s\n", m.ID)
		fmt.Fprintf(&b, "**From:** %s (%s)\n", orUnknown(m.From), orUnknown(m.FromID))
		fmt.Fprintf(&b, "**Date:** %s\n\n", date)

		// Keep paragraph breaks inside merged records quoted.
		text := strings.ReplaceAll(m.Text, "\n\n", "\n\n> ")
		fmt.Fprintf(&b, "> %s\n\n---\n\n", text)
	}

	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
