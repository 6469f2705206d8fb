package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/thoughtfan/telegram-analysis-tools/internal/record"
)

// linesPerItem is the number of terminal lines each record occupies.
const linesPerItem = 2

// renderList renders the left panel: the filtered records with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.visible) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No records")
	}

	var lines []string
	for i := range m.visible {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		rows := formatRecordLine(m.all[m.visible[i]], width, i == m.cursor)
		lines = append(lines, rows...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatRecordLine formats one record as two lines:
//
//	line 1: [>] sender  MM-DD
//	line 2:    text snippet (dimmed)
func formatRecordLine(r record.Message, width int, selected bool) []string {
	sender := r.From
	if sender == "" {
		sender = r.FromID
	}
	if sender == "" {
		sender = "unknown"
	}
	senderMax := width - 2 - 6 - 2
	if senderMax < 0 {
		senderMax = 0
	}
	if runewidth.StringWidth(sender) > senderMax {
		sender = runewidth.Truncate(sender, senderMax, "")
	}

	// Short date (MM-DD) from the record timestamp.
	date := record.HumanDate(r.Unixtime)
	if len(date) >= 10 {
		date = date[5:10]
	}

	line1 := fmt.Sprintf("%s %s", styleSender.Render(sender), date)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	snippet := strings.ReplaceAll(r.Text, "\n", " ")
	snippetMax := width - 4
	if snippetMax < 0 {
		snippetMax = 0
	}
	if runewidth.StringWidth(snippet) > snippetMax {
		snippet = runewidth.Truncate(snippet, snippetMax, "")
	}
	line2 := "    " + styleSnippet.Render(snippet)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
