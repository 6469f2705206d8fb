package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/thoughtfan/telegram-analysis-tools/internal/record"
)

type model struct {
	title       string
	all         []record.Message
	visible     []int // indexes into all surviving the filter
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewIdx  int // record index the preview currently shows, -1 none
	width       int
	height      int
	ready       bool
	quitting    bool
	status      string // transient notice (clipboard copy result)
}

func initialModel(msgs []record.Message, title string) model {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	m := model{
		title:       title,
		all:         msgs,
		filterInput: ti,
		preview:     viewport.New(0, 0),
		previewIdx:  -1,
	}
	m.applyFilter("")
	return m
}

// Run starts the record browser and blocks until it exits.
func Run(msgs []record.Message, title string) error {
	p := tea.NewProgram(initialModel(msgs, title), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// applyFilter recomputes the visible set: case-insensitive substring match
// against sender and text.
func (m *model) applyFilter(query string) {
	query = strings.ToLower(strings.TrimSpace(query))
	m.visible = m.visible[:0]
	for i, r := range m.all {
		if query == "" ||
			strings.Contains(strings.ToLower(r.From), query) ||
			strings.Contains(strings.ToLower(r.Text), query) {
			m.visible = append(m.visible, i)
		}
	}
	m.cursor = 0
	m.listOffset = 0
	m.previewIdx = -1
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = viewport.New(m.previewWidth(), m.panelHeight())
		m.previewIdx = -1
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if len(m.visible) > 0 && m.cursor < len(m.visible) {
				r := m.all[m.visible[m.cursor]]
				if err := clipboard.WriteAll(r.Text); err != nil {
					m.status = "clipboard unavailable"
				} else {
					m.status = fmt.Sprintf("copied message %s", r.ID)
				}
			}
			return m, nil

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				m.refreshPreview()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				m.refreshPreview()
			}
			return m, nil

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil
		}

		var tiCmd tea.Cmd
		before := m.filterInput.Value()
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		if after := m.filterInput.Value(); after != before {
			m.applyFilter(after)
			m.refreshPreview()
		}
		return m, tiCmd
	}

	return m, nil
}

// refreshPreview re-renders the right panel for the record under the cursor.
func (m *model) refreshPreview() {
	if !m.ready || len(m.visible) == 0 || m.cursor >= len(m.visible) {
		m.preview.SetContent("")
		m.previewIdx = -1
		return
	}
	idx := m.visible[m.cursor]
	if idx == m.previewIdx {
		return
	}

	r := m.all[idx]
	meta := fmt.Sprintf("id %s | %s | %s (%s)",
		r.ID, record.HumanDate(r.Unixtime), r.From, r.FromID)

	body := lipgloss.NewStyle().Width(m.previewWidth()).Render(r.Text)
	m.preview.SetContent(styleMeta.Render(meta) + "\n\n" + body)
	m.preview.GotoTop()
	m.previewIdx = idx
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	inputRow := m.filterInput.View()

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)

	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, m.statusBar())
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	w := m.width*40/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := m.width*60/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract input row (1) + status bar (1) + borders (4)
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

func (m model) statusBar() string {
	parts := []string{
		m.title,
		fmt.Sprintf("%d/%d records", len(m.visible), len(m.all)),
		"up/dn navigate",
		"C-u/C-d preview",
		"Enter copy",
		"Esc quit",
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}
