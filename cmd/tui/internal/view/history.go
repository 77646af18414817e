package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rentbook/internal/history"
)

type HistoryModel struct {
	historyService *history.Service

	table   table.Model
	entries []*history.Entry
	err     error
}

func NewHistoryModel(historySvc *history.Service) HistoryModel {
	return HistoryModel{
		historyService: historySvc,
		table: newTable([]table.Column{
			{Title: "When", Width: 17},
			{Title: "Action", Width: 20},
			{Title: "Details", Width: 50},
		}),
	}
}

func (m HistoryModel) Title() string     { return "History" }
func (m HistoryModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m HistoryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadHistoryMsg:
		m.err = msg.err
		m.entries = msg.entries

		rows := make([]table.Row, 0, len(m.entries))
		for _, e := range m.entries {
			rows = append(rows, table.Row{e.CreatedAt.Format("2006-01-02 15:04"), e.Action, e.Info})
		}

		m.table.SetRows(rows)

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m HistoryModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	return frame(m.Title(), m.ShortHelp(), "", m.table.View())
}

type loadHistoryMsg struct {
	entries []*history.Entry
	err     error
}

func (m HistoryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entries, err := m.historyService.List(ctx)

		return loadHistoryMsg{entries: entries, err: err}
	}
}
