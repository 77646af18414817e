package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rentbook/internal/room"
)

type roomsState int

const (
	roomsStateBrowse roomsState = iota
	roomsStateAdd
	roomsStateConfirmDelete
)

type RoomsModel struct {
	roomService *room.Service

	state  roomsState
	table  table.Model
	rooms  []*room.Room
	form   *huh.Form
	status string
	err    error

	// Form bindings
	formName    string
	formPrice   string
	formDesc    string
	formConfirm bool
}

func NewRoomsModel(roomSvc *room.Service) RoomsModel {
	return RoomsModel{
		roomService: roomSvc,
		table: newTable([]table.Column{
			{Title: "Name", Width: 12},
			{Title: "Price", Width: 14},
			{Title: "Status", Width: 10},
			{Title: "Description", Width: 36},
			{Title: "Created", Width: 12},
		}),
	}
}

func (m RoomsModel) Title() string { return "Rooms" }

func (m RoomsModel) ShortHelp() string {
	if m.state != roomsStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | x: delete | r: refresh"
}

func (m RoomsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RoomsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRoomsMsg:
		m.err = msg.err
		m.rooms = msg.rooms
		m.refreshTable()

		return m, nil

	case actionMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.resetForm()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == roomsStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m RoomsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "a":
			return m.enterAdd()
		case "x":
			return m.enterDelete()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RoomsModel) enterAdd() (tea.Model, tea.Cmd) {
	m.formName, m.formPrice, m.formDesc = "", "", ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Monthly price (VND)").
				Placeholder("3.500.000").
				Value(&m.formPrice).
				Validate(validateAmount),
			huh.NewText().
				Title("Description").
				Value(&m.formDesc),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = roomsStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m RoomsModel) enterDelete() (tea.Model, tea.Cmd) {
	r := m.selected()
	if r == nil {
		return m, nil
	}

	m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete room %s?", r.Name)).
				Description("Invoices keep their snapshot of the room.").
				Value(&m.formConfirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = roomsStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m RoomsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.resetForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case roomsStateAdd:
		return m, m.createCmd()
	case roomsStateConfirmDelete:
		if !m.formConfirm {
			m.resetForm()
			return m, nil
		}

		return m, m.deleteCmd(m.selected())
	}

	return m, nil
}

func (m *RoomsModel) resetForm() {
	m.state = roomsStateBrowse
	m.form = nil
	m.table.Focus()
}

func (m RoomsModel) selected() *room.Room {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rooms) {
		return nil
	}

	return m.rooms[idx]
}

func (m RoomsModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	body := m.table.View()
	if m.form != nil {
		title := "Add Room"
		if m.state == roomsStateConfirmDelete {
			title = "Delete Room"
		}

		body = lipgloss.JoinHorizontal(lipgloss.Top, body, sidePanel(title, m.form.View()))
	}

	return frame(m.Title(), m.ShortHelp(), m.status, body)
}

func (m *RoomsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rooms))
	for _, r := range m.rooms {
		rows = append(rows, table.Row{
			r.Name,
			FormatMoney(r.BasePrice),
			string(r.Status),
			r.Description,
			FormatDate(r.CreatedAt),
		})
	}

	m.table.SetRows(rows)
}

type loadRoomsMsg struct {
	rooms []*room.Room
	err   error
}

func (m RoomsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rooms, err := m.roomService.List(ctx)

		return loadRoomsMsg{rooms: rooms, err: err}
	}
}

func (m RoomsModel) createCmd() tea.Cmd {
	name := strings.TrimSpace(m.formName)
	desc := strings.TrimSpace(m.formDesc)
	price, _ := parseAmount(m.formPrice)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		r, err := m.roomService.Create(ctx, room.CreateParams{Name: name, BasePrice: price, Description: desc})
		if err != nil {
			return actionMsg{err: err}
		}

		return actionMsg{status: fmt.Sprintf("Added room %s", r.Name)}
	}
}

func (m RoomsModel) deleteCmd(r *room.Room) tea.Cmd {
	if r == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.roomService.Delete(ctx, r.ID); err != nil {
			return actionMsg{err: err}
		}

		return actionMsg{status: fmt.Sprintf("Deleted room %s", r.Name)}
	}
}
