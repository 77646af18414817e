package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rentbook/internal/occupancy"
	"github.com/MrJamesThe3rd/rentbook/internal/room"
)

type occupancyState int

const (
	occupancyStateBrowse occupancyState = iota
	occupancyStateMoveIn
	occupancyStateMoveOut
)

type OccupancyModel struct {
	occupancyService *occupancy.Service
	roomService      *room.Service

	state       occupancyState
	table       table.Model
	occupancies []*occupancy.Occupancy
	vacant      []*room.Room
	form        *huh.Form
	status      string
	err         error

	// Form bindings
	formRoom    uuid.UUID
	formTenant  string
	formConfirm bool
}

func NewOccupancyModel(occSvc *occupancy.Service, roomSvc *room.Service) OccupancyModel {
	return OccupancyModel{
		occupancyService: occSvc,
		roomService:      roomSvc,
		table: newTable([]table.Column{
			{Title: "Room", Width: 12},
			{Title: "Tenant", Width: 30},
			{Title: "Rent", Width: 14},
			{Title: "Since", Width: 12},
		}),
	}
}

func (m OccupancyModel) Title() string { return "Occupancy" }

func (m OccupancyModel) ShortHelp() string {
	if m.state != occupancyStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: move in | x: move out | r: refresh"
}

func (m OccupancyModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m OccupancyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadOccupancyMsg:
		m.err = msg.err
		m.occupancies = msg.occupancies
		m.vacant = msg.vacant
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

	if m.state == occupancyStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m OccupancyModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "a":
			return m.enterMoveIn()
		case "x":
			return m.enterMoveOut()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m OccupancyModel) enterMoveIn() (tea.Model, tea.Cmd) {
	if len(m.vacant) == 0 {
		m.status = "No vacant rooms"
		return m, nil
	}

	options := make([]huh.Option[uuid.UUID], 0, len(m.vacant))
	for _, r := range m.vacant {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", r.Name, FormatMoney(r.BasePrice)), r.ID))
	}

	m.formRoom = m.vacant[0].ID
	m.formTenant = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Title("Room").
				Options(options...).
				Value(&m.formRoom),
			huh.NewInput().
				Title("Tenant").
				Value(&m.formTenant).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("tenant cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = occupancyStateMoveIn
	m.table.Blur()

	return m, m.form.Init()
}

func (m OccupancyModel) enterMoveOut() (tea.Model, tea.Cmd) {
	o := m.selected()
	if o == nil {
		return m, nil
	}

	m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Move %s out of %s?", o.Tenant, roomLabel(o))).
				Value(&m.formConfirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = occupancyStateMoveOut
	m.table.Blur()

	return m, m.form.Init()
}

func (m OccupancyModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	case occupancyStateMoveIn:
		return m, m.moveInCmd()
	case occupancyStateMoveOut:
		if !m.formConfirm {
			m.resetForm()
			return m, nil
		}

		return m, m.moveOutCmd(m.selected())
	}

	return m, nil
}

func (m *OccupancyModel) resetForm() {
	m.state = occupancyStateBrowse
	m.form = nil
	m.table.Focus()
}

func (m OccupancyModel) selected() *occupancy.Occupancy {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.occupancies) {
		return nil
	}

	return m.occupancies[idx]
}

func (m OccupancyModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	body := m.table.View()
	if m.form != nil {
		title := "Move In"
		if m.state == occupancyStateMoveOut {
			title = "Move Out"
		}

		body = lipgloss.JoinHorizontal(lipgloss.Top, body, sidePanel(title, m.form.View()))
	}

	return frame(m.Title(), m.ShortHelp(), m.status, body)
}

func (m *OccupancyModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.occupancies))
	for _, o := range m.occupancies {
		rent := "-"
		if o.Room != nil {
			rent = FormatMoney(o.Room.BasePrice)
		}

		rows = append(rows, table.Row{roomLabel(o), o.Tenant, rent, FormatDate(o.CreatedAt)})
	}

	m.table.SetRows(rows)
}

func roomLabel(o *occupancy.Occupancy) string {
	if o.Room != nil {
		return o.Room.Name
	}

	return o.RoomID.String()
}

type loadOccupancyMsg struct {
	occupancies []*occupancy.Occupancy
	vacant      []*room.Room
	err         error
}

func (m OccupancyModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		occupancies, err := m.occupancyService.ListActive(ctx)
		if err != nil {
			return loadOccupancyMsg{err: err}
		}

		rooms, err := m.roomService.List(ctx)
		if err != nil {
			return loadOccupancyMsg{err: err}
		}

		var vacant []*room.Room
		for _, r := range rooms {
			if r.Status == room.StatusVacant {
				vacant = append(vacant, r)
			}
		}

		return loadOccupancyMsg{occupancies: occupancies, vacant: vacant}
	}
}

func (m OccupancyModel) moveInCmd() tea.Cmd {
	roomID := m.formRoom
	tenant := strings.TrimSpace(m.formTenant)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.occupancyService.MoveIn(ctx, roomID, tenant); err != nil {
			return actionMsg{err: err}
		}

		return actionMsg{status: fmt.Sprintf("%s moved in", tenant)}
	}
}

func (m OccupancyModel) moveOutCmd(o *occupancy.Occupancy) tea.Cmd {
	if o == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.occupancyService.MoveOut(ctx, o.ID); err != nil {
			return actionMsg{err: err}
		}

		return actionMsg{status: fmt.Sprintf("%s moved out", o.Tenant)}
	}
}
