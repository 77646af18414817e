package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rentbook/internal/invoice"
	"github.com/MrJamesThe3rd/rentbook/internal/room"
)

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStateGenerate
	invoicesStateConfirmDelete
)

type InvoicesModel struct {
	invoiceService *invoice.Service
	roomService    *room.Service

	state    invoicesState
	table    table.Model
	invoices []*invoice.Invoice
	rooms    []*room.Room
	period   PeriodFilter
	form     *huh.Form
	status   string
	err      error

	// Form bindings
	formRoom       uuid.UUID
	formElecBegin  string
	formElecEnd    string
	formWaterBegin string
	formWaterEnd   string
	formOtherFee   string
	formConfirm    bool
}

func NewInvoicesModel(invoiceSvc *invoice.Service, roomSvc *room.Service) InvoicesModel {
	return InvoicesModel{
		invoiceService: invoiceSvc,
		roomService:    roomSvc,
		table: newTable([]table.Column{
			{Title: "Code", Width: 14},
			{Title: "Room", Width: 10},
			{Title: "Period", Width: 8},
			{Title: "Electricity", Width: 14},
			{Title: "Water", Width: 14},
			{Title: "Total", Width: 14},
			{Title: "Paid", Width: 6},
		}),
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }

func (m InvoicesModel) ShortHelp() string {
	if m.state != invoicesStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | g: generate | p: toggle paid | x: delete | m: period | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.err = msg.err
		m.invoices = msg.invoices
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

	if m.state == invoicesStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "m":
			m.period = m.period.Next()
			return m, m.loadCmd()
		case "p":
			return m, m.togglePaidCmd(m.selected())
		case "g":
			return m.enterGenerate()
		case "x":
			return m.enterDelete()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) enterGenerate() (tea.Model, tea.Cmd) {
	if len(m.rooms) == 0 {
		m.status = "Add a room first"
		return m, nil
	}

	options := make([]huh.Option[uuid.UUID], 0, len(m.rooms))
	for _, r := range m.rooms {
		options = append(options, huh.NewOption(r.Name, r.ID))
	}

	m.formRoom = m.rooms[0].ID
	m.formElecBegin, m.formElecEnd = "", ""
	m.formWaterBegin, m.formWaterEnd = "", ""
	m.formOtherFee = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().Title("Room").Options(options...).Value(&m.formRoom),
			huh.NewInput().Title("Electricity start").Value(&m.formElecBegin).Validate(validateAmount),
			huh.NewInput().Title("Electricity end").Value(&m.formElecEnd).Validate(validateAmount),
			huh.NewInput().Title("Water start").Value(&m.formWaterBegin).Validate(validateAmount),
			huh.NewInput().Title("Water end").Value(&m.formWaterEnd).Validate(validateAmount),
			huh.NewInput().Title("Other fee").Placeholder("0").Value(&m.formOtherFee).Validate(validateAmount),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = invoicesStateGenerate
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) enterDelete() (tea.Model, tea.Cmd) {
	inv := m.selected()
	if inv == nil {
		return m, nil
	}

	m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete invoice %s?", inv.Code)).
				Value(&m.formConfirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = invoicesStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	case invoicesStateGenerate:
		return m, m.generateCmd(time.Now())
	case invoicesStateConfirmDelete:
		if !m.formConfirm {
			m.resetForm()
			return m, nil
		}

		return m, m.deleteCmd(m.selected())
	}

	return m, nil
}

func (m *InvoicesModel) resetForm() {
	m.state = invoicesStateBrowse
	m.form = nil
	m.table.Focus()
}

func (m InvoicesModel) selected() *invoice.Invoice {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.invoices) {
		return nil
	}

	return m.invoices[idx]
}

func (m InvoicesModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	var unpaid int64
	for _, inv := range m.invoices {
		if !inv.Paid {
			unpaid += inv.Total
		}
	}

	header := fmt.Sprintf("[m] Period: %s | Outstanding: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(m.period.String()),
		FormatMoney(unpaid),
	)

	body := lipgloss.JoinVertical(lipgloss.Left, lipgloss.NewStyle().PaddingBottom(1).Render(header), m.table.View())
	if m.form != nil {
		title := "Generate Invoice"
		if m.state == invoicesStateConfirmDelete {
			title = "Delete Invoice"
		}

		body = lipgloss.JoinHorizontal(lipgloss.Top, body, sidePanel(title, m.form.View()))
	}

	return frame(m.Title(), m.ShortHelp(), m.status, body)
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.invoices))
	for _, inv := range m.invoices {
		paid := "no"
		if inv.Paid {
			paid = "yes"
		}

		rows = append(rows, table.Row{
			inv.Code,
			inv.RoomName,
			FormatPeriod(inv.Month, inv.Year),
			FormatMoney(inv.ElecTotal),
			FormatMoney(inv.WaterTotal),
			FormatMoney(inv.Total),
			paid,
		})
	}

	m.table.SetRows(rows)
}

type loadInvoicesMsg struct {
	invoices []*invoice.Invoice
	rooms    []*room.Room
	err      error
}

func (m InvoicesModel) loadCmd() tea.Cmd {
	filter := m.period.Filter(time.Now())

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invoices, err := m.invoiceService.List(ctx, filter)
		if err != nil {
			return loadInvoicesMsg{err: err}
		}

		rooms, err := m.roomService.List(ctx)
		if err != nil {
			return loadInvoicesMsg{err: err}
		}

		return loadInvoicesMsg{invoices: invoices, rooms: rooms}
	}
}

func (m InvoicesModel) togglePaidCmd(inv *invoice.Invoice) tea.Cmd {
	if inv == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.invoiceService.SetPaid(ctx, inv.ID, !inv.Paid)
		if err != nil {
			return actionMsg{err: err}
		}

		state := "unpaid"
		if updated.Paid {
			state = "paid"
		}

		return actionMsg{status: fmt.Sprintf("Invoice %s marked %s", updated.Code, state)}
	}
}

func (m InvoicesModel) generateCmd(now time.Time) tea.Cmd {
	item := invoice.GenerateItem{
		RoomID: m.formRoom,
		Month:  int(now.Month()),
		Year:   now.Year(),
	}
	item.ElecBegin, _ = parseAmount(m.formElecBegin)
	item.ElecEnd, _ = parseAmount(m.formElecEnd)
	item.WaterBegin, _ = parseAmount(m.formWaterBegin)
	item.WaterEnd, _ = parseAmount(m.formWaterEnd)
	item.OtherFee, _ = parseAmount(m.formOtherFee)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.invoiceService.Generate(ctx, []invoice.GenerateItem{item})
		if err != nil {
			return actionMsg{err: err}
		}

		if len(res.Skipped) > 0 {
			s := res.Skipped[0]
			return actionMsg{status: fmt.Sprintf("Skipped: %s %s", s.Reason, s.Detail)}
		}

		created := res.Created[0]

		return actionMsg{status: fmt.Sprintf("Generated %s for %s", created.Code, FormatMoney(created.Total))}
	}
}

func (m InvoicesModel) deleteCmd(inv *invoice.Invoice) tea.Cmd {
	if inv == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.invoiceService.Delete(ctx, inv.ID); err != nil {
			return actionMsg{err: err}
		}

		return actionMsg{status: fmt.Sprintf("Deleted invoice %s", inv.Code)}
	}
}
