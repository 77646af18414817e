package view

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rentbook/internal/settings"
)

type SettingsModel struct {
	settingsService *settings.Service

	current *settings.Settings
	form    *huh.Form
	status  string
	err     error

	// Form bindings
	formElec  string
	formWater string
	formTrash string
	formWifi  string
	formOther string
}

func NewSettingsModel(settingsSvc *settings.Service) SettingsModel {
	return SettingsModel{settingsService: settingsSvc}
}

func (m SettingsModel) Title() string { return "Prices" }

func (m SettingsModel) ShortHelp() string {
	if m.form != nil {
		return "Navigate form | Esc: back"
	}

	return "Esc: back | e: edit"
}

func (m SettingsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSettingsMsg:
		m.err = msg.err
		m.current = msg.settings

		return m, nil

	case actionMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.form = nil

		return m, m.loadCmd()

	case tea.KeyMsg:
		if m.form == nil {
			switch msg.String() {
			case "esc":
				return m, Back
			case "e":
				return m.enterEdit()
			}

			return m, nil
		}

		if msg.Type == tea.KeyEsc {
			m.form = nil
			return m, nil
		}
	}

	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.saveCmd()
	}

	return m, cmd
}

func (m SettingsModel) enterEdit() (tea.Model, tea.Cmd) {
	if m.current == nil {
		return m, nil
	}

	m.formElec = strconv.FormatInt(m.current.ElecUnitPrice, 10)
	m.formWater = strconv.FormatInt(m.current.WaterUnitPrice, 10)
	m.formTrash = strconv.FormatInt(m.current.TrashFee, 10)
	m.formWifi = strconv.FormatInt(m.current.WifiFee, 10)
	m.formOther = strconv.FormatInt(m.current.OtherFee, 10)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Electricity (per kWh)").Value(&m.formElec).Validate(validateAmount),
			huh.NewInput().Title("Water (per m³)").Value(&m.formWater).Validate(validateAmount),
			huh.NewInput().Title("Trash fee").Value(&m.formTrash).Validate(validateAmount),
			huh.NewInput().Title("Wifi fee").Value(&m.formWifi).Validate(validateAmount),
			huh.NewInput().Title("Service fee").Value(&m.formOther).Validate(validateAmount),
		),
	).WithWidth(45).WithShowHelp(false)

	return m, m.form.Init()
}

func (m SettingsModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	if m.current == nil {
		return lipgloss.NewStyle().Padding(2).Render("Loading prices...")
	}

	if m.form != nil {
		return frame(m.Title(), m.ShortHelp(), m.status, sidePanel("Edit Prices", m.form.View()))
	}

	s := m.current
	updated := "never saved, using defaults"
	if s.UpdatedAt != nil {
		updated = fmt.Sprintf("version %d, %s", s.Version, s.UpdatedAt.Format("2006-01-02 15:04"))
	}

	body := fmt.Sprintf(
		"Electricity: %s / kWh\nWater:       %s / m³\nTrash:       %s\nWifi:        %s\nService:     %s\n\n%s",
		FormatMoney(s.ElecUnitPrice),
		FormatMoney(s.WaterUnitPrice),
		FormatMoney(s.TrashFee),
		FormatMoney(s.WifiFee),
		FormatMoney(s.OtherFee),
		lipgloss.NewStyle().Faint(true).Render(updated),
	)

	return frame(m.Title(), m.ShortHelp(), m.status, lipgloss.NewStyle().Padding(1, 2).Render(body))
}

type loadSettingsMsg struct {
	settings *settings.Settings
	err      error
}

func (m SettingsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		s, err := m.settingsService.Get(ctx)

		return loadSettingsMsg{settings: s, err: err}
	}
}

func (m SettingsModel) saveCmd() tea.Cmd {
	var next settings.Settings
	next.ElecUnitPrice, _ = parseAmount(m.formElec)
	next.WaterUnitPrice, _ = parseAmount(m.formWater)
	next.TrashFee, _ = parseAmount(m.formTrash)
	next.WifiFee, _ = parseAmount(m.formWifi)
	next.OtherFee, _ = parseAmount(m.formOther)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.settingsService.Update(ctx, next); err != nil {
			return actionMsg{err: err}
		}

		return actionMsg{status: "Prices saved"}
	}
}
