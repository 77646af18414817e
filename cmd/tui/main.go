package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/rentbook/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/rentbook/internal/config"
	"github.com/MrJamesThe3rd/rentbook/internal/database"
	"github.com/MrJamesThe3rd/rentbook/internal/history"
	historyStore "github.com/MrJamesThe3rd/rentbook/internal/history/store"
	"github.com/MrJamesThe3rd/rentbook/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/rentbook/internal/invoice/store"
	"github.com/MrJamesThe3rd/rentbook/internal/occupancy"
	occupancyStore "github.com/MrJamesThe3rd/rentbook/internal/occupancy/store"
	"github.com/MrJamesThe3rd/rentbook/internal/room"
	roomStore "github.com/MrJamesThe3rd/rentbook/internal/room/store"
	"github.com/MrJamesThe3rd/rentbook/internal/settings"
	settingsStore "github.com/MrJamesThe3rd/rentbook/internal/settings/store"
)

type model struct {
	appName string

	roomService      *room.Service
	occupancyService *occupancy.Service
	invoiceService   *invoice.Service
	settingsService  *settings.Service
	historyService   *history.Service

	currentView View
	active      view.View
}

type View int

const (
	ViewMenu      View = 0
	ViewRooms     View = 1
	ViewOccupancy View = 2
	ViewInvoices  View = 3
	ViewSettings  View = 4
	ViewHistory   View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	historySvc := history.NewService(historyStore.New(db))
	roomSvc := room.NewService(roomStore.New(db), historySvc)
	settingsSvc := settings.NewService(settingsStore.New(db), historySvc)

	return model{
		appName:          cfg.App.Name,
		roomService:      roomSvc,
		occupancyService: occupancy.NewService(occupancyStore.New(db), historySvc),
		invoiceService: invoice.NewService(
			invoiceStore.New(db), roomSvc, settingsSvc, historySvc, invoice.PolicyFor(cfg.Invoice.StrictReadings),
		),
		settingsService: settingsSvc,
		historyService:  historySvc,
		currentView:     ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) open(v View) (tea.Model, tea.Cmd) {
	switch v {
	case ViewRooms:
		m.active = view.NewRoomsModel(m.roomService)
	case ViewOccupancy:
		m.active = view.NewOccupancyModel(m.occupancyService, m.roomService)
	case ViewInvoices:
		m.active = view.NewInvoicesModel(m.invoiceService, m.roomService)
	case ViewSettings:
		m.active = view.NewSettingsModel(m.settingsService)
	case ViewHistory:
		m.active = view.NewHistoryModel(m.historyService)
	default:
		return m, nil
	}

	m.currentView = v

	return m, m.active.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				return m.open(ViewRooms)
			case "2":
				return m.open(ViewOccupancy)
			case "3":
				return m.open(ViewInvoices)
			case "4":
				return m.open(ViewSettings)
			case "5":
				return m.open(ViewHistory)
			}
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		m.active = nil

		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	newModel, cmd := m.active.Update(msg)
	m.active = newModel.(view.View)

	return m, cmd
}

func (m model) View() string {
	if m.currentView == ViewMenu || m.active == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Rooms\n" +
				"2. Occupancy\n" +
				"3. Invoices\n" +
				"4. Prices\n" +
				"5. History\n\n" +
				"q. Quit",
		)
	}

	return m.active.View()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
