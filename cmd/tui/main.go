package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/centralcaixa/backoffice/cmd/tui/internal/view"
	"github.com/centralcaixa/backoffice/internal/config"
	"github.com/centralcaixa/backoffice/internal/coupon"
	couponStore "github.com/centralcaixa/backoffice/internal/coupon/store"
	"github.com/centralcaixa/backoffice/internal/dashboard"
	"github.com/centralcaixa/backoffice/internal/database"
	"github.com/centralcaixa/backoffice/internal/transaction"
	txStore "github.com/centralcaixa/backoffice/internal/transaction/store"
)

type model struct {
	dashboardService *dashboard.Service
	couponService    *coupon.Service

	currentView View

	dashboardView view.DashboardModel
	couponsView   view.CouponsModel
}

type View int

const (
	ViewMenu    View = 0
	ViewDash    View = 1
	ViewCoupons View = 2
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

	txSvc := transaction.NewService(txStore.New(db))
	dashSvc := dashboard.NewService(txSvc, dashboard.NewStatsStore(db))
	couponSvc := coupon.NewService(couponStore.New(db))

	return model{
		dashboardService: dashSvc,
		couponService:    couponSvc,
		currentView:      ViewMenu,
		dashboardView:    view.NewDashboardModel(dashSvc),
		couponsView:      view.NewCouponsModel(couponSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDash
				m.dashboardView = view.NewDashboardModel(m.dashboardService)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewCoupons
				m.couponsView = view.NewCouponsModel(m.couponService)

				return m, m.couponsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDash:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewCoupons:
		var newModel tea.Model
		newModel, cmd = m.couponsView.Update(msg)
		m.couponsView = newModel.(view.CouponsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Central Caixa\n\n" +
				"1. Dashboards\n" +
				"2. Cupons\n\n" +
				"q. Sair",
		)
	case ViewDash:
		return m.dashboardView.View()
	case ViewCoupons:
		return m.couponsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
