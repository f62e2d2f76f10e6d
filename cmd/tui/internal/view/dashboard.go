package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/centralcaixa/backoffice/internal/brl"
	"github.com/centralcaixa/backoffice/internal/classify"
	"github.com/centralcaixa/backoffice/internal/dashboard"
)

// dashboardViews is the cycling order for the v key.
var dashboardViews = []classify.View{
	classify.ViewCash,
	classify.ViewRecharges,
	classify.ViewReferrals,
	classify.ViewPlans,
	classify.ViewCard,
	classify.ViewPIX,
}

type DashboardModel struct {
	CommonModel
	svc *dashboard.Service

	viewIdx  int
	table    table.Model
	overview *dashboard.Overview

	loading bool
	err     error
}

func NewDashboardModel(svc *dashboard.Service) DashboardModel {
	columns := []table.Column{
		{Title: "Data", Width: 12},
		{Title: "Descrição", Width: 40},
		{Title: "Usuário", Width: 18},
		{Title: "Método", Width: 10},
		{Title: "Valor", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return DashboardModel{
		svc:     svc,
		table:   t,
		loading: true,
	}
}

func (m DashboardModel) Title() string { return "Dashboards" }

func (m DashboardModel) ShortHelp() string {
	return "Esc: back | v: next view | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadOverviewMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.overview = msg.overview
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "v":
			m.viewIdx = (m.viewIdx + 1) % len(dashboardViews)
			m.loading = true

			return m, m.loadCmd()
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Carregando lançamentos...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Erro: %v", m.err))
	}

	if m.overview == nil {
		return lipgloss.NewStyle().Padding(2).Render("Sem dados")
	}

	s := m.overview.Summary

	header := fmt.Sprintf(
		"Painel: %s | Total: %s | Hoje: %s (%d) | Usuários: %d",
		activeStyle(string(m.overview.View)),
		brl.FormatCents(m.overview.HeadlineCents),
		brl.FormatCents(s.TodayCents),
		s.TodayCount,
		s.UniqueUsers,
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *DashboardModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.overview.Transactions))

	for _, tx := range m.overview.Transactions {
		date := brl.Placeholder
		if when, ok := tx.When(); ok {
			date = brl.FormatDateTime(when)
		}

		user := tx.UserName
		if user == "" {
			user = tx.UserLogin
		}

		rows = append(rows, table.Row{
			date,
			tx.Description,
			user,
			tx.PaymentMethod,
			brl.FormatCents(tx.Amount),
		})
	}

	m.table.SetRows(rows)
}

type loadOverviewMsg struct {
	overview *dashboard.Overview
	err      error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	view := dashboardViews[m.viewIdx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		overview, err := m.svc.Overview(ctx, view)

		return loadOverviewMsg{overview: overview, err: err}
	}
}
