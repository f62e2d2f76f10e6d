package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/centralcaixa/backoffice/internal/brl"
	"github.com/centralcaixa/backoffice/internal/coupon"
)

type couponsState int

const (
	couponsStateBrowse couponsState = iota
	couponsStateCreate
)

type CouponsModel struct {
	CommonModel
	svc *coupon.Service

	state   couponsState
	table   table.Model
	coupons []*coupon.Coupon
	form    *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formCode  string
	formDesc  string
	formKind  string
	formValue string
	formLimit string
}

func NewCouponsModel(svc *coupon.Service) CouponsModel {
	columns := []table.Column{
		{Title: "Código", Width: 16},
		{Title: "Tipo", Width: 12},
		{Title: "Valor", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "Usos", Width: 10},
		{Title: "Validade", Width: 12},
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

	return CouponsModel{
		svc:     svc,
		table:   t,
		loading: true,
	}
}

func (m CouponsModel) Title() string { return "Cupons" }

func (m CouponsModel) ShortHelp() string {
	if m.state == couponsStateCreate {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: novo | t: ativar/desativar | x: excluir | r: refresh"
}

func (m CouponsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CouponsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCouponsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.coupons = msg.coupons
		m.refreshTable()

		return m, nil

	case couponActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Erro: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.state = couponsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case couponsStateBrowse:
		return m.updateBrowse(msg)
	case couponsStateCreate:
		return m.updateCreate(msg)
	}

	return m, nil
}

func (m CouponsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterCreateMode()
		case "t":
			if c := m.selected(); c != nil {
				return m, m.toggleCmd(c.ID)
			}
		case "x":
			if c := m.selected(); c != nil {
				return m, m.deleteCmd(c.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CouponsModel) selected() *coupon.Coupon {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.coupons) {
		return nil
	}

	return m.coupons[idx]
}

func (m CouponsModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formCode = ""
	m.formDesc = ""
	m.formKind = string(coupon.KindFixed)
	m.formValue = ""
	m.formLimit = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("code").
				Title("Código").
				Value(&m.formCode).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("código é obrigatório")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Descrição").
				Value(&m.formDesc),

			huh.NewSelect[string]().
				Key("kind").
				Title("Tipo").
				Options(
					huh.NewOption("Fixo", string(coupon.KindFixed)),
					huh.NewOption("Percentual", string(coupon.KindPercent)),
				).
				Value(&m.formKind),

			huh.NewInput().
				Key("value").
				Title("Valor (centavos ou %)").
				Value(&m.formValue).
				Validate(func(s string) error {
					if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
						return fmt.Errorf("valor numérico")
					}
					return nil
				}),

			huh.NewInput().
				Key("limit").
				Title("Limite de usos").
				Placeholder("vazio = sem limite").
				Value(&m.formLimit),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = couponsStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m CouponsModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = couponsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.createCmd()
}

func (m CouponsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Carregando cupons...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Erro: %v", m.err))
	}

	stats := coupon.Summarize(m.coupons, brl.Now())

	header := fmt.Sprintf(
		"Cupons: %d | Ativos: %s | Expirados: %s | Usos: %d",
		stats.Total,
		activeStyle(strconv.Itoa(stats.Active)),
		activeStyle(strconv.Itoa(stats.Expired)),
		stats.TotalUses,
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == couponsStateCreate && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Novo cupom\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *CouponsModel) refreshTable() {
	now := brl.Now()

	rows := make([]table.Row, 0, len(m.coupons))

	for _, c := range m.coupons {
		value := brl.FormatCents(c.ValueCents)
		if c.Kind == coupon.KindPercent {
			value = fmt.Sprintf("%d%%", c.ValueCents)
		}

		uses := strconv.Itoa(c.Uses)
		if c.UseLimit != nil {
			uses = fmt.Sprintf("%d/%d", c.Uses, *c.UseLimit)
		}

		validity := brl.Placeholder
		if c.ValidUntil != nil {
			validity = brl.FormatDate(*c.ValidUntil)
		}

		rows = append(rows, table.Row{
			c.Code,
			string(c.Kind),
			value,
			string(c.Derived(now)),
			uses,
			validity,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadCouponsMsg struct {
	coupons []*coupon.Coupon
	err     error
}

func (m CouponsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		coupons, err := m.svc.List(ctx)

		return loadCouponsMsg{coupons: coupons, err: err}
	}
}

type couponActionMsg struct {
	status string
	err    error
}

func (m CouponsModel) createCmd() tea.Cmd {
	params := coupon.CreateParams{
		Code:        m.formCode,
		Description: m.formDesc,
		Kind:        coupon.Kind(m.formKind),
	}

	if v, err := strconv.ParseInt(strings.TrimSpace(m.formValue), 10, 64); err == nil {
		params.ValueCents = v
	}

	if v, err := strconv.Atoi(strings.TrimSpace(m.formLimit)); err == nil && v > 0 {
		params.UseLimit = &v
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.svc.Create(ctx, params)
		if err != nil {
			return couponActionMsg{err: err}
		}

		return couponActionMsg{status: fmt.Sprintf("Cupom %s criado", c.Code)}
	}
}

func (m CouponsModel) toggleCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		status, err := m.svc.Toggle(ctx, id)
		if err != nil {
			return couponActionMsg{err: err}
		}

		return couponActionMsg{status: fmt.Sprintf("Cupom agora %s", status)}
	}
}

func (m CouponsModel) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Delete(ctx, id); err != nil {
			return couponActionMsg{err: err}
		}

		return couponActionMsg{status: "Cupom excluído"}
	}
}
