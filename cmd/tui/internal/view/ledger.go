package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/dateutil"
	"github.com/javedfarm/dairybook/internal/ledger"
	"github.com/javedfarm/dairybook/internal/money"
)

type ledgerState int

const (
	ledgerStateBrowse ledgerState = iota
	ledgerStateAdd
)

type LedgerModel struct {
	CommonModel
	svc       *ledger.Service
	customers *customer.Service

	state ledgerState
	table table.Model
	form  *huh.Form

	txs           []*ledger.Transaction
	typeFilterIdx int
	month         time.Time
	loading       bool
	err           error
	status        string

	formType        string
	formCategory    string
	formAmount      string
	formDate        string
	formDescription string
	formCustomerID  string

	customerOptions []huh.Option[string]
}

func NewLedgerModel(svc *ledger.Service, customers *customer.Service) LedgerModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 7},
		{Title: "Category", Width: 18},
		{Title: "Amount", Width: 10},
		{Title: "Description", Width: 30},
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

	now := time.Now()

	return LedgerModel{
		svc:       svc,
		customers: customers,
		table:     t,
		month:     time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m LedgerModel) Title() string { return "Cash Ledger" }
func (m LedgerModel) ShortHelp() string {
	if m.state == ledgerStateAdd {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | t: type filter | [/]: change month | r: refresh"
}

func (m LedgerModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.txs = msg.txs
		m.customerOptions = msg.customerOptions
		m.refreshTable()

		return m, nil

	case ledgerSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}

		m.state = ledgerStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case ledgerStateBrowse:
		return m.updateBrowse(msg)
	case ledgerStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m LedgerModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterAddMode()
		case "t":
			m.typeFilterIdx = (m.typeFilterIdx + 1) % 3
			return m, m.loadCmd()
		case "[":
			m.month = m.month.AddDate(0, -1, 0)
			return m, m.loadCmd()
		case "]":
			m.month = m.month.AddDate(0, 1, 0)
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LedgerModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formType = string(ledger.TypeDebit)
	m.formCategory = ledger.CategoryOther
	m.formAmount = ""
	m.formDate = FormatDate(time.Now())
	m.formDescription = ""
	m.formCustomerID = ""

	categoryOptions := make([]huh.Option[string], 0, len(ledger.Categories()))
	for _, c := range ledger.Categories() {
		categoryOptions = append(categoryOptions, huh.NewOption(c, c))
	}

	customerOptions := append(
		[]huh.Option[string]{huh.NewOption("(none)", "")},
		m.customerOptions...,
	)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Money out (debit)", string(ledger.TypeDebit)),
					huh.NewOption("Money in (credit)", string(ledger.TypeCredit)),
				).
				Value(&m.formType),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOptions...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("500.00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					v, err := money.Parse(s)
					if err != nil || v < 0 {
						return fmt.Errorf("enter a non-negative amount")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := dateutil.ParseDay(s); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDescription),

			huh.NewSelect[string]().
				Key("customer").
				Title("Customer (for payments)").
				Options(customerOptions...).
				Value(&m.formCustomerID),
		),
	).WithWidth(48).WithShowHelp(false)

	m.state = ledgerStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m LedgerModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = ledgerStateBrowse
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

	return m, m.saveCmd()
}

func (m LedgerModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading ledger...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	typeLabels := []string{"All", "Credits", "Debits"}

	var credits, debits int64
	for _, tx := range m.txs {
		if tx.Type == ledger.TypeCredit {
			credits += tx.Amount
		} else {
			debits += tx.Amount
		}
	}

	header := fmt.Sprintf(
		"%s | [t] Type: %s | in %s | out %s",
		activeStyle(m.month.Format("January 2006")),
		activeStyle(typeLabels[m.typeFilterIdx]),
		FormatAmount(credits),
		FormatAmount(debits),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == ledgerStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(52).
			Render(fmt.Sprintf("Add Transaction\n\n%s", m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *LedgerModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))

	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Type),
			tx.Category,
			FormatAmount(tx.Amount),
			tx.Description,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type ledgerLoadMsg struct {
	txs             []*ledger.Transaction
	customerOptions []huh.Option[string]
	err             error
}

func (m LedgerModel) loadCmd() tea.Cmd {
	month := m.month
	typeFilterIdx := m.typeFilterIdx

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		start, end := dateutil.MonthInterval(month)
		filter := ledger.ListFilter{StartDate: &start, EndDate: &end}

		switch typeFilterIdx {
		case 1:
			filter.Type = new(ledger.TypeCredit)
		case 2:
			filter.Type = new(ledger.TypeDebit)
		}

		txs, err := m.svc.List(ctx, filter)
		if err != nil {
			return ledgerLoadMsg{err: err}
		}

		customers, err := m.customers.ListActive(ctx)
		if err != nil {
			return ledgerLoadMsg{err: err}
		}

		options := make([]huh.Option[string], 0, len(customers))
		for _, c := range customers {
			options = append(options, huh.NewOption(c.Name, c.ID.String()))
		}

		return ledgerLoadMsg{txs: txs, customerOptions: options}
	}
}

type ledgerSaveMsg struct {
	err error
}

func (m LedgerModel) saveCmd() tea.Cmd {
	params := ledger.CreateParams{
		Type:        ledger.Type(m.formType),
		Category:    m.formCategory,
		Description: m.formDescription,
	}

	params.Amount, _ = money.Parse(m.formAmount)

	date, err := dateutil.ParseDay(m.formDate)
	if err != nil {
		return func() tea.Msg { return ledgerSaveMsg{err: err} }
	}
	params.Date = date

	if m.formCustomerID != "" {
		if id, err := parseCustomerID(m.formCustomerID); err == nil {
			params.CustomerID = &id
		}
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.Create(ctx, params)

		return ledgerSaveMsg{err: err}
	}
}
