package view

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/javedfarm/dairybook/internal/billing"
)

type BillingModel struct {
	CommonModel
	svc      *billing.Service
	farmName string

	table   table.Model
	month   time.Time
	summary *billing.MonthSummary
	loading bool
	err     error
	status  string

	showInvoice bool
	invoiceText string
}

func NewBillingModel(svc *billing.Service, farmName string) BillingModel {
	columns := []table.Column{
		{Title: "Customer", Width: 24},
		{Title: "Litres", Width: 8},
		{Title: "Amount", Width: 10},
		{Title: "Paid", Width: 10},
		{Title: "Balance", Width: 10},
		{Title: "Status", Width: 6},
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

	return BillingModel{
		svc:      svc,
		farmName: farmName,
		table:    t,
		month:    time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m BillingModel) Title() string { return "Monthly Billing" }
func (m BillingModel) ShortHelp() string {
	if m.showInvoice {
		return "Esc: close invoice"
	}

	return "Esc: back | enter: invoice | w: write xlsx | [/]: change month | r: refresh"
}

func (m BillingModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BillingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case billingLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.summary = msg.summary
		m.refreshTable()

		return m, nil

	case billingReportMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error writing report: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Wrote %s", msg.path)
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		if m.showInvoice {
			if msg.Type == tea.KeyEsc {
				m.showInvoice = false
				m.invoiceText = ""
			}

			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "[":
			m.month = m.month.AddDate(0, -1, 0)
			return m, m.loadCmd()
		case "]":
			m.month = m.month.AddDate(0, 1, 0)
			return m, m.loadCmd()
		case "w":
			return m, m.writeReportCmd()
		case "enter":
			idx := m.table.Cursor()
			if m.summary != nil && idx >= 0 && idx < len(m.summary.Bills) {
				m.invoiceText = billing.InvoiceText(m.farmName, m.summary.Bills[idx], m.month)
				m.showInvoice = true
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BillingModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading bills...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("Bills for %s", activeStyle(m.month.Format("January 2006")))

	if m.summary != nil {
		header += fmt.Sprintf(
			" | %s L | billed %s | due %s",
			FormatQuantity(m.summary.TotalQuantity),
			FormatAmount(m.summary.TotalAmount),
			FormatAmount(m.summary.TotalBalance),
		)
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.showInvoice {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.invoiceText)

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *BillingModel) refreshTable() {
	if m.summary == nil {
		m.table.SetRows(nil)
		return
	}

	rows := make([]table.Row, 0, len(m.summary.Bills))

	for _, b := range m.summary.Bills {
		rows = append(rows, table.Row{
			b.Customer.Name,
			FormatQuantity(b.TotalQuantity),
			FormatAmount(b.TotalAmount),
			FormatAmount(b.PaidAmount),
			FormatAmount(b.Balance),
			string(b.Status),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type billingLoadMsg struct {
	summary *billing.MonthSummary
	err     error
}

func (m BillingModel) loadCmd() tea.Cmd {
	month := m.month

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := m.svc.MonthlyBills(ctx, month)

		return billingLoadMsg{summary: summary, err: err}
	}
}

type billingReportMsg struct {
	path string
	err  error
}

func (m BillingModel) writeReportCmd() tea.Cmd {
	month := m.month

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := m.svc.MonthlyBills(ctx, month)
		if err != nil {
			return billingReportMsg{err: err}
		}

		path := billing.InvoiceFilename(month)

		f, err := os.Create(path)
		if err != nil {
			return billingReportMsg{err: err}
		}
		defer f.Close()

		if err := billing.WriteReport(f, summary, month); err != nil {
			return billingReportMsg{err: err}
		}

		return billingReportMsg{path: path}
	}
}
