package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/money"
)

type customersState int

const (
	customersStateBrowse customersState = iota
	customersStateForm
)

type CustomersModel struct {
	CommonModel
	svc *customer.Service

	state customersState
	table table.Model
	form  *huh.Form

	customers  []*customer.Customer
	showAll    bool
	editing    *customer.Customer // nil while adding
	loading    bool
	err        error
	status     string

	formName     string
	formPhone    string
	formWhatsApp string
	formAddress  string
	formRate     string
	formQuantity string
}

func NewCustomersModel(svc *customer.Service) CustomersModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Phone", Width: 14},
		{Title: "Rate", Width: 10},
		{Title: "Default L", Width: 10},
		{Title: "Active", Width: 7},
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

	return CustomersModel{svc: svc, table: t}
}

func (m CustomersModel) Title() string { return "Customers" }
func (m CustomersModel) ShortHelp() string {
	if m.state == customersStateForm {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | e: edit | x: deactivate | i: show inactive | r: refresh"
}

func (m CustomersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CustomersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case customersLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.customers = msg.customers
		m.refreshTable()

		return m, nil

	case customersSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}

		m.state = customersStateBrowse
		m.form = nil
		m.editing = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case customersStateBrowse:
		return m.updateBrowse(msg)
	case customersStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m CustomersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "i":
			m.showAll = !m.showAll
			return m, m.loadCmd()
		case "a":
			return m.enterForm(nil)
		case "e":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.customers) {
				return m.enterForm(m.customers[idx])
			}
		case "x":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.customers) {
				return m, m.deactivateCmd(m.customers[idx])
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CustomersModel) enterForm(c *customer.Customer) (tea.Model, tea.Cmd) {
	m.editing = c

	if c != nil {
		m.formName = c.Name
		m.formPhone = c.Phone
		m.formWhatsApp = c.WhatsApp
		m.formAddress = c.Address
		m.formRate = money.Format(c.Rate)
		m.formQuantity = strconv.FormatFloat(c.DefaultQuantity, 'f', -1, 64)
	} else {
		m.formName = ""
		m.formPhone = ""
		m.formWhatsApp = ""
		m.formAddress = ""
		m.formRate = ""
		m.formQuantity = "0"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("phone").
				Title("Phone").
				Value(&m.formPhone),

			huh.NewInput().
				Key("whatsapp").
				Title("WhatsApp").
				Placeholder("same as phone if empty").
				Value(&m.formWhatsApp),

			huh.NewInput().
				Key("address").
				Title("Address").
				Value(&m.formAddress),

			huh.NewInput().
				Key("rate").
				Title("Rate per litre").
				Placeholder("60.00").
				Value(&m.formRate).
				Validate(func(s string) error {
					v, err := money.Parse(s)
					if err != nil {
						return fmt.Errorf("enter an amount")
					}
					if v < 0 {
						return fmt.Errorf("rate cannot be negative")
					}
					return nil
				}),

			huh.NewInput().
				Key("default_quantity").
				Title("Default litres per day").
				Value(&m.formQuantity).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v < 0 {
						return fmt.Errorf("enter a non-negative number")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = customersStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m CustomersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = customersStateBrowse
			m.form = nil
			m.editing = nil
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

func (m CustomersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading customers...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	scope := "active"
	if m.showAll {
		scope = "all"
	}

	header := fmt.Sprintf("Customers (%s): %d", activeStyle(scope), len(m.customers))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == customersStateForm && m.form != nil {
		title := "Add Customer"
		if m.editing != nil {
			title = "Edit Customer"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *CustomersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.customers))

	for _, c := range m.customers {
		active := ""
		if c.Active {
			active = "yes"
		}

		rows = append(rows, table.Row{
			c.Name,
			c.Phone,
			FormatAmount(c.Rate),
			FormatQuantity(c.DefaultQuantity),
			active,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type customersLoadMsg struct {
	customers []*customer.Customer
	err       error
}

func (m CustomersModel) loadCmd() tea.Cmd {
	showAll := m.showAll

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		customers, err := m.svc.List(ctx, customer.ListFilter{ActiveOnly: !showAll})

		return customersLoadMsg{customers: customers, err: err}
	}
}

type customersSaveMsg struct {
	err error
}

func (m CustomersModel) saveCmd() tea.Cmd {
	editing := m.editing
	name := strings.TrimSpace(m.formName)
	phone := strings.TrimSpace(m.formPhone)
	whatsapp := strings.TrimSpace(m.formWhatsApp)
	address := strings.TrimSpace(m.formAddress)
	rate, _ := money.Parse(m.formRate)
	quantity, _ := strconv.ParseFloat(strings.TrimSpace(m.formQuantity), 64)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if editing == nil {
			_, err := m.svc.Create(ctx, customer.CreateParams{
				Name:            name,
				Phone:           phone,
				WhatsApp:        whatsapp,
				Address:         address,
				Rate:            rate,
				DefaultQuantity: quantity,
			})

			return customersSaveMsg{err: err}
		}

		editing.Name = name
		editing.Phone = phone
		editing.WhatsApp = whatsapp
		editing.Address = address
		editing.Rate = rate
		editing.DefaultQuantity = quantity

		return customersSaveMsg{err: m.svc.Update(ctx, editing)}
	}
}

func (m CustomersModel) deactivateCmd(c *customer.Customer) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return customersSaveMsg{err: m.svc.Deactivate(ctx, c.ID)}
	}
}
