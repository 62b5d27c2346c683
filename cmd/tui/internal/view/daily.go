package view

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/dailysheet"
	"github.com/javedfarm/dairybook/internal/dateutil"
	"github.com/javedfarm/dairybook/internal/entry"
)

type dailyState int

const (
	dailyStateBrowse dailyState = iota
	dailyStateEdit
)

// dailyLine pairs a customer with its sheet line for stable table order.
type dailyLine struct {
	customer *customer.Customer
	line     dailysheet.Line
}

type DailyModel struct {
	CommonModel
	sheets    *dailysheet.Service
	customers *customer.Service

	state dailyState
	table table.Model
	form  *huh.Form

	date    time.Time
	sheet   dailysheet.Sheet
	lines   []dailyLine
	loading bool
	err     error
	status  string

	formQuantity string
}

func NewDailyModel(sheets *dailysheet.Service, customers *customer.Service) DailyModel {
	columns := []table.Column{
		{Title: "Customer", Width: 24},
		{Title: "Rate", Width: 10},
		{Title: "Litres", Width: 8},
		{Title: "Amount", Width: 10},
		{Title: "Saved", Width: 6},
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

	return DailyModel{
		sheets:    sheets,
		customers: customers,
		table:     t,
		date:      dateutil.Day(time.Now()),
	}
}

func (m DailyModel) Title() string { return "Daily Sheet" }
func (m DailyModel) ShortHelp() string {
	if m.state == dailyStateEdit {
		return "Enter: save | Esc: cancel"
	}

	return "Esc: back | enter: edit litres | c: copy yesterday | [/]: change day | r: refresh"
}

func (m DailyModel) Init() tea.Cmd {
	return m.loadSheetCmd()
}

func (m DailyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dailyLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.sheet = msg.sheet
		m.lines = msg.lines
		m.refreshTable()

		return m, nil

	case dailySaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}

		m.state = dailyStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadSheetCmd()

	case dailyCopyMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error copying: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Copied %d, failed %d", len(msg.result.Copied), len(msg.result.Failures))
		}

		return m, m.loadSheetCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case dailyStateBrowse:
		return m.updateBrowse(msg)
	case dailyStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m DailyModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadSheetCmd()
		case "enter":
			return m.enterEditMode()
		case "c":
			m.status = "Copying yesterday's quantities..."
			return m, m.copyPreviousCmd()
		case "[":
			m.date = dateutil.PreviousDay(m.date)
			return m, m.loadSheetCmd()
		case "]":
			m.date = m.date.AddDate(0, 0, 1)
			return m, m.loadSheetCmd()
		case "t":
			m.date = dateutil.Day(time.Now())
			return m, m.loadSheetCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DailyModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.lines) {
		return m, nil
	}

	m.formQuantity = strconv.FormatFloat(m.lines[idx].line.Quantity, 'f', -1, 64)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("quantity").
				Title(fmt.Sprintf("Litres for %s", m.lines[idx].customer.Name)).
				Value(&m.formQuantity).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return fmt.Errorf("enter a number")
					}
					if v < 0 {
						return fmt.Errorf("litres cannot be negative")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = dailyStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m DailyModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = dailyStateBrowse
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

func (m DailyModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading daily sheet...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var total float64
	var amount int64

	for _, l := range m.lines {
		total += l.line.Quantity
		amount += entry.Amount(l.line.Quantity, l.customer.Rate)
	}

	header := fmt.Sprintf(
		"Sheet for %s | %s L | %s",
		activeStyle(FormatDate(m.date)),
		FormatQuantity(total),
		FormatAmount(amount),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == dailyStateEdit && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *DailyModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.lines))

	for _, l := range m.lines {
		saved := ""
		if l.line.Saved {
			saved = "yes"
		}

		rows = append(rows, table.Row{
			l.customer.Name,
			FormatAmount(l.customer.Rate),
			FormatQuantity(l.line.Quantity),
			FormatAmount(entry.Amount(l.line.Quantity, l.customer.Rate)),
			saved,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type dailyLoadMsg struct {
	sheet dailysheet.Sheet
	lines []dailyLine
	err   error
}

func (m DailyModel) loadSheetCmd() tea.Cmd {
	date := m.date

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sheet, err := m.sheets.Load(ctx, date)
		if err != nil {
			return dailyLoadMsg{err: err}
		}

		customers, err := m.customers.ListActive(ctx)
		if err != nil {
			return dailyLoadMsg{err: err}
		}

		lines := make([]dailyLine, 0, len(customers))

		for _, c := range customers {
			line, ok := sheet.Line(c.ID)
			if !ok {
				continue
			}

			lines = append(lines, dailyLine{customer: c, line: line})
		}

		sort.SliceStable(lines, func(i, j int) bool {
			return lines[i].customer.Name < lines[j].customer.Name
		})

		return dailyLoadMsg{sheet: sheet, lines: lines}
	}
}

type dailySaveMsg struct {
	err error
}

func (m DailyModel) saveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.lines) {
		return nil
	}

	c := m.lines[idx].customer
	date := m.date
	quantity, _ := strconv.ParseFloat(strings.TrimSpace(m.formQuantity), 64)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return dailySaveMsg{err: m.sheets.Save(ctx, date, c, quantity)}
	}
}

type dailyCopyMsg struct {
	result dailysheet.CopyResult
	err    error
}

func (m DailyModel) copyPreviousCmd() tea.Cmd {
	date := m.date

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.sheets.CopyPreviousDay(ctx, date)

		return dailyCopyMsg{result: result, err: err}
	}
}
