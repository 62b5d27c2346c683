package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/javedfarm/dairybook/cmd/tui/internal/view"
	"github.com/javedfarm/dairybook/internal/backup"
	backupStore "github.com/javedfarm/dairybook/internal/backup/store"
	"github.com/javedfarm/dairybook/internal/billing"
	"github.com/javedfarm/dairybook/internal/config"
	"github.com/javedfarm/dairybook/internal/customer"
	customerStore "github.com/javedfarm/dairybook/internal/customer/store"
	"github.com/javedfarm/dairybook/internal/dailysheet"
	"github.com/javedfarm/dairybook/internal/database"
	"github.com/javedfarm/dairybook/internal/entry"
	entryStore "github.com/javedfarm/dairybook/internal/entry/store"
	"github.com/javedfarm/dairybook/internal/ledger"
	ledgerStore "github.com/javedfarm/dairybook/internal/ledger/store"
)

type model struct {
	currentView View

	dailyView     view.DailyModel
	billingView   view.BillingModel
	customersView view.CustomersModel
	ledgerView    view.LedgerModel
	backupView    view.BackupModel

	sheetService    *dailysheet.Service
	billingService  *billing.Service
	customerService *customer.Service
	ledgerService   *ledger.Service
	backupService   *backup.Service

	farmName string
}

type View int

const (
	ViewMenu      View = 0
	ViewDaily     View = 1
	ViewBilling   View = 2
	ViewCustomers View = 3
	ViewLedger    View = 4
	ViewBackup    View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg.DB.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	customerSvc := customer.NewService(customerStore.New(db))
	entrySvc := entry.NewService(entryStore.New(db))
	ledgerSvc := ledger.NewService(ledgerStore.New(db))
	sheetSvc := dailysheet.NewService(customerSvc, entrySvc)
	billingSvc := billing.NewService(customerSvc, entrySvc, ledgerSvc)
	backupSvc := backup.NewService(customerSvc, entrySvc, ledgerSvc, backupStore.New(db), cfg.Backup.Dir)

	return model{
		currentView:     ViewMenu,
		sheetService:    sheetSvc,
		billingService:  billingSvc,
		customerService: customerSvc,
		ledgerService:   ledgerSvc,
		backupService:   backupSvc,
		farmName:        cfg.App.FarmName,
		dailyView:       view.NewDailyModel(sheetSvc, customerSvc),
		billingView:     view.NewBillingModel(billingSvc, cfg.App.FarmName),
		customersView:   view.NewCustomersModel(customerSvc),
		ledgerView:      view.NewLedgerModel(ledgerSvc, customerSvc),
		backupView:      view.NewBackupModel(backupSvc),
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
				m.currentView = ViewDaily
				m.dailyView = view.NewDailyModel(m.sheetService, m.customerService)

				return m, m.dailyView.Init()
			case "2":
				m.currentView = ViewBilling
				m.billingView = view.NewBillingModel(m.billingService, m.farmName)

				return m, m.billingView.Init()
			case "3":
				m.currentView = ViewCustomers
				m.customersView = view.NewCustomersModel(m.customerService)

				return m, m.customersView.Init()
			case "4":
				m.currentView = ViewLedger
				m.ledgerView = view.NewLedgerModel(m.ledgerService, m.customerService)

				return m, m.ledgerView.Init()
			case "5":
				m.currentView = ViewBackup
				m.backupView = view.NewBackupModel(m.backupService)

				return m, m.backupView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDaily:
		var newModel tea.Model
		newModel, cmd = m.dailyView.Update(msg)
		m.dailyView = newModel.(view.DailyModel)
	case ViewBilling:
		var newModel tea.Model
		newModel, cmd = m.billingView.Update(msg)
		m.billingView = newModel.(view.BillingModel)
	case ViewCustomers:
		var newModel tea.Model
		newModel, cmd = m.customersView.Update(msg)
		m.customersView = newModel.(view.CustomersModel)
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewBackup:
		var newModel tea.Model
		newModel, cmd = m.backupView.Update(msg)
		m.backupView = newModel.(view.BackupModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.farmName + "\n\n" +
				"1. Daily Sheet\n" +
				"2. Monthly Billing\n" +
				"3. Customers\n" +
				"4. Cash Ledger\n" +
				"5. Backup\n\n" +
				"q. Quit",
		)
	case ViewDaily:
		return m.dailyView.View()
	case ViewBilling:
		return m.billingView.View()
	case ViewCustomers:
		return m.customersView.View()
	case ViewLedger:
		return m.ledgerView.View()
	case ViewBackup:
		return m.backupView.View()
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
