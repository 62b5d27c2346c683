package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/javedfarm/dairybook/internal/backup"
	backupStore "github.com/javedfarm/dairybook/internal/backup/store"
	"github.com/javedfarm/dairybook/internal/billing"
	"github.com/javedfarm/dairybook/internal/config"
	"github.com/javedfarm/dairybook/internal/customer"
	customerStore "github.com/javedfarm/dairybook/internal/customer/store"
	"github.com/javedfarm/dairybook/internal/dailysheet"
	"github.com/javedfarm/dairybook/internal/dashboard"
	"github.com/javedfarm/dairybook/internal/database"
	"github.com/javedfarm/dairybook/internal/entry"
	entryStore "github.com/javedfarm/dairybook/internal/entry/store"
	dairyHttp "github.com/javedfarm/dairybook/internal/http"
	backupHandler "github.com/javedfarm/dairybook/internal/http/backup"
	billingHandler "github.com/javedfarm/dairybook/internal/http/billing"
	customerHandler "github.com/javedfarm/dairybook/internal/http/customer"
	dailyHandler "github.com/javedfarm/dairybook/internal/http/daily"
	dashboardHandler "github.com/javedfarm/dairybook/internal/http/dashboard"
	txHandler "github.com/javedfarm/dairybook/internal/http/ledgertx"
	"github.com/javedfarm/dairybook/internal/ledger"
	ledgerStore "github.com/javedfarm/dairybook/internal/ledger/store"
	"github.com/javedfarm/dairybook/internal/ledgercsv"
)

func main() {
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
	defer db.Close()

	var (
		customerService  = customer.NewService(customerStore.New(db))
		entryService     = entry.NewService(entryStore.New(db))
		ledgerService    = ledger.NewService(ledgerStore.New(db))
		sheetService     = dailysheet.NewService(customerService, entryService)
		billingService   = billing.NewService(customerService, entryService, ledgerService)
		dashboardService = dashboard.NewService(customerService, entryService, ledgerService)
		importer         = ledgercsv.NewImporter(ledgerService)
		backupService    = backup.NewService(customerService, entryService, ledgerService, backupStore.New(db), cfg.Backup.Dir)
	)

	var (
		customersH = customerHandler.NewHandler(customerService, backupService)
		dailyH     = dailyHandler.NewHandler(sheetService, customerService, backupService)
		txH        = txHandler.NewHandler(ledgerService, importer, backupService)
		billingH   = billingHandler.NewHandler(billingService, cfg.App.FarmName)
		dashboardH = dashboardHandler.NewHandler(dashboardService)
		backupH    = backupHandler.NewHandler(backupService)
	)

	router := dairyHttp.New(customersH, dailyH, txH, billingH, dashboardH, backupH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
