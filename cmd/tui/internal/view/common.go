package view

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/money"
)

const dbTimeout = 5 * time.Second

// CommonModel is embedded by all views.
type CommonModel struct{}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// FormatAmount formats paise into a rupee string for table cells.
func FormatAmount(paise int64) string {
	return money.Format(paise)
}

// FormatQuantity renders litres with one decimal place.
func FormatQuantity(litres float64) string {
	return fmt.Sprintf("%.1f", litres)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func parseCustomerID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
