package billing

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/javedfarm/dairybook/internal/dateutil"
	"github.com/javedfarm/dairybook/internal/money"
)

// InvoiceText renders a bill as the plain-text message sent to the
// customer, one line per delivery day, then the month totals.
func InvoiceText(farmName string, bill *Bill, month time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s*\n", farmName)
	fmt.Fprintf(&b, "Bill for %s\n", month.Format("January 2006"))
	fmt.Fprintf(&b, "Customer: %s\n\n", bill.Customer.Name)

	for _, e := range bill.Entries {
		if e.Quantity == 0 {
			continue
		}

		fmt.Fprintf(&b, "%s: %.1f L x %s = %s\n",
			e.Date.Format("02 Jan"),
			e.Quantity,
			money.Format(e.Rate),
			money.Format(e.Amount))
	}

	fmt.Fprintf(&b, "\nTotal milk: %.1f L\n", bill.TotalQuantity)
	fmt.Fprintf(&b, "Total amount: %s\n", money.FormatRupees(bill.TotalAmount))
	fmt.Fprintf(&b, "Paid: %s\n", money.FormatRupees(bill.PaidAmount))

	if bill.Balance > 0 {
		fmt.Fprintf(&b, "Balance due: %s\n", money.FormatRupees(bill.Balance))
	} else if bill.Balance < 0 {
		fmt.Fprintf(&b, "Advance: %s\n", money.FormatRupees(-bill.Balance))
	} else {
		b.WriteString("Fully paid, thank you!\n")
	}

	return b.String()
}

// WhatsAppLink builds a wa.me link that opens a chat with the invoice text
// pre-filled. The phone number is reduced to digits; an empty number
// yields an empty link.
func WhatsAppLink(phone, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, phone)

	if digits == "" {
		return ""
	}

	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(text))
}

// InvoiceFilename names the exported report for a month.
func InvoiceFilename(month time.Time) string {
	return fmt.Sprintf("bills-%s.xlsx", dateutil.FormatMonth(month))
}
