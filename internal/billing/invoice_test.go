package billing_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javedfarm/dairybook/internal/billing"
	"github.com/javedfarm/dairybook/internal/customer"
	"github.com/javedfarm/dairybook/internal/entry"
)

func sampleBill() *billing.Bill {
	c := &customer.Customer{ID: uuid.New(), Name: "Ali", Phone: "+91 98765-43210", Rate: 6000}

	return &billing.Bill{
		Customer: c,
		Entries: []*entry.Entry{
			{
				CustomerID: c.ID,
				Date:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				Quantity:   2,
				Rate:       6000,
				Amount:     12000,
			},
		},
		TotalQuantity: 2,
		TotalAmount:   12000,
		PaidAmount:    5000,
		Balance:       7000,
		Status:        billing.StatusDue,
	}
}

func TestInvoiceText(t *testing.T) {
	text := billing.InvoiceText("Javed Dairy Farm", sampleBill(), march)

	assert.Contains(t, text, "*Javed Dairy Farm*")
	assert.Contains(t, text, "Bill for March 2024")
	assert.Contains(t, text, "Customer: Ali")
	assert.Contains(t, text, "01 Mar: 2.0 L x 60.00 = 120.00")
	assert.Contains(t, text, "Balance due: ₹70.00")
}

func TestInvoiceText_FullyPaid(t *testing.T) {
	bill := sampleBill()
	bill.PaidAmount = 12000
	bill.Balance = 0
	bill.Status = billing.StatusPaid

	text := billing.InvoiceText("Javed Dairy Farm", bill, march)
	assert.Contains(t, text, "Fully paid")
}

func TestInvoiceText_Advance(t *testing.T) {
	bill := sampleBill()
	bill.PaidAmount = 15000
	bill.Balance = -3000
	bill.Status = billing.StatusPaid

	text := billing.InvoiceText("Javed Dairy Farm", bill, march)
	assert.Contains(t, text, "Advance: ₹30.00")
}

func TestWhatsAppLink(t *testing.T) {
	link := billing.WhatsAppLink("+91 98765-43210", "hello world")
	assert.Equal(t, "https://wa.me/919876543210?text=hello+world", link)

	assert.Empty(t, billing.WhatsAppLink("", "hello"))
	assert.Empty(t, billing.WhatsAppLink("n/a", "hello"))
}

func TestWriteReport(t *testing.T) {
	bill := sampleBill()
	summary := &billing.MonthSummary{
		Bills:         []*billing.Bill{bill},
		TotalQuantity: bill.TotalQuantity,
		TotalAmount:   bill.TotalAmount,
		TotalPaid:     bill.PaidAmount,
		TotalBalance:  bill.Balance,
	}

	var buf bytes.Buffer
	require.NoError(t, billing.WriteReport(&buf, summary, march))

	// XLSX files are zip archives.
	assert.True(t, strings.HasPrefix(buf.String(), "PK"))
	assert.Greater(t, buf.Len(), 1000)
}
