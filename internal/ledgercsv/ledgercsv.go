// Package ledgercsv reads and writes cash-ledger CSV files. Import is
// tolerant: files come from bank portals and hand-edited spreadsheets, so
// the header row is located by its column names rather than assumed to be
// first, and bad rows are skipped instead of failing the whole file.
package ledgercsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/javedfarm/dairybook/internal/dateutil"
	"github.com/javedfarm/dairybook/internal/ledger"
	"github.com/javedfarm/dairybook/internal/money"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Export writes transactions as CSV. A UTF-8 BOM is prepended so Excel
// opens the file with the right encoding.
func Export(w io.Writer, transactions []*ledger.Transaction) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Date", "Type", "Category", "Amount", "Description"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range transactions {
		record := []string{
			dateutil.FormatDay(tx.Date),
			string(tx.Type),
			tx.Category,
			money.Format(tx.Amount),
			tx.Description,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Row is one parsed import line, ready to create a transaction from.
type Row struct {
	Date        time.Time
	Type        ledger.Type
	Category    string
	Amount      int64
	Description string
}

// Skipped records one rejected input line.
type Skipped struct {
	Line   int
	Reason string
}

// ParseResult is the outcome of parsing a ledger CSV.
type ParseResult struct {
	Rows    []Row
	Skipped []Skipped
}

// Parse reads a ledger CSV. Lines before the header row are ignored, so
// exports that lead with report titles or account summaries still parse.
func Parse(r io.Reader) (*ParseResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	result := &ParseResult{}
	var columns map[string]int
	line := 0

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}

		line++

		if columns == nil {
			columns = headerColumns(record)
			continue
		}

		row, err := parseRow(record, columns)
		if err != nil {
			result.Skipped = append(result.Skipped, Skipped{Line: line, Reason: err.Error()})
			continue
		}

		result.Rows = append(result.Rows, *row)
	}

	if columns == nil {
		return nil, fmt.Errorf("no header row with date and amount columns found")
	}

	return result, nil
}

// headerColumns reports the column index of each recognized header field,
// or nil if the record is not the header row.
func headerColumns(record []string) map[string]int {
	columns := make(map[string]int, len(record))

	for i, cell := range record {
		name := strings.ToLower(strings.TrimSpace(cell))

		switch name {
		case "date", "type", "category", "amount", "description":
			columns[name] = i
		case "note", "notes", "remarks":
			columns["description"] = i
		}
	}

	if _, ok := columns["date"]; !ok {
		return nil
	}

	if _, ok := columns["amount"]; !ok {
		return nil
	}

	return columns
}

func parseRow(record []string, columns map[string]int) (*Row, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}

		return strings.TrimSpace(record[i])
	}

	date, err := ParseDate(field("date"))
	if err != nil {
		return nil, err
	}

	amount, err := ParseAmount(field("amount"))
	if err != nil {
		return nil, err
	}

	txType := ledger.TypeDebit

	switch strings.ToLower(field("type")) {
	case "credit", "in", "income":
		txType = ledger.TypeCredit
	case "", "debit", "out", "expense":
		// default direction
	default:
		return nil, fmt.Errorf("unknown type %q", field("type"))
	}

	// A signed amount overrides the type column.
	if amount < 0 {
		amount = -amount
		txType = ledger.TypeDebit
	}

	return &Row{
		Date:        date,
		Type:        txType,
		Category:    field("category"),
		Amount:      amount,
		Description: field("description"),
	}, nil
}

// ParseDate accepts ISO dates and the day-first format common in Indian
// exports.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, "02-01-2006", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return dateutil.Day(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParseAmount converts a human-formatted amount to paise. Both decimal
// conventions are handled: whichever of '.' and ',' appears last is the
// decimal separator, the other is a thousands grouper. A trailing group
// of exactly three digits after a lone ',' is treated as grouping, the
// way "1,234" is usually meant.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, " ", "")

	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	var intPart, fracPart string

	switch {
	case lastComma < 0 && lastDot < 0:
		intPart = s
	case lastDot > lastComma:
		intPart = strings.ReplaceAll(s[:lastDot], ",", "")
		fracPart = s[lastDot+1:]
	case lastComma > lastDot:
		intPart = strings.ReplaceAll(strings.ReplaceAll(s[:lastComma], ".", ""), ",", "")
		fracPart = s[lastComma+1:]

		if lastDot < 0 && len(fracPart) == 3 {
			intPart += fracPart
			fracPart = ""
		}
	}

	value, err := strconv.ParseFloat(intPart+"."+padFraction(fracPart), 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognized amount %q", s)
	}

	paise := int64(math.Round(value * 100))
	if negative {
		paise = -paise
	}

	return paise, nil
}

func padFraction(frac string) string {
	if frac == "" {
		return "0"
	}

	return frac
}
