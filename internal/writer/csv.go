package writer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/report"
)

// CSVWriter writes report transactions to CSV format.
type CSVWriter struct {
	// IncludeHeader prepends "# key,value" metadata rows.
	IncludeHeader bool
}

// Write writes the report in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, r *report.Report) error {
	writer := csv.NewWriter(out)

	// Write metadata as comments (CSV header rows)
	if w.IncludeHeader {
		meta := [][]string{
			{"# Report", orNA(r.Title)},
			{"# Period", orNA(r.Period)},
			{"# Generated", r.GeneratedAt.UTC().Format("2006-01-02 15:04:05")},
			{"# Total Credit", formatAmount(r.Stats.TotalCredit)},
			{"# Total Debit", formatAmount(r.Stats.TotalDebit)},
			{"# Balance", formatAmount(r.Stats.Balance)},
			{"# Transactions", strconv.Itoa(r.Stats.Count)},
		}
		if err := writer.WriteAll(meta); err != nil {
			return fmt.Errorf("failed to write CSV metadata: %w", err)
		}
	}

	return w.writeRows(out, writer, r.Transactions)
}

// WriteTransactions writes bare transaction rows, e.g. extracted candidates.
func (w *CSVWriter) WriteTransactions(out io.Writer, txns []models.Transaction) error {
	return w.writeRows(out, csv.NewWriter(out), txns)
}

func (w *CSVWriter) writeRows(out io.Writer, writer *csv.Writer, txns []models.Transaction) error {
	// Write column headers
	if err := writer.Write(transactionHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write transaction rows. The description column is always quoted; the
	// other columns are dates, numbers and enum values that never need it.
	bw := bufio.NewWriter(out)
	for _, txn := range txns {
		row := transactionRow(txn)
		row[1] = quoteField(row[1])
		if _, err := bw.WriteString(strings.Join(row, ",") + "\n"); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return bw.Flush()
}

// quoteField wraps s in double quotes, doubling any embedded quote.
func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
