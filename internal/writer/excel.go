package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/report"
)

// ExcelWriter writes a tab-separated workbook text with one labeled section
// per report block. Spreadsheet software opens it as a single sheet.
type ExcelWriter struct{}

func (w *ExcelWriter) Write(out io.Writer, r *report.Report) error {
	tw := csv.NewWriter(out)
	tw.Comma = '\t'
	tw.UseCRLF = true

	rows := [][]string{
		{orNA(r.Title)},
		{orNA(r.Subtitle)},
		{"Generated", r.GeneratedAt.UTC().Format("2006-01-02 15:04:05")},
		{"Period", orNA(r.Period)},
		{""},
	}

	blocks := append([]block{summaryBlock(r)}, payloadBlocks(r)...)
	blocks = append(blocks, block{Heading: "Transactions", Header: transactionHeader, Rows: transactionRows(r)})

	for _, b := range blocks {
		rows = append(rows, []string{strings.ToUpper(b.Heading)})
		for _, line := range b.Lines {
			rows = append(rows, []string{line})
		}
		if len(b.Header) > 0 {
			rows = append(rows, b.Header)
			if len(b.Rows) == 0 {
				rows = append(rows, []string{NotAvailable})
			}
			rows = append(rows, b.Rows...)
		}
		rows = append(rows, []string{""})
	}

	if err := tw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write spreadsheet rows: %w", err)
	}
	return nil
}

func transactionRows(r *report.Report) [][]string {
	rows := make([][]string, 0, len(r.Transactions))
	for _, t := range r.Transactions {
		rows = append(rows, transactionRow(t))
	}
	return rows
}
