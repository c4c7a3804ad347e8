package parser

import (
	"encoding/csv"
	"math"
	"strings"
	"time"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

// TableParser converts delimited statement exports (CSV) into candidates.
//
// When a header row is present its column names decide which cell is the
// date, description, debit, credit, signed amount or type. Without a header
// the positional heuristic applies: the first date-like cell is the date,
// the first non-numeric cell after it is the description, and an amount in
// the right half of the row is a credit.
type TableParser struct {
	Now   func() time.Time
	NewID func() string
}

func (p *TableParser) Name() string {
	return "Statement table"
}

const tablePlaceholderDescription = "No transactions could be parsed from the uploaded table"

// columns maps header names to cell indexes; -1 means absent.
type columns struct {
	date, description, debit, credit, amount, typ, frequency int
}

func noColumns() columns {
	return columns{-1, -1, -1, -1, -1, -1, -1}
}

// dedupeKey identifies rows repeated across pages of the same export.
type dedupeKey struct {
	date   string
	amount float64
	desc   string
}

// Parse treats each page as CSV text.
func (p *TableParser) Parse(pages []string) (*models.StatementInfo, error) {
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}

	var rows [][]string
	for _, page := range pages {
		rows = append(rows, readRows(page)...)
	}

	info := &models.StatementInfo{Source: models.SourceTable, Bank: DetectBank(pages)}
	info.Transactions, info.DebugLines = p.ParseRows(rows)

	if len(info.Transactions) == 0 {
		sp := &StatementParser{NewID: p.NewID}
		info.Transactions = []models.Transaction{sp.placeholder(now, tablePlaceholderDescription)}
		info.Placeholder = true
	}
	return info, nil
}

// ParseRows converts already-split rows. Rows that cannot be read are
// skipped; duplicates on (date, amount, description prefix) are dropped.
func (p *TableParser) ParseRows(rows [][]string) ([]models.Transaction, []models.DebugLine) {
	var transactions []models.Transaction
	var debug []models.DebugLine
	seen := make(map[dedupeKey]bool)
	cols := noColumns()

	for i, row := range rows {
		clean := make([]string, len(row))
		for j, c := range row {
			clean[j] = strings.TrimSpace(c)
		}
		line := models.DebugLine{LineNum: i + 1, Text: strings.Join(clean, " | "), Result: "skipped"}

		if h, ok := headerColumns(clean); ok {
			cols = h
			line.Result = "header"
			debug = append(debug, line)
			continue
		}

		txn, ok := p.parseRow(clean, cols)
		if !ok {
			debug = append(debug, line)
			continue
		}

		key := dedupeKey{txn.Date.String(), txn.Amount, strings.TrimSpace(truncate(txn.Description, 20))}
		if seen[key] {
			line.Note = "duplicate"
			debug = append(debug, line)
			continue
		}
		seen[key] = true

		line.Result = "parsed"
		debug = append(debug, line)
		transactions = append(transactions, txn)
	}

	return transactions, debug
}

func (p *TableParser) parseRow(row []string, cols columns) (models.Transaction, bool) {
	if cols.date >= 0 {
		return p.parseMappedRow(row, cols)
	}
	return p.parsePositionalRow(row)
}

func (p *TableParser) parseMappedRow(row []string, cols columns) (models.Transaction, bool) {
	date, ok := parseCellDate(cell(row, cols.date))
	if !ok {
		return models.Transaction{}, false
	}

	txn := p.candidate(date, cell(row, cols.description))

	switch {
	case cols.debit >= 0 || cols.credit >= 0:
		debit, _ := parseAmount(cell(row, cols.debit))
		credit, _ := parseAmount(cell(row, cols.credit))
		if credit > 0 {
			txn.Amount, txn.Type = credit, models.Credit
		} else {
			txn.Amount, txn.Type = math.Abs(debit), models.Debit
		}
	case cols.amount >= 0:
		amt, err := parseAmount(cell(row, cols.amount))
		if err != nil {
			return models.Transaction{}, false
		}
		txn.Amount = math.Abs(amt)
		if t, err := models.ParseTxType(cell(row, cols.typ)); err == nil {
			txn.Type = t
		} else if amt < 0 {
			txn.Type = models.Debit
		} else {
			txn.Type = models.Credit
		}
	default:
		return models.Transaction{}, false
	}

	if f, err := models.ParseFrequency(cell(row, cols.frequency)); err == nil {
		txn.Frequency = f
	}
	if txn.Amount == 0 {
		return models.Transaction{}, false
	}
	return txn, true
}

func (p *TableParser) parsePositionalRow(row []string) (models.Transaction, bool) {
	if len(row) < 3 {
		return models.Transaction{}, false
	}

	dateIdx := -1
	var date models.Date
	for i, c := range row {
		if d, ok := parseCellDate(c); ok {
			date, dateIdx = d, i
			break
		}
	}
	if dateIdx < 0 {
		return models.Transaction{}, false
	}

	desc := ""
	for i := dateIdx + 1; i < len(row); i++ {
		if row[i] != "" && !isAmount(row[i]) && !isDate(row[i]) {
			desc = row[i]
			break
		}
	}

	var debit, credit float64
	for i, c := range row {
		if i == dateIdx || !isAmount(c) {
			continue
		}
		amt, _ := parseAmount(c)
		if i > len(row)/2 {
			credit = math.Abs(amt)
		} else {
			debit = math.Abs(amt)
		}
	}

	txn := p.candidate(date, desc)
	if credit > 0 {
		txn.Amount, txn.Type = credit, models.Credit
	} else {
		txn.Amount, txn.Type = debit, models.Debit
	}
	if txn.Amount == 0 {
		return models.Transaction{}, false
	}
	return txn, true
}

func (p *TableParser) candidate(date models.Date, desc string) models.Transaction {
	newID := p.NewID
	if newID == nil {
		newID = CandidateID
	}
	desc = cleanDescription(desc)
	if desc == "" {
		desc = "Bank Transaction"
	}
	return models.Transaction{
		ID:          newID(),
		Date:        date,
		Description: desc,
		Frequency:   models.Irregular,
	}
}

// headerColumns recognizes a header row and maps its columns.
func headerColumns(row []string) (columns, bool) {
	cols := noColumns()
	for i, c := range row {
		if isDate(c) || isAmount(c) {
			return noColumns(), false
		}
		name := strings.ToLower(c)
		switch {
		case name == "":
		case strings.Contains(name, "date"):
			if cols.date < 0 {
				cols.date = i
			}
		case strings.Contains(name, "debit") || strings.Contains(name, "withdrawal") || strings.Contains(name, "paid out"):
			cols.debit = i
		case strings.Contains(name, "credit") || strings.Contains(name, "deposit") || strings.Contains(name, "paid in"):
			cols.credit = i
		case strings.Contains(name, "description") || strings.Contains(name, "particulars") ||
			strings.Contains(name, "narration") || strings.Contains(name, "details") || strings.Contains(name, "remarks"):
			if cols.description < 0 {
				cols.description = i
			}
		case name == "amount":
			cols.amount = i
		case name == "type" || name == "dr/cr" || name == "cr/dr":
			cols.typ = i
		case name == "frequency":
			cols.frequency = i
		}
	}
	if cols.date < 0 {
		return noColumns(), false
	}
	return cols, true
}

func readRows(text string) [][]string {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.Comment = '#'

	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			// io.EOF, or a record the lazy reader still cannot split.
			break
		}
		rows = append(rows, rec)
	}
	return rows
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
