package parser

import (
	"testing"
	"time"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

func newTestTableParser() *TableParser {
	return &TableParser{
		Now:   func() time.Time { return fixedNow },
		NewID: func() string { return "ext-t" },
	}
}

func TestTableParser_HeaderMapped(t *testing.T) {
	csv := `Txn Date,Particulars,Debit Amount,Credit Amount,Balance
01/03/2024,UPI DEBIT/Swiggy,"1,250.00",,8750.00
02/03/2024,SALARY MARCH,,"50,000.00",58750.00
03/03/2024,Opening adjustment,,,58750.00
`
	info, err := newTestTableParser().Parse([]string{csv})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Placeholder {
		t.Fatal("unexpected placeholder")
	}
	if len(info.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(info.Transactions))
	}

	tests := []struct {
		date   string
		desc   string
		amount float64
		typ    models.TxType
	}{
		{"2024-03-01", "UPI DEBIT/Swiggy", 1250, models.Debit},
		{"2024-03-02", "SALARY MARCH", 50000, models.Credit},
	}
	for i, tt := range tests {
		got := info.Transactions[i]
		if got.Date.String() != tt.date {
			t.Errorf("[%d] date: got %s, want %s", i, got.Date, tt.date)
		}
		if got.Description != tt.desc {
			t.Errorf("[%d] description: got %q, want %q", i, got.Description, tt.desc)
		}
		if got.Amount != tt.amount {
			t.Errorf("[%d] amount: got %.2f, want %.2f", i, got.Amount, tt.amount)
		}
		if got.Type != tt.typ {
			t.Errorf("[%d] type: got %q, want %q", i, got.Type, tt.typ)
		}
	}

	if info.DebugLines[0].Result != "header" {
		t.Errorf("first debug line: got %q, want header", info.DebugLines[0].Result)
	}
}

func TestTableParser_SignedAmountAndType(t *testing.T) {
	rows := [][]string{
		{"Date", "Description", "Amount", "Type", "Frequency"},
		{"2024-01-05", "Rent", "15000", "debit", "regular"},
		{"2024-01-06", "Refund", "-200", "", ""},
		{"2024-01-07", "Interest", "35.10", "", ""},
	}

	txns, _ := newTestTableParser().ParseRows(rows)
	if len(txns) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txns))
	}
	if txns[0].Type != models.Debit || txns[0].Frequency != models.Regular {
		t.Errorf("rent: got %+v", txns[0])
	}
	if txns[1].Type != models.Debit || txns[1].Amount != 200 {
		t.Errorf("negative amount should be a debit of 200, got %+v", txns[1])
	}
	if txns[2].Type != models.Credit || txns[2].Frequency != models.Irregular {
		t.Errorf("interest: got %+v", txns[2])
	}
}

func TestTableParser_PositionalRows(t *testing.T) {
	rows := [][]string{
		{"15/01/2024", "Coffee shop", "4.50", "", ""},
		{"16/01/2024", "Transfer in", "", "", "300"},
		{"17/01/2024", "Nothing"},
	}

	txns, debug := newTestTableParser().ParseRows(rows)
	if len(txns) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txns))
	}
	if txns[0].Type != models.Debit || txns[0].Amount != 4.5 {
		t.Errorf("left-half amount should be a debit, got %+v", txns[0])
	}
	if txns[1].Type != models.Credit || txns[1].Amount != 300 {
		t.Errorf("right-half amount should be a credit, got %+v", txns[1])
	}
	if debug[2].Result != "skipped" {
		t.Errorf("short row: got %q, want skipped", debug[2].Result)
	}
}

func TestTableParser_Deduplicates(t *testing.T) {
	page := "Date,Description,Amount\n2024-02-01,Electricity bill,900\n"
	info, err := newTestTableParser().Parse([]string{page, page})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(info.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(info.Transactions))
	}

	dupes := 0
	for _, dl := range info.DebugLines {
		if dl.Note == "duplicate" {
			dupes++
		}
	}
	if dupes != 1 {
		t.Errorf("got %d duplicate notes, want 1", dupes)
	}
}

func TestTableParser_Placeholder(t *testing.T) {
	info, err := newTestTableParser().Parse([]string{"just,some,words\nno,dates,here"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.Placeholder || len(info.Transactions) != 1 {
		t.Fatalf("expected placeholder, got %+v", info)
	}
	if info.Transactions[0].Description != tablePlaceholderDescription {
		t.Errorf("description: got %q", info.Transactions[0].Description)
	}
	if info.Source != models.SourceTable {
		t.Errorf("source: got %q", info.Source)
	}
}

func TestHeaderColumns(t *testing.T) {
	tests := []struct {
		name    string
		row     []string
		wantOK  bool
		wantCol columns
	}{
		{
			name:    "debit and credit",
			row:     []string{"Date", "Narration", "Withdrawal", "Deposit"},
			wantOK:  true,
			wantCol: columns{date: 0, description: 1, debit: 2, credit: 3, amount: -1, typ: -1, frequency: -1},
		},
		{
			name:   "data row is not a header",
			row:    []string{"01/01/2024", "Update payment", "10.00"},
			wantOK: false,
		},
		{
			name:   "no date column",
			row:    []string{"Description", "Amount"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := headerColumns(tt.row)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.wantCol {
				t.Errorf("got %+v, want %+v", got, tt.wantCol)
			}
		})
	}
}
