package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

var now = time.Date(2024, time.June, 30, 18, 45, 0, 0, time.UTC)

func txn(id, date string, amount float64, typ models.TxType, freq models.Frequency, desc string) models.Transaction {
	return models.Transaction{
		ID:          id,
		Date:        models.MustParseDate(date),
		Description: desc,
		Amount:      amount,
		Type:        typ,
		Frequency:   freq,
	}
}

func sample() []models.Transaction {
	return []models.Transaction{
		txn("1", "2024-06-29", 1000, models.Credit, models.Regular, "Salary June"),
		txn("2", "2024-06-20", 400, models.Debit, models.Irregular, "Swiggy order"),
		txn("3", "2024-05-01", 1200, models.Debit, models.Regular, "Rent May"),
		txn("4", "2023-12-25", 80, models.Debit, models.Irregular, "NETFLIX subscription"),
		txn("5", "2024-06-20", 50, models.Credit, models.Irregular, "Cashback"),
	}
}

func ids(txns []models.Transaction) []string {
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.ID
	}
	return out
}

func TestApply_NoCriteriaIsIdentity(t *testing.T) {
	in := sample()
	got := Apply(in, FromConfig(models.ReportConfig{}, now))
	assert.Equal(t, in, got)
}

func TestApply_AmountMin(t *testing.T) {
	in := []models.Transaction{
		txn("a", "2024-01-01", 1000, models.Credit, models.Irregular, "x"),
		txn("b", "2024-01-02", 400, models.Debit, models.Irregular, "y"),
	}
	got := Apply(in, FromConfig(models.ReportConfig{AmountMin: "500"}, now))
	assert.Equal(t, []string{"a"}, ids(got))
}

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.ReportConfig
		want []string
	}{
		{"credit only", models.ReportConfig{TransactionType: "credit"}, []string{"1", "5"}},
		{"regular only", models.ReportConfig{Frequency: "regular"}, []string{"1", "3"}},
		{"search is case-insensitive", models.ReportConfig{SearchTerm: "netflix"}, []string{"4"}},
		{"last week", models.ReportConfig{DateRange: models.RangeWeek}, []string{"1"}},
		{"last month", models.ReportConfig{DateRange: models.RangeMonth}, []string{"1", "2", "5"}},
		{"last quarter", models.ReportConfig{DateRange: models.RangeQuarter}, []string{"1", "2", "3", "5"}},
		{"custom inclusive", models.ReportConfig{DateRange: models.RangeCustom, StartDate: "2024-05-01", EndDate: "2024-06-20"}, []string{"2", "3", "5"}},
		{"custom open end", models.ReportConfig{DateRange: models.RangeCustom, StartDate: "2024-06-21"}, []string{"1"}},
		{"amount range", models.ReportConfig{AmountMin: "80", AmountMax: "1,000"}, []string{"1", "2", "4"}},
		{"unparsable bound is unset", models.ReportConfig{AmountMin: "lots"}, []string{"1", "2", "3", "4", "5"}},
		{"combined", models.ReportConfig{TransactionType: "debit", Frequency: "irregular", AmountMax: "100"}, []string{"4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sample(), FromConfig(tt.cfg, now))
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := sample()
	before := append([]models.Transaction(nil), in...)
	_ = Apply(in, FromConfig(models.ReportConfig{Sort: models.SortOldest, TransactionType: "debit"}, now))
	assert.Equal(t, before, in)
}

func TestSortByDate_Stable(t *testing.T) {
	newest := SortByDate(sample(), models.SortNewest)
	assert.Equal(t, []string{"1", "2", "5", "3", "4"}, ids(newest))

	oldest := SortByDate(sample(), models.SortOldest)
	assert.Equal(t, []string{"4", "3", "2", "5", "1"}, ids(oldest))

	none := SortByDate(sample(), models.SortNone)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(none))
}

func TestAnd_Commutes(t *testing.T) {
	f1 := ByType(models.Debit)
	f2 := ByDateRange(models.MustParseDate("2024-01-01"), models.Date{})

	sequential := Select(Select(sample(), f1), f2)
	reversed := Select(Select(sample(), f2), f1)
	combined := Select(sample(), And(f1, f2))

	require.Equal(t, []string{"2", "3"}, ids(combined))
	assert.Equal(t, combined, sequential)
	assert.Equal(t, combined, reversed)
}

func TestSelect_Empty(t *testing.T) {
	got := Apply(nil, Criteria{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
