package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/stats"
)

var now = time.Date(2024, time.April, 15, 9, 0, 0, 0, time.UTC)

func tx(id, date string, amount float64, typ models.TxType, freq models.Frequency, desc string) models.Transaction {
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
		tx("1", "2024-01-01", 50000, models.Credit, models.Regular, "Salary January"),
		tx("2", "2024-01-05", 15000, models.Debit, models.Regular, "Rent"),
		tx("3", "2024-01-20", 1200, models.Debit, models.Irregular, "Swiggy dinner"),
		tx("4", "2024-02-01", 50000, models.Credit, models.Regular, "Salary February"),
		tx("5", "2024-02-05", 15000, models.Debit, models.Regular, "Rent"),
		tx("6", "2024-02-14", 30000, models.Debit, models.Irregular, "Amazon shopping"),
		tx("7", "2024-04-10", 800, models.Debit, models.Irregular, "Uber rides"),
	}
}

func fixedID() string { return "report-1" }

func TestGenerate_NilTransactions(t *testing.T) {
	_, err := Generate(models.ReportConfig{}, nil, now)
	assert.ErrorIs(t, err, ErrNilTransactions)
}

func TestGenerate_InvalidConfig(t *testing.T) {
	_, err := Generate(models.ReportConfig{Type: "weekly"}, sample(), now)
	assert.Error(t, err)
}

func TestGenerate_StatsMatchFilteredRows(t *testing.T) {
	cfg := models.ReportConfig{Type: models.ReportTransactions, TransactionType: "debit"}
	r, err := Generator{NewID: fixedID}.Generate(cfg, sample(), now)
	require.NoError(t, err)

	assert.Equal(t, "report-1", r.ID)
	assert.Len(t, r.Transactions, 5)
	assert.Equal(t, stats.Summarize(r.Transactions), r.Stats)
	assert.Zero(t, r.Stats.TotalCredit)
	assert.Equal(t, 62000.0, r.Stats.TotalDebit)
}

func TestGenerate_Transactions(t *testing.T) {
	r, err := Generator{NewID: fixedID}.Generate(models.ReportConfig{}, sample(), now)
	require.NoError(t, err)

	assert.Equal(t, models.ReportTransactions, r.Type)
	assert.Equal(t, "Transaction Report", r.Title)
	assert.Equal(t, "All time, 7 transactions", r.Subtitle)
	assert.Equal(t, []string{SectionSummary, SectionInsights, SectionCategories, SectionTransactions}, r.Sections)

	p, ok := r.Payload.(TransactionsPayload)
	require.True(t, ok)
	assert.Equal(t, models.ReportTransactions, p.Kind())
	require.Len(t, p.Insights, 3)
	assert.Equal(t, "Income exceeded spending by ₹38,000.00 over this period.", p.Insights[0])
	assert.Equal(t, "Transactions ranged from ₹800.00 to ₹50,000.00, averaging ₹23,142.86.", p.Insights[1])
	assert.Contains(t, p.Insights[2], "Shopping is the top spending category at 48.4%")
}

func TestGenerate_Budget(t *testing.T) {
	cfg := models.ReportConfig{Type: models.ReportBudget, DateRange: models.RangeCustom, StartDate: "2024-01-01", EndDate: "2024-02-29"}
	r, err := Generate(cfg, sample(), now)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01 to 2024-02-29", r.Period)
	p, ok := r.Payload.(BudgetPayload)
	require.True(t, ok)
	require.Len(t, p.Monthly, 2)
	assert.Equal(t, 16200.0, p.Monthly[0].Expense)
	assert.Equal(t, 45000.0, p.Monthly[1].Expense)
	assert.Equal(t, 30600.0, p.AverageMonthlyExpense)
	require.Len(t, p.Variances, 2)
	assert.Equal(t, -14400.0, p.Variances[0].Variance)

	assert.Contains(t, p.Recommendations, "Spending in Feb 2024 was 47% above your monthly average.")
	last := p.Recommendations[len(p.Recommendations)-1]
	assert.Equal(t, "Keep an emergency fund of at least 6 months of expenses (₹183,600.00).", last)
}

func TestGenerate_BudgetAlwaysRecommendsEmergencyFund(t *testing.T) {
	r, err := Generate(models.ReportConfig{Type: models.ReportBudget}, []models.Transaction{}, now)
	require.NoError(t, err)

	p := r.Payload.(BudgetPayload)
	assert.Equal(t, []string{"Keep an emergency fund of at least 6 months of expenses (₹0.00)."}, p.Recommendations)
	assert.Empty(t, r.Transactions)
}

func TestGenerate_Analytics(t *testing.T) {
	r, err := Generate(models.ReportConfig{Type: models.ReportAnalytics}, sample(), now)
	require.NoError(t, err)

	p, ok := r.Payload.(AnalyticsPayload)
	require.True(t, ok)
	assert.Equal(t, r.Stats.Balance, p.CashFlow.Net)
	assert.Len(t, p.Seasonality, 12)
	assert.Equal(t, stats.TrendDown, p.CashFlow.Trend)
	assert.Equal(t, -100.0, p.GrowthRate)
	assert.NotEmpty(t, p.Insights)
}

func TestGenerate_SummarySingleTransaction(t *testing.T) {
	r, err := Generate(models.ReportConfig{Type: models.ReportSummary}, sample()[:1], now)
	require.NoError(t, err)

	p, ok := r.Payload.(SummaryPayload)
	require.True(t, ok)
	bands := map[int]string{85: "Excellent", 70: "Good", 55: "Fair", 35: "Needs Improvement"}
	rating, known := bands[p.Health.Score]
	require.True(t, known, "score %d outside the band set", p.Health.Score)
	assert.Equal(t, rating, p.Health.Rating)
	assert.Equal(t, 85, p.Health.Score)
	require.NotNil(t, p.Highlights.Largest)
	assert.Equal(t, "1", p.Highlights.Largest.ID)
	assert.Contains(t, p.Overview, "Across 1 transactions")
}

func TestGenerate_RelativeWindow(t *testing.T) {
	r, err := Generate(models.ReportConfig{DateRange: models.RangeWeek}, sample(), now)
	require.NoError(t, err)
	require.Len(t, r.Transactions, 1)
	assert.Equal(t, "7", r.Transactions[0].ID)
	assert.Equal(t, "Last 7 days", r.Period)
}

func TestReport_JSON(t *testing.T) {
	r, err := Generator{NewID: fixedID}.Generate(models.ReportConfig{Type: models.ReportSummary}, sample(), now)
	require.NoError(t, err)

	b, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "summary", decoded["reportType"])
	payload, ok := decoded["payload"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, payload, "health")
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "₹0.00", Money(0))
	assert.Equal(t, "₹999.50", Money(999.5))
	assert.Equal(t, "₹1,234,567.89", Money(1234567.89))
	assert.Equal(t, "-₹1,000.00", Money(-1000))
}
