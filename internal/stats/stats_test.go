package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

func tx(date string, amount float64, typ models.TxType, freq models.Frequency, desc string) models.Transaction {
	return models.Transaction{
		Date:        models.MustParseDate(date),
		Description: desc,
		Amount:      amount,
		Type:        typ,
		Frequency:   freq,
	}
}

func TestSummarize_Scenario(t *testing.T) {
	s := Summarize([]models.Transaction{
		tx("2024-01-01", 1000, models.Credit, models.Regular, "Salary"),
		tx("2024-01-02", 400, models.Debit, models.Irregular, "Groceries"),
	})
	assert.Equal(t, 1000.0, s.TotalCredit)
	assert.Equal(t, 400.0, s.TotalDebit)
	assert.Equal(t, 600.0, s.Balance)
	assert.Equal(t, 700.0, s.AverageTransaction)
	assert.Equal(t, 2, s.Count)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.AverageTransaction)
	assert.Zero(t, s.Balance)
}

func TestSummarize_BalanceIdentity(t *testing.T) {
	amounts := []float64{0.1, 0.2, 0.3, 19.99, 1234.56, 0.07, 3.33, 1e6 + 0.01}
	var txns []models.Transaction
	for i, a := range amounts {
		typ := models.Debit
		if i%3 == 0 {
			typ = models.Credit
		}
		txns = append(txns, tx("2024-02-01", a, typ, models.Irregular, "x"))
	}
	s := Summarize(txns)
	assert.Equal(t, s.Balance, s.TotalCredit-s.TotalDebit)
	assert.Equal(t, 0.6, Summarize([]models.Transaction{
		tx("2024-01-01", 0.1, models.Credit, models.Irregular, ""),
		tx("2024-01-01", 0.2, models.Credit, models.Irregular, ""),
		tx("2024-01-01", 0.3, models.Credit, models.Irregular, ""),
	}).TotalCredit)
}

func TestMonthly_SortedByDate(t *testing.T) {
	m := Monthly([]models.Transaction{
		tx("2024-10-05", 100, models.Credit, models.Regular, ""),
		tx("2023-12-31", 50, models.Debit, models.Irregular, ""),
		tx("2024-02-10", 30, models.Debit, models.Regular, ""),
		tx("2024-10-20", 20, models.Debit, models.Irregular, ""),
	})
	require.Len(t, m, 3)
	assert.Equal(t, []string{"2023-12", "2024-02", "2024-10"}, []string{m[0].Month, m[1].Month, m[2].Month})
	assert.Equal(t, "Oct 2024", m[2].Label)
	assert.Equal(t, 100.0, m[2].Income)
	assert.Equal(t, 20.0, m[2].Expense)
	assert.Equal(t, 80.0, m[2].Savings)
}

func TestFlows(t *testing.T) {
	f := Flows([]models.Transaction{
		tx("2024-03-01", 100, models.Credit, models.Regular, ""),
		tx("2024-03-02", 10, models.Credit, models.Irregular, ""),
		tx("2024-03-03", 40, models.Debit, models.Regular, ""),
		tx("2024-03-04", 5, models.Debit, models.Irregular, ""),
	})
	require.Len(t, f, 1)
	assert.Equal(t, FlowSplit{Month: "2024-03", RegularIncome: 100, IrregularIncome: 10, RegularExpense: 40, IrregularExpense: 5}, f[0])
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"UPI DEBIT - Swiggy", "Food"},
		{"Uber ride", "Transport"},
		{"Google Play", "Entertainment"},
		{"Electricity BILL", "Utilities"},
		{"Amazon order", "Shopping"},
		{"Apollo Pharmacy", "Healthcare"},
		{"Udemy course", "Education"},
		{"Zomato Gold food", "Food"},
		{"Bank Transaction", "Other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.desc), tt.desc)
	}
}

func TestCategories_DebitsOnly(t *testing.T) {
	cats := Categories([]models.Transaction{
		tx("2024-03-01", 5000, models.Credit, models.Regular, "Salary food allowance"),
		tx("2024-03-02", 300, models.Debit, models.Irregular, "Swiggy"),
		tx("2024-03-03", 100, models.Debit, models.Irregular, "Uber"),
		tx("2024-03-04", 100, models.Debit, models.Irregular, "Misc"),
	})
	require.Len(t, cats, 3)
	assert.Equal(t, "Food", cats[0].Name)
	assert.Equal(t, 300.0, cats[0].Amount)
	assert.Equal(t, 60.0, cats[0].Percent)
	assert.Equal(t, "Transport", cats[1].Name)
	assert.Equal(t, "Other", cats[2].Name)
}

func TestVolatility(t *testing.T) {
	assert.Zero(t, Volatility(nil))
	v := Volatility([]models.Transaction{
		tx("2024-01-01", 2, models.Debit, models.Irregular, ""),
		tx("2024-01-01", 4, models.Debit, models.Irregular, ""),
		tx("2024-01-01", 4, models.Debit, models.Irregular, ""),
		tx("2024-01-01", 4, models.Debit, models.Irregular, ""),
		tx("2024-01-01", 5, models.Debit, models.Irregular, ""),
		tx("2024-01-01", 5, models.Debit, models.Irregular, ""),
		tx("2024-01-01", 7, models.Debit, models.Irregular, ""),
		tx("2024-01-01", 9, models.Debit, models.Irregular, ""),
	})
	assert.InDelta(t, 2.0, v, 1e-9)
}

func TestTrendOf(t *testing.T) {
	up := []MonthlyPoint{{Income: 10}, {Income: 20}, {Income: 30}, {Income: 40}}
	down := []MonthlyPoint{{Income: 40}, {Income: 30}}
	flat := []MonthlyPoint{{Income: 10, Expense: 10}, {Income: 5, Expense: 5}}

	assert.Equal(t, TrendUp, TrendOf(up))
	assert.Equal(t, TrendDown, TrendOf(down))
	assert.Equal(t, TrendStable, TrendOf(flat))
	assert.Equal(t, TrendStable, TrendOf(up[:1]))
}

func TestHealthScore(t *testing.T) {
	tests := []struct {
		credit, debit float64
		score         int
		rating        string
	}{
		{60, 40, 85, "Excellent"},
		{55, 45, 70, "Good"},
		{50, 50, 70, "Good"},
		{40, 60, 55, "Fair"},
		{10, 90, 35, "Needs Improvement"},
		{0, 0, 35, "Needs Improvement"},
	}
	for _, tt := range tests {
		h := HealthScore(Summary{TotalCredit: tt.credit, TotalDebit: tt.debit})
		assert.Equal(t, tt.score, h.Score)
		assert.Equal(t, tt.rating, h.Rating)
	}
}

func TestMetrics_ZeroDenominators(t *testing.T) {
	assert.Equal(t, KeyMetrics{}, Metrics(Summary{}, 0))

	m := Metrics(Summary{TotalCredit: 1000, TotalDebit: 400, Balance: 600}, 2)
	assert.Equal(t, 2.5, m.LiquidityRatio)
	assert.Equal(t, 60.0, m.SavingsRate)
	assert.Equal(t, 40.0, m.ExpenseRatio)
	assert.Equal(t, 2.0, m.Velocity)
}

func TestProject(t *testing.T) {
	p := Project([]models.Transaction{
		tx("2024-01-01", 1000, models.Credit, models.Regular, ""),
		tx("2024-01-15", 400, models.Debit, models.Regular, ""),
		tx("2024-02-01", 1000, models.Credit, models.Regular, ""),
		tx("2024-02-15", 200, models.Debit, models.Regular, ""),
	})
	assert.Equal(t, 1000.0, p.MonthlyIncome)
	assert.Equal(t, 300.0, p.MonthlyExpense)
	assert.Equal(t, Horizon{Months: 3, Income: 3000, Expense: 900, Net: 2100}, p.ThreeMonth)
	assert.Equal(t, Horizon{Months: 12, Income: 12000, Expense: 3600, Net: 8400}, p.TwelveMonth)

	empty := Project(nil)
	assert.Zero(t, empty.MonthlyIncome)
	assert.Equal(t, 12, empty.TwelveMonth.Months)
}

func TestProject_UsesMostRecentWindow(t *testing.T) {
	var txns []models.Transaction
	// An old outlier followed by thirty recent transactions.
	txns = append(txns, tx("2020-01-01", 1e6, models.Credit, models.Irregular, ""))
	for i := 0; i < ProjectionWindow; i++ {
		txns = append(txns, tx("2024-05-10", 10, models.Debit, models.Irregular, ""))
	}
	p := Project(txns)
	assert.Zero(t, p.MonthlyIncome)
	assert.Equal(t, 300.0, p.MonthlyExpense)
}

func TestSeasonality(t *testing.T) {
	b := Seasonality([]models.Transaction{
		tx("2023-03-01", 10, models.Debit, models.Irregular, ""),
		tx("2024-03-09", 5, models.Credit, models.Irregular, ""),
	})
	require.Len(t, b, 12)
	assert.Equal(t, "Jan", b[0].Name)
	assert.Equal(t, SeasonBucket{Month: 3, Name: "Mar", Income: 5, Expense: 10, Count: 2}, b[2])
}

func TestGrowthAndPrediction(t *testing.T) {
	m := []MonthlyPoint{
		{Income: 100, Savings: 10},
		{Income: 120, Savings: 20},
		{Income: 140, Savings: 30},
		{Income: 150, Savings: 40},
	}
	assert.Equal(t, 50.0, GrowthRate(m))
	assert.Equal(t, 30.0, PredictNextMonth(m))
	assert.Zero(t, GrowthRate(m[:1]))
	assert.Zero(t, GrowthRate([]MonthlyPoint{{Income: 0}, {Income: 10}}))
	assert.Zero(t, PredictNextMonth(nil))
}

func TestHighlights(t *testing.T) {
	txns := []models.Transaction{
		tx("2024-01-01", 50, models.Debit, models.Irregular, "a"),
		tx("2024-01-11", 900, models.Credit, models.Irregular, "b"),
		tx("2024-01-06", 900, models.Debit, models.Irregular, "c"),
	}
	l, ok := Largest(txns)
	require.True(t, ok)
	assert.Equal(t, "b", l.Description)
	assert.Equal(t, models.Debit, MostFrequentType(txns))
	assert.Equal(t, 10, DaysSpanned(txns))
	assert.InDelta(t, 0.3, Velocity(txns), 1e-9)

	_, ok = Largest(nil)
	assert.False(t, ok)
	assert.Equal(t, models.TxType(""), MostFrequentType(nil))
	assert.Equal(t, 1.0, Velocity(txns[:1]))
}

func TestAnalyze_Empty(t *testing.T) {
	a := Analyze(nil)
	assert.Zero(t, a.Summary.AverageTransaction)
	assert.Nil(t, a.Largest)
	assert.Equal(t, TrendStable, a.Trend)
	assert.Equal(t, 35, a.Health.Score)
	assert.Len(t, a.Seasonality, 12)
}

func TestVariances(t *testing.T) {
	v := Variances([]MonthlyPoint{
		{Month: "2024-01", Expense: 100},
		{Month: "2024-02", Expense: 300},
	})
	require.Len(t, v, 2)
	assert.Equal(t, 200.0, v[0].Average)
	assert.Equal(t, -100.0, v[0].Variance)
	assert.Equal(t, -50.0, v[0].Percent)
	assert.Equal(t, 100.0, v[1].Variance)

	assert.Empty(t, Variances(nil))
	zero := Variances([]MonthlyPoint{{Month: "2024-01"}})
	assert.Zero(t, zero[0].Percent)
}
