// Package stats derives the statistical views of a transaction collection.
//
// All functions are deterministic over their input slice and never read the
// clock. Money is accumulated with decimal arithmetic and converted to
// float64 once per reported figure; ratios over empty input are 0.
package stats

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

// Summary holds the headline totals.
type Summary struct {
	TotalCredit        float64 `json:"totalCredit"`
	TotalDebit         float64 `json:"totalDebit"`
	Balance            float64 `json:"balance"`
	Count              int     `json:"count"`
	AverageTransaction float64 `json:"averageTransaction"`
}

// Summarize computes totals, balance and the average transaction size.
// Balance is derived from the two reported totals, so
// TotalCredit-TotalDebit == Balance holds exactly.
func Summarize(txns []models.Transaction) Summary {
	credit, debit := decimal.Zero, decimal.Zero
	for _, t := range txns {
		amt := decimal.NewFromFloat(t.Amount)
		if t.IsCredit() {
			credit = credit.Add(amt)
		} else {
			debit = debit.Add(amt)
		}
	}

	s := Summary{
		TotalCredit: credit.InexactFloat64(),
		TotalDebit:  debit.InexactFloat64(),
		Count:       len(txns),
	}
	s.Balance = s.TotalCredit - s.TotalDebit
	if s.Count > 0 {
		s.AverageTransaction = credit.Add(debit).Div(decimal.NewFromInt(int64(s.Count))).InexactFloat64()
	}
	return s
}

// MonthlyPoint is one month of income and expense.
type MonthlyPoint struct {
	Month   string  `json:"month"` // YYYY-MM
	Label   string  `json:"label"` // Jan 2024
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Savings float64 `json:"savings"`
}

// FlowSplit separates a month's flows by frequency.
type FlowSplit struct {
	Month            string  `json:"month"`
	RegularIncome    float64 `json:"regularIncome"`
	IrregularIncome  float64 `json:"irregularIncome"`
	RegularExpense   float64 `json:"regularExpense"`
	IrregularExpense float64 `json:"irregularExpense"`
}

type monthAcc struct {
	first                        models.Date
	regIn, irrIn, regOut, irrOut decimal.Decimal
}

func (a *monthAcc) income() decimal.Decimal  { return a.regIn.Add(a.irrIn) }
func (a *monthAcc) expense() decimal.Decimal { return a.regOut.Add(a.irrOut) }

// groupByMonth returns per-month accumulators ordered chronologically.
func groupByMonth(txns []models.Transaction) ([]string, map[string]*monthAcc) {
	accs := make(map[string]*monthAcc)
	var keys []string
	for _, t := range txns {
		key := t.Date.MonthKey()
		acc, ok := accs[key]
		if !ok {
			acc = &monthAcc{
				first: models.NewDate(t.Date.Year, t.Date.Month, 1),
				regIn: decimal.Zero, irrIn: decimal.Zero, regOut: decimal.Zero, irrOut: decimal.Zero,
			}
			accs[key] = acc
			keys = append(keys, key)
		}
		amt := decimal.NewFromFloat(t.Amount)
		regular := t.Frequency == models.Regular
		switch {
		case t.IsCredit() && regular:
			acc.regIn = acc.regIn.Add(amt)
		case t.IsCredit():
			acc.irrIn = acc.irrIn.Add(amt)
		case regular:
			acc.regOut = acc.regOut.Add(amt)
		default:
			acc.irrOut = acc.irrOut.Add(amt)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return accs[keys[i]].first.Before(accs[keys[j]].first) })
	return keys, accs
}

// Monthly groups transactions by calendar month, oldest first.
func Monthly(txns []models.Transaction) []MonthlyPoint {
	keys, accs := groupByMonth(txns)
	out := make([]MonthlyPoint, 0, len(keys))
	for _, k := range keys {
		acc := accs[k]
		in, exp := acc.income().InexactFloat64(), acc.expense().InexactFloat64()
		out = append(out, MonthlyPoint{
			Month:   k,
			Label:   acc.first.Time().Format("Jan 2006"),
			Income:  in,
			Expense: exp,
			Savings: in - exp,
		})
	}
	return out
}

// Flows splits each month's income and expense into regular and irregular.
func Flows(txns []models.Transaction) []FlowSplit {
	keys, accs := groupByMonth(txns)
	out := make([]FlowSplit, 0, len(keys))
	for _, k := range keys {
		acc := accs[k]
		out = append(out, FlowSplit{
			Month:            k,
			RegularIncome:    acc.regIn.InexactFloat64(),
			IrregularIncome:  acc.irrIn.InexactFloat64(),
			RegularExpense:   acc.regOut.InexactFloat64(),
			IrregularExpense: acc.irrOut.InexactFloat64(),
		})
	}
	return out
}

// MonthVariance compares one month's spending against the monthly average.
type MonthVariance struct {
	Month    string  `json:"month"`
	Label    string  `json:"label"`
	Expense  float64 `json:"expense"`
	Average  float64 `json:"average"`
	Variance float64 `json:"variance"`
	Percent  float64 `json:"percent"`
}

// Variances returns expense minus the average monthly expense per month.
func Variances(monthly []MonthlyPoint) []MonthVariance {
	if len(monthly) == 0 {
		return []MonthVariance{}
	}
	total := decimal.Zero
	for _, m := range monthly {
		total = total.Add(decimal.NewFromFloat(m.Expense))
	}
	avg := total.Div(decimal.NewFromInt(int64(len(monthly)))).InexactFloat64()

	out := make([]MonthVariance, len(monthly))
	for i, m := range monthly {
		v := MonthVariance{Month: m.Month, Label: m.Label, Expense: m.Expense, Average: avg, Variance: m.Expense - avg}
		if avg != 0 {
			v.Percent = v.Variance * 100 / avg
		}
		out[i] = v
	}
	return out
}

// Volatility is the population standard deviation of transaction amounts.
func Volatility(txns []models.Transaction) float64 {
	if len(txns) == 0 {
		return 0
	}
	var mean float64
	for _, t := range txns {
		mean += t.Amount
	}
	mean /= float64(len(txns))

	var sq float64
	for _, t := range txns {
		d := t.Amount - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(txns)))
}

// Trend is the coarse direction of monthly net totals.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// TrendOf compares the summed net of the first half of the months with the
// second half. With fewer than two months the trend is stable.
func TrendOf(monthly []MonthlyPoint) Trend {
	if len(monthly) < 2 {
		return TrendStable
	}
	half := len(monthly) / 2
	first, second := decimal.Zero, decimal.Zero
	for i, m := range monthly {
		net := decimal.NewFromFloat(m.Income).Sub(decimal.NewFromFloat(m.Expense))
		if i < half {
			first = first.Add(net)
		} else {
			second = second.Add(net)
		}
	}
	switch second.Cmp(first) {
	case 1:
		return TrendUp
	case -1:
		return TrendDown
	default:
		return TrendStable
	}
}

// Health is the banded financial health score.
type Health struct {
	Ratio  float64 `json:"ratio"`
	Score  int     `json:"score"`
	Rating string  `json:"rating"`
}

// HealthBands are the score bands, highest threshold first.
var HealthBands = []struct {
	MinRatio float64
	Score    int
	Rating   string
}{
	{0.6, 85, "Excellent"},
	{0.5, 70, "Good"},
	{0.4, 55, "Fair"},
	{0, 35, "Needs Improvement"},
}

// HealthScore bands the ratio of credit to total flow.
func HealthScore(s Summary) Health {
	var ratio float64
	if total := s.TotalCredit + s.TotalDebit; total > 0 {
		ratio = s.TotalCredit / total
	}
	for _, b := range HealthBands {
		if ratio >= b.MinRatio {
			return Health{Ratio: ratio, Score: b.Score, Rating: b.Rating}
		}
	}
	last := HealthBands[len(HealthBands)-1]
	return Health{Ratio: ratio, Score: last.Score, Rating: last.Rating}
}

// KeyMetrics are the executive ratios of a summary report.
type KeyMetrics struct {
	LiquidityRatio float64 `json:"liquidityRatio"`
	SavingsRate    float64 `json:"savingsRate"`
	ExpenseRatio   float64 `json:"expenseRatio"`
	Velocity       float64 `json:"velocity"`
}

// Metrics computes the key ratios. Each is 0 when its denominator is 0.
func Metrics(s Summary, velocity float64) KeyMetrics {
	m := KeyMetrics{Velocity: velocity}
	if s.TotalDebit > 0 {
		m.LiquidityRatio = s.TotalCredit / s.TotalDebit
	}
	if s.TotalCredit > 0 {
		m.SavingsRate = s.Balance * 100 / s.TotalCredit
		m.ExpenseRatio = s.TotalDebit * 100 / s.TotalCredit
	}
	return m
}

// Largest returns the transaction with the greatest amount; the first one
// wins ties. ok is false for an empty slice.
func Largest(txns []models.Transaction) (largest models.Transaction, ok bool) {
	for i, t := range txns {
		if i == 0 || t.Amount > largest.Amount {
			largest = t
		}
	}
	return largest, len(txns) > 0
}

// MostFrequentType returns the direction with more transactions. Debit wins
// a tie; empty input gives "".
func MostFrequentType(txns []models.Transaction) models.TxType {
	if len(txns) == 0 {
		return ""
	}
	credits := 0
	for _, t := range txns {
		if t.IsCredit() {
			credits++
		}
	}
	if credits > len(txns)-credits {
		return models.Credit
	}
	return models.Debit
}

// DaysSpanned is the number of days between the earliest and latest date.
func DaysSpanned(txns []models.Transaction) int {
	if len(txns) == 0 {
		return 0
	}
	lo, hi := txns[0].Date, txns[0].Date
	for _, t := range txns[1:] {
		if t.Date.Before(lo) {
			lo = t.Date
		}
		if t.Date.After(hi) {
			hi = t.Date
		}
	}
	return lo.DaysUntil(hi)
}

// Velocity is transactions per day over the spanned period. A span shorter
// than one day counts as one day.
func Velocity(txns []models.Transaction) float64 {
	if len(txns) == 0 {
		return 0
	}
	days := DaysSpanned(txns)
	if days < 1 {
		days = 1
	}
	return float64(len(txns)) / float64(days)
}
