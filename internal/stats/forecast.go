package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

// ProjectionWindow is how many of the most recent transactions feed the
// projections.
const ProjectionWindow = 30

// Horizon is a projected total over a number of months.
type Horizon struct {
	Months  int     `json:"months"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// Projections extrapolate recent monthly rates linearly.
type Projections struct {
	MonthlyIncome  float64 `json:"monthlyIncome"`
	MonthlyExpense float64 `json:"monthlyExpense"`
	ThreeMonth     Horizon `json:"threeMonth"`
	TwelveMonth    Horizon `json:"twelveMonth"`
}

// Project takes the most recent ProjectionWindow transactions by date,
// averages their income and expense per observed month and scales those
// rates to 3 and 12 months.
func Project(txns []models.Transaction) Projections {
	recent := make([]models.Transaction, len(txns))
	copy(recent, txns)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date.Before(recent[j].Date) })
	if len(recent) > ProjectionWindow {
		recent = recent[len(recent)-ProjectionWindow:]
	}

	p := Projections{ThreeMonth: Horizon{Months: 3}, TwelveMonth: Horizon{Months: 12}}
	months := len(Monthly(recent))
	if months == 0 {
		return p
	}

	s := Summarize(recent)
	n := decimal.NewFromInt(int64(months))
	income := decimal.NewFromFloat(s.TotalCredit).Div(n)
	expense := decimal.NewFromFloat(s.TotalDebit).Div(n)
	p.MonthlyIncome = income.InexactFloat64()
	p.MonthlyExpense = expense.InexactFloat64()
	p.ThreeMonth = horizon(3, income, expense)
	p.TwelveMonth = horizon(12, income, expense)
	return p
}

func horizon(months int64, income, expense decimal.Decimal) Horizon {
	m := decimal.NewFromInt(months)
	in := income.Mul(m)
	out := expense.Mul(m)
	return Horizon{
		Months:  int(months),
		Income:  in.InexactFloat64(),
		Expense: out.InexactFloat64(),
		Net:     in.Sub(out).InexactFloat64(),
	}
}

// SeasonBucket aggregates one calendar month across all years.
type SeasonBucket struct {
	Month   time.Month `json:"month"`
	Name    string     `json:"name"`
	Income  float64    `json:"income"`
	Expense float64    `json:"expense"`
	Count   int        `json:"count"`
}

// Seasonality returns twelve buckets, January first.
func Seasonality(txns []models.Transaction) []SeasonBucket {
	var in, out [12]decimal.Decimal
	var counts [12]int
	for _, t := range txns {
		i := int(t.Date.Month) - 1
		amt := decimal.NewFromFloat(t.Amount)
		if t.IsCredit() {
			in[i] = in[i].Add(amt)
		} else {
			out[i] = out[i].Add(amt)
		}
		counts[i]++
	}

	buckets := make([]SeasonBucket, 12)
	for i := range buckets {
		m := time.Month(i + 1)
		buckets[i] = SeasonBucket{
			Month:   m,
			Name:    m.String()[:3],
			Income:  in[i].InexactFloat64(),
			Expense: out[i].InexactFloat64(),
			Count:   counts[i],
		}
	}
	return buckets
}

// GrowthRate is the percentage change of income from the first to the last
// observed month. It is 0 with fewer than two months or no first-month
// income.
func GrowthRate(monthly []MonthlyPoint) float64 {
	if len(monthly) < 2 {
		return 0
	}
	first := monthly[0].Income
	last := monthly[len(monthly)-1].Income
	if first == 0 {
		return 0
	}
	return (last - first) * 100 / first
}

// PredictNextMonth averages the net of the last three months.
func PredictNextMonth(monthly []MonthlyPoint) float64 {
	if len(monthly) == 0 {
		return 0
	}
	start := len(monthly) - 3
	if start < 0 {
		start = 0
	}
	sum := decimal.Zero
	for _, m := range monthly[start:] {
		sum = sum.Add(decimal.NewFromFloat(m.Savings))
	}
	return sum.Div(decimal.NewFromInt(int64(len(monthly) - start))).InexactFloat64()
}
