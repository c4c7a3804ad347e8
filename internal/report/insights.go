package report

import (
	"fmt"
	"math"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/stats"
)

const emptyInsight = "No transactions match the selected filters."

// Thresholds of the rule-based insights.
const (
	highSpendingRatio   = 0.8
	monthVarianceAlert  = 20.0
	categoryShareAlert  = 40.0
	emergencyFundMonths = 6
)

// Money formats an amount with two decimals and thousands separators.
func Money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, intPart[i])
	}
	return sign + "₹" + string(out) + frac
}

func transactionInsights(a stats.Analysis, rows []models.Transaction) []string {
	s := a.Summary
	if s.Count == 0 {
		return []string{emptyInsight}
	}

	var insights []string
	switch {
	case s.TotalDebit > s.TotalCredit:
		insights = append(insights, fmt.Sprintf("Spending exceeded income by %s over this period.", Money(s.TotalDebit-s.TotalCredit)))
	case s.TotalCredit > s.TotalDebit:
		insights = append(insights, fmt.Sprintf("Income exceeded spending by %s over this period.", Money(s.Balance)))
	default:
		insights = append(insights, "Income and spending were balanced over this period.")
	}

	lo, hi := rows[0].Amount, rows[0].Amount
	for _, t := range rows[1:] {
		lo = math.Min(lo, t.Amount)
		hi = math.Max(hi, t.Amount)
	}
	insights = append(insights, fmt.Sprintf("Transactions ranged from %s to %s, averaging %s.", Money(lo), Money(hi), Money(s.AverageTransaction)))

	if len(a.Categories) > 0 {
		top := a.Categories[0]
		insights = append(insights, fmt.Sprintf("%s is the top spending category at %.1f%% of expenses.", top.Name, top.Percent))
	}
	return insights
}

func budgetRecommendations(a stats.Analysis, variances []stats.MonthVariance, avgExpense float64) []string {
	s := a.Summary
	var recs []string

	if s.TotalCredit > 0 && s.TotalDebit/s.TotalCredit > highSpendingRatio {
		recs = append(recs, fmt.Sprintf("Spending is %.0f%% of income; review discretionary expenses to raise your savings rate.", s.TotalDebit*100/s.TotalCredit))
	} else if s.TotalCredit == 0 && s.TotalDebit > 0 {
		recs = append(recs, "No income was recorded in this period; confirm that all credits have been imported.")
	}

	for _, v := range variances {
		if v.Percent > monthVarianceAlert {
			recs = append(recs, fmt.Sprintf("Spending in %s was %.0f%% above your monthly average.", v.Label, v.Percent))
		}
	}

	if len(a.Categories) > 0 && a.Categories[0].Percent > categoryShareAlert {
		top := a.Categories[0]
		recs = append(recs, fmt.Sprintf("%s accounts for %.0f%% of spending; consider setting a monthly limit.", top.Name, top.Percent))
	}

	recs = append(recs, fmt.Sprintf("Keep an emergency fund of at least %d months of expenses (%s).",
		emergencyFundMonths, Money(avgExpense*emergencyFundMonths)))
	return recs
}

func analyticsInsights(a stats.Analysis) []string {
	if a.Summary.Count == 0 {
		return []string{emptyInsight}
	}

	var insights []string
	switch a.Trend {
	case stats.TrendUp:
		insights = append(insights, "Net cash flow is improving in the later months of the period.")
	case stats.TrendDown:
		insights = append(insights, "Net cash flow is declining in the later months of the period.")
	default:
		insights = append(insights, "Net cash flow is stable across the period.")
	}

	if a.Summary.AverageTransaction > 0 && a.Volatility > a.Summary.AverageTransaction {
		insights = append(insights, "Transaction sizes vary widely; a few large transactions dominate the totals.")
	}

	if len(a.Monthly) >= 2 {
		insights = append(insights, fmt.Sprintf("Income changed by %.1f%% from %s to %s.",
			a.GrowthRate, a.Monthly[0].Label, a.Monthly[len(a.Monthly)-1].Label))
	}

	insights = append(insights, fmt.Sprintf("Projected net over the next 12 months is %s.", Money(a.Projections.TwelveMonth.Net)))
	return insights
}

func overview(a stats.Analysis) string {
	s := a.Summary
	if s.Count == 0 {
		return emptyInsight
	}
	return fmt.Sprintf("Across %d transactions over %d days, income was %s against expenses of %s, leaving a balance of %s. Financial health is rated %s (%d/100).",
		s.Count, a.DaysSpanned, Money(s.TotalCredit), Money(s.TotalDebit), Money(s.Balance), a.Health.Rating, a.Health.Score)
}
