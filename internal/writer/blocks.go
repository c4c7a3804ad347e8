package writer

import (
	"strconv"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/report"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/stats"
)

// block is one labeled section of a rendered report: optional prose lines
// followed by an optional table.
type block struct {
	Heading string
	Lines   []string
	Header  []string
	Rows    [][]string
}

// summaryBlock restates the headline statistics.
func summaryBlock(r *report.Report) block {
	s := r.Stats
	return block{
		Heading: "Summary",
		Header:  []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Credit", formatAmount(s.TotalCredit)},
			{"Total Debit", formatAmount(s.TotalDebit)},
			{"Balance", formatAmount(s.Balance)},
			{"Transactions", strconv.Itoa(s.Count)},
			{"Average Transaction", formatAmount(s.AverageTransaction)},
		},
	}
}

// payloadBlocks renders the type-specific body. An unknown or missing
// payload renders nothing.
func payloadBlocks(r *report.Report) []block {
	switch p := r.Payload.(type) {
	case report.TransactionsPayload:
		return []block{
			{Heading: "Insights", Lines: p.Insights},
			categoryBlock(p.Categories),
		}
	case report.BudgetPayload:
		variance := block{
			Heading: "Variance from Average",
			Header:  []string{"Month", "Expense", "Average", "Variance", "Percent"},
		}
		for _, v := range p.Variances {
			variance.Rows = append(variance.Rows, []string{
				v.Label, formatAmount(v.Expense), formatAmount(v.Average), formatAmount(v.Variance), formatPercent(v.Percent),
			})
		}
		flows := block{
			Heading: "Regular vs Irregular",
			Header:  []string{"Month", "Regular Income", "Irregular Income", "Regular Expense", "Irregular Expense"},
		}
		for _, f := range p.Flows {
			flows.Rows = append(flows.Rows, []string{
				f.Month, formatAmount(f.RegularIncome), formatAmount(f.IrregularIncome),
				formatAmount(f.RegularExpense), formatAmount(f.IrregularExpense),
			})
		}
		return []block{
			monthlyBlock("Monthly Spending", p.Monthly),
			variance,
			flows,
			{Heading: "Recommendations", Lines: p.Recommendations},
		}
	case report.AnalyticsPayload:
		season := block{Heading: "Seasonality", Header: []string{"Month", "Income", "Expense", "Transactions"}}
		for _, b := range p.Seasonality {
			season.Rows = append(season.Rows, []string{b.Name, formatAmount(b.Income), formatAmount(b.Expense), strconv.Itoa(b.Count)})
		}
		return []block{
			{
				Heading: "Cash Flow",
				Header:  []string{"Metric", "Value"},
				Rows: [][]string{
					{"Net", formatAmount(p.CashFlow.Net)},
					{"Volatility", formatAmount(p.CashFlow.Volatility)},
					{"Trend", orNA(string(p.CashFlow.Trend))},
					{"Growth Rate", formatPercent(p.GrowthRate)},
					{"Next Month Prediction", formatAmount(p.NextMonthPrediction)},
				},
			},
			monthlyBlock("Monthly Cash Flow", p.Monthly),
			categoryBlock(p.Categories),
			season,
			projectionBlock(p.Projections),
			{Heading: "Insights", Lines: p.Insights},
		}
	case report.SummaryPayload:
		largest, mostFrequent := NotAvailable, orNA(string(p.Highlights.MostFrequentType))
		if l := p.Highlights.Largest; l != nil {
			largest = formatAmount(l.Amount) + " " + string(l.Type) + " on " + orNA(l.Date.String()) + " (" + orNA(l.Description) + ")"
		}
		return []block{
			{Heading: "Overview", Lines: []string{orNA(p.Overview)}},
			{
				Heading: "Financial Health",
				Header:  []string{"Score", "Rating", "Credit Ratio"},
				Rows:    [][]string{{strconv.Itoa(p.Health.Score), orNA(p.Health.Rating), formatPercent(p.Health.Ratio * 100)}},
			},
			{
				Heading: "Key Metrics",
				Header:  []string{"Metric", "Value"},
				Rows: [][]string{
					{"Liquidity Ratio", strconv.FormatFloat(p.Metrics.LiquidityRatio, 'f', 2, 64)},
					{"Savings Rate", formatPercent(p.Metrics.SavingsRate)},
					{"Expense Ratio", formatPercent(p.Metrics.ExpenseRatio)},
					{"Transactions per Day", strconv.FormatFloat(p.Metrics.Velocity, 'f', 2, 64)},
					{"Days Spanned", strconv.Itoa(p.DaysSpanned)},
				},
			},
			{
				Heading: "Highlights",
				Header:  []string{"Highlight", "Value"},
				Rows: [][]string{
					{"Largest Transaction", largest},
					{"Most Frequent Type", mostFrequent},
				},
			},
		}
	default:
		return nil
	}
}

func categoryBlock(cats []stats.CategoryTotal) block {
	b := block{Heading: "Category Breakdown", Header: []string{"Category", "Amount", "Transactions", "Share"}}
	for _, c := range cats {
		b.Rows = append(b.Rows, []string{c.Name, formatAmount(c.Amount), strconv.Itoa(c.Count), formatPercent(c.Percent)})
	}
	return b
}

func monthlyBlock(heading string, monthly []stats.MonthlyPoint) block {
	b := block{Heading: heading, Header: []string{"Month", "Income", "Expense", "Savings"}}
	for _, m := range monthly {
		b.Rows = append(b.Rows, []string{m.Label, formatAmount(m.Income), formatAmount(m.Expense), formatAmount(m.Savings)})
	}
	return b
}

func projectionBlock(p stats.Projections) block {
	b := block{Heading: "Projections", Header: []string{"Horizon", "Income", "Expense", "Net"}}
	for _, h := range []stats.Horizon{p.ThreeMonth, p.TwelveMonth} {
		b.Rows = append(b.Rows, []string{
			strconv.Itoa(h.Months) + " months", formatAmount(h.Income), formatAmount(h.Expense), formatAmount(h.Net),
		})
	}
	return b
}

// transactionRow is the exported column order shared by every format.
func transactionRow(t models.Transaction) []string {
	return []string{
		t.Date.String(),
		t.Description,
		formatAmount(t.Amount),
		string(t.Type),
		string(t.Frequency),
	}
}

var transactionHeader = []string{"Date", "Description", "Amount", "Type", "Frequency"}
