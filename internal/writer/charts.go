package writer

import (
	"fmt"
	"math"
	"strings"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/report"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/stats"
)

// pieRadius gives the circle a circumference of 100, so dash lengths are
// percentages.
const pieRadius = 15.9155

var palette = []string{"#4f46e5", "#16a34a", "#f59e0b", "#dc2626", "#0891b2", "#9333ea", "#db2777", "#64748b"}

const (
	incomeColor  = "#16a34a"
	expenseColor = "#dc2626"
)

type pieSlice struct {
	Label   string
	Color   string
	Dash    string
	Offset  string
	Percent string
}

type rect struct {
	X, Y, W, H float64
	Color      string
	Title      string
}

type axisLabel struct {
	X    float64
	Text string
}

type barChart struct {
	Width, Height float64
	Bars          []rect
	Labels        []axisLabel
}

type point struct {
	X, Y  float64
	Title string
}

type lineChart struct {
	Width, Height float64
	Points        string
	Dots          []point
	Labels        []axisLabel
}

type chartSet struct {
	Pie  []pieSlice
	Bars *barChart
	Line *lineChart
}

func (c *chartSet) empty() bool {
	return c == nil || (len(c.Pie) == 0 && c.Bars == nil && c.Line == nil)
}

// chartData picks the aggregates the charts draw from the payload, falling
// back to aggregating the report rows.
func chartData(r *report.Report) ([]stats.CategoryTotal, []stats.MonthlyPoint) {
	switch p := r.Payload.(type) {
	case report.TransactionsPayload:
		return p.Categories, stats.Monthly(r.Transactions)
	case report.BudgetPayload:
		return stats.Categories(r.Transactions), p.Monthly
	case report.AnalyticsPayload:
		return p.Categories, p.Monthly
	default:
		return stats.Categories(r.Transactions), stats.Monthly(r.Transactions)
	}
}

func buildCharts(r *report.Report) *chartSet {
	cats, monthly := chartData(r)
	return &chartSet{
		Pie:  pieSlices(cats),
		Bars: monthlyBars(monthly),
		Line: balanceLine(monthly),
	}
}

// pieSlices lays out stroke-dasharray arcs starting at twelve o'clock.
func pieSlices(cats []stats.CategoryTotal) []pieSlice {
	var slices []pieSlice
	offset := 25.0
	for i, c := range cats {
		if c.Percent <= 0 {
			continue
		}
		slices = append(slices, pieSlice{
			Label:   c.Name,
			Color:   palette[i%len(palette)],
			Dash:    fmt.Sprintf("%.2f %.2f", c.Percent, 100-c.Percent),
			Offset:  fmt.Sprintf("%.2f", offset),
			Percent: formatPercent(c.Percent),
		})
		offset -= c.Percent
	}
	return slices
}

const (
	chartHeight = 200.0
	plotTop     = 10.0
	plotBottom  = 170.0
	groupWidth  = 60.0
)

// monthlyBars draws an income and an expense bar per month, scaled to the
// largest value.
func monthlyBars(monthly []stats.MonthlyPoint) *barChart {
	if len(monthly) == 0 {
		return nil
	}
	peak := 0.0
	for _, m := range monthly {
		peak = math.Max(peak, math.Max(m.Income, m.Expense))
	}
	if peak == 0 {
		return nil
	}

	c := &barChart{Width: math.Max(300, float64(len(monthly))*groupWidth), Height: chartHeight}
	step := c.Width / float64(len(monthly))
	barW := step * 0.35
	scale := (plotBottom - plotTop) / peak

	for i, m := range monthly {
		x := float64(i) * step
		inH, outH := m.Income*scale, m.Expense*scale
		c.Bars = append(c.Bars,
			rect{X: x + step*0.1, Y: plotBottom - inH, W: barW, H: inH, Color: incomeColor, Title: m.Label + " income " + formatAmount(m.Income)},
			rect{X: x + step*0.1 + barW, Y: plotBottom - outH, W: barW, H: outH, Color: expenseColor, Title: m.Label + " expense " + formatAmount(m.Expense)},
		)
		c.Labels = append(c.Labels, axisLabel{X: x + step/2, Text: m.Label})
	}
	return c
}

// balanceLine plots the running balance at the end of each month.
func balanceLine(monthly []stats.MonthlyPoint) *lineChart {
	if len(monthly) == 0 {
		return nil
	}
	running := make([]float64, len(monthly))
	total := 0.0
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, m := range monthly {
		total += m.Savings
		running[i] = total
		lo, hi = math.Min(lo, total), math.Max(hi, total)
	}

	c := &lineChart{Width: math.Max(300, float64(len(monthly))*groupWidth), Height: chartHeight}
	step := c.Width / float64(len(monthly))
	span := hi - lo

	pts := make([]string, len(running))
	for i, v := range running {
		x := float64(i)*step + step/2
		y := (plotTop + plotBottom) / 2
		if span > 0 {
			y = plotBottom - (v-lo)/span*(plotBottom-plotTop)
		}
		pts[i] = fmt.Sprintf("%.2f,%.2f", x, y)
		c.Dots = append(c.Dots, point{X: x, Y: y, Title: monthly[i].Label + " " + formatAmount(v)})
		c.Labels = append(c.Labels, axisLabel{X: x, Text: monthly[i].Label})
	}
	c.Points = strings.Join(pts, " ")
	return c
}
