// Package report synthesizes one of four report shapes from a filtered
// transaction collection.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/filter"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/stats"
)

// ErrNilTransactions is returned when Generate is called without a
// transaction collection. An empty, non-nil slice is valid.
var ErrNilTransactions = errors.New("report: transaction collection is nil")

// Section names, in render order per report type.
const (
	SectionSummary         = "summary"
	SectionInsights        = "insights"
	SectionCategories      = "categories"
	SectionTransactions    = "transactions"
	SectionMonthlySpending = "monthly-spending"
	SectionVariance        = "variance"
	SectionRecommendations = "recommendations"
	SectionCashFlow        = "cash-flow"
	SectionSeasonality     = "seasonality"
	SectionGrowth          = "growth"
	SectionProjections     = "projections"
	SectionOverview        = "overview"
	SectionHealth          = "health"
	SectionKeyMetrics      = "key-metrics"
	SectionHighlights      = "highlights"
)

// Report is a synthesized report. Stats always describe exactly the
// Transactions slice, which holds the rows that passed the filters.
type Report struct {
	ID           string               `json:"id"`
	Type         models.ReportType    `json:"reportType"`
	Title        string               `json:"title"`
	Subtitle     string               `json:"subtitle"`
	Sections     []string             `json:"sections"`
	GeneratedAt  time.Time            `json:"generatedAt"`
	Config       models.ReportConfig  `json:"filters"`
	Period       string               `json:"period"`
	Stats        stats.Summary        `json:"stats"`
	Transactions []models.Transaction `json:"transactions"`
	Payload      Payload              `json:"payload"`
}

// Payload is the type-specific body of a report. The concrete types are
// TransactionsPayload, BudgetPayload, AnalyticsPayload and SummaryPayload.
type Payload interface {
	Kind() models.ReportType
	isPayload()
}

// TransactionsPayload is the body of a transactions report.
type TransactionsPayload struct {
	Summary    stats.Summary         `json:"summary"`
	Insights   []string              `json:"insights"`
	Categories []stats.CategoryTotal `json:"categories"`
}

// BudgetPayload is the body of a budget report.
type BudgetPayload struct {
	Monthly               []stats.MonthlyPoint  `json:"monthly"`
	Variances             []stats.MonthVariance `json:"variances"`
	Flows                 []stats.FlowSplit     `json:"flows"`
	AverageMonthlyExpense float64               `json:"averageMonthlyExpense"`
	Recommendations       []string              `json:"recommendations"`
}

// CashFlow is the analytics headline.
type CashFlow struct {
	Net        float64     `json:"net"`
	Volatility float64     `json:"volatility"`
	Trend      stats.Trend `json:"trend"`
}

// AnalyticsPayload is the body of an analytics report.
type AnalyticsPayload struct {
	CashFlow            CashFlow              `json:"cashFlow"`
	Monthly             []stats.MonthlyPoint  `json:"monthly"`
	Categories          []stats.CategoryTotal `json:"categories"`
	Seasonality         []stats.SeasonBucket  `json:"seasonality"`
	GrowthRate          float64               `json:"growthRate"`
	NextMonthPrediction float64               `json:"nextMonthPrediction"`
	Projections         stats.Projections     `json:"projections"`
	Insights            []string              `json:"insights"`
}

// Highlights are the standout facts of a summary report.
type Highlights struct {
	Largest          *models.Transaction `json:"largest,omitempty"`
	MostFrequentType models.TxType       `json:"mostFrequentType,omitempty"`
}

// SummaryPayload is the body of an executive summary report.
type SummaryPayload struct {
	Overview    string           `json:"overview"`
	Health      stats.Health     `json:"health"`
	Metrics     stats.KeyMetrics `json:"metrics"`
	Highlights  Highlights       `json:"highlights"`
	DaysSpanned int              `json:"daysSpanned"`
}

func (TransactionsPayload) Kind() models.ReportType { return models.ReportTransactions }
func (BudgetPayload) Kind() models.ReportType       { return models.ReportBudget }
func (AnalyticsPayload) Kind() models.ReportType    { return models.ReportAnalytics }
func (SummaryPayload) Kind() models.ReportType      { return models.ReportSummary }

func (TransactionsPayload) isPayload() {}
func (BudgetPayload) isPayload()       {}
func (AnalyticsPayload) isPayload()    {}
func (SummaryPayload) isPayload()      {}

// Generator builds reports. The zero value is ready to use.
type Generator struct {
	// NewID assigns report ids; uuid.NewString when nil.
	NewID func() string
}

// Generate builds a report with the default Generator.
func Generate(cfg models.ReportConfig, txns []models.Transaction, now time.Time) (*Report, error) {
	return Generator{}.Generate(cfg, txns, now)
}

// Generate filters txns by cfg as of now, aggregates the rows that pass and
// assembles the report variant cfg.Type names.
func (g Generator) Generate(cfg models.ReportConfig, txns []models.Transaction, now time.Time) (*Report, error) {
	if txns == nil {
		return nil, ErrNilTransactions
	}
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report config: %w", err)
	}

	rows := filter.Apply(txns, filter.FromConfig(cfg, now))
	a := stats.Analyze(rows)

	r := &Report{
		ID:           g.newID(),
		Type:         cfg.Type,
		GeneratedAt:  now.UTC(),
		Config:       cfg,
		Period:       periodLabel(cfg),
		Stats:        a.Summary,
		Transactions: rows,
	}
	r.Title = titles[cfg.Type]
	r.Subtitle = fmt.Sprintf("%s, %d transactions", r.Period, len(rows))

	switch cfg.Type {
	case models.ReportTransactions:
		r.Sections = []string{SectionSummary, SectionInsights, SectionCategories, SectionTransactions}
		r.Payload = TransactionsPayload{
			Summary:    a.Summary,
			Insights:   transactionInsights(a, rows),
			Categories: a.Categories,
		}
	case models.ReportBudget:
		variances := stats.Variances(a.Monthly)
		avg := 0.0
		if len(variances) > 0 {
			avg = variances[0].Average
		}
		r.Sections = []string{SectionMonthlySpending, SectionVariance, SectionRecommendations, SectionTransactions}
		r.Payload = BudgetPayload{
			Monthly:               a.Monthly,
			Variances:             variances,
			Flows:                 a.Flows,
			AverageMonthlyExpense: avg,
			Recommendations:       budgetRecommendations(a, variances, avg),
		}
	case models.ReportAnalytics:
		r.Sections = []string{SectionCashFlow, SectionCategories, SectionSeasonality, SectionGrowth, SectionProjections}
		r.Payload = AnalyticsPayload{
			CashFlow: CashFlow{
				Net:        a.Summary.Balance,
				Volatility: a.Volatility,
				Trend:      a.Trend,
			},
			Monthly:             a.Monthly,
			Categories:          a.Categories,
			Seasonality:         a.Seasonality,
			GrowthRate:          a.GrowthRate,
			NextMonthPrediction: a.NextMonthPrediction,
			Projections:         a.Projections,
			Insights:            analyticsInsights(a),
		}
	case models.ReportSummary:
		r.Sections = []string{SectionOverview, SectionHealth, SectionKeyMetrics, SectionHighlights}
		r.Payload = SummaryPayload{
			Overview: overview(a),
			Health:   a.Health,
			Metrics:  a.Metrics,
			Highlights: Highlights{
				Largest:          a.Largest,
				MostFrequentType: a.MostFrequentType,
			},
			DaysSpanned: a.DaysSpanned,
		}
	}
	return r, nil
}

func (g Generator) newID() string {
	if g.NewID != nil {
		return g.NewID()
	}
	return uuid.NewString()
}

var titles = map[models.ReportType]string{
	models.ReportTransactions: "Transaction Report",
	models.ReportBudget:       "Budget Report",
	models.ReportAnalytics:    "Financial Analytics Report",
	models.ReportSummary:      "Executive Summary",
}

func periodLabel(cfg models.ReportConfig) string {
	if cfg.DateRange != models.RangeCustom {
		return cfg.DateRange.Label()
	}
	start, end := cfg.StartDate, cfg.EndDate
	switch {
	case start != "" && end != "":
		return start + " to " + end
	case start != "":
		return "From " + start
	case end != "":
		return "Until " + end
	default:
		return cfg.DateRange.Label()
	}
}
