package stats

import "github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"

// Analysis bundles every view computed over one transaction slice.
type Analysis struct {
	Summary             Summary             `json:"summary"`
	Monthly             []MonthlyPoint      `json:"monthly"`
	Flows               []FlowSplit         `json:"flows"`
	Categories          []CategoryTotal     `json:"categories"`
	Volatility          float64             `json:"volatility"`
	Trend               Trend               `json:"trend"`
	Health              Health              `json:"health"`
	Projections         Projections         `json:"projections"`
	Seasonality         []SeasonBucket      `json:"seasonality"`
	GrowthRate          float64             `json:"growthRate"`
	NextMonthPrediction float64             `json:"nextMonthPrediction"`
	Largest             *models.Transaction `json:"largest,omitempty"`
	MostFrequentType    models.TxType       `json:"mostFrequentType,omitempty"`
	DaysSpanned         int                 `json:"daysSpanned"`
	Velocity            float64             `json:"velocity"`
	Metrics             KeyMetrics          `json:"metrics"`
}

// Analyze runs every aggregation over txns.
func Analyze(txns []models.Transaction) Analysis {
	summary := Summarize(txns)
	monthly := Monthly(txns)
	velocity := Velocity(txns)

	a := Analysis{
		Summary:             summary,
		Monthly:             monthly,
		Flows:               Flows(txns),
		Categories:          Categories(txns),
		Volatility:          Volatility(txns),
		Trend:               TrendOf(monthly),
		Health:              HealthScore(summary),
		Projections:         Project(txns),
		Seasonality:         Seasonality(txns),
		GrowthRate:          GrowthRate(monthly),
		NextMonthPrediction: PredictNextMonth(monthly),
		MostFrequentType:    MostFrequentType(txns),
		DaysSpanned:         DaysSpanned(txns),
		Velocity:            velocity,
		Metrics:             Metrics(summary, velocity),
	}
	if l, ok := Largest(txns); ok {
		a.Largest = &l
	}
	return a
}
