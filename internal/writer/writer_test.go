package writer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/report"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/stats"
)

var now = time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{ID: "1", Date: models.MustParseDate("2024-03-01"), Description: "Salary, March", Amount: 50000, Type: models.Credit, Frequency: models.Regular},
		{ID: "2", Date: models.MustParseDate("2024-03-05"), Description: `UPI DEBIT - "Swiggy"`, Amount: 450.25, Type: models.Debit, Frequency: models.Irregular},
		{ID: "3", Date: models.MustParseDate("2024-02-10"), Description: "Electricity bill", Amount: 1200, Type: models.Debit, Frequency: models.Regular},
		{ID: "4", Date: models.MustParseDate("2024-02-11"), Description: "Refund", Amount: 0, Type: models.Credit, Frequency: models.Irregular},
	}
}

func generate(t *testing.T, cfg models.ReportConfig) *report.Report {
	t.Helper()
	r, err := report.Generate(cfg, sampleTransactions(), now)
	require.NoError(t, err)
	return r
}

func TestExport_FilenameAndMIME(t *testing.T) {
	tests := []struct {
		format   models.Format
		filename string
		mime     string
	}{
		{models.FormatCSV, "budget_report_2024-03-31.csv", "text/csv"},
		{models.FormatExcel, "budget_report_2024-03-31.xls", "application/vnd.ms-excel"},
		{models.FormatPDF, "budget_report_2024-03-31.html", "text/html"},
	}

	r := generate(t, models.ReportConfig{Type: models.ReportBudget})
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			a, err := Export(r, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.filename, a.Filename)
			assert.Equal(t, tt.mime, a.MIMEType)
			assert.NotEmpty(t, a.Body)
		})
	}
}

func TestExport_Errors(t *testing.T) {
	_, err := Export(nil, models.FormatCSV)
	assert.Error(t, err)

	_, err = Export(generate(t, models.ReportConfig{}), "docx")
	assert.Error(t, err)
}

func TestCSVWriter_Write(t *testing.T) {
	r := generate(t, models.ReportConfig{IncludeCharts: true})

	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	require.NoError(t, w.Write(&buf, r))

	output := buf.String()
	assert.Contains(t, output, "# Report,Transaction Report")
	assert.Contains(t, output, "# Balance,48349.75")
	assert.Contains(t, output, "Date,Description,Amount,Type,Frequency")
	assert.Contains(t, output, `2024-03-05,"UPI DEBIT - ""Swiggy""",450.25,debit,irregular`)
	assert.Contains(t, output, `2024-03-01,"Salary, March",50000.00,credit,regular`)
	assert.Contains(t, output, `2024-02-10,"Electricity bill",1200.00,debit,regular`)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	// 7 metadata lines + 1 header + 4 transactions
	assert.Len(t, lines, 12)
}

func TestCSVWriter_WriteNoHeader(t *testing.T) {
	r := generate(t, models.ReportConfig{})

	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: false}
	require.NoError(t, w.Write(&buf, r))

	output := buf.String()
	assert.NotContains(t, output, "# Report")
	assert.True(t, strings.HasPrefix(output, "Date,Description,Amount,Type,Frequency\n"))
}

func TestCSV_RoundTrip(t *testing.T) {
	for _, charts := range []bool{false, true} {
		r := generate(t, models.ReportConfig{IncludeCharts: charts})
		a, err := Export(r, models.FormatCSV)
		require.NoError(t, err)

		got, err := ReadCSVTransactions(bytes.NewReader(a.Body))
		require.NoError(t, err)
		require.Len(t, got, len(r.Transactions))
		for i, want := range r.Transactions {
			assert.Equal(t, want.Date, got[i].Date)
			assert.Equal(t, want.Description, got[i].Description)
			assert.Equal(t, want.Amount, got[i].Amount)
			assert.Equal(t, want.Type, got[i].Type)
			assert.Equal(t, want.Frequency, got[i].Frequency)
		}
	}
}

func TestReadCSVTransactions_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing column", "Date,Description,Amount\n2024-01-01,x,1\n"},
		{"bad amount", "Date,Description,Amount,Type,Frequency\n2024-01-01,x,abc,debit,regular\n"},
		{"bad date", "Date,Description,Amount,Type,Frequency\n01/01/2024,x,1,debit,regular\n"},
		{"bad type", "Date,Description,Amount,Type,Frequency\n2024-01-01,x,1,sideways,regular\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSVTransactions(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestExcelWriter_Sections(t *testing.T) {
	r := generate(t, models.ReportConfig{Type: models.ReportAnalytics})

	var buf bytes.Buffer
	require.NoError(t, (&ExcelWriter{}).Write(&buf, r))

	out := buf.String()
	for _, heading := range []string{"SUMMARY", "CASH FLOW", "MONTHLY CASH FLOW", "CATEGORY BREAKDOWN", "SEASONALITY", "PROJECTIONS", "TRANSACTIONS"} {
		assert.Contains(t, out, "\r\n"+heading+"\r\n", heading)
	}
	assert.Contains(t, out, "Total Credit\t50000.00")
	assert.Contains(t, out, "2024-03-01\tSalary, March\t50000.00\tcredit\tregular")
}

func TestExcelWriter_EmptyTablesShowNA(t *testing.T) {
	r, err := report.Generate(models.ReportConfig{Type: models.ReportBudget}, []models.Transaction{}, now)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, (&ExcelWriter{}).Write(&buf, r))
	assert.Contains(t, buf.String(), "Month\tExpense\tAverage\tVariance\tPercent\r\nN/A\r\n")
}

func TestHTMLWriter_Charts(t *testing.T) {
	r := generate(t, models.ReportConfig{Type: models.ReportTransactions, IncludeCharts: true})

	var buf bytes.Buffer
	require.NoError(t, (&HTMLWriter{Charts: true}).Write(&buf, r))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "stroke-dasharray=")
	assert.Contains(t, out, `r="15.9155"`)
	assert.Contains(t, out, "<rect ")
	assert.Contains(t, out, "<polyline ")
	assert.Contains(t, out, "UPI DEBIT - &#34;Swiggy&#34;")
	assert.NotContains(t, out, `"Swiggy"`)
}

func TestHTMLWriter_NoCharts(t *testing.T) {
	r := generate(t, models.ReportConfig{Type: models.ReportSummary})

	var buf bytes.Buffer
	require.NoError(t, (&HTMLWriter{}).Write(&buf, r))

	out := buf.String()
	assert.NotContains(t, out, "<svg")
	assert.Contains(t, out, "Financial Health")
	assert.Contains(t, out, "Largest Transaction")
}

func TestHTMLWriter_MissingPayload(t *testing.T) {
	r := &report.Report{Type: models.ReportSummary}

	var buf bytes.Buffer
	require.NoError(t, (&HTMLWriter{Charts: true}).Write(&buf, r))
	assert.Contains(t, buf.String(), "N/A")
	assert.Contains(t, buf.String(), "No transactions match the selected filters.")
}

func TestPieSlices(t *testing.T) {
	slices := pieSlices(nil)
	assert.Empty(t, slices)

	r := generate(t, models.ReportConfig{})
	p := r.Payload.(report.TransactionsPayload)
	slices = pieSlices(p.Categories)
	require.Len(t, slices, 2)
	assert.Equal(t, "25.00", slices[0].Offset)
}

func TestBalanceLine_SingleMonth(t *testing.T) {
	r := generate(t, models.ReportConfig{DateRange: models.RangeCustom, StartDate: "2024-03-01"})
	c := balanceLine(chartMonthly(r))
	require.NotNil(t, c)
	require.Len(t, c.Dots, 1)
	assert.Equal(t, 90.0, c.Dots[0].Y)
}

func chartMonthly(r *report.Report) []stats.MonthlyPoint {
	_, monthly := chartData(r)
	return monthly
}

func TestWriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteToFile(path, &CSVWriter{}, generate(t, models.ReportConfig{})))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Electricity bill")
}
