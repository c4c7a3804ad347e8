package writer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/report"
)

// NotAvailable is rendered in place of missing values.
const NotAvailable = "N/A"

// Writer serializes a report.
type Writer interface {
	Write(out io.Writer, r *report.Report) error
}

// Artifact is an exported report ready for download.
type Artifact struct {
	Filename string
	MIMEType string
	Body     []byte
}

type formatSpec struct {
	ext    string
	mime   string
	writer func(r *report.Report) Writer
}

var formats = map[models.Format]formatSpec{
	models.FormatCSV: {".csv", "text/csv", func(r *report.Report) Writer {
		return &CSVWriter{IncludeHeader: r.Config.IncludeCharts}
	}},
	models.FormatExcel: {".xls", "application/vnd.ms-excel", func(*report.Report) Writer {
		return &ExcelWriter{}
	}},
	models.FormatPDF: {".html", "text/html", func(r *report.Report) Writer {
		return &HTMLWriter{Charts: r.Config.IncludeCharts}
	}},
}

// Export renders r in the given format. PDF is delivered as print-ready HTML.
func Export(r *report.Report, format models.Format) (Artifact, error) {
	if r == nil {
		return Artifact{}, errors.New("cannot export a nil report")
	}
	spec, ok := formats[format]
	if !ok {
		return Artifact{}, fmt.Errorf("unsupported export format %q", format)
	}

	var buf bytes.Buffer
	if err := spec.writer(r).Write(&buf, r); err != nil {
		return Artifact{}, fmt.Errorf("failed to render %s export: %w", format, err)
	}
	return Artifact{
		Filename: Filename(r, spec.ext),
		MIMEType: spec.mime,
		Body:     buf.Bytes(),
	}, nil
}

// Filename is "{type}_report_{YYYY-MM-DD}{ext}" for the generation date.
func Filename(r *report.Report, ext string) string {
	return fmt.Sprintf("%s_report_%s%s", r.Type, r.GeneratedAt.UTC().Format(models.DateLayout), ext)
}

// WriteToFile renders r with w into a file at path.
func WriteToFile(path string, w Writer, r *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	if err := w.Write(f, r); err != nil {
		return err
	}
	return f.Close()
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
