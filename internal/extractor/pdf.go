// Package extractor turns uploaded statements into page text for the parsers.
package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadable is returned when no method produced statement-like text.
var ErrUnreadable = errors.New("no readable text could be extracted from the PDF; it may be scanned or use custom font encodings, paste the statement text instead")

// columnGap is the horizontal distance, in points, treated as a column break.
const columnGap = 15

// ExtractFile reads a PDF from disk and returns the text of each page.
func ExtractFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ExtractPDF(data)
}

// ExtractPDF returns the text of each page of an in-memory PDF. The
// structured library is tried first; pdftotext from poppler-utils is used
// as a fallback when it is installed.
func ExtractPDF(data []byte) ([]string, error) {
	pages, libErr := extractWithLibrary(data)
	if libErr == nil && IsReadable(pages) {
		return pages, nil
	}

	popplerPages, popplerErr := extractWithPdftotext(data)
	if popplerErr == nil && IsReadable(popplerPages) {
		return popplerPages, nil
	}

	if libErr != nil {
		return nil, fmt.Errorf("PDF text extraction failed: %v: %w", libErr, ErrUnreadable)
	}
	return nil, ErrUnreadable
}

func extractWithLibrary(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	pages = byRow(r, numPages)
	if IsReadable(pages) {
		return pages, nil
	}
	pages = byPosition(r, numPages)
	if IsReadable(pages) {
		return pages, nil
	}
	if text := plainText(r); IsReadable([]string{text}) {
		return []string{text}, nil
	}
	return pages, nil
}

func byRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			if line := strings.TrimSpace(strings.Join(words, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// byPosition rebuilds lines from raw text runs grouped by baseline, top of
// the page first, with a double space between distant runs.
func byPosition(r *pdf.Reader, numPages int) []string {
	type run struct {
		x float64
		s string
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		rows := make(map[int][]run)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			y := int(math.Round(t.Y))
			rows[y] = append(rows[y], run{x: t.X, s: t.S})
		}
		if len(rows) == 0 {
			continue
		}

		ys := make([]int, 0, len(rows))
		for y := range rows {
			ys = append(ys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(ys)))

		var lines []string
		for _, y := range ys {
			runs := rows[y]
			sort.Slice(runs, func(a, b int) bool { return runs[a].x < runs[b].x })

			var sb strings.Builder
			for j, rn := range runs {
				if j > 0 && rn.x-runs[j-1].x > columnGap {
					sb.WriteString("  ")
				}
				sb.WriteString(rn.s)
			}
			if line := strings.TrimSpace(sb.String()); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

func plainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// extractWithPdftotext writes the PDF to a temporary file and runs
// pdftotext page by page so page boundaries survive.
func extractWithPdftotext(data []byte) ([]string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %w", err)
	}

	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	var pages []string
	for i := 1; i <= pageCount(tmp.Name()); i++ {
		n := strconv.Itoa(i)
		out, err := exec.Command("pdftotext", "-layout", "-f", n, "-l", n, tmp.Name(), "-").Output()
		if err != nil {
			continue
		}
		if text := strings.TrimSpace(string(out)); text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) > 0 {
		return pages, nil
	}

	out, err := exec.Command("pdftotext", "-layout", tmp.Name(), "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w", err)
	}
	if text := strings.TrimSpace(string(out)); text != "" {
		return []string{text}, nil
	}
	return nil, fmt.Errorf("pdftotext produced no output")
}

// pageCount asks pdfinfo for the page count, defaulting to one page.
func pageCount(path string) int {
	out, err := exec.Command("pdfinfo", path).Output()
	if err != nil {
		return 1
	}
	for _, line := range strings.Split(string(out), "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:"))); err == nil && n > 0 {
			return n
		}
	}
	return 1
}
