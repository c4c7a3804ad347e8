package writer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

// ReadCSVTransactions reads the transaction rows of a CSV export back.
// Metadata comment rows are ignored.
func ReadCSVTransactions(in io.Reader) ([]models.Transaction, error) {
	r := csv.NewReader(in)
	r.Comment = '#'
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty CSV export")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range transactionHeader {
		if _, ok := idx[strings.ToLower(name)]; !ok {
			return nil, fmt.Errorf("CSV export is missing the %q column", name)
		}
	}
	get := func(rec []string, name string) string {
		i := idx[name]
		if i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	txns := []models.Transaction{}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return txns, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		line, _ := r.FieldPos(0)

		date, err := models.ParseDate(get(rec, "date"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		amount, err := strconv.ParseFloat(get(rec, "amount"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount %q", line, get(rec, "amount"))
		}
		typ, err := models.ParseTxType(get(rec, "type"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		freq, err := models.ParseFrequency(get(rec, "frequency"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		txns = append(txns, models.Transaction{
			Date:        date,
			Description: get(rec, "description"),
			Amount:      amount,
			Type:        typ,
			Frequency:   freq,
		})
	}
}
