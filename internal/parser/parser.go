package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

// Parser defines the interface for statement parsers.
type Parser interface {
	// Parse takes raw text (one entry per PDF page or uploaded file) and
	// returns the extracted candidates. It never fails on unrecognized
	// content; a single placeholder candidate is returned instead.
	Parse(pages []string) (*models.StatementInfo, error)
	// Name returns the human-readable parser name.
	Name() string
}

// New returns the appropriate parser for the given source kind.
func New(kind models.SourceKind) (Parser, error) {
	switch kind {
	case models.SourceStatement:
		return &StatementParser{}, nil
	case models.SourceTable:
		return &TableParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported source kind: %q", kind)
	}
}

// DetectSource picks the source kind from an uploaded file name.
func DetectSource(filename string) (models.SourceKind, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".txt":
		return models.SourceStatement, nil
	case ".csv":
		return models.SourceTable, nil
	default:
		return "", fmt.Errorf("unsupported file type %q: upload a PDF statement or a CSV export", filepath.Ext(filename))
	}
}

// DetectBank names the issuing bank when the statement says so.
func DetectBank(pages []string) string {
	combined := strings.Join(pages, "\n")
	switch {
	case containsAny(combined, []string{"Indian Bank"}):
		return "Indian Bank"
	case containsAny(combined, []string{"State Bank of India", "sbi.co.in"}):
		return "State Bank of India"
	case containsAny(combined, []string{"HDFC Bank", "hdfcbank.com"}):
		return "HDFC Bank"
	default:
		return ""
	}
}
