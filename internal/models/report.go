package models

import (
	"fmt"
	"strings"
)

// ReportType selects which report variant is synthesized.
type ReportType string

const (
	ReportTransactions ReportType = "transactions"
	ReportBudget       ReportType = "budget"
	ReportAnalytics    ReportType = "analytics"
	ReportSummary      ReportType = "summary"
)

// Format is the requested export format. PDF is produced as print-ready HTML.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
	FormatCSV   Format = "csv"
)

// DateRange is the date-window selector of a report request.
type DateRange string

const (
	RangeAll     DateRange = "all"
	RangeWeek    DateRange = "week"
	RangeMonth   DateRange = "month"
	RangeQuarter DateRange = "quarter"
	RangeYear    DateRange = "year"
	RangeCustom  DateRange = "custom"
)

// Days returns the length of a relative window, or 0 for all/custom.
func (r DateRange) Days() int {
	switch r {
	case RangeWeek:
		return 7
	case RangeMonth:
		return 30
	case RangeQuarter:
		return 90
	case RangeYear:
		return 365
	default:
		return 0
	}
}

// Label is the human-readable period name.
func (r DateRange) Label() string {
	switch r {
	case RangeWeek:
		return "Last 7 days"
	case RangeMonth:
		return "Last 30 days"
	case RangeQuarter:
		return "Last 3 months"
	case RangeYear:
		return "Last 12 months"
	case RangeCustom:
		return "Custom date range"
	default:
		return "All time"
	}
}

// SortOrder is the optional post-filter ordering by date.
type SortOrder string

const (
	SortNone   SortOrder = "none"
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// FilterAll is the pass-through value of the type and frequency filters.
const FilterAll = "all"

// ReportConfig captures one report request. It has no identity and is
// recreated per generation.
type ReportConfig struct {
	Type            ReportType `json:"type"`
	Format          Format     `json:"format"`
	DateRange       DateRange  `json:"dateRange"`
	StartDate       string     `json:"startDate,omitempty"`
	EndDate         string     `json:"endDate,omitempty"`
	TransactionType string     `json:"transactionType,omitempty"`
	Frequency       string     `json:"frequency,omitempty"`
	SearchTerm      string     `json:"searchTerm,omitempty"`
	AmountMin       string     `json:"amountMin,omitempty"`
	AmountMax       string     `json:"amountMax,omitempty"`
	IncludeCharts   bool       `json:"includeCharts"`
	Sort            SortOrder  `json:"sort,omitempty"`
}

// Normalize fills defaults for empty selectors and lower-cases enums.
func (c ReportConfig) Normalize() ReportConfig {
	c.Type = ReportType(strings.ToLower(strings.TrimSpace(string(c.Type))))
	if c.Type == "" {
		c.Type = ReportTransactions
	}
	c.Format = Format(strings.ToLower(strings.TrimSpace(string(c.Format))))
	if c.Format == "" {
		c.Format = FormatPDF
	}
	c.DateRange = DateRange(strings.ToLower(strings.TrimSpace(string(c.DateRange))))
	if c.DateRange == "" {
		c.DateRange = RangeAll
	}
	c.TransactionType = strings.ToLower(strings.TrimSpace(c.TransactionType))
	if c.TransactionType == "" {
		c.TransactionType = FilterAll
	}
	c.Frequency = strings.ToLower(strings.TrimSpace(c.Frequency))
	if c.Frequency == "" {
		c.Frequency = FilterAll
	}
	if c.Sort == "" {
		c.Sort = SortNone
	}
	return c
}

// Validate checks the enum fields of a normalized config.
func (c ReportConfig) Validate() error {
	switch c.Type {
	case ReportTransactions, ReportBudget, ReportAnalytics, ReportSummary:
	default:
		return fmt.Errorf("unknown report type %q", c.Type)
	}
	switch c.Format {
	case FormatPDF, FormatExcel, FormatCSV:
	default:
		return fmt.Errorf("unknown report format %q", c.Format)
	}
	switch c.DateRange {
	case RangeAll, RangeWeek, RangeMonth, RangeQuarter, RangeYear, RangeCustom:
	default:
		return fmt.Errorf("unknown date range %q", c.DateRange)
	}
	switch c.Sort {
	case SortNone, SortNewest, SortOldest:
	default:
		return fmt.Errorf("unknown sort order %q", c.Sort)
	}
	return nil
}
