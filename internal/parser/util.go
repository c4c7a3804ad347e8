package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

// Date patterns found in statement tables and CSV exports.
var (
	// DD/MM/YYYY, DD-MM-YYYY or DD/MM/YY
	datePatternSlash = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2}|\d{4})$`)
	// DD Mon YYYY (e.g., 15 Jan 2024)
	datePatternText = regexp.MustCompile(`(?i)^(\d{1,2})[\s-]+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*[\s-]+(\d{4})$`)
	// YYYY-MM-DD
	datePatternISO = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})[/-](\d{1,2})$`)
)

var monthAbbrev = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// parseAmount converts a string like "1,234.56", "₹1,234.56" or "-£25" to a float64.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	for _, sym := range []string{"₹", "Rs.", "INR", "£", "$", "€", ",", " ", "\u00A0"} {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.TrimSuffix(strings.TrimSuffix(s, "Cr"), "Dr")

	if s == "" || s == "-" {
		return 0, nil
	}

	return strconv.ParseFloat(s, 64)
}

// isAmount reports whether a cell holds a number once currency noise is removed.
func isAmount(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := parseAmount(s)
	return err == nil
}

// isDate reports whether a cell looks like one of the supported date layouts.
func isDate(s string) bool {
	s = strings.TrimSpace(s)
	return datePatternSlash.MatchString(s) || datePatternText.MatchString(s) || datePatternISO.MatchString(s)
}

// parseCellDate converts a table date cell into a calendar date. The second
// return value is false when the cell is not a plausible date.
func parseCellDate(s string) (models.Date, bool) {
	s = strings.TrimSpace(s)

	if m := datePatternISO.FindStringSubmatch(s); m != nil {
		return assembleDate(m[3], m[2], m[1])
	}
	if m := datePatternSlash.FindStringSubmatch(s); m != nil {
		year := m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		return assembleDate(m[1], m[2], year)
	}
	if m := datePatternText.FindStringSubmatch(s); m != nil {
		month, ok := monthAbbrev[strings.ToLower(m[2])[:3]]
		if !ok {
			return models.Date{}, false
		}
		return assembleDate(m[1], strconv.Itoa(int(month)), m[3])
	}
	return models.Date{}, false
}

// assembleDate builds a UTC date from its components, rejecting implausible
// ranges and combinations that would roll over into another month.
func assembleDate(dayStr, monthStr, yearStr string) (models.Date, bool) {
	day, err1 := strconv.Atoi(dayStr)
	month, err2 := strconv.Atoi(monthStr)
	year, err3 := strconv.Atoi(yearStr)
	if err1 != nil || err2 != nil || err3 != nil {
		return models.Date{}, false
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year <= 1900 {
		return models.Date{}, false
	}
	d := models.NewDate(year, time.Month(month), day)
	if d.Day != day {
		return models.Date{}, false
	}
	return d, true
}

func containsAny(text string, needles []string) bool {
	lower := strings.ToLower(text)
	for _, needle := range needles {
		if needle != "" && strings.Contains(lower, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
