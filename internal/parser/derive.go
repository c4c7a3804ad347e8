package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

// maxDescriptionLen caps the description of extracted candidates.
const maxDescriptionLen = 80

// paymentSystems are the transaction tags that carry a CREDIT/DEBIT marker
// and a slash-separated counterpart path, e.g. "UPI DEBIT/4023/ref/Google Play".
var paymentSystems = []string{"UPI", "NEFT", "IMPS", "RTGS"}

// merchantLabels map well-known merchant substrings to a friendly label,
// checked in order when no counterpart name can be extracted.
var merchantLabels = []struct {
	needle string
	label  string
}{
	{"Google Play", "Google Play"},
	{"Paytm", "UPI via Paytm"},
}

var (
	maskPattern       = regexp.MustCompile(`X{5,}`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	digitsOnly        = regexp.MustCompile(`^[\d\s]+$`)
)

// normalizeDate combines the "DD/MM/" prefix with the year. Implausible
// components fall back to today's date.
func normalizeDate(day, month, year string, now time.Time) models.Date {
	if d, ok := assembleDate(day, month, year); ok {
		return d
	}
	return models.Today(now)
}

// splitAmountLine returns the transaction amount and the running balance.
func splitAmountLine(line string) (amount, balance float64, err error) {
	m := amountLinePattern.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, fmt.Errorf("amount line %q does not hold exactly two numbers", line)
	}
	amount, err = strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid amount %q: %w", m[1], err)
	}
	balance, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid balance %q: %w", m[2], err)
	}
	return amount, balance, nil
}

// inferType scans for "<SYSTEM> CREDIT" before "<SYSTEM> DEBIT" and
// defaults to debit when neither marker is present.
func inferType(text string) models.TxType {
	upper := strings.ToUpper(text)
	for _, sys := range paymentSystems {
		if strings.Contains(upper, sys+" CREDIT") {
			return models.Credit
		}
	}
	return models.Debit
}

// paymentSystem returns the first payment-system tag found in the text.
func paymentSystem(text string) string {
	upper := strings.ToUpper(text)
	for _, sys := range paymentSystems {
		if strings.Contains(upper, sys) {
			return sys
		}
	}
	return ""
}

// synthesizeDescription builds the human-readable description of a
// candidate from the raw text harvested around its amount line.
func synthesizeDescription(text string, typ models.TxType) string {
	label := strings.ToUpper(string(typ))

	var desc string
	sys := paymentSystem(text)
	switch {
	case sys == "":
		desc = "Bank Transaction"
	default:
		if name := counterpartName(text, sys); name != "" {
			desc = fmt.Sprintf("%s %s - %s", sys, label, name)
			break
		}
		desc = fmt.Sprintf("%s %s Transaction", sys, label)
		for _, m := range merchantLabels {
			if strings.Contains(text, m.needle) {
				desc = m.label
				break
			}
		}
	}

	return cleanDescription(desc)
}

// counterpartName picks the last path segment that reads like a name.
func counterpartName(text, sys string) string {
	parts := strings.Split(text, "/")
	if len(parts) < 2 {
		return ""
	}
	for i := len(parts) - 1; i >= 0; i-- {
		part := strings.TrimSpace(parts[i])
		if looksLikeName(part, sys) {
			return part
		}
	}
	return ""
}

func looksLikeName(part, sys string) bool {
	part = strings.TrimSpace(maskPattern.ReplaceAllString(part, ""))
	if utf8.RuneCountInString(part) <= 3 {
		return false
	}
	if strings.Contains(part, "@") || digitsOnly.MatchString(part) {
		return false
	}
	if strings.Contains(strings.ToUpper(part), sys+" ") {
		return false
	}
	letters, digits := 0, 0
	for _, r := range part {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}
	return letters > digits
}

// cleanDescription strips masked account markers, collapses whitespace and
// truncates to maxDescriptionLen runes.
func cleanDescription(desc string) string {
	desc = maskPattern.ReplaceAllString(desc, "")
	desc = whitespacePattern.ReplaceAllString(desc, " ")
	desc = strings.TrimSpace(desc)
	if utf8.RuneCountInString(desc) > maxDescriptionLen {
		desc = strings.TrimSpace(string([]rune(desc)[:maxDescriptionLen]))
	}
	return desc
}
