// Package filter narrows a transaction collection by the compound criteria
// of a report request. Every function here is pure: inputs are never
// mutated and the same inputs always give the same output.
package filter

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

// Predicate decides whether a transaction passes.
type Predicate func(models.Transaction) bool

// Criteria is the resolved filter set. Zero values mean "no constraint".
type Criteria struct {
	Type      models.TxType
	Frequency models.Frequency
	Search    string
	From      models.Date
	To        models.Date
	MinAmount *float64
	MaxAmount *float64
	Sort      models.SortOrder
}

// FromConfig resolves a report config against now. Relative windows are
// anchored on the calendar day of now, which the caller captures once.
func FromConfig(cfg models.ReportConfig, now time.Time) Criteria {
	cfg = cfg.Normalize()
	c := Criteria{
		Search: strings.TrimSpace(cfg.SearchTerm),
		Sort:   cfg.Sort,
	}
	if t, err := models.ParseTxType(cfg.TransactionType); err == nil {
		c.Type = t
	}
	if f, err := models.ParseFrequency(cfg.Frequency); err == nil {
		c.Frequency = f
	}

	switch cfg.DateRange {
	case models.RangeAll:
	case models.RangeCustom:
		if d, err := models.ParseDate(cfg.StartDate); err == nil {
			c.From = d
		}
		if d, err := models.ParseDate(cfg.EndDate); err == nil {
			c.To = d
		}
	default:
		if days := cfg.DateRange.Days(); days > 0 {
			today := models.Today(now)
			c.From = today.AddDays(-days)
			c.To = today
		}
	}

	c.MinAmount = parseBound(cfg.AmountMin)
	c.MaxAmount = parseBound(cfg.AmountMax)
	return c
}

// parseBound reads a user-typed amount; blank or unparsable means unset.
func parseBound(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Predicate returns the AND of every active criterion.
func (c Criteria) Predicate() Predicate {
	var ps []Predicate
	if c.Type != "" {
		ps = append(ps, ByType(c.Type))
	}
	if c.Frequency != "" {
		ps = append(ps, ByFrequency(c.Frequency))
	}
	if c.Search != "" {
		ps = append(ps, BySearch(c.Search))
	}
	if !c.From.IsZero() || !c.To.IsZero() {
		ps = append(ps, ByDateRange(c.From, c.To))
	}
	if c.MinAmount != nil || c.MaxAmount != nil {
		ps = append(ps, ByAmount(c.MinAmount, c.MaxAmount))
	}
	return And(ps...)
}

// Apply filters txns and then applies the requested sort. The result is a
// new slice; txns is left untouched.
func Apply(txns []models.Transaction, c Criteria) []models.Transaction {
	out := Select(txns, c.Predicate())
	return SortByDate(out, c.Sort)
}

// Select keeps the transactions passing p, preserving their order.
func Select(txns []models.Transaction, p Predicate) []models.Transaction {
	out := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		if p(t) {
			out = append(out, t)
		}
	}
	return out
}

// And composes predicates. With no arguments every transaction passes.
func And(ps ...Predicate) Predicate {
	return func(t models.Transaction) bool {
		for _, p := range ps {
			if !p(t) {
				return false
			}
		}
		return true
	}
}

func ByType(typ models.TxType) Predicate {
	return func(t models.Transaction) bool { return t.Type == typ }
}

func ByFrequency(f models.Frequency) Predicate {
	return func(t models.Transaction) bool { return t.Frequency == f }
}

// BySearch matches a case-insensitive substring of the description.
func BySearch(term string) Predicate {
	term = strings.ToLower(term)
	return func(t models.Transaction) bool {
		return strings.Contains(strings.ToLower(t.Description), term)
	}
}

// ByDateRange keeps dates within [from, to]. A zero bound is open.
func ByDateRange(from, to models.Date) Predicate {
	return func(t models.Transaction) bool {
		if !from.IsZero() && t.Date.Before(from) {
			return false
		}
		if !to.IsZero() && t.Date.After(to) {
			return false
		}
		return true
	}
}

// ByAmount excludes a transaction only when it violates a supplied bound.
func ByAmount(min, max *float64) Predicate {
	return func(t models.Transaction) bool {
		if min != nil && t.Amount < *min {
			return false
		}
		if max != nil && t.Amount > *max {
			return false
		}
		return true
	}
}

// SortByDate returns a copy ordered by date. Ties keep their relative order.
func SortByDate(txns []models.Transaction, order models.SortOrder) []models.Transaction {
	out := make([]models.Transaction, len(txns))
	copy(out, txns)
	switch order {
	case models.SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	case models.SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	}
	return out
}
