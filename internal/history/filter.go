// Package history filters and orders the sales collection for the history
// view: optional date range, customer and seller, newest first.
package history

import (
	"sort"
	"time"

	"kassa/internal/pos"
)

// Filter narrows the sales list. From is inclusive from the start of that
// day, To inclusive through the end of that day. Empty fields match all.
type Filter struct {
	From       time.Time
	To         time.Time
	CustomerID string
	SellerID   string
}

// Apply returns the sales matching the filter, sorted newest first. The
// input slice is not modified.
func Apply(sales []pos.Sale, f Filter) []pos.Sale {
	var from, to time.Time
	if !f.From.IsZero() {
		from = startOfDay(f.From)
	}
	if !f.To.IsZero() {
		to = endOfDay(f.To)
	}

	matched := make([]pos.Sale, 0, len(sales))
	for _, sale := range sales {
		date, ok := parseDate(sale.Date)
		if !from.IsZero() && (!ok || date.Before(from)) {
			continue
		}
		if !to.IsZero() && (!ok || date.After(to)) {
			continue
		}
		if f.CustomerID != "" && sale.CustomerID != f.CustomerID {
			continue
		}
		if f.SellerID != "" && (sale.Seller == nil || sale.Seller.ID != f.SellerID) {
			continue
		}
		matched = append(matched, sale)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		di, _ := parseDate(matched[i].Date)
		dj, _ := parseDate(matched[j].Date)
		return di.After(dj)
	})

	return matched
}

func parseDate(value string) (time.Time, bool) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
