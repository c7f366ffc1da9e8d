package history_test

import (
	"testing"
	"time"

	"kassa/internal/history"
	"kassa/internal/pos"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func sampleSales() []pos.Sale {
	return []pos.Sale{
		{ID: "s1", Date: "2025-03-01T09:00:00Z", CustomerID: "c1", Seller: &pos.Employee{ID: "e1"}},
		{ID: "s2", Date: "2025-03-02T23:59:00Z", CustomerID: "c2", Seller: &pos.Employee{ID: "e2"}},
		{ID: "s3", Date: "2025-03-05T12:00:00Z", CustomerID: "c1", Seller: &pos.Employee{ID: "e1"}},
		{ID: "s4", Date: "2025-03-07T08:00:00Z"},
	}
}

func ids(sales []pos.Sale) []string {
	out := make([]string, len(sales))
	for i, s := range sales {
		out[i] = s.ID
	}
	return out
}

func TestApplyNoFilterSortsNewestFirst(t *testing.T) {
	got := history.Apply(sampleSales(), history.Filter{})
	assert.Equal(t, []string{"s4", "s3", "s2", "s1"}, ids(got))
}

func TestApplyDateRangeIsInclusive(t *testing.T) {
	// UTC dates in the data, UTC bounds in the filter.
	filter := history.Filter{
		From: day("2025-03-02"),
		To:   day("2025-03-05"),
	}
	got := history.Apply(sampleSales(), filter)
	assert.Equal(t, []string{"s3", "s2"}, ids(got))
}

func TestApplyFromAlone(t *testing.T) {
	got := history.Apply(sampleSales(), history.Filter{From: day("2025-03-05")})
	assert.Equal(t, []string{"s4", "s3"}, ids(got))
}

func TestApplyCustomerFilter(t *testing.T) {
	got := history.Apply(sampleSales(), history.Filter{CustomerID: "c1"})
	assert.Equal(t, []string{"s3", "s1"}, ids(got))
}

func TestApplySellerFilter(t *testing.T) {
	got := history.Apply(sampleSales(), history.Filter{SellerID: "e2"})
	assert.Equal(t, []string{"s2"}, ids(got))

	// A sale without a seller snapshot never matches a seller filter.
	got = history.Apply(sampleSales(), history.Filter{SellerID: "missing"})
	assert.Empty(t, got)
}

func TestApplyCombinedFilters(t *testing.T) {
	filter := history.Filter{
		From:       day("2025-03-01"),
		To:         day("2025-03-05"),
		CustomerID: "c1",
		SellerID:   "e1",
	}
	got := history.Apply(sampleSales(), filter)
	assert.Equal(t, []string{"s3", "s1"}, ids(got))
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	sales := sampleSales()
	_ = history.Apply(sales, history.Filter{})
	require.Equal(t, "s1", sales[0].ID)
}

func TestApplyUnparsableDateExcludedFromRange(t *testing.T) {
	sales := []pos.Sale{{ID: "bad", Date: "not-a-date"}}
	got := history.Apply(sales, history.Filter{From: day("2025-01-01")})
	assert.Empty(t, got)

	// Without a range the sale still shows up.
	got = history.Apply(sales, history.Filter{})
	assert.Len(t, got, 1)
}
