// Package stats implements the report aggregations as pure functions
// over decoded report documents: flatten the nested collection, filter,
// then sort or sum. Keeping these free of storage concerns makes every
// query shape testable against plain slices.
package stats

import (
	"sort"
	"time"

	"github.com/yourhostel/stat-syncer/internal/domain"
)

const dateLayout = "2006-01-02"

// FilterByDateRange flattens the per-date entries of all documents,
// keeps those whose date falls in [start, end] (both inclusive), and
// returns them sorted descending by date.
func FilterByDateRange(docs []domain.ReportDocument, start, end string) []domain.DateEntry {
	entries := []domain.DateEntry{}
	for _, doc := range docs {
		for _, e := range doc.SalesAndTrafficByDate {
			if e.Date >= start && e.Date <= end {
				entries = append(entries, e)
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return dateAfter(entries[i].Date, entries[j].Date)
	})
	return entries
}

// dateAfter reports whether date a is strictly later than b.
// ISO dates compare lexicographically; parsing keeps the comparison
// correct for any sortable variant that time.Parse accepts.
func dateAfter(a, b string) bool {
	ta, errA := time.Parse(dateLayout, a)
	tb, errB := time.Parse(dateLayout, b)
	if errA != nil || errB != nil {
		return a > b
	}
	return ta.After(tb)
}

// FilterByAsins flattens the per-ASIN entries of all documents and
// returns one entry per requested ASIN found, first occurrence winning
// when storage holds duplicates. Order follows first appearance in the
// stored collection.
func FilterByAsins(docs []domain.ReportDocument, asins []string) []domain.AsinEntry {
	requested := make(map[string]bool, len(asins))
	for _, asin := range asins {
		requested[asin] = true
	}

	seen := make(map[string]bool, len(asins))
	entries := []domain.AsinEntry{}
	for _, doc := range docs {
		for _, e := range doc.SalesAndTrafficByAsin {
			if !requested[e.ParentAsin] || seen[e.ParentAsin] {
				continue
			}
			seen[e.ParentAsin] = true
			entries = append(entries, e)
		}
	}
	return entries
}

// UnitsAndSalesTotal sums units ordered and ordered-product-sales
// amount across all per-ASIN entries. Empty input yields the
// zero-filled summary, never nil.
func UnitsAndSalesTotal(docs []domain.ReportDocument) domain.UnitsAndSalesTotal {
	var total domain.UnitsAndSalesTotal
	for _, doc := range docs {
		for _, e := range doc.SalesAndTrafficByAsin {
			total.TotalUnitsOrdered += e.SalesByAsin.UnitsOrdered
			total.TotalSalesAmount += e.SalesByAsin.OrderedProductSales.Amount
		}
	}
	return total
}

// TotalsByDate sums the four metrics across all per-date entries.
func TotalsByDate(docs []domain.ReportDocument) domain.StatisticsTotal {
	var total domain.StatisticsTotal
	for _, doc := range docs {
		for _, e := range doc.SalesAndTrafficByDate {
			total.TotalUnitsOrdered += e.SalesByDate.UnitsOrdered
			total.TotalSalesAmount += e.SalesByDate.OrderedProductSales.Amount
			total.TotalSessions += e.TrafficByDate.Sessions
			total.TotalPageViews += e.TrafficByDate.PageViews
		}
	}
	return total
}

// TotalsByAsin sums the four metrics across all per-ASIN entries.
func TotalsByAsin(docs []domain.ReportDocument) domain.StatisticsTotal {
	var total domain.StatisticsTotal
	for _, doc := range docs {
		for _, e := range doc.SalesAndTrafficByAsin {
			total.TotalUnitsOrdered += e.SalesByAsin.UnitsOrdered
			total.TotalSalesAmount += e.SalesByAsin.OrderedProductSales.Amount
			total.TotalSessions += e.TrafficByAsin.Sessions
			total.TotalPageViews += e.TrafficByAsin.PageViews
		}
	}
	return total
}
