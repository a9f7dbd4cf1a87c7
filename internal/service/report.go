package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourhostel/stat-syncer/internal/cache"
	"github.com/yourhostel/stat-syncer/internal/repository"
	"github.com/yourhostel/stat-syncer/internal/stats"
)

// Cache region names, one per operation.
const (
	regionFindByDateRange = "findByDateRange"
	regionFindByAsin      = "findByAsin"
	regionUnitsAndSales   = "totalUnitsAndSales"
	regionTotalsByDates   = "totalStatsByDates"
	regionTotalsByAsins   = "totalStatsByAsins"

	// keyTotal is the fixed key for the zero-parameter operations.
	keyTotal = "total"

	dateLayout = "2006-01-02"
)

// ReportService executes the five read-only report queries, each
// backed by the result cache. Results are produced and cached as JSON
// bytes so a cache hit is byte-identical to the call that populated it.
type ReportService struct {
	reports repository.ReportRepository
	cache   cache.ResultCache
}

// NewReportService creates a new report service.
// Returns nil if either dependency is missing.
func NewReportService(reports repository.ReportRepository, resultCache cache.ResultCache) *ReportService {
	if reports == nil || resultCache == nil {
		return nil
	}
	return &ReportService{reports: reports, cache: resultCache}
}

// DateRangeKey derives the cache key for a date-range query: both
// boundary dates concatenated. Dates are fixed-width ISO strings, so
// the concatenation is unambiguous.
func DateRangeKey(start, end string) string {
	return start + end
}

// AsinsKey derives the cache key for an ASIN query: the list's
// canonical rendering. Order-sensitive on purpose; permutations cache
// separately but still return correct results.
func AsinsKey(asins []string) string {
	return "[" + strings.Join(asins, ", ") + "]"
}

// FindByDateRange returns the date entries within [start, end]
// inclusive, sorted descending by date, as a JSON array.
func (s *ReportService) FindByDateRange(ctx context.Context, start, end string) (json.RawMessage, error) {
	if _, err := time.Parse(dateLayout, start); err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	if _, err := time.Parse(dateLayout, end); err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", end, err)
	}

	return s.cached(ctx, regionFindByDateRange, DateRangeKey(start, end), func(ctx context.Context) (interface{}, error) {
		docs, err := s.reports.AllDocuments(ctx)
		if err != nil {
			return nil, err
		}
		return stats.FilterByDateRange(docs, start, end), nil
	})
}

// FindByAsins returns one entry per requested ASIN found in storage,
// as a JSON array.
func (s *ReportService) FindByAsins(ctx context.Context, asins []string) (json.RawMessage, error) {
	if len(asins) == 0 {
		return nil, fmt.Errorf("at least one asin is required")
	}

	return s.cached(ctx, regionFindByAsin, AsinsKey(asins), func(ctx context.Context) (interface{}, error) {
		docs, err := s.reports.AllDocuments(ctx)
		if err != nil {
			return nil, err
		}
		return stats.FilterByAsins(docs, asins), nil
	})
}

// UnitsAndSalesTotal returns the two-field summary over all per-ASIN
// entries, zero-filled on empty data.
func (s *ReportService) UnitsAndSalesTotal(ctx context.Context) (json.RawMessage, error) {
	return s.cached(ctx, regionUnitsAndSales, keyTotal, func(ctx context.Context) (interface{}, error) {
		docs, err := s.reports.AllDocuments(ctx)
		if err != nil {
			return nil, err
		}
		return stats.UnitsAndSalesTotal(docs), nil
	})
}

// TotalsByDate returns the four-field summary over all per-date
// entries, zero-filled on empty data.
func (s *ReportService) TotalsByDate(ctx context.Context) (json.RawMessage, error) {
	return s.cached(ctx, regionTotalsByDates, keyTotal, func(ctx context.Context) (interface{}, error) {
		docs, err := s.reports.AllDocuments(ctx)
		if err != nil {
			return nil, err
		}
		return stats.TotalsByDate(docs), nil
	})
}

// TotalsByAsin returns the four-field summary over all per-ASIN
// entries, zero-filled on empty data.
func (s *ReportService) TotalsByAsin(ctx context.Context) (json.RawMessage, error) {
	return s.cached(ctx, regionTotalsByAsins, keyTotal, func(ctx context.Context) (interface{}, error) {
		docs, err := s.reports.AllDocuments(ctx)
		if err != nil {
			return nil, err
		}
		return stats.TotalsByAsin(docs), nil
	})
}

// cached runs compute behind the result cache. A cache read failure is
// treated as a miss so a degraded cache never fails a pure read; store
// errors propagate unchanged.
func (s *ReportService) cached(ctx context.Context, region, key string, compute func(context.Context) (interface{}, error)) (json.RawMessage, error) {
	if value, ok, err := s.cache.Get(ctx, region, key); err != nil {
		log.Printf("[ReportService] cache get %s/%s: %v", region, key, err)
	} else if ok {
		return value, nil
	}

	result, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	value, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s result: %w", region, err)
	}

	if err := s.cache.Set(ctx, region, key, value); err != nil {
		log.Printf("[ReportService] cache set %s/%s: %v", region, key, err)
	}
	return value, nil
}
